package profile

import (
	"github.com/delordemm1/go-weight-goal-api/internal/timeutil"
	"github.com/delordemm1/go-weight-goal-api/internal/validation"
)

// missingFields lists the required fields p leaves empty or zero.
func missingFields(p *Profile) []string {
	var missing []string
	if p.Name == "" {
		missing = append(missing, "name")
	}
	if p.Email == "" {
		missing = append(missing, "email")
	}
	if p.Height == 0 {
		missing = append(missing, "height")
	}
	if p.InitialWeight == 0 {
		missing = append(missing, "initialWeight")
	}
	if p.TargetWeight == 0 {
		missing = append(missing, "targetWeight")
	}
	if p.TargetDate.IsZero() {
		missing = append(missing, "targetDate")
	}
	if p.Sex == "" {
		missing = append(missing, "sex")
	}
	return missing
}

func verifyRequiredFields(p *Profile) error {
	if missing := missingFields(p); len(missing) > 0 {
		return ErrMissingField.WithContext(map[string]any{"fields": missing})
	}
	return nil
}

func validateEmailFormat(email string) error {
	if !validation.Email(email) {
		return ErrInvalidEmail
	}
	return nil
}

func validateHeight(h int) error {
	if h < MinHeight || h > MaxHeight {
		return ErrInvalidHeight
	}
	return nil
}

// validateWeight applies to the initial weight only; the target weight is
// checked for presence but never for range.
func validateWeight(w float64) error {
	if w < MinWeight || w > MaxWeight {
		return ErrInvalidWeight
	}
	return nil
}

func validateDateRange(start, target timeutil.Date) error {
	if start.DaysUntil(target) < MinGoalDays {
		return ErrInvalidDateRange
	}
	return nil
}

// mergeProfile overlays the supplied fields of in onto existing. Zero values
// in in mean "not supplied" and keep the existing value.
func mergeProfile(existing, in Profile) Profile {
	merged := existing
	if in.Name != "" {
		merged.Name = in.Name
	}
	if in.Email != "" {
		merged.Email = in.Email
	}
	if !in.TargetDate.IsZero() {
		merged.TargetDate = in.TargetDate
	}
	if in.Height != 0 {
		merged.Height = in.Height
	}
	if in.InitialWeight != 0 {
		merged.InitialWeight = in.InitialWeight
	}
	if in.TargetWeight != 0 {
		merged.TargetWeight = in.TargetWeight
	}
	if in.Sex != "" {
		merged.Sex = in.Sex
	}
	return merged
}

// changedFields names the fields whose values differ between before and after.
func changedFields(before, after Profile) []string {
	var changed []string
	if before.Name != after.Name {
		changed = append(changed, "name")
	}
	if before.Email != after.Email {
		changed = append(changed, "email")
	}
	if before.Height != after.Height {
		changed = append(changed, "height")
	}
	if before.InitialWeight != after.InitialWeight {
		changed = append(changed, "initialWeight")
	}
	if before.TargetWeight != after.TargetWeight {
		changed = append(changed, "targetWeight")
	}
	if !before.TargetDate.Equal(after.TargetDate.Time) {
		changed = append(changed, "targetDate")
	}
	if before.Sex != after.Sex {
		changed = append(changed, "sex")
	}
	return changed
}
