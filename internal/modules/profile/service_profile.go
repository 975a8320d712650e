package profile

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/delordemm1/go-weight-goal-api/internal/logging"
	"github.com/delordemm1/go-weight-goal-api/internal/timeutil"
)

// Create validates p and stores it as a new profile. The identifier and start
// date are assigned here; whatever the caller put in them is ignored.
func (s *service) Create(ctx context.Context, p *Profile) (created *Profile, err error) {
	defer func() { s.audit(ctx, "create", idOf(created), err, nil) }()

	if p == nil {
		return nil, ErrInvalidInput.WithDetail("profile must not be nil")
	}

	candidate := *p
	candidate.ID = 0

	if err := verifyRequiredFields(&candidate); err != nil {
		return nil, err
	}
	if err := validateEmailFormat(candidate.Email); err != nil {
		return nil, err
	}

	_, err = s.repo.FindByEmail(ctx, candidate.Email)
	switch {
	case err == nil:
		return nil, ErrDuplicateEmail
	case !errors.Is(err, ErrNotFound):
		s.log(ctx).Error("failed to check email uniqueness", zap.Error(err))
		return nil, err
	}

	if err := validateHeight(candidate.Height); err != nil {
		return nil, err
	}
	if err := validateWeight(candidate.InitialWeight); err != nil {
		return nil, err
	}

	candidate.StartDate = timeutil.DateOf(s.clock())
	if err := validateDateRange(candidate.StartDate, candidate.TargetDate); err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, &candidate)
	if err != nil {
		if !errors.Is(err, ErrDuplicateEmail) {
			s.log(ctx).Error("failed to save new profile", zap.Error(err))
		}
		return nil, err
	}

	s.log(ctx).Info("profile created", zap.Int64("profile_id", saved.ID))
	return saved, nil
}

// List returns every stored profile.
func (s *service) List(ctx context.Context) ([]Profile, error) {
	profiles, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log(ctx).Error("failed to list profiles", zap.Error(err))
		return nil, err
	}
	return profiles, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Profile, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		s.log(ctx).Error("failed to get profile by id", zap.Int64("profile_id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	p, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log(ctx).Error("failed to get profile by email", zap.Error(err))
		return nil, err
	}
	return p, nil
}

// Update applies a partial profile to the record registered under p.Email.
//
// The record that is validated and saved is the caller's input, carrying the
// existing identifier and start date. Fields left at their zero value are
// therefore reported as missing rather than kept from the stored record; the
// merge with the stored record only feeds the audit trail.
func (s *service) Update(ctx context.Context, p *Profile) (updated *Profile, err error) {
	var (
		profileID int64
		details   map[string]any
	)
	defer func() { s.audit(ctx, "update", profileID, err, details) }()

	if p == nil {
		return nil, ErrInvalidInput.WithDetail("profile must not be nil")
	}
	candidate := *p

	if err := validateEmailFormat(candidate.Email); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByEmail(ctx, candidate.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound.WithDetail("no profile registered with email: " + candidate.Email)
		}
		s.log(ctx).Error("failed to find profile for update", zap.Error(err))
		return nil, err
	}

	candidate.ID = existing.ID
	candidate.StartDate = existing.StartDate
	profileID = candidate.ID

	// Unreachable with a consistent store, kept for stores that disagree
	// between lookups.
	if candidate.ID == 0 {
		return nil, ErrMissingIdentifier
	}
	exists, err := s.repo.ExistsByID(ctx, candidate.ID)
	if err != nil {
		s.log(ctx).Error("failed to check profile existence", zap.Int64("profile_id", candidate.ID), zap.Error(err))
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound.WithDetail(fmt.Sprintf("no profile registered with id: %d", candidate.ID))
	}

	merged := mergeProfile(*existing, candidate)
	details = map[string]any{"changed": changedFields(*existing, merged)}

	if err := verifyRequiredFields(&candidate); err != nil {
		return nil, err
	}
	if err := validateHeight(candidate.Height); err != nil {
		return nil, err
	}
	if err := validateWeight(candidate.InitialWeight); err != nil {
		return nil, err
	}
	if err := validateDateRange(candidate.StartDate, candidate.TargetDate); err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, &candidate)
	if err != nil {
		s.log(ctx).Error("failed to save profile update", zap.Int64("profile_id", candidate.ID), zap.Error(err))
		return nil, err
	}

	s.log(ctx).Info("profile updated", zap.Int64("profile_id", saved.ID))
	return saved, nil
}

// Delete removes the profile with the given identifier. Only 0 is rejected as
// invalid; negative identifiers simply do not exist.
func (s *service) Delete(ctx context.Context, id int64) (err error) {
	defer func() { s.audit(ctx, "delete", id, err, nil) }()

	if id == 0 {
		return ErrInvalidInput.WithDetail("a valid profile identifier is required")
	}

	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		s.log(ctx).Error("failed to check profile existence", zap.Int64("profile_id", id), zap.Error(err))
		return err
	}
	if !exists {
		return ErrNotFound.WithDetail(fmt.Sprintf("no profile registered with id: %d", id))
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		s.log(ctx).Error("failed to delete profile", zap.Int64("profile_id", id), zap.Error(err))
		return err
	}

	s.log(ctx).Info("profile deleted", zap.Int64("profile_id", id))
	return nil
}

func (s *service) audit(ctx context.Context, action string, id int64, err error, details map[string]any) {
	result := logging.AuditSuccess
	if err != nil {
		result = logging.AuditFailure
		reason := Code(err)
		if reason == "" {
			reason = "internal_error"
		}
		if details == nil {
			details = map[string]any{}
		}
		details["reason"] = reason
	}

	var resourceID string
	if id != 0 {
		resourceID = strconv.FormatInt(id, 10)
	}
	logging.AuditEvent(logging.WithLogger(ctx, s.log(ctx)), action, "profile", resourceID, result, details)
}

func idOf(p *Profile) int64 {
	if p == nil {
		return 0
	}
	return p.ID
}
