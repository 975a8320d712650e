package profile

import (
	"github.com/delordemm1/go-weight-goal-api/internal/timeutil"
)

// Validation bounds.
const (
	MinHeight   = 100 // cm
	MaxHeight   = 300 // cm
	MinWeight   = 30.0
	MaxWeight   = 300.0
	MinGoalDays = 7
)

// Sex is the profile's declared sex.
type Sex string

const (
	SexFemale Sex = "F"
	SexMale   Sex = "M"
)

// Profile is a user's weight-goal record.
//
// Zero values double as "not supplied" markers in partial updates: 0 for the
// numeric fields, "" for text and the zero Date for dates. A numeric field can
// therefore never be updated to zero.
type Profile struct {
	ID            int64         `db:"id"             json:"id"`
	Name          string        `db:"name"           json:"name"`
	Email         string        `db:"email"          json:"email"`
	Height        int           `db:"height"         json:"height"`
	InitialWeight float64       `db:"initial_weight" json:"initialWeight"`
	TargetWeight  float64       `db:"target_weight"  json:"targetWeight"`
	TargetDate    timeutil.Date `db:"target_date"    json:"targetDate"`
	StartDate     timeutil.Date `db:"start_date"     json:"startDate"`
	Sex           Sex           `db:"sex"            json:"sex"`
}
