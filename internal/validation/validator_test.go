package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"ana@x.com", true},
		{"first.last+tag@example.co.uk", true},
		{"", false},
		{"not-an-email", false},
		{"@example.com", false},
		{"ana@", false},
		{"ana @x.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Email(tt.in))
		})
	}
}

type nested struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

type sample struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"min=2"`
	Level string `json:"level" validate:"oneof=debug info"`
	DB    nested `json:"database"`
}

func TestValidateStructOK(t *testing.T) {
	err := ValidateStruct(sample{
		Email: "ana@x.com",
		Name:  "Ana",
		Level: "info",
		DB:    nested{URL: "postgres://localhost/db"},
	})
	assert.NoError(t, err)
}

func TestValidateStructCollectsFieldErrors(t *testing.T) {
	err := ValidateStruct(sample{Email: "bad", Name: "A", Level: "loud"})
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "invalid email, and 3 other errors", verr.Error())

	fields := verr.Fields()
	assert.Equal(t, []string{"must be a valid email"}, fields["email"])
	assert.Equal(t, []string{"must be at least 2 characters"}, fields["name"])
	assert.Equal(t, []string{"must be one of [debug info]"}, fields["level"])
	assert.Equal(t, []string{"is required"}, fields["database.url"])

	assert.Equal(t, 400, verr.ProblemStatus())
	assert.Equal(t, "ErrValidation", verr.ProblemCode())
}

func TestValidateStructSummaryWithoutEmail(t *testing.T) {
	err := ValidateStruct(sample{Email: "ana@x.com", Name: "Ana", Level: "info"})
	require.Error(t, err)
	assert.Equal(t, "database.url is required", err.Error())
}
