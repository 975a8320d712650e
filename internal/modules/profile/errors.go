package profile

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError is a structured, self-describing error for the profile module.
// It carries RFC 9457 metadata so httpx.ToProblem can render any of them
// without enumerating types.
type DomainError struct {
	// Code is a stable, machine-readable business code (e.g. "ErrInvalidHeight").
	Code string

	// HTTPStatus is the status suggested for this error.
	HTTPStatus int

	// Title is a short human summary; empty means StatusText(HTTPStatus).
	Title string

	// Message is the default human-readable message.
	Message string

	// Detail overrides Message for clients when set.
	Detail string

	// TypeURI is an RFC 9457 type URI, e.g. "urn:problem:profile/err-not-found".
	TypeURI string

	// Context is an optional extension payload (e.g. the missing fields).
	Context any

	cause error
}

func (e *DomainError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = e.Message
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is matches on Code, so copies made by the With* helpers still satisfy
// errors.Is against the package sentinels.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of e wrapping err.
func (e *DomainError) WithCause(err error) *DomainError {
	if err == nil {
		return e
	}
	cp := *e
	cp.cause = err
	return &cp
}

// WithDetail returns a copy of e with a client-facing detail message.
func (e *DomainError) WithDetail(detail string) *DomainError {
	cp := *e
	cp.Detail = detail
	return &cp
}

// WithContext returns a copy of e carrying an extension payload.
func (e *DomainError) WithContext(ctx any) *DomainError {
	cp := *e
	cp.Context = ctx
	return &cp
}

func (e *DomainError) ProblemCode() string { return e.Code }

func (e *DomainError) ProblemStatus() int {
	if e.HTTPStatus == 0 {
		return http.StatusInternalServerError
	}
	return e.HTTPStatus
}

func (e *DomainError) ProblemTitle() string   { return e.Title }
func (e *DomainError) ProblemTypeURI() string { return e.TypeURI }
func (e *DomainError) ProblemContext() any    { return e.Context }

func (e *DomainError) ProblemDetail() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Message
}

// Code returns the DomainError code carried by err, or "" when err is not one.
func Code(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

var (
	ErrInvalidInput = &DomainError{
		Code:       "ErrInvalidInput",
		HTTPStatus: http.StatusBadRequest,
		Title:      "Bad Request",
		Message:    "invalid input",
		TypeURI:    "urn:problem:profile/err-invalid-input",
	}

	ErrMissingField = &DomainError{
		Code:       "ErrMissingField",
		HTTPStatus: http.StatusBadRequest,
		Title:      "Bad Request",
		Message:    "all fields must be filled in",
		TypeURI:    "urn:problem:profile/err-missing-field",
	}

	ErrInvalidEmail = &DomainError{
		Code:       "ErrInvalidEmail",
		HTTPStatus: http.StatusBadRequest,
		Title:      "Bad Request",
		Message:    "invalid email",
		TypeURI:    "urn:problem:profile/err-invalid-email",
	}

	ErrDuplicateEmail = &DomainError{
		Code:       "ErrDuplicateEmail",
		HTTPStatus: http.StatusConflict,
		Title:      "Conflict",
		Message:    "email already registered",
		TypeURI:    "urn:problem:profile/err-duplicate-email",
	}

	ErrInvalidHeight = &DomainError{
		Code:       "ErrInvalidHeight",
		HTTPStatus: http.StatusBadRequest,
		Title:      "Bad Request",
		Message:    fmt.Sprintf("height must be between %d and %d cm", MinHeight, MaxHeight),
		TypeURI:    "urn:problem:profile/err-invalid-height",
	}

	ErrInvalidWeight = &DomainError{
		Code:       "ErrInvalidWeight",
		HTTPStatus: http.StatusBadRequest,
		Title:      "Bad Request",
		Message:    fmt.Sprintf("weight must be between %g and %g kg", MinWeight, MaxWeight),
		TypeURI:    "urn:problem:profile/err-invalid-weight",
	}

	ErrInvalidDateRange = &DomainError{
		Code:       "ErrInvalidDateRange",
		HTTPStatus: http.StatusBadRequest,
		Title:      "Bad Request",
		Message:    fmt.Sprintf("invalid date: the target date must be at least %d days after the start date", MinGoalDays),
		TypeURI:    "urn:problem:profile/err-invalid-date-range",
	}

	ErrNotFound = &DomainError{
		Code:       "ErrNotFound",
		HTTPStatus: http.StatusNotFound,
		Title:      "Not Found",
		Message:    "profile not found",
		TypeURI:    "urn:problem:profile/err-not-found",
	}

	ErrMissingIdentifier = &DomainError{
		Code:       "ErrMissingIdentifier",
		HTTPStatus: http.StatusBadRequest,
		Title:      "Bad Request",
		Message:    "a profile identifier is required",
		TypeURI:    "urn:problem:profile/err-missing-identifier",
	}
)
