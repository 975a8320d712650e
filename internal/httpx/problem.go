package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/delordemm1/go-weight-goal-api/internal/logging"
)

// Problem is an RFC 9457 problem+json body with extensions:
//   - code: stable business code (e.g. ErrDuplicateEmail)
//   - context: extra error payload (e.g. the missing fields)
//   - requestId: propagated from chi middleware.RequestID
type Problem struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title,omitempty"`
	Status   int    `json:"status,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// Schema and parsing failures reported by huma.
	Errors []*huma.ErrorDetail `json:"errors,omitempty"`

	Code      string `json:"code,omitempty"`
	Context   any    `json:"context,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func (p *Problem) Error() string {
	if p.Detail != "" {
		return p.Detail
	}
	if p.Title != "" {
		return p.Title
	}
	return http.StatusText(p.GetStatus())
}

// GetStatus implements huma.StatusError.
func (p *Problem) GetStatus() int {
	if p.Status == 0 {
		return http.StatusInternalServerError
	}
	return p.Status
}

// ContentType implements huma.ContentTypeFilter.
func (p *Problem) ContentType(ct string) string {
	if ct == "application/json" {
		return "application/problem+json"
	}
	return ct
}

// DomainProblem lets any module's error type describe itself as a problem
// without httpx knowing the concrete type.
type DomainProblem interface {
	ProblemCode() string
	ProblemStatus() int
	ProblemTitle() string
	ProblemDetail() string
	ProblemTypeURI() string
	ProblemContext() any
}

// ToProblem converts err into a response error for huma.
//
//   - huma.StatusError values (including *Problem) pass through.
//   - DomainProblem values are formatted into a Problem.
//   - Anything else is logged and hidden behind a generic 500.
func ToProblem(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var se huma.StatusError
	if errors.As(err, &se) {
		return se
	}

	var dp DomainProblem
	if errors.As(err, &dp) {
		code := dp.ProblemCode()
		status := dp.ProblemStatus()
		typeURI := dp.ProblemTypeURI()
		if typeURI == "" {
			typeURI = "urn:problem:" + toKebab(code)
		}
		if status >= http.StatusInternalServerError {
			logging.Error(ctx, "request failed", err, zap.String("code", code))
		}
		return &Problem{
			Type:      typeURI,
			Title:     defaultTitle(dp.ProblemTitle(), status),
			Status:    status,
			Detail:    defaultDetail(dp.ProblemDetail(), status),
			Code:      code,
			Context:   dp.ProblemContext(),
			RequestID: middleware.GetReqID(ctx),
		}
	}

	logging.Error(ctx, "unhandled error", err)
	return InternalProblem(ctx, "")
}

// ValidationProblem builds a 400 problem carrying a per-field message map.
func ValidationProblem(ctx context.Context, summary string, fields map[string][]string) *Problem {
	if summary == "" {
		summary = "Validation error"
	}
	return &Problem{
		Type:      "urn:problem:validation-error",
		Title:     "Validation error",
		Status:    http.StatusBadRequest,
		Detail:    summary,
		Code:      "ErrValidation",
		Context:   map[string]any{"fields": fields},
		RequestID: middleware.GetReqID(ctx),
	}
}

// InternalProblem builds a generic 500 problem. An empty detail gets a safe
// default message.
func InternalProblem(ctx context.Context, detail string) *Problem {
	if detail == "" {
		detail = "Something went wrong. Please try again later."
	}
	return &Problem{
		Type:      "urn:problem:internal",
		Title:     http.StatusText(http.StatusInternalServerError),
		Status:    http.StatusInternalServerError,
		Detail:    detail,
		Code:      "ErrInternal",
		RequestID: middleware.GetReqID(ctx),
	}
}

func defaultTitle(title string, status int) string {
	if title != "" {
		return title
	}
	return http.StatusText(status)
}

func defaultDetail(detail string, status int) string {
	if detail != "" {
		return detail
	}
	switch status {
	case http.StatusNotFound:
		return "Not found"
	case http.StatusConflict:
		return "Conflict"
	case http.StatusBadRequest:
		return "Bad request"
	default:
		return http.StatusText(status)
	}
}

// toKebab turns codes like ErrNotFound or PROFILE_NOT_FOUND into
// err-not-found and profile-not-found.
func toKebab(s string) string {
	var b strings.Builder
	prevLowerOrDigit := false
	for _, r := range s {
		switch {
		case r == '_' || r == ' ' || r == '-':
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "-") {
				b.WriteByte('-')
			}
			prevLowerOrDigit = false
			continue
		case unicode.IsUpper(r) && prevLowerOrDigit:
			b.WriteByte('-')
		}
		b.WriteRune(unicode.ToLower(r))
		prevLowerOrDigit = unicode.IsLower(r) || unicode.IsDigit(r)
	}
	return b.String()
}
