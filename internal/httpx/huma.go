package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/delordemm1/go-weight-goal-api/internal/logging"
)

var installOnce sync.Once

// Install makes huma render its own errors (body parsing, schema validation,
// unknown routes inside the API) as Problem values.
func Install() {
	installOnce.Do(func() {
		huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
			return statusProblem(context.Background(), status, msg, errs)
		}
		huma.NewErrorWithContext = func(hctx huma.Context, status int, msg string, errs ...error) huma.StatusError {
			ctx := context.Background()
			if hctx != nil {
				ctx = hctx.Context()
			}
			return statusProblem(ctx, status, msg, errs)
		}
	})
}

func statusProblem(ctx context.Context, status int, msg string, errs []error) *Problem {
	code := "Err" + strings.ReplaceAll(http.StatusText(status), " ", "")
	if status == http.StatusUnprocessableEntity || status == http.StatusBadRequest {
		code = "ErrValidation"
	}

	p := &Problem{
		Type:      "urn:problem:" + toKebab(code),
		Title:     http.StatusText(status),
		Status:    status,
		Detail:    defaultDetail(msg, status),
		Code:      code,
		RequestID: middleware.GetReqID(ctx),
	}
	for _, err := range errs {
		if err == nil {
			continue
		}
		var detailer huma.ErrorDetailer
		if errors.As(err, &detailer) {
			p.Errors = append(p.Errors, detailer.ErrorDetail())
			continue
		}
		p.Errors = append(p.Errors, &huma.ErrorDetail{Message: err.Error()})
	}

	if status >= http.StatusInternalServerError {
		logging.Error(ctx, msg, errors.Join(errs...), zap.Int("status", status))
	} else {
		logging.Warn(ctx, msg, zap.Int("status", status), zap.Int("issues", len(p.Errors)))
	}
	return p
}
