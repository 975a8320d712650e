package server

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/delordemm1/go-weight-goal-api/internal/httpx"
	"github.com/delordemm1/go-weight-goal-api/internal/logging"
	"github.com/delordemm1/go-weight-goal-api/internal/modules/profile"
)

const (
	apiTitle       = "Weight Goal API"
	apiVersion     = "1.0.0"
	requestTimeout = 60 * time.Second
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Body struct {
		Status string `json:"status" example:"ok"`
	}
}

// New builds the router with the standard middleware chain and every module's
// routes registered.
func New(log *zap.Logger, profileService profile.Service) chi.Router {
	httpx.Install()

	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logging.RequestLogger(log))
	router.Use(logging.AccessLogger())
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(requestTimeout))

	api := humachi.New(router, huma.DefaultConfig(apiTitle, apiVersion))

	profileHandler := profile.NewHandler(profileService, log)
	profileHandler.RegisterRoutes(api)

	huma.Register(api, huma.Operation{
		OperationID: "get-health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health Check",
		Description: "Responds with the server's health status.",
		Tags:        []string{"Health"},
	}, func(ctx context.Context, _ *struct{}) (*HealthResponse, error) {
		resp := &HealthResponse{}
		resp.Body.Status = "ok"
		return resp, nil
	})

	return router
}
