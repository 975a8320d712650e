package profile

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"
)

// Handler holds the dependencies for the profile HTTP handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new handler for the profile module.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the profile operations on api.
func (h *Handler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-profile",
		Method:        http.MethodPost,
		Path:          "/profiles",
		Summary:       "Create a profile",
		Tags:          []string{"Profiles"},
		DefaultStatus: http.StatusCreated,
	}, h.CreateHandler)

	huma.Register(api, huma.Operation{
		OperationID: "list-profiles",
		Method:      http.MethodGet,
		Path:        "/profiles",
		Summary:     "List all profiles",
		Tags:        []string{"Profiles"},
	}, h.ListHandler)

	// Registered before /profiles/{id} so "lookup" is never parsed as an id.
	huma.Register(api, huma.Operation{
		OperationID: "get-profile-by-email",
		Method:      http.MethodGet,
		Path:        "/profiles/lookup",
		Summary:     "Find a profile by email",
		Tags:        []string{"Profiles"},
	}, h.GetByEmailHandler)

	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/profiles/{id}",
		Summary:     "Get a profile by id",
		Tags:        []string{"Profiles"},
	}, h.GetByIDHandler)

	huma.Register(api, huma.Operation{
		OperationID: "update-profile",
		Method:      http.MethodPatch,
		Path:        "/profiles",
		Summary:     "Update the profile registered under the body's email",
		Tags:        []string{"Profiles"},
	}, h.UpdateHandler)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-profile",
		Method:        http.MethodDelete,
		Path:          "/profiles/{id}",
		Summary:       "Delete a profile",
		Tags:          []string{"Profiles"},
		DefaultStatus: http.StatusNoContent,
	}, h.DeleteHandler)
}
