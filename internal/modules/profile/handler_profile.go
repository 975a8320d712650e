package profile

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/delordemm1/go-weight-goal-api/internal/httpx"
	"github.com/delordemm1/go-weight-goal-api/internal/logging"
	"github.com/delordemm1/go-weight-goal-api/internal/timeutil"
)

// --- DTOs & Mappers ---

// ProfileInput is the request body for create and update. Every field is
// optional here; the service decides what is missing or out of range.
type ProfileInput struct {
	Name          string        `json:"name,omitempty" maxLength:"200"`
	Email         string        `json:"email,omitempty" maxLength:"320"`
	Height        int           `json:"height,omitempty" doc:"Height in centimetres"`
	InitialWeight float64       `json:"initialWeight,omitempty" doc:"Weight in kg at the start of the goal"`
	TargetWeight  float64       `json:"targetWeight,omitempty" doc:"Goal weight in kg"`
	TargetDate    timeutil.Date `json:"targetDate,omitempty"`
	Sex           string        `json:"sex,omitempty" enum:"F,M"`
}

func (in *ProfileInput) toProfile() *Profile {
	return &Profile{
		Name:          in.Name,
		Email:         in.Email,
		Height:        in.Height,
		InitialWeight: in.InitialWeight,
		TargetWeight:  in.TargetWeight,
		TargetDate:    in.TargetDate,
		Sex:           Sex(in.Sex),
	}
}

// ProfileBody is the public representation of a profile.
type ProfileBody struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Height        int           `json:"height"`
	InitialWeight float64       `json:"initialWeight"`
	TargetWeight  float64       `json:"targetWeight"`
	TargetDate    timeutil.Date `json:"targetDate"`
	StartDate     timeutil.Date `json:"startDate"`
	Sex           string        `json:"sex"`
}

func toProfileBody(p *Profile) ProfileBody {
	return ProfileBody{
		ID:            p.ID,
		Name:          p.Name,
		Email:         p.Email,
		Height:        p.Height,
		InitialWeight: p.InitialWeight,
		TargetWeight:  p.TargetWeight,
		TargetDate:    p.TargetDate,
		StartDate:     p.StartDate,
		Sex:           string(p.Sex),
	}
}

type ProfileRequest struct {
	Body ProfileInput
}

type ProfileResponse struct {
	Body ProfileBody
}

type CreateProfileResponse struct {
	Location string `header:"Location"`
	Body     ProfileBody
}

type ListProfilesResponse struct {
	Body struct {
		Profiles []ProfileBody `json:"profiles"`
	}
}

type ProfileIDParam struct {
	ID int64 `path:"id" doc:"Profile identifier"`
}

type ProfileEmailQuery struct {
	Email string `query:"email" doc:"Registered email address"`
}

// --- Handlers ---

func (h *Handler) log(ctx context.Context) *zap.Logger {
	return logging.FromContextOr(ctx, h.logger)
}

// CreateHandler registers a new profile and points Location at it.
func (h *Handler) CreateHandler(ctx context.Context, input *ProfileRequest) (*CreateProfileResponse, error) {
	h.log(ctx).Debug("handling create profile request")

	created, err := h.service.Create(ctx, input.Body.toProfile())
	if err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}

	return &CreateProfileResponse{
		Location: fmt.Sprintf("/profiles/%d", created.ID),
		Body:     toProfileBody(created),
	}, nil
}

func (h *Handler) ListHandler(ctx context.Context, _ *struct{}) (*ListProfilesResponse, error) {
	profiles, err := h.service.List(ctx)
	if err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}

	resp := &ListProfilesResponse{}
	resp.Body.Profiles = make([]ProfileBody, 0, len(profiles))
	for i := range profiles {
		resp.Body.Profiles = append(resp.Body.Profiles, toProfileBody(&profiles[i]))
	}
	return resp, nil
}

// GetByIDHandler answers 404 when the service finds nothing.
func (h *Handler) GetByIDHandler(ctx context.Context, input *ProfileIDParam) (*ProfileResponse, error) {
	p, err := h.service.GetByID(ctx, input.ID)
	if err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}
	if p == nil {
		return nil, httpx.ToProblem(ctx, ErrNotFound.WithDetail(fmt.Sprintf("no profile registered with id: %d", input.ID)))
	}
	return &ProfileResponse{Body: toProfileBody(p)}, nil
}

func (h *Handler) GetByEmailHandler(ctx context.Context, input *ProfileEmailQuery) (*ProfileResponse, error) {
	p, err := h.service.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}
	return &ProfileResponse{Body: toProfileBody(p)}, nil
}

// UpdateHandler applies a partial update to the profile registered under the
// body's email.
func (h *Handler) UpdateHandler(ctx context.Context, input *ProfileRequest) (*ProfileResponse, error) {
	h.log(ctx).Debug("handling update profile request")

	updated, err := h.service.Update(ctx, input.Body.toProfile())
	if err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}
	return &ProfileResponse{Body: toProfileBody(updated)}, nil
}

func (h *Handler) DeleteHandler(ctx context.Context, input *ProfileIDParam) (*struct{}, error) {
	if err := h.service.Delete(ctx, input.ID); err != nil {
		return nil, httpx.ToProblem(ctx, err)
	}
	return nil, nil
}
