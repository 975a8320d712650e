package profile

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/delordemm1/go-weight-goal-api/internal/logging"
)

// Service defines the business operations on weight-goal profiles.
type Service interface {
	Create(ctx context.Context, p *Profile) (*Profile, error)
	List(ctx context.Context) ([]Profile, error)
	// GetByID returns (nil, nil) when no profile has the identifier.
	GetByID(ctx context.Context, id int64) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	Update(ctx context.Context, p *Profile) (*Profile, error)
	Delete(ctx context.Context, id int64) error
}

// service implements the Service interface.
type service struct {
	repo   Repository
	logger *zap.Logger
	clock  func() time.Time
}

// Config holds the dependencies for the profile service.
type Config struct {
	Repo   Repository
	Logger *zap.Logger
	// Clock supplies "today" for new profiles. Defaults to time.Now.
	Clock func() time.Time
}

// NewService creates a new profile service with the given dependencies.
func NewService(cfg *Config) Service {
	s := &service{
		repo:   cfg.Repo,
		logger: cfg.Logger,
		clock:  cfg.Clock,
	}
	if s.logger == nil {
		s.logger = logging.Logger()
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	return s
}

// log prefers the request-scoped logger so entries carry the request id.
func (s *service) log(ctx context.Context) *zap.Logger {
	return logging.FromContextOr(ctx, s.logger)
}
