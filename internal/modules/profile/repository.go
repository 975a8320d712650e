package profile

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/delordemm1/go-weight-goal-api/internal/database"
)

// Repository is the record store the profile service depends on.
// Lookups return ErrNotFound when nothing matches.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*Profile, error)
	FindByEmail(ctx context.Context, email string) (*Profile, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	// Save inserts p when p.ID is 0, assigning a new identifier, and
	// replaces the stored record otherwise. It returns the stored record.
	Save(ctx context.Context, p *Profile) (*Profile, error)
	DeleteByID(ctx context.Context, id int64) error
	FindAll(ctx context.Context) ([]Profile, error)
}

const (
	profilesTable          = "profiles"
	profilesEmailUniqueKey = "profiles_email_key"
)

var profileColumns = []string{
	"id", "name", "email", "height", "initial_weight", "target_weight", "target_date", "start_date", "sex",
}

// repository implements Repository using pgx and squirrel.
type repository struct {
	db   database.DBTX
	psql squirrel.StatementBuilderType
}

// NewRepository creates a Postgres-backed profile repository.
func NewRepository(db database.DBTX) Repository {
	return &repository{
		db:   db,
		psql: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}
