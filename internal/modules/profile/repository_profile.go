package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/delordemm1/go-weight-goal-api/internal/database"
)

var returningAll = "RETURNING " + strings.Join(profileColumns, ", ")

func (r *repository) selectProfiles() squirrel.SelectBuilder {
	return r.psql.Select(profileColumns...).From(profilesTable)
}

func (r *repository) insertQuery(p *Profile) (string, []any, error) {
	return r.psql.Insert(profilesTable).
		Columns("name", "email", "height", "initial_weight", "target_weight", "target_date", "start_date", "sex").
		Values(p.Name, p.Email, p.Height, p.InitialWeight, p.TargetWeight, p.TargetDate, p.StartDate, p.Sex).
		Suffix(returningAll).
		ToSql()
}

func (r *repository) updateQuery(p *Profile) (string, []any, error) {
	return r.psql.Update(profilesTable).
		Set("name", p.Name).
		Set("email", p.Email).
		Set("height", p.Height).
		Set("initial_weight", p.InitialWeight).
		Set("target_weight", p.TargetWeight).
		Set("target_date", p.TargetDate).
		Set("start_date", p.StartDate).
		Set("sex", p.Sex).
		Where(squirrel.Eq{"id": p.ID}).
		Suffix(returningAll).
		ToSql()
}

// getOne runs a single-row query, mapping "no rows" to ErrNotFound.
func (r *repository) getOne(ctx context.Context, query string, args []any) (*Profile, error) {
	var p Profile
	if err := pgxscan.Get(ctx, r.db, &p, query, args...); err != nil {
		if pgxscan.NotFound(err) || errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound.WithCause(err)
		}
		return nil, err
	}
	return &p, nil
}

// FindByID retrieves a profile by identifier.
func (r *repository) FindByID(ctx context.Context, id int64) (*Profile, error) {
	query, args, err := r.selectProfiles().Where(squirrel.Eq{"id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, err
	}
	return r.getOne(ctx, query, args)
}

// FindByEmail retrieves a profile by email address.
func (r *repository) FindByEmail(ctx context.Context, email string) (*Profile, error) {
	query, args, err := r.selectProfiles().Where(squirrel.Eq{"email": email}).Limit(1).ToSql()
	if err != nil {
		return nil, err
	}
	return r.getOne(ctx, query, args)
}

// ExistsByID reports whether a profile with the identifier exists.
func (r *repository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	query, args, err := r.psql.Select("1").
		Prefix("SELECT EXISTS(").
		From(profilesTable).
		Where(squirrel.Eq{"id": id}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, err
	}

	var exists bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Save inserts or updates p. The UNIQUE(email) constraint backs email
// uniqueness, so a concurrent duplicate surfaces as ErrDuplicateEmail.
func (r *repository) Save(ctx context.Context, p *Profile) (*Profile, error) {
	build := r.insertQuery
	if p.ID != 0 {
		build = r.updateQuery
	}
	query, args, err := build(p)
	if err != nil {
		return nil, err
	}

	saved, err := r.getOne(ctx, query, args)
	if err != nil {
		if database.IsUniqueViolation(err, profilesEmailUniqueKey) {
			return nil, ErrDuplicateEmail.WithCause(err)
		}
		return nil, err
	}
	return saved, nil
}

// DeleteByID removes a profile. Deleting a missing profile returns ErrNotFound.
func (r *repository) DeleteByID(ctx context.Context, id int64) error {
	query, args, err := r.psql.Delete(profilesTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// FindAll returns every profile ordered by identifier.
func (r *repository) FindAll(ctx context.Context) ([]Profile, error) {
	query, args, err := r.selectProfiles().OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}

	var profiles []Profile
	if err := pgxscan.Select(ctx, r.db, &profiles, query, args...); err != nil {
		return nil, err
	}
	return profiles, nil
}
