package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/delordemm1/go-weight-goal-api/internal/logging"
)

// DBTX is the query surface shared by *pgxpool.Pool, *pgx.Conn and pgx.Tx,
// so repositories work inside or outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ DBTX = (*pgxpool.Pool)(nil)

// PoolOptions controls connection retries.
type PoolOptions struct {
	MaxRetries int
	RetryDelay time.Duration
}

// DefaultPoolOptions suits containerized environments where the database
// may start after the API.
var DefaultPoolOptions = PoolOptions{MaxRetries: 5, RetryDelay: 5 * time.Second}

// NewPostgresPool creates a PostgreSQL connection pool, retrying the initial
// ping until it succeeds, attempts run out or ctx is done.
func NewPostgresPool(ctx context.Context, databaseURL string, opts PoolOptions) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, errors.New("database url is empty")
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 1
	}

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	logger := logging.FromContext(ctx)
	var lastErr error
	for attempt := 1; attempt <= opts.MaxRetries; attempt++ {
		pool, err := pgxpool.NewWithConfig(ctx, cfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				logger.Info("connected to postgres", zap.Int("attempt", attempt))
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err
		if attempt == opts.MaxRetries {
			break
		}

		logger.Warn("could not connect to postgres, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", opts.MaxRetries),
			zap.Duration("retry_in", opts.RetryDelay),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(opts.RetryDelay):
		}
	}
	return nil, fmt.Errorf("connect to postgres after %d attempts: %w", opts.MaxRetries, lastErr)
}

// UniqueViolationCode is the SQLSTATE for unique_violation.
const UniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a unique constraint violation,
// optionally restricted to the named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != UniqueViolationCode {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
