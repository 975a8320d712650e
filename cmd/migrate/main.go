package main

import (
	"context"
	"database/sql"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/delordemm1/go-weight-goal-api/internal/config"
	"github.com/delordemm1/go-weight-goal-api/internal/logging"
	"github.com/delordemm1/go-weight-goal-api/migrations"
)

// gooseLogger routes goose output through zap.
type gooseLogger struct {
	s *zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.s.Infof(strings.TrimSuffix(format, "\n"), v...)
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.s.Fatalf(strings.TrimSuffix(format, "\n"), v...)
}

func main() {
	logger := logging.Logger()
	defer func() { _ = logging.Sync() }()

	if len(os.Args) < 2 {
		logger.Fatal("missing goose command; usage: migrate [up|down|status|redo|version|...] [args]")
	}
	command, args := os.Args[1], os.Args[2:]

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	if err := cfg.RequireDatabase(); err != nil {
		logger.Fatal("cannot migrate", zap.Error(err))
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		logger.Fatal("failed to open database connection", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		logger.Fatal("failed to ping database", zap.Error(err))
	}

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{s: logger.Sugar()})
	if err := goose.SetDialect("postgres"); err != nil {
		logger.Fatal("failed to set goose dialect", zap.Error(err))
	}

	logger.Info("running goose command", zap.String("command", command))
	if err := goose.RunContext(ctx, command, db, ".", args...); err != nil {
		logger.Fatal("goose command failed", zap.String("command", command), zap.Error(err))
	}
}
