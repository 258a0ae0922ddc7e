package db

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed migrations/postgres.sql
var PostgresSchema string

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Migrate creates the tables when missing. Safe to run on every start.
func Migrate(ctx context.Context, db execer) error {
	if _, err := db.Exec(ctx, PostgresSchema); err != nil {
		return fmt.Errorf("apply postgres schema: %w", err)
	}
	return nil
}
