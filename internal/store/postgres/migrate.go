package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies all pending schema migrations. It uses a separate
// database/sql connection because goose does not speak the pgx pool API.
func Migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("postgres.Migrate: open: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrationsFS)

	if err = goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("postgres.Migrate: dialect: %w", err)
	}

	if err = goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("postgres.Migrate: up: %w", err)
	}

	return nil
}
