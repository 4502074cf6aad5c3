package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/stocktrack/inventory-backend/internal/config"
	"github.com/stocktrack/inventory-backend/migrations"
)

// runMigrations applies the embedded goose migrations.
// goose requires *sql.DB, so a short-lived database/sql connection is
// opened next to the pgx pool.
func runMigrations(ctx context.Context, logger *slog.Logger, cfg config.DatabaseConfig) error {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	logger.Info("migrations applied", slog.Int("count", len(results)))
	return nil
}
