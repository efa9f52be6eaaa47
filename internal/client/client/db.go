package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dkolesov/flashdeck/internal/client/migrations"
	"github.com/dkolesov/flashdeck/internal/client/repositories/credentials"
)

// Repositories bundles the local persistence layer handed to services.
type Repositories struct {
	Credentials credentials.Repository
	DB          *sql.DB
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the local SQLite store, applies embedded migrations and
// returns the repositories over it.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	return &Repositories{
		Credentials: credentials.NewSQLiteRepository(db),
		DB:          db,
	}, nil
}
