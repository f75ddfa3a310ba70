package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver for database/sql

	"github.com/BenjaminKakai/clientmanagementbackend/internal/config"
)

// NewSQLX opens a database/sql pool through lib/pq, sized from the same
// configuration as the pgx pool. Used by the credential store.
func NewSQLX(ctx context.Context, cfg config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect sqlx: %w", err)
	}

	// Credential lookups are rare; keep this pool small
	maxOpen := int(cfg.MaxConns) / 4
	if maxOpen < 2 {
		maxOpen = 2
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(1)
	db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)
	db.SetConnMaxLifetime(cfg.MaxConnLifetime)

	return db, nil
}
