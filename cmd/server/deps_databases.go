package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/BenjaminKakai/clientmanagementbackend/internal/config"
	"github.com/BenjaminKakai/clientmanagementbackend/internal/pkg/database"
	"github.com/BenjaminKakai/clientmanagementbackend/internal/storage"
)

// Databases holds all datastore connections
type Databases struct {
	Postgres *database.PostgresDB
	SQLX     *sqlx.DB
	Redis    *database.RedisDB
	Blobs    storage.BlobStore
}

// initDatabases opens every datastore. Redis is optional: without it token
// revocation is disabled.
func initDatabases(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Databases, error) {
	dbs := &Databases{}

	pgDB, err := database.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	dbs.Postgres = pgDB

	if err := pgDB.ApplySchema(ctx); err != nil {
		dbs.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	sqlxDB, err := database.NewSQLX(ctx, cfg.Postgres)
	if err != nil {
		dbs.Close()
		return nil, fmt.Errorf("failed to initialize credential store: %w", err)
	}
	dbs.SQLX = sqlxDB

	if cfg.Redis.Enabled() {
		redisDB, err := database.NewRedis(ctx, cfg.Redis)
		if err != nil {
			dbs.Close()
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		dbs.Redis = redisDB
	} else {
		logger.Warn("redis not configured, logout will not revoke tokens")
	}

	blobs, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		dbs.Close()
		return nil, fmt.Errorf("failed to initialize document storage: %w", err)
	}
	dbs.Blobs = blobs
	logger.Info("document storage ready", zap.String("backend", cfg.Storage.Backend))

	return dbs, nil
}

// Close closes all datastore connections
func (d *Databases) Close() {
	if d.Blobs != nil {
		if c, ok := d.Blobs.(io.Closer); ok {
			_ = c.Close()
		}
	}
	if d.Redis != nil {
		_ = d.Redis.Close()
	}
	if d.SQLX != nil {
		_ = d.SQLX.Close()
	}
	if d.Postgres != nil {
		d.Postgres.Close()
	}
}
