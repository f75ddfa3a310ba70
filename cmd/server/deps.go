package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/BenjaminKakai/clientmanagementbackend/internal/config"
	"github.com/BenjaminKakai/clientmanagementbackend/internal/middleware"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	Databases    *Databases
	Repositories *Repositories
	Services     *Services
	Handlers     *Handlers

	AuthMiddleware *middleware.AuthMiddleware
}

// initDependencies initializes all dependencies
func initDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	dbs, err := initDatabases(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	repos := initRepositories(dbs)
	svcs := initServices(cfg, logger, dbs, repos)

	return &Dependencies{
		Config:         cfg,
		Logger:         logger,
		Databases:      dbs,
		Repositories:   repos,
		Services:       svcs,
		Handlers:       initHandlers(logger, dbs, svcs, appVersion),
		AuthMiddleware: middleware.NewAuthMiddleware(svcs.Auth),
	}, nil
}

// Close closes all dependencies
func (d *Dependencies) Close() {
	if d.Databases != nil {
		d.Databases.Close()
	}
}
