package main

import (
	"go.uber.org/zap"

	"github.com/BenjaminKakai/clientmanagementbackend/internal/handler"
)

// Handlers holds all handler instances
type Handlers struct {
	Health    *handler.HealthHandler
	Clients   *handler.ClientsHandler
	Documents *handler.DocumentsHandler
	Auth      *handler.AuthHandler
	Docs      *handler.DocsHandler
}

// initHandlers initializes all handlers
func initHandlers(logger *zap.Logger, dbs *Databases, svcs *Services, version string) *Handlers {
	// A nil *RedisDB would be a non-nil Pinger, so only pass it when set
	var redisPinger handler.Pinger
	if dbs.Redis != nil {
		redisPinger = dbs.Redis
	}

	return &Handlers{
		Health:    handler.NewHealthHandler(dbs.Postgres, dbs.Blobs, redisPinger, version),
		Clients:   handler.NewClientsHandler(svcs.Client, logger),
		Documents: handler.NewDocumentsHandler(svcs.Document, logger),
		Auth:      handler.NewAuthHandler(svcs.Auth, logger),
		Docs:      handler.NewDocsHandler(),
	}
}
