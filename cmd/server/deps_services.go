package main

import (
	"go.uber.org/zap"

	"github.com/BenjaminKakai/clientmanagementbackend/internal/config"
	"github.com/BenjaminKakai/clientmanagementbackend/internal/service"
)

// Services holds all service instances
type Services struct {
	Client   *service.ClientService
	Document *service.DocumentService
	Auth     *service.AuthService
}

// initServices initializes all services
func initServices(cfg *config.Config, logger *zap.Logger, dbs *Databases, repos *Repositories) *Services {
	return &Services{
		Client: service.NewClientService(repos.Client, dbs.Blobs, logger),
		Document: service.NewDocumentService(
			repos.Document,
			repos.Client,
			dbs.Blobs,
			dbs.Postgres,
			cfg.Upload.MaxFiles,
			logger,
		),
		Auth: service.NewAuthService(cfg.JWT, repos.User, repos.Tokens, logger),
	}
}
