package main

import (
	pgrepo "github.com/BenjaminKakai/clientmanagementbackend/internal/repository/postgres"
	redisrepo "github.com/BenjaminKakai/clientmanagementbackend/internal/repository/redis"
	"github.com/BenjaminKakai/clientmanagementbackend/internal/service"
)

// Repositories holds all repository instances
type Repositories struct {
	Client   *pgrepo.ClientRepository
	Document *pgrepo.DocumentRepository
	User     *pgrepo.UserRepository
	Tokens   service.TokenStore
}

// initRepositories initializes all repositories
func initRepositories(dbs *Databases) *Repositories {
	repos := &Repositories{
		Client:   pgrepo.NewClientRepository(dbs.Postgres),
		Document: pgrepo.NewDocumentRepository(dbs.Postgres),
		User:     pgrepo.NewUserRepository(dbs.SQLX),
		Tokens:   redisrepo.NoopTokenStore{},
	}
	if dbs.Redis != nil {
		repos.Tokens = redisrepo.NewTokenStore(dbs.Redis)
	}
	return repos
}
