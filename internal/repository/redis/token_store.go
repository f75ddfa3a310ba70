// Package redis stores revoked token ids in Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/BenjaminKakai/clientmanagementbackend/internal/pkg/database"
)

const revokedKeyPrefix = "auth:revoked:"

// TokenStore records logged-out token ids until they would have expired anyway
type TokenStore struct {
	db *database.RedisDB
}

// NewTokenStore creates a new token store
func NewTokenStore(db *database.RedisDB) *TokenStore {
	return &TokenStore{db: db}
}

// Revoke marks a token id as revoked for ttl. A non-positive ttl is a no-op
// since the token is already expired.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.db.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether a token id was revoked
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	ok, err := s.db.Exists(ctx, revokedKeyPrefix+tokenID)
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return ok, nil
}

// NoopTokenStore is used when Redis is not configured; nothing is ever revoked
type NoopTokenStore struct{}

// Revoke does nothing
func (NoopTokenStore) Revoke(context.Context, string, time.Duration) error { return nil }

// IsRevoked always reports false
func (NoopTokenStore) IsRevoked(context.Context, string) (bool, error) { return false, nil }
