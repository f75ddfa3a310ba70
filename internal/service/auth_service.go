package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BenjaminKakai/clientmanagementbackend/internal/config"
	"github.com/BenjaminKakai/clientmanagementbackend/internal/domain"
	apperrors "github.com/BenjaminKakai/clientmanagementbackend/internal/pkg/errors"
	"github.com/BenjaminKakai/clientmanagementbackend/internal/validator"
)

// UserRepository defines credential store operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// TokenStore records revoked token ids
type TokenStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

const invalidCredentials = "invalid email or password"

// dummyHash is compared against when the email is unknown so both paths cost one bcrypt check
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

// AuthService handles login, token verification and logout
type AuthService struct {
	cfg    config.JWTConfig
	users  UserRepository
	tokens TokenStore
	logger *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(cfg config.JWTConfig, users UserRepository, tokens TokenStore, logger *zap.Logger) *AuthService {
	return &AuthService{
		cfg:    cfg,
		users:  users,
		tokens: tokens,
		logger: logger.Named("auth_service"),
	}
}

// Login checks the credentials against the stored bcrypt hash and issues a token
func (s *AuthService) Login(ctx context.Context, input *domain.LoginInput) (*domain.TokenResponse, error) {
	if err := validator.Check(input); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(input.Password))
			return nil, apperrors.Unauthorized(invalidCredentials)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		s.logger.Info("login failed", zap.String("user_id", user.ID.String()))
		return nil, apperrors.Unauthorized(invalidCredentials)
	}

	token, err := s.generateAccessToken(user, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.logger.Info("login succeeded", zap.String("user_id", user.ID.String()))
	return &domain.TokenResponse{Token: token}, nil
}

// generateAccessToken creates a signed HS256 JWT
func (s *AuthService) generateAccessToken(user *domain.User, now time.Time) (string, error) {
	claims := domain.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Expiry)),
		},
		UserID: user.ID,
		Email:  user.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

// ValidateToken verifies a bearer token. Expired and revoked tokens are
// Unauthorized; any other verification failure is Forbidden.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*domain.AuthUser, error) {
	claims := &domain.JWTClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.Unauthorized("token expired")
		}
		return nil, apperrors.Forbidden("invalid token")
	}
	if claims.ID == "" {
		return nil, apperrors.Forbidden("invalid token")
	}

	revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, apperrors.Internal("failed to verify token").WithError(err)
	}
	if revoked {
		return nil, apperrors.Unauthorized("token revoked")
	}

	return &domain.AuthUser{
		UserID:    claims.UserID,
		Email:     claims.Email,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Logout revokes the caller's token until it would have expired
func (s *AuthService) Logout(ctx context.Context, user *domain.AuthUser) error {
	if err := s.tokens.Revoke(ctx, user.TokenID, time.Until(user.ExpiresAt)); err != nil {
		return apperrors.Internal("failed to revoke token").WithError(err)
	}
	s.logger.Info("logout", zap.String("user_id", user.UserID.String()))
	return nil
}

// CreateUser stores a new user with a bcrypt password hash
func (s *AuthService) CreateUser(ctx context.Context, input *domain.UserInput) (*domain.User, error) {
	if err := validator.Check(input); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        input.Email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetPassword replaces an existing user's password
func (s *AuthService) SetPassword(ctx context.Context, input *domain.UserInput) error {
	if err := validator.Check(input); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, input.Email, string(hash))
}
