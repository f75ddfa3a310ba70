package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/BenjaminKakai/clientmanagementbackend/internal/domain"
	apperrors "github.com/BenjaminKakai/clientmanagementbackend/internal/pkg/errors"
)

// ContextKey type for context keys
type ContextKey string

const (
	// ContextKeyAuthUser holds the *domain.AuthUser of a verified request
	ContextKeyAuthUser ContextKey = "authUser"
)

// TokenValidator verifies bearer tokens
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*domain.AuthUser, error)
}

// AuthMiddleware handles authentication
type AuthMiddleware struct {
	validator TokenValidator
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
	}
}

// RequireJWT validates the bearer token. A missing or malformed header and an
// expired or revoked token answer 401; a token that fails verification answers 403.
func (m *AuthMiddleware) RequireJWT() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return errorJSON(c, fiber.StatusUnauthorized, "Authorization header required")
		}

		token, ok := extractBearerToken(header)
		if !ok {
			return errorJSON(c, fiber.StatusUnauthorized, "Authorization header must be 'Bearer <token>'")
		}

		user, err := m.validator.ValidateToken(c.UserContext(), token)
		if err != nil {
			status := apperrors.GetStatusCode(err)
			message := "Invalid token"
			if appErr := apperrors.GetAppError(err); appErr != nil && status < fiber.StatusInternalServerError {
				message = appErr.Message
			}
			return errorJSON(c, status, message)
		}

		c.Locals(string(ContextKeyAuthUser), user)
		return c.Next()
	}
}

func extractBearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsRune(token, ' ') {
		return "", false
	}
	return token, true
}

// GetAuthUser gets the authenticated user from context
func GetAuthUser(c *fiber.Ctx) (*domain.AuthUser, bool) {
	user, ok := c.Locals(string(ContextKeyAuthUser)).(*domain.AuthUser)
	return user, ok && user != nil
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   statusText(status),
		"message": message,
	})
}

func statusText(status int) string {
	if msg := utils.StatusMessage(status); msg != "" {
		return msg
	}
	return "Error"
}
