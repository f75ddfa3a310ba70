package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/BenjaminKakai/clientmanagementbackend/internal/domain"
	"github.com/BenjaminKakai/clientmanagementbackend/internal/middleware"
	apperrors "github.com/BenjaminKakai/clientmanagementbackend/internal/pkg/errors"
)

// AuthService is the authentication operations used by AuthHandler
type AuthService interface {
	Login(ctx context.Context, input *domain.LoginInput) (*domain.TokenResponse, error)
	Logout(ctx context.Context, user *domain.AuthUser) error
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login handles POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if input.Email == "" || input.Password == "" {
		return errorResponse(c, fiber.StatusBadRequest, "Email and password are required")
	}

	result, err := h.authService.Login(c.Context(), &input)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			return errorResponse(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		return respondError(c, h.logger, "Login failed", err)
	}

	return c.JSON(result)
}

// Logout handles POST /logout by revoking the presented token
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Authentication required")
	}

	if err := h.authService.Logout(c.Context(), user); err != nil {
		return respondError(c, h.logger, "Logout failed", err)
	}

	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}
