package middleware

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BenjaminKakai/clientmanagementbackend/internal/domain"
	apperrors "github.com/BenjaminKakai/clientmanagementbackend/internal/pkg/errors"
)

// MockTokenValidator mocks token validation for testing
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(ctx context.Context, token string) (*domain.AuthUser, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthUser), args.Error(1)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		token  string
		ok     bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"lower-case scheme", "bearer abc", "abc", true},
		{"basic scheme", "Basic dXNlcjpwYXNz", "", false},
		{"no token", "Bearer ", "", false},
		{"no space", "Bearerabc", "", false},
		{"two tokens", "Bearer a b", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, ok := extractBearerToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.token, token)
		})
	}
}

func newAuthTestApp(validator TokenValidator) *fiber.App {
	app := fiber.New()
	auth := NewAuthMiddleware(validator)
	app.Get("/protected", auth.RequireJWT(), func(c *fiber.Ctx) error {
		user, ok := GetAuthUser(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(user.Email)
	})
	return app
}

func TestRequireJWT(t *testing.T) {
	user := &domain.AuthUser{UserID: uuid.New(), Email: "agent@example.com", TokenID: "jti", ExpiresAt: time.Now().Add(time.Hour)}

	tests := []struct {
		name       string
		header     string
		setup      func(*MockTokenValidator)
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "missing header",
			wantStatus: fiber.StatusUnauthorized,
			wantMsg:    "Authorization header required",
		},
		{
			name:       "malformed header",
			header:     "Token abc",
			wantStatus: fiber.StatusUnauthorized,
			wantMsg:    "Authorization header must be 'Bearer <token>'",
		},
		{
			name:   "expired token",
			header: "Bearer expired",
			setup: func(m *MockTokenValidator) {
				m.On("ValidateToken", mock.Anything, "expired").Return(nil, apperrors.Unauthorized("token expired"))
			},
			wantStatus: fiber.StatusUnauthorized,
			wantMsg:    "token expired",
		},
		{
			name:   "invalid token",
			header: "Bearer forged",
			setup: func(m *MockTokenValidator) {
				m.On("ValidateToken", mock.Anything, "forged").Return(nil, apperrors.Forbidden("invalid token"))
			},
			wantStatus: fiber.StatusForbidden,
			wantMsg:    "invalid token",
		},
		{
			name:   "verification backend failure",
			header: "Bearer good",
			setup: func(m *MockTokenValidator) {
				m.On("ValidateToken", mock.Anything, "good").Return(nil, apperrors.Internal("failed to verify token"))
			},
			wantStatus: fiber.StatusInternalServerError,
			wantMsg:    "Invalid token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := new(MockTokenValidator)
			if tt.setup != nil {
				tt.setup(validator)
			}
			app := newAuthTestApp(validator)

			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantMsg, body["message"])
			assert.Equal(t, utils.StatusMessage(tt.wantStatus), body["error"])
		})
	}

	t.Run("valid token reaches handler", func(t *testing.T) {
		validator := new(MockTokenValidator)
		validator.On("ValidateToken", mock.Anything, "good").Return(user, nil)
		app := newAuthTestApp(validator)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer good")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		validator.AssertExpectations(t)
	})
}
