package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BenjaminKakai/clientmanagementbackend/internal/middleware"
	apperrors "github.com/BenjaminKakai/clientmanagementbackend/internal/pkg/errors"
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// errorResponse creates a standardized JSON error response.
func errorResponse(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(ErrorResponse{
		Error:   statusName(statusCode),
		Message: message,
	})
}

func statusName(statusCode int) string {
	if name := utils.StatusMessage(statusCode); name != "" {
		return name
	}
	return "Error"
}

// respondError maps a service error onto its status code. Server-side
// failures are logged, reported to Sentry and answered with a generic message.
func respondError(c *fiber.Ctx, logger *zap.Logger, fallback string, err error) error {
	status := apperrors.GetStatusCode(err)
	appErr := apperrors.GetAppError(err)

	if status >= fiber.StatusInternalServerError || appErr == nil {
		logger.Error(fallback,
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		middleware.CaptureError(c, err)
		return errorResponse(c, fiber.StatusInternalServerError, fallback)
	}

	return c.Status(status).JSON(ErrorResponse{
		Error:   statusName(status),
		Message: appErr.Message,
		Details: appErr.Details,
	})
}

// parseID reads a UUID route parameter. A value that is not a UUID cannot
// name an existing row, so it is reported as the resource being absent.
func parseID(c *fiber.Ctx, param, resource string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, apperrors.NotFound(resource)
	}
	return id, nil
}
