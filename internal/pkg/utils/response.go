package utils

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/border-traffic-monitor/internal/pkg/errors"
)

// ErrorResponse - конверт ответа с ошибкой
type ErrorResponse struct {
	Success bool                   `json:"success"`
	Error   string                 `json:"error"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SendSuccess writes {success: true, ...payload} with the given status.
func SendSuccess(c *fiber.Ctx, status int, payload fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

// SendError writes {success: false, error, message}. Errors that are not AppErrors become 500;
// every 5xx is logged with the request path.
func SendError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.ErrInternalServer.WithMessage("%s", err.Error())
	}

	if appErr.StatusCode >= fiber.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("code", appErr.Code),
			zap.Error(err))
	}

	return c.Status(appErr.StatusCode).JSON(ErrorResponse{
		Success: false,
		Error:   appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	})
}

// StatusCode derives an error code from an HTTP status for errors raised by the framework itself.
func StatusCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusUpgradeRequired:
		return "UPGRADE_REQUIRED"
	case fiber.StatusBadRequest:
		return "INVALID_REQUEST"
	default:
		if status >= fiber.StatusInternalServerError {
			return "INTERNAL_SERVER_ERROR"
		}
		return "REQUEST_ERROR"
	}
}
