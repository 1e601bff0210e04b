package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mpavlovs/punchclock/internal/common"
)

// statusFromError maps the service error taxonomy onto HTTP status codes.
// Conflicts (already clocked in, no open session) are state preconditions
// the caller can act on, so they get 409 rather than 400.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, common.ErrInvalidInput), errors.Is(err, common.ErrInvalidRange):
		return fiber.StatusBadRequest
	case errors.Is(err, common.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, common.ErrAlreadyClockedIn), errors.Is(err, common.ErrNoOpenSession):
		return fiber.StatusConflict
	case errors.Is(err, common.ErrCaptureFailed):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// jsonError renders the standard error envelope.
func jsonError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// jsonOK renders the standard success envelope with a 200.
func jsonOK(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// jsonCreated renders the standard success envelope with a 201.
func jsonCreated(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// serviceError renders a failed service call. 4xx errors carry the service
// message so the caller sees what to fix; everything else is masked and
// logged server-side.
func (s *Server) serviceError(c *fiber.Ctx, err error) error {
	status := statusFromError(err)
	if status >= fiber.StatusInternalServerError && status != fiber.StatusServiceUnavailable {
		s.logger.Error(c.UserContext(), "request failed", "path", c.Path(), "error", err.Error())
		return jsonError(c, status, "internal error")
	}
	return jsonError(c, status, err.Error())
}
