package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/repositories"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/services"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/utils"
)

// respondError maps service errors onto HTTP statuses. Anything unknown is a
// persistence failure and is logged.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, repositories.ErrInvalid),
		errors.Is(err, repositories.ErrQuestionTooShort),
		errors.Is(err, repositories.ErrSystemCategory),
		errors.Is(err, services.ErrCategoryInUse):
		status = fiber.StatusBadRequest
	case errors.Is(err, repositories.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, repositories.ErrDuplicate):
		status = fiber.StatusConflict
	}

	if status == fiber.StatusInternalServerError {
		utils.LogError("request failed", err, map[string]interface{}{
			"method": c.Method(),
			"path":   c.Path(),
		})
		return c.Status(status).JSON(fiber.Map{
			"error": "internal error, changes were not saved",
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}
