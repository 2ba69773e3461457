package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/services"
)

type SuggestionHandler struct {
	suggestions *services.SuggestionService
	admin       string
}

func NewSuggestionHandler(suggestions *services.SuggestionService, admin string) *SuggestionHandler {
	return &SuggestionHandler{suggestions: suggestions, admin: admin}
}

// ListSuggestions godoc
// @Summary All suggestion topics with their items
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/suggestions [get]
func (h *SuggestionHandler) ListSuggestions(c *fiber.Ctx) error {
	return c.JSON(h.suggestions.All())
}

// AddSuggestion godoc
// @Summary Add a follow-up prompt to a topic
// @Tags Admin
// @Accept json
// @Produce json
// @Param data body services.SuggestionInput true "Suggestion"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/suggestions [post]
func (h *SuggestionHandler) AddSuggestion(c *fiber.Ctx) error {
	var in services.SuggestionInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid request")
	}
	if err := h.suggestions.Add(h.admin, in); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "ok",
	})
}

// DeleteSuggestion godoc
// @Summary Remove a follow-up prompt
// @Tags Admin
// @Produce json
// @Param topic query string true "Topic"
// @Param text query string true "Button label"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/suggestions [delete]
func (h *SuggestionHandler) DeleteSuggestion(c *fiber.Ctx) error {
	topic, text := c.Query("topic"), c.Query("text")
	if topic == "" || text == "" {
		return badRequest(c, "topic and text are required")
	}
	if err := h.suggestions.Delete(h.admin, topic, text); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
