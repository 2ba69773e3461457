package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/services"
)

type HealthHandler struct {
	knowledge *services.KnowledgeService
	provider  string
}

func NewHealthHandler(knowledge *services.KnowledgeService, provider string) *HealthHandler {
	return &HealthHandler{knowledge: knowledge, provider: provider}
}

// GetHealth godoc
// @Summary Service health check
// @Description Check if API is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":            "ok",
		"service":           "venue-api",
		"provider":          h.provider,
		"knowledge_entries": len(h.knowledge.List()),
	})
}
