package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/services"
)

type StatsHandler struct {
	stats *services.StatsService
}

func NewStatsHandler(stats *services.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// GetStats godoc
// @Summary Dashboard statistics
// @Description Question volume, knowledge base hit rate, bookings and the most frequent unanswered questions
// @Tags Admin
// @Produce json
// @Param period query string false "today, yesterday, this_week, last_week, this_month, last_month, last_7_days (default), last_30_days, last_90_days"
// @Success 200 {object} services.Stats
// @Failure 400 {object} map[string]string
// @Router /admin/stats [get]
func (h *StatsHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.stats.Compute(c.Query("period"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
