package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/services"
)

type FeedbackHandler struct {
	feedback *services.FeedbackService
}

func NewFeedbackHandler(feedback *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// FeedbackRequest rates one answer.
type FeedbackRequest struct {
	Question string `json:"question" form:"question" example:"цены"`
	Feedback string `json:"feedback" form:"feedback" example:"👍"`
}

// SubmitFeedback godoc
// @Summary Rate an answer
// @Tags Chat
// @Accept json
// @Produce json
// @Param data body FeedbackRequest true "Feedback"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /feedback [post]
func (h *FeedbackHandler) SubmitFeedback(c *fiber.Ctx) error {
	var req FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if err := h.feedback.Submit(req.Question, req.Feedback); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
