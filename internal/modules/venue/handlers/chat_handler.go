package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/models"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/services"
)

type ChatHandler struct {
	chat        *services.ChatService
	suggestions *services.SuggestionService
}

func NewChatHandler(chat *services.ChatService, suggestions *services.SuggestionService) *ChatHandler {
	return &ChatHandler{chat: chat, suggestions: suggestions}
}

// ChatRequest is the chat widget message.
type ChatRequest struct {
	Message string `json:"message" example:"Сколько стоит VR?"`
	UserID  string `json:"user_id,omitempty" example:"browser-42"`
}

// AskRequest is the legacy single-question shape.
type AskRequest struct {
	Question string `json:"question" example:"привет"`
	UserID   string `json:"user_id,omitempty"`
}

// Chat godoc
// @Summary Answer a chat message
// @Description Resolves the message against suggestion triggers, the knowledge base and finally the language model
// @Tags Chat
// @Accept json
// @Produce json
// @Param data body ChatRequest true "Chat message"
// @Success 200 {object} services.ChatAnswer
// @Failure 400 {object} map[string]string
// @Router /chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	return c.JSON(h.chat.Resolve(c.UserContext(), req.UserID, req.Message))
}

// Ask godoc
// @Summary Answer a question (legacy)
// @Tags Chat
// @Accept json
// @Produce json
// @Param data body AskRequest true "Question"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /ask [post]
func (h *ChatHandler) Ask(c *fiber.Ctx) error {
	var req AskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	res := h.chat.Resolve(c.UserContext(), req.UserID, req.Question)
	return c.JSON(fiber.Map{
		"answer": res.Answer,
	})
}

// SuggestionAnswer godoc
// @Summary Canned answer for a suggestion button
// @Tags Chat
// @Accept json
// @Produce json
// @Param data body AskRequest true "Suggestion trigger phrase"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /suggestion-answer [post]
func (h *ChatHandler) SuggestionAnswer(c *fiber.Ctx) error {
	var req AskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	answer, err := h.suggestions.Answer(req.Question)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"answer": answer,
	})
}

// GetSuggestions godoc
// @Summary Follow-up prompts for a topic
// @Description Unknown topics fall back to the default topic
// @Tags Chat
// @Produce json
// @Param topic path string true "Topic"
// @Success 200 {object} map[string]interface{}
// @Router /suggestions/{topic} [get]
func (h *ChatHandler) GetSuggestions(c *fiber.Ctx) error {
	items := h.suggestions.ForTopic(c.Params("topic"))
	refs := make([]models.SuggestionRef, 0, len(items))
	for _, item := range items {
		refs = append(refs, item.Ref())
	}
	return c.JSON(fiber.Map{
		"suggestions": refs,
	})
}
