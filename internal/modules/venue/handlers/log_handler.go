package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/export"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/services"
)

type LogHandler struct {
	logs      *services.LogService
	knowledge *services.KnowledgeService
	exporter  *export.Service
	admin     string
}

func NewLogHandler(logs *services.LogService, knowledge *services.KnowledgeService, exporter *export.Service, admin string) *LogHandler {
	return &LogHandler{logs: logs, knowledge: knowledge, exporter: exporter, admin: admin}
}

// ListLogs godoc
// @Summary Conversation log, newest first
// @Tags Admin
// @Produce json
// @Param limit query int false "Max entries, 0 for all"
// @Success 200 {object} map[string]interface{}
// @Router /admin/logs [get]
func (h *LogHandler) ListLogs(c *fiber.Ctx) error {
	entries, err := h.logs.Recent(c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"logs":  entries,
		"total": len(entries),
	})
}

// ExportLogs godoc
// @Summary Download the conversation log
// @Tags Admin
// @Produce octet-stream
// @Param format query string false "json (default), xlsx, csv or pdf"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Router /admin/logs/export [get]
func (h *LogHandler) ExportLogs(c *fiber.Ctx) error {
	stamp := time.Now().Format("20060102_150405")
	name := strings.ToLower(c.Query("format", "json"))
	if name == "json" {
		data, err := h.logs.ExportJSON()
		if err != nil {
			return respondError(c, err)
		}
		return sendDownload(c, data, "application/json; charset=utf-8", fmt.Sprintf("bot_log_%s.json", stamp))
	}

	format, err := export.ParseFormat(name)
	if err != nil {
		return badRequest(c, err.Error())
	}
	data, err := h.logs.ExportTable(format)
	if err != nil {
		return respondError(c, err)
	}
	return sendDownload(c, data, h.exporter.GetContentType(format),
		fmt.Sprintf("bot_log_%s%s", stamp, h.exporter.GetFileExtension(format)))
}

// EditResponseRequest replaces the answer for a logged question.
type EditResponseRequest struct {
	Question string `json:"question" form:"question"`
	Answer   string `json:"answer" form:"answer"`
}

// EditResponse godoc
// @Summary Store a corrected answer for a logged question
// @Description Creates or overwrites the knowledge entry for the question
// @Tags Admin
// @Accept json
// @Produce json
// @Param data body EditResponseRequest true "Correction"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /admin/edit-response [post]
func (h *LogHandler) EditResponse(c *fiber.Ctx) error {
	var req EditResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if err := h.knowledge.SetAnswer(h.admin, req.Question, req.Answer); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
