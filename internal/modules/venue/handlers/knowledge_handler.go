package handlers

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/kbfile"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/services"
)

const maxImportSize = 10 << 20

type KnowledgeHandler struct {
	knowledge *services.KnowledgeService
	admin     string
}

func NewKnowledgeHandler(knowledge *services.KnowledgeService, admin string) *KnowledgeHandler {
	return &KnowledgeHandler{knowledge: knowledge, admin: admin}
}

// KnowledgeRequest adds or edits an entry. NewQuestion renames on edit.
type KnowledgeRequest struct {
	Question    string `json:"question" form:"question" example:"часы работы"`
	NewQuestion string `json:"new_question,omitempty" form:"new_question"`
	Answer      string `json:"answer" form:"answer" example:"Ежедневно с 10:00 до 22:00"`
}

// ListKnowledge godoc
// @Summary List or search knowledge entries
// @Tags Admin
// @Produce json
// @Param q query string false "Substring to search in questions and answers"
// @Success 200 {object} map[string]interface{}
// @Router /admin/knowledge [get]
func (h *KnowledgeHandler) ListKnowledge(c *fiber.Ctx) error {
	term := strings.TrimSpace(c.Query("q"))
	entries := h.knowledge.List()
	if term != "" {
		entries = h.knowledge.Search(term)
	}
	return c.JSON(fiber.Map{
		"entries": entries,
		"total":   len(entries),
	})
}

// AddKnowledge godoc
// @Summary Add a knowledge entry
// @Tags Admin
// @Accept json
// @Produce json
// @Param data body KnowledgeRequest true "Entry"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/knowledge [post]
func (h *KnowledgeHandler) AddKnowledge(c *fiber.Ctx) error {
	var req KnowledgeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if err := h.knowledge.Add(h.admin, req.Question, req.Answer); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "ok",
	})
}

// UpdateKnowledge godoc
// @Summary Edit a knowledge entry
// @Description Changes the answer; a non-empty new_question renames the entry in place
// @Tags Admin
// @Accept json
// @Produce json
// @Param data body KnowledgeRequest true "Entry"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/knowledge [put]
func (h *KnowledgeHandler) UpdateKnowledge(c *fiber.Ctx) error {
	var req KnowledgeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	newQuestion := req.NewQuestion
	if strings.TrimSpace(newQuestion) == "" {
		newQuestion = req.Question
	}
	if err := h.knowledge.Update(h.admin, req.Question, newQuestion, req.Answer); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// DeleteKnowledge godoc
// @Summary Delete a knowledge entry
// @Tags Admin
// @Produce json
// @Param question query string true "Question"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/knowledge [delete]
func (h *KnowledgeHandler) DeleteKnowledge(c *fiber.Ctx) error {
	question := c.Query("question")
	if strings.TrimSpace(question) == "" {
		return badRequest(c, "question is required")
	}
	if err := h.knowledge.Delete(h.admin, question); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// ImportKnowledge godoc
// @Summary Merge a JSON, CSV or XLSX file into the knowledge base
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Knowledge file"
// @Success 200 {object} services.ImportResult
// @Failure 400 {object} map[string]string
// @Router /admin/knowledge/import [post]
func (h *KnowledgeHandler) ImportKnowledge(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}
	if fh.Size > maxImportSize {
		return badRequest(c, "file is too large")
	}
	format, err := kbfile.FormatFromFilename(fh.Filename)
	if err != nil {
		return badRequest(c, err.Error())
	}

	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "failed to read upload")
	}
	defer f.Close()

	res, err := h.knowledge.Import(h.admin, format, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// ExportKnowledge godoc
// @Summary Download the knowledge base
// @Tags Admin
// @Produce octet-stream
// @Param format query string false "json (default), csv or xlsx"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Router /admin/knowledge/export [get]
func (h *KnowledgeHandler) ExportKnowledge(c *fiber.Ctx) error {
	name := strings.ToLower(c.Query("format", string(kbfile.FormatJSON)))
	format, err := kbfile.FormatFromFilename("knowledge." + name)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var buf bytes.Buffer
	if err := h.knowledge.Export(format, &buf); err != nil {
		return respondError(c, err)
	}
	return sendDownload(c, buf.Bytes(), format.ContentType(),
		fmt.Sprintf("knowledge_base_%s.%s", time.Now().Format("20060102_150405"), format))
}
