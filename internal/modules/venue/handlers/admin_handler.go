package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/auth"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/utils"
)

type AdminHandler struct {
	credentials *auth.Credentials
	sessions    *auth.Sessions
}

func NewAdminHandler(credentials *auth.Credentials, sessions *auth.Sessions) *AdminHandler {
	return &AdminHandler{credentials: credentials, sessions: sessions}
}

// LoginRequest is the admin login form.
type LoginRequest struct {
	Username string `json:"username" form:"username" example:"admin"`
	Password string `json:"password" form:"password"`
}

// Login godoc
// @Summary Admin login
// @Description Sets the admin flag on the session cookie
// @Tags Admin
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param data body LoginRequest true "Credentials"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /admin/login [post]
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if !h.credentials.Check(req.Username, req.Password) {
		utils.LogWarn("🔒 Failed admin login", map[string]interface{}{"username": req.Username, "ip": c.IP()})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid username or password",
		})
	}
	if err := h.sessions.Login(c); err != nil {
		return respondError(c, err)
	}
	utils.LogInfo("🔓 Admin logged in", map[string]interface{}{"username": req.Username, "ip": c.IP()})
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Logout godoc
// @Summary Admin logout
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]string
// @Router /admin/logout [post]
func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Logout(c); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
