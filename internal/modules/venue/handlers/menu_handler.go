package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/services"
)

type MenuHandler struct {
	menu  *services.MenuService
	admin string
}

func NewMenuHandler(menu *services.MenuService, admin string) *MenuHandler {
	return &MenuHandler{menu: menu, admin: admin}
}

// GetMenuItems godoc
// @Summary List menu buttons
// @Tags Menu
// @Produce json
// @Success 200 {array} models.MenuItem
// @Router /menu-items [get]
func (h *MenuHandler) GetMenuItems(c *fiber.Ctx) error {
	items, err := h.menu.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// GetMenuItemsByCategory godoc
// @Summary List menu buttons of one category
// @Tags Menu
// @Produce json
// @Param category path string true "Category key"
// @Success 200 {array} models.MenuItem
// @Router /menu-items/{category} [get]
func (h *MenuHandler) GetMenuItemsByCategory(c *fiber.Ctx) error {
	items, err := h.menu.ByCategory(c.Params("category"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// GetMenuDisplay godoc
// @Summary Menu buttons as rendered by the chat widget
// @Tags Menu
// @Produce json
// @Success 200 {array} models.MenuDisplayItem
// @Router /api/menu-display [get]
func (h *MenuHandler) GetMenuDisplay(c *fiber.Ctx) error {
	items, err := h.menu.Display()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// AddMenuItem godoc
// @Summary Add a menu button
// @Tags Admin
// @Accept json
// @Produce json
// @Param data body services.MenuItemInput true "Menu item"
// @Success 201 {object} models.MenuItem
// @Failure 400 {object} map[string]string
// @Router /admin/menu [post]
func (h *MenuHandler) AddMenuItem(c *fiber.Ctx) error {
	var in services.MenuItemInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid request")
	}
	item, err := h.menu.Add(h.admin, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateMenuItem godoc
// @Summary Edit a menu button by position
// @Tags Admin
// @Accept json
// @Produce json
// @Param index path int true "Position in the menu"
// @Param data body services.MenuItemInput true "Menu item"
// @Success 200 {object} models.MenuItem
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/menu/{index} [put]
func (h *MenuHandler) UpdateMenuItem(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return badRequest(c, "invalid index")
	}
	var in services.MenuItemInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid request")
	}
	item, err := h.menu.Update(h.admin, index, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// DeleteMenuItem godoc
// @Summary Delete a menu button by position
// @Tags Admin
// @Produce json
// @Param index path int true "Position in the menu"
// @Success 200 {object} models.MenuItem
// @Failure 404 {object} map[string]string
// @Router /admin/menu/{index} [delete]
func (h *MenuHandler) DeleteMenuItem(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return badRequest(c, "invalid index")
	}
	removed, err := h.menu.Delete(h.admin, index)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(removed)
}

// ClearCache godoc
// @Summary Reload the menu from disk
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/menu/clear-cache [post]
func (h *MenuHandler) ClearCache(c *fiber.Ctx) error {
	items, err := h.menu.ClearCache()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "ok",
		"items":  len(items),
	})
}

// CategoryRequest is the admin form for a custom category.
type CategoryRequest struct {
	Key  string `json:"key" form:"key" example:"parties"`
	Name string `json:"name" form:"name" example:"🥳 Вечеринки"`
}

// GetCategories godoc
// @Summary List menu categories
// @Tags Admin
// @Produce json
// @Success 200 {object} models.Categories
// @Router /admin/categories [get]
func (h *MenuHandler) GetCategories(c *fiber.Ctx) error {
	return c.JSON(h.menu.Categories())
}

// AddCategory godoc
// @Summary Add a custom category
// @Tags Admin
// @Accept json
// @Produce json
// @Param data body CategoryRequest true "Category"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/categories [post]
func (h *MenuHandler) AddCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if err := h.menu.AddCategory(h.admin, req.Key, req.Name); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "ok",
	})
}

// DeleteCategory godoc
// @Summary Delete a custom category no menu item uses
// @Tags Admin
// @Produce json
// @Param key path string true "Category key"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/categories/{key} [delete]
func (h *MenuHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.menu.DeleteCategory(h.admin, c.Params("key")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
