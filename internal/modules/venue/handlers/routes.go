package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/auth"
)

// Handlers groups every HTTP handler of the venue module.
type Handlers struct {
	Health      *HealthHandler
	Chat        *ChatHandler
	Menu        *MenuHandler
	Booking     *BookingHandler
	Feedback    *FeedbackHandler
	Admin       *AdminHandler
	Knowledge   *KnowledgeHandler
	Suggestions *SuggestionHandler
	Logs        *LogHandler
	Stats       *StatsHandler
}

// RegisterRoutes mounts the public API and the session-protected admin API.
func RegisterRoutes(app *fiber.App, h *Handlers, sessions *auth.Sessions) {
	// Health check
	app.Get("/health", h.Health.GetHealth)

	// Chat routes
	app.Post("/chat", h.Chat.Chat)
	app.Post("/ask", h.Chat.Ask)
	app.Post("/suggestion-answer", h.Chat.SuggestionAnswer)
	app.Get("/suggestions/:topic", h.Chat.GetSuggestions)
	app.Post("/feedback", h.Feedback.SubmitFeedback)

	// Menu routes
	app.Get("/menu-items", h.Menu.GetMenuItems)
	app.Get("/menu-items/:category", h.Menu.GetMenuItemsByCategory)
	app.Get("/api/menu-display", h.Menu.GetMenuDisplay)

	// Booking route
	app.Post("/booking", h.Booking.CreateBooking)

	// Admin login is open, everything else needs the session flag
	app.Post("/admin/login", h.Admin.Login)
	admin := app.Group("/admin", sessions.RequireAdmin())
	admin.Post("/logout", h.Admin.Logout)
	admin.Get("/dashboard", h.Booking.Dashboard)
	admin.Get("/bookings/export", h.Booking.ExportBookings)

	admin.Get("/knowledge", h.Knowledge.ListKnowledge)
	admin.Post("/knowledge", h.Knowledge.AddKnowledge)
	admin.Put("/knowledge", h.Knowledge.UpdateKnowledge)
	admin.Delete("/knowledge", h.Knowledge.DeleteKnowledge)
	admin.Post("/knowledge/import", h.Knowledge.ImportKnowledge)
	admin.Get("/knowledge/export", h.Knowledge.ExportKnowledge)

	admin.Get("/suggestions", h.Suggestions.ListSuggestions)
	admin.Post("/suggestions", h.Suggestions.AddSuggestion)
	admin.Delete("/suggestions", h.Suggestions.DeleteSuggestion)

	admin.Get("/menu", h.Menu.GetMenuItems)
	admin.Post("/menu", h.Menu.AddMenuItem)
	admin.Post("/menu/clear-cache", h.Menu.ClearCache)
	admin.Put("/menu/:index", h.Menu.UpdateMenuItem)
	admin.Delete("/menu/:index", h.Menu.DeleteMenuItem)

	admin.Get("/categories", h.Menu.GetCategories)
	admin.Post("/categories", h.Menu.AddCategory)
	admin.Delete("/categories/:key", h.Menu.DeleteCategory)

	admin.Get("/logs", h.Logs.ListLogs)
	admin.Get("/logs/export", h.Logs.ExportLogs)
	admin.Post("/edit-response", h.Logs.EditResponse)
	admin.Get("/stats", h.Stats.GetStats)
}
