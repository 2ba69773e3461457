package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const adminFlag = "admin_logged_in"

// Sessions keeps the admin login flag in a cookie-backed fiber session.
type Sessions struct {
	store *session.Store
}

func NewSessions(ttl time.Duration, secureCookie bool) *Sessions {
	return &Sessions{
		store: session.New(session.Config{
			Expiration:     ttl,
			CookieHTTPOnly: true,
			CookieSecure:   secureCookie,
			CookieSameSite: "Lax",
		}),
	}
}

// Login marks the current session as an admin session.
func (s *Sessions) Login(c *fiber.Ctx) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return err
	}
	// Fresh id on privilege change.
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(adminFlag, true)
	return sess.Save()
}

// Logout drops the session.
func (s *Sessions) Logout(c *fiber.Ctx) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// IsAdmin reports whether the request carries a logged-in admin session.
func (s *Sessions) IsAdmin(c *fiber.Ctx) bool {
	sess, err := s.store.Get(c)
	if err != nil {
		return false
	}
	ok, _ := sess.Get(adminFlag).(bool)
	return ok
}

// RequireAdmin rejects requests without an admin session.
func (s *Sessions) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !s.IsAdmin(c) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "admin login required",
			})
		}
		return c.Next()
	}
}
