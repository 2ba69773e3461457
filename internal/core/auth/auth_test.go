package auth

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentials_PlainPassword(t *testing.T) {
	creds, err := NewCredentials("admin", "1")
	require.NoError(t, err)

	assert.True(t, creds.Check("admin", "1"))
	assert.False(t, creds.Check("admin", "2"))
	assert.False(t, creds.Check("root", "1"))
}

func TestCredentials_PreHashedPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	creds, err := NewCredentials("admin", hash)
	require.NoError(t, err)
	assert.True(t, creds.Check("admin", "s3cret"))
	assert.False(t, creds.Check("admin", hash))
}

func TestSessions_RequireAdmin(t *testing.T) {
	sessions := NewSessions(time.Hour, false)

	app := fiber.New()
	app.Post("/login", func(c *fiber.Ctx) error {
		if err := sessions.Login(c); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/secret", sessions.RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/secret", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/login", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest("GET", "/secret", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ok", string(body))
}
