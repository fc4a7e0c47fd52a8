package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "revivedgoods/internal/log"
	"revivedgoods/internal/services"
	"revivedgoods/internal/validate"
)

const sidCookie = "sid"

// ensureSID returns the browser's profile id, issuing a new one when the
// cookie is missing or malformed.
func ensureSID(c *fiber.Ctx) string {
	raw := c.Cookies(sidCookie)
	if sid, ok := validate.Profile(raw); ok {
		return sid
	}
	if raw != "" {
		applog.Security(c, "validation.fail", map[string]any{"field": sidCookie})
	}
	sid := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     sidCookie,
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false, // enable true behind TLS
		MaxAge:   365 * 24 * 60 * 60,
	})
	return sid
}

// AttachMarket resolves the caller's profile and puts its Market into Locals.
func AttachMarket(sessions *services.Sessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := ensureSID(c)
		c.Locals("profile", sid)
		m, err := sessions.Get(c.UserContext(), sid)
		if err != nil {
			applog.Error(c, "session.load.fail", err, nil)
			return fiber.NewError(fiber.StatusInternalServerError, "could not load session")
		}
		c.Locals("market", m)
		return c.Next()
	}
}

func marketOf(c *fiber.Ctx) *services.Market {
	m, _ := c.Locals("market").(*services.Market)
	return m
}
