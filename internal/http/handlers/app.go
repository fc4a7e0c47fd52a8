package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	applog "revivedgoods/internal/log"
)

type AppOptions struct {
	StaticDir string
	AccessLog bool
	RateMax   int // requests per minute per IP; 0 disables the limiter
	CSRF      bool
}

// NewApp builds the HTTP server with its middleware stack and every route.
func NewApp(views fiber.Views, d *Deps, opts AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:        views,
		ErrorHandler: ErrorHandler,
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(recover.New())
	app.Use(requestid.New())
	if opts.AccessLog {
		app.Use(logger.New())
	}
	// product images come from other origins
	app.Use(helmet.New(helmet.Config{CrossOriginEmbedderPolicy: "unsafe-none"}))
	if opts.RateMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        opts.RateMax,
			Expiration: time.Minute,
			Next: func(c *fiber.Ctx) bool {
				p := string(c.Request().URI().Path())
				return strings.HasPrefix(p, "/static/") || p == "/ws" || p == "/healthz"
			},
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, "rate.limit.hit", nil)
				return c.Status(fiber.StatusTooManyRequests).SendString("Too many requests. Please slow down.")
			},
		}))
	}
	if opts.CSRF {
		app.Use(csrf.New(csrf.Config{
			KeyLookup:      "form:csrf",
			CookieName:     "csrf_",
			CookieSameSite: "Lax",
			CookieSecure:   false, // set true behind HTTPS
			Next: func(c *fiber.Ctx) bool {
				return strings.HasPrefix(c.Path(), "/api/")
			},
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				applog.Security(c, "csrf.fail", map[string]any{"path": c.Path()})
				return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
			},
		}))
		app.Use(func(c *fiber.Ctx) error {
			if tok, ok := c.Locals("csrf").(string); ok {
				c.Locals("CSRFToken", tok)
			}
			return c.Next()
		})
	}

	if opts.StaticDir != "" {
		app.Static("/static", opts.StaticDir)
	}

	Routes(app, d)

	app.Use(func(c *fiber.Ctx) error {
		return notFound(c, "Page not found")
	})
	return app
}

// ErrorHandler logs the cause and shows a generic page without internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if fe, ok := err.(*fiber.Error); ok && fe.Code < 500 {
		code = fe.Code
	}
	if code >= 500 {
		applog.Error(c, "server.error", err, nil)
	}
	msg := "Something went wrong. Please try again."
	if code == fiber.StatusUpgradeRequired {
		msg = "This endpoint only speaks WebSocket."
	}
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}
