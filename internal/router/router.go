package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jakesworld/tracking-api/internal/config"
	"github.com/jakesworld/tracking-api/internal/handler"
	"github.com/jakesworld/tracking-api/internal/observability"
	"github.com/jakesworld/tracking-api/web"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	TrackHandler    *handler.TrackHandler
	ActivityHandler *handler.ActivityHandler
	StatsHandler    *handler.StatsHandler
	RateLimiter     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())
	app.Get("/static/tracker.js", web.TrackerHandler())

	student := app.Group("/api/student")

	if deps.TrackHandler != nil {
		if deps.RateLimiter != nil {
			student.Use("/track", deps.RateLimiter)
		}
		deps.TrackHandler.Register(student)
	}

	if deps.ActivityHandler != nil {
		deps.ActivityHandler.Register(student)
	}

	if deps.StatsHandler != nil {
		deps.StatsHandler.Register(student)
	}
}
