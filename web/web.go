// Package web ships the browser capture widget alongside the API that
// consumes its events, so the track contract and its producer stay in sync.
package web

import (
	_ "embed"

	"github.com/gofiber/fiber/v2"
)

//go:embed static/tracker.js
var trackerJS []byte

// TrackerHandler serves the embedded capture widget script.
func TrackerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "application/javascript; charset=utf-8")
		c.Set(fiber.HeaderCacheControl, "public, max-age=300")
		return c.Send(trackerJS)
	}
}
