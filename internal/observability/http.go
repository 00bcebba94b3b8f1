package observability

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler serves the scrape endpoint for the tracking collectors.
// The Prometheus client only speaks net/http, so the handler is bridged
// through the fasthttp adaptor; registration happens here as well so a
// scrape never races collector setup.
func MetricsHandler() fiber.Handler {
	RegisterMetrics()

	scrape := promhttp.Handler()
	return adaptor.HTTPHandler(scrape)
}
