package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jakesworld/tracking-api/internal/service"
	"github.com/jakesworld/tracking-api/internal/utils"
)

// StorePinger probes store reachability before the activity query runs.
type StorePinger func(ctx context.Context) error

// ActivityHandler serves the polling activity-monitor endpoint.
type ActivityHandler struct {
	service service.AnalyticsService
	ping    StorePinger
	logger  zerolog.Logger
}

// NewActivityHandler constructs the handler instance.
func NewActivityHandler(service service.AnalyticsService, ping StorePinger, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		ping:    ping,
		logger:  logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register wires the activity route.
func (h *ActivityHandler) Register(router fiber.Router) {
	router.Get("/activity", h.activity)
}

func (h *ActivityHandler) activity(c *fiber.Ctx) error {
	if h.ping != nil {
		if err := h.ping(c.Context()); err != nil {
			requestLogger(h.logger, c).Error().Err(err).Msg("store connection unavailable")
			return utils.SendError(c, fiber.StatusServiceUnavailable, "Database not ready")
		}
	}

	limit := parseQueryInt(c, "limit", 50)
	offset := parseQueryInt(c, "offset", 0)

	overview, err := h.service.Overview(c.Context(), limit, offset)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build activity overview")
		return utils.SendError(c, fiber.StatusInternalServerError, "Failed to get activity data")
	}

	return c.Status(fiber.StatusOK).JSON(overview)
}
