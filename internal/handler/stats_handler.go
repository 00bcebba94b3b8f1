package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jakesworld/tracking-api/internal/service"
	"github.com/jakesworld/tracking-api/internal/utils"
)

// StatsHandler serves the analytics summary and per-student lookups.
type StatsHandler struct {
	service service.AnalyticsService
	logger  zerolog.Logger
}

// NewStatsHandler constructs the handler instance.
func NewStatsHandler(service service.AnalyticsService, logger zerolog.Logger) *StatsHandler {
	return &StatsHandler{
		service: service,
		logger:  logger.With().Str("component", "stats_handler").Logger(),
	}
}

// Register wires the stats route.
func (h *StatsHandler) Register(router fiber.Router) {
	router.Get("/stats", h.stats)
}

func (h *StatsHandler) stats(c *fiber.Ctx) error {
	if netID := strings.TrimSpace(c.Query("netId")); netID != "" {
		detail, err := h.service.StudentDetail(c.Context(), netID)
		if err != nil {
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch student detail")
			return utils.SendError(c, fiber.StatusInternalServerError, "Failed to get student stats")
		}
		return c.Status(fiber.StatusOK).JSON(detail)
	}

	summary, err := h.service.Summary(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build stats summary")
		return utils.SendError(c, fiber.StatusInternalServerError, "Failed to get stats")
	}

	return c.Status(fiber.StatusOK).JSON(summary)
}
