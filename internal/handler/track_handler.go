package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jakesworld/tracking-api/internal/dto"
	"github.com/jakesworld/tracking-api/internal/service"
	"github.com/jakesworld/tracking-api/internal/utils"
)

// TrackHandler serves the single write endpoint of the tracking pipeline.
type TrackHandler struct {
	service service.TrackingService
	logger  zerolog.Logger
}

// NewTrackHandler constructs the handler instance.
func NewTrackHandler(service service.TrackingService, logger zerolog.Logger) *TrackHandler {
	return &TrackHandler{
		service: service,
		logger:  logger.With().Str("component", "track_handler").Logger(),
	}
}

// Register wires the track route.
func (h *TrackHandler) Register(router fiber.Router) {
	router.Post("/track", h.track)
}

func (h *TrackHandler) track(c *fiber.Ctx) error {
	var req dto.TrackRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.service.Track(c.Context(), req, c.Get(fiber.HeaderUserAgent))
	if err != nil {
		if errors.Is(err, service.ErrNetIDRequired) {
			return utils.SendError(c, fiber.StatusBadRequest, "NetID is required")
		}
		if errors.Is(err, service.ErrInvalidPayload) {
			return utils.SendError(c, fiber.StatusBadRequest, "Invalid tracking payload")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to track activity")
		return utils.SendError(c, fiber.StatusInternalServerError, "Failed to track activity")
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
