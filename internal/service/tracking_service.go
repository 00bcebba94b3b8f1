package service

import (
	"context"
	"errors"
	"html"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"

	"github.com/jakesworld/tracking-api/internal/dto"
	"github.com/jakesworld/tracking-api/internal/models"
	"github.com/jakesworld/tracking-api/internal/observability"
	"github.com/jakesworld/tracking-api/internal/repository"
)

// ErrNetIDRequired signals a missing or whitespace-only identifier.
var ErrNetIDRequired = errors.New("netid is required")

// ErrInvalidPayload signals a request that breaks the field length caps.
var ErrInvalidPayload = errors.New("invalid tracking payload")

// TrackingService resolves student identities and appends visit events.
type TrackingService interface {
	Track(ctx context.Context, req dto.TrackRequest, userAgent string) (dto.TrackResponse, error)
}

type trackingService struct {
	students  repository.StudentRepository
	visits    repository.VisitRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewTrackingService constructs the tracking service.
func NewTrackingService(students repository.StudentRepository, visits repository.VisitRepository, validate *validator.Validate, logger zerolog.Logger) TrackingService {
	return &trackingService{
		students:  students,
		visits:    visits,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "tracking_service").Logger(),
		tracer:    otel.Tracer("github.com/jakesworld/tracking-api/internal/service/tracking"),
	}
}

// Track upserts the student for the normalized NetID, then appends exactly one
// visit row stamped with the current server time. Visit timestamps are never
// taken from the client.
func (s *trackingService) Track(ctx context.Context, req dto.TrackRequest, userAgent string) (dto.TrackResponse, error) {
	ctx, span := s.tracer.Start(ctx, "tracking.track")
	defer span.End()

	netID := strings.ToLower(strings.TrimSpace(req.NetID))
	if netID == "" {
		return dto.TrackResponse{}, ErrNetIDRequired
	}
	if err := s.validator.Struct(req); err != nil {
		s.logger.Warn().Err(err).Str("net_id", netID).Msg("tracking payload rejected")
		return dto.TrackResponse{}, ErrInvalidPayload
	}

	span.SetAttributes(attribute.String("student.net_id", netID))

	name := s.clean(req.Name)
	student, err := s.students.Upsert(ctx, netID, name)
	if err != nil {
		s.logger.Error().Err(err).Str("net_id", netID).Msg("failed to upsert student")
		return dto.TrackResponse{}, err
	}

	pagePath := strings.TrimSpace(req.PagePath)
	if pagePath == "" {
		pagePath = "/"
	}

	// Open vocabulary: unknown kinds pass through untouched.
	action := strings.TrimSpace(req.Action)
	if action == "" {
		action = models.ActionDefault
	}

	visit := models.Visit{
		StudentID: student.ID,
		PagePath:  pagePath,
		PageTitle: s.clean(req.PageTitle),
		Action:    action,
		Element:   s.clean(req.Element),
		Value:     s.clean(req.Value),
		SessionID: strings.TrimSpace(req.SessionID),
		UserAgent: userAgent,
		Metadata:  datatypes.JSONMap(req.Metadata),
		VisitedAt: time.Now(),
	}

	if err := s.visits.Create(ctx, &visit); err != nil {
		s.logger.Error().Err(err).Str("net_id", netID).Str("action", action).Msg("failed to append visit")
		return dto.TrackResponse{}, err
	}

	observability.VisitsRecorded().WithLabelValues(action).Inc()
	s.logger.Info().Str("net_id", netID).Str("action", action).Str("page_path", pagePath).Msg("activity tracked")

	return dto.TrackResponse{Success: true, Message: "Activity tracked"}, nil
}

// clean strips markup from a free-text field. Bluemonday entity-escapes the
// surviving text, so the result is unescaped again; plain strings like
// "O'Neil & Sons" must round-trip unchanged through the store and the API.
func (s *trackingService) clean(value string) string {
	return html.UnescapeString(s.sanitizer.Sanitize(strings.TrimSpace(value)))
}
