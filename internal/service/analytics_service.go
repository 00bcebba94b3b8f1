package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/jakesworld/tracking-api/internal/dto"
	"github.com/jakesworld/tracking-api/internal/models"
	"github.com/jakesworld/tracking-api/internal/observability"
	"github.com/jakesworld/tracking-api/internal/repository"
)

const (
	defaultFeedLimit    = 50
	defaultTopPages     = 10
	defaultTopStudents  = 10
	studentVisitHistory = 50
)

// AnalyticsService answers the read-only aggregate queries over the visit
// log. Every call is a pure function of current log state; there is no cache
// or materialized view in between.
type AnalyticsService interface {
	Overview(ctx context.Context, limit, offset int) (dto.ActivityOverviewResponse, error)
	Summary(ctx context.Context) (dto.StatsSummaryResponse, error)
	StudentDetail(ctx context.Context, netID string) (dto.StudentDetailResponse, error)
}

type analyticsService struct {
	students repository.StudentRepository
	visits   repository.VisitRepository
	logger   zerolog.Logger
	tracer   trace.Tracer
}

// NewAnalyticsService constructs the analytics service.
func NewAnalyticsService(students repository.StudentRepository, visits repository.VisitRepository, logger zerolog.Logger) AnalyticsService {
	return &analyticsService{
		students: students,
		visits:   visits,
		logger:   logger.With().Str("component", "analytics_service").Logger(),
		tracer:   otel.Tracer("github.com/jakesworld/tracking-api/internal/service/analytics"),
	}
}

func (s *analyticsService) Overview(ctx context.Context, limit, offset int) (dto.ActivityOverviewResponse, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.overview")
	defer span.End()

	start := time.Now()
	defer func() {
		observability.AggregateQueryLatency().WithLabelValues("overview").Observe(time.Since(start).Seconds())
	}()

	if limit <= 0 {
		limit = defaultFeedLimit
	}

	visits, err := s.visits.ListRecent(ctx, limit, offset)
	if err != nil {
		return dto.ActivityOverviewResponse{}, err
	}

	today := startOfToday()
	byAction, err := s.visits.CountByAction(ctx, &today)
	if err != nil {
		return dto.ActivityOverviewResponse{}, err
	}

	pageViews, err := s.visits.CountByPage(ctx, models.ActionPageView, &today, defaultTopPages)
	if err != nil {
		return dto.ActivityOverviewResponse{}, err
	}

	recent := make([]dto.ActivityVisit, 0, len(visits))
	for _, visit := range visits {
		recent = append(recent, dto.NewActivityVisit(visit))
	}

	return dto.ActivityOverviewResponse{
		RecentActivity:      recent,
		TodayActivityByType: actionCounts(byAction),
		TodayPageViews:      pageCounts(pageViews),
		Timestamp:           time.Now(),
	}, nil
}

func (s *analyticsService) Summary(ctx context.Context) (dto.StatsSummaryResponse, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.summary")
	defer span.End()

	start := time.Now()
	defer func() {
		observability.AggregateQueryLatency().WithLabelValues("summary").Observe(time.Since(start).Seconds())
	}()

	totalStudents, err := s.students.Count(ctx)
	if err != nil {
		return dto.StatsSummaryResponse{}, err
	}

	totalVisits, err := s.visits.Count(ctx, nil)
	if err != nil {
		return dto.StatsSummaryResponse{}, err
	}

	today := startOfToday()
	todayActivity, err := s.visits.Count(ctx, &today)
	if err != nil {
		return dto.StatsSummaryResponse{}, err
	}

	activeToday, err := s.visits.CountDistinctStudents(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return dto.StatsSummaryResponse{}, err
	}

	recentStudents, err := s.students.ListRecent(ctx, defaultTopStudents)
	if err != nil {
		return dto.StatsSummaryResponse{}, err
	}

	popularPages, err := s.visits.CountByPage(ctx, "", nil, defaultTopPages)
	if err != nil {
		return dto.StatsSummaryResponse{}, err
	}

	activityTypes, err := s.visits.CountByAction(ctx, nil)
	if err != nil {
		return dto.StatsSummaryResponse{}, err
	}

	students := make([]dto.StudentSummary, 0, len(recentStudents))
	for _, row := range recentStudents {
		students = append(students, dto.NewStudentSummary(row.Student, row.VisitCount))
	}

	return dto.StatsSummaryResponse{
		TotalStudents:       totalStudents,
		TotalVisits:         totalVisits,
		TodayActivity:       todayActivity,
		ActiveStudentsToday: activeToday,
		RecentStudents:      students,
		PopularPages:        pageCounts(popularPages),
		ActivityTypes:       actionCounts(activityTypes),
	}, nil
}

// StudentDetail returns the student plus its recent visit history. An unknown
// NetID yields a null student, not an error.
func (s *analyticsService) StudentDetail(ctx context.Context, netID string) (dto.StudentDetailResponse, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.student_detail")
	defer span.End()

	start := time.Now()
	defer func() {
		observability.AggregateQueryLatency().WithLabelValues("student_detail").Observe(time.Since(start).Seconds())
	}()

	normalized := strings.ToLower(strings.TrimSpace(netID))
	student, err := s.students.GetByNetID(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentDetailResponse{Student: nil}, nil
		}
		return dto.StudentDetailResponse{}, err
	}

	visits, err := s.visits.ListByStudent(ctx, student.ID, studentVisitHistory)
	if err != nil {
		return dto.StudentDetailResponse{}, err
	}

	total, err := s.visits.CountByStudent(ctx, student.ID)
	if err != nil {
		return dto.StudentDetailResponse{}, err
	}

	history := make([]dto.VisitDetail, 0, len(visits))
	for _, visit := range visits {
		history = append(history, dto.NewVisitDetail(visit))
	}

	return dto.StudentDetailResponse{
		Student: &dto.StudentDetail{
			ID:        student.ID,
			NetID:     student.NetID,
			Name:      student.Name,
			CreatedAt: student.CreatedAt,
			UpdatedAt: student.UpdatedAt,
			Visits:    history,
			Count:     dto.VisitTotals{Visits: total},
		},
	}, nil
}

// startOfToday returns server-local midnight. The "today" boundary follows
// the server's timezone, not a per-student one.
func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func actionCounts(buckets []repository.ActionCount) []dto.ActionCount {
	out := make([]dto.ActionCount, 0, len(buckets))
	for _, bucket := range buckets {
		out = append(out, dto.ActionCount{Action: bucket.Action, Count: bucket.Count})
	}
	return out
}

func pageCounts(buckets []repository.PageCount) []dto.PageCount {
	out := make([]dto.PageCount, 0, len(buckets))
	for _, bucket := range buckets {
		out = append(out, dto.PageCount{PagePath: bucket.PagePath, Count: bucket.Count})
	}
	return out
}
