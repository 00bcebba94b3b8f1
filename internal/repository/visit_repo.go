package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jakesworld/tracking-api/internal/models"
)

// ActionCount is one bucket of the action-kind histogram.
type ActionCount struct {
	Action string `json:"action"`
	Count  int64  `json:"count"`
}

// PageCount is one bucket of the page-popularity ranking.
type PageCount struct {
	PagePath string `json:"pagePath"`
	Count    int64  `json:"count"`
}

// VisitRepository appends immutable visit rows and answers the read-side
// aggregate queries. Visits are never updated or deleted.
type VisitRepository interface {
	Create(ctx context.Context, visit *models.Visit) error
	ListRecent(ctx context.Context, limit, offset int) ([]models.Visit, error)
	ListByStudent(ctx context.Context, studentID uint, limit int) ([]models.Visit, error)
	CountByStudent(ctx context.Context, studentID uint) (int64, error)
	Count(ctx context.Context, since *time.Time) (int64, error)
	CountByAction(ctx context.Context, since *time.Time) ([]ActionCount, error)
	CountByPage(ctx context.Context, action string, since *time.Time, limit int) ([]PageCount, error)
	CountDistinctStudents(ctx context.Context, since, until time.Time) (int64, error)
}

type visitRepository struct {
	db *gorm.DB
}

// NewVisitRepository constructs the visit repository.
func NewVisitRepository(db *gorm.DB) VisitRepository {
	return &visitRepository{db: db}
}

func (r *visitRepository) Create(ctx context.Context, visit *models.Visit) error {
	return r.db.WithContext(ctx).Create(visit).Error
}

func (r *visitRepository) ListRecent(ctx context.Context, limit, offset int) ([]models.Visit, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var visits []models.Visit
	err := r.db.WithContext(ctx).
		Preload("Student").
		Order("visited_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&visits).Error
	if err != nil {
		return nil, err
	}

	return visits, nil
}

func (r *visitRepository) ListByStudent(ctx context.Context, studentID uint, limit int) ([]models.Visit, error) {
	if limit <= 0 {
		limit = 50
	}

	var visits []models.Visit
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("visited_at DESC, id DESC").
		Limit(limit).
		Find(&visits).Error
	if err != nil {
		return nil, err
	}

	return visits, nil
}

func (r *visitRepository) CountByStudent(ctx context.Context, studentID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Visit{}).
		Where("student_id = ?", studentID).
		Count(&count).Error
	return count, err
}

func (r *visitRepository) Count(ctx context.Context, since *time.Time) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Visit{})
	if since != nil {
		query = query.Where("visited_at >= ?", *since)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *visitRepository) CountByAction(ctx context.Context, since *time.Time) ([]ActionCount, error) {
	query := r.db.WithContext(ctx).Model(&models.Visit{})
	if since != nil {
		query = query.Where("visited_at >= ?", *since)
	}

	var buckets []ActionCount
	err := query.
		Select("action, COUNT(*) AS count").
		Group("action").
		Order("count DESC").
		Scan(&buckets).Error
	if err != nil {
		return nil, err
	}

	return buckets, nil
}

func (r *visitRepository) CountByPage(ctx context.Context, action string, since *time.Time, limit int) ([]PageCount, error) {
	if limit <= 0 {
		limit = 10
	}

	query := r.db.WithContext(ctx).Model(&models.Visit{})
	if action != "" {
		query = query.Where("action = ?", action)
	}
	if since != nil {
		query = query.Where("visited_at >= ?", *since)
	}

	var buckets []PageCount
	err := query.
		Select("page_path, COUNT(*) AS count").
		Group("page_path").
		Order("count DESC").
		Limit(limit).
		Scan(&buckets).Error
	if err != nil {
		return nil, err
	}

	return buckets, nil
}

func (r *visitRepository) CountDistinctStudents(ctx context.Context, since, until time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Visit{}).
		Where("visited_at >= ? AND visited_at < ?", since, until).
		Distinct("student_id").
		Count(&count).Error
	return count, err
}
