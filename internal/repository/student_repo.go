package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jakesworld/tracking-api/internal/models"
)

// StudentWithVisitCount pairs a student row with its lifetime visit total.
type StudentWithVisitCount struct {
	models.Student
	VisitCount int64 `json:"visitCount"`
}

// StudentRepository provides access to student records keyed by NetID.
type StudentRepository interface {
	// Upsert atomically creates the student on first sighting or refreshes
	// updated_at (and the name, when non-empty) on later sightings. The
	// uniqueness guarantee is delegated to the store's conflict clause.
	Upsert(ctx context.Context, netID, name string) (models.Student, error)
	GetByNetID(ctx context.Context, netID string) (models.Student, error)
	Count(ctx context.Context) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]StudentWithVisitCount, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs a student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Upsert(ctx context.Context, netID, name string) (models.Student, error) {
	now := time.Now()

	assignments := map[string]interface{}{"updated_at": now}
	if name != "" {
		assignments["name"] = name
	}

	student := models.Student{NetID: netID, Name: name}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "net_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&student).Error
	if err != nil {
		return models.Student{}, err
	}

	// Re-read so callers always get the durable row, conflict or not.
	return r.GetByNetID(ctx, netID)
}

func (r *studentRepository) GetByNetID(ctx context.Context, netID string) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, "net_id = ?", netID).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Student{}).Count(&count).Error
	return count, err
}

func (r *studentRepository) ListRecent(ctx context.Context, limit int) ([]StudentWithVisitCount, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []StudentWithVisitCount
	err := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Select("students.*, COUNT(visits.id) AS visit_count").
		Joins("LEFT JOIN visits ON visits.student_id = students.id").
		Group("students.id").
		Order("students.updated_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
