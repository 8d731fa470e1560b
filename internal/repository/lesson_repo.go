package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/cinofilo-api/internal/models"
)

// LessonRepository defines data operations for lessons.
type LessonRepository interface {
	ListByClass(ctx context.Context, classID string) ([]models.Lesson, error)
	ListUpcoming(ctx context.Context, classIDs []string, after time.Time, limit int) ([]models.Lesson, error)
	GetByID(ctx context.Context, id string) (models.Lesson, error)
	Create(ctx context.Context, lesson *models.Lesson) error
	Update(ctx context.Context, lesson *models.Lesson) error
	Delete(ctx context.Context, id string) error
}

type lessonRepository struct {
	db *gorm.DB
}

// NewLessonRepository instantiates the repository.
func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) ListByClass(ctx context.Context, classID string) ([]models.Lesson, error) {
	var lessons []models.Lesson
	if err := r.db.WithContext(ctx).
		Where("class_id = ?", classID).
		Order("lesson_date ASC, start_time ASC").
		Find(&lessons).Error; err != nil {
		return nil, err
	}

	return lessons, nil
}

func (r *lessonRepository) ListUpcoming(ctx context.Context, classIDs []string, after time.Time, limit int) ([]models.Lesson, error) {
	if len(classIDs) == 0 {
		return nil, nil
	}

	query := r.db.WithContext(ctx).
		Where("class_id IN ?", classIDs).
		Where("lesson_date >= ?", after).
		Order("lesson_date ASC, start_time ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	var lessons []models.Lesson
	if err := query.Find(&lessons).Error; err != nil {
		return nil, err
	}

	return lessons, nil
}

func (r *lessonRepository) GetByID(ctx context.Context, id string) (models.Lesson, error) {
	var lesson models.Lesson
	if err := r.db.WithContext(ctx).First(&lesson, "id = ?", id).Error; err != nil {
		return models.Lesson{}, err
	}

	return lesson, nil
}

func (r *lessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	return r.db.WithContext(ctx).Create(lesson).Error
}

func (r *lessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	return r.db.WithContext(ctx).Save(lesson).Error
}

func (r *lessonRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Lesson{}, "id = ?", id).Error
}
