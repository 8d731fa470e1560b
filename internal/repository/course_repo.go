package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/cinofilo-api/internal/models"
)

// CourseRepository defines data operations for courses and tutor assignments.
type CourseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	ListByTutor(ctx context.Context, tutorID string) ([]models.Course, error)
	GetByID(ctx context.Context, id string) (models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
	AssignTutor(ctx context.Context, courseID, tutorID string) error
	RemoveTutor(ctx context.Context, courseID, tutorID string) error
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository instantiates the repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) List(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := r.db.WithContext(ctx).
		Preload("Tutors").
		Order("created_at DESC").
		Find(&courses).Error; err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *courseRepository) ListByTutor(ctx context.Context, tutorID string) ([]models.Course, error) {
	var courses []models.Course
	if err := r.db.WithContext(ctx).
		Joins("JOIN course_tutors ON course_tutors.course_id = courses.id").
		Where("course_tutors.profile_id = ?", tutorID).
		Order("courses.created_at DESC").
		Find(&courses).Error; err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *courseRepository) GetByID(ctx context.Context, id string) (models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).
		Preload("Tutors").
		First(&course, "id = ?", id).Error; err != nil {
		return models.Course{}, err
	}

	return course, nil
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *courseRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Course{}, "id = ?", id).Error
}

func (r *courseRepository) AssignTutor(ctx context.Context, courseID, tutorID string) error {
	course := models.Course{ID: courseID}
	tutor := models.Profile{ID: tutorID}
	return r.db.WithContext(ctx).Model(&course).Association("Tutors").Append(&tutor)
}

func (r *courseRepository) RemoveTutor(ctx context.Context, courseID, tutorID string) error {
	course := models.Course{ID: courseID}
	tutor := models.Profile{ID: tutorID}
	return r.db.WithContext(ctx).Model(&course).Association("Tutors").Delete(&tutor)
}
