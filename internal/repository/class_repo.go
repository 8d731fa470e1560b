package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/cinofilo-api/internal/models"
)

// ClassRepository defines data operations for class editions, enrollments
// and class dog assignments.
type ClassRepository interface {
	ListByCourse(ctx context.Context, courseID string) ([]models.Class, error)
	GetByID(ctx context.Context, id string) (models.Class, error)
	GetByInviteCode(ctx context.Context, code string) (models.Class, error)
	Create(ctx context.Context, class *models.Class) error
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id string) error
	Enroll(ctx context.Context, enrollment *models.ClassStudent) error
	IsEnrolled(ctx context.Context, classID, profileID string) (bool, error)
	ListStudents(ctx context.Context, classID string) ([]models.ClassStudent, error)
	ListEnrollments(ctx context.Context, profileID string) ([]models.Class, error)
	AssignDog(ctx context.Context, assignment *models.ClassDog) error
	ListDogs(ctx context.Context, classID string) ([]models.ClassDog, error)
}

type classRepository struct {
	db *gorm.DB
}

// NewClassRepository instantiates the repository.
func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) ListByCourse(ctx context.Context, courseID string) ([]models.Class, error) {
	var classes []models.Class
	if err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		Find(&classes).Error; err != nil {
		return nil, err
	}

	return classes, nil
}

func (r *classRepository) GetByID(ctx context.Context, id string) (models.Class, error) {
	var class models.Class
	if err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Lessons").
		First(&class, "id = ?", id).Error; err != nil {
		return models.Class{}, err
	}

	return class, nil
}

func (r *classRepository) GetByInviteCode(ctx context.Context, code string) (models.Class, error) {
	var class models.Class
	if err := r.db.WithContext(ctx).
		Preload("Course").
		First(&class, "invite_code = ?", code).Error; err != nil {
		return models.Class{}, err
	}

	return class, nil
}

func (r *classRepository) Create(ctx context.Context, class *models.Class) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *classRepository) Update(ctx context.Context, class *models.Class) error {
	return r.db.WithContext(ctx).Save(class).Error
}

func (r *classRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Class{}, "id = ?", id).Error
}

func (r *classRepository) Enroll(ctx context.Context, enrollment *models.ClassStudent) error {
	if enrollment.EnrolledAt.IsZero() {
		enrollment.EnrolledAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *classRepository) IsEnrolled(ctx context.Context, classID, profileID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ClassStudent{}).
		Where("class_id = ? AND profile_id = ?", classID, profileID).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *classRepository) ListStudents(ctx context.Context, classID string) ([]models.ClassStudent, error) {
	var enrollments []models.ClassStudent
	if err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("class_id = ?", classID).
		Order("enrolled_at ASC").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}

	return enrollments, nil
}

func (r *classRepository) ListEnrollments(ctx context.Context, profileID string) ([]models.Class, error) {
	var classes []models.Class
	if err := r.db.WithContext(ctx).
		Preload("Course").
		Joins("JOIN class_students ON class_students.class_id = classes.id").
		Where("class_students.profile_id = ?", profileID).
		Order("classes.created_at DESC").
		Find(&classes).Error; err != nil {
		return nil, err
	}

	return classes, nil
}

func (r *classRepository) AssignDog(ctx context.Context, assignment *models.ClassDog) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *classRepository) ListDogs(ctx context.Context, classID string) ([]models.ClassDog, error) {
	var assignments []models.ClassDog
	if err := r.db.WithContext(ctx).
		Preload("Dog").
		Where("class_id = ?", classID).
		Find(&assignments).Error; err != nil {
		return nil, err
	}

	return assignments, nil
}
