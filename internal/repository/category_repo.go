package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/cinofilo-api/internal/models"
)

// CategoryRepository defines data operations for material categories.
type CategoryRepository interface {
	ListByCourse(ctx context.Context, courseID string) ([]models.MaterialCategory, error)
	GetByID(ctx context.Context, id string) (models.MaterialCategory, error)
	Create(ctx context.Context, category *models.MaterialCategory) error
	Update(ctx context.Context, category *models.MaterialCategory) error
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, courseID string, orderedIDs []string) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository instantiates the repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) ListByCourse(ctx context.Context, courseID string) ([]models.MaterialCategory, error) {
	var categories []models.MaterialCategory
	if err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("sort_order ASC, created_at ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (models.MaterialCategory, error) {
	var category models.MaterialCategory
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return models.MaterialCategory{}, err
	}

	return category, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *models.MaterialCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) Update(ctx context.Context, category *models.MaterialCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.MaterialCategory{}, "id = ?", id).Error
}

// Reorder persists a complete sort assignment for a course in one
// transaction, so a failed update never leaves the list half-moved.
func (r *categoryRepository) Reorder(ctx context.Context, courseID string, orderedIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for position, id := range orderedIDs {
			result := tx.Model(&models.MaterialCategory{}).
				Where("id = ? AND course_id = ?", id, courseID).
				Update("sort_order", position)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}
