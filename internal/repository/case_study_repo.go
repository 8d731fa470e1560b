package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/cinofilo-api/internal/models"
)

// CaseStudyRepository defines data operations for case studies.
type CaseStudyRepository interface {
	ListByCourse(ctx context.Context, courseID string) ([]models.CaseStudy, error)
	GetByID(ctx context.Context, id string) (models.CaseStudy, error)
	Create(ctx context.Context, caseStudy *models.CaseStudy) error
	Update(ctx context.Context, caseStudy *models.CaseStudy) error
	Delete(ctx context.Context, id string) error
}

type caseStudyRepository struct {
	db *gorm.DB
}

// NewCaseStudyRepository instantiates the repository.
func NewCaseStudyRepository(db *gorm.DB) CaseStudyRepository {
	return &caseStudyRepository{db: db}
}

func (r *caseStudyRepository) ListByCourse(ctx context.Context, courseID string) ([]models.CaseStudy, error) {
	var caseStudies []models.CaseStudy
	if err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		Find(&caseStudies).Error; err != nil {
		return nil, err
	}

	return caseStudies, nil
}

func (r *caseStudyRepository) GetByID(ctx context.Context, id string) (models.CaseStudy, error) {
	var caseStudy models.CaseStudy
	if err := r.db.WithContext(ctx).First(&caseStudy, "id = ?", id).Error; err != nil {
		return models.CaseStudy{}, err
	}

	return caseStudy, nil
}

func (r *caseStudyRepository) Create(ctx context.Context, caseStudy *models.CaseStudy) error {
	return r.db.WithContext(ctx).Create(caseStudy).Error
}

func (r *caseStudyRepository) Update(ctx context.Context, caseStudy *models.CaseStudy) error {
	return r.db.WithContext(ctx).Save(caseStudy).Error
}

// Delete removes the case study and, by cascade, its attempt ledger.
func (r *caseStudyRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.CaseStudyAttempt{}, "case_study_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.CaseStudy{}, "id = ?", id).Error
	})
}
