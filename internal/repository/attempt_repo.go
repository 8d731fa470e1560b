package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/noah-isme/cinofilo-api/internal/models"
)

// AttemptRepository defines data operations for the append-only case study
// attempt ledger.
type AttemptRepository interface {
	CountByPair(ctx context.Context, caseStudyID, profileID string) (int64, error)
	ListByPair(ctx context.Context, caseStudyID, profileID string) ([]models.CaseStudyAttempt, error)
	ListByCaseStudy(ctx context.Context, caseStudyID string) ([]models.CaseStudyAttempt, error)
	HasCorrect(ctx context.Context, caseStudyID, profileID string) (bool, error)
	Record(ctx context.Context, attempt *models.CaseStudyAttempt) error
}

type attemptRepository struct {
	db *gorm.DB
}

// NewAttemptRepository instantiates the repository.
func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) CountByPair(ctx context.Context, caseStudyID, profileID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CaseStudyAttempt{}).
		Where("case_study_id = ? AND profile_id = ?", caseStudyID, profileID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *attemptRepository) ListByPair(ctx context.Context, caseStudyID, profileID string) ([]models.CaseStudyAttempt, error) {
	var attempts []models.CaseStudyAttempt
	if err := r.db.WithContext(ctx).
		Where("case_study_id = ? AND profile_id = ?", caseStudyID, profileID).
		Order("attempt_number ASC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}

	return attempts, nil
}

func (r *attemptRepository) ListByCaseStudy(ctx context.Context, caseStudyID string) ([]models.CaseStudyAttempt, error) {
	var attempts []models.CaseStudyAttempt
	if err := r.db.WithContext(ctx).
		Where("case_study_id = ?", caseStudyID).
		Order("profile_id ASC, attempt_number ASC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}

	return attempts, nil
}

func (r *attemptRepository) HasCorrect(ctx context.Context, caseStudyID, profileID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CaseStudyAttempt{}).
		Where("case_study_id = ? AND profile_id = ? AND is_correct = ?", caseStudyID, profileID, true).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// Record appends a new attempt, assigning attempt_number = prior count + 1
// inside a serializable transaction so that two concurrent submissions by
// the same student cannot observe the same count and claim the same number.
func (r *attemptRepository) Record(ctx context.Context, attempt *models.CaseStudyAttempt) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.CaseStudyAttempt{}).
			Where("case_study_id = ? AND profile_id = ?", attempt.CaseStudyID, attempt.ProfileID).
			Count(&count).Error; err != nil {
			return err
		}

		attempt.AttemptNumber = int(count) + 1

		return tx.Create(attempt).Error
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
}
