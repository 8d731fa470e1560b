package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/cinofilo-api/internal/dto"
	"github.com/noah-isme/cinofilo-api/internal/models"
	"github.com/noah-isme/cinofilo-api/internal/repository"
)

// CaseStudyService manages the tutor-side case study catalog and the attempt
// ledger views. The student-facing views never expose the model answer or the
// hints, those only ever feed the grading prompt.
type CaseStudyService interface {
	ListForStudent(ctx context.Context, courseID, profileID string) ([]dto.CaseStudyResponse, error)
	GetForStudent(ctx context.Context, id, profileID string) (dto.CaseStudyResponse, error)
	ListForTutor(ctx context.Context, courseID string) ([]dto.CaseStudyTutorResponse, error)
	GetForTutor(ctx context.Context, id string) (dto.CaseStudyTutorResponse, error)
	Create(ctx context.Context, payload dto.CaseStudyCreateRequest) (dto.CaseStudyTutorResponse, error)
	Update(ctx context.Context, id string, payload dto.CaseStudyUpdateRequest) (dto.CaseStudyTutorResponse, error)
	Delete(ctx context.Context, id string) error
	ListOwnAttempts(ctx context.Context, caseStudyID, profileID string) ([]dto.AttemptResponse, error)
	ListAttempts(ctx context.Context, caseStudyID string) ([]dto.AttemptResponse, error)
}

type caseStudyService struct {
	caseStudies repository.CaseStudyRepository
	attempts    repository.AttemptRepository
	courses     repository.CourseRepository
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewCaseStudyService constructs a CaseStudyService instance.
func NewCaseStudyService(caseStudyRepo repository.CaseStudyRepository, attemptRepo repository.AttemptRepository, courseRepo repository.CourseRepository, validate *validator.Validate, logger zerolog.Logger) CaseStudyService {
	return &caseStudyService{
		caseStudies: caseStudyRepo,
		attempts:    attemptRepo,
		courses:     courseRepo,
		validator:   validate,
		logger:      logger.With().Str("component", "case_study_service").Logger(),
	}
}

func (s *caseStudyService) ListForStudent(ctx context.Context, courseID, profileID string) ([]dto.CaseStudyResponse, error) {
	caseStudies, err := s.caseStudies.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CaseStudyResponse, 0, len(caseStudies))
	for _, caseStudy := range caseStudies {
		completed, err := s.attempts.HasCorrect(ctx, caseStudy.ID, profileID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.NewCaseStudyResponse(caseStudy, completed))
	}

	return out, nil
}

func (s *caseStudyService) GetForStudent(ctx context.Context, id, profileID string) (dto.CaseStudyResponse, error) {
	caseStudy, err := s.caseStudies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CaseStudyResponse{}, ErrCaseStudyNotFound
		}
		return dto.CaseStudyResponse{}, err
	}

	completed, err := s.attempts.HasCorrect(ctx, caseStudy.ID, profileID)
	if err != nil {
		return dto.CaseStudyResponse{}, err
	}

	return dto.NewCaseStudyResponse(caseStudy, completed), nil
}

func (s *caseStudyService) ListForTutor(ctx context.Context, courseID string) ([]dto.CaseStudyTutorResponse, error) {
	caseStudies, err := s.caseStudies.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return dto.NewCaseStudyTutorResponseSlice(caseStudies), nil
}

func (s *caseStudyService) GetForTutor(ctx context.Context, id string) (dto.CaseStudyTutorResponse, error) {
	caseStudy, err := s.caseStudies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CaseStudyTutorResponse{}, ErrCaseStudyNotFound
		}
		return dto.CaseStudyTutorResponse{}, err
	}

	return dto.NewCaseStudyTutorResponse(caseStudy), nil
}

func (s *caseStudyService) Create(ctx context.Context, payload dto.CaseStudyCreateRequest) (dto.CaseStudyTutorResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CaseStudyTutorResponse{}, err
	}

	if _, err := s.courses.GetByID(ctx, payload.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CaseStudyTutorResponse{}, ErrCourseNotFound
		}
		return dto.CaseStudyTutorResponse{}, err
	}

	caseStudy := models.CaseStudy{
		CourseID:    payload.CourseID,
		Title:       payload.Title,
		Scenario:    payload.Scenario,
		ModelAnswer: payload.ModelAnswer,
		Hints:       payload.Hints,
	}

	if err := s.caseStudies.Create(ctx, &caseStudy); err != nil {
		return dto.CaseStudyTutorResponse{}, err
	}

	s.logger.Info().Str("case_study_id", caseStudy.ID).Str("course_id", caseStudy.CourseID).Msg("case study created")

	return dto.NewCaseStudyTutorResponse(caseStudy), nil
}

func (s *caseStudyService) Update(ctx context.Context, id string, payload dto.CaseStudyUpdateRequest) (dto.CaseStudyTutorResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CaseStudyTutorResponse{}, err
	}

	caseStudy, err := s.caseStudies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CaseStudyTutorResponse{}, ErrCaseStudyNotFound
		}
		return dto.CaseStudyTutorResponse{}, err
	}

	if payload.Title != nil {
		caseStudy.Title = *payload.Title
	}
	if payload.Scenario != nil {
		caseStudy.Scenario = *payload.Scenario
	}
	if payload.ModelAnswer != nil {
		caseStudy.ModelAnswer = *payload.ModelAnswer
	}
	if payload.Hints != nil {
		caseStudy.Hints = *payload.Hints
	}

	if err := s.caseStudies.Update(ctx, &caseStudy); err != nil {
		return dto.CaseStudyTutorResponse{}, err
	}

	return dto.NewCaseStudyTutorResponse(caseStudy), nil
}

func (s *caseStudyService) Delete(ctx context.Context, id string) error {
	if _, err := s.caseStudies.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCaseStudyNotFound
		}
		return err
	}

	return s.caseStudies.Delete(ctx, id)
}

func (s *caseStudyService) ListOwnAttempts(ctx context.Context, caseStudyID, profileID string) ([]dto.AttemptResponse, error) {
	attempts, err := s.attempts.ListByPair(ctx, caseStudyID, profileID)
	if err != nil {
		return nil, err
	}

	return dto.NewAttemptResponseSlice(attempts), nil
}

func (s *caseStudyService) ListAttempts(ctx context.Context, caseStudyID string) ([]dto.AttemptResponse, error) {
	if _, err := s.caseStudies.GetByID(ctx, caseStudyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseStudyNotFound
		}
		return nil, err
	}

	attempts, err := s.attempts.ListByCaseStudy(ctx, caseStudyID)
	if err != nil {
		return nil, err
	}

	return dto.NewAttemptResponseSlice(attempts), nil
}
