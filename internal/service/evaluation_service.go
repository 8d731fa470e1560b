package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/cinofilo-api/internal/dto"
	"github.com/noah-isme/cinofilo-api/internal/models"
	"github.com/noah-isme/cinofilo-api/internal/repository"
	"github.com/noah-isme/cinofilo-api/pkg/ai"
)

// ErrCaseStudyNotFound indicates the case study does not exist.
var ErrCaseStudyNotFound = errors.New("case study not found")

// ErrEmptyAnswer indicates the student submitted a blank answer.
var ErrEmptyAnswer = errors.New("answer must not be empty")

// ErrEvaluationUnavailable indicates the AI oracle is unreachable or
// misconfigured. No attempt is persisted when this is returned.
var ErrEvaluationUnavailable = errors.New("evaluation unavailable")

// ErrAttemptPersistence indicates the attempt could not be stored after a
// successful oracle call.
var ErrAttemptPersistence = errors.New("failed to store attempt")

// EvaluationService grades a student's free-text answer against a case
// study's hidden model answer and appends the result to the attempt ledger.
type EvaluationService interface {
	Evaluate(ctx context.Context, profileID, caseStudyID, answer string) (dto.EvaluateResponse, error)
}

type evaluationService struct {
	caseStudies repository.CaseStudyRepository
	attempts    repository.AttemptRepository
	grader      ai.Evaluator
	events      *EventPublisher
	dashboards  DashboardInvalidator
	logger      zerolog.Logger
}

// NewEvaluationService constructs the evaluation workflow. A nil invalidator
// skips the dashboard cache drop after a stored attempt.
func NewEvaluationService(caseStudyRepo repository.CaseStudyRepository, attemptRepo repository.AttemptRepository, grader ai.Evaluator, events *EventPublisher, dashboards DashboardInvalidator, logger zerolog.Logger) EvaluationService {
	return &evaluationService{
		caseStudies: caseStudyRepo,
		attempts:    attemptRepo,
		grader:      grader,
		events:      events,
		dashboards:  dashboards,
		logger:      logger.With().Str("component", "evaluation_service").Logger(),
	}
}

// Evaluate runs the full grading workflow: validate, load, number, grade,
// persist. The oracle is never invoked before input validation, and no
// attempt row exists unless persistence succeeds.
func (s *evaluationService) Evaluate(ctx context.Context, profileID, caseStudyID, answer string) (dto.EvaluateResponse, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return dto.EvaluateResponse{}, ErrEmptyAnswer
	}

	caseStudy, err := s.caseStudies.GetByID(ctx, caseStudyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EvaluateResponse{}, ErrCaseStudyNotFound
		}
		return dto.EvaluateResponse{}, err
	}

	// A missing grader configuration must not mask a missing case study.
	if s.grader == nil {
		return dto.EvaluateResponse{}, fmt.Errorf("%w: no grader configured", ErrEvaluationUnavailable)
	}

	// Provisional number for the prompt; the ledger recounts inside its
	// transaction when the row is written.
	priorCount, err := s.attempts.CountByPair(ctx, caseStudyID, profileID)
	if err != nil {
		return dto.EvaluateResponse{}, err
	}
	attemptNumber := int(priorCount) + 1

	result, err := s.grader.Evaluate(ctx, ai.GradingInput{
		Scenario:      caseStudy.Scenario,
		ModelAnswer:   caseStudy.ModelAnswer,
		Hints:         caseStudy.Hints,
		StudentAnswer: answer,
		AttemptNumber: attemptNumber,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("case_study_id", caseStudyID).Msg("oracle call failed")
		return dto.EvaluateResponse{}, fmt.Errorf("%w: %v", ErrEvaluationUnavailable, err)
	}

	attempt := models.CaseStudyAttempt{
		CaseStudyID:   caseStudy.ID,
		ProfileID:     profileID,
		StudentAnswer: answer,
		IsCorrect:     result.IsCorrect,
		AIFeedback:    result.Feedback,
	}

	if err := s.attempts.Record(ctx, &attempt); err != nil {
		s.logger.Error().Err(err).Str("case_study_id", caseStudyID).Msg("failed to persist attempt")
		return dto.EvaluateResponse{}, fmt.Errorf("%w: %v", ErrAttemptPersistence, err)
	}

	s.logger.Info().
		Str("case_study_id", caseStudy.ID).
		Str("profile_id", profileID).
		Int("attempt_number", attempt.AttemptNumber).
		Bool("is_correct", attempt.IsCorrect).
		Msg("attempt graded")

	s.events.Publish(SubjectAttemptGraded, dto.NewAttemptResponse(attempt))

	if s.dashboards != nil {
		s.dashboards.Invalidate(ctx, profileID)
	}

	return dto.EvaluateResponse{
		Success:       true,
		IsCorrect:     attempt.IsCorrect,
		Feedback:      attempt.AIFeedback,
		AttemptNumber: attempt.AttemptNumber,
		AttemptID:     attempt.ID,
	}, nil
}
