package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/cinofilo-api/internal/models"
	"github.com/noah-isme/cinofilo-api/pkg/ai"
)

type stubCaseStudyRepo struct {
	caseStudies map[string]models.CaseStudy
}

func (s *stubCaseStudyRepo) ListByCourse(_ context.Context, courseID string) ([]models.CaseStudy, error) {
	var out []models.CaseStudy
	for _, caseStudy := range s.caseStudies {
		if caseStudy.CourseID == courseID {
			out = append(out, caseStudy)
		}
	}
	return out, nil
}

func (s *stubCaseStudyRepo) GetByID(_ context.Context, id string) (models.CaseStudy, error) {
	caseStudy, ok := s.caseStudies[id]
	if !ok {
		return models.CaseStudy{}, gorm.ErrRecordNotFound
	}
	return caseStudy, nil
}

func (s *stubCaseStudyRepo) Create(_ context.Context, caseStudy *models.CaseStudy) error {
	s.caseStudies[caseStudy.ID] = *caseStudy
	return nil
}

func (s *stubCaseStudyRepo) Update(_ context.Context, caseStudy *models.CaseStudy) error {
	s.caseStudies[caseStudy.ID] = *caseStudy
	return nil
}

func (s *stubCaseStudyRepo) Delete(_ context.Context, id string) error {
	delete(s.caseStudies, id)
	return nil
}

type stubAttemptRepo struct {
	attempts  []models.CaseStudyAttempt
	recordErr error
}

func (s *stubAttemptRepo) CountByPair(_ context.Context, caseStudyID, profileID string) (int64, error) {
	var count int64
	for _, attempt := range s.attempts {
		if attempt.CaseStudyID == caseStudyID && attempt.ProfileID == profileID {
			count++
		}
	}
	return count, nil
}

func (s *stubAttemptRepo) ListByPair(_ context.Context, caseStudyID, profileID string) ([]models.CaseStudyAttempt, error) {
	var out []models.CaseStudyAttempt
	for _, attempt := range s.attempts {
		if attempt.CaseStudyID == caseStudyID && attempt.ProfileID == profileID {
			out = append(out, attempt)
		}
	}
	return out, nil
}

func (s *stubAttemptRepo) ListByCaseStudy(_ context.Context, caseStudyID string) ([]models.CaseStudyAttempt, error) {
	var out []models.CaseStudyAttempt
	for _, attempt := range s.attempts {
		if attempt.CaseStudyID == caseStudyID {
			out = append(out, attempt)
		}
	}
	return out, nil
}

func (s *stubAttemptRepo) HasCorrect(_ context.Context, caseStudyID, profileID string) (bool, error) {
	for _, attempt := range s.attempts {
		if attempt.CaseStudyID == caseStudyID && attempt.ProfileID == profileID && attempt.IsCorrect {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubAttemptRepo) Record(_ context.Context, attempt *models.CaseStudyAttempt) error {
	if s.recordErr != nil {
		return s.recordErr
	}

	var count int
	for _, existing := range s.attempts {
		if existing.CaseStudyID == attempt.CaseStudyID && existing.ProfileID == attempt.ProfileID {
			count++
		}
	}
	attempt.AttemptNumber = count + 1
	if attempt.ID == "" {
		attempt.ID = "11111111-1111-4111-8111-111111111111"
	}
	s.attempts = append(s.attempts, *attempt)
	return nil
}

type stubGrader struct {
	calls  int
	inputs []ai.GradingInput
	result ai.GradingResult
	err    error
}

func (s *stubGrader) Evaluate(_ context.Context, input ai.GradingInput) (ai.GradingResult, error) {
	s.calls++
	s.inputs = append(s.inputs, input)
	if s.err != nil {
		return ai.GradingResult{}, s.err
	}
	return s.result, nil
}

const testCaseStudyID = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa"

func newEvaluationFixture(grader ai.Evaluator) (EvaluationService, *stubAttemptRepo) {
	caseStudyRepo := &stubCaseStudyRepo{caseStudies: map[string]models.CaseStudy{
		testCaseStudyID: {
			ID:          testCaseStudyID,
			CourseID:    "bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbbb",
			Title:       "Richiamo al parco",
			Scenario:    "Il cane ignora il richiamo quando vede altri cani.",
			ModelAnswer: "Accorciare la distanza e premiare ogni ritorno spontaneo.",
			Hints:       "Considera il livello di distrazione.",
		},
	}}
	attemptRepo := &stubAttemptRepo{}
	service := NewEvaluationService(caseStudyRepo, attemptRepo, grader, nil, nil, zerolog.Nop())
	return service, attemptRepo
}

type recordingInvalidator struct {
	profileIDs []string
}

func (r *recordingInvalidator) Invalidate(_ context.Context, profileID string) {
	r.profileIDs = append(r.profileIDs, profileID)
}

func newEvaluationFixtureWithInvalidator(grader ai.Evaluator) (EvaluationService, *stubAttemptRepo, *recordingInvalidator) {
	caseStudyRepo := &stubCaseStudyRepo{caseStudies: map[string]models.CaseStudy{
		testCaseStudyID: {
			ID:       testCaseStudyID,
			CourseID: "bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbbb",
			Title:    "Richiamo al parco",
			Scenario: "Il cane ignora il richiamo quando vede altri cani.",
		},
	}}
	attemptRepo := &stubAttemptRepo{}
	invalidator := &recordingInvalidator{}
	service := NewEvaluationService(caseStudyRepo, attemptRepo, grader, nil, invalidator, zerolog.Nop())
	return service, attemptRepo, invalidator
}

func TestEvaluateRejectsEmptyAnswerWithoutOracleCall(t *testing.T) {
	grader := &stubGrader{}
	service, attemptRepo := newEvaluationFixture(grader)

	for _, answer := range []string{"", "   ", "\n\t"} {
		_, err := service.Evaluate(context.Background(), "student-1", testCaseStudyID, answer)
		require.ErrorIs(t, err, ErrEmptyAnswer)
	}

	require.Zero(t, grader.calls)
	require.Empty(t, attemptRepo.attempts)
}

func TestEvaluateUnknownCaseStudy(t *testing.T) {
	grader := &stubGrader{}
	service, _ := newEvaluationFixture(grader)

	_, err := service.Evaluate(context.Background(), "student-1", "cccccccc-cccc-4ccc-8ccc-cccccccccccc", "La mia risposta")
	require.ErrorIs(t, err, ErrCaseStudyNotFound)
	require.Zero(t, grader.calls)
}

func TestEvaluateNilGrader(t *testing.T) {
	service, attemptRepo := newEvaluationFixture(nil)

	_, err := service.Evaluate(context.Background(), "student-1", testCaseStudyID, "La mia risposta")
	require.ErrorIs(t, err, ErrEvaluationUnavailable)
	require.Empty(t, attemptRepo.attempts)
}

func TestEvaluateNilGraderDoesNotMaskUnknownCaseStudy(t *testing.T) {
	service, _ := newEvaluationFixture(nil)

	_, err := service.Evaluate(context.Background(), "student-1", "cccccccc-cccc-4ccc-8ccc-cccccccccccc", "La mia risposta")
	require.ErrorIs(t, err, ErrCaseStudyNotFound)
}

func TestEvaluateOracleFailureLeavesNoAttempt(t *testing.T) {
	grader := &stubGrader{err: errors.New("upstream timeout")}
	service, attemptRepo := newEvaluationFixture(grader)

	_, err := service.Evaluate(context.Background(), "student-1", testCaseStudyID, "La mia risposta")
	require.ErrorIs(t, err, ErrEvaluationUnavailable)
	require.Equal(t, 1, grader.calls)
	require.Empty(t, attemptRepo.attempts)
}

func TestEvaluatePersistenceFailure(t *testing.T) {
	grader := &stubGrader{result: ai.GradingResult{IsCorrect: true, Feedback: "CORRETTO! Ottima analisi."}}
	service, attemptRepo := newEvaluationFixture(grader)
	attemptRepo.recordErr = errors.New("connection reset")

	_, err := service.Evaluate(context.Background(), "student-1", testCaseStudyID, "La mia risposta")
	require.ErrorIs(t, err, ErrAttemptPersistence)
}

func TestEvaluateCorrectVerdict(t *testing.T) {
	grader := &stubGrader{result: ai.GradingResult{IsCorrect: true, Feedback: "CORRETTO! Hai individuato la gestione della distanza."}}
	service, attemptRepo := newEvaluationFixture(grader)

	response, err := service.Evaluate(context.Background(), "student-1", testCaseStudyID, "Riduco la distanza e premio il ritorno.")
	require.NoError(t, err)

	require.True(t, response.Success)
	require.True(t, response.IsCorrect)
	require.Equal(t, "CORRETTO! Hai individuato la gestione della distanza.", response.Feedback)
	require.Equal(t, 1, response.AttemptNumber)
	require.NotEmpty(t, response.AttemptID)

	require.Len(t, attemptRepo.attempts, 1)
	stored := attemptRepo.attempts[0]
	require.True(t, stored.IsCorrect)
	require.Equal(t, "Riduco la distanza e premio il ritorno.", stored.StudentAnswer)
}

func TestEvaluateRetryVerdictAppendsEveryAttempt(t *testing.T) {
	grader := &stubGrader{result: ai.GradingResult{IsCorrect: false, Feedback: "RIPROVA. Rifletti sulla soglia di distrazione."}}
	service, attemptRepo := newEvaluationFixture(grader)

	first, err := service.Evaluate(context.Background(), "student-1", testCaseStudyID, "Uso solo il guinzaglio lungo.")
	require.NoError(t, err)
	require.False(t, first.IsCorrect)
	require.Equal(t, 1, first.AttemptNumber)

	second, err := service.Evaluate(context.Background(), "student-1", testCaseStudyID, "Uso solo il guinzaglio lungo.")
	require.NoError(t, err)
	require.Equal(t, 2, second.AttemptNumber)

	require.Len(t, attemptRepo.attempts, 2)
	require.Equal(t, 2, grader.inputs[1].AttemptNumber)
}

func TestEvaluateAttemptNumberIsPerStudent(t *testing.T) {
	grader := &stubGrader{result: ai.GradingResult{IsCorrect: false, Feedback: "RIPROVA."}}
	service, _ := newEvaluationFixture(grader)

	first, err := service.Evaluate(context.Background(), "student-1", testCaseStudyID, "Risposta uno")
	require.NoError(t, err)
	require.Equal(t, 1, first.AttemptNumber)

	other, err := service.Evaluate(context.Background(), "student-2", testCaseStudyID, "Risposta uno")
	require.NoError(t, err)
	require.Equal(t, 1, other.AttemptNumber)
}

func TestEvaluateDropsDashboardCacheAfterStoredAttempt(t *testing.T) {
	grader := &stubGrader{result: ai.GradingResult{IsCorrect: true, Feedback: "CORRETTO!"}}
	service, _, invalidator := newEvaluationFixtureWithInvalidator(grader)

	_, err := service.Evaluate(context.Background(), "student-1", testCaseStudyID, "La mia risposta")
	require.NoError(t, err)
	require.Equal(t, []string{"student-1"}, invalidator.profileIDs)
}

func TestEvaluateKeepsDashboardCacheOnFailure(t *testing.T) {
	grader := &stubGrader{err: errors.New("upstream timeout")}
	service, attemptRepo, invalidator := newEvaluationFixtureWithInvalidator(grader)

	_, err := service.Evaluate(context.Background(), "student-1", testCaseStudyID, "La mia risposta")
	require.ErrorIs(t, err, ErrEvaluationUnavailable)
	require.Empty(t, invalidator.profileIDs)

	grader.err = nil
	grader.result = ai.GradingResult{IsCorrect: false, Feedback: "RIPROVA."}
	attemptRepo.recordErr = errors.New("connection reset")

	_, err = service.Evaluate(context.Background(), "student-1", testCaseStudyID, "La mia risposta")
	require.ErrorIs(t, err, ErrAttemptPersistence)
	require.Empty(t, invalidator.profileIDs)
}

func TestEvaluatePassesHiddenFieldsToPromptOnly(t *testing.T) {
	grader := &stubGrader{result: ai.GradingResult{IsCorrect: true, Feedback: "CORRETTO!"}}
	service, _ := newEvaluationFixture(grader)

	response, err := service.Evaluate(context.Background(), "student-1", testCaseStudyID, "  Risposta con spazi  ")
	require.NoError(t, err)
	require.True(t, response.IsCorrect)

	require.Len(t, grader.inputs, 1)
	input := grader.inputs[0]
	require.Equal(t, "Accorciare la distanza e premiare ogni ritorno spontaneo.", input.ModelAnswer)
	require.Equal(t, "Considera il livello di distrazione.", input.Hints)
	require.Equal(t, "Risposta con spazi", input.StudentAnswer)
}
