package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/cinofilo-api/internal/dto"
	"github.com/noah-isme/cinofilo-api/internal/models"
	"github.com/noah-isme/cinofilo-api/internal/repository"
)

// ErrQuizNotFound indicates a quiz could not be found.
var ErrQuizNotFound = errors.New("quiz not found")

// ErrSubmissionNotFound indicates a quiz submission could not be found.
var ErrSubmissionNotFound = errors.New("quiz submission not found")

// ErrAlreadySubmitted indicates the student has already answered this quiz.
var ErrAlreadySubmitted = errors.New("quiz already submitted")

// QuizService manages open-answer quizzes, one submission per student, and
// tutor feedback on submissions.
type QuizService interface {
	ListByCourse(ctx context.Context, courseID string, includeModelAnswer bool) ([]dto.QuizResponse, error)
	Get(ctx context.Context, id string, includeModelAnswer bool) (dto.QuizResponse, error)
	Create(ctx context.Context, payload dto.QuizCreateRequest) (dto.QuizResponse, error)
	Update(ctx context.Context, id string, payload dto.QuizUpdateRequest) (dto.QuizResponse, error)
	Delete(ctx context.Context, id string) error
	Submit(ctx context.Context, quizID, profileID string, payload dto.QuizAnswerRequest) (dto.QuizSubmissionResponse, error)
	GetOwnSubmission(ctx context.Context, quizID, profileID string) (dto.QuizSubmissionResponse, error)
	ListSubmissions(ctx context.Context, quizID string) ([]dto.QuizSubmissionResponse, error)
	LeaveFeedback(ctx context.Context, submissionID string, payload dto.QuizFeedbackRequest) (dto.QuizSubmissionResponse, error)
}

type quizService struct {
	quizzes   repository.QuizRepository
	courses   repository.CourseRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewQuizService constructs a QuizService instance.
func NewQuizService(quizRepo repository.QuizRepository, courseRepo repository.CourseRepository, validate *validator.Validate, logger zerolog.Logger) QuizService {
	return &quizService{
		quizzes:   quizRepo,
		courses:   courseRepo,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "quiz_service").Logger(),
	}
}

func (s *quizService) ListByCourse(ctx context.Context, courseID string, includeModelAnswer bool) ([]dto.QuizResponse, error) {
	quizzes, err := s.quizzes.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return dto.NewQuizResponseSlice(quizzes, includeModelAnswer), nil
}

func (s *quizService) Get(ctx context.Context, id string, includeModelAnswer bool) (dto.QuizResponse, error) {
	quiz, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuizResponse{}, ErrQuizNotFound
		}
		return dto.QuizResponse{}, err
	}

	return dto.NewQuizResponse(quiz, includeModelAnswer), nil
}

func (s *quizService) Create(ctx context.Context, payload dto.QuizCreateRequest) (dto.QuizResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuizResponse{}, err
	}

	if _, err := s.courses.GetByID(ctx, payload.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuizResponse{}, ErrCourseNotFound
		}
		return dto.QuizResponse{}, err
	}

	quiz := models.Quiz{
		CourseID:    payload.CourseID,
		Title:       payload.Title,
		Question:    payload.Question,
		ModelAnswer: payload.ModelAnswer,
	}

	if err := s.quizzes.Create(ctx, &quiz); err != nil {
		return dto.QuizResponse{}, err
	}

	s.logger.Info().Str("quiz_id", quiz.ID).Str("course_id", quiz.CourseID).Msg("quiz created")

	return dto.NewQuizResponse(quiz, true), nil
}

func (s *quizService) Update(ctx context.Context, id string, payload dto.QuizUpdateRequest) (dto.QuizResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuizResponse{}, err
	}

	quiz, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuizResponse{}, ErrQuizNotFound
		}
		return dto.QuizResponse{}, err
	}

	if payload.Title != nil {
		quiz.Title = *payload.Title
	}
	if payload.Question != nil {
		quiz.Question = *payload.Question
	}
	if payload.ModelAnswer != nil {
		quiz.ModelAnswer = *payload.ModelAnswer
	}

	if err := s.quizzes.Update(ctx, &quiz); err != nil {
		return dto.QuizResponse{}, err
	}

	return dto.NewQuizResponse(quiz, true), nil
}

func (s *quizService) Delete(ctx context.Context, id string) error {
	if _, err := s.quizzes.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuizNotFound
		}
		return err
	}

	return s.quizzes.Delete(ctx, id)
}

// Submit records the student's one answer to a quiz. A second submission for
// the same quiz is rejected.
func (s *quizService) Submit(ctx context.Context, quizID, profileID string, payload dto.QuizAnswerRequest) (dto.QuizSubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuizSubmissionResponse{}, err
	}

	if _, err := s.quizzes.GetByID(ctx, quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuizSubmissionResponse{}, ErrQuizNotFound
		}
		return dto.QuizSubmissionResponse{}, err
	}

	if _, err := s.quizzes.GetSubmission(ctx, quizID, profileID); err == nil {
		return dto.QuizSubmissionResponse{}, ErrAlreadySubmitted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.QuizSubmissionResponse{}, err
	}

	submission := models.QuizSubmission{
		QuizID:    quizID,
		ProfileID: profileID,
		Answer:    payload.Answer,
	}

	if err := s.quizzes.CreateSubmission(ctx, &submission); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.QuizSubmissionResponse{}, ErrAlreadySubmitted
		}
		return dto.QuizSubmissionResponse{}, err
	}

	s.logger.Info().Str("quiz_id", quizID).Str("profile_id", profileID).Msg("quiz submitted")

	return dto.NewQuizSubmissionResponse(submission), nil
}

func (s *quizService) GetOwnSubmission(ctx context.Context, quizID, profileID string) (dto.QuizSubmissionResponse, error) {
	submission, err := s.quizzes.GetSubmission(ctx, quizID, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuizSubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.QuizSubmissionResponse{}, err
	}

	return dto.NewQuizSubmissionResponse(submission), nil
}

func (s *quizService) ListSubmissions(ctx context.Context, quizID string) ([]dto.QuizSubmissionResponse, error) {
	if _, err := s.quizzes.GetByID(ctx, quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	submissions, err := s.quizzes.ListSubmissions(ctx, quizID)
	if err != nil {
		return nil, err
	}

	return dto.NewQuizSubmissionResponseSlice(submissions), nil
}

// LeaveFeedback attaches tutor feedback to a submission. The feedback text is
// sanitized before storage.
func (s *quizService) LeaveFeedback(ctx context.Context, submissionID string, payload dto.QuizFeedbackRequest) (dto.QuizSubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuizSubmissionResponse{}, err
	}

	submission, err := s.quizzes.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuizSubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.QuizSubmissionResponse{}, err
	}

	submission.TutorFeedback = s.sanitizer.Sanitize(payload.Feedback)

	if err := s.quizzes.UpdateSubmission(ctx, &submission); err != nil {
		return dto.QuizSubmissionResponse{}, err
	}

	return dto.NewQuizSubmissionResponse(submission), nil
}
