package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/cinofilo-api/internal/dto"
	"github.com/noah-isme/cinofilo-api/internal/models"
	"github.com/noah-isme/cinofilo-api/internal/repository"
)

// ErrLessonNotFound indicates a lesson could not be found.
var ErrLessonNotFound = errors.New("lesson not found")

// LessonService manages the lesson calendar of class editions.
type LessonService interface {
	ListByClass(ctx context.Context, classID string) ([]dto.LessonResponse, error)
	ListUpcomingForStudent(ctx context.Context, profileID string, limit int) ([]dto.LessonResponse, error)
	Get(ctx context.Context, id string) (dto.LessonResponse, error)
	Create(ctx context.Context, payload dto.LessonCreateRequest) (dto.LessonResponse, error)
	Update(ctx context.Context, id string, payload dto.LessonUpdateRequest) (dto.LessonResponse, error)
	Delete(ctx context.Context, id string) error
}

type lessonService struct {
	lessons   repository.LessonRepository
	classes   repository.ClassRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewLessonService constructs a LessonService instance.
func NewLessonService(lessonRepo repository.LessonRepository, classRepo repository.ClassRepository, validate *validator.Validate, logger zerolog.Logger) LessonService {
	return &lessonService{
		lessons:   lessonRepo,
		classes:   classRepo,
		validator: validate,
		logger:    logger.With().Str("component", "lesson_service").Logger(),
		now:       time.Now,
	}
}

func (s *lessonService) ListByClass(ctx context.Context, classID string) ([]dto.LessonResponse, error) {
	lessons, err := s.lessons.ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	return dto.NewLessonResponseSlice(lessons), nil
}

// ListUpcomingForStudent returns the next lessons across every class the
// student is enrolled in, soonest first.
func (s *lessonService) ListUpcomingForStudent(ctx context.Context, profileID string, limit int) ([]dto.LessonResponse, error) {
	classes, err := s.classes.ListEnrollments(ctx, profileID)
	if err != nil {
		return nil, err
	}

	classIDs := make([]string, 0, len(classes))
	for _, class := range classes {
		classIDs = append(classIDs, class.ID)
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	lessons, err := s.lessons.ListUpcoming(ctx, classIDs, today, limit)
	if err != nil {
		return nil, err
	}

	return dto.NewLessonResponseSlice(lessons), nil
}

func (s *lessonService) Get(ctx context.Context, id string) (dto.LessonResponse, error) {
	lesson, err := s.lessons.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LessonResponse{}, ErrLessonNotFound
		}
		return dto.LessonResponse{}, err
	}

	return dto.NewLessonResponse(lesson), nil
}

func (s *lessonService) Create(ctx context.Context, payload dto.LessonCreateRequest) (dto.LessonResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LessonResponse{}, err
	}

	if _, err := s.classes.GetByID(ctx, payload.ClassID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LessonResponse{}, ErrClassNotFound
		}
		return dto.LessonResponse{}, err
	}

	lesson := models.Lesson{
		ClassID:      payload.ClassID,
		Title:        payload.Title,
		Description:  payload.Description,
		LessonDate:   payload.LessonDate,
		StartTime:    payload.StartTime,
		EndTime:      payload.EndTime,
		Location:     payload.Location,
		RequiredPrep: payload.RequiredPrep,
	}

	if err := s.lessons.Create(ctx, &lesson); err != nil {
		return dto.LessonResponse{}, err
	}

	s.logger.Info().Str("lesson_id", lesson.ID).Str("class_id", lesson.ClassID).Msg("lesson scheduled")

	return dto.NewLessonResponse(lesson), nil
}

func (s *lessonService) Update(ctx context.Context, id string, payload dto.LessonUpdateRequest) (dto.LessonResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LessonResponse{}, err
	}

	lesson, err := s.lessons.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LessonResponse{}, ErrLessonNotFound
		}
		return dto.LessonResponse{}, err
	}

	if payload.Title != nil {
		lesson.Title = *payload.Title
	}
	if payload.Description != nil {
		lesson.Description = *payload.Description
	}
	if payload.LessonDate != nil {
		lesson.LessonDate = *payload.LessonDate
	}
	if payload.StartTime != nil {
		lesson.StartTime = *payload.StartTime
	}
	if payload.EndTime != nil {
		lesson.EndTime = *payload.EndTime
	}
	if payload.Location != nil {
		lesson.Location = *payload.Location
	}
	if payload.RequiredPrep != nil {
		lesson.RequiredPrep = *payload.RequiredPrep
	}

	if err := s.lessons.Update(ctx, &lesson); err != nil {
		return dto.LessonResponse{}, err
	}

	return dto.NewLessonResponse(lesson), nil
}

func (s *lessonService) Delete(ctx context.Context, id string) error {
	if _, err := s.lessons.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLessonNotFound
		}
		return err
	}

	return s.lessons.Delete(ctx, id)
}
