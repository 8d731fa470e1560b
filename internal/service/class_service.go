package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/cinofilo-api/internal/dto"
	"github.com/noah-isme/cinofilo-api/internal/models"
	"github.com/noah-isme/cinofilo-api/internal/repository"
)

// ErrClassNotFound indicates a class edition could not be found.
var ErrClassNotFound = errors.New("class not found")

// ErrInviteCodeInvalid indicates no class matches the invite code.
var ErrInviteCodeInvalid = errors.New("invite code invalid")

// ErrAlreadyEnrolled indicates the student is already in the class.
var ErrAlreadyEnrolled = errors.New("already enrolled")

// ErrNotEnrolled indicates the student is not enrolled in the class.
var ErrNotEnrolled = errors.New("not enrolled")

// ClassService manages class editions, enrollment and dog assignments.
type ClassService interface {
	ListByCourse(ctx context.Context, courseID string, includeInvite bool) ([]dto.ClassResponse, error)
	Get(ctx context.Context, id string, includeInvite bool) (dto.ClassResponse, error)
	Create(ctx context.Context, payload dto.ClassCreateRequest) (dto.ClassResponse, error)
	Update(ctx context.Context, id string, payload dto.ClassUpdateRequest) (dto.ClassResponse, error)
	Delete(ctx context.Context, id string) error
	Join(ctx context.Context, profileID string, payload dto.JoinClassRequest) (dto.ClassResponse, error)
	ListStudents(ctx context.Context, classID string) ([]dto.EnrollmentResponse, error)
	AssignDog(ctx context.Context, classID, profileID string, payload dto.AssignDogRequest) error
	ListDogs(ctx context.Context, classID string) ([]dto.ClassDogResponse, error)
}

type classService struct {
	classes    repository.ClassRepository
	courses    repository.CourseRepository
	profiles   repository.ProfileRepository
	validator  *validator.Validate
	events     *EventPublisher
	dashboards DashboardInvalidator
	logger     zerolog.Logger
}

// NewClassService constructs a ClassService instance. A nil invalidator skips
// the dashboard cache drop after an enrollment.
func NewClassService(classRepo repository.ClassRepository, courseRepo repository.CourseRepository, profileRepo repository.ProfileRepository, validate *validator.Validate, events *EventPublisher, dashboards DashboardInvalidator, logger zerolog.Logger) ClassService {
	return &classService{
		classes:    classRepo,
		courses:    courseRepo,
		profiles:   profileRepo,
		validator:  validate,
		events:     events,
		dashboards: dashboards,
		logger:     logger.With().Str("component", "class_service").Logger(),
	}
}

func (s *classService) ListByCourse(ctx context.Context, courseID string, includeInvite bool) ([]dto.ClassResponse, error) {
	classes, err := s.classes.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return dto.NewClassResponseSlice(classes, includeInvite), nil
}

func (s *classService) Get(ctx context.Context, id string, includeInvite bool) (dto.ClassResponse, error) {
	class, err := s.classes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassResponse{}, ErrClassNotFound
		}
		return dto.ClassResponse{}, err
	}

	return dto.NewClassResponse(class, includeInvite), nil
}

func (s *classService) Create(ctx context.Context, payload dto.ClassCreateRequest) (dto.ClassResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ClassResponse{}, err
	}

	if _, err := s.courses.GetByID(ctx, payload.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassResponse{}, ErrCourseNotFound
		}
		return dto.ClassResponse{}, err
	}

	code, err := generateInviteCode()
	if err != nil {
		return dto.ClassResponse{}, err
	}

	class := models.Class{
		CourseID:    payload.CourseID,
		EditionName: payload.EditionName,
		InviteCode:  &code,
		StartDate:   payload.StartDate,
		EndDate:     payload.EndDate,
	}

	if err := s.classes.Create(ctx, &class); err != nil {
		return dto.ClassResponse{}, err
	}

	s.logger.Info().Str("class_id", class.ID).Str("course_id", class.CourseID).Msg("class created")

	return dto.NewClassResponse(class, true), nil
}

func (s *classService) Update(ctx context.Context, id string, payload dto.ClassUpdateRequest) (dto.ClassResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ClassResponse{}, err
	}

	class, err := s.classes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassResponse{}, ErrClassNotFound
		}
		return dto.ClassResponse{}, err
	}

	if payload.EditionName != nil {
		class.EditionName = *payload.EditionName
	}
	if payload.StartDate != nil {
		class.StartDate = payload.StartDate
	}
	if payload.EndDate != nil {
		class.EndDate = payload.EndDate
	}

	if err := s.classes.Update(ctx, &class); err != nil {
		return dto.ClassResponse{}, err
	}

	return dto.NewClassResponse(class, true), nil
}

func (s *classService) Delete(ctx context.Context, id string) error {
	if _, err := s.classes.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		return err
	}

	return s.classes.Delete(ctx, id)
}

// Join redeems an invite code for the calling student.
func (s *classService) Join(ctx context.Context, profileID string, payload dto.JoinClassRequest) (dto.ClassResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ClassResponse{}, err
	}

	class, err := s.classes.GetByInviteCode(ctx, payload.InviteCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassResponse{}, ErrInviteCodeInvalid
		}
		return dto.ClassResponse{}, err
	}

	enrolled, err := s.classes.IsEnrolled(ctx, class.ID, profileID)
	if err != nil {
		return dto.ClassResponse{}, err
	}
	if enrolled {
		return dto.ClassResponse{}, ErrAlreadyEnrolled
	}

	enrollment := models.ClassStudent{ClassID: class.ID, ProfileID: profileID}
	if err := s.classes.Enroll(ctx, &enrollment); err != nil {
		return dto.ClassResponse{}, err
	}

	s.logger.Info().Str("class_id", class.ID).Str("profile_id", profileID).Msg("student enrolled")

	s.events.Publish(SubjectStudentEnrolled, map[string]string{
		"class_id":   class.ID,
		"profile_id": profileID,
	})

	if s.dashboards != nil {
		s.dashboards.Invalidate(ctx, profileID)
	}

	return dto.NewClassResponse(class, false), nil
}

func (s *classService) ListStudents(ctx context.Context, classID string) ([]dto.EnrollmentResponse, error) {
	if _, err := s.classes.GetByID(ctx, classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	enrollments, err := s.classes.ListStudents(ctx, classID)
	if err != nil {
		return nil, err
	}

	return dto.NewEnrollmentResponseSlice(enrollments), nil
}

// AssignDog records which of the student's dogs attends the class. The dog
// must belong to the calling student and the student must be enrolled.
func (s *classService) AssignDog(ctx context.Context, classID, profileID string, payload dto.AssignDogRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	enrolled, err := s.classes.IsEnrolled(ctx, classID, profileID)
	if err != nil {
		return err
	}
	if !enrolled {
		return ErrNotEnrolled
	}

	dog, err := s.profiles.GetDog(ctx, payload.DogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDogNotFound
		}
		return err
	}

	if dog.ProfileID != profileID {
		return ErrDogNotFound
	}

	assignment := models.ClassDog{ClassID: classID, ProfileID: profileID, DogID: dog.ID}
	return s.classes.AssignDog(ctx, &assignment)
}

func (s *classService) ListDogs(ctx context.Context, classID string) ([]dto.ClassDogResponse, error) {
	assignments, err := s.classes.ListDogs(ctx, classID)
	if err != nil {
		return nil, err
	}

	return dto.NewClassDogResponseSlice(assignments), nil
}

const inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func generateInviteCode() (string, error) {
	code := make([]byte, 8)
	for i := range code {
		index, err := rand.Int(rand.Reader, big.NewInt(int64(len(inviteCodeAlphabet))))
		if err != nil {
			return "", fmt.Errorf("generate invite code: %w", err)
		}
		code[i] = inviteCodeAlphabet[index.Int64()]
	}

	return string(code), nil
}
