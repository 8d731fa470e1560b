package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/noah-isme/cinofilo-api/internal/dto"
	"github.com/noah-isme/cinofilo-api/internal/models"
	"github.com/noah-isme/cinofilo-api/internal/repository"
)

// ErrProfileNotFound indicates the requested profile does not exist.
var ErrProfileNotFound = errors.New("profile not found")

// ErrEmailTaken indicates another account already uses the email address.
var ErrEmailTaken = errors.New("email already registered")

// ErrDogNotFound indicates the requested dog does not exist.
var ErrDogNotFound = errors.New("dog not found")

// StudentService manages student accounts and their dogs.
type StudentService interface {
	List(ctx context.Context, search string) ([]dto.ProfileResponse, error)
	Get(ctx context.Context, id string) (dto.ProfileResponse, error)
	Create(ctx context.Context, payload dto.StudentCreateRequest) (dto.StudentCreateResponse, error)
	SetDisabled(ctx context.Context, id string, disabled bool) (dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, id string, payload dto.ProfileUpdateRequest) (dto.ProfileResponse, error)
	AddDog(ctx context.Context, profileID string, payload dto.DogCreateRequest) (dto.DogResponse, error)
	RemoveDog(ctx context.Context, profileID, dogID string) error
}

type studentService struct {
	profiles  repository.ProfileRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewStudentService constructs a StudentService instance.
func NewStudentService(profileRepo repository.ProfileRepository, validate *validator.Validate, logger zerolog.Logger) StudentService {
	return &studentService{
		profiles:  profileRepo,
		validator: validate,
		logger:    logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentService) List(ctx context.Context, search string) ([]dto.ProfileResponse, error) {
	profiles, err := s.profiles.List(ctx, repository.ProfileFilter{Role: models.RoleStudent, Search: search})
	if err != nil {
		return nil, err
	}

	return dto.NewProfileResponseSlice(profiles), nil
}

func (s *studentService) Get(ctx context.Context, id string) (dto.ProfileResponse, error) {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProfileResponse{}, ErrProfileNotFound
		}
		return dto.ProfileResponse{}, err
	}

	return dto.NewProfileResponse(profile), nil
}

func (s *studentService) Create(ctx context.Context, payload dto.StudentCreateRequest) (dto.StudentCreateResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentCreateResponse{}, err
	}

	if _, err := s.profiles.GetByEmail(ctx, payload.Email); err == nil {
		return dto.StudentCreateResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.StudentCreateResponse{}, err
	}

	tempPassword, err := generateTempPassword()
	if err != nil {
		return dto.StudentCreateResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return dto.StudentCreateResponse{}, err
	}

	profile := models.Profile{
		Email:                  payload.Email,
		FirstName:              payload.FirstName,
		LastName:               payload.LastName,
		FullName:               strings.TrimSpace(payload.FirstName + " " + payload.LastName),
		Role:                   models.RoleStudent,
		PasswordHash:           string(hash),
		ChangePasswordRequired: true,
	}

	if err := s.profiles.Create(ctx, &profile); err != nil {
		return dto.StudentCreateResponse{}, err
	}

	s.logger.Info().Str("profile_id", profile.ID).Msg("student created")

	return dto.StudentCreateResponse{
		Profile:      dto.NewProfileResponse(profile),
		TempPassword: tempPassword,
	}, nil
}

func (s *studentService) SetDisabled(ctx context.Context, id string, disabled bool) (dto.ProfileResponse, error) {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProfileResponse{}, ErrProfileNotFound
		}
		return dto.ProfileResponse{}, err
	}

	profile.IsDisabled = disabled
	if err := s.profiles.Update(ctx, &profile); err != nil {
		return dto.ProfileResponse{}, err
	}

	s.logger.Info().Str("profile_id", profile.ID).Bool("disabled", disabled).Msg("student status changed")

	return dto.NewProfileResponse(profile), nil
}

func (s *studentService) UpdateProfile(ctx context.Context, id string, payload dto.ProfileUpdateRequest) (dto.ProfileResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProfileResponse{}, err
	}

	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProfileResponse{}, ErrProfileNotFound
		}
		return dto.ProfileResponse{}, err
	}

	if payload.FirstName != nil {
		profile.FirstName = *payload.FirstName
	}
	if payload.LastName != nil {
		profile.LastName = *payload.LastName
	}
	if payload.FirstName != nil || payload.LastName != nil {
		profile.FullName = strings.TrimSpace(profile.FirstName + " " + profile.LastName)
	}
	if payload.Phone != nil {
		profile.Phone = *payload.Phone
	}
	if payload.City != nil {
		profile.City = *payload.City
	}
	if payload.AvatarURL != nil {
		profile.AvatarURL = *payload.AvatarURL
	}

	if err := s.profiles.Update(ctx, &profile); err != nil {
		return dto.ProfileResponse{}, err
	}

	return dto.NewProfileResponse(profile), nil
}

func (s *studentService) AddDog(ctx context.Context, profileID string, payload dto.DogCreateRequest) (dto.DogResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.DogResponse{}, err
	}

	if _, err := s.profiles.GetByID(ctx, profileID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DogResponse{}, ErrProfileNotFound
		}
		return dto.DogResponse{}, err
	}

	dog := models.Dog{
		ProfileID: profileID,
		Name:      payload.Name,
		Breed:     payload.Breed,
		AgeYears:  payload.AgeYears,
		Sex:       payload.Sex,
	}

	if err := s.profiles.CreateDog(ctx, &dog); err != nil {
		return dto.DogResponse{}, err
	}

	return dto.NewDogResponse(dog), nil
}

func (s *studentService) RemoveDog(ctx context.Context, profileID, dogID string) error {
	dog, err := s.profiles.GetDog(ctx, dogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDogNotFound
		}
		return err
	}

	if dog.ProfileID != profileID {
		return ErrDogNotFound
	}

	return s.profiles.DeleteDog(ctx, dogID)
}

const tempPasswordAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func generateTempPassword() (string, error) {
	suffix := make([]byte, 6)
	for i := range suffix {
		index, err := rand.Int(rand.Reader, big.NewInt(int64(len(tempPasswordAlphabet))))
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		suffix[i] = tempPasswordAlphabet[index.Int64()]
	}

	return "Student" + string(suffix) + "!", nil
}
