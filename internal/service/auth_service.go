package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/noah-isme/cinofilo-api/internal/dto"
	"github.com/noah-isme/cinofilo-api/internal/repository"
)

// ErrInvalidCredentials indicates the email/password pair does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrAccountDisabled indicates the account has been disabled by staff.
var ErrAccountDisabled = errors.New("account disabled")

// AuthService issues tokens and rotates passwords.
type AuthService interface {
	Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
	ChangePassword(ctx context.Context, profileID string, payload dto.ChangePasswordRequest) error
}

type authService struct {
	profiles  repository.ProfileRepository
	validator *validator.Validate
	secret    []byte
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(profileRepo repository.ProfileRepository, validate *validator.Validate, secret string, tokenTTL time.Duration, logger zerolog.Logger) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}

	return &authService{
		profiles:  profileRepo,
		validator: validate,
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	profile, err := s.profiles.GetByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if profile.IsDisabled {
		return dto.LoginResponse{}, ErrAccountDisabled
	}

	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(payload.Password)) != nil {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	issuedAt := s.now()
	claims := jwt.MapClaims{
		"sub":  profile.ID,
		"role": profile.Role,
		"iat":  issuedAt.Unix(),
		"exp":  issuedAt.Add(s.tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	s.logger.Info().Str("profile_id", profile.ID).Str("role", profile.Role).Msg("login succeeded")

	return dto.LoginResponse{
		Token:                  token,
		Profile:                dto.NewProfileResponse(profile),
		ChangePasswordRequired: profile.ChangePasswordRequired,
	}, nil
}

func (s *authService) ChangePassword(ctx context.Context, profileID string, payload dto.ChangePasswordRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(payload.CurrentPassword)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	profile.PasswordHash = string(hash)
	profile.ChangePasswordRequired = false

	if err := s.profiles.Update(ctx, &profile); err != nil {
		return err
	}

	s.logger.Info().Str("profile_id", profile.ID).Msg("password rotated")

	return nil
}
