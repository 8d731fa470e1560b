package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/cinofilo-api/internal/dto"
	"github.com/noah-isme/cinofilo-api/internal/models"
	"github.com/noah-isme/cinofilo-api/internal/repository"
)

// ErrMaterialNotFound indicates a material could not be found.
var ErrMaterialNotFound = errors.New("material not found")

// ErrMaterialFileRequired indicates a file material was posted without a file.
var ErrMaterialFileRequired = errors.New("material file is required")

// ErrMaterialLinkRequired indicates a link material was posted without a URL.
var ErrMaterialLinkRequired = errors.New("material link is required")

// FileUploader abstracts uploading binary data and returning a URL.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// MaterialService manages course materials.
type MaterialService interface {
	List(ctx context.Context, filter repository.MaterialFilter) ([]dto.MaterialResponse, error)
	Create(ctx context.Context, payload dto.MaterialCreateRequest, file *multipart.FileHeader) (dto.MaterialResponse, error)
	Update(ctx context.Context, id string, payload dto.MaterialUpdateRequest) (dto.MaterialResponse, error)
	Delete(ctx context.Context, id string) error
}

type materialService struct {
	materials  repository.MaterialRepository
	courses    repository.CourseRepository
	categories repository.CategoryRepository
	validator  *validator.Validate
	uploader   FileUploader
	sanitizer  *bluemonday.Policy
	logger     zerolog.Logger
}

// NewMaterialService constructs a MaterialService instance.
func NewMaterialService(materialRepo repository.MaterialRepository, courseRepo repository.CourseRepository, categoryRepo repository.CategoryRepository, validate *validator.Validate, uploader FileUploader, logger zerolog.Logger) MaterialService {
	return &materialService{
		materials:  materialRepo,
		courses:    courseRepo,
		categories: categoryRepo,
		validator:  validate,
		uploader:   uploader,
		sanitizer:  bluemonday.StrictPolicy(),
		logger:     logger.With().Str("component", "material_service").Logger(),
	}
}

func (s *materialService) List(ctx context.Context, filter repository.MaterialFilter) ([]dto.MaterialResponse, error) {
	materials, err := s.materials.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewMaterialResponseSlice(materials), nil
}

func (s *materialService) Create(ctx context.Context, payload dto.MaterialCreateRequest, file *multipart.FileHeader) (dto.MaterialResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MaterialResponse{}, err
	}

	if _, err := s.courses.GetByID(ctx, payload.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MaterialResponse{}, ErrCourseNotFound
		}
		return dto.MaterialResponse{}, err
	}

	if payload.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *payload.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.MaterialResponse{}, ErrCategoryNotFound
			}
			return dto.MaterialResponse{}, err
		}
	}

	material := models.Material{
		CourseID:     payload.CourseID,
		CategoryID:   payload.CategoryID,
		Title:        payload.Title,
		Description:  s.sanitizer.Sanitize(payload.Description),
		MaterialType: payload.MaterialType,
		LinkURL:      payload.LinkURL,
	}

	switch payload.MaterialType {
	case models.MaterialTypeLink:
		if payload.LinkURL == "" {
			return dto.MaterialResponse{}, ErrMaterialLinkRequired
		}
	case models.MaterialTypeFile:
		if file == nil {
			return dto.MaterialResponse{}, ErrMaterialFileRequired
		}

		fileType, err := validateMaterialFile(file)
		if err != nil {
			return dto.MaterialResponse{}, err
		}

		reader, err := file.Open()
		if err != nil {
			return dto.MaterialResponse{}, fmt.Errorf("failed to open file: %w", err)
		}
		defer reader.Close()

		uploadURL, err := s.uploader.Upload(ctx, file.Filename, reader)
		if err != nil {
			return dto.MaterialResponse{}, fmt.Errorf("failed to upload file: %w", err)
		}

		material.FilePath = uploadURL
		material.FileType = fileType
	}

	if err := s.materials.Create(ctx, &material); err != nil {
		return dto.MaterialResponse{}, err
	}

	s.logger.Info().Str("material_id", material.ID).Str("course_id", material.CourseID).Msg("material created")

	return dto.NewMaterialResponse(material), nil
}

func (s *materialService) Update(ctx context.Context, id string, payload dto.MaterialUpdateRequest) (dto.MaterialResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MaterialResponse{}, err
	}

	material, err := s.materials.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MaterialResponse{}, ErrMaterialNotFound
		}
		return dto.MaterialResponse{}, err
	}

	if payload.Title != nil {
		material.Title = *payload.Title
	}
	if payload.Description != nil {
		material.Description = s.sanitizer.Sanitize(*payload.Description)
	}
	if payload.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *payload.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.MaterialResponse{}, ErrCategoryNotFound
			}
			return dto.MaterialResponse{}, err
		}
		material.CategoryID = payload.CategoryID
	}

	if err := s.materials.Update(ctx, &material); err != nil {
		return dto.MaterialResponse{}, err
	}

	return dto.NewMaterialResponse(material), nil
}

func (s *materialService) Delete(ctx context.Context, id string) error {
	if _, err := s.materials.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMaterialNotFound
		}
		return err
	}

	return s.materials.Delete(ctx, id)
}

func validateMaterialFile(file *multipart.FileHeader) (string, error) {
	reader, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	mime, err := mimetype.DetectReader(reader)
	if err != nil {
		return "", fmt.Errorf("failed to detect file type: %w", err)
	}

	allowed := []string{"application/pdf", "image/jpeg", "image/png", "video/mp4", "text/plain"}
	for _, a := range allowed {
		if mime.Is(a) {
			return mime.String(), nil
		}
	}

	return "", fmt.Errorf("unsupported file type: %s", mime.String())
}
