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

// ErrCategoryNotFound indicates a material category could not be found.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryService manages material categories and their ordering.
type CategoryService interface {
	ListByCourse(ctx context.Context, courseID string) ([]dto.CategoryResponse, error)
	Create(ctx context.Context, payload dto.CategoryCreateRequest) (dto.CategoryResponse, error)
	Update(ctx context.Context, id string, payload dto.CategoryUpdateRequest) (dto.CategoryResponse, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, courseID string, payload dto.CategoryOrderRequest) ([]dto.CategoryResponse, error)
}

type categoryService struct {
	categories repository.CategoryRepository
	courses    repository.CourseRepository
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewCategoryService constructs a CategoryService instance.
func NewCategoryService(categoryRepo repository.CategoryRepository, courseRepo repository.CourseRepository, validate *validator.Validate, logger zerolog.Logger) CategoryService {
	return &categoryService{
		categories: categoryRepo,
		courses:    courseRepo,
		validator:  validate,
		logger:     logger.With().Str("component", "category_service").Logger(),
	}
}

func (s *categoryService) ListByCourse(ctx context.Context, courseID string) ([]dto.CategoryResponse, error) {
	categories, err := s.categories.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return dto.NewCategoryResponseSlice(categories), nil
}

func (s *categoryService) Create(ctx context.Context, payload dto.CategoryCreateRequest) (dto.CategoryResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CategoryResponse{}, err
	}

	if _, err := s.courses.GetByID(ctx, payload.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CategoryResponse{}, ErrCourseNotFound
		}
		return dto.CategoryResponse{}, err
	}

	existing, err := s.categories.ListByCourse(ctx, payload.CourseID)
	if err != nil {
		return dto.CategoryResponse{}, err
	}

	category := models.MaterialCategory{
		CourseID:    payload.CourseID,
		Name:        payload.Name,
		Description: payload.Description,
		SortOrder:   len(existing),
	}

	if err := s.categories.Create(ctx, &category); err != nil {
		return dto.CategoryResponse{}, err
	}

	return dto.NewCategoryResponse(category), nil
}

func (s *categoryService) Update(ctx context.Context, id string, payload dto.CategoryUpdateRequest) (dto.CategoryResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CategoryResponse{}, err
	}

	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CategoryResponse{}, ErrCategoryNotFound
		}
		return dto.CategoryResponse{}, err
	}

	if payload.Name != nil {
		category.Name = *payload.Name
	}
	if payload.Description != nil {
		category.Description = *payload.Description
	}

	if err := s.categories.Update(ctx, &category); err != nil {
		return dto.CategoryResponse{}, err
	}

	return dto.NewCategoryResponse(category), nil
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	return s.categories.Delete(ctx, id)
}

// Reorder persists the full ordering in one transaction and returns the
// refreshed list.
func (s *categoryService) Reorder(ctx context.Context, courseID string, payload dto.CategoryOrderRequest) ([]dto.CategoryResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, err
	}

	if err := s.categories.Reorder(ctx, courseID, payload.OrderedIDs); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	s.logger.Info().Str("course_id", courseID).Int("categories", len(payload.OrderedIDs)).Msg("categories reordered")

	return s.ListByCourse(ctx, courseID)
}
