package dto

import (
	"time"

	"github.com/noah-isme/cinofilo-api/internal/models"
)

// MaterialCreateRequest describes the multipart payload for a material
// upload, or a link-only material when no file is attached.
type MaterialCreateRequest struct {
	CourseID     string  `form:"course_id" validate:"required,uuid4"`
	CategoryID   *string `form:"category_id" validate:"omitempty,uuid4"`
	Title        string  `form:"title" validate:"required,min=2"`
	Description  string  `form:"description"`
	MaterialType string  `form:"material_type" validate:"required,oneof=file link"`
	LinkURL      string  `form:"link_url" validate:"omitempty,url"`
}

// MaterialUpdateRequest patches material metadata.
type MaterialUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=2"`
	Description *string `json:"description"`
	CategoryID  *string `json:"category_id" validate:"omitempty,uuid4"`
}

// MaterialResponse is the public view of a course material.
type MaterialResponse struct {
	ID           string    `json:"id"`
	CourseID     string    `json:"course_id"`
	CategoryID   *string   `json:"category_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	MaterialType string    `json:"material_type"`
	FilePath     string    `json:"file_path,omitempty"`
	FileType     string    `json:"file_type,omitempty"`
	LinkURL      string    `json:"link_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewMaterialResponse converts a Material model into a DTO.
func NewMaterialResponse(model models.Material) MaterialResponse {
	return MaterialResponse{
		ID:           model.ID,
		CourseID:     model.CourseID,
		CategoryID:   model.CategoryID,
		Title:        model.Title,
		Description:  model.Description,
		MaterialType: model.MaterialType,
		FilePath:     model.FilePath,
		FileType:     model.FileType,
		LinkURL:      model.LinkURL,
		CreatedAt:    model.CreatedAt,
	}
}

// NewMaterialResponseSlice converts a slice of Material models.
func NewMaterialResponseSlice(materials []models.Material) []MaterialResponse {
	out := make([]MaterialResponse, 0, len(materials))
	for _, material := range materials {
		out = append(out, NewMaterialResponse(material))
	}
	return out
}

// CategoryCreateRequest creates a material category.
type CategoryCreateRequest struct {
	CourseID    string `json:"course_id" validate:"required,uuid4"`
	Name        string `json:"name" validate:"required,min=1"`
	Description string `json:"description"`
}

// CategoryUpdateRequest patches a category.
type CategoryUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
}

// CategoryOrderRequest carries the full ordering for a course's categories.
type CategoryOrderRequest struct {
	OrderedIDs []string `json:"ordered_ids" validate:"required,min=1,dive,uuid4"`
}

// CategoryResponse is the public view of a material category.
type CategoryResponse struct {
	ID          string `json:"id"`
	CourseID    string `json:"course_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

// NewCategoryResponse converts a MaterialCategory model into a DTO.
func NewCategoryResponse(model models.MaterialCategory) CategoryResponse {
	return CategoryResponse{
		ID:          model.ID,
		CourseID:    model.CourseID,
		Name:        model.Name,
		Description: model.Description,
		SortOrder:   model.SortOrder,
	}
}

// NewCategoryResponseSlice converts a slice of MaterialCategory models.
func NewCategoryResponseSlice(categories []models.MaterialCategory) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, NewCategoryResponse(category))
	}
	return out
}
