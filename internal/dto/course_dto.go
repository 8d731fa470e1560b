package dto

import (
	"time"

	"github.com/noah-isme/cinofilo-api/internal/models"
)

// CourseCreateRequest creates a new course.
type CourseCreateRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description"`
}

// CourseUpdateRequest patches course fields.
type CourseUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2"`
	Description *string `json:"description"`
}

// CourseTutorRequest assigns or removes a tutor.
type CourseTutorRequest struct {
	TutorID string `json:"tutor_id" validate:"required,uuid4"`
}

// CourseResponse is the public view of a course.
type CourseResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	CreatedAt   time.Time         `json:"created_at"`
	Tutors      []ProfileResponse `json:"tutors,omitempty"`
}

// NewCourseResponse converts a Course model into a DTO.
func NewCourseResponse(model models.Course) CourseResponse {
	return CourseResponse{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
		Tutors:      NewProfileResponseSlice(model.Tutors),
	}
}

// NewCourseResponseSlice converts a slice of Course models.
func NewCourseResponseSlice(courses []models.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		out = append(out, NewCourseResponse(course))
	}
	return out
}
