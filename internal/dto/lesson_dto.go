package dto

import (
	"time"

	"github.com/noah-isme/cinofilo-api/internal/models"
)

// LessonCreateRequest schedules a lesson within a class edition.
type LessonCreateRequest struct {
	ClassID      string    `json:"class_id" validate:"required,uuid4"`
	Title        string    `json:"title" validate:"required,min=2"`
	Description  string    `json:"description"`
	LessonDate   time.Time `json:"lesson_date" validate:"required"`
	StartTime    string    `json:"start_time" validate:"omitempty,len=5"`
	EndTime      string    `json:"end_time" validate:"omitempty,len=5"`
	Location     string    `json:"location"`
	RequiredPrep string    `json:"required_prep"`
}

// LessonUpdateRequest patches a scheduled lesson.
type LessonUpdateRequest struct {
	Title        *string    `json:"title" validate:"omitempty,min=2"`
	Description  *string    `json:"description"`
	LessonDate   *time.Time `json:"lesson_date"`
	StartTime    *string    `json:"start_time" validate:"omitempty,len=5"`
	EndTime      *string    `json:"end_time" validate:"omitempty,len=5"`
	Location     *string    `json:"location"`
	RequiredPrep *string    `json:"required_prep"`
}

// LessonResponse is the public view of a lesson.
type LessonResponse struct {
	ID           string    `json:"id"`
	ClassID      string    `json:"class_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	LessonDate   time.Time `json:"lesson_date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	Location     string    `json:"location"`
	RequiredPrep string    `json:"required_prep"`
}

// NewLessonResponse converts a Lesson model into a DTO.
func NewLessonResponse(model models.Lesson) LessonResponse {
	return LessonResponse{
		ID:           model.ID,
		ClassID:      model.ClassID,
		Title:        model.Title,
		Description:  model.Description,
		LessonDate:   model.LessonDate,
		StartTime:    model.StartTime,
		EndTime:      model.EndTime,
		Location:     model.Location,
		RequiredPrep: model.RequiredPrep,
	}
}

// NewLessonResponseSlice converts a slice of Lesson models.
func NewLessonResponseSlice(lessons []models.Lesson) []LessonResponse {
	out := make([]LessonResponse, 0, len(lessons))
	for _, lesson := range lessons {
		out = append(out, NewLessonResponse(lesson))
	}
	return out
}
