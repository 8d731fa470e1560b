package dto

import (
	"time"

	"github.com/noah-isme/cinofilo-api/internal/models"
)

// ClassCreateRequest creates a new edition of a course.
type ClassCreateRequest struct {
	CourseID    string     `json:"course_id" validate:"required,uuid4"`
	EditionName string     `json:"edition_name" validate:"required,min=2"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// ClassUpdateRequest patches a class edition.
type ClassUpdateRequest struct {
	EditionName *string    `json:"edition_name" validate:"omitempty,min=2"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// JoinClassRequest redeems an invite code for the calling student.
type JoinClassRequest struct {
	InviteCode string `json:"invite_code" validate:"required,min=4"`
}

// AssignDogRequest records which dog the student brings to a class.
type AssignDogRequest struct {
	DogID string `json:"dog_id" validate:"required,uuid4"`
}

// ClassResponse is the public view of a class edition.
type ClassResponse struct {
	ID          string           `json:"id"`
	CourseID    string           `json:"course_id"`
	CourseName  string           `json:"course_name,omitempty"`
	EditionName string           `json:"edition_name"`
	InviteCode  *string          `json:"invite_code,omitempty"`
	StartDate   *time.Time       `json:"start_date"`
	EndDate     *time.Time       `json:"end_date"`
	CreatedAt   time.Time        `json:"created_at"`
	Lessons     []LessonResponse `json:"lessons,omitempty"`
}

// NewClassResponse converts a Class model into a DTO. The invite code is
// included only when withInvite is set (tutor views).
func NewClassResponse(model models.Class, withInvite bool) ClassResponse {
	response := ClassResponse{
		ID:          model.ID,
		CourseID:    model.CourseID,
		CourseName:  model.Course.Name,
		EditionName: model.EditionName,
		StartDate:   model.StartDate,
		EndDate:     model.EndDate,
		CreatedAt:   model.CreatedAt,
		Lessons:     NewLessonResponseSlice(model.Lessons),
	}

	if withInvite {
		response.InviteCode = model.InviteCode
	}

	return response
}

// NewClassResponseSlice converts a slice of Class models.
func NewClassResponseSlice(classes []models.Class, withInvite bool) []ClassResponse {
	out := make([]ClassResponse, 0, len(classes))
	for _, class := range classes {
		out = append(out, NewClassResponse(class, withInvite))
	}
	return out
}

// EnrollmentResponse lists one enrolled student of a class.
type EnrollmentResponse struct {
	Profile    ProfileResponse `json:"profile"`
	EnrolledAt time.Time       `json:"enrolled_at"`
}

// NewEnrollmentResponseSlice converts class student links.
func NewEnrollmentResponseSlice(enrollments []models.ClassStudent) []EnrollmentResponse {
	out := make([]EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		out = append(out, EnrollmentResponse{
			Profile:    NewProfileResponse(enrollment.Profile),
			EnrolledAt: enrollment.EnrolledAt,
		})
	}
	return out
}

// ClassDogResponse lists a dog attending a class.
type ClassDogResponse struct {
	ProfileID string      `json:"profile_id"`
	Dog       DogResponse `json:"dog"`
}

// NewClassDogResponseSlice converts class dog assignments.
func NewClassDogResponseSlice(assignments []models.ClassDog) []ClassDogResponse {
	out := make([]ClassDogResponse, 0, len(assignments))
	for _, assignment := range assignments {
		out = append(out, ClassDogResponse{
			ProfileID: assignment.ProfileID,
			Dog:       NewDogResponse(assignment.Dog),
		})
	}
	return out
}
