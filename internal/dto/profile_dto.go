package dto

import (
	"time"

	"github.com/noah-isme/cinofilo-api/internal/models"
)

// ProfileResponse is the public view of a user profile.
type ProfileResponse struct {
	ID                     string        `json:"id"`
	Email                  string        `json:"email"`
	FullName               string        `json:"full_name"`
	FirstName              string        `json:"first_name,omitempty"`
	LastName               string        `json:"last_name,omitempty"`
	Phone                  string        `json:"phone,omitempty"`
	City                   string        `json:"city,omitempty"`
	AvatarURL              string        `json:"avatar_url,omitempty"`
	Role                   string        `json:"role"`
	ChangePasswordRequired bool          `json:"change_password_required"`
	IsDisabled             bool          `json:"is_disabled"`
	CreatedAt              time.Time     `json:"created_at"`
	Dogs                   []DogResponse `json:"dogs,omitempty"`
}

// NewProfileResponse converts a Profile model into a DTO.
func NewProfileResponse(model models.Profile) ProfileResponse {
	dogs := make([]DogResponse, 0, len(model.Dogs))
	for _, dog := range model.Dogs {
		dogs = append(dogs, NewDogResponse(dog))
	}

	return ProfileResponse{
		ID:                     model.ID,
		Email:                  model.Email,
		FullName:               model.FullName,
		FirstName:              model.FirstName,
		LastName:               model.LastName,
		Phone:                  model.Phone,
		City:                   model.City,
		AvatarURL:              model.AvatarURL,
		Role:                   model.Role,
		ChangePasswordRequired: model.ChangePasswordRequired,
		IsDisabled:             model.IsDisabled,
		CreatedAt:              model.CreatedAt,
		Dogs:                   dogs,
	}
}

// NewProfileResponseSlice converts a slice of Profile models.
func NewProfileResponseSlice(profiles []models.Profile) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(profiles))
	for _, profile := range profiles {
		out = append(out, NewProfileResponse(profile))
	}
	return out
}

// StudentCreateRequest is used by tutors/admins to register a new student.
type StudentCreateRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required,min=1"`
	LastName  string `json:"last_name" validate:"required,min=1"`
}

// StudentCreateResponse returns the new account plus its one-time password.
type StudentCreateResponse struct {
	Profile      ProfileResponse `json:"profile"`
	TempPassword string          `json:"temp_password"`
}

// StudentStatusRequest toggles a student account.
type StudentStatusRequest struct {
	Disabled bool `json:"disabled"`
}

// ProfileUpdateRequest updates the caller's own profile fields.
type ProfileUpdateRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1"`
	Phone     *string `json:"phone"`
	City      *string `json:"city"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}

// DogCreateRequest registers a dog on a student profile.
type DogCreateRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Breed    string `json:"breed" validate:"required,min=1"`
	AgeYears int    `json:"age_years" validate:"required,gte=0,lte=30"`
	Sex      string `json:"sex" validate:"required,oneof=male female"`
}

// DogResponse is the public view of a registered dog.
type DogResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Breed    string `json:"breed"`
	AgeYears int    `json:"age_years"`
	Sex      string `json:"sex"`
}

// NewDogResponse converts a Dog model into a DTO.
func NewDogResponse(model models.Dog) DogResponse {
	return DogResponse{
		ID:       model.ID,
		Name:     model.Name,
		Breed:    model.Breed,
		AgeYears: model.AgeYears,
		Sex:      model.Sex,
	}
}
