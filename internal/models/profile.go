package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile represents a platform user: student, tutor or admin.
type Profile struct {
	ID                     string     `gorm:"type:uuid;primaryKey" json:"id"`
	Email                  string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FullName               string     `gorm:"size:255;not null" json:"full_name"`
	FirstName              string     `gorm:"size:128" json:"first_name"`
	LastName               string     `gorm:"size:128" json:"last_name"`
	Phone                  string     `gorm:"size:32" json:"phone"`
	City                   string     `gorm:"size:128" json:"city"`
	BirthDate              *time.Time `json:"birth_date"`
	AvatarURL              string     `gorm:"size:512" json:"avatar_url"`
	Role                   string     `gorm:"size:32;not null;default:student" json:"role"`
	PasswordHash           string     `gorm:"size:255" json:"-"`
	ChangePasswordRequired bool       `json:"change_password_required"`
	IsDisabled             bool       `json:"is_disabled"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
	Dogs                   []Dog      `gorm:"constraint:OnDelete:CASCADE" json:"dogs,omitempty"`
}

// BeforeCreate assigns a uuid primary key when none is provided.
func (p *Profile) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// IsStaff reports whether the profile may manage courses and students.
func (p Profile) IsStaff() bool {
	return IsStaff(p.Role)
}

// Dog is registered by a student and can be brought to class editions.
type Dog struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID string    `gorm:"type:uuid;not null;index" json:"profile_id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Breed     string    `gorm:"size:128;not null" json:"breed"`
	AgeYears  int       `gorm:"not null" json:"age_years"`
	Sex       string    `gorm:"size:16;not null" json:"sex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *Dog) BeforeCreate(*gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
