package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Class is a scheduled edition of a course that students join via invite code.
type Class struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID    string     `gorm:"type:uuid;not null;index" json:"course_id"`
	EditionName string     `gorm:"size:255;not null" json:"edition_name"`
	InviteCode  *string    `gorm:"size:32;uniqueIndex" json:"invite_code,omitempty"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Course      Course     `gorm:"constraint:OnDelete:CASCADE" json:"course,omitempty"`
	Lessons     []Lesson   `gorm:"constraint:OnDelete:CASCADE" json:"lessons,omitempty"`
}

func (c *Class) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// ClassStudent links an enrolled student to a class edition.
type ClassStudent struct {
	ClassID    string    `gorm:"type:uuid;primaryKey" json:"class_id"`
	ProfileID  string    `gorm:"type:uuid;primaryKey" json:"profile_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
	Profile    Profile   `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

// ClassDog records which of a student's dogs attends a class edition.
type ClassDog struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	ClassID   string    `gorm:"type:uuid;not null;index" json:"class_id"`
	ProfileID string    `gorm:"type:uuid;not null;index" json:"profile_id"`
	DogID     string    `gorm:"type:uuid;not null" json:"dog_id"`
	CreatedAt time.Time `json:"created_at"`
	Dog       Dog       `gorm:"constraint:OnDelete:CASCADE" json:"dog,omitempty"`
}

func (c *ClassDog) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Lesson is a single dated session within a class edition.
type Lesson struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	ClassID      string    `gorm:"type:uuid;not null;index" json:"class_id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	LessonDate   time.Time `gorm:"not null" json:"lesson_date"`
	StartTime    string    `gorm:"size:8" json:"start_time"`
	EndTime      string    `gorm:"size:8" json:"end_time"`
	Location     string    `gorm:"size:255" json:"location"`
	RequiredPrep string    `gorm:"type:text" json:"required_prep"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (l *Lesson) BeforeCreate(*gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// IsUpcoming reports whether the lesson is scheduled after the reference time.
func (l Lesson) IsUpcoming(reference time.Time) bool {
	return l.LessonDate.After(reference)
}
