package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course groups classes, materials, quizzes and case studies under one curriculum.
type Course struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Tutors      []Profile  `gorm:"many2many:course_tutors" json:"tutors,omitempty"`
	Classes     []Class    `gorm:"constraint:OnDelete:CASCADE" json:"classes,omitempty"`
	Materials   []Material `gorm:"constraint:OnDelete:CASCADE" json:"materials,omitempty"`
}

func (c *Course) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// MaterialCategory orders course materials into named sections.
type MaterialCategory struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID    string    `gorm:"type:uuid;not null;index" json:"course_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	SortOrder   int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c *MaterialCategory) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Material types supported by the course library.
const (
	MaterialTypeFile = "file"
	MaterialTypeLink = "link"
)

// Material is a document or external link shared with a course.
type Material struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID     string    `gorm:"type:uuid;not null;index" json:"course_id"`
	CategoryID   *string   `gorm:"type:uuid;index" json:"category_id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	MaterialType string    `gorm:"size:16;not null;default:file" json:"material_type"`
	FilePath     string    `gorm:"size:512" json:"file_path"`
	FileType     string    `gorm:"size:128" json:"file_type"`
	LinkURL      string    `gorm:"size:512" json:"link_url"`
	CreatedAt    time.Time `json:"created_at"`
}

func (m *Material) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
