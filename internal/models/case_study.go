package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CaseStudy is a scenario-based exercise graded by the AI oracle. The model
// answer and hints are never serialized on the student read path; they feed
// the grading prompt only.
type CaseStudy struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID    string    `gorm:"type:uuid;not null;index" json:"course_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Scenario    string    `gorm:"type:text;not null" json:"scenario"`
	ModelAnswer string    `gorm:"type:text;not null" json:"model_answer,omitempty"`
	Hints       string    `gorm:"type:text" json:"hints,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *CaseStudy) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CaseStudyAttempt is one graded submission by a student against a case
// study. Rows are append-only; they are removed only by cascade when the
// parent case study is deleted.
type CaseStudyAttempt struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	CaseStudyID   string    `gorm:"type:uuid;not null;index:idx_attempt_pair" json:"case_study_id"`
	ProfileID     string    `gorm:"type:uuid;not null;index:idx_attempt_pair" json:"profile_id"`
	StudentAnswer string    `gorm:"type:text;not null" json:"student_answer"`
	IsCorrect     bool      `gorm:"not null" json:"is_correct"`
	AIFeedback    string    `gorm:"type:text;not null" json:"ai_feedback"`
	AttemptNumber int       `gorm:"not null" json:"attempt_number"`
	CreatedAt     time.Time `json:"created_at"`
	CaseStudy     CaseStudy `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (a *CaseStudyAttempt) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
