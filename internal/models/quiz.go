package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Quiz is an open question attached to a course. The model answer is only
// visible to tutors reviewing submissions.
type Quiz struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID    string    `gorm:"type:uuid;not null;index" json:"course_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Question    string    `gorm:"type:text;not null" json:"question"`
	ModelAnswer string    `gorm:"type:text" json:"model_answer,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (q *Quiz) BeforeCreate(*gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// QuizSubmission holds a student's single answer to a quiz.
type QuizSubmission struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID        string    `gorm:"type:uuid;not null;index:idx_quiz_profile,unique" json:"quiz_id"`
	ProfileID     string    `gorm:"type:uuid;not null;index:idx_quiz_profile,unique" json:"profile_id"`
	Answer        string    `gorm:"type:text;not null" json:"answer"`
	TutorFeedback string    `gorm:"type:text" json:"tutor_feedback"`
	SubmittedAt   time.Time `json:"submitted_at"`
	Profile       Profile   `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

func (s *QuizSubmission) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.SubmittedAt.IsZero() {
		s.SubmittedAt = time.Now().UTC()
	}
	return nil
}
