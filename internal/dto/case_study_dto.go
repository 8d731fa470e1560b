package dto

import (
	"time"

	"github.com/noah-isme/cinofilo-api/internal/models"
)

// CaseStudyCreateRequest creates a case study on a course.
type CaseStudyCreateRequest struct {
	CourseID    string `json:"course_id" validate:"required,uuid4"`
	Title       string `json:"title" validate:"required,min=2"`
	Scenario    string `json:"scenario" validate:"required,min=2"`
	ModelAnswer string `json:"model_answer" validate:"required,min=2"`
	Hints       string `json:"hints"`
}

// CaseStudyUpdateRequest patches a case study.
type CaseStudyUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=2"`
	Scenario    *string `json:"scenario" validate:"omitempty,min=2"`
	ModelAnswer *string `json:"model_answer" validate:"omitempty,min=2"`
	Hints       *string `json:"hints"`
}

// CaseStudyResponse is the student view of a case study: the model answer
// and hints are never present here, they only feed the grading prompt.
type CaseStudyResponse struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"course_id"`
	Title     string    `json:"title"`
	Scenario  string    `json:"scenario"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCaseStudyResponse converts a CaseStudy model into its student view.
func NewCaseStudyResponse(model models.CaseStudy, completed bool) CaseStudyResponse {
	return CaseStudyResponse{
		ID:        model.ID,
		CourseID:  model.CourseID,
		Title:     model.Title,
		Scenario:  model.Scenario,
		Completed: completed,
		CreatedAt: model.CreatedAt,
	}
}

// CaseStudyTutorResponse is the staff view including hidden fields.
type CaseStudyTutorResponse struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"course_id"`
	Title       string    `json:"title"`
	Scenario    string    `json:"scenario"`
	ModelAnswer string    `json:"model_answer"`
	Hints       string    `json:"hints,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewCaseStudyTutorResponse converts a CaseStudy model into its staff view.
func NewCaseStudyTutorResponse(model models.CaseStudy) CaseStudyTutorResponse {
	return CaseStudyTutorResponse{
		ID:          model.ID,
		CourseID:    model.CourseID,
		Title:       model.Title,
		Scenario:    model.Scenario,
		ModelAnswer: model.ModelAnswer,
		Hints:       model.Hints,
		CreatedAt:   model.CreatedAt,
	}
}

// NewCaseStudyTutorResponseSlice converts a slice of CaseStudy models.
func NewCaseStudyTutorResponseSlice(caseStudies []models.CaseStudy) []CaseStudyTutorResponse {
	out := make([]CaseStudyTutorResponse, 0, len(caseStudies))
	for _, caseStudy := range caseStudies {
		out = append(out, NewCaseStudyTutorResponse(caseStudy))
	}
	return out
}

// AttemptResponse is one row of the attempt ledger.
type AttemptResponse struct {
	ID            string    `json:"id"`
	CaseStudyID   string    `json:"case_study_id"`
	ProfileID     string    `json:"profile_id"`
	StudentAnswer string    `json:"student_answer"`
	IsCorrect     bool      `json:"is_correct"`
	AIFeedback    string    `json:"ai_feedback"`
	AttemptNumber int       `json:"attempt_number"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewAttemptResponse converts a CaseStudyAttempt model into a DTO.
func NewAttemptResponse(model models.CaseStudyAttempt) AttemptResponse {
	return AttemptResponse{
		ID:            model.ID,
		CaseStudyID:   model.CaseStudyID,
		ProfileID:     model.ProfileID,
		StudentAnswer: model.StudentAnswer,
		IsCorrect:     model.IsCorrect,
		AIFeedback:    model.AIFeedback,
		AttemptNumber: model.AttemptNumber,
		CreatedAt:     model.CreatedAt,
	}
}

// NewAttemptResponseSlice converts a slice of CaseStudyAttempt models.
func NewAttemptResponseSlice(attempts []models.CaseStudyAttempt) []AttemptResponse {
	out := make([]AttemptResponse, 0, len(attempts))
	for _, attempt := range attempts {
		out = append(out, NewAttemptResponse(attempt))
	}
	return out
}

// EvaluateRequest is the submission payload for the evaluation endpoint.
type EvaluateRequest struct {
	CaseStudyID   string `json:"caseStudyId"`
	StudentAnswer string `json:"studentAnswer"`
}

// EvaluateResponse is the fixed wire contract of the evaluation endpoint.
type EvaluateResponse struct {
	Success       bool   `json:"success"`
	IsCorrect     bool   `json:"isCorrect"`
	Feedback      string `json:"feedback"`
	AttemptNumber int    `json:"attemptNumber"`
	AttemptID     string `json:"attemptId"`
}
