package dto

import (
	"time"

	"github.com/noah-isme/cinofilo-api/internal/models"
)

// QuizCreateRequest creates a quiz on a course.
type QuizCreateRequest struct {
	CourseID    string `json:"course_id" validate:"required,uuid4"`
	Title       string `json:"title" validate:"required,min=2"`
	Question    string `json:"question" validate:"required,min=2"`
	ModelAnswer string `json:"model_answer"`
}

// QuizUpdateRequest patches a quiz.
type QuizUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=2"`
	Question    *string `json:"question" validate:"omitempty,min=2"`
	ModelAnswer *string `json:"model_answer"`
}

// QuizAnswerRequest is a student's single answer to a quiz.
type QuizAnswerRequest struct {
	Answer string `json:"answer" validate:"required,min=1"`
}

// QuizFeedbackRequest is a tutor's feedback on a submission.
type QuizFeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required,min=1"`
}

// QuizResponse is the view of a quiz. The model answer is present only on
// the tutor path.
type QuizResponse struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"course_id"`
	Title       string    `json:"title"`
	Question    string    `json:"question"`
	ModelAnswer string    `json:"model_answer,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewQuizResponse converts a Quiz model into a DTO, stripping the model
// answer unless the caller is staff.
func NewQuizResponse(model models.Quiz, includeModelAnswer bool) QuizResponse {
	response := QuizResponse{
		ID:        model.ID,
		CourseID:  model.CourseID,
		Title:     model.Title,
		Question:  model.Question,
		CreatedAt: model.CreatedAt,
	}

	if includeModelAnswer {
		response.ModelAnswer = model.ModelAnswer
	}

	return response
}

// NewQuizResponseSlice converts a slice of Quiz models.
func NewQuizResponseSlice(quizzes []models.Quiz, includeModelAnswer bool) []QuizResponse {
	out := make([]QuizResponse, 0, len(quizzes))
	for _, quiz := range quizzes {
		out = append(out, NewQuizResponse(quiz, includeModelAnswer))
	}
	return out
}

// QuizSubmissionResponse is the view of a quiz submission.
type QuizSubmissionResponse struct {
	ID            string    `json:"id"`
	QuizID        string    `json:"quiz_id"`
	ProfileID     string    `json:"profile_id"`
	StudentName   string    `json:"student_name,omitempty"`
	Answer        string    `json:"answer"`
	TutorFeedback string    `json:"tutor_feedback,omitempty"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// NewQuizSubmissionResponse converts a QuizSubmission model into a DTO.
func NewQuizSubmissionResponse(model models.QuizSubmission) QuizSubmissionResponse {
	return QuizSubmissionResponse{
		ID:            model.ID,
		QuizID:        model.QuizID,
		ProfileID:     model.ProfileID,
		StudentName:   model.Profile.FullName,
		Answer:        model.Answer,
		TutorFeedback: model.TutorFeedback,
		SubmittedAt:   model.SubmittedAt,
	}
}

// NewQuizSubmissionResponseSlice converts a slice of QuizSubmission models.
func NewQuizSubmissionResponseSlice(submissions []models.QuizSubmission) []QuizSubmissionResponse {
	out := make([]QuizSubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		out = append(out, NewQuizSubmissionResponse(submission))
	}
	return out
}
