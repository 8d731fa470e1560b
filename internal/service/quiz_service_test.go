package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/cinofilo-api/internal/dto"
	"github.com/noah-isme/cinofilo-api/internal/models"
	"github.com/noah-isme/cinofilo-api/internal/repository"
)

func setupQuizService(t *testing.T, name string) (QuizService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Role{}, &models.Profile{}, &models.Course{},
		&models.Quiz{}, &models.QuizSubmission{},
	))

	service := NewQuizService(
		repository.NewQuizRepository(db),
		repository.NewCourseRepository(db),
		validator.New(),
		zerolog.Nop(),
	)

	return service, db
}

func TestQuizSingleSubmissionPerStudent(t *testing.T) {
	service, db := setupQuizService(t, "quiz_submit_test")

	course := models.Course{Name: "Comunicazione canina"}
	require.NoError(t, db.Create(&course).Error)

	quiz, err := service.Create(context.Background(), dto.QuizCreateRequest{
		CourseID:    course.ID,
		Title:       "Segnali calmanti",
		Question:    "Elenca tre segnali calmanti.",
		ModelAnswer: "Sbadiglio, leccarsi il naso, girare la testa.",
	})
	require.NoError(t, err)

	profileID := "12121212-3434-4565-8787-909090909090"

	submission, err := service.Submit(context.Background(), quiz.ID, profileID, dto.QuizAnswerRequest{
		Answer: "Sbadiglio, girare la testa, annusare il terreno.",
	})
	require.NoError(t, err)
	require.Equal(t, quiz.ID, submission.QuizID)

	_, err = service.Submit(context.Background(), quiz.ID, profileID, dto.QuizAnswerRequest{Answer: "Seconda risposta"})
	require.ErrorIs(t, err, ErrAlreadySubmitted)

	// A different student still gets their own slot.
	_, err = service.Submit(context.Background(), quiz.ID, "21212121-4343-4656-8878-090909090909", dto.QuizAnswerRequest{Answer: "Altra risposta"})
	require.NoError(t, err)

	submissions, err := service.ListSubmissions(context.Background(), quiz.ID)
	require.NoError(t, err)
	require.Len(t, submissions, 2)
}

func TestQuizModelAnswerHiddenFromStudents(t *testing.T) {
	service, db := setupQuizService(t, "quiz_hidden_test")

	course := models.Course{Name: "Gestione del guinzaglio"}
	require.NoError(t, db.Create(&course).Error)

	created, err := service.Create(context.Background(), dto.QuizCreateRequest{
		CourseID:    course.ID,
		Title:       "Tensione",
		Question:    "Perché il cane tira?",
		ModelAnswer: "Il guinzaglio teso invita all'opposizione.",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ModelAnswer)

	studentView, err := service.Get(context.Background(), created.ID, false)
	require.NoError(t, err)
	require.Empty(t, studentView.ModelAnswer)

	tutorView, err := service.Get(context.Background(), created.ID, true)
	require.NoError(t, err)
	require.Equal(t, "Il guinzaglio teso invita all'opposizione.", tutorView.ModelAnswer)
}

func TestQuizFeedbackIsSanitized(t *testing.T) {
	service, db := setupQuizService(t, "quiz_feedback_test")

	course := models.Course{Name: "Socializzazione"}
	require.NoError(t, db.Create(&course).Error)

	quiz, err := service.Create(context.Background(), dto.QuizCreateRequest{
		CourseID: course.ID,
		Title:    "Periodo sensibile",
		Question: "Quando termina il periodo sensibile?",
	})
	require.NoError(t, err)

	submission, err := service.Submit(context.Background(), quiz.ID, "34343434-5656-4787-8989-010101010101", dto.QuizAnswerRequest{
		Answer: "Verso le 12-14 settimane.",
	})
	require.NoError(t, err)

	updated, err := service.LeaveFeedback(context.Background(), submission.ID, dto.QuizFeedbackRequest{
		Feedback: `Ottimo <script>alert("x")</script>lavoro`,
	})
	require.NoError(t, err)
	require.Equal(t, "Ottimo lavoro", updated.TutorFeedback)
	require.NotContains(t, updated.TutorFeedback, "<script>")
}
