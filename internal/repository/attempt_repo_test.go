package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/cinofilo-api/internal/models"
)

func TestAttemptRepositoryRecordAssignsSequentialNumbers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAttemptRepository(db)

	course := models.Course{Name: "Educazione di base"}
	require.NoError(t, db.Create(&course).Error)
	caseStudy := models.CaseStudy{CourseID: course.ID, Title: "Guinzaglio", Scenario: "Il cane tira", ModelAnswer: "Lavorare sulla leadership"}
	require.NoError(t, db.Create(&caseStudy).Error)
	student := models.Profile{Email: "student@example.com", FullName: "Mario Rossi", Role: models.RoleStudent}
	require.NoError(t, db.Create(&student).Error)

	first := models.CaseStudyAttempt{
		CaseStudyID:   caseStudy.ID,
		ProfileID:     student.ID,
		StudentAnswer: "Il cane non si fida",
		IsCorrect:     false,
		AIFeedback:    "RIPROVA: pensa a chi controlla le risorse",
	}
	require.NoError(t, repo.Record(context.Background(), &first))
	require.Equal(t, 1, first.AttemptNumber)
	require.NotEmpty(t, first.ID)

	second := models.CaseStudyAttempt{
		CaseStudyID:   caseStudy.ID,
		ProfileID:     student.ID,
		StudentAnswer: "Serve lavorare sulla leadership",
		IsCorrect:     true,
		AIFeedback:    "CORRETTO: ben fatto",
	}
	require.NoError(t, repo.Record(context.Background(), &second))
	require.Equal(t, 2, second.AttemptNumber)

	// Another student starts their own sequence.
	other := models.Profile{Email: "other@example.com", FullName: "Luca Bianchi", Role: models.RoleStudent}
	require.NoError(t, db.Create(&other).Error)

	third := models.CaseStudyAttempt{
		CaseStudyID:   caseStudy.ID,
		ProfileID:     other.ID,
		StudentAnswer: "Boh",
		AIFeedback:    "RIPROVA: rileggi lo scenario",
	}
	require.NoError(t, repo.Record(context.Background(), &third))
	require.Equal(t, 1, third.AttemptNumber)

	count, err := repo.CountByPair(context.Background(), caseStudy.ID, student.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}

func TestAttemptRepositoryRecordConcurrentSameStudent(t *testing.T) {
	// A file-backed database here: two writers on the same rollback journal
	// conflict with retryable busy errors, which is also how serialization
	// failures surface to callers on postgres.
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", filepath.Join(t.TempDir(), "attempts.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Course{}, &models.Profile{}, &models.CaseStudy{}, &models.CaseStudyAttempt{}))

	repo := NewAttemptRepository(db)

	course := models.Course{Name: "Corso"}
	require.NoError(t, db.Create(&course).Error)
	caseStudy := models.CaseStudy{CourseID: course.ID, Title: "T", Scenario: "S", ModelAnswer: "M"}
	require.NoError(t, db.Create(&caseStudy).Error)
	student := models.Profile{Email: "s@example.com", FullName: "S", Role: models.RoleStudent}
	require.NoError(t, db.Create(&student).Error)

	const writers = 2

	var (
		mu      sync.Mutex
		numbers []int
		wg      sync.WaitGroup
		start   = make(chan struct{})
	)

	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start

			var lastErr error
			for retry := 0; retry < 20; retry++ {
				attempt := models.CaseStudyAttempt{
					CaseStudyID:   caseStudy.ID,
					ProfileID:     student.ID,
					StudentAnswer: fmt.Sprintf("Risposta %d", i),
					AIFeedback:    "RIPROVA",
				}
				if lastErr = repo.Record(context.Background(), &attempt); lastErr == nil {
					mu.Lock()
					numbers = append(numbers, attempt.AttemptNumber)
					mu.Unlock()
					return
				}
				time.Sleep(10 * time.Millisecond)
			}
			errs[i] = lastErr
		}(i)
	}

	close(start)
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "writer %d", i)
	}
	require.ElementsMatch(t, []int{1, 2}, numbers)

	count, err := repo.CountByPair(context.Background(), caseStudy.ID, student.ID)
	require.NoError(t, err)
	require.Equal(t, int64(writers), count)
}

func TestAttemptRepositoryHasCorrect(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAttemptRepository(db)

	course := models.Course{Name: "Corso"}
	require.NoError(t, db.Create(&course).Error)
	caseStudy := models.CaseStudy{CourseID: course.ID, Title: "T", Scenario: "S", ModelAnswer: "M"}
	require.NoError(t, db.Create(&caseStudy).Error)
	student := models.Profile{Email: "s@example.com", FullName: "S", Role: models.RoleStudent}
	require.NoError(t, db.Create(&student).Error)

	completed, err := repo.HasCorrect(context.Background(), caseStudy.ID, student.ID)
	require.NoError(t, err)
	require.False(t, completed)

	attempt := models.CaseStudyAttempt{CaseStudyID: caseStudy.ID, ProfileID: student.ID, StudentAnswer: "a", IsCorrect: true, AIFeedback: "CORRETTO"}
	require.NoError(t, repo.Record(context.Background(), &attempt))

	completed, err = repo.HasCorrect(context.Background(), caseStudy.ID, student.ID)
	require.NoError(t, err)
	require.True(t, completed)
}

func TestCaseStudyRepositoryDeleteCascadesAttempts(t *testing.T) {
	db := setupTestDB(t)
	caseStudies := NewCaseStudyRepository(db)
	attempts := NewAttemptRepository(db)

	course := models.Course{Name: "Corso"}
	require.NoError(t, db.Create(&course).Error)
	caseStudy := models.CaseStudy{CourseID: course.ID, Title: "T", Scenario: "S", ModelAnswer: "M"}
	require.NoError(t, db.Create(&caseStudy).Error)
	student := models.Profile{Email: "s@example.com", FullName: "S", Role: models.RoleStudent}
	require.NoError(t, db.Create(&student).Error)

	attempt := models.CaseStudyAttempt{CaseStudyID: caseStudy.ID, ProfileID: student.ID, StudentAnswer: "a", AIFeedback: "RIPROVA"}
	require.NoError(t, attempts.Record(context.Background(), &attempt))

	require.NoError(t, caseStudies.Delete(context.Background(), caseStudy.ID))

	count, err := attempts.CountByPair(context.Background(), caseStudy.ID, student.ID)
	require.NoError(t, err)
	require.Zero(t, count)
}
