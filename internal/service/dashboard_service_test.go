package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/cinofilo-api/internal/models"
	"github.com/noah-isme/cinofilo-api/internal/repository"
	"github.com/noah-isme/cinofilo-api/pkg/ai"
)

func TestDashboardAggregationAndCaching(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	db, err := gorm.Open(sqlite.Open("file:dashboard_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Role{}, &models.Profile{}, &models.Course{},
		&models.Class{}, &models.ClassStudent{}, &models.Lesson{},
		&models.CaseStudy{}, &models.CaseStudyAttempt{},
	))

	course := models.Course{Name: "Educazione di base"}
	require.NoError(t, db.Create(&course).Error)

	code := "DASH2025"
	class := models.Class{CourseID: course.ID, EditionName: "Edizione autunno", InviteCode: &code}
	require.NoError(t, db.Create(&class).Error)

	profileID := "dddddddd-dddd-4ddd-8ddd-dddddddddddd"
	require.NoError(t, db.Create(&models.ClassStudent{
		ClassID:    class.ID,
		ProfileID:  profileID,
		EnrolledAt: time.Now().UTC(),
	}).Error)

	now := time.Now().UTC()
	lessons := []models.Lesson{
		{ClassID: class.ID, Title: "Richiamo", LessonDate: now.Add(48 * time.Hour)},
		{ClassID: class.ID, Title: "Condotta", LessonDate: now.Add(24 * time.Hour)},
		{ClassID: class.ID, Title: "Lezione passata", LessonDate: now.Add(-48 * time.Hour)},
	}
	for i := range lessons {
		require.NoError(t, db.Create(&lessons[i]).Error)
	}

	caseStudy := models.CaseStudy{
		CourseID:    course.ID,
		Title:       "Abbaio al campanello",
		Scenario:    "Il cane abbaia ogni volta che suona il campanello.",
		ModelAnswer: "Desensibilizzazione graduale al suono.",
	}
	require.NoError(t, db.Create(&caseStudy).Error)

	attemptRepo := repository.NewAttemptRepository(db)
	require.NoError(t, attemptRepo.Record(context.Background(), &models.CaseStudyAttempt{
		CaseStudyID:   caseStudy.ID,
		ProfileID:     profileID,
		StudentAnswer: "Ignoro il cane",
		IsCorrect:     false,
		AIFeedback:    "RIPROVA.",
	}))
	require.NoError(t, attemptRepo.Record(context.Background(), &models.CaseStudyAttempt{
		CaseStudyID:   caseStudy.ID,
		ProfileID:     profileID,
		StudentAnswer: "Desensibilizzo gradualmente",
		IsCorrect:     true,
		AIFeedback:    "CORRETTO!",
	}))

	service := NewDashboardService(
		repository.NewClassRepository(db),
		repository.NewLessonRepository(db),
		repository.NewCaseStudyRepository(db),
		attemptRepo,
		redisClient,
		time.Minute,
		zerolog.Nop(),
	)

	dashboard, err := service.GetStudentDashboard(context.Background(), profileID)
	require.NoError(t, err)

	require.Len(t, dashboard.Enrollments, 1)
	require.Equal(t, class.ID, dashboard.Enrollments[0].ID)
	require.Nil(t, dashboard.Enrollments[0].InviteCode)

	require.Len(t, dashboard.UpcomingLessons, 2)
	require.Equal(t, "Condotta", dashboard.UpcomingLessons[0].Title)
	require.Equal(t, "Richiamo", dashboard.UpcomingLessons[1].Title)

	require.Len(t, dashboard.CaseStudies, 1)
	require.Equal(t, 2, dashboard.CaseStudies[0].Attempts)
	require.True(t, dashboard.CaseStudies[0].Completed)

	require.True(t, mini.Exists(dashboardCacheKey(profileID)))

	// Second call must be served from the cache even after the source rows
	// change underneath it.
	require.NoError(t, db.Delete(&models.Lesson{}, "id = ?", lessons[0].ID).Error)

	cached, err := service.GetStudentDashboard(context.Background(), profileID)
	require.NoError(t, err)
	require.Len(t, cached.UpcomingLessons, 2)

	service.Invalidate(context.Background(), profileID)
	require.False(t, mini.Exists(dashboardCacheKey(profileID)))

	fresh, err := service.GetStudentDashboard(context.Background(), profileID)
	require.NoError(t, err)
	require.Len(t, fresh.UpcomingLessons, 1)
}

func TestDashboardReflectsGradedAttemptImmediately(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	db, err := gorm.Open(sqlite.Open("file:dashboard_graded_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Course{}, &models.Class{}, &models.ClassStudent{},
		&models.Lesson{}, &models.CaseStudy{}, &models.CaseStudyAttempt{},
	))

	course := models.Course{Name: "Educazione di base"}
	require.NoError(t, db.Create(&course).Error)

	class := models.Class{CourseID: course.ID, EditionName: "Edizione inverno"}
	require.NoError(t, db.Create(&class).Error)

	profileID := "ffffffff-ffff-4fff-8fff-ffffffffffff"
	require.NoError(t, db.Create(&models.ClassStudent{
		ClassID:    class.ID,
		ProfileID:  profileID,
		EnrolledAt: time.Now().UTC(),
	}).Error)

	caseStudy := models.CaseStudy{
		CourseID:    course.ID,
		Title:       "Abbaio al campanello",
		Scenario:    "Il cane abbaia ogni volta che suona il campanello.",
		ModelAnswer: "Desensibilizzazione graduale al suono.",
	}
	require.NoError(t, db.Create(&caseStudy).Error)

	caseStudyRepo := repository.NewCaseStudyRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)

	dashboards := NewDashboardService(
		repository.NewClassRepository(db),
		repository.NewLessonRepository(db),
		caseStudyRepo,
		attemptRepo,
		redisClient,
		time.Minute,
		zerolog.Nop(),
	)

	grader := &stubGrader{result: ai.GradingResult{IsCorrect: true, Feedback: "CORRETTO!"}}
	evaluations := NewEvaluationService(caseStudyRepo, attemptRepo, grader, nil, dashboards, zerolog.Nop())

	before, err := dashboards.GetStudentDashboard(context.Background(), profileID)
	require.NoError(t, err)
	require.Len(t, before.CaseStudies, 1)
	require.False(t, before.CaseStudies[0].Completed)
	require.True(t, mini.Exists(dashboardCacheKey(profileID)))

	_, err = evaluations.Evaluate(context.Background(), profileID, caseStudy.ID, "Desensibilizzo gradualmente al suono.")
	require.NoError(t, err)
	require.False(t, mini.Exists(dashboardCacheKey(profileID)))

	after, err := dashboards.GetStudentDashboard(context.Background(), profileID)
	require.NoError(t, err)
	require.Len(t, after.CaseStudies, 1)
	require.True(t, after.CaseStudies[0].Completed)
	require.Equal(t, 1, after.CaseStudies[0].Attempts)
}

func TestDashboardWithoutCacheClient(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:dashboard_nocache_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Course{}, &models.Class{}, &models.ClassStudent{},
		&models.Lesson{}, &models.CaseStudy{}, &models.CaseStudyAttempt{},
	))

	service := NewDashboardService(
		repository.NewClassRepository(db),
		repository.NewLessonRepository(db),
		repository.NewCaseStudyRepository(db),
		repository.NewAttemptRepository(db),
		nil,
		time.Minute,
		zerolog.Nop(),
	)

	dashboard, err := service.GetStudentDashboard(context.Background(), "eeeeeeee-eeee-4eee-8eee-eeeeeeeeeeee")
	require.NoError(t, err)
	require.Empty(t, dashboard.Enrollments)
	require.Empty(t, dashboard.UpcomingLessons)
	require.Empty(t, dashboard.CaseStudies)
}
