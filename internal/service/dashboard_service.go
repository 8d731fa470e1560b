package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/cinofilo-api/internal/dto"
	"github.com/noah-isme/cinofilo-api/internal/repository"
)

const upcomingLessonLimit = 5

// DashboardService aggregates a student's enrollments, upcoming lessons and
// case-study progress into a single cached view.
type DashboardService interface {
	GetStudentDashboard(ctx context.Context, profileID string) (dto.StudentDashboardResponse, error)
	DashboardInvalidator
}

// DashboardInvalidator is the write-side hook other services use to drop a
// student's cached dashboard after a change that feeds it.
type DashboardInvalidator interface {
	Invalidate(ctx context.Context, profileID string)
}

type dashboardService struct {
	classes     repository.ClassRepository
	lessons     repository.LessonRepository
	caseStudies repository.CaseStudyRepository
	attempts    repository.AttemptRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewDashboardService builds the dashboard aggregator.
func NewDashboardService(classRepo repository.ClassRepository, lessonRepo repository.LessonRepository, caseStudyRepo repository.CaseStudyRepository, attemptRepo repository.AttemptRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		classes:     classRepo,
		lessons:     lessonRepo,
		caseStudies: caseStudyRepo,
		attempts:    attemptRepo,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "dashboard_service").Logger(),
		now:         time.Now,
	}
}

func dashboardCacheKey(profileID string) string {
	return fmt.Sprintf("dashboard:student:%s", profileID)
}

func (s *dashboardService) GetStudentDashboard(ctx context.Context, profileID string) (dto.StudentDashboardResponse, error) {
	cacheKey := dashboardCacheKey(profileID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.StudentDashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Str("profile_id", profileID).Msg("dashboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	response, err := s.buildResponse(ctx, profileID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	if s.cache != nil {
		payload, err := json.Marshal(response)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}

// Invalidate drops the cached dashboard after a write that changes it, such
// as a graded attempt or a new enrollment.
func (s *dashboardService) Invalidate(ctx context.Context, profileID string) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Del(ctx, dashboardCacheKey(profileID)).Err(); err != nil {
		s.logger.Warn().Err(err).Str("profile_id", profileID).Msg("failed to invalidate dashboard cache")
	}
}

func (s *dashboardService) buildResponse(ctx context.Context, profileID string) (dto.StudentDashboardResponse, error) {
	classes, err := s.classes.ListEnrollments(ctx, profileID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	classIDs := make([]string, 0, len(classes))
	courseIDs := make([]string, 0, len(classes))
	seenCourses := map[string]bool{}
	for _, class := range classes {
		classIDs = append(classIDs, class.ID)
		if !seenCourses[class.CourseID] {
			seenCourses[class.CourseID] = true
			courseIDs = append(courseIDs, class.CourseID)
		}
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	lessons, err := s.lessons.ListUpcoming(ctx, classIDs, today, upcomingLessonLimit)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	progress := make([]dto.CaseStudyProgress, 0)
	for _, courseID := range courseIDs {
		caseStudies, err := s.caseStudies.ListByCourse(ctx, courseID)
		if err != nil {
			return dto.StudentDashboardResponse{}, err
		}

		for _, caseStudy := range caseStudies {
			count, err := s.attempts.CountByPair(ctx, caseStudy.ID, profileID)
			if err != nil {
				return dto.StudentDashboardResponse{}, err
			}

			completed, err := s.attempts.HasCorrect(ctx, caseStudy.ID, profileID)
			if err != nil {
				return dto.StudentDashboardResponse{}, err
			}

			progress = append(progress, dto.CaseStudyProgress{
				CaseStudyID: caseStudy.ID,
				Title:       caseStudy.Title,
				Attempts:    int(count),
				Completed:   completed,
			})
		}
	}

	return dto.StudentDashboardResponse{
		Enrollments:     dto.NewClassResponseSlice(classes, false),
		UpcomingLessons: dto.NewLessonResponseSlice(lessons),
		CaseStudies:     progress,
	}, nil
}
