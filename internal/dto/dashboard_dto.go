package dto

// CaseStudyProgress summarizes a student's standing on one case study.
type CaseStudyProgress struct {
	CaseStudyID string `json:"case_study_id"`
	Title       string `json:"title"`
	Attempts    int    `json:"attempts"`
	Completed   bool   `json:"completed"`
}

// StudentDashboardResponse aggregates a student's enrollments, upcoming
// lessons and case-study progress.
type StudentDashboardResponse struct {
	Enrollments     []ClassResponse     `json:"enrollments"`
	UpcomingLessons []LessonResponse    `json:"upcoming_lessons"`
	CaseStudies     []CaseStudyProgress `json:"case_studies"`
}
