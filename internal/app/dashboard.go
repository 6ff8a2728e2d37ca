package app

import "github.com/remuikids/kidsboard/internal/domain"

type DashboardRequest struct {
	UserID int64
	// CourseIDs narrows the dashboard to these enrolled courses. Empty means all.
	CourseIDs []int64
	Scope     domain.Scope
}

type SectionProgressView struct {
	Section *domain.Section
	Summary domain.ProgressSummary
}

type CourseProgressView struct {
	Course   *domain.Course
	Summary  domain.ProgressSummary
	Sections []SectionProgressView
}

// StudentDashboard is everything a student landing page renders.
type StudentDashboard struct {
	User    *domain.User
	Band    domain.GradeBand
	Variant domain.DashboardVariant
	Overall domain.ProgressSummary
	Courses []CourseProgressView
	// Activities is filled only when the request asks for activity scope.
	Activities map[domain.ScopeKey]domain.ProgressSummary
	Warnings   []string
}
