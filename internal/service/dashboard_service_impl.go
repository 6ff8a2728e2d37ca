package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/remuikids/kidsboard/internal/app"
	"github.com/remuikids/kidsboard/internal/domain"
	"github.com/remuikids/kidsboard/internal/gradeband"
	"github.com/remuikids/kidsboard/internal/progress"
	"github.com/remuikids/kidsboard/internal/repository"
)

type dashboardService struct {
	store    repository.Store
	settings Settings
	observer UseCaseObserver
}

func NewDashboardService(store repository.Store, settings Settings, observers ...UseCaseObserver) DashboardService {
	return &dashboardService{
		store:    store,
		settings: settings.withDefaults(),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *dashboardService) StudentDashboard(ctx context.Context, req app.DashboardRequest) (dash *app.StudentDashboard, err error) {
	run := startUseCase(ctx, s.observer, "student-dashboard", map[string]any{"user_id": req.UserID})
	defer func() { run.done(ctx, err) }()

	scope, err := requestScope(req.Scope)
	if err != nil {
		return nil, err
	}

	user, err := loadUser(ctx, s.store.Users, req.UserID)
	if err != nil {
		return nil, err
	}

	explained, _, err := classifyUser(ctx, s.store, s.settings, req.UserID)
	if err != nil {
		return nil, err
	}
	run.set("band", explained.Band.String())

	courses, err := s.selectCourses(ctx, req)
	if err != nil {
		return nil, err
	}
	courseIDs := make([]int64, 0, len(courses))
	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID)
	}

	sections, err := s.store.Courses.ListSections(ctx, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("loading sections: %w", err)
	}

	facts, err := s.store.Completions.ListFacts(ctx, req.UserID, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("loading completion facts: %w", err)
	}
	run.set("facts", len(facts))

	dash = &app.StudentDashboard{
		User:    user,
		Band:    explained.Band,
		Variant: gradeband.Variant(explained.Band),
		Overall: progress.Overall(facts),
		Courses: buildCourseViews(courses, sections, progress.Rollup(facts)),
	}

	if a := progress.Inspect(facts); a.Any() {
		s.settings.Logger.DebugContext(ctx, "completion anomalies",
			"user_id", req.UserID,
			"duplicates", a.Duplicates,
			"conflicts", a.Conflicts,
		)
		dash.Warnings = append(dash.Warnings,
			fmt.Sprintf("%d duplicate completion records ignored (%d conflicting)", a.Duplicates, a.Conflicts))
	}

	if scope == domain.ScopeActivity {
		dash.Activities = progress.Summarize(facts, domain.ScopeActivity)
	}
	return dash, nil
}

// selectCourses returns the user's enrolled courses, narrowed to the
// requested ids when given. Asking for a course the user is not enrolled in
// is a request error.
func (s *dashboardService) selectCourses(ctx context.Context, req app.DashboardRequest) ([]*domain.Course, error) {
	enrolled, err := s.store.Courses.ListEnrolled(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("loading enrolled courses: %w", err)
	}
	if len(req.CourseIDs) == 0 {
		return enrolled, nil
	}

	byID := make(map[int64]*domain.Course, len(enrolled))
	for _, c := range enrolled {
		byID[c.ID] = c
	}
	picked := make([]*domain.Course, 0, len(req.CourseIDs))
	seen := make(map[int64]bool, len(req.CourseIDs))
	for _, id := range req.CourseIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		c, ok := byID[id]
		if !ok {
			return nil, &app.RequestError{
				Code:    app.ErrNotEnrolled,
				Message: fmt.Sprintf("user %d is not enrolled in course %d", req.UserID, id),
			}
		}
		picked = append(picked, c)
	}
	return picked, nil
}

// buildCourseViews lays the roll-up over the course and section lists so that
// courses and sections without tracked activities still show at 0%.
func buildCourseViews(courses []*domain.Course, sections []*domain.Section, tree []progress.CourseProgress) []app.CourseProgressView {
	byCourse := make(map[int64]progress.CourseProgress, len(tree))
	for _, cp := range tree {
		byCourse[cp.CourseID] = cp
	}
	sectionsByCourse := make(map[int64][]*domain.Section)
	for _, sec := range sections {
		sectionsByCourse[sec.CourseID] = append(sectionsByCourse[sec.CourseID], sec)
	}

	views := make([]app.CourseProgressView, 0, len(courses))
	for _, c := range courses {
		cp, ok := byCourse[c.ID]
		summary := cp.Summary
		if !ok {
			summary = domain.ProgressSummary{Scope: domain.ScopeCourse, Key: domain.ScopeKey{CourseID: c.ID}}
		}
		bySection := make(map[int64]domain.ProgressSummary, len(cp.Sections))
		for _, sp := range cp.Sections {
			bySection[sp.SectionID] = sp.Summary
		}

		view := app.CourseProgressView{Course: c, Summary: summary}
		for _, sec := range sectionsByCourse[c.ID] {
			sum, ok := bySection[sec.ID]
			if !ok {
				sum = domain.ProgressSummary{
					Scope: domain.ScopeSection,
					Key:   domain.ScopeKey{CourseID: c.ID, SectionID: sec.ID},
				}
			}
			view.Sections = append(view.Sections, app.SectionProgressView{Section: sec, Summary: sum})
		}
		views = append(views, view)
	}
	return views
}

func requestScope(scope domain.Scope) (domain.Scope, error) {
	if scope == "" {
		return domain.ScopeCourse, nil
	}
	if !domain.ValidScopes[string(scope)] {
		return "", &app.RequestError{
			Code:    app.ErrInvalidScope,
			Message: fmt.Sprintf("scope %q is not one of activity, section, course", scope),
		}
	}
	return scope, nil
}

func loadUser(ctx context.Context, users repository.UserRepo, userID int64) (*domain.User, error) {
	if userID <= 0 {
		return nil, &app.RequestError{Code: app.ErrInvalidUser, Message: "user id is required"}
	}
	user, err := users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &app.RequestError{Code: app.ErrUnknownUser, Message: fmt.Sprintf("user %d not found", userID)}
	}
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	return user, nil
}

// classifyUser gathers the classifier inputs for a user and runs it.
func classifyUser(ctx context.Context, store repository.Store, settings Settings, userID int64) (gradeband.Result, []string, error) {
	memberships, err := store.Cohorts.ListByUser(ctx, userID)
	if err != nil {
		return gradeband.Result{}, nil, fmt.Errorf("loading cohorts: %w", err)
	}
	profile, err := store.Profiles.GetField(ctx, userID, settings.ProfileField)
	if err != nil {
		return gradeband.Result{}, nil, fmt.Errorf("loading profile field %q: %w", settings.ProfileField, err)
	}
	names := domain.CohortNames(memberships)
	return settings.Classifier.Explain(names, profile), names, nil
}
