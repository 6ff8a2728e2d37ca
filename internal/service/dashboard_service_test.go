package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/remuikids/kidsboard/internal/app"
	"github.com/remuikids/kidsboard/internal/domain"
	"github.com/remuikids/kidsboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sciencePupil seeds a grade 9 student in a course with S1 at 1/2 and S2 at
// 3/3 tracked activities, plus an untracked forum.
type sciencePupil struct {
	user   *domain.User
	course *domain.Course
	s1, s2 *domain.Section
}

func seedSciencePupil(t *testing.T, school *testutil.School) sciencePupil {
	t.Helper()
	u := school.User("maya", testutil.WithName("Maya", "Chen"))
	school.Cohort(u, "Grade 9 — Advanced", time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))

	c := school.Course("SCI9", nil)
	s1 := school.Section(c, 1, "Cells")
	s2 := school.Section(c, 2, "Energy")
	a1 := school.Activity(s1, "Reading")
	school.Activity(s1, "Quiz", testutil.WithModName("quiz"))
	b1 := school.Activity(s2, "Video")
	b2 := school.Activity(s2, "Lab", testutil.WithModName("assign"))
	b3 := school.Activity(s2, "Exit ticket")
	school.Activity(s2, "Discussion", testutil.Untracked())
	school.Enrol(u, c)

	school.Complete(u, a1, domain.CompletionComplete)
	school.Complete(u, b1, domain.CompletionComplete)
	school.Graded(u, b2, domain.CompletionComplete, 92.5)
	school.Complete(u, b3, domain.CompletionComplete)

	return sciencePupil{user: u, course: c, s1: s1, s2: s2}
}

func TestStudentDashboard_EndToEnd(t *testing.T) {
	_, store, school := newSchoolStore(t)
	p := seedSciencePupil(t, school)
	ctx := context.Background()

	svc := NewDashboardService(store, DefaultSettings())
	dash, err := svc.StudentDashboard(ctx, app.DashboardRequest{UserID: p.user.ID})
	require.NoError(t, err)

	assert.Equal(t, "High9", dash.Band.String())
	assert.Equal(t, domain.VariantHighSchool, dash.Variant)
	assert.Equal(t, "Maya Chen", dash.User.FullName())

	require.Len(t, dash.Courses, 1)
	course := dash.Courses[0]
	assert.Equal(t, p.course.ID, course.Course.ID)
	assert.Equal(t, 4, course.Summary.CompletedCount)
	assert.Equal(t, 5, course.Summary.TotalCount)
	assert.Equal(t, 80, course.Summary.Percentage)

	require.Len(t, course.Sections, 2)
	assert.Equal(t, p.s1.ID, course.Sections[0].Section.ID)
	assert.Equal(t, 50, course.Sections[0].Summary.Percentage)
	assert.Equal(t, 100, course.Sections[1].Summary.Percentage)

	assert.Equal(t, 80, dash.Overall.Percentage)
	assert.Nil(t, dash.Activities)
	assert.Empty(t, dash.Warnings)
}

func TestStudentDashboard_CourseWithoutTrackedActivities(t *testing.T) {
	_, store, school := newSchoolStore(t)
	u := school.User("sam")
	c := school.Course("ART", nil)
	sec := school.Section(c, 0, "")
	school.Activity(sec, "Gallery", testutil.Untracked())
	school.Enrol(u, c)

	dash, err := NewDashboardService(store, DefaultSettings()).
		StudentDashboard(context.Background(), app.DashboardRequest{UserID: u.ID})
	require.NoError(t, err)

	require.Len(t, dash.Courses, 1)
	assert.Equal(t, domain.ProgressSummary{Scope: domain.ScopeCourse, Key: domain.ScopeKey{CourseID: c.ID}}, dash.Courses[0].Summary)
	require.Len(t, dash.Courses[0].Sections, 1)
	assert.Equal(t, 0, dash.Courses[0].Sections[0].Summary.Percentage)
	assert.Equal(t, "General", dash.Courses[0].Sections[0].Section.DisplayName())
	assert.Equal(t, domain.Unknown, dash.Band)
	assert.Equal(t, domain.VariantDefault, dash.Variant)
}

func TestStudentDashboard_CourseFilter(t *testing.T) {
	_, store, school := newSchoolStore(t)
	p := seedSciencePupil(t, school)
	other := school.Course("MATH", nil)
	school.Enrol(p.user, other)
	svc := NewDashboardService(store, DefaultSettings())
	ctx := context.Background()

	dash, err := svc.StudentDashboard(ctx, app.DashboardRequest{UserID: p.user.ID})
	require.NoError(t, err)
	assert.Len(t, dash.Courses, 2)

	dash, err = svc.StudentDashboard(ctx, app.DashboardRequest{UserID: p.user.ID, CourseIDs: []int64{other.ID, other.ID}})
	require.NoError(t, err)
	require.Len(t, dash.Courses, 1)
	assert.Equal(t, "MATH", dash.Courses[0].Course.ShortName)
	assert.Equal(t, 0, dash.Overall.TotalCount)
}

func TestStudentDashboard_NotEnrolledCourse(t *testing.T) {
	_, store, school := newSchoolStore(t)
	p := seedSciencePupil(t, school)
	stranger := school.Course("HIST", nil)

	_, err := NewDashboardService(store, DefaultSettings()).StudentDashboard(context.Background(),
		app.DashboardRequest{UserID: p.user.ID, CourseIDs: []int64{stranger.ID}})
	var reqErr *app.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, app.ErrNotEnrolled, reqErr.Code)
}

func TestStudentDashboard_SuspendedEnrolmentHidden(t *testing.T) {
	_, store, school := newSchoolStore(t)
	u := school.User("kim")
	c := school.Course("PE", nil)
	school.EnrolSuspended(u, c)

	dash, err := NewDashboardService(store, DefaultSettings()).
		StudentDashboard(context.Background(), app.DashboardRequest{UserID: u.ID})
	require.NoError(t, err)
	assert.Empty(t, dash.Courses)
}

func TestStudentDashboard_RequestErrors(t *testing.T) {
	_, store, school := newSchoolStore(t)
	u := school.User("ada")
	svc := NewDashboardService(store, DefaultSettings())

	cases := []struct {
		name string
		req  app.DashboardRequest
		code app.RequestErrorCode
	}{
		{"missing user", app.DashboardRequest{}, app.ErrInvalidUser},
		{"unknown user", app.DashboardRequest{UserID: 987654}, app.ErrUnknownUser},
		{"bad scope", app.DashboardRequest{UserID: u.ID, Scope: "term"}, app.ErrInvalidScope},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.StudentDashboard(context.Background(), tc.req)
			var reqErr *app.RequestError
			require.True(t, errors.As(err, &reqErr), "got %v", err)
			assert.Equal(t, tc.code, reqErr.Code)
		})
	}
}

func TestStudentDashboard_ActivityScope(t *testing.T) {
	_, store, school := newSchoolStore(t)
	p := seedSciencePupil(t, school)

	dash, err := NewDashboardService(store, DefaultSettings()).StudentDashboard(context.Background(),
		app.DashboardRequest{UserID: p.user.ID, Scope: domain.ScopeActivity})
	require.NoError(t, err)
	assert.Len(t, dash.Activities, 5)
	for key, s := range dash.Activities {
		assert.Equal(t, p.course.ID, key.CourseID)
		assert.Equal(t, 1, s.TotalCount)
	}
}

func TestStudentDashboard_ProfileFieldWins(t *testing.T) {
	_, store, school := newSchoolStore(t)
	p := seedSciencePupil(t, school)
	school.Profile(p.user, "grade", "Grade 2")

	dash, err := NewDashboardService(store, DefaultSettings()).
		StudentDashboard(context.Background(), app.DashboardRequest{UserID: p.user.ID})
	require.NoError(t, err)
	assert.Equal(t, "Elementary2", dash.Band.String())
	assert.Equal(t, domain.VariantElementary, dash.Variant)
}

func TestStudentDashboard_DuplicateFactsWarnAndLog(t *testing.T) {
	_, store, school := newSchoolStore(t)
	p := seedSciencePupil(t, school)

	fact := domain.CompletionFact{UserID: p.user.ID, ActivityID: 1, SectionID: p.s1.ID, CourseID: p.course.ID}
	done := fact
	done.State = domain.CompletionComplete
	fact.State = domain.CompletionInProgress
	store.Completions = stubCompletions{facts: []domain.CompletionFact{fact, done}}

	var logs bytes.Buffer
	settings := DefaultSettings()
	settings.Logger = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	dash, err := NewDashboardService(store, settings).
		StudentDashboard(context.Background(), app.DashboardRequest{UserID: p.user.ID})
	require.NoError(t, err)

	require.Len(t, dash.Warnings, 1)
	assert.Contains(t, dash.Warnings[0], "1 duplicate completion records ignored (1 conflicting)")
	assert.Equal(t, 100, dash.Courses[0].Summary.Percentage)
	assert.Contains(t, logs.String(), "completion anomalies")
	assert.Contains(t, logs.String(), "duplicates=1")
}

func TestStudentDashboard_ReportsUseCase(t *testing.T) {
	_, store, school := newSchoolStore(t)
	p := seedSciencePupil(t, school)
	obs := &recordingObserver{}
	ctx := WithRequestID(context.Background(), "req-42")

	_, err := NewDashboardService(store, DefaultSettings(), obs).
		StudentDashboard(ctx, app.DashboardRequest{UserID: p.user.ID})
	require.NoError(t, err)

	ev := obs.last()
	assert.Equal(t, "student-dashboard", ev.Name)
	assert.Equal(t, "req-42", ev.RequestID)
	assert.True(t, ev.Success)
	assert.Equal(t, "High9", ev.Fields["band"])
	assert.Equal(t, 5, ev.Fields["facts"])
}
