package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/remuikids/kidsboard/internal/app"
	"github.com/remuikids/kidsboard/internal/domain"
	"github.com/remuikids/kidsboard/internal/importer"
	"github.com/remuikids/kidsboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleSnapshot = filepath.Join("..", "importer", "testdata", "school.yaml")

func TestImportSnapshot_SampleFile(t *testing.T) {
	ts := testutil.NewTestStore(t)
	ctx := context.Background()

	res, err := NewImportService(ts.UoW).ImportSnapshot(ctx, sampleSnapshot)
	require.NoError(t, err)
	assert.Equal(t, &app.ImportResult{Tenants: 2, Users: 4, Cohorts: 2, Courses: 1, Activities: 6, Completions: 5}, res)

	store := ts.Repos

	dash, err := NewDashboardService(store, DefaultSettings()).StudentDashboard(ctx, app.DashboardRequest{UserID: 10})
	require.NoError(t, err)
	assert.Equal(t, "High9", dash.Band.String())
	require.Len(t, dash.Courses, 1)
	assert.Equal(t, domain.ProgressSummary{
		Scope: domain.ScopeCourse, Key: domain.ScopeKey{CourseID: 100},
		CompletedCount: 4, TotalCount: 5, Percentage: 80,
	}, dash.Courses[0].Summary)

	leo, err := NewClassifyService(store, DefaultSettings()).ClassifyUser(ctx, app.ClassifyRequest{UserID: 11})
	require.NoError(t, err)
	assert.Equal(t, "Elementary2", leo.Band.String())
	assert.Equal(t, app.SourceProfile, leo.Source)

	stats, err := NewTenantStatsService(store, DefaultSettings()).
		Stats(ctx, app.TenantStatsRequest{TenantID: 1, IncludeApproximate: true})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Teachers)
	assert.Equal(t, 1, stats.Students)
	assert.Equal(t, 2, stats.Managers)
	assert.Equal(t, 3, stats.Members)
	assert.Equal(t, 2, *stats.Approximate)
}

func TestImportSnapshot_IsRepeatable(t *testing.T) {
	ts := testutil.NewTestStore(t)
	svc := NewImportService(ts.UoW)
	ctx := context.Background()

	_, err := svc.ImportSnapshot(ctx, sampleSnapshot)
	require.NoError(t, err)
	_, err = svc.ImportSnapshot(ctx, sampleSnapshot)
	require.NoError(t, err)

	tenants, err := ts.Repos.Tenants.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tenants, 2)
	roles, err := ts.Repos.Roles.ListByUser(ctx, 20)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"editingteacher", "manager"}, roles)
}

func TestImportSnapshot_MissingFile(t *testing.T) {
	_, err := NewImportService(testutil.NewTestStore(t).UoW).ImportSnapshot(context.Background(), filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading snapshot file")
}

func TestImportSnapshot_ValidationErrorsListed(t *testing.T) {
	ts := testutil.NewTestStore(t)
	obs := &recordingObserver{}
	snap := &importer.Snapshot{
		Tenants: []importer.TenantImport{{ID: 1, Name: ""}},
		Users:   []importer.UserImport{{ID: 2, Username: "x", Tenants: []importer.MembershipImport{{TenantID: 5}}}},
	}

	_, err := NewImportService(ts.UoW, obs).ImportSnapshotFromSchema(context.Background(), snap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot validation failed (2 errors):")
	assert.Contains(t, err.Error(), "\n  - tenants[0].name: must not be blank")
	assert.Contains(t, err.Error(), "\n  - users[0].tenants[0]: unknown tenant 5")
	assert.Equal(t, 2, obs.last().Fields["validation_errors"])
}

func TestImportSnapshot_RollbackOnWriteFailure(t *testing.T) {
	ts := testutil.NewTestStore(t)
	ctx := context.Background()

	snap, err := importer.LoadSnapshot(sampleSnapshot)
	require.NoError(t, err)

	broken := &testutil.BrokenTableUoW{DB: ts.DB, Table: "users", Err: errors.New("users table is read-only")}
	_, err = NewImportService(broken).ImportSnapshotFromSchema(ctx, snap)
	require.Error(t, err)
	assert.ErrorIs(t, err, broken.Err)
	assert.Equal(t, 2, broken.WrittenTo("tenants"), "tenants are written before users")
	assert.Zero(t, broken.WrittenTo("users"))

	tenants, err := ts.Repos.Tenants.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tenants, "tenant rows must be rolled back")
}

func TestImportSnapshot_MemberAddedDefaultsToImportTime(t *testing.T) {
	ts := testutil.NewTestStore(t)
	ctx := context.Background()
	fixed := time.Date(2026, 1, 5, 7, 0, 0, 0, time.UTC)

	svc := NewImportService(ts.UoW).(*importService)
	svc.now = func() time.Time { return fixed }

	snap := &importer.Snapshot{
		Users:   []importer.UserImport{{ID: 3, Username: "new"}},
		Cohorts: []importer.CohortImport{{ID: 4, Name: "Grade 7", Members: []importer.CohortMemberImport{{UserID: 3}}}},
	}
	_, err := svc.ImportSnapshotFromSchema(ctx, snap)
	require.NoError(t, err)

	cohorts, err := ts.Repos.Cohorts.ListByUser(ctx, 3)
	require.NoError(t, err)
	require.Len(t, cohorts, 1)
	assert.True(t, fixed.Equal(cohorts[0].TimeAdded))
}
