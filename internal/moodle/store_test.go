package moodle

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/remuikids/kidsboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// refusingQuerier fails the test if any query reaches the database.
type refusingQuerier struct{ t *testing.T }

func (q refusingQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	q.t.Fatal("unexpected query")
	return nil, errors.New("unexpected query")
}

func (q refusingQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	q.t.Fatal("unexpected query")
	return nil
}

func TestNew_Prefix(t *testing.T) {
	s, err := New(nil, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultPrefix, s.Prefix())

	s, err = New(nil, "iomad_")
	require.NoError(t, err)
	assert.Equal(t, "iomad_", s.Prefix())

	for _, bad := range []string{"mdl; DROP TABLE x", "MDL_", "m-d"} {
		_, err := New(nil, bad)
		assert.Error(t, err, bad)
	}
}

func TestExpand(t *testing.T) {
	s, err := New(nil, "mdl_")
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT 1 FROM mdl_cohort_members cm JOIN mdl_cohort c ON c.id = cm.cohortid WHERE cm.userid = $1",
		s.expand("SELECT 1 FROM {cohort_members} cm JOIN {cohort} c ON c.id = cm.cohortid WHERE cm.userid = $1"))

	s, err = New(nil, "m2_")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM m2_user", s.expand("SELECT * FROM {user}"))
}

func TestQueries_ExpandEveryTable(t *testing.T) {
	s, err := New(nil, "x_")
	require.NoError(t, err)
	for _, q := range []string{
		cohortsByUserSQL, profileFieldSQL, completionFactsSQL, tenantByIDSQL, tenantsSQL, membershipsSQL,
		rolesByUserSQL, activeUsersSQL, enrolledCoursesSQL, sectionsSQL, userByIDSQL, usersByTenantSQL,
	} {
		expanded := s.expand(q)
		assert.NotContains(t, expanded, "{", q)
		assert.Contains(t, expanded, " x_", q)
	}
}

func TestCompletionState(t *testing.T) {
	ptr := func(v int) *int { return &v }
	assert.Equal(t, domain.CompletionNotStarted, completionState(nil))
	assert.Equal(t, domain.CompletionInProgress, completionState(ptr(0)))
	assert.Equal(t, domain.CompletionComplete, completionState(ptr(1)))
	assert.Equal(t, domain.CompletionComplete, completionState(ptr(2)))
	assert.Equal(t, domain.CompletionInProgress, completionState(ptr(3)))
}

func TestEmptyIDListsSkipTheDatabase(t *testing.T) {
	s, err := New(refusingQuerier{t: t}, "")
	require.NoError(t, err)
	repos := s.Repositories()
	ctx := context.Background()

	facts, err := repos.Completions.ListFacts(ctx, 1, nil)
	require.NoError(t, err)
	assert.Nil(t, facts)

	ids, err := repos.Enrolments.ListActiveUsers(ctx, []int64{})
	require.NoError(t, err)
	assert.Nil(t, ids)

	secs, err := repos.Courses.ListSections(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, secs)
}

func TestOpen_RejectsBadDSN(t *testing.T) {
	_, err := Open(context.Background(), "", "")
	assert.Error(t, err)

	_, err = Open(context.Background(), "postgres://%zz", "")
	assert.Error(t, err)
}

// TestLiveMoodle runs against a real IOMAD database when KIDSBOARD_TEST_MOODLE_DSN is set.
func TestLiveMoodle(t *testing.T) {
	dsn := os.Getenv("KIDSBOARD_TEST_MOODLE_DSN")
	if dsn == "" {
		t.Skip("KIDSBOARD_TEST_MOODLE_DSN not set")
	}
	ctx := context.Background()
	s, err := Open(ctx, dsn, os.Getenv("KIDSBOARD_TEST_MOODLE_PREFIX"))
	require.NoError(t, err)
	t.Cleanup(s.Close)

	tenants, err := s.Repositories().Tenants.List(ctx)
	require.NoError(t, err)
	for _, tenant := range tenants {
		_, err := s.Repositories().Tenants.ListMemberships(ctx, tenant.ID)
		require.NoError(t, err)
	}
}
