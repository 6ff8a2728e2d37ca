package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/remuikids/kidsboard/internal/db"
	"github.com/remuikids/kidsboard/internal/domain"
	"github.com/remuikids/kidsboard/internal/repository"
	"github.com/stretchr/testify/require"
)

// School seeds a local store through repository.SQLiteWriter. Every helper
// fails the test on write errors.
type School struct {
	t   *testing.T
	ctx context.Context
	w   *repository.SQLiteWriter
}

func NewSchool(t *testing.T, conn db.DBTX) *School {
	t.Helper()
	return &School{t: t, ctx: context.Background(), w: repository.NewSQLiteWriter(conn)}
}

func (s *School) Tenant(name string) *domain.Tenant {
	s.t.Helper()
	tenant := NewTestTenant(name)
	require.NoError(s.t, s.w.UpsertTenant(s.ctx, tenant))
	return tenant
}

func (s *School) User(username string, opts ...UserOption) *domain.User {
	s.t.Helper()
	u := NewTestUser(username, opts...)
	require.NoError(s.t, s.w.UpsertUser(s.ctx, u))
	return u
}

// Member adds the user to the tenant as an ordinary member.
func (s *School) Member(tenant *domain.Tenant, u *domain.User) {
	s.t.Helper()
	require.NoError(s.t, s.w.AddTenantUser(s.ctx, tenant.ID, u.ID, 0))
}

func (s *School) Manager(tenant *domain.Tenant, u *domain.User) {
	s.t.Helper()
	require.NoError(s.t, s.w.AddTenantUser(s.ctx, tenant.ID, u.ID, 1))
}

func (s *School) Role(u *domain.User, roles ...string) {
	s.t.Helper()
	for _, role := range roles {
		require.NoError(s.t, s.w.AssignRole(s.ctx, u.ID, role, 0))
	}
}

// Cohort creates a cohort with the given name and adds the user to it.
func (s *School) Cohort(u *domain.User, name string, added time.Time) int64 {
	s.t.Helper()
	id := NextID()
	require.NoError(s.t, s.w.UpsertCohort(s.ctx, id, name, ""))
	require.NoError(s.t, s.w.AddCohortMember(s.ctx, id, u.ID, added))
	return id
}

func (s *School) Profile(u *domain.User, field, value string) {
	s.t.Helper()
	require.NoError(s.t, s.w.SetProfileField(s.ctx, u.ID, field, value))
}

func (s *School) Course(shortName string, tenant *domain.Tenant) *domain.Course {
	s.t.Helper()
	var tenantID int64
	if tenant != nil {
		tenantID = tenant.ID
	}
	c := NewTestCourse(shortName, tenantID)
	require.NoError(s.t, s.w.UpsertCourse(s.ctx, c))
	return c
}

func (s *School) Section(c *domain.Course, number int, name string) *domain.Section {
	s.t.Helper()
	sec := NewTestSection(c.ID, number, name)
	require.NoError(s.t, s.w.UpsertSection(s.ctx, sec))
	return sec
}

func (s *School) Activity(sec *domain.Section, name string, opts ...ActivityOption) *domain.Activity {
	s.t.Helper()
	a := NewTestActivity(sec, name, opts...)
	require.NoError(s.t, s.w.UpsertActivity(s.ctx, a))
	return a
}

func (s *School) Enrol(u *domain.User, c *domain.Course) {
	s.t.Helper()
	require.NoError(s.t, s.w.UpsertEnrolment(s.ctx, &domain.Enrolment{UserID: u.ID, CourseID: c.ID}))
}

func (s *School) EnrolSuspended(u *domain.User, c *domain.Course) {
	s.t.Helper()
	require.NoError(s.t, s.w.UpsertEnrolment(s.ctx, &domain.Enrolment{UserID: u.ID, CourseID: c.ID, Suspended: true}))
}

func (s *School) Complete(u *domain.User, a *domain.Activity, state domain.CompletionState) {
	s.t.Helper()
	require.NoError(s.t, s.w.RecordCompletion(s.ctx, u.ID, a.ID, state, nil))
}

func (s *School) Graded(u *domain.User, a *domain.Activity, state domain.CompletionState, grade float64) {
	s.t.Helper()
	require.NoError(s.t, s.w.RecordCompletion(s.ctx, u.ID, a.ID, state, &grade))
}
