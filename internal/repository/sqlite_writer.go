package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/remuikids/kidsboard/internal/db"
	"github.com/remuikids/kidsboard/internal/domain"
)

// SQLiteWriter upserts snapshot rows into the local store. It is meant to run
// against a transaction from db.UnitOfWork so an import applies atomically.
type SQLiteWriter struct {
	db db.DBTX
}

func NewSQLiteWriter(conn db.DBTX) *SQLiteWriter {
	return &SQLiteWriter{db: conn}
}

func (w *SQLiteWriter) exec(ctx context.Context, what, query string, args ...any) error {
	if _, err := w.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("writing %s: %w", what, err)
	}
	return nil
}

func (w *SQLiteWriter) UpsertTenant(ctx context.Context, t *domain.Tenant) error {
	return w.exec(ctx, "tenant", `INSERT INTO tenants (id, name, shortname) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, shortname = excluded.shortname`,
		t.ID, t.Name, t.ShortName)
}

func (w *SQLiteWriter) UpsertUser(ctx context.Context, u *domain.User) error {
	return w.exec(ctx, "user", `INSERT INTO users (id, username, firstname, lastname, email, suspended)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET username = excluded.username, firstname = excluded.firstname,
			lastname = excluded.lastname, email = excluded.email, suspended = excluded.suspended`,
		u.ID, u.Username, u.FirstName, u.LastName, u.Email, boolToInt(u.Suspended))
}

func (w *SQLiteWriter) SetProfileField(ctx context.Context, userID int64, field, value string) error {
	return w.exec(ctx, "profile field", `INSERT INTO user_profile_fields (user_id, field, value) VALUES (?, ?, ?)
		ON CONFLICT(user_id, field) DO UPDATE SET value = excluded.value`,
		userID, field, value)
}

func (w *SQLiteWriter) UpsertCohort(ctx context.Context, id int64, name, idNumber string) error {
	return w.exec(ctx, "cohort", `INSERT INTO cohorts (id, name, idnumber) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, idnumber = excluded.idnumber`,
		id, name, idNumber)
}

func (w *SQLiteWriter) AddCohortMember(ctx context.Context, cohortID, userID int64, added time.Time) error {
	return w.exec(ctx, "cohort member", `INSERT INTO cohort_members (cohort_id, user_id, time_added) VALUES (?, ?, ?)
		ON CONFLICT(cohort_id, user_id) DO UPDATE SET time_added = excluded.time_added`,
		cohortID, userID, formatTime(added))
}

// AddTenantUser stores the IOMAD managertype; 0 means an ordinary member.
func (w *SQLiteWriter) AddTenantUser(ctx context.Context, tenantID, userID int64, managerType int) error {
	return w.exec(ctx, "tenant user", `INSERT INTO tenant_users (tenant_id, user_id, manager_type) VALUES (?, ?, ?)
		ON CONFLICT(tenant_id, user_id) DO UPDATE SET manager_type = excluded.manager_type`,
		tenantID, userID, managerType)
}

func (w *SQLiteWriter) AssignRole(ctx context.Context, userID int64, role string, courseID int64) error {
	return w.exec(ctx, "role assignment", `INSERT OR IGNORE INTO role_assignments (user_id, role, course_id) VALUES (?, ?, ?)`,
		userID, role, courseID)
}

func (w *SQLiteWriter) UpsertCourse(ctx context.Context, c *domain.Course) error {
	return w.exec(ctx, "course", `INSERT INTO courses (id, shortname, fullname, tenant_id) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET shortname = excluded.shortname, fullname = excluded.fullname,
			tenant_id = excluded.tenant_id`,
		c.ID, c.ShortName, c.FullName, c.TenantID)
}

func (w *SQLiteWriter) UpsertSection(ctx context.Context, s *domain.Section) error {
	return w.exec(ctx, "course section", `INSERT INTO course_sections (id, course_id, section_num, name) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET course_id = excluded.course_id, section_num = excluded.section_num,
			name = excluded.name`,
		s.ID, s.CourseID, s.Number, s.Name)
}

func (w *SQLiteWriter) UpsertActivity(ctx context.Context, a *domain.Activity) error {
	return w.exec(ctx, "activity", `INSERT INTO activities (id, course_id, section_id, name, modname, completion_tracked)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET course_id = excluded.course_id, section_id = excluded.section_id,
			name = excluded.name, modname = excluded.modname, completion_tracked = excluded.completion_tracked`,
		a.ID, a.CourseID, a.SectionID, a.Name, a.ModName, boolToInt(a.Tracked))
}

func (w *SQLiteWriter) UpsertEnrolment(ctx context.Context, e *domain.Enrolment) error {
	return w.exec(ctx, "enrolment", `INSERT INTO enrolments (user_id, course_id, status) VALUES (?, ?, ?)
		ON CONFLICT(user_id, course_id) DO UPDATE SET status = excluded.status`,
		e.UserID, e.CourseID, boolToInt(e.Suspended))
}

func (w *SQLiteWriter) RecordCompletion(ctx context.Context, userID, activityID int64, state domain.CompletionState, grade *float64) error {
	return w.exec(ctx, "activity completion", `INSERT INTO activity_completions (user_id, activity_id, state, grade)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, activity_id) DO UPDATE SET state = excluded.state, grade = excluded.grade`,
		userID, activityID, string(state), nullableFloat(grade))
}
