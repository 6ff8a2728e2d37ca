package moodle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/remuikids/kidsboard/internal/domain"
	"github.com/remuikids/kidsboard/internal/repository"
)

const (
	cohortsByUserSQL = `SELECT cm.userid, c.id, c.name, cm.timeadded
		FROM {cohort_members} cm
		JOIN {cohort} c ON c.id = cm.cohortid
		WHERE cm.userid = $1
		ORDER BY cm.timeadded DESC, c.id`

	profileFieldSQL = `SELECT d.data
		FROM {user_info_data} d
		JOIN {user_info_field} f ON f.id = d.fieldid
		WHERE d.userid = $1 AND f.shortname = $2`

	completionFactsSQL = `SELECT cm.id, cm.section, cm.course, cmc.completionstate::int
		FROM {course_modules} cm
		LEFT JOIN {course_modules_completion} cmc ON cmc.coursemoduleid = cm.id AND cmc.userid = $1
		WHERE cm.course = ANY($2) AND cm.completion > 0 AND cm.deletioninprogress = 0
		ORDER BY cm.course, cm.section, cm.id`

	tenantByIDSQL = `SELECT id, name, shortname FROM {company} WHERE id = $1`

	tenantsSQL = `SELECT id, name, shortname FROM {company} ORDER BY name, id`

	membershipsSQL = `SELECT userid, companyid, managertype::int
		FROM {company_users}
		WHERE companyid = $1
		ORDER BY userid`

	rolesByUserSQL = `SELECT r.shortname
		FROM {role_assignments} ra
		JOIN {role} r ON r.id = ra.roleid
		WHERE ra.userid = $1
		ORDER BY ra.contextid, r.shortname`

	activeUsersSQL = `SELECT DISTINCT ue.userid
		FROM {user_enrolments} ue
		JOIN {enrol} e ON e.id = ue.enrolid
		JOIN {user} u ON u.id = ue.userid
		WHERE ue.userid = ANY($1) AND ue.status = 0 AND e.status = 0
		  AND u.suspended = 0 AND u.deleted = 0
		ORDER BY ue.userid`

	enrolledCoursesSQL = `SELECT c.id, c.shortname, c.fullname,
			COALESCE((SELECT MIN(cc.companyid) FROM {company_course} cc WHERE cc.courseid = c.id), 0)
		FROM {course} c
		WHERE EXISTS (
			SELECT 1 FROM {user_enrolments} ue
			JOIN {enrol} e ON e.id = ue.enrolid
			WHERE e.courseid = c.id AND ue.userid = $1 AND ue.status = 0 AND e.status = 0
		)
		ORDER BY c.id`

	sectionsSQL = `SELECT id, course, section::int, COALESCE(name, '')
		FROM {course_sections}
		WHERE course = ANY($1)
		ORDER BY course, section, id`

	userColumns = `u.id, u.username, u.firstname, u.lastname, u.email, u.suspended::int`

	userByIDSQL = `SELECT ` + userColumns + ` FROM {user} u WHERE u.id = $1 AND u.deleted = 0`

	usersByTenantSQL = `SELECT ` + userColumns + `
		FROM {user} u
		JOIN {company_users} cu ON cu.userid = u.id
		WHERE cu.companyid = $1 AND u.deleted = 0
		ORDER BY u.lastname, u.firstname, u.id`
)

// completionState maps course_modules_completion.completionstate.
// 1 (complete) and 2 (complete pass) count as complete, 0 (incomplete) and
// 3 (complete fail) as in progress; no row means not started.
func completionState(raw *int) domain.CompletionState {
	if raw == nil {
		return domain.CompletionNotStarted
	}
	switch *raw {
	case 1, 2:
		return domain.CompletionComplete
	default:
		return domain.CompletionInProgress
	}
}

type CohortRepo struct{ s *Store }

func (r *CohortRepo) ListByUser(ctx context.Context, userID int64) ([]domain.CohortMembership, error) {
	rows, err := r.s.q.Query(ctx, r.s.expand(cohortsByUserSQL), userID)
	if err != nil {
		return nil, fmt.Errorf("listing cohorts by user: %w", err)
	}
	defer rows.Close()

	var out []domain.CohortMembership
	for rows.Next() {
		var m domain.CohortMembership
		var added int64
		if err := rows.Scan(&m.UserID, &m.CohortID, &m.CohortName, &added); err != nil {
			return nil, fmt.Errorf("scanning cohort membership: %w", err)
		}
		m.TimeAdded = time.Unix(added, 0).UTC()
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cohort memberships: %w", err)
	}
	return out, nil
}

type ProfileRepo struct{ s *Store }

func (r *ProfileRepo) GetField(ctx context.Context, userID int64, field string) (*string, error) {
	var value string
	err := r.s.q.QueryRow(ctx, r.s.expand(profileFieldSQL), userID, field).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading profile field %q: %w", field, err)
	}
	return &value, nil
}

type CompletionRepo struct{ s *Store }

func (r *CompletionRepo) ListFacts(ctx context.Context, userID int64, courseIDs []int64) ([]domain.CompletionFact, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}
	rows, err := r.s.q.Query(ctx, r.s.expand(completionFactsSQL), userID, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("listing completion facts: %w", err)
	}
	defer rows.Close()

	var facts []domain.CompletionFact
	for rows.Next() {
		f := domain.CompletionFact{UserID: userID}
		var state *int
		if err := rows.Scan(&f.ActivityID, &f.SectionID, &f.CourseID, &state); err != nil {
			return nil, fmt.Errorf("scanning completion fact: %w", err)
		}
		f.State = completionState(state)
		facts = append(facts, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating completion facts: %w", err)
	}
	return facts, nil
}

type TenantRepo struct{ s *Store }

func (r *TenantRepo) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	var t domain.Tenant
	err := r.s.q.QueryRow(ctx, r.s.expand(tenantByIDSQL), id).Scan(&t.ID, &t.Name, &t.ShortName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("company %d: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning company: %w", err)
	}
	return &t, nil
}

func (r *TenantRepo) List(ctx context.Context) ([]*domain.Tenant, error) {
	rows, err := r.s.q.Query(ctx, r.s.expand(tenantsSQL))
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	defer rows.Close()

	var out []*domain.Tenant
	for rows.Next() {
		var t domain.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.ShortName); err != nil {
			return nil, fmt.Errorf("scanning company: %w", err)
		}
		out = append(out, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating companies: %w", err)
	}
	return out, nil
}

func (r *TenantRepo) ListMemberships(ctx context.Context, tenantID int64) ([]domain.TenantMembership, error) {
	rows, err := r.s.q.Query(ctx, r.s.expand(membershipsSQL), tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing company users: %w", err)
	}
	defer rows.Close()

	var out []domain.TenantMembership
	for rows.Next() {
		var m domain.TenantMembership
		var managerType int
		if err := rows.Scan(&m.UserID, &m.TenantID, &managerType); err != nil {
			return nil, fmt.Errorf("scanning company user: %w", err)
		}
		m.Kind = domain.KindFromManagerType(managerType)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating company users: %w", err)
	}
	return out, nil
}

type RoleRepo struct{ s *Store }

func (r *RoleRepo) ListByUser(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.s.q.Query(ctx, r.s.expand(rolesByUserSQL), userID)
	if err != nil {
		return nil, fmt.Errorf("listing role assignments: %w", err)
	}
	roles, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning role assignments: %w", err)
	}
	return roles, nil
}

type EnrolmentRepo struct{ s *Store }

func (r *EnrolmentRepo) ListActiveUsers(ctx context.Context, userIDs []int64) ([]int64, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	rows, err := r.s.q.Query(ctx, r.s.expand(activeUsersSQL), userIDs)
	if err != nil {
		return nil, fmt.Errorf("listing active users: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("scanning active users: %w", err)
	}
	return ids, nil
}

type CourseRepo struct{ s *Store }

func (r *CourseRepo) ListEnrolled(ctx context.Context, userID int64) ([]*domain.Course, error) {
	rows, err := r.s.q.Query(ctx, r.s.expand(enrolledCoursesSQL), userID)
	if err != nil {
		return nil, fmt.Errorf("listing enrolled courses: %w", err)
	}
	defer rows.Close()

	var out []*domain.Course
	for rows.Next() {
		var c domain.Course
		if err := rows.Scan(&c.ID, &c.ShortName, &c.FullName, &c.TenantID); err != nil {
			return nil, fmt.Errorf("scanning course: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating courses: %w", err)
	}
	return out, nil
}

func (r *CourseRepo) ListSections(ctx context.Context, courseIDs []int64) ([]*domain.Section, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}
	rows, err := r.s.q.Query(ctx, r.s.expand(sectionsSQL), courseIDs)
	if err != nil {
		return nil, fmt.Errorf("listing course sections: %w", err)
	}
	defer rows.Close()

	var out []*domain.Section
	for rows.Next() {
		var sec domain.Section
		if err := rows.Scan(&sec.ID, &sec.CourseID, &sec.Number, &sec.Name); err != nil {
			return nil, fmt.Errorf("scanning course section: %w", err)
		}
		out = append(out, &sec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating course sections: %w", err)
	}
	return out, nil
}

type UserRepo struct{ s *Store }

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, err := scanUser(r.s.q.QueryRow(ctx, r.s.expand(userByIDSQL), id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return u, nil
}

func (r *UserRepo) ListByTenant(ctx context.Context, tenantID int64) ([]*domain.User, error) {
	rows, err := r.s.q.Query(ctx, r.s.expand(usersByTenantSQL), tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing company users: %w", err)
	}
	defer rows.Close()

	var out []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return out, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var suspended int
	if err := row.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &suspended); err != nil {
		return nil, err
	}
	u.Suspended = suspended != 0
	return &u, nil
}

var (
	_ repository.CohortRepo     = (*CohortRepo)(nil)
	_ repository.ProfileRepo    = (*ProfileRepo)(nil)
	_ repository.CompletionRepo = (*CompletionRepo)(nil)
	_ repository.TenantRepo     = (*TenantRepo)(nil)
	_ repository.RoleRepo       = (*RoleRepo)(nil)
	_ repository.EnrolmentRepo  = (*EnrolmentRepo)(nil)
	_ repository.CourseRepo     = (*CourseRepo)(nil)
	_ repository.UserRepo       = (*UserRepo)(nil)
)
