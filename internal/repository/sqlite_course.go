package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/remuikids/kidsboard/internal/db"
	"github.com/remuikids/kidsboard/internal/domain"
)

// SQLiteCourseRepo implements CourseRepo using a SQLite database.
type SQLiteCourseRepo struct {
	db db.DBTX
}

func NewSQLiteCourseRepo(conn db.DBTX) *SQLiteCourseRepo {
	return &SQLiteCourseRepo{db: conn}
}

// ListEnrolled returns courses with an active enrolment for the user, ordered by id.
func (r *SQLiteCourseRepo) ListEnrolled(ctx context.Context, userID int64) ([]*domain.Course, error) {
	query := `SELECT c.id, c.shortname, c.fullname, c.tenant_id
		FROM courses c
		JOIN enrolments e ON e.course_id = c.id
		WHERE e.user_id = ? AND e.status = 0
		ORDER BY c.id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing enrolled courses: %w", err)
	}
	defer rows.Close()
	return scanCourses(rows)
}

func (r *SQLiteCourseRepo) ListSections(ctx context.Context, courseIDs []int64) ([]*domain.Section, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}
	marks, args := inClause(courseIDs)
	query := `SELECT id, course_id, section_num, name FROM course_sections
		WHERE course_id IN (` + marks + `)
		ORDER BY course_id, section_num, id`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing course sections: %w", err)
	}
	defer rows.Close()

	var out []*domain.Section
	for rows.Next() {
		var s domain.Section
		if err := rows.Scan(&s.ID, &s.CourseID, &s.Number, &s.Name); err != nil {
			return nil, fmt.Errorf("scanning course section: %w", err)
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating course sections: %w", err)
	}
	return out, nil
}

func scanCourses(rows *sql.Rows) ([]*domain.Course, error) {
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
