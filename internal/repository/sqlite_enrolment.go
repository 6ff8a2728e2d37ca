package repository

import (
	"context"
	"fmt"

	"github.com/remuikids/kidsboard/internal/db"
)

// SQLiteEnrolmentRepo implements EnrolmentRepo using a SQLite database.
type SQLiteEnrolmentRepo struct {
	db db.DBTX
}

func NewSQLiteEnrolmentRepo(conn db.DBTX) *SQLiteEnrolmentRepo {
	return &SQLiteEnrolmentRepo{db: conn}
}

// ListActiveUsers treats status 0 as active, matching Moodle's ENROL_USER_ACTIVE.
// Suspended accounts are never active.
func (r *SQLiteEnrolmentRepo) ListActiveUsers(ctx context.Context, userIDs []int64) ([]int64, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	marks, args := inClause(userIDs)
	query := `SELECT DISTINCT e.user_id
		FROM enrolments e
		JOIN users u ON u.id = e.user_id
		WHERE e.status = 0 AND u.suspended = 0 AND e.user_id IN (` + marks + `)
		ORDER BY e.user_id`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing active users: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning active user: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating active users: %w", err)
	}
	return ids, nil
}
