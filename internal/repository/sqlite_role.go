package repository

import (
	"context"
	"fmt"

	"github.com/remuikids/kidsboard/internal/db"
)

// SQLiteRoleRepo implements RoleRepo using a SQLite database.
type SQLiteRoleRepo struct {
	db db.DBTX
}

func NewSQLiteRoleRepo(conn db.DBTX) *SQLiteRoleRepo {
	return &SQLiteRoleRepo{db: conn}
}

func (r *SQLiteRoleRepo) ListByUser(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT role FROM role_assignments WHERE user_id = ? ORDER BY course_id, role`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing roles by user: %w", err)
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("scanning role: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating roles: %w", err)
	}
	return roles, nil
}
