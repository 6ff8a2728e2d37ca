package repository

import (
	"context"
	"fmt"

	"github.com/remuikids/kidsboard/internal/db"
	"github.com/remuikids/kidsboard/internal/domain"
)

// SQLiteCohortRepo implements CohortRepo using a SQLite database.
type SQLiteCohortRepo struct {
	db db.DBTX
}

func NewSQLiteCohortRepo(conn db.DBTX) *SQLiteCohortRepo {
	return &SQLiteCohortRepo{db: conn}
}

func (r *SQLiteCohortRepo) ListByUser(ctx context.Context, userID int64) ([]domain.CohortMembership, error) {
	query := `SELECT m.user_id, c.id, c.name, m.time_added
		FROM cohort_members m
		JOIN cohorts c ON c.id = m.cohort_id
		WHERE m.user_id = ?
		ORDER BY m.time_added DESC, c.id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing cohorts by user: %w", err)
	}
	defer rows.Close()

	var out []domain.CohortMembership
	for rows.Next() {
		var m domain.CohortMembership
		var addedStr string
		if err := rows.Scan(&m.UserID, &m.CohortID, &m.CohortName, &addedStr); err != nil {
			return nil, fmt.Errorf("scanning cohort membership: %w", err)
		}
		m.TimeAdded = parseTime(addedStr)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cohort memberships: %w", err)
	}
	return out, nil
}
