package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/remuikids/kidsboard/internal/db"
	"github.com/remuikids/kidsboard/internal/domain"
)

// SQLiteCompletionRepo implements CompletionRepo using a SQLite database.
type SQLiteCompletionRepo struct {
	db db.DBTX
}

func NewSQLiteCompletionRepo(conn db.DBTX) *SQLiteCompletionRepo {
	return &SQLiteCompletionRepo{db: conn}
}

func (r *SQLiteCompletionRepo) ListFacts(ctx context.Context, userID int64, courseIDs []int64) ([]domain.CompletionFact, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}
	marks, args := inClause(courseIDs)
	query := `SELECT a.id, a.section_id, a.course_id, COALESCE(c.state, 'not_started'), c.grade
		FROM activities a
		LEFT JOIN activity_completions c ON c.activity_id = a.id AND c.user_id = ?
		WHERE a.completion_tracked = 1 AND a.course_id IN (` + marks + `)
		ORDER BY a.course_id, a.section_id, a.id`
	rows, err := r.db.QueryContext(ctx, query, append([]any{userID}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("listing completion facts: %w", err)
	}
	defer rows.Close()

	var facts []domain.CompletionFact
	for rows.Next() {
		f := domain.CompletionFact{UserID: userID}
		var state string
		var grade sql.NullFloat64
		if err := rows.Scan(&f.ActivityID, &f.SectionID, &f.CourseID, &state, &grade); err != nil {
			return nil, fmt.Errorf("scanning completion fact: %w", err)
		}
		f.State = domain.CompletionState(state)
		f.Grade = floatPtr(grade)
		facts = append(facts, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating completion facts: %w", err)
	}
	return facts, nil
}
