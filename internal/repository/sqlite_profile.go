package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/remuikids/kidsboard/internal/db"
)

// SQLiteProfileRepo implements ProfileRepo using a SQLite database.
type SQLiteProfileRepo struct {
	db db.DBTX
}

func NewSQLiteProfileRepo(conn db.DBTX) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: conn}
}

func (r *SQLiteProfileRepo) GetField(ctx context.Context, userID int64, field string) (*string, error) {
	query := `SELECT value FROM user_profile_fields WHERE user_id = ? AND field = ?`
	var value string
	err := r.db.QueryRowContext(ctx, query, userID, field).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading profile field %q: %w", field, err)
	}
	return &value, nil
}
