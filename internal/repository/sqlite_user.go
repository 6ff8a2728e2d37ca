package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/remuikids/kidsboard/internal/db"
	"github.com/remuikids/kidsboard/internal/domain"
)

// SQLiteUserRepo implements UserRepo using a SQLite database.
type SQLiteUserRepo struct {
	db db.DBTX
}

func NewSQLiteUserRepo(conn db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: conn}
}

const userColumns = `u.id, u.username, u.firstname, u.lastname, u.email, u.suspended`

func (r *SQLiteUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = ?`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return u, nil
}

func (r *SQLiteUserRepo) ListByTenant(ctx context.Context, tenantID int64) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users u
		JOIN tenant_users t ON t.user_id = u.id
		WHERE t.tenant_id = ?
		ORDER BY u.lastname, u.firstname, u.id`
	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing users by tenant: %w", err)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var suspended int
	if err := row.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &suspended); err != nil {
		return nil, err
	}
	u.Suspended = intToBool(suspended)
	return &u, nil
}
