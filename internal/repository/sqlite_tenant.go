package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/remuikids/kidsboard/internal/db"
	"github.com/remuikids/kidsboard/internal/domain"
)

// SQLiteTenantRepo implements TenantRepo using a SQLite database.
type SQLiteTenantRepo struct {
	db db.DBTX
}

func NewSQLiteTenantRepo(conn db.DBTX) *SQLiteTenantRepo {
	return &SQLiteTenantRepo{db: conn}
}

func (r *SQLiteTenantRepo) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	query := `SELECT id, name, shortname FROM tenants WHERE id = ?`
	var t domain.Tenant
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.ShortName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tenant %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning tenant: %w", err)
	}
	return &t, nil
}

func (r *SQLiteTenantRepo) List(ctx context.Context) ([]*domain.Tenant, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, shortname FROM tenants ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing tenants: %w", err)
	}
	defer rows.Close()

	var out []*domain.Tenant
	for rows.Next() {
		var t domain.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.ShortName); err != nil {
			return nil, fmt.Errorf("scanning tenant: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (r *SQLiteTenantRepo) ListMemberships(ctx context.Context, tenantID int64) ([]domain.TenantMembership, error) {
	query := `SELECT user_id, tenant_id, manager_type FROM tenant_users WHERE tenant_id = ? ORDER BY user_id`
	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing tenant memberships: %w", err)
	}
	defer rows.Close()

	var out []domain.TenantMembership
	for rows.Next() {
		var m domain.TenantMembership
		var managerType int
		if err := rows.Scan(&m.UserID, &m.TenantID, &managerType); err != nil {
			return nil, fmt.Errorf("scanning tenant membership: %w", err)
		}
		m.Kind = domain.KindFromManagerType(managerType)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tenant memberships: %w", err)
	}
	return out, nil
}
