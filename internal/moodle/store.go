// Package moodle reads dashboard inputs straight from a live IOMAD Moodle
// PostgreSQL database. It never writes.
package moodle

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/remuikids/kidsboard/internal/repository"
)

// DefaultPrefix is Moodle's default table prefix.
const DefaultPrefix = "mdl_"

// Querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ Querier = (*pgxpool.Pool)(nil)
	_ Querier = (pgx.Tx)(nil)
)

var (
	prefixPattern = regexp.MustCompile(`^[a-z0-9_]*$`)
	tablePattern  = regexp.MustCompile(`\{([a-z_]+)\}`)
)

// Store runs prefix-expanded queries against one Moodle database.
type Store struct {
	q      Querier
	prefix string
	pool   *pgxpool.Pool
}

// New wraps an existing querier. An empty prefix means DefaultPrefix.
func New(q Querier, prefix string) (*Store, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if !prefixPattern.MatchString(prefix) {
		return nil, fmt.Errorf("invalid table prefix %q", prefix)
	}
	return &Store{q: q, prefix: prefix}, nil
}

// Open connects a pool to dsn and checks the connection.
func Open(ctx context.Context, dsn, prefix string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("moodle dsn is empty")
	}
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing moodle dsn: %w", err)
	}
	config.ConnConfig.RuntimeParams["application_name"] = "kidsboard"
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connecting to moodle: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging moodle: %w", err)
	}
	s, err := New(pool, prefix)
	if err != nil {
		pool.Close()
		return nil, err
	}
	s.pool = pool
	return s, nil
}

// Close releases the pool opened by Open. It is a no-op for stores built with New.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) Prefix() string { return s.prefix }

// expand rewrites {table} placeholders into prefixed table names.
func (s *Store) expand(query string) string {
	return tablePattern.ReplaceAllString(query, s.prefix+"${1}")
}

// Repositories exposes the store through the repository interfaces.
func (s *Store) Repositories() repository.Store {
	return repository.Store{
		Cohorts:     &CohortRepo{s: s},
		Profiles:    &ProfileRepo{s: s},
		Completions: &CompletionRepo{s: s},
		Tenants:     &TenantRepo{s: s},
		Roles:       &RoleRepo{s: s},
		Enrolments:  &EnrolmentRepo{s: s},
		Courses:     &CourseRepo{s: s},
		Users:       &UserRepo{s: s},
	}
}
