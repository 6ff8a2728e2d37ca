package testutil

import (
	"database/sql"
	"testing"

	"github.com/remuikids/kidsboard/internal/db"
	"github.com/remuikids/kidsboard/internal/repository"
	"github.com/stretchr/testify/require"
)

// TestStore is a kidsboard store with the schema applied. School seeds it and
// Repos reads it back over the same *sql.DB; UoW runs import transactions.
type TestStore struct {
	DB     *sql.DB
	UoW    db.UnitOfWork
	Repos  repository.Store
	School *School
}

// NewTestStore opens an empty in-memory store, closed when the test completes.
func NewTestStore(t *testing.T) *TestStore {
	t.Helper()
	return OpenTestStore(t, ":memory:")
}

// OpenTestStore is NewTestStore over a database file, for tests whose readers
// need their own pooled connections.
func OpenTestStore(t *testing.T, path string) *TestStore {
	t.Helper()
	database, err := db.OpenDB(path)
	require.NoError(t, err, "opening test store %s", path)
	t.Cleanup(func() { database.Close() })

	return &TestStore{
		DB:     database,
		UoW:    db.NewSQLiteUnitOfWork(database),
		Repos:  repository.NewSQLiteStore(database),
		School: NewSchool(t, database),
	}
}
