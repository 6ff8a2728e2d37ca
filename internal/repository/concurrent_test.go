package repository_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/remuikids/kidsboard/internal/domain"
	"github.com/remuikids/kidsboard/internal/repository"
	"github.com/remuikids/kidsboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFileTestStore creates a file-backed store so that every pooled connection
// sees the same data under WAL.
func newFileTestStore(t *testing.T) *testutil.TestStore {
	t.Helper()
	return testutil.OpenTestStore(t, filepath.Join(t.TempDir(), "concurrent_test.db"))
}

// TestConcurrentAccess_FactsReadDuringCompletionWrites runs dashboard reads
// while completions are being recorded. Every read must see exactly one fact
// per tracked activity, whatever the write progress.
func TestConcurrentAccess_FactsReadDuringCompletionWrites(t *testing.T) {
	ts := newFileTestStore(t)
	database, school := ts.DB, ts.School
	ctx := context.Background()

	kid := school.User("kid")
	course := school.Course("MATH3", nil)
	sec := school.Section(course, 1, "Numbers")
	var acts []*domain.Activity
	for i := 0; i < 20; i++ {
		acts = append(acts, school.Activity(sec, fmt.Sprintf("Quiz %d", i)))
	}

	writer := repository.NewSQLiteWriter(database)
	facts := repository.NewSQLiteCompletionRepo(database)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for _, a := range acts {
			if err := writer.RecordCompletion(ctx, kid.ID, a.ID, domain.CompletionComplete, nil); err != nil {
				t.Errorf("writer: record completion %d: %v", a.ID, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				got, err := facts.ListFacts(ctx, kid.ID, []int64{course.ID})
				if err != nil {
					t.Errorf("reader %d: list facts: %v", reader, err)
					return
				}
				if len(got) != len(acts) {
					t.Errorf("reader %d: expected %d facts, got %d", reader, len(acts), len(got))
				}
			}
		}(r)
	}

	wg.Wait()

	got, err := facts.ListFacts(ctx, kid.ID, []int64{course.ID})
	require.NoError(t, err)
	for _, f := range got {
		assert.Equal(t, domain.CompletionComplete, f.State)
	}
}

func TestConcurrentAccess_TenantReads(t *testing.T) {
	ts := newFileTestStore(t)
	database, school := ts.DB, ts.School
	ctx := context.Background()

	tenant := school.Tenant("Hillside")
	const members = 15
	for i := 0; i < members; i++ {
		u := school.User(fmt.Sprintf("member%02d", i))
		school.Member(tenant, u)
		school.Role(u, "student")
	}

	store := repository.NewSQLiteStore(database)
	var wg sync.WaitGroup
	for r := 0; r < 20; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			ms, err := store.Tenants.ListMemberships(ctx, tenant.ID)
			if err != nil {
				t.Errorf("reader %d: list memberships: %v", reader, err)
				return
			}
			if len(ms) != members {
				t.Errorf("reader %d: expected %d memberships, got %d", reader, members, len(ms))
			}
			users, err := store.Users.ListByTenant(ctx, tenant.ID)
			if err != nil {
				t.Errorf("reader %d: list users: %v", reader, err)
				return
			}
			if len(users) != members {
				t.Errorf("reader %d: expected %d users, got %d", reader, members, len(users))
			}
		}(r)
	}
	wg.Wait()
}
