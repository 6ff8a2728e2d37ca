package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/remuikids/kidsboard/internal/domain"
	"github.com/remuikids/kidsboard/internal/repository"
	"github.com/remuikids/kidsboard/internal/testutil"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

func newSchoolStore(t *testing.T) (*sql.DB, repository.Store, *testutil.School) {
	t.Helper()
	ts := testutil.NewTestStore(t)
	return ts.DB, ts.Repos, ts.School
}

// stubCompletions returns canned facts regardless of the query.
type stubCompletions struct {
	facts []domain.CompletionFact
}

func (s stubCompletions) ListFacts(context.Context, int64, []int64) ([]domain.CompletionFact, error) {
	return s.facts, nil
}

func ptrStr(s string) *string { return &s }
