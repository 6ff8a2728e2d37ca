package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sync"

	"github.com/remuikids/kidsboard/internal/db"
)

var insertTable = regexp.MustCompile(`(?i)^\s*INSERT\s+(?:OR\s+\w+\s+)?INTO\s+(\w+)`)

// BrokenTableUoW runs each import in a real transaction but fails the first
// write into Table with Err, so tests can check that the rows written before
// it are rolled back. Written lists the tables of the writes that went through.
type BrokenTableUoW struct {
	DB    *sql.DB
	Table string
	Err   error

	mu      sync.Mutex
	Written []string
}

func (u *BrokenTableUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning import transaction: %w", err)
	}
	if err := fn(ctx, &tableGuard{DBTX: tx, uow: u}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// WrittenTo counts the writes that reached table.
func (u *BrokenTableUoW) WrittenTo(table string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	n := 0
	for _, w := range u.Written {
		if w == table {
			n++
		}
	}
	return n
}

type tableGuard struct {
	db.DBTX
	uow *BrokenTableUoW
}

func (g *tableGuard) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var table string
	if m := insertTable.FindStringSubmatch(query); m != nil {
		table = m[1]
	}
	if table != "" && table == g.uow.Table {
		return nil, g.uow.Err
	}
	res, err := g.DBTX.ExecContext(ctx, query, args...)
	if err == nil && table != "" {
		g.uow.mu.Lock()
		g.uow.Written = append(g.uow.Written, table)
		g.uow.mu.Unlock()
	}
	return res, err
}
