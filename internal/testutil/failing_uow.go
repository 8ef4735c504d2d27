package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/clockwork/internal/db"
)

// FailOnNthExecUoW injects Err on the Nth ExecContext call inside each
// transaction (counting from 1), then rolls back. Reads pass through. A
// FailOn of 0 never fails. Disable lets a test heal the store mid-run.
type FailOnNthExecUoW struct {
	DB      *sql.DB
	FailOn  int32
	Err     error
	Disable atomic.Bool
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	failOn := u.FailOn
	if u.Disable.Load() {
		failOn = 0
	}
	wrapped := &failOnNthExec{DBTX: tx, failOn: failOn, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.count.Add(1)
	if f.failOn > 0 && n == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
