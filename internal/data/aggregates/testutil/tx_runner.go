package testutil

import (
	"context"
	"sync"

	"github.com/yungbote/sitebuilder-backend/internal/data/aggregates"
	"github.com/yungbote/sitebuilder-backend/internal/platform/dbctx"
)

// InjectedTxRunner runs fn without a database and counts transaction
// outcomes. FailCommit turns a successful body into a rolled back one.
type InjectedTxRunner struct {
	mu sync.Mutex

	FailBegin  error
	FailCommit error

	Begins    int
	Commits   int
	Rollbacks int
}

var _ aggregates.TxRunner = (*InjectedTxRunner)(nil)

func (r *InjectedTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	r.Begins++
	failBegin, failCommit := r.FailBegin, r.FailCommit
	r.mu.Unlock()

	if failBegin != nil {
		return failBegin
	}
	var err error
	if fn != nil {
		err = fn(dbctx.Context{Ctx: ctx})
	}
	if err == nil {
		err = failCommit
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.Rollbacks++
		return err
	}
	r.Commits++
	return nil
}

// Snapshot returns the counters under lock.
func (r *InjectedTxRunner) Snapshot() (begins, commits, rollbacks int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Begins, r.Commits, r.Rollbacks
}
