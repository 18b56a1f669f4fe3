package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/sitebuilder-backend/internal/platform/dbctx"
)

func TestInjectedTxRunnerCounts(t *testing.T) {
	cases := []struct {
		name       string
		runner     *InjectedTxRunner
		body       error
		wantErr    bool
		wantCommit int
		wantRoll   int
	}{
		{name: "commit", runner: &InjectedTxRunner{}, wantCommit: 1},
		{name: "body error", runner: &InjectedTxRunner{}, body: errors.New("boom"), wantErr: true, wantRoll: 1},
		{name: "commit failure", runner: &InjectedTxRunner{FailCommit: errors.New("commit")}, wantErr: true, wantRoll: 1},
		{name: "begin failure", runner: &InjectedTxRunner{FailBegin: errors.New("begin")}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.runner.InTx(context.Background(), func(_ dbctx.Context) error { return tc.body })
			if (err != nil) != tc.wantErr {
				t.Fatalf("err: want=%v got=%v", tc.wantErr, err)
			}
			begins, commits, rollbacks := tc.runner.Snapshot()
			if begins != 1 || commits != tc.wantCommit || rollbacks != tc.wantRoll {
				t.Fatalf("counters: want=1/%d/%d got=%d/%d/%d", tc.wantCommit, tc.wantRoll, begins, commits, rollbacks)
			}
		})
	}
}
