package testutil

import (
	"sync"
	"time"

	"github.com/yungbote/sitebuilder-backend/internal/data/aggregates"
)

// HooksRecorder collects hook calls for assertions.
type HooksRecorder struct {
	mu sync.Mutex

	Operations []Operation
	Conflicts  []string
	Retries    []string
}

type Operation struct {
	Name   string
	Status string
}

var _ aggregates.Hooks = (*HooksRecorder)(nil)

func (h *HooksRecorder) ObserveOperation(name, status string, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Operations = append(h.Operations, Operation{Name: name, Status: status})
}

func (h *HooksRecorder) IncConflict(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Conflicts = append(h.Conflicts, name)
}

func (h *HooksRecorder) IncRetry(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Retries = append(h.Retries, name)
}

// Ops returns the recorded operation names in order.
func (h *HooksRecorder) Ops() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.Operations))
	for _, op := range h.Operations {
		out = append(out, op.Name)
	}
	return out
}
