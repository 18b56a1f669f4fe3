package aggregates

import (
	"strings"
	"time"

	"github.com/yungbote/sitebuilder-backend/internal/platform/logger"
)

// Hooks receives one signal per aggregate write.
type Hooks interface {
	ObserveOperation(name, status string, dur time.Duration)
	IncConflict(name string)
	IncRetry(name string)
}

type noopHooks struct{}

func (noopHooks) ObserveOperation(string, string, time.Duration) {}
func (noopHooks) IncConflict(string)                             {}
func (noopHooks) IncRetry(string)                                {}

type logHooks struct {
	log  *logger.Logger
	slow time.Duration
}

// NewLogHooks logs failed and slow writes. Successful writes below slow are
// logged at debug level only.
func NewLogHooks(log *logger.Logger, slow time.Duration) Hooks {
	if log == nil {
		return noopHooks{}
	}
	if slow <= 0 {
		slow = time.Second
	}
	return &logHooks{log: log.With("component", "AggregateWrites"), slow: slow}
}

func (h *logHooks) ObserveOperation(name, status string, dur time.Duration) {
	name = strings.TrimSpace(name)
	switch {
	case status != "success":
		h.log.Warn("aggregate write failed", "op", name, "status", status, "duration_ms", dur.Milliseconds())
	case dur >= h.slow:
		h.log.Warn("slow aggregate write", "op", name, "duration_ms", dur.Milliseconds())
	default:
		h.log.Debug("aggregate write", "op", name, "duration_ms", dur.Milliseconds())
	}
}

func (h *logHooks) IncConflict(name string) {
	h.log.Info("aggregate write conflict", "op", strings.TrimSpace(name))
}

func (h *logHooks) IncRetry(name string) {
	h.log.Info("aggregate write retryable failure", "op", strings.TrimSpace(name))
}
