// Package eventbus fans domain events out to in-process handlers.
package eventbus

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/sitebuilder-backend/internal/domain/events"
	"github.com/yungbote/sitebuilder-backend/internal/platform/logger"
)

// Handler reacts to one event. Returned errors are logged, never propagated.
type Handler interface {
	Handle(ctx context.Context, e events.Event) error
}

type HandlerFunc func(ctx context.Context, e events.Event) error

func (f HandlerFunc) Handle(ctx context.Context, e events.Event) error { return f(ctx, e) }

type Dispatcher interface {
	Register(t events.Type, h Handler)
	// Dispatch runs every handler registered for e.Type() concurrently and
	// waits for all of them. Handler failures do not reach the caller.
	Dispatch(ctx context.Context, e events.Event)
	// DispatchEvents dispatches in order; each event settles before the next.
	DispatchEvents(ctx context.Context, evs []events.Event)
	RegisteredTypes() []events.Type
	HandlerCount(t events.Type) int
	Clear()
}

type dispatcher struct {
	log *logger.Logger

	mu       sync.RWMutex
	handlers map[events.Type][]Handler
}

func NewDispatcher(log *logger.Logger) Dispatcher {
	return &dispatcher{
		log:      log.With("service", "EventDispatcher"),
		handlers: map[events.Type][]Handler{},
	}
}

func (d *dispatcher) Register(t events.Type, h Handler) {
	if h == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[t] = append(d.handlers[t], h)
}

func (d *dispatcher) snapshot(t events.Type) []Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]Handler(nil), d.handlers[t]...)
}

func (d *dispatcher) Dispatch(ctx context.Context, e events.Event) {
	if e == nil {
		return
	}
	hs := d.snapshot(e.Type())
	if len(hs) == 0 {
		d.log.Debug("No handlers for event", "event_type", e.Type())
		return
	}

	ctx, span := otel.Tracer("eventbus").Start(ctx, "dispatch "+string(e.Type()))
	defer span.End()
	span.SetAttributes(
		attribute.String("event.id", e.Meta().EventID),
		attribute.String("event.aggregate_id", e.Meta().AggregateID),
		attribute.Int("event.handlers", len(hs)),
	)

	var (
		g        errgroup.Group
		failedMu sync.Mutex
		failed   int
	)
	for i, h := range hs {
		i, h := i, h
		g.Go(func() error {
			if err := d.run(ctx, h, e); err != nil {
				failedMu.Lock()
				failed++
				failedMu.Unlock()
				d.log.Error("Event handler failed",
					"event_type", e.Type(),
					"event_id", e.Meta().EventID,
					"handler", i,
					"error", err,
				)
			}
			return nil
		})
	}
	_ = g.Wait()
	if failed > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%d handler(s) failed", failed))
	}
}

// run isolates one handler so a panic is reported like an error.
func (d *dispatcher) run(ctx context.Context, h Handler, e events.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h.Handle(ctx, e)
}

func (d *dispatcher) DispatchEvents(ctx context.Context, evs []events.Event) {
	for _, e := range evs {
		d.Dispatch(ctx, e)
	}
}

func (d *dispatcher) RegisteredTypes() []events.Type {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]events.Type, 0, len(d.handlers))
	for t, hs := range d.handlers {
		if len(hs) > 0 {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (d *dispatcher) HandlerCount(t events.Type) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.handlers[t])
}

func (d *dispatcher) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = map[events.Type][]Handler{}
}
