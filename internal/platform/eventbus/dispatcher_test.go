package eventbus

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yungbote/sitebuilder-backend/internal/domain/events"
	"github.com/yungbote/sitebuilder-backend/internal/platform/logger"
)

func TestDispatchRunsEveryHandlerDespiteFailures(t *testing.T) {
	d := NewDispatcher(logger.NewNop())
	var calls int32
	d.Register(events.TypePagePublished, HandlerFunc(func(context.Context, events.Event) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("boom")
	}))
	d.Register(events.TypePagePublished, HandlerFunc(func(context.Context, events.Event) error {
		atomic.AddInt32(&calls, 1)
		panic("handler exploded")
	}))
	d.Register(events.TypePagePublished, HandlerFunc(func(context.Context, events.Event) error {
		atomic.AddInt32(&calls, 1)
		return nil
	}))

	d.Dispatch(context.Background(), events.NewPagePublished("p1", "proj1"))

	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("handler calls: want=3 got=%d", got)
	}
}

func TestDispatchRunsHandlersConcurrently(t *testing.T) {
	d := NewDispatcher(logger.NewNop())
	var wg sync.WaitGroup
	wg.Add(2)
	meet := func(context.Context, events.Event) error {
		wg.Done()
		done := make(chan struct{})
		go func() { wg.Wait(); close(done) }()
		select {
		case <-done:
			return nil
		case <-time.After(2 * time.Second):
			return errors.New("handlers did not overlap")
		}
	}
	var failed int32
	for i := 0; i < 2; i++ {
		d.Register(events.TypePageCreated, HandlerFunc(func(ctx context.Context, e events.Event) error {
			if err := meet(ctx, e); err != nil {
				atomic.AddInt32(&failed, 1)
			}
			return nil
		}))
	}
	d.Dispatch(context.Background(), events.NewPageCreated("p", "proj", "Home", "/"))
	if failed != 0 {
		t.Fatalf("expected concurrent handlers")
	}
}

func TestDispatchEventsIsSequential(t *testing.T) {
	d := NewDispatcher(logger.NewNop())
	var mu sync.Mutex
	var seen []events.Type
	record := HandlerFunc(func(_ context.Context, e events.Event) error {
		time.Sleep(5 * time.Millisecond)
		mu.Lock()
		seen = append(seen, e.Type())
		mu.Unlock()
		return nil
	})
	RegisterAll(d, record)

	d.DispatchEvents(context.Background(), []events.Event{
		events.NewPageCreated("p", "proj", "Home", "/"),
		events.NewComponentAdded("p", "c", "Text", 0),
		events.NewPagePublished("p", "proj"),
	})
	want := []events.Type{events.TypePageCreated, events.TypeComponentAdded, events.TypePagePublished}
	if len(seen) != len(want) {
		t.Fatalf("seen: want=%v got=%v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("order: want=%v got=%v", want, seen)
		}
	}
}

func TestRegistryIntrospection(t *testing.T) {
	d := NewDispatcher(logger.NewNop())
	d.Dispatch(context.Background(), events.NewProjectArchived("x", "u"))
	h := NewLogHandler(logger.NewNop())
	d.Register(events.TypeProjectArchived, h)
	d.Register(events.TypeProjectArchived, h)
	d.Register(events.TypeProjectCreated, h)
	if got := d.HandlerCount(events.TypeProjectArchived); got != 2 {
		t.Fatalf("HandlerCount: want=2 got=%d", got)
	}
	if got := d.RegisteredTypes(); len(got) != 2 {
		t.Fatalf("RegisteredTypes: got=%v", got)
	}
	d.Clear()
	if got := d.RegisteredTypes(); len(got) != 0 {
		t.Fatalf("after Clear: got=%v", got)
	}
}
