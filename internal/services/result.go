package services

import (
	"context"

	domainagg "github.com/yungbote/sitebuilder-backend/internal/domain/aggregates"
	"github.com/yungbote/sitebuilder-backend/internal/domain/events"
	"github.com/yungbote/sitebuilder-backend/internal/platform/eventbus"
)

// Result is the outcome of a use case. Business failures are reported here;
// infrastructure failures come back as the error return instead.
type Result[T any] struct {
	Success bool                `json:"success"`
	Data    T                   `json:"data,omitempty"`
	Error   string              `json:"error,omitempty"`
	Code    domainagg.ErrorCode `json:"code,omitempty"`
}

func ok[T any](data T) (Result[T], error) {
	return Result[T]{Success: true, Data: data}, nil
}

// settle turns a domain error into a failed result and passes anything else
// through as an error.
func settle[T any](err error) (Result[T], error) {
	if domainagg.IsDomain(err) {
		return Result[T]{Error: domainagg.MessageOf(err), Code: domainagg.CodeOf(err)}, nil
	}
	return Result[T]{}, err
}

// Empty is the payload of commands that return nothing.
type Empty struct{}

type eventSource interface {
	PendingEvents() []events.Event
	ClearEvents()
}

// publish hands pending events to the dispatcher. It runs after commit only.
func publish(ctx context.Context, d eventbus.Dispatcher, srcs ...eventSource) {
	for _, src := range srcs {
		if src == nil {
			continue
		}
		if d != nil {
			d.DispatchEvents(ctx, src.PendingEvents())
		}
		src.ClearEvents()
	}
}
