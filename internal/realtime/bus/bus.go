// Package bus relays domain events to other backend instances over Redis pub/sub.
package bus

import (
	"context"

	"github.com/yungbote/sitebuilder-backend/internal/domain/events"
)

type Bus interface {
	Publish(ctx context.Context, e events.Event) error
	// StartForwarder subscribes and calls onEvent for every decoded event until
	// ctx is done.
	StartForwarder(ctx context.Context, onEvent func(events.Event)) error
	Close() error
}
