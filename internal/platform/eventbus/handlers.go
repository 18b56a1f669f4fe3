package eventbus

import (
	"context"

	"github.com/yungbote/sitebuilder-backend/internal/domain/events"
	"github.com/yungbote/sitebuilder-backend/internal/platform/logger"
)

// NewLogHandler writes one structured line per event.
func NewLogHandler(log *logger.Logger) Handler {
	log = log.With("handler", "EventLog")
	return HandlerFunc(func(_ context.Context, e events.Event) error {
		kv := []interface{}{
			"event_type", e.Type(),
			"event_id", e.Meta().EventID,
			"aggregate_id", e.Meta().AggregateID,
		}
		switch ev := e.(type) {
		case events.ProjectCreated:
			kv = append(kv, "user_id", ev.UserID, "name", ev.Name)
		case events.ProjectPublished:
			kv = append(kv, "user_id", ev.UserID)
		case events.ProjectArchived:
			kv = append(kv, "user_id", ev.UserID)
		case events.ProjectDeleted:
			kv = append(kv, "user_id", ev.UserID)
		case events.PageCreated:
			kv = append(kv, "project_id", ev.ProjectID, "path", ev.Path)
		case events.PagePublished:
			kv = append(kv, "project_id", ev.ProjectID)
		case events.ComponentAdded:
			kv = append(kv, "component_type", ev.ComponentType, "position", ev.Position)
		}
		log.Info("Domain event", kv...)
		return nil
	})
}

// RegisterAll subscribes h to every event type.
func RegisterAll(d Dispatcher, h Handler) {
	for _, t := range events.AllTypes() {
		d.Register(t, h)
	}
}
