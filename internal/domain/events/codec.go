package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Envelope is the wire form of an event. Data holds the variant's own fields.
type Envelope struct {
	EventID     string          `json:"event_id"`
	EventType   Type            `json:"event_type"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Data        json.RawMessage `json:"data"`
}

// Encode builds the envelope for any event.
func Encode(e Event) (Envelope, error) {
	if e == nil {
		return Envelope{}, fmt.Errorf("encode event: nil event")
	}
	data, err := json.Marshal(e)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s: %w", e.Type(), err)
	}
	m := e.Meta()
	return Envelope{
		EventID:     m.EventID,
		EventType:   e.Type(),
		AggregateID: m.AggregateID,
		OccurredAt:  m.OccurredAt,
		Data:        data,
	}, nil
}

func Marshal(e Event) ([]byte, error) {
	env, err := Encode(e)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}

// Unmarshal decodes an envelope produced by Marshal back into its variant.
func Unmarshal(raw []byte) (Event, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return Decode(env)
}

func Decode(env Envelope) (Event, error) {
	meta := Metadata{EventID: env.EventID, AggregateID: env.AggregateID, OccurredAt: env.OccurredAt}
	switch env.EventType {
	case TypePageCreated:
		return decodeInto(env, func(e *PageCreated) { e.Metadata = meta })
	case TypePageRenamed:
		return decodeInto(env, func(e *PageRenamed) { e.Metadata = meta })
	case TypePagePathChanged:
		return decodeInto(env, func(e *PagePathChanged) { e.Metadata = meta })
	case TypePageTitleChanged:
		return decodeInto(env, func(e *PageTitleChanged) { e.Metadata = meta })
	case TypePageLayoutUpdated:
		return decodeInto(env, func(e *PageLayoutUpdated) { e.Metadata = meta })
	case TypePagePublished:
		return decodeInto(env, func(e *PagePublished) { e.Metadata = meta })
	case TypePageUnpublished:
		return decodeInto(env, func(e *PageUnpublished) { e.Metadata = meta })
	case TypePageDeleted:
		return decodeInto(env, func(e *PageDeleted) { e.Metadata = meta })
	case TypeComponentAdded:
		return decodeInto(env, func(e *ComponentAdded) { e.Metadata = meta })
	case TypeComponentRemoved:
		return decodeInto(env, func(e *ComponentRemoved) { e.Metadata = meta })
	case TypeComponentUpdated:
		return decodeInto(env, func(e *ComponentUpdated) { e.Metadata = meta })
	case TypeComponentsReordered:
		return decodeInto(env, func(e *ComponentsReordered) { e.Metadata = meta })
	case TypeProjectCreated:
		return decodeInto(env, func(e *ProjectCreated) { e.Metadata = meta })
	case TypeProjectNameChanged:
		return decodeInto(env, func(e *ProjectNameChanged) { e.Metadata = meta })
	case TypeProjectDescChanged:
		return decodeInto(env, func(e *ProjectDescriptionChanged) { e.Metadata = meta })
	case TypeProjectConfigUpdated:
		return decodeInto(env, func(e *ProjectConfigUpdated) { e.Metadata = meta })
	case TypeProjectPublished:
		return decodeInto(env, func(e *ProjectPublished) { e.Metadata = meta })
	case TypeProjectArchived:
		return decodeInto(env, func(e *ProjectArchived) { e.Metadata = meta })
	case TypeProjectDeleted:
		return decodeInto(env, func(e *ProjectDeleted) { e.Metadata = meta })
	case TypePageAddedToProject:
		return decodeInto(env, func(e *PageAddedToProject) { e.Metadata = meta })
	case TypePageRemovedFromProject:
		return decodeInto(env, func(e *PageRemovedFromProject) { e.Metadata = meta })
	default:
		return nil, fmt.Errorf("decode envelope: unknown event type %q", env.EventType)
	}
}

func decodeInto[T Event](env Envelope, setMeta func(*T)) (Event, error) {
	var out T
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &out); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.EventType, err)
		}
	}
	setMeta(&out)
	return out, nil
}
