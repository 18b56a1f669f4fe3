package events

import (
	"reflect"
	"testing"
)

func sampleEvents() []Event {
	title := "Welcome"
	return []Event{
		NewPageCreated("p1", "proj1", "Home", "/"),
		NewPageRenamed("p1", "Home", "Start"),
		NewPagePathChanged("p1", "/", "/start"),
		NewPageTitleChanged("p1", &title),
		NewPageLayoutUpdated("p1", "1200px", "medium", "normal"),
		NewPagePublished("p1", "proj1"),
		NewPageUnpublished("p1", "proj1"),
		NewPageDeleted("p1", "proj1"),
		NewComponentAdded("p1", "c1", "Text", 0),
		NewComponentRemoved("p1", "c1", "Text"),
		NewComponentUpdated("p1", "c1", []string{"content"}),
		NewComponentsReordered("p1", []string{"c2", "c1"}),
		NewProjectCreated("proj1", "u1", "Site"),
		NewProjectNameChanged("proj1", "Site", "Shop"),
		NewProjectDescriptionChanged("proj1", nil),
		NewProjectConfigUpdated("proj1", "u1"),
		NewProjectPublished("proj1", "u1"),
		NewProjectArchived("proj1", "u1"),
		NewProjectDeleted("proj1", "u1"),
		NewPageAddedToProject("proj1", "p1"),
		NewPageRemovedFromProject("proj1", "p1"),
	}
}

func TestEveryTypeHasAVariant(t *testing.T) {
	seen := map[Type]bool{}
	for _, e := range sampleEvents() {
		seen[e.Type()] = true
	}
	for _, typ := range AllTypes() {
		if !seen[typ] {
			t.Fatalf("no sample event for type %q", typ)
		}
	}
}

func TestMarshalUnmarshalPreservesVariant(t *testing.T) {
	for _, e := range sampleEvents() {
		raw, err := Marshal(e)
		if err != nil {
			t.Fatalf("Marshal(%s): %v", e.Type(), err)
		}
		got, err := Unmarshal(raw)
		if err != nil {
			t.Fatalf("Unmarshal(%s): %v", e.Type(), err)
		}
		if got.Type() != e.Type() {
			t.Fatalf("type: want=%q got=%q", e.Type(), got.Type())
		}
		if got.Meta().EventID != e.Meta().EventID || got.Meta().AggregateID != e.Meta().AggregateID {
			t.Fatalf("metadata mismatch for %s: want=%+v got=%+v", e.Type(), e.Meta(), got.Meta())
		}
		if !got.Meta().OccurredAt.Equal(e.Meta().OccurredAt) {
			t.Fatalf("occurred_at mismatch for %s", e.Type())
		}
	}
}

func TestDecodeKeepsPayload(t *testing.T) {
	in := NewComponentUpdated("p1", "c9", []string{"size", "color"})
	raw, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	out, err := Unmarshal(raw)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	cu, ok := out.(ComponentUpdated)
	if !ok {
		t.Fatalf("want ComponentUpdated, got %T", out)
	}
	if cu.ComponentID != "c9" || !reflect.DeepEqual(cu.UpdatedProperties, []string{"size", "color"}) {
		t.Fatalf("payload mismatch: %+v", cu)
	}
}

func TestUnmarshalRejectsUnknownType(t *testing.T) {
	if _, err := Unmarshal([]byte(`{"event_type":"Nope","data":{}}`)); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestRecorderCopiesAndClears(t *testing.T) {
	var r Recorder
	r.Raise(NewPagePublished("p1", "proj1"))
	got := r.PendingEvents()
	got[0] = nil
	if r.PendingEvents()[0] == nil {
		t.Fatalf("PendingEvents must return a copy")
	}
	r.ClearEvents()
	if n := len(r.PendingEvents()); n != 0 {
		t.Fatalf("after ClearEvents: want=0 got=%d", n)
	}
}
