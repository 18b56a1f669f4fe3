package pages

import (
	"reflect"
	"strings"
	"testing"

	domainagg "github.com/yungbote/sitebuilder-backend/internal/domain/aggregates"
	"github.com/yungbote/sitebuilder-backend/internal/domain/components"
	"github.com/yungbote/sitebuilder-backend/internal/domain/events"
)

func newTestPage(t *testing.T) *Page {
	t.Helper()
	p, err := New(NewPageInput{ProjectID: "proj-1", Name: "Home", Path: "/home"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func addText(t *testing.T, p *Page, content string) *components.Component {
	t.Helper()
	c, err := p.AddComponent(components.TypeText, map[string]any{"content": content}, nil)
	if err != nil {
		t.Fatalf("AddComponent: %v", err)
	}
	return c
}

func ids(p *Page) []string {
	out := []string{}
	for _, c := range p.Components() {
		out = append(out, c.ID())
	}
	return out
}

func TestNewPageValidatesAndRaisesCreated(t *testing.T) {
	p := newTestPage(t)
	evs := p.PendingEvents()
	if len(evs) != 1 || evs[0].Type() != events.TypePageCreated {
		t.Fatalf("want one PageCreated event, got %v", evs)
	}
	created := evs[0].(events.PageCreated)
	if created.ProjectID != "proj-1" || created.Path != "/home" || created.Meta().AggregateID != p.ID() {
		t.Fatalf("unexpected event payload: %+v", created)
	}

	bad := []NewPageInput{
		{ProjectID: "p", Name: "   ", Path: "/x"},
		{ProjectID: "p", Name: strings.Repeat("n", 101), Path: "/x"},
		{ProjectID: "p", Name: "ok", Path: "x"},
		{ProjectID: "p", Name: "ok", Path: ""},
		{ProjectID: "p", Name: "ok", Path: "/" + strings.Repeat("p", 200)},
	}
	for _, in := range bad {
		if _, err := New(in); !domainagg.IsCode(err, domainagg.CodeValidation) {
			t.Fatalf("New(%+v): want validation error, got %v", in, err)
		}
	}
}

func TestTitleLengthIsBounded(t *testing.T) {
	long := strings.Repeat("t", 201)
	if _, err := New(NewPageInput{ProjectID: "p", Name: "ok", Path: "/ok", Title: &long}); !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("New with 201-char title: want validation error, got %v", err)
	}

	p := newTestPage(t)
	p.ClearEvents()
	if err := p.UpdateTitle(&long); !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("UpdateTitle 201 chars: want validation error, got %v", err)
	}
	if p.Title() != nil || len(p.PendingEvents()) != 0 {
		t.Fatalf("rejected title must leave page unchanged: title=%v events=%d", p.Title(), len(p.PendingEvents()))
	}

	edge := strings.Repeat("é", 200)
	if err := p.UpdateTitle(&edge); err != nil {
		t.Fatalf("UpdateTitle 200 runes: %v", err)
	}
	if err := p.UpdateTitle(nil); err != nil || p.Title() != nil {
		t.Fatalf("clear title: err=%v title=%v", err, p.Title())
	}
}

func TestPublishRequiresComponent(t *testing.T) {
	p := newTestPage(t)
	err := p.Publish()
	if !domainagg.IsCode(err, domainagg.CodeInvariantViolation) {
		t.Fatalf("Publish empty page: want invariant violation, got %v", err)
	}
	if p.IsPublished() {
		t.Fatalf("page must stay unpublished")
	}
	addText(t, p, "hello")
	if err := p.Publish(); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !p.IsPublished() {
		t.Fatalf("expected published")
	}
	p.Unpublish()
	if p.IsPublished() {
		t.Fatalf("expected unpublished")
	}
}

func TestAddComponentPosition(t *testing.T) {
	p := newTestPage(t)
	a := addText(t, p, "a")
	b := addText(t, p, "b")
	zero := 0
	c, err := p.AddComponent(components.TypeDivider, nil, &zero)
	if err != nil {
		t.Fatalf("AddComponent: %v", err)
	}
	if got, want := ids(p), []string{c.ID(), a.ID(), b.ID()}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order: want=%v got=%v", want, got)
	}
	far := 42
	d, err := p.AddComponent(components.TypeDivider, nil, &far)
	if err != nil {
		t.Fatalf("AddComponent: %v", err)
	}
	if got := ids(p); got[len(got)-1] != d.ID() {
		t.Fatalf("out of range position must append, got %v", got)
	}
	evs := p.PendingEvents()
	added := evs[3].(events.ComponentAdded)
	if added.Position != 0 || added.ComponentType != "Divider" {
		t.Fatalf("unexpected ComponentAdded: %+v", added)
	}
}

func TestAddComponentRejectsBadProps(t *testing.T) {
	p := newTestPage(t)
	if _, err := p.AddComponent(components.TypeImage, map[string]any{"src": "ftp://x"}, nil); err == nil {
		t.Fatalf("expected validation error")
	}
	if p.ComponentCount() != 0 {
		t.Fatalf("nothing should be added on failure")
	}
}

func TestReorderComponents(t *testing.T) {
	p := newTestPage(t)
	a := addText(t, p, "a")
	b := addText(t, p, "b")
	c := addText(t, p, "c")
	before := ids(p)

	failures := [][]string{
		{a.ID(), b.ID()},
		{a.ID(), b.ID(), "ghost"},
		{a.ID(), b.ID(), c.ID(), "ghost"},
		{a.ID(), a.ID(), b.ID(), c.ID()},
	}
	for _, order := range failures {
		if err := p.ReorderComponents(order); !domainagg.IsCode(err, domainagg.CodeValidation) {
			t.Fatalf("Reorder(%v): want validation error, got %v", order, err)
		}
		if got := ids(p); !reflect.DeepEqual(got, before) {
			t.Fatalf("failed reorder changed order: want=%v got=%v", before, got)
		}
	}

	err := p.ReorderComponents([]string{a.ID(), b.ID()})
	if msg := domainagg.MessageOf(err); !strings.Contains(msg, c.ID()) {
		t.Fatalf("missing-id message must name %s, got %q", c.ID(), msg)
	}

	want := []string{c.ID(), a.ID(), b.ID()}
	if err := p.ReorderComponents(want); err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	if got := ids(p); !reflect.DeepEqual(got, want) {
		t.Fatalf("order: want=%v got=%v", want, got)
	}
}

func TestRemoveAndUpdateComponent(t *testing.T) {
	p := newTestPage(t)
	a := addText(t, p, "a")
	if err := p.UpdateComponent(a.ID(), map[string]any{"size": "large"}); err != nil {
		t.Fatalf("UpdateComponent: %v", err)
	}
	got, _ := p.Component(a.ID())
	if got.Props().Values()["size"] != "large" {
		t.Fatalf("size not updated")
	}
	if err := p.UpdateComponent("nope", nil); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("UpdateComponent(nope): want not found, got %v", err)
	}
	if err := p.RemoveComponent("nope"); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("RemoveComponent(nope): want not found, got %v", err)
	}
	if err := p.RemoveComponent(a.ID()); err != nil {
		t.Fatalf("RemoveComponent: %v", err)
	}
	if p.ComponentCount() != 0 {
		t.Fatalf("component not removed")
	}
	evs := p.PendingEvents()
	last := evs[len(evs)-1].(events.ComponentRemoved)
	if last.ComponentID != a.ID() || last.ComponentType != "Text" {
		t.Fatalf("unexpected ComponentRemoved: %+v", last)
	}
}

func TestEveryMutationRaisesAnEvent(t *testing.T) {
	p := newTestPage(t)
	p.ClearEvents()
	title := "Welcome"
	if err := p.UpdateName("Start"); err != nil {
		t.Fatalf("UpdateName: %v", err)
	}
	if err := p.UpdatePath("/start"); err != nil {
		t.Fatalf("UpdatePath: %v", err)
	}
	if err := p.UpdateTitle(&title); err != nil {
		t.Fatalf("UpdateTitle: %v", err)
	}
	p.UpdateLayout(DefaultLayout())
	want := []events.Type{events.TypePageRenamed, events.TypePagePathChanged, events.TypePageTitleChanged, events.TypePageLayoutUpdated}
	var got []events.Type
	for _, e := range p.PendingEvents() {
		got = append(got, e.Type())
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("events: want=%v got=%v", want, got)
	}
	if err := p.UpdatePath("no-slash"); err == nil {
		t.Fatalf("expected path validation error")
	}
	if p.Path() != "/start" {
		t.Fatalf("failed update changed path: %q", p.Path())
	}
}

func TestRecordRoundTrip(t *testing.T) {
	p := newTestPage(t)
	addText(t, p, "a")
	if _, err := p.AddComponent(components.TypeButton, map[string]any{"text": "Go"}, nil); err != nil {
		t.Fatalf("AddComponent: %v", err)
	}
	full := FullWidth()
	l, _ := NewLayout(LayoutConfig{MaxWidth: &full})
	p.UpdateLayout(l)
	if err := p.Publish(); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	back, err := Restore(p.Record())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if len(back.PendingEvents()) != 0 {
		t.Fatalf("restored page must have no pending events")
	}
	if !reflect.DeepEqual(back.Record(), p.Record()) {
		t.Fatalf("round trip mismatch:\nwant=%+v\ngot=%+v", p.Record(), back.Record())
	}
}

func TestRenderDataFallsBackToName(t *testing.T) {
	p := newTestPage(t)
	addText(t, p, "hi")
	rd := p.RenderData()
	if rd.Meta.Title != "Home" || rd.Meta.Path != "/home" {
		t.Fatalf("meta: %+v", rd.Meta)
	}
	if len(rd.Components) != 1 || rd.Components[0].Type != components.TypeText {
		t.Fatalf("components: %+v", rd.Components)
	}
	title := "Welcome"
	if err := p.UpdateTitle(&title); err != nil {
		t.Fatalf("UpdateTitle: %v", err)
	}
	if got := p.RenderData().Meta.Title; got != "Welcome" {
		t.Fatalf("title: want=Welcome got=%q", got)
	}
}
