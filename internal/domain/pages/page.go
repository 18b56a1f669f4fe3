// Package pages holds the Page aggregate and its layout value object.
package pages

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/sitebuilder-backend/internal/domain/aggregates"
	"github.com/yungbote/sitebuilder-backend/internal/domain/components"
	"github.com/yungbote/sitebuilder-backend/internal/domain/events"
)

const (
	maxNameLen = 100
	maxPathLen = 200
	// maxTitleLen matches the pages.title column.
	maxTitleLen = 200
)

// Page is an aggregate root: an ordered list of components plus a layout.
type Page struct {
	events.Recorder

	id          string
	projectID   string
	name        string
	path        string
	title       *string
	components  []*components.Component
	layout      Layout
	isPublished bool
	createdAt   time.Time
	updatedAt   time.Time
}

type NewPageInput struct {
	ProjectID string
	Name      string
	Path      string
	Title     *string
}

// Record is the flat persisted shape of a page.
type Record struct {
	ID          string              `json:"id"`
	ProjectID   string              `json:"project_id"`
	Name        string              `json:"name"`
	Path        string              `json:"path"`
	Title       *string             `json:"title"`
	Components  []components.Record `json:"components"`
	Layout      LayoutRecord        `json:"layout"`
	IsPublished bool                `json:"is_published"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func New(in NewPageInput) (*Page, error) {
	name := strings.TrimSpace(in.Name)
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	path := strings.TrimSpace(in.Path)
	if err := ValidatePath(path); err != nil {
		return nil, err
	}
	if err := ValidateTitle(in.Title); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p := &Page{
		id:        uuid.NewString(),
		projectID: in.ProjectID,
		name:      name,
		path:      path,
		title:     in.Title,
		layout:    DefaultLayout(),
		createdAt: now,
		updatedAt: now,
	}
	p.Raise(events.NewPageCreated(p.id, p.projectID, p.name, p.path))
	return p, nil
}

// Restore rebuilds a page from storage. It raises no events.
func Restore(r Record) (*Page, error) {
	layout, err := RestoreLayout(r.Layout)
	if err != nil {
		return nil, fmt.Errorf("restore page %s layout: %w", r.ID, err)
	}
	comps := make([]*components.Component, 0, len(r.Components))
	for _, c := range r.Components {
		comps = append(comps, components.Restore(c))
	}
	return &Page{
		id:          r.ID,
		projectID:   r.ProjectID,
		name:        r.Name,
		path:        r.Path,
		title:       r.Title,
		components:  comps,
		layout:      layout,
		isPublished: r.IsPublished,
		createdAt:   r.CreatedAt,
		updatedAt:   r.UpdatedAt,
	}, nil
}

// ValidateName trims nothing; callers pass the trimmed name.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domainagg.Validation("name", "page name cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return domainagg.Validation("name", fmt.Sprintf("page name cannot exceed %d characters", maxNameLen))
	}
	return nil
}

func ValidatePath(path string) error {
	if path == "" {
		return domainagg.Validation("path", "page path cannot be empty")
	}
	if !strings.HasPrefix(path, "/") {
		return domainagg.Validation("path", "page path must start with /")
	}
	if utf8.RuneCountInString(path) > maxPathLen {
		return domainagg.Validation("path", fmt.Sprintf("page path cannot exceed %d characters", maxPathLen))
	}
	return nil
}

// ValidateTitle accepts nil, which clears the title.
func ValidateTitle(title *string) error {
	if title != nil && utf8.RuneCountInString(*title) > maxTitleLen {
		return domainagg.Validation("title", fmt.Sprintf("page title cannot exceed %d characters", maxTitleLen))
	}
	return nil
}

func (p *Page) ID() string           { return p.id }
func (p *Page) ProjectID() string    { return p.projectID }
func (p *Page) Name() string         { return p.name }
func (p *Page) Path() string         { return p.path }
func (p *Page) Layout() Layout       { return p.layout }
func (p *Page) IsPublished() bool    { return p.isPublished }
func (p *Page) CreatedAt() time.Time { return p.createdAt }
func (p *Page) UpdatedAt() time.Time { return p.updatedAt }

func (p *Page) Title() *string {
	if p.title == nil {
		return nil
	}
	t := *p.title
	return &t
}

// Components returns the components in display order. The slice is a copy.
func (p *Page) Components() []*components.Component {
	out := make([]*components.Component, len(p.components))
	copy(out, p.components)
	return out
}

func (p *Page) ComponentCount() int { return len(p.components) }

func (p *Page) Component(id string) (*components.Component, bool) {
	i := p.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return p.components[i], true
}

func (p *Page) indexOf(id string) int {
	for i, c := range p.components {
		if c.ID() == id {
			return i
		}
	}
	return -1
}

func (p *Page) touch() { p.updatedAt = time.Now().UTC() }

func (p *Page) UpdateName(name string) error {
	name = strings.TrimSpace(name)
	if err := ValidateName(name); err != nil {
		return err
	}
	old := p.name
	p.name = name
	p.touch()
	p.Raise(events.NewPageRenamed(p.id, old, name))
	return nil
}

func (p *Page) UpdatePath(path string) error {
	path = strings.TrimSpace(path)
	if err := ValidatePath(path); err != nil {
		return err
	}
	old := p.path
	p.path = path
	p.touch()
	p.Raise(events.NewPagePathChanged(p.id, old, path))
	return nil
}

// UpdateTitle sets or clears the title.
func (p *Page) UpdateTitle(title *string) error {
	if err := ValidateTitle(title); err != nil {
		return err
	}
	if title != nil {
		t := *title
		title = &t
	}
	p.title = title
	p.touch()
	p.Raise(events.NewPageTitleChanged(p.id, p.Title()))
	return nil
}

func (p *Page) UpdateLayout(l Layout) {
	p.layout = l
	p.touch()
	p.Raise(events.NewPageLayoutUpdated(p.id, l.MaxWidth().String(), string(l.Padding()), string(l.Spacing())))
}

// AddComponent validates and inserts a component. A position outside
// [0, len] appends.
func (p *Page) AddComponent(t components.Type, raw map[string]any, position *int) (*components.Component, error) {
	c, err := components.New(t, raw)
	if err != nil {
		return nil, err
	}
	at := len(p.components)
	if position != nil && *position >= 0 && *position <= len(p.components) {
		at = *position
	}
	p.components = append(p.components, nil)
	copy(p.components[at+1:], p.components[at:])
	p.components[at] = c
	p.touch()
	p.Raise(events.NewComponentAdded(p.id, c.ID(), string(c.Type()), at))
	return c, nil
}

// AppendComponent places an existing component at the end without validation.
// Used when copying pages.
func (p *Page) AppendComponent(c *components.Component) {
	p.components = append(p.components, c)
	p.touch()
	p.Raise(events.NewComponentAdded(p.id, c.ID(), string(c.Type()), len(p.components)-1))
}

func (p *Page) RemoveComponent(id string) error {
	i := p.indexOf(id)
	if i < 0 {
		return domainagg.NotFound("component", id)
	}
	c := p.components[i]
	p.components = append(p.components[:i], p.components[i+1:]...)
	p.touch()
	p.Raise(events.NewComponentRemoved(p.id, id, string(c.Type())))
	return nil
}

func (p *Page) UpdateComponent(id string, raw map[string]any) error {
	i := p.indexOf(id)
	if i < 0 {
		return domainagg.NotFound("component", id)
	}
	if err := p.components[i].UpdateProps(raw); err != nil {
		return err
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	p.touch()
	p.Raise(events.NewComponentUpdated(p.id, id, keys))
	return nil
}

// ReorderComponents requires ids to be exactly a permutation of the current
// component ids. On failure the order is untouched.
func (p *Page) ReorderComponents(ids []string) error {
	current := make(map[string]*components.Component, len(p.components))
	for _, c := range p.components {
		current[c.ID()] = c
	}
	seen := make(map[string]bool, len(ids))
	var unknown, dupes []string
	for _, id := range ids {
		if _, ok := current[id]; !ok {
			unknown = append(unknown, id)
			continue
		}
		if seen[id] {
			dupes = append(dupes, id)
		}
		seen[id] = true
	}
	var missing []string
	for _, c := range p.components {
		if !seen[c.ID()] {
			missing = append(missing, c.ID())
		}
	}
	switch {
	case len(missing) > 0:
		return domainagg.Validation("component_ids", "component order is incomplete, missing components: "+strings.Join(missing, ", "))
	case len(unknown) > 0:
		return domainagg.Validation("component_ids", "component order references unknown components: "+strings.Join(unknown, ", "))
	case len(dupes) > 0:
		return domainagg.Validation("component_ids", "component order lists components more than once: "+strings.Join(dupes, ", "))
	}
	next := make([]*components.Component, 0, len(ids))
	for _, id := range ids {
		next = append(next, current[id])
	}
	p.components = next
	p.touch()
	order := make([]string, len(ids))
	copy(order, ids)
	p.Raise(events.NewComponentsReordered(p.id, order))
	return nil
}

func (p *Page) Publish() error {
	if len(p.components) == 0 {
		return domainagg.Invariant("page needs at least one component to be published")
	}
	p.isPublished = true
	p.touch()
	p.Raise(events.NewPagePublished(p.id, p.projectID))
	return nil
}

func (p *Page) Unpublish() {
	p.isPublished = false
	p.touch()
	p.Raise(events.NewPageUnpublished(p.id, p.projectID))
}

func (p *Page) Record() Record {
	comps := make([]components.Record, 0, len(p.components))
	for _, c := range p.components {
		comps = append(comps, c.Record())
	}
	return Record{
		ID:          p.id,
		ProjectID:   p.projectID,
		Name:        p.name,
		Path:        p.path,
		Title:       p.Title(),
		Components:  comps,
		Layout:      p.layout.Record(),
		IsPublished: p.isPublished,
		CreatedAt:   p.createdAt,
		UpdatedAt:   p.updatedAt,
	}
}
