package components

import (
	"time"

	"github.com/google/uuid"
)

// Component is a typed, validated building block placed on a page.
type Component struct {
	id        string
	typ       Type
	props     ComponentProps
	createdAt time.Time
	updatedAt time.Time
}

// Record is the persisted shape of a component.
type Record struct {
	ID        string         `json:"id"`
	Type      Type           `json:"type"`
	Props     map[string]any `json:"props"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// RenderConfig is what a renderer needs to draw a component.
type RenderConfig struct {
	Type  Type           `json:"type"`
	Props map[string]any `json:"props"`
}

func New(t Type, raw map[string]any) (*Component, error) {
	props, err := NewProps(t, raw)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Component{
		id:        uuid.NewString(),
		typ:       t,
		props:     props,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Restore rebuilds a component from storage. Stored props are trusted.
func Restore(r Record) *Component {
	return &Component{
		id:        r.ID,
		typ:       r.Type,
		props:     RestoreProps(r.Type, r.Props),
		createdAt: r.CreatedAt,
		updatedAt: r.UpdatedAt,
	}
}

func (c *Component) ID() string            { return c.id }
func (c *Component) Type() Type            { return c.typ }
func (c *Component) Props() ComponentProps { return c.props }
func (c *Component) CreatedAt() time.Time  { return c.createdAt }
func (c *Component) UpdatedAt() time.Time  { return c.updatedAt }

// UpdateProps merges raw into the current props atomically.
func (c *Component) UpdateProps(raw map[string]any) error {
	if err := c.props.Update(raw); err != nil {
		return err
	}
	c.updatedAt = time.Now().UTC()
	return nil
}

// IsValid is a diagnostic; Props().Validate() returns the reason.
func (c *Component) IsValid() bool {
	return c.props.Validate() == nil
}

func (c *Component) RenderConfig() RenderConfig {
	return RenderConfig{Type: c.typ, Props: c.props.Values()}
}

func (c *Component) Record() Record {
	return Record{
		ID:        c.id,
		Type:      c.typ,
		Props:     c.props.Values(),
		CreatedAt: c.createdAt,
		UpdatedAt: c.updatedAt,
	}
}

// Clone copies the component under a fresh id.
func (c *Component) Clone() *Component {
	now := time.Now().UTC()
	return &Component{
		id:        uuid.NewString(),
		typ:       c.typ,
		props:     RestoreProps(c.typ, c.props.Values()),
		createdAt: now,
		updatedAt: now,
	}
}

func (c *Component) Equal(other *Component) bool {
	return c != nil && other != nil && c.id == other.id
}
