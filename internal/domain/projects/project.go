// Package projects holds the Project aggregate and its configuration values.
package projects

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/sitebuilder-backend/internal/domain/aggregates"
	"github.com/yungbote/sitebuilder-backend/internal/domain/events"
	"github.com/yungbote/sitebuilder-backend/internal/domain/pages"
)

const maxNameLen = 100

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
	StatusArchived  Status = "ARCHIVED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	default:
		return false
	}
}

// Project is an aggregate root owning a set of pages.
//
// Pages are not persisted with the project. Callers that evaluate page rules
// (publishing, adding a page) first load the project's pages with AttachPages.
type Project struct {
	events.Recorder

	id          string
	name        string
	description *string
	userID      string
	status      Status
	config      Config
	pages       []*pages.Page
	createdAt   time.Time
	updatedAt   time.Time
}

type NewProjectInput struct {
	UserID      string
	Name        string
	Description *string
	Config      *Config
}

// Record is the persisted shape of a project. Pages live in their own table.
type Record struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	UserID      string       `json:"user_id"`
	Status      Status       `json:"status"`
	Config      ConfigRecord `json:"config"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func New(in NewProjectInput) (*Project, error) {
	name := strings.TrimSpace(in.Name)
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.UserID) == "" {
		return nil, domainagg.Validation("user_id", "project owner is required")
	}
	cfg := DefaultConfig()
	if in.Config != nil {
		cfg = *in.Config
	}
	now := time.Now().UTC()
	p := &Project{
		id:          uuid.NewString(),
		name:        name,
		description: copyString(in.Description),
		userID:      in.UserID,
		status:      StatusDraft,
		config:      cfg,
		createdAt:   now,
		updatedAt:   now,
	}
	p.Raise(events.NewProjectCreated(p.id, p.userID, p.name))
	return p, nil
}

// Restore rebuilds a project from storage without raising events.
func Restore(r Record) (*Project, error) {
	cfg, err := NewConfig(r.Config)
	if err != nil {
		return nil, fmt.Errorf("restore project %s config: %w", r.ID, err)
	}
	status := r.Status
	if !status.Valid() {
		status = StatusDraft
	}
	return &Project{
		id:          r.ID,
		name:        r.Name,
		description: copyString(r.Description),
		userID:      r.UserID,
		status:      status,
		config:      cfg,
		createdAt:   r.CreatedAt,
		updatedAt:   r.UpdatedAt,
	}, nil
}

func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domainagg.Validation("name", "project name cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return domainagg.Validation("name", fmt.Sprintf("project name cannot exceed %d characters", maxNameLen))
	}
	return nil
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func (p *Project) ID() string           { return p.id }
func (p *Project) Name() string         { return p.name }
func (p *Project) Description() *string { return copyString(p.description) }
func (p *Project) UserID() string       { return p.userID }
func (p *Project) Status() Status       { return p.status }
func (p *Project) Config() Config       { return p.config }
func (p *Project) CreatedAt() time.Time { return p.createdAt }
func (p *Project) UpdatedAt() time.Time { return p.updatedAt }

// IsOwnedBy reports whether userID owns the project.
func (p *Project) IsOwnedBy(userID string) bool { return p.userID == userID }

// Pages returns the attached pages. The slice is a copy.
func (p *Project) Pages() []*pages.Page {
	return append([]*pages.Page(nil), p.pages...)
}

// AttachPages replaces the in-memory page set with pages loaded from storage.
func (p *Project) AttachPages(ps []*pages.Page) {
	p.pages = append([]*pages.Page(nil), ps...)
}

func (p *Project) touch() { p.updatedAt = time.Now().UTC() }

func (p *Project) UpdateName(name string) error {
	name = strings.TrimSpace(name)
	if err := ValidateName(name); err != nil {
		return err
	}
	old := p.name
	p.name = name
	p.touch()
	p.Raise(events.NewProjectNameChanged(p.id, old, name))
	return nil
}

func (p *Project) UpdateDescription(desc *string) {
	p.description = copyString(desc)
	p.touch()
	p.Raise(events.NewProjectDescriptionChanged(p.id, p.Description()))
}

func (p *Project) UpdateConfig(cfg Config) {
	p.config = cfg
	p.touch()
	p.Raise(events.NewProjectConfigUpdated(p.id, p.userID))
}

// AddPage creates a page inside this project. Paths are unique among the
// attached pages.
func (p *Project) AddPage(name, path string, title *string) (*pages.Page, error) {
	path = strings.TrimSpace(path)
	for _, existing := range p.pages {
		if existing.Path() == path {
			return nil, domainagg.Conflict(fmt.Sprintf("page path %s already exists in this project", path))
		}
	}
	page, err := pages.New(pages.NewPageInput{ProjectID: p.id, Name: name, Path: path, Title: title})
	if err != nil {
		return nil, err
	}
	p.pages = append(p.pages, page)
	p.touch()
	p.Raise(events.NewPageAddedToProject(p.id, page.ID()))
	return page, nil
}

func (p *Project) RemovePage(pageID string) error {
	for i, pg := range p.pages {
		if pg.ID() == pageID {
			p.pages = append(p.pages[:i], p.pages[i+1:]...)
			p.touch()
			p.Raise(events.NewPageRemovedFromProject(p.id, pageID))
			return nil
		}
	}
	return domainagg.NotFound("page", pageID)
}

// Publish requires at least one attached page, one of which is published.
func (p *Project) Publish() error {
	if len(p.pages) == 0 {
		return domainagg.Invariant("project needs at least one page to be published")
	}
	published := false
	for _, pg := range p.pages {
		if pg.IsPublished() {
			published = true
			break
		}
	}
	if !published {
		return domainagg.Invariant("project needs at least one published page")
	}
	p.status = StatusPublished
	p.touch()
	p.Raise(events.NewProjectPublished(p.id, p.userID))
	return nil
}

// Archive always succeeds, including on an already archived project.
func (p *Project) Archive() {
	p.status = StatusArchived
	p.touch()
	p.Raise(events.NewProjectArchived(p.id, p.userID))
}

func (p *Project) Record() Record {
	return Record{
		ID:          p.id,
		Name:        p.name,
		Description: p.Description(),
		UserID:      p.userID,
		Status:      p.status,
		Config:      p.config.Record(),
		CreatedAt:   p.createdAt,
		UpdatedAt:   p.updatedAt,
	}
}
