package services

import (
	"github.com/yungbote/sitebuilder-backend/internal/domain/components"
	"github.com/yungbote/sitebuilder-backend/internal/domain/pages"
	"github.com/yungbote/sitebuilder-backend/internal/domain/projects"
)

// Every command and query carries the caller's UserID for ownership checks.

type CreateProjectCommand struct {
	UserID      string
	Name        string
	Description *string
	Config      *projects.ConfigRecord
}

// UpdateProjectCommand applies only the non-nil fields.
type UpdateProjectCommand struct {
	ProjectID   string
	UserID      string
	Name        *string
	Description *string
	Config      *projects.ConfigRecord
}

type ProjectCommand struct {
	ProjectID string
	UserID    string
}

// DuplicateProjectCommand copies a project with all of its pages. An empty
// NewName derives "<name> (Copy)".
type DuplicateProjectCommand struct {
	SourceProjectID string
	UserID          string
	NewName         string
	NewDescription  *string
}

type GetUserProjectsQuery struct {
	UserID string
	Page   int
	Limit  int
	Search string
	Status projects.Status
}

// LayoutInput overrides the fields that are set and keeps the rest.
type LayoutInput struct {
	MaxWidth *pages.MaxWidth `json:"max_width"`
	Padding  pages.Padding   `json:"padding"`
	Spacing  pages.Spacing   `json:"spacing"`
}

type CreatePageCommand struct {
	ProjectID string
	UserID    string
	Name      string
	Path      string
	Title     *string
	Layout    *LayoutInput
}

type UpdatePageCommand struct {
	PageID string
	UserID string
	Name   *string
	Path   *string
	Title  *string
	Layout *LayoutInput
}

type PageCommand struct {
	PageID string
	UserID string
}

type AddComponentCommand struct {
	PageID        string
	UserID        string
	ComponentType components.Type
	Props         map[string]any
	Position      *int
}

type UpdateComponentCommand struct {
	PageID      string
	ComponentID string
	UserID      string
	Props       map[string]any
}

type RemoveComponentCommand struct {
	PageID      string
	ComponentID string
	UserID      string
}

type ReorderComponentsCommand struct {
	PageID       string
	UserID       string
	ComponentIDs []string
}

// CopyPageCommand copies a page into TargetProjectID, or into its own
// project when that is empty. Empty NewName and NewPath derive defaults.
type CopyPageCommand struct {
	SourcePageID    string
	TargetProjectID string
	UserID          string
	NewName         string
	NewPath         string
}

type BulkSetPublishedCommand struct {
	ProjectID string
	UserID    string
	PageIDs   []string
	Published bool
}

type GetProjectPagesQuery struct {
	ProjectID          string
	UserID             string
	Page               int
	Limit              int
	Search             string
	IncludeUnpublished bool
}

type RegisterCommand struct {
	Email    string
	Username string
	Password string
}

// LoginCommand accepts either the email or the username in Login.
type LoginCommand struct {
	Login    string
	Password string
}
