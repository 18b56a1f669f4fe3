// Package events declares every domain event the site builder emits.
//
// Event is a closed set: the unexported marker method keeps implementations
// inside this package, so a type switch over the variants below is exhaustive.
package events

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypePageCreated            Type = "PageCreated"
	TypePageRenamed            Type = "PageRenamed"
	TypePagePathChanged        Type = "PagePathChanged"
	TypePageTitleChanged       Type = "PageTitleChanged"
	TypePageLayoutUpdated      Type = "PageLayoutUpdated"
	TypePagePublished          Type = "PagePublished"
	TypePageUnpublished        Type = "PageUnpublished"
	TypePageDeleted            Type = "PageDeleted"
	TypeComponentAdded         Type = "ComponentAdded"
	TypeComponentRemoved       Type = "ComponentRemoved"
	TypeComponentUpdated       Type = "ComponentUpdated"
	TypeComponentsReordered    Type = "ComponentsReordered"
	TypeProjectCreated         Type = "ProjectCreated"
	TypeProjectNameChanged     Type = "ProjectNameChanged"
	TypeProjectDescChanged     Type = "ProjectDescriptionChanged"
	TypeProjectConfigUpdated   Type = "ProjectConfigUpdated"
	TypeProjectPublished       Type = "ProjectPublished"
	TypeProjectArchived        Type = "ProjectArchived"
	TypeProjectDeleted         Type = "ProjectDeleted"
	TypePageAddedToProject     Type = "PageAddedToProject"
	TypePageRemovedFromProject Type = "PageRemovedFromProject"
)

// AllTypes lists every event type in declaration order.
func AllTypes() []Type {
	return []Type{
		TypePageCreated, TypePageRenamed, TypePagePathChanged, TypePageTitleChanged,
		TypePageLayoutUpdated, TypePagePublished, TypePageUnpublished, TypePageDeleted,
		TypeComponentAdded, TypeComponentRemoved, TypeComponentUpdated, TypeComponentsReordered,
		TypeProjectCreated, TypeProjectNameChanged, TypeProjectDescChanged, TypeProjectConfigUpdated,
		TypeProjectPublished, TypeProjectArchived, TypeProjectDeleted,
		TypePageAddedToProject, TypePageRemovedFromProject,
	}
}

// Metadata is carried by every event.
type Metadata struct {
	EventID     string    `json:"-"`
	AggregateID string    `json:"-"`
	OccurredAt  time.Time `json:"-"`
}

func newMeta(aggregateID string) Metadata {
	return Metadata{
		EventID:     uuid.NewString(),
		AggregateID: aggregateID,
		OccurredAt:  time.Now().UTC(),
	}
}

func (m Metadata) Meta() Metadata { return m }

// Event is implemented only by the variants declared in this package.
type Event interface {
	Meta() Metadata
	Type() Type
	sealed()
}

// ---- page events ----

type PageCreated struct {
	Metadata
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	Path      string `json:"path"`
}

type PageRenamed struct {
	Metadata
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
}

type PagePathChanged struct {
	Metadata
	OldPath string `json:"old_path"`
	NewPath string `json:"new_path"`
}

type PageTitleChanged struct {
	Metadata
	Title *string `json:"title"`
}

type PageLayoutUpdated struct {
	Metadata
	MaxWidth string `json:"max_width"`
	Padding  string `json:"padding"`
	Spacing  string `json:"spacing"`
}

type PagePublished struct {
	Metadata
	ProjectID string `json:"project_id"`
}

type PageUnpublished struct {
	Metadata
	ProjectID string `json:"project_id"`
}

type PageDeleted struct {
	Metadata
	ProjectID string `json:"project_id"`
}

type ComponentAdded struct {
	Metadata
	ComponentID   string `json:"component_id"`
	ComponentType string `json:"component_type"`
	Position      int    `json:"position"`
}

type ComponentRemoved struct {
	Metadata
	ComponentID   string `json:"component_id"`
	ComponentType string `json:"component_type"`
}

type ComponentUpdated struct {
	Metadata
	ComponentID       string   `json:"component_id"`
	UpdatedProperties []string `json:"updated_properties"`
}

type ComponentsReordered struct {
	Metadata
	NewOrder []string `json:"new_order"`
}

// ---- project events ----

type ProjectCreated struct {
	Metadata
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

type ProjectNameChanged struct {
	Metadata
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
}

type ProjectDescriptionChanged struct {
	Metadata
	Description *string `json:"description"`
}

type ProjectConfigUpdated struct {
	Metadata
	UserID string `json:"user_id"`
}

type ProjectPublished struct {
	Metadata
	UserID string `json:"user_id"`
}

type ProjectArchived struct {
	Metadata
	UserID string `json:"user_id"`
}

type ProjectDeleted struct {
	Metadata
	UserID string `json:"user_id"`
}

type PageAddedToProject struct {
	Metadata
	PageID string `json:"page_id"`
}

type PageRemovedFromProject struct {
	Metadata
	PageID string `json:"page_id"`
}

func (PageCreated) Type() Type               { return TypePageCreated }
func (PageRenamed) Type() Type               { return TypePageRenamed }
func (PagePathChanged) Type() Type           { return TypePagePathChanged }
func (PageTitleChanged) Type() Type          { return TypePageTitleChanged }
func (PageLayoutUpdated) Type() Type         { return TypePageLayoutUpdated }
func (PagePublished) Type() Type             { return TypePagePublished }
func (PageUnpublished) Type() Type           { return TypePageUnpublished }
func (PageDeleted) Type() Type               { return TypePageDeleted }
func (ComponentAdded) Type() Type            { return TypeComponentAdded }
func (ComponentRemoved) Type() Type          { return TypeComponentRemoved }
func (ComponentUpdated) Type() Type          { return TypeComponentUpdated }
func (ComponentsReordered) Type() Type       { return TypeComponentsReordered }
func (ProjectCreated) Type() Type            { return TypeProjectCreated }
func (ProjectNameChanged) Type() Type        { return TypeProjectNameChanged }
func (ProjectDescriptionChanged) Type() Type { return TypeProjectDescChanged }
func (ProjectConfigUpdated) Type() Type      { return TypeProjectConfigUpdated }
func (ProjectPublished) Type() Type          { return TypeProjectPublished }
func (ProjectArchived) Type() Type           { return TypeProjectArchived }
func (ProjectDeleted) Type() Type            { return TypeProjectDeleted }
func (PageAddedToProject) Type() Type        { return TypePageAddedToProject }
func (PageRemovedFromProject) Type() Type    { return TypePageRemovedFromProject }

func (PageCreated) sealed()               {}
func (PageRenamed) sealed()               {}
func (PagePathChanged) sealed()           {}
func (PageTitleChanged) sealed()          {}
func (PageLayoutUpdated) sealed()         {}
func (PagePublished) sealed()             {}
func (PageUnpublished) sealed()           {}
func (PageDeleted) sealed()               {}
func (ComponentAdded) sealed()            {}
func (ComponentRemoved) sealed()          {}
func (ComponentUpdated) sealed()          {}
func (ComponentsReordered) sealed()       {}
func (ProjectCreated) sealed()            {}
func (ProjectNameChanged) sealed()        {}
func (ProjectDescriptionChanged) sealed() {}
func (ProjectConfigUpdated) sealed()      {}
func (ProjectPublished) sealed()          {}
func (ProjectArchived) sealed()           {}
func (ProjectDeleted) sealed()            {}
func (PageAddedToProject) sealed()        {}
func (PageRemovedFromProject) sealed()    {}

// ---- constructors ----

func NewPageCreated(pageID, projectID, name, path string) PageCreated {
	return PageCreated{Metadata: newMeta(pageID), ProjectID: projectID, Name: name, Path: path}
}

func NewPageRenamed(pageID, oldName, newName string) PageRenamed {
	return PageRenamed{Metadata: newMeta(pageID), OldName: oldName, NewName: newName}
}

func NewPagePathChanged(pageID, oldPath, newPath string) PagePathChanged {
	return PagePathChanged{Metadata: newMeta(pageID), OldPath: oldPath, NewPath: newPath}
}

func NewPageTitleChanged(pageID string, title *string) PageTitleChanged {
	return PageTitleChanged{Metadata: newMeta(pageID), Title: title}
}

func NewPageLayoutUpdated(pageID, maxWidth, padding, spacing string) PageLayoutUpdated {
	return PageLayoutUpdated{Metadata: newMeta(pageID), MaxWidth: maxWidth, Padding: padding, Spacing: spacing}
}

func NewPagePublished(pageID, projectID string) PagePublished {
	return PagePublished{Metadata: newMeta(pageID), ProjectID: projectID}
}

func NewPageUnpublished(pageID, projectID string) PageUnpublished {
	return PageUnpublished{Metadata: newMeta(pageID), ProjectID: projectID}
}

func NewPageDeleted(pageID, projectID string) PageDeleted {
	return PageDeleted{Metadata: newMeta(pageID), ProjectID: projectID}
}

func NewComponentAdded(pageID, componentID, componentType string, position int) ComponentAdded {
	return ComponentAdded{Metadata: newMeta(pageID), ComponentID: componentID, ComponentType: componentType, Position: position}
}

func NewComponentRemoved(pageID, componentID, componentType string) ComponentRemoved {
	return ComponentRemoved{Metadata: newMeta(pageID), ComponentID: componentID, ComponentType: componentType}
}

func NewComponentUpdated(pageID, componentID string, updated []string) ComponentUpdated {
	return ComponentUpdated{Metadata: newMeta(pageID), ComponentID: componentID, UpdatedProperties: updated}
}

func NewComponentsReordered(pageID string, order []string) ComponentsReordered {
	return ComponentsReordered{Metadata: newMeta(pageID), NewOrder: order}
}

func NewProjectCreated(projectID, userID, name string) ProjectCreated {
	return ProjectCreated{Metadata: newMeta(projectID), UserID: userID, Name: name}
}

func NewProjectNameChanged(projectID, oldName, newName string) ProjectNameChanged {
	return ProjectNameChanged{Metadata: newMeta(projectID), OldName: oldName, NewName: newName}
}

func NewProjectDescriptionChanged(projectID string, description *string) ProjectDescriptionChanged {
	return ProjectDescriptionChanged{Metadata: newMeta(projectID), Description: description}
}

func NewProjectConfigUpdated(projectID, userID string) ProjectConfigUpdated {
	return ProjectConfigUpdated{Metadata: newMeta(projectID), UserID: userID}
}

func NewProjectPublished(projectID, userID string) ProjectPublished {
	return ProjectPublished{Metadata: newMeta(projectID), UserID: userID}
}

func NewProjectArchived(projectID, userID string) ProjectArchived {
	return ProjectArchived{Metadata: newMeta(projectID), UserID: userID}
}

func NewProjectDeleted(projectID, userID string) ProjectDeleted {
	return ProjectDeleted{Metadata: newMeta(projectID), UserID: userID}
}

func NewPageAddedToProject(projectID, pageID string) PageAddedToProject {
	return PageAddedToProject{Metadata: newMeta(projectID), PageID: pageID}
}

func NewPageRemovedFromProject(projectID, pageID string) PageRemovedFromProject {
	return PageRemovedFromProject{Metadata: newMeta(projectID), PageID: pageID}
}
