// Package models holds the gorm row types backing the repositories.
package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/yungbote/sitebuilder-backend/internal/domain/components"
	"github.com/yungbote/sitebuilder-backend/internal/domain/pages"
	"github.com/yungbote/sitebuilder-backend/internal/domain/projects"
	"github.com/yungbote/sitebuilder-backend/internal/domain/user"
)

type User struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email" json:"email"`
	Username     string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_users_username" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	CreatedAt    time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "users" }

func UserFromRecord(r user.Record) *User {
	return &User{
		ID:           r.ID,
		Email:        r.Email,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (u *User) Record() user.Record {
	return user.Record{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

type Project struct {
	ID          string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(100);not null;uniqueIndex:idx_projects_user_name,priority:2" json:"name"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	UserID      string         `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_projects_user_name,priority:1" json:"user_id"`
	Status      string         `gorm:"type:varchar(16);not null;default:'DRAFT';index" json:"status"`
	Config      datatypes.JSON `gorm:"type:jsonb" json:"config"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;index" json:"updated_at"`
}

func (Project) TableName() string { return "projects" }

func ProjectFromRecord(r projects.Record) (*Project, error) {
	cfg, err := json.Marshal(r.Config)
	if err != nil {
		return nil, fmt.Errorf("encode project config: %w", err)
	}
	return &Project{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		UserID:      r.UserID,
		Status:      string(r.Status),
		Config:      datatypes.JSON(cfg),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

func (p *Project) Record() (projects.Record, error) {
	var cfg projects.ConfigRecord
	if len(p.Config) > 0 {
		if err := json.Unmarshal(p.Config, &cfg); err != nil {
			return projects.Record{}, fmt.Errorf("decode project %s config: %w", p.ID, err)
		}
	}
	return projects.Record{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		UserID:      p.UserID,
		Status:      projects.Status(p.Status),
		Config:      cfg,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

// Page keeps its components and layout as JSON documents.
type Page struct {
	ID          string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID   string         `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_pages_project_path,priority:1" json:"project_id"`
	Name        string         `gorm:"type:varchar(100);not null" json:"name"`
	Path        string         `gorm:"type:varchar(200);not null;uniqueIndex:idx_pages_project_path,priority:2" json:"path"`
	Title       *string        `gorm:"type:varchar(200)" json:"title,omitempty"`
	Components  datatypes.JSON `gorm:"type:jsonb" json:"components"`
	Layout      datatypes.JSON `gorm:"type:jsonb" json:"layout"`
	IsPublished bool           `gorm:"not null;default:false;index" json:"is_published"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;index" json:"updated_at"`
}

func (Page) TableName() string { return "pages" }

func PageFromRecord(r pages.Record) (*Page, error) {
	comps := r.Components
	if comps == nil {
		comps = []components.Record{}
	}
	rawComps, err := json.Marshal(comps)
	if err != nil {
		return nil, fmt.Errorf("encode page components: %w", err)
	}
	rawLayout, err := json.Marshal(r.Layout)
	if err != nil {
		return nil, fmt.Errorf("encode page layout: %w", err)
	}
	return &Page{
		ID:          r.ID,
		ProjectID:   r.ProjectID,
		Name:        r.Name,
		Path:        r.Path,
		Title:       r.Title,
		Components:  datatypes.JSON(rawComps),
		Layout:      datatypes.JSON(rawLayout),
		IsPublished: r.IsPublished,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

func (p *Page) Record() (pages.Record, error) {
	r := pages.Record{
		ID:          p.ID,
		ProjectID:   p.ProjectID,
		Name:        p.Name,
		Path:        p.Path,
		Title:       p.Title,
		IsPublished: p.IsPublished,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if len(p.Components) > 0 {
		if err := json.Unmarshal(p.Components, &r.Components); err != nil {
			return pages.Record{}, fmt.Errorf("decode page %s components: %w", p.ID, err)
		}
	}
	if len(p.Layout) > 0 {
		if err := json.Unmarshal(p.Layout, &r.Layout); err != nil {
			return pages.Record{}, fmt.Errorf("decode page %s layout: %w", p.ID, err)
		}
	}
	return r, nil
}

// ComponentCount counts the stored components without restoring them.
func (p *Page) ComponentCount() int {
	if len(p.Components) == 0 {
		return 0
	}
	var items []json.RawMessage
	if err := json.Unmarshal(p.Components, &items); err != nil {
		return 0
	}
	return len(items)
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{&User{}, &Project{}, &Page{}}
}
