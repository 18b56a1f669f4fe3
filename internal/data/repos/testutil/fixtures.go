package testutil

import (
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/sitebuilder-backend/internal/data/models"
	"github.com/yungbote/sitebuilder-backend/internal/domain/components"
	"github.com/yungbote/sitebuilder-backend/internal/domain/pages"
	"github.com/yungbote/sitebuilder-backend/internal/domain/projects"
	"github.com/yungbote/sitebuilder-backend/internal/domain/user"
)

func SeedUser(tb testing.TB, tx *gorm.DB, email, username string) *user.User {
	tb.Helper()
	u, err := user.Register(email, username, "secret123")
	if err != nil {
		tb.Fatalf("register user: %v", err)
	}
	if err := tx.Create(models.UserFromRecord(u.Record())).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedProject(tb testing.TB, tx *gorm.DB, userID, name string) *projects.Project {
	tb.Helper()
	p, err := projects.New(projects.NewProjectInput{UserID: userID, Name: name})
	if err != nil {
		tb.Fatalf("new project: %v", err)
	}
	row, err := models.ProjectFromRecord(p.Record())
	if err != nil {
		tb.Fatalf("project row: %v", err)
	}
	if err := tx.Create(row).Error; err != nil {
		tb.Fatalf("seed project: %v", err)
	}
	p.ClearEvents()
	return p
}

// SeedPage stores a page with one Text component per entry in texts.
func SeedPage(tb testing.TB, tx *gorm.DB, projectID, name, path string, texts ...string) *pages.Page {
	tb.Helper()
	p, err := pages.New(pages.NewPageInput{ProjectID: projectID, Name: name, Path: path})
	if err != nil {
		tb.Fatalf("new page: %v", err)
	}
	for _, text := range texts {
		if _, err := p.AddComponent(components.TypeText, map[string]any{"content": text}, nil); err != nil {
			tb.Fatalf("add component: %v", err)
		}
	}
	row, err := models.PageFromRecord(p.Record())
	if err != nil {
		tb.Fatalf("page row: %v", err)
	}
	if err := tx.Create(row).Error; err != nil {
		tb.Fatalf("seed page: %v", err)
	}
	p.ClearEvents()
	return p
}
