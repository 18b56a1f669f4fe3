package services

import (
	"github.com/yungbote/sitebuilder-backend/internal/data/repos"
	domainagg "github.com/yungbote/sitebuilder-backend/internal/domain/aggregates"
	"github.com/yungbote/sitebuilder-backend/internal/domain/pages"
	"github.com/yungbote/sitebuilder-backend/internal/domain/projects"
	"github.com/yungbote/sitebuilder-backend/internal/platform/dbctx"
)

const (
	msgProjectForbidden = "no permission to access this project"
	msgPageForbidden    = "no permission to access this page"
)

// ownedProject loads a project and checks that userID owns it.
func ownedProject(dbc dbctx.Context, repo repos.ProjectRepo, projectID, userID string) (*projects.Project, error) {
	p, err := repo.FindByID(dbc, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domainagg.NotFound("project", projectID)
	}
	if !p.IsOwnedBy(userID) {
		return nil, domainagg.Unauthorized(msgProjectForbidden)
	}
	return p, nil
}

// ownedPage loads a page and its project, then checks ownership of the project.
func ownedPage(dbc dbctx.Context, pageRepo repos.PageRepo, projectRepo repos.ProjectRepo, pageID, userID string) (*pages.Page, *projects.Project, error) {
	pg, err := pageRepo.FindByID(dbc, pageID)
	if err != nil {
		return nil, nil, err
	}
	if pg == nil {
		return nil, nil, domainagg.NotFound("page", pageID)
	}
	p, err := projectRepo.FindByID(dbc, pg.ProjectID())
	if err != nil {
		return nil, nil, err
	}
	if p == nil {
		return nil, nil, domainagg.NotFound("project", pg.ProjectID())
	}
	if !p.IsOwnedBy(userID) {
		return nil, nil, domainagg.Unauthorized(msgPageForbidden)
	}
	return pg, p, nil
}

// applyLayout overlays the set fields of in on current.
func applyLayout(current pages.Layout, in LayoutInput) (pages.Layout, error) {
	var err error
	l := current
	if in.MaxWidth != nil {
		if l, err = l.WithMaxWidth(*in.MaxWidth); err != nil {
			return pages.Layout{}, err
		}
	}
	if in.Padding != "" {
		if l, err = l.WithPadding(in.Padding); err != nil {
			return pages.Layout{}, err
		}
	}
	if in.Spacing != "" {
		if l, err = l.WithSpacing(in.Spacing); err != nil {
			return pages.Layout{}, err
		}
	}
	return l, nil
}
