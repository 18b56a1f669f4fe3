package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/sitebuilder-backend/internal/data/aggregates"
	"github.com/yungbote/sitebuilder-backend/internal/data/repos"
	"github.com/yungbote/sitebuilder-backend/internal/data/repos/paging"
	domainagg "github.com/yungbote/sitebuilder-backend/internal/domain/aggregates"
	"github.com/yungbote/sitebuilder-backend/internal/domain/components"
	"github.com/yungbote/sitebuilder-backend/internal/domain/events"
	"github.com/yungbote/sitebuilder-backend/internal/domain/pages"
	"github.com/yungbote/sitebuilder-backend/internal/domain/projects"
	"github.com/yungbote/sitebuilder-backend/internal/platform/dbctx"
	"github.com/yungbote/sitebuilder-backend/internal/platform/eventbus"
	"github.com/yungbote/sitebuilder-backend/internal/platform/logger"
)

type PageService interface {
	CreatePage(ctx context.Context, cmd CreatePageCommand) (Result[pages.Record], error)
	UpdatePage(ctx context.Context, cmd UpdatePageCommand) (Result[pages.Record], error)
	PublishPage(ctx context.Context, cmd PageCommand) (Result[pages.Record], error)
	UnpublishPage(ctx context.Context, cmd PageCommand) (Result[pages.Record], error)
	DeletePage(ctx context.Context, cmd PageCommand) (Result[Empty], error)

	AddComponent(ctx context.Context, cmd AddComponentCommand) (Result[components.Record], error)
	UpdateComponent(ctx context.Context, cmd UpdateComponentCommand) (Result[components.Record], error)
	RemoveComponent(ctx context.Context, cmd RemoveComponentCommand) (Result[Empty], error)
	ReorderComponents(ctx context.Context, cmd ReorderComponentsCommand) (Result[pages.Record], error)

	CopyPage(ctx context.Context, cmd CopyPageCommand) (Result[pages.Record], error)
	BulkSetPublished(ctx context.Context, cmd BulkSetPublishedCommand) (Result[[]pages.Record], error)

	GetPage(ctx context.Context, q PageCommand) (Result[pages.Record], error)
	GetProjectPages(ctx context.Context, q GetProjectPagesQuery) (Result[paging.Result[pages.Record]], error)
	PreviewPage(ctx context.Context, q PageCommand) (Result[PagePreview], error)
	GetPageStats(ctx context.Context, q ProjectCommand) (Result[repos.PageStats], error)
	GetRecentPages(ctx context.Context, q ProjectCommand, limit int) (Result[[]pages.Record], error)
}

type pageService struct {
	log        *logger.Logger
	writer     aggregates.Writer
	projects   repos.ProjectRepo
	pages      repos.PageRepo
	dispatcher eventbus.Dispatcher
}

func NewPageService(
	log *logger.Logger,
	writer aggregates.Writer,
	projectRepo repos.ProjectRepo,
	pageRepo repos.PageRepo,
	dispatcher eventbus.Dispatcher,
) PageService {
	return &pageService{
		log:        log.With("service", "PageService"),
		writer:     writer,
		projects:   projectRepo,
		pages:      pageRepo,
		dispatcher: dispatcher,
	}
}

func (s *pageService) requireUniquePath(dbc dbctx.Context, projectID, path, excludeID string) error {
	unique, err := s.pages.IsPathUniqueInProject(dbc, projectID, path, excludeID)
	if err != nil {
		return err
	}
	if !unique {
		return domainagg.Conflict(fmt.Sprintf("page path %s already exists in this project", path))
	}
	return nil
}

func (s *pageService) requireUniqueName(dbc dbctx.Context, projectID, name, excludeID string) error {
	unique, err := s.pages.IsNameUniqueInProject(dbc, projectID, name, excludeID)
	if err != nil {
		return err
	}
	if !unique {
		return domainagg.Conflict(fmt.Sprintf("page name %s already exists in this project", name))
	}
	return nil
}

func (s *pageService) CreatePage(ctx context.Context, cmd CreatePageCommand) (Result[pages.Record], error) {
	var (
		created *pages.Page
		project *projects.Project
	)
	err := s.writer.Write(ctx, "page.create", func(dbc dbctx.Context) error {
		p, err := ownedProject(dbc, s.projects, cmd.ProjectID, cmd.UserID)
		if err != nil {
			return err
		}
		name, path := strings.TrimSpace(cmd.Name), strings.TrimSpace(cmd.Path)
		if err := pages.ValidatePath(path); err != nil {
			return err
		}
		if err := s.requireUniquePath(dbc, p.ID(), path, ""); err != nil {
			return err
		}
		if err := s.requireUniqueName(dbc, p.ID(), name, ""); err != nil {
			return err
		}
		existing, err := s.pages.FindByProjectID(dbc, p.ID())
		if err != nil {
			return err
		}
		p.AttachPages(existing)
		pg, err := p.AddPage(name, path, cmd.Title)
		if err != nil {
			return err
		}
		if cmd.Layout != nil {
			layout, err := applyLayout(pg.Layout(), *cmd.Layout)
			if err != nil {
				return err
			}
			pg.UpdateLayout(layout)
		}
		if err := s.pages.Save(dbc, pg); err != nil {
			return fmt.Errorf("save page: %w", err)
		}
		if err := s.projects.Save(dbc, p); err != nil {
			return fmt.Errorf("save project: %w", err)
		}
		created, project = pg, p
		return nil
	})
	if err != nil {
		return settle[pages.Record](err)
	}
	publish(ctx, s.dispatcher, created, project)
	s.log.Info("Page created", "page_id", created.ID(), "project_id", cmd.ProjectID)
	return ok(created.Record())
}

// mutate loads an owned page, applies fn and saves the page in one
// transaction. Events are dispatched after commit.
func (s *pageService) mutate(ctx context.Context, op, pageID, userID string, fn func(dbc dbctx.Context, pg *pages.Page) error) (*pages.Page, error) {
	var changed *pages.Page
	err := s.writer.Write(ctx, op, func(dbc dbctx.Context) error {
		pg, _, err := ownedPage(dbc, s.pages, s.projects, pageID, userID)
		if err != nil {
			return err
		}
		if err := fn(dbc, pg); err != nil {
			return err
		}
		if err := s.pages.Save(dbc, pg); err != nil {
			return fmt.Errorf("save page: %w", err)
		}
		changed = pg
		return nil
	})
	if err != nil {
		return nil, err
	}
	publish(ctx, s.dispatcher, changed)
	return changed, nil
}

func (s *pageService) UpdatePage(ctx context.Context, cmd UpdatePageCommand) (Result[pages.Record], error) {
	pg, err := s.mutate(ctx, "page.update", cmd.PageID, cmd.UserID, func(dbc dbctx.Context, pg *pages.Page) error {
		if cmd.Name != nil {
			name := strings.TrimSpace(*cmd.Name)
			if name != pg.Name() {
				if err := s.requireUniqueName(dbc, pg.ProjectID(), name, pg.ID()); err != nil {
					return err
				}
				if err := pg.UpdateName(name); err != nil {
					return err
				}
			}
		}
		if cmd.Path != nil {
			path := strings.TrimSpace(*cmd.Path)
			if path != pg.Path() {
				if err := pages.ValidatePath(path); err != nil {
					return err
				}
				if err := s.requireUniquePath(dbc, pg.ProjectID(), path, pg.ID()); err != nil {
					return err
				}
				if err := pg.UpdatePath(path); err != nil {
					return err
				}
			}
		}
		if cmd.Title != nil {
			if err := pg.UpdateTitle(cmd.Title); err != nil {
				return err
			}
		}
		if cmd.Layout != nil {
			layout, err := applyLayout(pg.Layout(), *cmd.Layout)
			if err != nil {
				return err
			}
			if !layout.Equal(pg.Layout()) {
				pg.UpdateLayout(layout)
			}
		}
		return nil
	})
	if err != nil {
		return settle[pages.Record](err)
	}
	return ok(pg.Record())
}

func (s *pageService) PublishPage(ctx context.Context, cmd PageCommand) (Result[pages.Record], error) {
	pg, err := s.mutate(ctx, "page.publish", cmd.PageID, cmd.UserID, func(_ dbctx.Context, pg *pages.Page) error {
		return pg.Publish()
	})
	if err != nil {
		return settle[pages.Record](err)
	}
	return ok(pg.Record())
}

func (s *pageService) UnpublishPage(ctx context.Context, cmd PageCommand) (Result[pages.Record], error) {
	pg, err := s.mutate(ctx, "page.unpublish", cmd.PageID, cmd.UserID, func(_ dbctx.Context, pg *pages.Page) error {
		pg.Unpublish()
		return nil
	})
	if err != nil {
		return settle[pages.Record](err)
	}
	return ok(pg.Record())
}

func (s *pageService) DeletePage(ctx context.Context, cmd PageCommand) (Result[Empty], error) {
	var (
		rec     events.Recorder
		project *projects.Project
	)
	err := s.writer.Write(ctx, "page.delete", func(dbc dbctx.Context) error {
		pg, p, err := ownedPage(dbc, s.pages, s.projects, cmd.PageID, cmd.UserID)
		if err != nil {
			return err
		}
		siblings, err := s.pages.FindByProjectID(dbc, p.ID())
		if err != nil {
			return err
		}
		p.AttachPages(siblings)
		if err := p.RemovePage(pg.ID()); err != nil {
			return err
		}
		if err := s.pages.Delete(dbc, pg.ID()); err != nil {
			return fmt.Errorf("delete page: %w", err)
		}
		if err := s.projects.Save(dbc, p); err != nil {
			return fmt.Errorf("save project: %w", err)
		}
		rec.Raise(events.NewPageDeleted(pg.ID(), p.ID()))
		project = p
		return nil
	})
	if err != nil {
		return settle[Empty](err)
	}
	publish(ctx, s.dispatcher, &rec, project)
	return ok(Empty{})
}

func (s *pageService) AddComponent(ctx context.Context, cmd AddComponentCommand) (Result[components.Record], error) {
	var added *components.Component
	_, err := s.mutate(ctx, "page.component.add", cmd.PageID, cmd.UserID, func(_ dbctx.Context, pg *pages.Page) error {
		t, err := components.ParseType(string(cmd.ComponentType))
		if err != nil {
			return err
		}
		c, err := pg.AddComponent(t, cmd.Props, cmd.Position)
		if err != nil {
			return err
		}
		added = c
		return nil
	})
	if err != nil {
		return settle[components.Record](err)
	}
	return ok(added.Record())
}

func (s *pageService) UpdateComponent(ctx context.Context, cmd UpdateComponentCommand) (Result[components.Record], error) {
	var updated *components.Component
	_, err := s.mutate(ctx, "page.component.update", cmd.PageID, cmd.UserID, func(_ dbctx.Context, pg *pages.Page) error {
		if err := pg.UpdateComponent(cmd.ComponentID, cmd.Props); err != nil {
			return err
		}
		updated, _ = pg.Component(cmd.ComponentID)
		return nil
	})
	if err != nil {
		return settle[components.Record](err)
	}
	return ok(updated.Record())
}

func (s *pageService) RemoveComponent(ctx context.Context, cmd RemoveComponentCommand) (Result[Empty], error) {
	_, err := s.mutate(ctx, "page.component.remove", cmd.PageID, cmd.UserID, func(_ dbctx.Context, pg *pages.Page) error {
		return pg.RemoveComponent(cmd.ComponentID)
	})
	if err != nil {
		return settle[Empty](err)
	}
	return ok(Empty{})
}

func (s *pageService) ReorderComponents(ctx context.Context, cmd ReorderComponentsCommand) (Result[pages.Record], error) {
	pg, err := s.mutate(ctx, "page.component.reorder", cmd.PageID, cmd.UserID, func(_ dbctx.Context, pg *pages.Page) error {
		return pg.ReorderComponents(cmd.ComponentIDs)
	})
	if err != nil {
		return settle[pages.Record](err)
	}
	return ok(pg.Record())
}

func (s *pageService) CopyPage(ctx context.Context, cmd CopyPageCommand) (Result[pages.Record], error) {
	var cp *pages.Page
	err := s.writer.Write(ctx, "page.copy", func(dbc dbctx.Context) error {
		src, _, err := ownedPage(dbc, s.pages, s.projects, cmd.SourcePageID, cmd.UserID)
		if err != nil {
			return err
		}
		targetID := strings.TrimSpace(cmd.TargetProjectID)
		if targetID == "" {
			targetID = src.ProjectID()
		}
		if targetID != src.ProjectID() {
			if _, err := ownedProject(dbc, s.projects, targetID, cmd.UserID); err != nil {
				return err
			}
		}
		name := strings.TrimSpace(cmd.NewName)
		if name == "" {
			name = src.Name() + " (Copy)"
		}
		path := strings.TrimSpace(cmd.NewPath)
		if path == "" {
			path = src.Path() + "-copy"
		}
		if err := pages.ValidatePath(path); err != nil {
			return err
		}
		if err := s.requireUniquePath(dbc, targetID, path, ""); err != nil {
			return err
		}
		if err := s.requireUniqueName(dbc, targetID, name, ""); err != nil {
			return err
		}
		cp, err = s.pages.CopyToProject(dbc, src.ID(), targetID, name, path)
		return err
	})
	if err != nil {
		return settle[pages.Record](err)
	}
	publish(ctx, s.dispatcher, cp)
	s.log.Info("Page copied", "source_page_id", cmd.SourcePageID, "page_id", cp.ID(), "project_id", cp.ProjectID())
	return ok(cp.Record())
}

// BulkSetPublished loads every page first so publish rules apply to each.
// One failing page aborts the whole batch.
func (s *pageService) BulkSetPublished(ctx context.Context, cmd BulkSetPublishedCommand) (Result[[]pages.Record], error) {
	var changed []*pages.Page
	err := s.writer.Write(ctx, "page.bulk_publish", func(dbc dbctx.Context) error {
		p, err := ownedProject(dbc, s.projects, cmd.ProjectID, cmd.UserID)
		if err != nil {
			return err
		}
		if len(cmd.PageIDs) == 0 {
			return domainagg.Validation("page_ids", "at least one page id is required")
		}
		ids := make([]string, 0, len(cmd.PageIDs))
		seen := make(map[string]bool, len(cmd.PageIDs))
		for _, id := range cmd.PageIDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			pg, err := s.pages.FindByID(dbc, id)
			if err != nil {
				return err
			}
			if pg == nil || pg.ProjectID() != p.ID() {
				return domainagg.NotFound("page", id)
			}
			if cmd.Published {
				if err := pg.Publish(); err != nil {
					return domainagg.Invariant(fmt.Sprintf("page %s: %s", pg.Name(), domainagg.MessageOf(err)))
				}
			} else {
				pg.Unpublish()
			}
			ids = append(ids, id)
			changed = append(changed, pg)
		}
		return s.pages.BulkUpdatePublishStatus(dbc, ids, cmd.Published)
	})
	if err != nil {
		return settle[[]pages.Record](err)
	}
	for _, pg := range changed {
		publish(ctx, s.dispatcher, pg)
	}
	return ok(pageRecords(changed))
}

func (s *pageService) GetPage(ctx context.Context, q PageCommand) (Result[pages.Record], error) {
	pg, _, err := ownedPage(dbctx.Background(ctx), s.pages, s.projects, q.PageID, q.UserID)
	if err != nil {
		return settle[pages.Record](err)
	}
	return ok(pg.Record())
}

func (s *pageService) GetProjectPages(ctx context.Context, q GetProjectPagesQuery) (Result[paging.Result[pages.Record]], error) {
	dbc := dbctx.Background(ctx)
	if _, err := ownedProject(dbc, s.projects, q.ProjectID, q.UserID); err != nil {
		return settle[paging.Result[pages.Record]](err)
	}
	res, err := s.pages.FindByProjectIDWithPagination(dbc, repos.PageListQuery{
		Params:        paging.Params{Page: q.Page, Limit: q.Limit, Search: q.Search},
		ProjectID:     q.ProjectID,
		PublishedOnly: !q.IncludeUnpublished,
	})
	if err != nil {
		return Result[paging.Result[pages.Record]]{}, err
	}
	return ok(mapPage(res, pageRecords))
}

func (s *pageService) PreviewPage(ctx context.Context, q PageCommand) (Result[PagePreview], error) {
	pg, _, err := ownedPage(dbctx.Background(ctx), s.pages, s.projects, q.PageID, q.UserID)
	if err != nil {
		return settle[PagePreview](err)
	}
	return ok(PagePreview{Page: pg.Record(), RenderData: pg.RenderData()})
}

func (s *pageService) GetPageStats(ctx context.Context, q ProjectCommand) (Result[repos.PageStats], error) {
	dbc := dbctx.Background(ctx)
	if _, err := ownedProject(dbc, s.projects, q.ProjectID, q.UserID); err != nil {
		return settle[repos.PageStats](err)
	}
	stats, err := s.pages.GetPageStats(dbc, q.ProjectID)
	if err != nil {
		return Result[repos.PageStats]{}, err
	}
	return ok(stats)
}

func (s *pageService) GetRecentPages(ctx context.Context, q ProjectCommand, limit int) (Result[[]pages.Record], error) {
	dbc := dbctx.Background(ctx)
	if _, err := ownedProject(dbc, s.projects, q.ProjectID, q.UserID); err != nil {
		return settle[[]pages.Record](err)
	}
	ps, err := s.pages.FindRecentlyUpdated(dbc, q.ProjectID, limit)
	if err != nil {
		return Result[[]pages.Record]{}, err
	}
	return ok(pageRecords(ps))
}
