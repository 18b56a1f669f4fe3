package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/sitebuilder-backend/internal/data/aggregates"
	"github.com/yungbote/sitebuilder-backend/internal/data/repos"
	"github.com/yungbote/sitebuilder-backend/internal/data/repos/paging"
	domainagg "github.com/yungbote/sitebuilder-backend/internal/domain/aggregates"
	"github.com/yungbote/sitebuilder-backend/internal/domain/events"
	"github.com/yungbote/sitebuilder-backend/internal/domain/pages"
	"github.com/yungbote/sitebuilder-backend/internal/domain/projects"
	"github.com/yungbote/sitebuilder-backend/internal/platform/dbctx"
	"github.com/yungbote/sitebuilder-backend/internal/platform/eventbus"
	"github.com/yungbote/sitebuilder-backend/internal/platform/logger"
)

const maxCopySuffix = 50

type ProjectService interface {
	CreateProject(ctx context.Context, cmd CreateProjectCommand) (Result[projects.Record], error)
	UpdateProject(ctx context.Context, cmd UpdateProjectCommand) (Result[projects.Record], error)
	PublishProject(ctx context.Context, cmd ProjectCommand) (Result[projects.Record], error)
	ArchiveProject(ctx context.Context, cmd ProjectCommand) (Result[projects.Record], error)
	DeleteProject(ctx context.Context, cmd ProjectCommand) (Result[Empty], error)
	DuplicateProject(ctx context.Context, cmd DuplicateProjectCommand) (Result[ProjectWithPages], error)
	GetProject(ctx context.Context, q ProjectCommand) (Result[projects.Record], error)
	GetProjectWithPages(ctx context.Context, q ProjectCommand) (Result[ProjectWithPages], error)
	GetUserProjects(ctx context.Context, q GetUserProjectsQuery) (Result[paging.Result[projects.Record]], error)
	GetProjectStats(ctx context.Context, userID string) (Result[repos.ProjectStats], error)
	GetRecentProjects(ctx context.Context, userID string, limit int) (Result[[]projects.Record], error)
}

type projectService struct {
	log        *logger.Logger
	writer     aggregates.Writer
	projects   repos.ProjectRepo
	pages      repos.PageRepo
	users      repos.UserRepo
	dispatcher eventbus.Dispatcher
}

func NewProjectService(
	log *logger.Logger,
	writer aggregates.Writer,
	projectRepo repos.ProjectRepo,
	pageRepo repos.PageRepo,
	userRepo repos.UserRepo,
	dispatcher eventbus.Dispatcher,
) ProjectService {
	return &projectService{
		log:        log.With("service", "ProjectService"),
		writer:     writer,
		projects:   projectRepo,
		pages:      pageRepo,
		users:      userRepo,
		dispatcher: dispatcher,
	}
}

func (s *projectService) CreateProject(ctx context.Context, cmd CreateProjectCommand) (Result[projects.Record], error) {
	var created *projects.Project
	err := s.writer.Write(ctx, "project.create", func(dbc dbctx.Context) error {
		owner, err := s.users.FindByID(dbc, cmd.UserID)
		if err != nil {
			return err
		}
		if owner == nil {
			return domainagg.NotFound("user", cmd.UserID)
		}
		name := strings.TrimSpace(cmd.Name)
		if err := s.requireUniqueName(dbc, cmd.UserID, name, ""); err != nil {
			return err
		}
		in := projects.NewProjectInput{UserID: cmd.UserID, Name: name, Description: cmd.Description}
		if cmd.Config != nil {
			cfg, err := projects.NewConfig(*cmd.Config)
			if err != nil {
				return err
			}
			in.Config = &cfg
		}
		p, err := projects.New(in)
		if err != nil {
			return err
		}
		if err := s.projects.Save(dbc, p); err != nil {
			return fmt.Errorf("save project: %w", err)
		}
		created = p
		return nil
	})
	if err != nil {
		return settle[projects.Record](err)
	}
	publish(ctx, s.dispatcher, created)
	s.log.Info("Project created", "project_id", created.ID(), "user_id", cmd.UserID)
	return ok(created.Record())
}

func (s *projectService) requireUniqueName(dbc dbctx.Context, userID, name, excludeID string) error {
	unique, err := s.projects.IsNameUniqueForUser(dbc, userID, name, excludeID)
	if err != nil {
		return err
	}
	if !unique {
		return domainagg.Conflict("project name already exists")
	}
	return nil
}

func (s *projectService) UpdateProject(ctx context.Context, cmd UpdateProjectCommand) (Result[projects.Record], error) {
	var updated *projects.Project
	err := s.writer.Write(ctx, "project.update", func(dbc dbctx.Context) error {
		p, err := ownedProject(dbc, s.projects, cmd.ProjectID, cmd.UserID)
		if err != nil {
			return err
		}
		if cmd.Name != nil {
			name := strings.TrimSpace(*cmd.Name)
			if name != p.Name() {
				if err := s.requireUniqueName(dbc, cmd.UserID, name, p.ID()); err != nil {
					return err
				}
				if err := p.UpdateName(name); err != nil {
					return err
				}
			}
		}
		if cmd.Description != nil {
			p.UpdateDescription(cmd.Description)
		}
		if cmd.Config != nil {
			cfg, err := projects.NewConfig(*cmd.Config)
			if err != nil {
				return err
			}
			p.UpdateConfig(cfg)
		}
		if err := s.projects.Save(dbc, p); err != nil {
			return fmt.Errorf("save project: %w", err)
		}
		updated = p
		return nil
	})
	if err != nil {
		return settle[projects.Record](err)
	}
	publish(ctx, s.dispatcher, updated)
	return ok(updated.Record())
}

func (s *projectService) PublishProject(ctx context.Context, cmd ProjectCommand) (Result[projects.Record], error) {
	var published *projects.Project
	err := s.writer.Write(ctx, "project.publish", func(dbc dbctx.Context) error {
		p, err := ownedProject(dbc, s.projects, cmd.ProjectID, cmd.UserID)
		if err != nil {
			return err
		}
		ps, err := s.pages.FindByProjectID(dbc, p.ID())
		if err != nil {
			return err
		}
		p.AttachPages(ps)
		if err := p.Publish(); err != nil {
			return err
		}
		if err := s.projects.Save(dbc, p); err != nil {
			return fmt.Errorf("save project: %w", err)
		}
		published = p
		return nil
	})
	if err != nil {
		return settle[projects.Record](err)
	}
	publish(ctx, s.dispatcher, published)
	s.log.Info("Project published", "project_id", published.ID())
	return ok(published.Record())
}

func (s *projectService) ArchiveProject(ctx context.Context, cmd ProjectCommand) (Result[projects.Record], error) {
	var archived *projects.Project
	err := s.writer.Write(ctx, "project.archive", func(dbc dbctx.Context) error {
		p, err := ownedProject(dbc, s.projects, cmd.ProjectID, cmd.UserID)
		if err != nil {
			return err
		}
		p.Archive()
		if err := s.projects.Save(dbc, p); err != nil {
			return fmt.Errorf("save project: %w", err)
		}
		archived = p
		return nil
	})
	if err != nil {
		return settle[projects.Record](err)
	}
	publish(ctx, s.dispatcher, archived)
	return ok(archived.Record())
}

func (s *projectService) DeleteProject(ctx context.Context, cmd ProjectCommand) (Result[Empty], error) {
	var rec events.Recorder
	err := s.writer.Write(ctx, "project.delete", func(dbc dbctx.Context) error {
		p, err := ownedProject(dbc, s.projects, cmd.ProjectID, cmd.UserID)
		if err != nil {
			return err
		}
		ps, err := s.pages.FindByProjectID(dbc, p.ID())
		if err != nil {
			return err
		}
		if err := s.projects.Delete(dbc, p.ID()); err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		for _, pg := range ps {
			rec.Raise(events.NewPageDeleted(pg.ID(), p.ID()))
		}
		rec.Raise(events.NewProjectDeleted(p.ID(), p.UserID()))
		return nil
	})
	if err != nil {
		return settle[Empty](err)
	}
	publish(ctx, s.dispatcher, &rec)
	s.log.Info("Project deleted", "project_id", cmd.ProjectID)
	return ok(Empty{})
}

func (s *projectService) DuplicateProject(ctx context.Context, cmd DuplicateProjectCommand) (Result[ProjectWithPages], error) {
	var (
		dup    *projects.Project
		copies []*pages.Page
	)
	err := s.writer.Write(ctx, "project.duplicate", func(dbc dbctx.Context) error {
		src, err := ownedProject(dbc, s.projects, cmd.SourceProjectID, cmd.UserID)
		if err != nil {
			return err
		}
		name, err := s.copyName(dbc, src, strings.TrimSpace(cmd.NewName))
		if err != nil {
			return err
		}
		desc := src.Description()
		if cmd.NewDescription != nil {
			desc = cmd.NewDescription
		}
		cfg := src.Config()
		p, err := projects.New(projects.NewProjectInput{
			UserID:      cmd.UserID,
			Name:        name,
			Description: desc,
			Config:      &cfg,
		})
		if err != nil {
			return err
		}
		if err := s.projects.Save(dbc, p); err != nil {
			return fmt.Errorf("save project: %w", err)
		}
		srcPages, err := s.pages.FindByProjectID(dbc, src.ID())
		if err != nil {
			return err
		}
		for _, pg := range srcPages {
			cp, err := s.pages.CopyToProject(dbc, pg.ID(), p.ID(), pg.Name(), pg.Path())
			if err != nil {
				return err
			}
			copies = append(copies, cp)
		}
		p.AttachPages(copies)
		dup = p
		return nil
	})
	if err != nil {
		return settle[ProjectWithPages](err)
	}
	publish(ctx, s.dispatcher, dup)
	for _, cp := range copies {
		publish(ctx, s.dispatcher, cp)
	}
	s.log.Info("Project duplicated", "source_project_id", cmd.SourceProjectID, "project_id", dup.ID(), "pages", len(copies))
	return ok(ProjectWithPages{Project: dup.Record(), Pages: pageRecords(copies)})
}

// copyName returns want when it is free. Without want it derives
// "<name> (Copy)", then "<name> (Copy 2)" and so on.
func (s *projectService) copyName(dbc dbctx.Context, src *projects.Project, want string) (string, error) {
	if want != "" {
		if err := s.requireUniqueName(dbc, src.UserID(), want, ""); err != nil {
			return "", err
		}
		return want, nil
	}
	for i := 1; i <= maxCopySuffix; i++ {
		candidate := src.Name() + " (Copy)"
		if i > 1 {
			candidate = fmt.Sprintf("%s (Copy %d)", src.Name(), i)
		}
		unique, err := s.projects.IsNameUniqueForUser(dbc, src.UserID(), candidate, "")
		if err != nil {
			return "", err
		}
		if unique {
			return candidate, nil
		}
	}
	return "", domainagg.Conflict("could not find a free name for the project copy")
}

func (s *projectService) GetProject(ctx context.Context, q ProjectCommand) (Result[projects.Record], error) {
	p, err := ownedProject(dbctx.Background(ctx), s.projects, q.ProjectID, q.UserID)
	if err != nil {
		return settle[projects.Record](err)
	}
	return ok(p.Record())
}

func (s *projectService) GetProjectWithPages(ctx context.Context, q ProjectCommand) (Result[ProjectWithPages], error) {
	dbc := dbctx.Background(ctx)
	p, err := ownedProject(dbc, s.projects, q.ProjectID, q.UserID)
	if err != nil {
		return settle[ProjectWithPages](err)
	}
	ps, err := s.pages.FindByProjectID(dbc, p.ID())
	if err != nil {
		return Result[ProjectWithPages]{}, err
	}
	p.AttachPages(ps)
	return ok(ProjectWithPages{Project: p.Record(), Pages: pageRecords(p.Pages())})
}

func (s *projectService) GetUserProjects(ctx context.Context, q GetUserProjectsQuery) (Result[paging.Result[projects.Record]], error) {
	if q.Status != "" && !q.Status.Valid() {
		return settle[paging.Result[projects.Record]](domainagg.Validation("status", "status must be one of: DRAFT, PUBLISHED, ARCHIVED"))
	}
	res, err := s.projects.FindByUserIDWithPagination(dbctx.Background(ctx), repos.ProjectListQuery{
		Params: paging.Params{Page: q.Page, Limit: q.Limit, Search: q.Search},
		UserID: q.UserID,
		Status: q.Status,
	})
	if err != nil {
		return Result[paging.Result[projects.Record]]{}, err
	}
	return ok(mapPage(res, projectRecords))
}

func (s *projectService) GetProjectStats(ctx context.Context, userID string) (Result[repos.ProjectStats], error) {
	stats, err := s.projects.GetProjectStats(dbctx.Background(ctx), userID)
	if err != nil {
		return Result[repos.ProjectStats]{}, err
	}
	return ok(stats)
}

func (s *projectService) GetRecentProjects(ctx context.Context, userID string, limit int) (Result[[]projects.Record], error) {
	ps, err := s.projects.FindRecentlyUpdated(dbctx.Background(ctx), userID, limit)
	if err != nil {
		return Result[[]projects.Record]{}, err
	}
	return ok(projectRecords(ps))
}
