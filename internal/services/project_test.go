package services

import (
	"context"
	"errors"
	"testing"

	domainagg "github.com/yungbote/sitebuilder-backend/internal/domain/aggregates"
	"github.com/yungbote/sitebuilder-backend/internal/domain/events"
	"github.com/yungbote/sitebuilder-backend/internal/domain/projects"
)

func TestCreateProject(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	userID := h.seedUser(t, "ann@example.com", "ann")

	rec := h.createProject(t, userID, "  Landing  ")
	if rec.Name != "Landing" {
		t.Fatalf("name: want=Landing got=%q", rec.Name)
	}
	if rec.Status != projects.StatusDraft {
		t.Fatalf("status: want=DRAFT got=%s", rec.Status)
	}
	if rec.Config.Theme.PrimaryColor != "#1890ff" {
		t.Fatalf("default theme: got=%+v", rec.Config.Theme)
	}
	if !h.events.has(events.TypeProjectCreated) {
		t.Fatalf("events: want ProjectCreated got=%v", h.events.types())
	}

	res, err := h.projectSvc.CreateProject(ctx, CreateProjectCommand{UserID: userID, Name: "Landing"})
	requireFailure(t, res, err, domainagg.CodeConflict)

	res, err = h.projectSvc.CreateProject(ctx, CreateProjectCommand{UserID: "ghost", Name: "X"})
	requireFailure(t, res, err, domainagg.CodeNotFound)

	res, err = h.projectSvc.CreateProject(ctx, CreateProjectCommand{UserID: userID, Name: "  "})
	requireFailure(t, res, err, domainagg.CodeValidation)

	bad := projects.ConfigRecord{Theme: projects.ThemeRecord{PrimaryColor: "blue"}}
	res, err = h.projectSvc.CreateProject(ctx, CreateProjectCommand{UserID: userID, Name: "Themed", Config: &bad})
	requireFailure(t, res, err, domainagg.CodeValidation)
}

func TestCreateProjectEventsOnlyAfterCommit(t *testing.T) {
	h := newHarness(t)
	userID := h.seedUser(t, "ann@example.com", "ann")
	h.runner.FailCommit = errors.New("commit failed")

	_, err := h.projectSvc.CreateProject(context.Background(), CreateProjectCommand{UserID: userID, Name: "Site"})
	if err == nil {
		t.Fatalf("err: want commit failure got=nil")
	}
	if got := h.events.types(); len(got) != 0 {
		t.Fatalf("events: want=none got=%v", got)
	}
	if _, _, rollbacks := h.runner.Snapshot(); rollbacks != 1 {
		t.Fatalf("rollbacks: want=1 got=%d", rollbacks)
	}
}

func TestUpdateProject(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	userID := h.seedUser(t, "ann@example.com", "ann")
	other := h.seedUser(t, "bob@example.com", "bob")
	p := h.createProject(t, userID, "Site")
	h.createProject(t, userID, "Taken")

	name := "Renamed"
	desc := "about"
	cfg := projects.ConfigRecord{Theme: projects.ThemeRecord{PrimaryColor: "#000", FontSize: projects.FontLarge}}
	res, err := h.projectSvc.UpdateProject(ctx, UpdateProjectCommand{
		ProjectID:   p.ID,
		UserID:      userID,
		Name:        &name,
		Description: &desc,
		Config:      &cfg,
	})
	if err != nil || !res.Success {
		t.Fatalf("update: err=%v res=%+v", err, res)
	}
	if res.Data.Name != name || res.Data.Description == nil || *res.Data.Description != desc {
		t.Fatalf("update: got=%+v", res.Data)
	}
	if res.Data.Config.Theme.FontSize != projects.FontLarge {
		t.Fatalf("font size: want=large got=%s", res.Data.Config.Theme.FontSize)
	}

	same := "Renamed"
	res, err = h.projectSvc.UpdateProject(ctx, UpdateProjectCommand{ProjectID: p.ID, UserID: userID, Name: &same})
	if err != nil || !res.Success {
		t.Fatalf("keeping own name: err=%v res=%+v", err, res)
	}

	taken := "Taken"
	res, err = h.projectSvc.UpdateProject(ctx, UpdateProjectCommand{ProjectID: p.ID, UserID: userID, Name: &taken})
	requireFailure(t, res, err, domainagg.CodeConflict)

	res, err = h.projectSvc.UpdateProject(ctx, UpdateProjectCommand{ProjectID: p.ID, UserID: other, Name: &name})
	requireFailure(t, res, err, domainagg.CodeUnauthorized)

	res, err = h.projectSvc.UpdateProject(ctx, UpdateProjectCommand{ProjectID: "missing", UserID: userID, Name: &name})
	requireFailure(t, res, err, domainagg.CodeNotFound)
}

func TestPublishProjectRequiresPublishedPage(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	userID := h.seedUser(t, "ann@example.com", "ann")
	p := h.createProject(t, userID, "Site")
	cmd := ProjectCommand{ProjectID: p.ID, UserID: userID}

	res, err := h.projectSvc.PublishProject(ctx, cmd)
	requireFailure(t, res, err, domainagg.CodeInvariantViolation)

	pg := h.createPage(t, userID, p.ID, "Home", "/")
	res, err = h.projectSvc.PublishProject(ctx, cmd)
	requireFailure(t, res, err, domainagg.CodeInvariantViolation)

	h.addText(t, userID, pg.ID, "hi")
	if r, err := h.pageSvc.PublishPage(ctx, PageCommand{PageID: pg.ID, UserID: userID}); err != nil || !r.Success {
		t.Fatalf("publish page: err=%v res=%+v", err, r)
	}
	h.events.reset()
	res, err = h.projectSvc.PublishProject(ctx, cmd)
	if err != nil || !res.Success {
		t.Fatalf("publish project: err=%v res=%+v", err, res)
	}
	if res.Data.Status != projects.StatusPublished {
		t.Fatalf("status: want=PUBLISHED got=%s", res.Data.Status)
	}
	if got := h.events.types(); len(got) != 1 || got[0] != events.TypeProjectPublished {
		t.Fatalf("events: want=[ProjectPublished] got=%v", got)
	}
}

func TestArchiveAndDeleteProject(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	userID := h.seedUser(t, "ann@example.com", "ann")
	p := h.createProject(t, userID, "Site")
	h.createPage(t, userID, p.ID, "Home", "/")
	cmd := ProjectCommand{ProjectID: p.ID, UserID: userID}

	for i := 0; i < 2; i++ {
		res, err := h.projectSvc.ArchiveProject(ctx, cmd)
		if err != nil || !res.Success || res.Data.Status != projects.StatusArchived {
			t.Fatalf("archive #%d: err=%v res=%+v", i, err, res)
		}
	}

	res, err := h.projectSvc.DeleteProject(ctx, ProjectCommand{ProjectID: p.ID, UserID: "intruder"})
	requireFailure(t, res, err, domainagg.CodeUnauthorized)

	h.events.reset()
	res, err = h.projectSvc.DeleteProject(ctx, cmd)
	if err != nil || !res.Success {
		t.Fatalf("delete: err=%v res=%+v", err, res)
	}
	if h.pages.count() != 0 {
		t.Fatalf("pages after delete: want=0 got=%d", h.pages.count())
	}
	got := h.events.types()
	if len(got) != 2 || got[0] != events.TypePageDeleted || got[1] != events.TypeProjectDeleted {
		t.Fatalf("events: want=[PageDeleted ProjectDeleted] got=%v", got)
	}

	gr, err := h.projectSvc.GetProject(ctx, cmd)
	requireFailure(t, gr, err, domainagg.CodeNotFound)
}

func TestDuplicateProject(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	userID := h.seedUser(t, "ann@example.com", "ann")
	p := h.createProject(t, userID, "Site")
	home := h.createPage(t, userID, p.ID, "Home", "/")
	h.addText(t, userID, home.ID, "hello")
	h.createPage(t, userID, p.ID, "About", "/about")

	res, err := h.projectSvc.DuplicateProject(ctx, DuplicateProjectCommand{SourceProjectID: p.ID, UserID: userID})
	if err != nil || !res.Success {
		t.Fatalf("duplicate: err=%v res=%+v", err, res)
	}
	if res.Data.Project.Name != "Site (Copy)" {
		t.Fatalf("name: want=%q got=%q", "Site (Copy)", res.Data.Project.Name)
	}
	if res.Data.Project.ID == p.ID {
		t.Fatalf("duplicate reused the source id")
	}
	if len(res.Data.Pages) != 2 {
		t.Fatalf("pages: want=2 got=%d", len(res.Data.Pages))
	}
	for _, pg := range res.Data.Pages {
		if pg.ProjectID != res.Data.Project.ID {
			t.Fatalf("page project: want=%s got=%s", res.Data.Project.ID, pg.ProjectID)
		}
		if pg.Path == "/" && (len(pg.Components) != 1 || pg.Components[0].Props["content"] != "hello") {
			t.Fatalf("home components: got=%+v", pg.Components)
		}
	}

	again, err := h.projectSvc.DuplicateProject(ctx, DuplicateProjectCommand{SourceProjectID: p.ID, UserID: userID})
	if err != nil || !again.Success {
		t.Fatalf("second duplicate: err=%v res=%+v", err, again)
	}
	if again.Data.Project.Name != "Site (Copy 2)" {
		t.Fatalf("second name: want=%q got=%q", "Site (Copy 2)", again.Data.Project.Name)
	}

	clash, err := h.projectSvc.DuplicateProject(ctx, DuplicateProjectCommand{SourceProjectID: p.ID, UserID: userID, NewName: "Site"})
	requireFailure(t, clash, err, domainagg.CodeConflict)
}

func TestProjectQueries(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	userID := h.seedUser(t, "ann@example.com", "ann")
	a := h.createProject(t, userID, "Alpha")
	h.createProject(t, userID, "Beta")
	h.createProject(t, userID, "Gamma")
	if r, err := h.projectSvc.ArchiveProject(ctx, ProjectCommand{ProjectID: a.ID, UserID: userID}); err != nil || !r.Success {
		t.Fatalf("archive: err=%v res=%+v", err, r)
	}

	list, err := h.projectSvc.GetUserProjects(ctx, GetUserProjectsQuery{UserID: userID, Limit: 2})
	if err != nil || !list.Success {
		t.Fatalf("list: err=%v res=%+v", err, list)
	}
	if list.Data.Total != 3 || len(list.Data.Items) != 2 || list.Data.TotalPages != 2 {
		t.Fatalf("list page: got total=%d items=%d pages=%d", list.Data.Total, len(list.Data.Items), list.Data.TotalPages)
	}

	archived, err := h.projectSvc.GetUserProjects(ctx, GetUserProjectsQuery{UserID: userID, Status: projects.StatusArchived})
	if err != nil || archived.Data.Total != 1 || archived.Data.Items[0].ID != a.ID {
		t.Fatalf("status filter: err=%v res=%+v", err, archived)
	}

	bad, err := h.projectSvc.GetUserProjects(ctx, GetUserProjectsQuery{UserID: userID, Status: "LIVE"})
	requireFailure(t, bad, err, domainagg.CodeValidation)

	stats, err := h.projectSvc.GetProjectStats(ctx, userID)
	if err != nil || stats.Data.Total != 3 || stats.Data.Draft != 2 || stats.Data.Archived != 1 {
		t.Fatalf("stats: err=%v got=%+v", err, stats.Data)
	}

	recent, err := h.projectSvc.GetRecentProjects(ctx, userID, 2)
	if err != nil || len(recent.Data) != 2 {
		t.Fatalf("recent: err=%v got=%d", err, len(recent.Data))
	}

	withPages, err := h.projectSvc.GetProjectWithPages(ctx, ProjectCommand{ProjectID: a.ID, UserID: userID})
	if err != nil || !withPages.Success || withPages.Data.Project.ID != a.ID || len(withPages.Data.Pages) != 0 {
		t.Fatalf("with pages: err=%v res=%+v", err, withPages)
	}
}
