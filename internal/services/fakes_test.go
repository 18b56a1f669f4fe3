package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yungbote/sitebuilder-backend/internal/data/aggregates"
	"github.com/yungbote/sitebuilder-backend/internal/data/aggregates/testutil"
	"github.com/yungbote/sitebuilder-backend/internal/data/repos"
	"github.com/yungbote/sitebuilder-backend/internal/data/repos/paging"
	domainagg "github.com/yungbote/sitebuilder-backend/internal/domain/aggregates"
	"github.com/yungbote/sitebuilder-backend/internal/domain/components"
	"github.com/yungbote/sitebuilder-backend/internal/domain/events"
	"github.com/yungbote/sitebuilder-backend/internal/domain/pages"
	"github.com/yungbote/sitebuilder-backend/internal/domain/projects"
	domainuser "github.com/yungbote/sitebuilder-backend/internal/domain/user"
	"github.com/yungbote/sitebuilder-backend/internal/platform/dbctx"
	"github.com/yungbote/sitebuilder-backend/internal/platform/eventbus"
	"github.com/yungbote/sitebuilder-backend/internal/platform/logger"
)

// ---- project repo ----

type fakeProjectRepo struct {
	mu   sync.Mutex
	rows map[string]projects.Record
	// pages is consulted by Delete to cascade.
	pages *fakePageRepo
}

func newFakeProjectRepo(pages *fakePageRepo) *fakeProjectRepo {
	return &fakeProjectRepo{rows: map[string]projects.Record{}, pages: pages}
}

func (r *fakeProjectRepo) FindByID(_ dbctx.Context, id string) (*projects.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return projects.Restore(rec)
}

func (r *fakeProjectRepo) Save(_ dbctx.Context, p *projects.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[p.ID()] = p.Record()
	return nil
}

func (r *fakeProjectRepo) Delete(dbc dbctx.Context, id string) error {
	r.mu.Lock()
	delete(r.rows, id)
	r.mu.Unlock()
	if r.pages != nil {
		r.pages.deleteProject(id)
	}
	return nil
}

func (r *fakeProjectRepo) IsNameUniqueForUser(_ dbctx.Context, userID, name, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rec := range r.rows {
		if rec.UserID == userID && rec.Name == name && id != excludeID {
			return false, nil
		}
	}
	return true, nil
}

func (r *fakeProjectRepo) list(userID string) []projects.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []projects.Record
	for _, rec := range r.rows {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out
}

func (r *fakeProjectRepo) FindByUserIDWithPagination(_ dbctx.Context, q repos.ProjectListQuery) (paging.Result[*projects.Project], error) {
	p := q.Params.Normalize()
	var items []*projects.Project
	for _, rec := range r.list(q.UserID) {
		if q.Status != "" && rec.Status != q.Status {
			continue
		}
		if p.Search != "" && !strings.Contains(strings.ToLower(rec.Name), strings.ToLower(p.Search)) {
			continue
		}
		pr, err := projects.Restore(rec)
		if err != nil {
			return paging.Result[*projects.Project]{}, err
		}
		items = append(items, pr)
	}
	total := int64(len(items))
	start := p.Offset()
	if start > len(items) {
		start = len(items)
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return paging.NewResult(items[start:end], total, p), nil
}

func (r *fakeProjectRepo) GetProjectStats(_ dbctx.Context, userID string) (repos.ProjectStats, error) {
	var s repos.ProjectStats
	for _, rec := range r.list(userID) {
		s.Total++
		switch rec.Status {
		case projects.StatusPublished:
			s.Published++
		case projects.StatusDraft:
			s.Draft++
		case projects.StatusArchived:
			s.Archived++
		}
	}
	return s, nil
}

func (r *fakeProjectRepo) FindRecentlyUpdated(_ dbctx.Context, userID string, limit int) ([]*projects.Project, error) {
	if limit <= 0 {
		limit = 5
	}
	var out []*projects.Project
	for _, rec := range r.list(userID) {
		if len(out) == limit {
			break
		}
		pr, err := projects.Restore(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	return out, nil
}

// ---- page repo ----

type fakePageRepo struct {
	mu   sync.Mutex
	rows map[string]pages.Record

	bulkCalls int
}

func newFakePageRepo() *fakePageRepo {
	return &fakePageRepo{rows: map[string]pages.Record{}}
}

func (r *fakePageRepo) deleteProject(projectID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rec := range r.rows {
		if rec.ProjectID == projectID {
			delete(r.rows, id)
		}
	}
}

func (r *fakePageRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func (r *fakePageRepo) FindByID(_ dbctx.Context, id string) (*pages.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return pages.Restore(rec)
}

func (r *fakePageRepo) records(projectID string) []pages.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []pages.Record
	for _, rec := range r.rows {
		if rec.ProjectID == projectID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func (r *fakePageRepo) FindByProjectID(_ dbctx.Context, projectID string) ([]*pages.Page, error) {
	var out []*pages.Page
	for _, rec := range r.records(projectID) {
		pg, err := pages.Restore(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, pg)
	}
	return out, nil
}

func (r *fakePageRepo) Save(_ dbctx.Context, p *pages.Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[p.ID()] = p.Record()
	return nil
}

func (r *fakePageRepo) Delete(_ dbctx.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *fakePageRepo) IsPathUniqueInProject(_ dbctx.Context, projectID, path, excludeID string) (bool, error) {
	for _, rec := range r.records(projectID) {
		if rec.Path == path && rec.ID != excludeID {
			return false, nil
		}
	}
	return true, nil
}

func (r *fakePageRepo) IsNameUniqueInProject(_ dbctx.Context, projectID, name, excludeID string) (bool, error) {
	for _, rec := range r.records(projectID) {
		if rec.Name == name && rec.ID != excludeID {
			return false, nil
		}
	}
	return true, nil
}

func (r *fakePageRepo) FindByProjectIDWithPagination(_ dbctx.Context, q repos.PageListQuery) (paging.Result[*pages.Page], error) {
	p := q.Params.Normalize()
	var items []*pages.Page
	for _, rec := range r.records(q.ProjectID) {
		if q.PublishedOnly && !rec.IsPublished {
			continue
		}
		pg, err := pages.Restore(rec)
		if err != nil {
			return paging.Result[*pages.Page]{}, err
		}
		items = append(items, pg)
	}
	return paging.NewResult(items, int64(len(items)), p), nil
}

func (r *fakePageRepo) GetPageStats(_ dbctx.Context, projectID string) (repos.PageStats, error) {
	var s repos.PageStats
	for _, rec := range r.records(projectID) {
		s.Total++
		if rec.IsPublished {
			s.Published++
		}
		s.TotalComponents += int64(len(rec.Components))
	}
	s.Draft = s.Total - s.Published
	return s, nil
}

func (r *fakePageRepo) FindRecentlyUpdated(dbc dbctx.Context, projectID string, limit int) ([]*pages.Page, error) {
	all, err := r.FindByProjectID(dbc, projectID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakePageRepo) BulkUpdatePublishStatus(_ dbctx.Context, ids []string, published bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bulkCalls++
	for _, id := range ids {
		rec := r.rows[id]
		rec.IsPublished = published
		r.rows[id] = rec
	}
	return nil
}

func (r *fakePageRepo) CopyToProject(dbc dbctx.Context, pageID, targetProjectID, newName, newPath string) (*pages.Page, error) {
	src, err := r.FindByID(dbc, pageID)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, domainagg.NotFound("source page", pageID)
	}
	cp, err := pages.New(pages.NewPageInput{ProjectID: targetProjectID, Name: newName, Path: newPath, Title: src.Title()})
	if err != nil {
		return nil, err
	}
	cp.UpdateLayout(src.Layout())
	for _, c := range src.Components() {
		cp.AppendComponent(c.Clone())
	}
	return cp, r.Save(dbc, cp)
}

// ---- user repo ----

type fakeUserRepo struct {
	mu   sync.Mutex
	rows map[string]domainuser.Record
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{rows: map[string]domainuser.Record{}}
}

func (r *fakeUserRepo) FindByID(_ dbctx.Context, id string) (*domainuser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return domainuser.Restore(rec), nil
}

func (r *fakeUserRepo) FindByEmailOrUsername(_ dbctx.Context, login string) (*domainuser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email := domainuser.NormalizeEmail(login)
	for _, rec := range r.rows {
		if rec.Email == email || rec.Username == login {
			return domainuser.Restore(rec), nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) EmailExists(_ dbctx.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.rows {
		if rec.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) UsernameExists(_ dbctx.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.rows {
		if rec.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Save(_ dbctx.Context, u *domainuser.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[u.ID()] = u.Record()
	return nil
}

// ---- harness ----

type eventLog struct {
	mu  sync.Mutex
	got []events.Type
}

func (l *eventLog) Handle(_ context.Context, e events.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.got = append(l.got, e.Type())
	return nil
}

func (l *eventLog) types() []events.Type {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]events.Type(nil), l.got...)
}

func (l *eventLog) reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.got = nil
}

func (l *eventLog) has(t events.Type) bool {
	for _, got := range l.types() {
		if got == t {
			return true
		}
	}
	return false
}

type harness struct {
	runner   *testutil.InjectedTxRunner
	hooks    *testutil.HooksRecorder
	projects *fakeProjectRepo
	pages    *fakePageRepo
	users    *fakeUserRepo
	events   *eventLog

	projectSvc ProjectService
	pageSvc    PageService
	authSvc    AuthService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	log := logger.NewNop()
	h := &harness{
		runner: &testutil.InjectedTxRunner{},
		hooks:  &testutil.HooksRecorder{},
		pages:  newFakePageRepo(),
		users:  newFakeUserRepo(),
		events: &eventLog{},
	}
	h.projects = newFakeProjectRepo(h.pages)
	writer := aggregates.NewWriter(aggregates.BaseDeps{Runner: h.runner, Hooks: h.hooks})
	d := eventbus.NewDispatcher(log)
	eventbus.RegisterAll(d, h.events)
	h.projectSvc = NewProjectService(log, writer, h.projects, h.pages, h.users, d)
	h.pageSvc = NewPageService(log, writer, h.projects, h.pages, d)
	h.authSvc = NewAuthService(log, writer, h.users, "test-secret", time.Hour)
	return h
}

func (h *harness) seedUser(t *testing.T, email, username string) string {
	t.Helper()
	u, err := domainuser.Register(email, username, "secret123")
	if err != nil {
		t.Fatalf("register user: %v", err)
	}
	if err := h.users.Save(dbctx.Context{}, u); err != nil {
		t.Fatalf("save user: %v", err)
	}
	return u.ID()
}

func (h *harness) createProject(t *testing.T, userID, name string) projects.Record {
	t.Helper()
	res, err := h.projectSvc.CreateProject(context.Background(), CreateProjectCommand{UserID: userID, Name: name})
	if err != nil || !res.Success {
		t.Fatalf("create project: err=%v res=%+v", err, res)
	}
	return res.Data
}

func (h *harness) createPage(t *testing.T, userID, projectID, name, path string) pages.Record {
	t.Helper()
	res, err := h.pageSvc.CreatePage(context.Background(), CreatePageCommand{
		ProjectID: projectID,
		UserID:    userID,
		Name:      name,
		Path:      path,
	})
	if err != nil || !res.Success {
		t.Fatalf("create page: err=%v res=%+v", err, res)
	}
	return res.Data
}

func (h *harness) addText(t *testing.T, userID, pageID, content string) string {
	t.Helper()
	res, err := h.pageSvc.AddComponent(context.Background(), AddComponentCommand{
		PageID:        pageID,
		UserID:        userID,
		ComponentType: components.TypeText,
		Props:         map[string]any{"content": content},
	})
	if err != nil || !res.Success {
		t.Fatalf("add component: err=%v res=%+v", err, res)
	}
	return res.Data.ID
}

func requireFailure[T any](t *testing.T, res Result[T], err error, code domainagg.ErrorCode) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Success {
		t.Fatalf("success: want=false got=true")
	}
	if res.Code != code {
		t.Fatalf("code: want=%s got=%s (%s)", code, res.Code, res.Error)
	}
}
