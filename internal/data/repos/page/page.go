package page

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/sitebuilder-backend/internal/data/models"
	"github.com/yungbote/sitebuilder-backend/internal/data/repos/paging"
	domainagg "github.com/yungbote/sitebuilder-backend/internal/domain/aggregates"
	"github.com/yungbote/sitebuilder-backend/internal/domain/pages"
	"github.com/yungbote/sitebuilder-backend/internal/platform/dbctx"
	"github.com/yungbote/sitebuilder-backend/internal/platform/logger"
)

const defaultRecentLimit = 5

type ListQuery struct {
	paging.Params
	ProjectID     string
	PublishedOnly bool
}

type Stats struct {
	Total           int64 `json:"total"`
	Published       int64 `json:"published"`
	Draft           int64 `json:"draft"`
	TotalComponents int64 `json:"total_components"`
}

type PageRepo interface {
	// FindByID returns nil without error when the page does not exist.
	FindByID(dbc dbctx.Context, id string) (*pages.Page, error)
	FindByProjectID(dbc dbctx.Context, projectID string) ([]*pages.Page, error)
	Save(dbc dbctx.Context, p *pages.Page) error
	Delete(dbc dbctx.Context, id string) error
	IsPathUniqueInProject(dbc dbctx.Context, projectID, path, excludeID string) (bool, error)
	IsNameUniqueInProject(dbc dbctx.Context, projectID, name, excludeID string) (bool, error)
	FindByProjectIDWithPagination(dbc dbctx.Context, q ListQuery) (paging.Result[*pages.Page], error)
	GetPageStats(dbc dbctx.Context, projectID string) (Stats, error)
	FindRecentlyUpdated(dbc dbctx.Context, projectID string, limit int) ([]*pages.Page, error)
	BulkUpdatePublishStatus(dbc dbctx.Context, ids []string, published bool) error
	// CopyToProject stores a copy of the page in targetProjectID. Empty
	// newName and newPath derive "<name> (Copy)" and "<path>-copy". The
	// returned page still holds its creation events.
	CopyToProject(dbc dbctx.Context, pageID, targetProjectID, newName, newPath string) (*pages.Page, error)
}

type pageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPageRepo(db *gorm.DB, baseLog *logger.Logger) PageRepo {
	return &pageRepo{db: db, log: baseLog.With("repo", "PageRepo")}
}

func (r *pageRepo) FindByID(dbc dbctx.Context, id string) (*pages.Page, error) {
	var row models.Page
	err := dbc.DB(r.db).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomain(&row)
}

func (r *pageRepo) FindByProjectID(dbc dbctx.Context, projectID string) ([]*pages.Page, error) {
	var rows []*models.Page
	if err := dbc.DB(r.db).
		Where("project_id = ?", projectID).
		Order("updated_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainList(rows)
}

func (r *pageRepo) Save(dbc dbctx.Context, p *pages.Page) error {
	if p == nil {
		return nil
	}
	row, err := models.PageFromRecord(p.Record())
	if err != nil {
		return err
	}
	return dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name",
				"path",
				"title",
				"components",
				"layout",
				"is_published",
				"updated_at",
			}),
		}).
		Create(row).Error
}

func (r *pageRepo) Delete(dbc dbctx.Context, id string) error {
	return dbc.DB(r.db).Where("id = ?", id).Delete(&models.Page{}).Error
}

func (r *pageRepo) IsPathUniqueInProject(dbc dbctx.Context, projectID, path, excludeID string) (bool, error) {
	return r.unique(dbc, projectID, "path", path, excludeID)
}

func (r *pageRepo) IsNameUniqueInProject(dbc dbctx.Context, projectID, name, excludeID string) (bool, error) {
	return r.unique(dbc, projectID, "name", name, excludeID)
}

func (r *pageRepo) unique(dbc dbctx.Context, projectID, column, value, excludeID string) (bool, error) {
	q := dbc.DB(r.db).Model(&models.Page{}).
		Where("project_id = ?", projectID).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *pageRepo) FindByProjectIDWithPagination(dbc dbctx.Context, q ListQuery) (paging.Result[*pages.Page], error) {
	p := q.Params.Normalize()
	base := dbc.DB(r.db).Model(&models.Page{}).Where("project_id = ?", q.ProjectID)
	if p.Search != "" {
		like := p.Like()
		base = base.Where(
			`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(path) LIKE ? ESCAPE '\' OR LOWER(COALESCE(title, '')) LIKE ? ESCAPE '\')`,
			like, like, like,
		)
	}
	if q.PublishedOnly {
		base = base.Where("is_published = ?", true)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return paging.Result[*pages.Page]{}, err
	}
	var rows []*models.Page
	if err := base.Session(&gorm.Session{}).
		Order("updated_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return paging.Result[*pages.Page]{}, err
	}
	items, err := toDomainList(rows)
	if err != nil {
		return paging.Result[*pages.Page]{}, err
	}
	return paging.NewResult(items, total, p), nil
}

// GetPageStats counts components from the stored JSON arrays.
func (r *pageRepo) GetPageStats(dbc dbctx.Context, projectID string) (Stats, error) {
	var rows []*models.Page
	if err := dbc.DB(r.db).
		Select("id", "is_published", "components").
		Where("project_id = ?", projectID).
		Find(&rows).Error; err != nil {
		return Stats{}, err
	}
	var s Stats
	for _, row := range rows {
		s.Total++
		if row.IsPublished {
			s.Published++
		}
		s.TotalComponents += int64(row.ComponentCount())
	}
	s.Draft = s.Total - s.Published
	return s, nil
}

func (r *pageRepo) FindRecentlyUpdated(dbc dbctx.Context, projectID string, limit int) ([]*pages.Page, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	var rows []*models.Page
	if err := dbc.DB(r.db).
		Where("project_id = ?", projectID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainList(rows)
}

func (r *pageRepo) BulkUpdatePublishStatus(dbc dbctx.Context, ids []string, published bool) error {
	if len(ids) == 0 {
		return nil
	}
	return dbc.DB(r.db).Model(&models.Page{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"is_published": published,
			"updated_at":   time.Now().UTC(),
		}).Error
}

func (r *pageRepo) CopyToProject(dbc dbctx.Context, pageID, targetProjectID, newName, newPath string) (*pages.Page, error) {
	src, err := r.FindByID(dbc, pageID)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, domainagg.NotFound("source page", pageID)
	}
	if newName == "" {
		newName = src.Name() + " (Copy)"
	}
	if newPath == "" {
		newPath = src.Path() + "-copy"
	}

	cp, err := pages.New(pages.NewPageInput{
		ProjectID: targetProjectID,
		Name:      newName,
		Path:      newPath,
		Title:     src.Title(),
	})
	if err != nil {
		return nil, err
	}
	cp.UpdateLayout(src.Layout())
	for _, c := range src.Components() {
		cp.AppendComponent(c.Clone())
	}
	if err := r.Save(dbc, cp); err != nil {
		return nil, fmt.Errorf("save page copy: %w", err)
	}
	return cp, nil
}

func toDomain(row *models.Page) (*pages.Page, error) {
	rec, err := row.Record()
	if err != nil {
		return nil, err
	}
	return pages.Restore(rec)
}

func toDomainList(rows []*models.Page) ([]*pages.Page, error) {
	out := make([]*pages.Page, 0, len(rows))
	for _, row := range rows {
		p, err := toDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
