package project

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/sitebuilder-backend/internal/data/models"
	"github.com/yungbote/sitebuilder-backend/internal/data/repos/paging"
	"github.com/yungbote/sitebuilder-backend/internal/domain/projects"
	"github.com/yungbote/sitebuilder-backend/internal/platform/dbctx"
	"github.com/yungbote/sitebuilder-backend/internal/platform/logger"
)

const defaultRecentLimit = 5

type ListQuery struct {
	paging.Params
	UserID string
	// Status filters when non-empty.
	Status projects.Status
}

type Stats struct {
	Total     int64 `json:"total"`
	Published int64 `json:"published"`
	Draft     int64 `json:"draft"`
	Archived  int64 `json:"archived"`
}

type ProjectRepo interface {
	// FindByID returns nil without error when the project does not exist.
	FindByID(dbc dbctx.Context, id string) (*projects.Project, error)
	Save(dbc dbctx.Context, p *projects.Project) error
	// Delete removes the project and all of its pages.
	Delete(dbc dbctx.Context, id string) error
	IsNameUniqueForUser(dbc dbctx.Context, userID, name, excludeID string) (bool, error)
	FindByUserIDWithPagination(dbc dbctx.Context, q ListQuery) (paging.Result[*projects.Project], error)
	GetProjectStats(dbc dbctx.Context, userID string) (Stats, error)
	FindRecentlyUpdated(dbc dbctx.Context, userID string, limit int) ([]*projects.Project, error)
}

type projectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	return &projectRepo{db: db, log: baseLog.With("repo", "ProjectRepo")}
}

func (r *projectRepo) FindByID(dbc dbctx.Context, id string) (*projects.Project, error) {
	var row models.Project
	err := dbc.DB(r.db).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomain(&row)
}

func (r *projectRepo) Save(dbc dbctx.Context, p *projects.Project) error {
	if p == nil {
		return nil
	}
	row, err := models.ProjectFromRecord(p.Record())
	if err != nil {
		return err
	}
	return dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name",
				"description",
				"status",
				"config",
				"updated_at",
			}),
		}).
		Create(row).Error
}

func (r *projectRepo) Delete(dbc dbctx.Context, id string) error {
	t := dbc.DB(r.db)
	if err := t.Where("project_id = ?", id).Delete(&models.Page{}).Error; err != nil {
		return fmt.Errorf("delete project pages: %w", err)
	}
	return t.Where("id = ?", id).Delete(&models.Project{}).Error
}

func (r *projectRepo) IsNameUniqueForUser(dbc dbctx.Context, userID, name, excludeID string) (bool, error) {
	q := dbc.DB(r.db).Model(&models.Project{}).Where("user_id = ? AND name = ?", userID, name)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *projectRepo) FindByUserIDWithPagination(dbc dbctx.Context, q ListQuery) (paging.Result[*projects.Project], error) {
	p := q.Params.Normalize()
	base := dbc.DB(r.db).Model(&models.Project{}).Where("user_id = ?", q.UserID)
	if p.Search != "" {
		like := p.Like()
		base = base.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(COALESCE(description, '')) LIKE ? ESCAPE '\')`, like, like)
	}
	if q.Status != "" {
		base = base.Where("status = ?", string(q.Status))
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return paging.Result[*projects.Project]{}, err
	}
	var rows []*models.Project
	if err := base.Session(&gorm.Session{}).
		Order("updated_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return paging.Result[*projects.Project]{}, err
	}
	items, err := toDomainList(rows)
	if err != nil {
		return paging.Result[*projects.Project]{}, err
	}
	return paging.NewResult(items, total, p), nil
}

func (r *projectRepo) GetProjectStats(dbc dbctx.Context, userID string) (Stats, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	if err := dbc.DB(r.db).Model(&models.Project{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&counts).Error; err != nil {
		return Stats{}, err
	}
	var s Stats
	for _, c := range counts {
		s.Total += c.Count
		switch projects.Status(c.Status) {
		case projects.StatusPublished:
			s.Published = c.Count
		case projects.StatusDraft:
			s.Draft = c.Count
		case projects.StatusArchived:
			s.Archived = c.Count
		}
	}
	return s, nil
}

func (r *projectRepo) FindRecentlyUpdated(dbc dbctx.Context, userID string, limit int) ([]*projects.Project, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	var rows []*models.Project
	if err := dbc.DB(r.db).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainList(rows)
}

func toDomain(row *models.Project) (*projects.Project, error) {
	rec, err := row.Record()
	if err != nil {
		return nil, err
	}
	return projects.Restore(rec)
}

func toDomainList(rows []*models.Project) ([]*projects.Project, error) {
	out := make([]*projects.Project, 0, len(rows))
	for _, row := range rows {
		p, err := toDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
