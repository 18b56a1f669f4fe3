// Package repos exposes the repository ports used by the services.
package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/sitebuilder-backend/internal/data/repos/page"
	"github.com/yungbote/sitebuilder-backend/internal/data/repos/project"
	"github.com/yungbote/sitebuilder-backend/internal/data/repos/user"
	"github.com/yungbote/sitebuilder-backend/internal/platform/logger"
)

type ProjectRepo = project.ProjectRepo
type ProjectListQuery = project.ListQuery
type ProjectStats = project.Stats

type PageRepo = page.PageRepo
type PageListQuery = page.ListQuery
type PageStats = page.Stats

type UserRepo = user.UserRepo

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	return project.NewProjectRepo(db, baseLog)
}
func NewPageRepo(db *gorm.DB, baseLog *logger.Logger) PageRepo { return page.NewPageRepo(db, baseLog) }
func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
