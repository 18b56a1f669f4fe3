package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/sitebuilder-backend/internal/data/repos"
	"github.com/yungbote/sitebuilder-backend/internal/platform/logger"
)

type Repos struct {
	Project repos.ProjectRepo
	Page    repos.PageRepo
	User    repos.UserRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Project: repos.NewProjectRepo(db, log),
		Page:    repos.NewPageRepo(db, log),
		User:    repos.NewUserRepo(db, log),
	}
}
