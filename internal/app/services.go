package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/sitebuilder-backend/internal/data/aggregates"
	"github.com/yungbote/sitebuilder-backend/internal/platform/eventbus"
	"github.com/yungbote/sitebuilder-backend/internal/platform/logger"
	"github.com/yungbote/sitebuilder-backend/internal/realtime/bus"
	"github.com/yungbote/sitebuilder-backend/internal/services"
)

type Services struct {
	Dispatcher eventbus.Dispatcher
	Writer     aggregates.Writer

	Auth    services.AuthService
	Project services.ProjectService
	Page    services.PageService
}

// wireDispatcher registers the log handler for every event type and, when a
// bus is configured, the redis publisher as well.
func wireDispatcher(log *logger.Logger, eventBus bus.Bus) eventbus.Dispatcher {
	d := eventbus.NewDispatcher(log)
	eventbus.RegisterAll(d, eventbus.NewLogHandler(log))
	if eventBus != nil {
		eventbus.RegisterAll(d, bus.NewHandler(eventBus))
	}
	return d
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, eventBus bus.Bus) Services {
	log.Info("Wiring services...")
	writer := aggregates.NewWriter(aggregates.BaseDeps{
		DB:    db,
		Hooks: aggregates.NewLogHooks(log, cfg.SlowWrite),
	})
	dispatcher := wireDispatcher(log, eventBus)
	return Services{
		Dispatcher: dispatcher,
		Writer:     writer,
		Auth:       services.NewAuthService(log, writer, reposet.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Project:    services.NewProjectService(log, writer, reposet.Project, reposet.Page, reposet.User, dispatcher),
		Page:       services.NewPageService(log, writer, reposet.Project, reposet.Page, dispatcher),
	}
}
