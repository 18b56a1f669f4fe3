package app

import (
	"github.com/yungbote/sitebuilder-backend/internal/http"
	httpH "github.com/yungbote/sitebuilder-backend/internal/http/handlers"
	httpMW "github.com/yungbote/sitebuilder-backend/internal/http/middleware"
	"github.com/yungbote/sitebuilder-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health    *httpH.HealthHandler
	Auth      *httpH.AuthHandler
	Component *httpH.ComponentHandler
	Project   *httpH.ProjectHandler
	Page      *httpH.PageHandler
}

func wireHandlers(log *logger.Logger, services Services, db httpH.Pinger) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(db),
		Auth:      httpH.NewAuthHandler(services.Auth),
		Component: httpH.NewComponentHandler(),
		Project:   httpH.NewProjectHandler(services.Project),
		Page:      httpH.NewPageHandler(services.Page),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *http.Server {
	return http.NewServer(http.RouterConfig{
		Log:              log,
		ServiceName:      tracingServiceName(cfg),
		AllowedOrigins:   cfg.AllowedOrigins,
		AuthMiddleware:   middleware.Auth,
		HealthHandler:    handlers.Health,
		AuthHandler:      handlers.Auth,
		ComponentHandler: handlers.Component,
		ProjectHandler:   handlers.Project,
		PageHandler:      handlers.Page,
	})
}

// tracingServiceName is empty when tracing is off, which keeps otelgin out
// of the middleware chain.
func tracingServiceName(cfg Config) string {
	if !cfg.Otel.Enabled {
		return ""
	}
	return cfg.Otel.ServiceName
}
