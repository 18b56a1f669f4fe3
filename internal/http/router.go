package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/sitebuilder-backend/internal/http/handlers"
	httpMW "github.com/yungbote/sitebuilder-backend/internal/http/middleware"
	"github.com/yungbote/sitebuilder-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowedOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler    *httpH.HealthHandler
	AuthHandler      *httpH.AuthHandler
	ComponentHandler *httpH.ComponentHandler
	ProjectHandler   *httpH.ProjectHandler
	PageHandler      *httpH.PageHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log, "/healthcheck"))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Component palette
		if cfg.ComponentHandler != nil {
			protected.GET("/component-types", cfg.ComponentHandler.ListTypes)
			protected.GET("/component-types/:type", cfg.ComponentHandler.GetType)
		}

		// Projects
		if cfg.ProjectHandler != nil {
			protected.GET("/projects", cfg.ProjectHandler.List)
			protected.POST("/projects", cfg.ProjectHandler.Create)
			protected.GET("/projects/stats", cfg.ProjectHandler.Stats)
			protected.GET("/projects/recent", cfg.ProjectHandler.Recent)
			protected.GET("/projects/:id", cfg.ProjectHandler.Get)
			protected.PUT("/projects/:id", cfg.ProjectHandler.Update)
			protected.DELETE("/projects/:id", cfg.ProjectHandler.Delete)
			protected.POST("/projects/:id/publish", cfg.ProjectHandler.Publish)
			protected.POST("/projects/:id/archive", cfg.ProjectHandler.Archive)
			protected.POST("/projects/:id/duplicate", cfg.ProjectHandler.Duplicate)
		}

		// Pages
		if cfg.PageHandler != nil {
			protected.GET("/projects/:id/pages", cfg.PageHandler.ListByProject)
			protected.POST("/projects/:id/pages", cfg.PageHandler.Create)
			protected.GET("/projects/:id/pages/stats", cfg.PageHandler.Stats)
			protected.GET("/projects/:id/pages/recent", cfg.PageHandler.Recent)
			protected.PUT("/projects/:id/pages/publish-status", cfg.PageHandler.BulkPublishStatus)

			protected.GET("/pages/:id", cfg.PageHandler.Get)
			protected.PUT("/pages/:id", cfg.PageHandler.Update)
			protected.DELETE("/pages/:id", cfg.PageHandler.Delete)
			protected.POST("/pages/:id/publish", cfg.PageHandler.Publish)
			protected.POST("/pages/:id/unpublish", cfg.PageHandler.Unpublish)
			protected.GET("/pages/:id/preview", cfg.PageHandler.Preview)
			protected.POST("/pages/:id/copy", cfg.PageHandler.Copy)

			protected.POST("/pages/:id/components", cfg.PageHandler.AddComponent)
			protected.PUT("/pages/:id/components/order", cfg.PageHandler.ReorderComponents)
			protected.PUT("/pages/:id/components/:componentId", cfg.PageHandler.UpdateComponent)
			protected.DELETE("/pages/:id/components/:componentId", cfg.PageHandler.RemoveComponent)
		}
	}

	return r
}
