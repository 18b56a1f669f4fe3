package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/sitebuilder-backend/internal/domain/components"
	"github.com/yungbote/sitebuilder-backend/internal/services"
)

type PageHandler struct {
	pageService services.PageService
}

func NewPageHandler(pageService services.PageService) *PageHandler {
	return &PageHandler{pageService: pageService}
}

type pageRequest struct {
	Name   *string               `json:"name"`
	Path   *string               `json:"path"`
	Title  *string               `json:"title"`
	Layout *services.LayoutInput `json:"layout"`
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (h *PageHandler) Create(c *gin.Context) {
	var req pageRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.pageService.CreatePage(c.Request.Context(), services.CreatePageCommand{
		ProjectID: c.Param("id"),
		UserID:    callerID(c),
		Name:      derefString(req.Name),
		Path:      derefString(req.Path),
		Title:     req.Title,
		Layout:    req.Layout,
	})
	respond(c, http.StatusCreated, res, err)
}

// ListByProject returns published pages unless ?include_unpublished=true.
func (h *PageHandler) ListByProject(c *gin.Context) {
	res, err := h.pageService.GetProjectPages(c.Request.Context(), services.GetProjectPagesQuery{
		ProjectID:          c.Param("id"),
		UserID:             callerID(c),
		Page:               queryInt(c, "page", 1),
		Limit:              queryInt(c, "limit", 0),
		Search:             c.Query("search"),
		IncludeUnpublished: queryBool(c, "include_unpublished"),
	})
	respond(c, http.StatusOK, res, err)
}

func (h *PageHandler) Stats(c *gin.Context) {
	res, err := h.pageService.GetPageStats(c.Request.Context(), services.ProjectCommand{ProjectID: c.Param("id"), UserID: callerID(c)})
	respond(c, http.StatusOK, res, err)
}

func (h *PageHandler) Recent(c *gin.Context) {
	res, err := h.pageService.GetRecentPages(c.Request.Context(), services.ProjectCommand{ProjectID: c.Param("id"), UserID: callerID(c)}, queryInt(c, "limit", 0))
	respond(c, http.StatusOK, res, err)
}

func (h *PageHandler) BulkPublishStatus(c *gin.Context) {
	var req struct {
		PageIDs   []string `json:"page_ids" binding:"required"`
		Published *bool    `json:"published" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.pageService.BulkSetPublished(c.Request.Context(), services.BulkSetPublishedCommand{
		ProjectID: c.Param("id"),
		UserID:    callerID(c),
		PageIDs:   req.PageIDs,
		Published: *req.Published,
	})
	respond(c, http.StatusOK, res, err)
}

func (h *PageHandler) Get(c *gin.Context) {
	res, err := h.pageService.GetPage(c.Request.Context(), h.command(c))
	respond(c, http.StatusOK, res, err)
}

func (h *PageHandler) Update(c *gin.Context) {
	var req pageRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.pageService.UpdatePage(c.Request.Context(), services.UpdatePageCommand{
		PageID: c.Param("id"),
		UserID: callerID(c),
		Name:   req.Name,
		Path:   req.Path,
		Title:  req.Title,
		Layout: req.Layout,
	})
	respond(c, http.StatusOK, res, err)
}

func (h *PageHandler) Delete(c *gin.Context) {
	res, err := h.pageService.DeletePage(c.Request.Context(), h.command(c))
	respond(c, http.StatusOK, res, err)
}

func (h *PageHandler) Publish(c *gin.Context) {
	res, err := h.pageService.PublishPage(c.Request.Context(), h.command(c))
	respond(c, http.StatusOK, res, err)
}

func (h *PageHandler) Unpublish(c *gin.Context) {
	res, err := h.pageService.UnpublishPage(c.Request.Context(), h.command(c))
	respond(c, http.StatusOK, res, err)
}

func (h *PageHandler) Preview(c *gin.Context) {
	res, err := h.pageService.PreviewPage(c.Request.Context(), h.command(c))
	respond(c, http.StatusOK, res, err)
}

func (h *PageHandler) Copy(c *gin.Context) {
	var req struct {
		TargetProjectID string `json:"target_project_id"`
		Name            string `json:"name"`
		Path            string `json:"path"`
	}
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	res, err := h.pageService.CopyPage(c.Request.Context(), services.CopyPageCommand{
		SourcePageID:    c.Param("id"),
		TargetProjectID: req.TargetProjectID,
		UserID:          callerID(c),
		NewName:         req.Name,
		NewPath:         req.Path,
	})
	respond(c, http.StatusCreated, res, err)
}

func (h *PageHandler) AddComponent(c *gin.Context) {
	var req struct {
		Type     string         `json:"type" binding:"required"`
		Props    map[string]any `json:"props"`
		Position *int           `json:"position"`
	}
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.pageService.AddComponent(c.Request.Context(), services.AddComponentCommand{
		PageID:        c.Param("id"),
		UserID:        callerID(c),
		ComponentType: components.Type(req.Type),
		Props:         req.Props,
		Position:      req.Position,
	})
	respond(c, http.StatusCreated, res, err)
}

func (h *PageHandler) UpdateComponent(c *gin.Context) {
	var req struct {
		Props map[string]any `json:"props" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.pageService.UpdateComponent(c.Request.Context(), services.UpdateComponentCommand{
		PageID:      c.Param("id"),
		ComponentID: c.Param("componentId"),
		UserID:      callerID(c),
		Props:       req.Props,
	})
	respond(c, http.StatusOK, res, err)
}

func (h *PageHandler) RemoveComponent(c *gin.Context) {
	res, err := h.pageService.RemoveComponent(c.Request.Context(), services.RemoveComponentCommand{
		PageID:      c.Param("id"),
		ComponentID: c.Param("componentId"),
		UserID:      callerID(c),
	})
	respond(c, http.StatusOK, res, err)
}

func (h *PageHandler) ReorderComponents(c *gin.Context) {
	var req struct {
		ComponentIDs []string `json:"component_ids" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.pageService.ReorderComponents(c.Request.Context(), services.ReorderComponentsCommand{
		PageID:       c.Param("id"),
		UserID:       callerID(c),
		ComponentIDs: req.ComponentIDs,
	})
	respond(c, http.StatusOK, res, err)
}

func (h *PageHandler) command(c *gin.Context) services.PageCommand {
	return services.PageCommand{PageID: c.Param("id"), UserID: callerID(c)}
}
