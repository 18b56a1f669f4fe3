package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/sitebuilder-backend/internal/domain/projects"
	"github.com/yungbote/sitebuilder-backend/internal/services"
)

type ProjectHandler struct {
	projectService services.ProjectService
}

func NewProjectHandler(projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type projectRequest struct {
	Name        *string                `json:"name"`
	Description *string                `json:"description"`
	Config      *projects.ConfigRecord `json:"config"`
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req projectRequest
	if !bindJSON(c, &req) {
		return
	}
	cmd := services.CreateProjectCommand{
		UserID:      callerID(c),
		Description: req.Description,
		Config:      req.Config,
	}
	if req.Name != nil {
		cmd.Name = *req.Name
	}
	res, err := h.projectService.CreateProject(c.Request.Context(), cmd)
	respond(c, http.StatusCreated, res, err)
}

func (h *ProjectHandler) List(c *gin.Context) {
	res, err := h.projectService.GetUserProjects(c.Request.Context(), services.GetUserProjectsQuery{
		UserID: callerID(c),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 0),
		Search: c.Query("search"),
		Status: projects.Status(c.Query("status")),
	})
	respond(c, http.StatusOK, res, err)
}

// Get returns the project, with its pages when ?include=pages.
func (h *ProjectHandler) Get(c *gin.Context) {
	q := services.ProjectCommand{ProjectID: c.Param("id"), UserID: callerID(c)}
	if c.Query("include") == "pages" {
		res, err := h.projectService.GetProjectWithPages(c.Request.Context(), q)
		respond(c, http.StatusOK, res, err)
		return
	}
	res, err := h.projectService.GetProject(c.Request.Context(), q)
	respond(c, http.StatusOK, res, err)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	var req projectRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.projectService.UpdateProject(c.Request.Context(), services.UpdateProjectCommand{
		ProjectID:   c.Param("id"),
		UserID:      callerID(c),
		Name:        req.Name,
		Description: req.Description,
		Config:      req.Config,
	})
	respond(c, http.StatusOK, res, err)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	res, err := h.projectService.DeleteProject(c.Request.Context(), h.command(c))
	respond(c, http.StatusOK, res, err)
}

func (h *ProjectHandler) Publish(c *gin.Context) {
	res, err := h.projectService.PublishProject(c.Request.Context(), h.command(c))
	respond(c, http.StatusOK, res, err)
}

func (h *ProjectHandler) Archive(c *gin.Context) {
	res, err := h.projectService.ArchiveProject(c.Request.Context(), h.command(c))
	respond(c, http.StatusOK, res, err)
}

func (h *ProjectHandler) Duplicate(c *gin.Context) {
	var req struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
	}
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	res, err := h.projectService.DuplicateProject(c.Request.Context(), services.DuplicateProjectCommand{
		SourceProjectID: c.Param("id"),
		UserID:          callerID(c),
		NewName:         req.Name,
		NewDescription:  req.Description,
	})
	respond(c, http.StatusCreated, res, err)
}

func (h *ProjectHandler) Stats(c *gin.Context) {
	res, err := h.projectService.GetProjectStats(c.Request.Context(), callerID(c))
	respond(c, http.StatusOK, res, err)
}

func (h *ProjectHandler) Recent(c *gin.Context) {
	res, err := h.projectService.GetRecentProjects(c.Request.Context(), callerID(c), queryInt(c, "limit", 0))
	respond(c, http.StatusOK, res, err)
}

func (h *ProjectHandler) command(c *gin.Context) services.ProjectCommand {
	return services.ProjectCommand{ProjectID: c.Param("id"), UserID: callerID(c)}
}
