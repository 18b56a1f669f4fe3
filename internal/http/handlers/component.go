package handlers

import (
	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/sitebuilder-backend/internal/domain/aggregates"
	"github.com/yungbote/sitebuilder-backend/internal/domain/components"
	"github.com/yungbote/sitebuilder-backend/internal/http/response"
)

// ComponentHandler serves the component palette.
type ComponentHandler struct{}

func NewComponentHandler() *ComponentHandler { return &ComponentHandler{} }

func (h *ComponentHandler) ListTypes(c *gin.Context) {
	response.RespondOK(c, components.Definitions())
}

func (h *ComponentHandler) GetType(c *gin.Context) {
	def, err := components.Lookup(components.Type(c.Param("type")))
	if err != nil {
		response.RespondFailure(c, domainagg.CodeNotFound, domainagg.MessageOf(err))
		return
	}
	response.RespondOK(c, def)
}
