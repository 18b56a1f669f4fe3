package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/sitebuilder-backend/internal/http/response"
	"github.com/yungbote/sitebuilder-backend/internal/platform/ctxutil"
	"github.com/yungbote/sitebuilder-backend/internal/services"
)

// respond writes a use-case outcome: infrastructure errors become 500,
// failed results map their code, successes use status.
func respond[T any](c *gin.Context, status int, res services.Result[T], err error) {
	if err != nil {
		response.RespondInternal(c, err)
		return
	}
	if !res.Success {
		response.RespondFailure(c, res.Code, res.Error)
		return
	}
	c.JSON(status, response.DataEnvelope{Data: res.Data})
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return false
	}
	return true
}

func callerID(c *gin.Context) string {
	return ctxutil.UserID(c.Request.Context())
}

func queryInt(c *gin.Context, key string, def int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func queryBool(c *gin.Context, key string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(c.Query(key)))
	return b
}
