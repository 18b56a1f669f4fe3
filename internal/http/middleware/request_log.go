package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/sitebuilder-backend/internal/platform/ctxutil"
	"github.com/yungbote/sitebuilder-backend/internal/platform/logger"
)

// RequestLogger writes one line per request once the handler chain is done.
// Paths in quiet are logged at debug level unless they fail.
func RequestLogger(log *logger.Logger, quiet ...string) gin.HandlerFunc {
	quietPaths := make(map[string]bool, len(quiet))
	for _, p := range quiet {
		quietPaths[p] = true
	}
	return func(c *gin.Context) {
		if log == nil {
			c.Next()
			return
		}
		began := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		kv := []any{
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"latency", time.Since(began).String(),
			"bytes", c.Writer.Size(),
			"client_ip", c.ClientIP(),
		}
		ctx := c.Request.Context()
		if td := ctxutil.GetTraceData(ctx); td != nil {
			kv = append(kv, "request_id", td.RequestID)
			if td.TraceID != "" {
				kv = append(kv, "trace_id", td.TraceID)
			}
		}
		if userID := ctxutil.UserID(ctx); userID != "" {
			kv = append(kv, "user_id", userID)
		}
		if len(c.Errors) > 0 {
			kv = append(kv, "errors", c.Errors.Errors())
		}

		switch {
		case status >= 500:
			log.Error("request failed", kv...)
		case status >= 400:
			log.Warn("request rejected", kv...)
		case quietPaths[route]:
			log.Debug("request served", kv...)
		default:
			log.Info("request served", kv...)
		}
	}
}
