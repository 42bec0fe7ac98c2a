package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/interviewlab/interviewlab-backend/internal/platform/ctxutil"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

// RequestLogger writes one access log line per request. Paths in quiet are
// logged at debug level unless they fail.
func RequestLogger(log *logger.Logger, quiet ...string) gin.HandlerFunc {
	if log == nil {
		return func(c *gin.Context) { c.Next() }
	}
	quietPaths := make(map[string]bool, len(quiet))
	for _, p := range quiet {
		quietPaths[p] = true
	}
	accessLog := log.With("middleware", "RequestLogger")

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		fields := []interface{}{
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if td := ctxutil.GetTraceData(c.Request.Context()); td != nil {
			fields = append(fields, "trace_id", td.TraceID, "request_id", td.RequestID)
		}
		if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil && rd.IdentityID != "" {
			fields = append(fields, "identity_id", rd.IdentityID)
		}

		switch {
		case status >= 500:
			accessLog.Error("HTTP request", fields...)
		case status >= 400:
			accessLog.Warn("HTTP request", fields...)
		case quietPaths[route]:
			accessLog.Debug("HTTP request", fields...)
		default:
			accessLog.Info("HTTP request", fields...)
		}
	}
}
