package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// EventSink receives one event per successful API request.
type EventSink interface {
	IsEnabled() bool
	Enqueue(distinctID, event string, properties map[string]any)
}

// pathsToSkip contains paths that are never tracked.
var pathsToSkip = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// Analytics tracks successful requests, keyed by actor, with the route template as the
// event name ("/api/v1/ledgers/:ledgerID/lock" becomes "api_v1_ledgers_:ledgerID_lock").
func Analytics(sink EventSink) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sink == nil || !sink.IsEnabled() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, p := range c.Params {
				params[p.Key] = p.Value
			}
			props["params"] = params
		}
		sink.Enqueue(GetActorFromContext(c), eventName, props)
	}
}
