package middleware

import (
	"strconv"
	"time"

	"github.com/SscSPs/ledger_engine/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// RequestMetrics records the duration of every request by route template and status.
func RequestMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RecordRequestDuration(route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
