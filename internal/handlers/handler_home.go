package handlers

import (
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// commit origins reported on the health endpoint
var healthOrigins = []string{"api", "cursor", "cli", "unknown"}

var healthCheckpointStates = []string{
	string(domain.CheckpointDirect),
	string(domain.CheckpointExactTo),
	string(domain.CheckpointCarryForward),
	string(domain.CheckpointBounded),
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status  string           `json:"status"`
	Metrics metrics.Snapshot `json:"metrics"`
}

// getHealth godoc
// @Summary Show the status of server.
// @Description Reports liveness and a summary of commit, checkpoint and cache counters.
// @Tags root
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func getHealth(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := HealthResponse{Status: "OK"}
		if m != nil {
			resp.Metrics = m.GetSnapshot(healthOrigins, healthCheckpointStates)
		}
		c.JSON(http.StatusOK, resp)
	}
}
