package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/SscSPs/ledger_engine/internal/utils/timeutil"
	"github.com/gin-gonic/gin"
)

// closingHandler closes periods and lists the resulting checkpoints.
type closingHandler struct {
	closingService portssvc.ClosingSvcFacade
}

func newClosingHandler(cs portssvc.ClosingSvcFacade) *closingHandler {
	return &closingHandler{closingService: cs}
}

// closePeriod godoc
// @Summary Close a period
// @Description Checkpoints cumulative balances through the date; later commits dated on or before it are rejected
// @Tags closing
// @Accept json
// @Produce json
// @Param entityID path string true "Entity ID"
// @Param request body dto.ClosePeriodRequest true "Closing date"
// @Success 201 {object} domain.ClosingEntry
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 404 {object} map[string]string "Entity not found"
// @Failure 409 {object} map[string]string "Period already closed"
// @Router /entities/{entityID}/close [post]
func (h *closingHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.ClosePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "ClosePeriod")
		return
	}
	date, err := timeutil.ParseIOTimestamp(req.Date)
	if err != nil {
		respondError(c, logger, err, "Invalid closing date")
		return
	}

	entityID := c.Param("entityID")
	entry, err := h.closingService.ClosePeriod(c.Request.Context(), entityID, date, middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, logger, err, "Failed to close period")
		return
	}

	logger.Info("Period closed",
		slog.String("entity_id", entityID),
		slog.String("closing_date", entry.ClosingDate.Format(time.DateOnly)),
		slog.Int("lines", len(entry.Lines)))
	c.JSON(http.StatusCreated, entry)
}

// listClosingEntries godoc
// @Summary List closing entries
// @Tags closing
// @Produce json
// @Param entityID path string true "Entity ID"
// @Success 200 {array} domain.ClosingEntry
// @Failure 404 {object} map[string]string "Entity not found"
// @Router /entities/{entityID}/closing-entries [get]
func (h *closingHandler) listClosingEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	entries, err := h.closingService.ListClosingEntries(c.Request.Context(), c.Param("entityID"))
	if err != nil {
		respondError(c, logger, err, "Failed to list closing entries")
		return
	}
	c.JSON(http.StatusOK, entries)
}
