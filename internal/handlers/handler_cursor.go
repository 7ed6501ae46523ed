package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// cursorHandler runs a whole cursor (dispatch list plus commit) in one request.
type cursorHandler struct {
	library     portssvc.IOLibrarySvc
	defaultMode domain.CursorMode
}

func newCursorHandler(lib portssvc.IOLibrarySvc, mode domain.CursorMode) *cursorHandler {
	return &cursorHandler{library: lib, defaultMode: mode}
}

// commitCursor godoc
// @Summary Dispatch blueprints and commit them
// @Description Every ledger is validated before anything is written; then one journal entry is committed per ledger. A partial failure answers 409 with the per ledger outcome.
// @Tags cursor
// @Accept json
// @Produce json
// @Param entityID path string true "Entity ID"
// @Param request body dto.CursorCommitRequest true "Dispatches and commit options"
// @Success 201 {object} dto.CursorCommitResponse
// @Failure 400 {object} map[string]string "Validation error, nothing written"
// @Failure 404 {object} map[string]string "Unknown blueprint or ledger"
// @Failure 409 {object} dto.CursorCommitResponse "Some ledgers failed to commit"
// @Router /entities/{entityID}/cursor [post]
func (h *cursorHandler) commitCursor(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CursorCommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "CursorCommit")
		return
	}
	opts, err := req.CommitOptions()
	if err != nil {
		respondError(c, logger, err, "Invalid cursor request")
		return
	}

	entityID := c.Param("entityID")
	cur := h.library.GetCursor(entityID, middleware.GetActorFromContext(c), req.CursorMode(h.defaultMode))
	for _, d := range req.Dispatches {
		if err := cur.Dispatch(d.Blueprint, d.Ref(), domain.BlueprintParams(d.Params)); err != nil {
			respondError(c, logger, err, "Failed to dispatch blueprint")
			return
		}
	}

	results, err := cur.Commit(c.Request.Context(), opts)
	if err != nil && !errors.Is(err, domain.ErrPartialCommit) {
		respondError(c, logger, err, "Failed to commit cursor")
		return
	}

	resp := dto.ToCursorCommitResponse(results)
	if err != nil {
		logger.Warn("Cursor partially committed", slog.String("entity_id", entityID), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, resp)
		return
	}
	logger.Info("Cursor committed", slog.String("entity_id", entityID), slog.Int("ledgers", len(results)))
	c.JSON(http.StatusCreated, resp)
}
