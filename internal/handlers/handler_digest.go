package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// digestHandler serves balances and financial statements at entity, ledger and unit scope.
type digestHandler struct {
	digestService portssvc.DigestSvc
	ledgerService portssvc.LedgerReaderSvc
	entityService portssvc.EntityReaderSvc
}

func newDigestHandler(ds portssvc.DigestSvc, ls portssvc.LedgerReaderSvc, es portssvc.EntityReaderSvc) *digestHandler {
	return &digestHandler{digestService: ds, ledgerService: ls, entityService: es}
}

// entityDigest godoc
// @Summary Digest an entity
// @Description Aggregates every ledger of the entity into balances, breakdowns and statements
// @Tags digest
// @Accept json
// @Produce json
// @Param entityID path string true "Entity ID"
// @Param query body dto.DigestRequest true "Digest options"
// @Success 200 {object} domain.DigestResult
// @Failure 400 {object} map[string]string "Invalid options"
// @Failure 404 {object} map[string]string "Entity not found"
// @Router /entities/{entityID}/digest [post]
func (h *digestHandler) entityDigest(c *gin.Context) {
	h.digest(c, domain.EntityScope{EntityID: c.Param("entityID")})
}

// ledgerDigest godoc
// @Summary Digest a ledger
// @Description Ledger scope never uses closing entries
// @Tags digest
// @Accept json
// @Produce json
// @Param ledgerID path string true "Ledger ID"
// @Param query body dto.DigestRequest true "Digest options"
// @Success 200 {object} domain.DigestResult
// @Failure 400 {object} map[string]string "Invalid options"
// @Failure 404 {object} map[string]string "Ledger not found"
// @Router /ledgers/{ledgerID}/digest [post]
func (h *digestHandler) ledgerDigest(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	ledger, err := h.ledgerService.GetLedger(c.Request.Context(), c.Param("ledgerID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve ledger")
		return
	}
	h.digest(c, domain.LedgerScope{EntityID: ledger.EntityID, LedgerID: ledger.LedgerID})
}

// unitDigest godoc
// @Summary Digest a business unit
// @Tags digest
// @Accept json
// @Produce json
// @Param unitID path string true "Unit ID"
// @Param query body dto.DigestRequest true "Digest options"
// @Success 200 {object} domain.DigestResult
// @Failure 400 {object} map[string]string "Invalid options"
// @Failure 404 {object} map[string]string "Unit not found"
// @Router /units/{unitID}/digest [post]
func (h *digestHandler) unitDigest(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	unit, err := h.entityService.GetUnit(c.Request.Context(), c.Param("unitID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve unit")
		return
	}
	h.digest(c, domain.UnitScope{EntityID: unit.EntityID, UnitID: unit.UnitID})
}

func (h *digestHandler) digest(c *gin.Context, scope domain.Scope) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.DigestRequest
	// an empty body asks for plain balances
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, logger, err, "Digest")
			return
		}
	}
	q, err := req.ToQuery()
	if err != nil {
		respondError(c, logger, err, "Invalid digest request")
		return
	}

	res, err := h.digestService.Digest(c.Request.Context(), scope, q)
	if err != nil {
		respondError(c, logger, err, "Failed to digest")
		return
	}
	logger.Debug("Digest served",
		slog.String("scope", scope.Kind()),
		slog.String("checkpoint", string(res.Checkpoint)),
		slog.Int("rows", len(res.Rows)))
	c.JSON(http.StatusOK, res)
}
