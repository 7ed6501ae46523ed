package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles ledger creation, lookup and lifecycle transitions.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// createLedger godoc
// @Summary Create a ledger
// @Tags ledgers
// @Accept json
// @Produce json
// @Param entityID path string true "Entity ID"
// @Param ledger body dto.CreateLedgerRequest true "Ledger details"
// @Success 201 {object} dto.LedgerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Entity not found"
// @Failure 409 {object} map[string]string "External ID already in use"
// @Router /entities/{entityID}/ledgers [post]
func (h *ledgerHandler) createLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "CreateLedger")
		return
	}

	entityID := c.Param("entityID")
	ledger, err := h.ledgerService.CreateLedger(c.Request.Context(), entityID, req, middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, logger, err, "Failed to create ledger")
		return
	}

	logger.Info("Ledger created", slog.String("entity_id", entityID), slog.String("ledger_id", ledger.LedgerID))
	c.JSON(http.StatusCreated, dto.ToLedgerResponse(ledger))
}

// listLedgers godoc
// @Summary List ledgers of an entity
// @Tags ledgers
// @Produce json
// @Param entityID path string true "Entity ID"
// @Success 200 {array} dto.LedgerResponse
// @Failure 404 {object} map[string]string "Entity not found"
// @Router /entities/{entityID}/ledgers [get]
func (h *ledgerHandler) listLedgers(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	ledgers, err := h.ledgerService.ListLedgers(c.Request.Context(), c.Param("entityID"))
	if err != nil {
		respondError(c, logger, err, "Failed to list ledgers")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLedgerResponse(ledgers))
}

// getLedger godoc
// @Summary Get a ledger
// @Tags ledgers
// @Produce json
// @Param ledgerID path string true "Ledger ID"
// @Success 200 {object} dto.LedgerResponse
// @Failure 404 {object} map[string]string "Ledger not found"
// @Router /ledgers/{ledgerID} [get]
func (h *ledgerHandler) getLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	ledger, err := h.ledgerService.GetLedger(c.Request.Context(), c.Param("ledgerID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}

type ledgerTransition func(ctx context.Context, ledgerID, actor string) (*domain.Ledger, error)

// transition runs one lifecycle change and answers with the updated ledger.
func (h *ledgerHandler) transition(name string, fn ledgerTransition) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromContext(c)
		ledgerID := c.Param("ledgerID")
		ledger, err := fn(c.Request.Context(), ledgerID, middleware.GetActorFromContext(c))
		if err != nil {
			respondError(c, logger, err, "Failed to "+name+" ledger")
			return
		}
		logger.Info("Ledger transitioned", slog.String("ledger_id", ledgerID), slog.String("transition", name))
		c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
	}
}

// postLedger godoc
// @Summary Post a ledger
// @Description Marks a draft ledger as posted so its entries count in posted-only digests
// @Tags ledgers
// @Produce json
// @Param ledgerID path string true "Ledger ID"
// @Success 200 {object} dto.LedgerResponse
// @Failure 404 {object} map[string]string "Ledger not found"
// @Failure 409 {object} map[string]string "Invalid transition"
// @Router /ledgers/{ledgerID}/post [post]
func (h *ledgerHandler) postLedger(c *gin.Context) {
	h.transition("post", h.ledgerService.PostLedger)(c)
}

// lockLedger godoc
// @Summary Lock a ledger
// @Description A locked ledger rejects further commits
// @Tags ledgers
// @Produce json
// @Param ledgerID path string true "Ledger ID"
// @Success 200 {object} dto.LedgerResponse
// @Failure 404 {object} map[string]string "Ledger not found"
// @Failure 409 {object} map[string]string "Invalid transition"
// @Router /ledgers/{ledgerID}/lock [post]
func (h *ledgerHandler) lockLedger(c *gin.Context) {
	h.transition("lock", h.ledgerService.LockLedger)(c)
}

// unlockLedger godoc
// @Summary Unlock a ledger
// @Tags ledgers
// @Produce json
// @Param ledgerID path string true "Ledger ID"
// @Success 200 {object} dto.LedgerResponse
// @Failure 404 {object} map[string]string "Ledger not found"
// @Failure 409 {object} map[string]string "Invalid transition"
// @Router /ledgers/{ledgerID}/unlock [post]
func (h *ledgerHandler) unlockLedger(c *gin.Context) {
	h.transition("unlock", h.ledgerService.UnlockLedger)(c)
}
