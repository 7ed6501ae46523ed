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

// journalHandler handles commits and journal entry reads.
type journalHandler struct {
	postingService portssvc.PostingSvc
	ledgerService  portssvc.LedgerSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(ps portssvc.PostingSvc, ls portssvc.LedgerSvcFacade) *journalHandler {
	return &journalHandler{postingService: ps, ledgerService: ls}
}

// commitEntityTxs godoc
// @Summary Commit transactions (entity scope)
// @Description Validates balanced lines and writes one journal entry on the named ledger
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param entityID path string true "Entity ID"
// @Param request body dto.CommitTxsRequest true "Transaction lines"
// @Success 201 {object} dto.GetJournalEntryResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Entity, ledger or account not found"
// @Failure 409 {object} map[string]string "Closed period or locked ledger"
// @Router /entities/{entityID}/journal-entries [post]
func (h *journalHandler) commitEntityTxs(c *gin.Context) {
	h.commit(c, domain.EntityScope{EntityID: c.Param("entityID")})
}

// commitLedgerTxs godoc
// @Summary Commit transactions (ledger scope)
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param ledgerID path string true "Ledger ID"
// @Param request body dto.CommitTxsRequest true "Transaction lines"
// @Success 201 {object} dto.GetJournalEntryResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Ledger or account not found"
// @Failure 409 {object} map[string]string "Closed period or locked ledger"
// @Router /ledgers/{ledgerID}/journal-entries [post]
func (h *journalHandler) commitLedgerTxs(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	ledger, err := h.ledgerService.GetLedger(c.Request.Context(), c.Param("ledgerID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve ledger")
		return
	}
	h.commit(c, domain.LedgerScope{EntityID: ledger.EntityID, LedgerID: ledger.LedgerID})
}

func (h *journalHandler) commit(c *gin.Context, scope domain.Scope) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CommitTxsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "CommitTxs")
		return
	}
	commitReq, err := req.ToCommitRequest(middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, logger, err, "Invalid commit request")
		return
	}

	res, err := h.postingService.CommitTxs(c.Request.Context(), scope, commitReq)
	if err != nil {
		respondError(c, logger, err, "Failed to commit transactions")
		return
	}

	logger.Info("Journal entry committed",
		slog.String("scope", scope.Kind()),
		slog.String("journal_entry_id", res.JournalEntry.JournalEntryID))
	c.JSON(http.StatusCreated, dto.GetJournalEntryResponse{
		JournalEntry: dto.ToJournalEntryResponse(&res.JournalEntry),
		Transactions: dto.ToTransactionResponses(res.Transactions),
	})
}

// listJournalEntries godoc
// @Summary List journal entries of a ledger
// @Description Newest first, paginated with an opaque token
// @Tags journal-entries
// @Produce json
// @Param ledgerID path string true "Ledger ID"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 404 {object} map[string]string "Ledger not found"
// @Router /ledgers/{ledgerID}/journal-entries [get]
func (h *journalHandler) listJournalEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "ListJournalEntries")
		return
	}

	resp, err := h.ledgerService.ListJournalEntries(c.Request.Context(), c.Param("ledgerID"), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getJournalEntry godoc
// @Summary Get a journal entry with its transactions
// @Tags journal-entries
// @Produce json
// @Param journalEntryID path string true "Journal entry ID"
// @Success 200 {object} dto.GetJournalEntryResponse
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Router /journal-entries/{journalEntryID} [get]
func (h *journalHandler) getJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	je, txs, err := h.ledgerService.GetJournalEntry(c.Request.Context(), c.Param("journalEntryID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.GetJournalEntryResponse{
		JournalEntry: dto.ToJournalEntryResponse(je),
		Transactions: dto.ToTransactionResponses(txs),
	})
}

// deleteJournalEntry godoc
// @Summary Delete a journal entry
// @Description Removes an unlocked entry and its transactions; closed periods and locked ledgers refuse
// @Tags journal-entries
// @Param journalEntryID path string true "Journal entry ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Closed period, locked entry or locked ledger"
// @Router /journal-entries/{journalEntryID} [delete]
func (h *journalHandler) deleteJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	journalEntryID := c.Param("journalEntryID")
	if err := h.ledgerService.DeleteJournalEntry(c.Request.Context(), journalEntryID, middleware.GetActorFromContext(c)); err != nil {
		respondError(c, logger, err, "Failed to delete journal entry")
		return
	}
	logger.Info("Journal entry deleted", slog.String("journal_entry_id", journalEntryID))
	c.Status(http.StatusNoContent)
}
