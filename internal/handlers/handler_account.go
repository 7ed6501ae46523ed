package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// maxChartBytes bounds the size of an uploaded chart definition.
const maxChartBytes = 1 << 20

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// seedChart godoc
// @Summary Seed the chart of accounts
// @Description Validates a YAML or JSON chart definition and creates its accounts under the default root accounts
// @Tags accounts
// @Accept json
// @Accept application/x-yaml
// @Produce json
// @Param entityID path string true "Entity ID"
// @Param chart body domain.ChartSeed true "Chart definition"
// @Success 201 {array} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid chart"
// @Failure 404 {object} map[string]string "Entity not found"
// @Failure 409 {object} map[string]string "Account code already exists"
// @Router /entities/{entityID}/chart [post]
func (h *accountHandler) seedChart(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxChartBytes))
	if err != nil {
		bindError(c, logger, err, "SeedChart")
		return
	}
	seed, err := services.ParseChartSeed(body)
	if err != nil {
		respondError(c, logger, err, "Failed to parse chart")
		return
	}

	entityID := c.Param("entityID")
	accounts, err := h.accountService.SeedChart(c.Request.Context(), entityID, seed, middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, logger, err, "Failed to seed chart")
		return
	}

	logger.Info("Chart seeded", slog.String("entity_id", entityID), slog.Int("accounts", len(accounts)))
	c.JSON(http.StatusCreated, dto.ToListAccountResponse(accounts))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists the chart of accounts of an entity in depth-first code order
// @Tags accounts
// @Produce json
// @Param entityID path string true "Entity ID"
// @Param under query string false "Only accounts below this account code"
// @Success 200 {array} dto.AccountResponse
// @Failure 404 {object} map[string]string "Entity or parent account not found"
// @Router /entities/{entityID}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var (
		accounts []domain.Account
		err      error
	)
	if under := c.Query("under"); under != "" {
		accounts, err = h.accountService.ListSubAccounts(c.Request.Context(), c.Param("entityID"), under)
	} else {
		accounts, err = h.accountService.ListAccounts(c.Request.Context(), c.Param("entityID"))
	}
	if err != nil {
		respondError(c, logger, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// getAccountTree godoc
// @Summary Get the account tree
// @Tags accounts
// @Produce json
// @Param entityID path string true "Entity ID"
// @Success 200 {object} domain.AccountTree
// @Failure 404 {object} map[string]string "Entity not found"
// @Router /entities/{entityID}/accounts/tree [get]
func (h *accountHandler) getAccountTree(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	tree, err := h.accountService.GetAccountTree(c.Request.Context(), c.Param("entityID"))
	if err != nil {
		respondError(c, logger, err, "Failed to build account tree")
		return
	}
	c.JSON(http.StatusOK, tree)
}
