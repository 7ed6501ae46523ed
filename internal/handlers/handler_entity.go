package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// entityHandler handles HTTP requests related to entities and business units.
type entityHandler struct {
	entityService portssvc.EntitySvcFacade
}

func newEntityHandler(es portssvc.EntitySvcFacade) *entityHandler {
	return &entityHandler{entityService: es}
}

// createEntity godoc
// @Summary Create an entity
// @Description Creates a new accounting entity with its own chart of accounts
// @Tags entities
// @Accept json
// @Produce json
// @Param entity body dto.CreateEntityRequest true "Entity details"
// @Param X-Actor header string false "Actor recorded in audit fields"
// @Success 201 {object} dto.EntityResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Slug already in use"
// @Failure 500 {object} map[string]string "Failed to create entity"
// @Router /entities [post]
func (h *entityHandler) createEntity(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "CreateEntity")
		return
	}

	actor := middleware.GetActorFromContext(c)
	entity, err := h.entityService.CreateEntity(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to create entity")
		return
	}

	logger.Info("Entity created", slog.String("entity_id", entity.EntityID), slog.String("slug", entity.Slug))
	c.JSON(http.StatusCreated, dto.ToEntityResponse(entity))
}

// getEntity godoc
// @Summary Get an entity
// @Tags entities
// @Produce json
// @Param entityID path string true "Entity ID"
// @Success 200 {object} dto.EntityResponse
// @Failure 404 {object} map[string]string "Entity not found"
// @Router /entities/{entityID} [get]
func (h *entityHandler) getEntity(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	entity, err := h.entityService.GetEntity(c.Request.Context(), c.Param("entityID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve entity")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntityResponse(entity))
}

// createUnit godoc
// @Summary Create a business unit
// @Tags entities
// @Accept json
// @Produce json
// @Param entityID path string true "Entity ID"
// @Param unit body dto.CreateUnitRequest true "Unit details"
// @Success 201 {object} dto.UnitResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Entity not found"
// @Failure 409 {object} map[string]string "Slug already in use"
// @Router /entities/{entityID}/units [post]
func (h *entityHandler) createUnit(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "CreateUnit")
		return
	}

	entityID := c.Param("entityID")
	unit, err := h.entityService.CreateUnit(c.Request.Context(), entityID, req, middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, logger, err, "Failed to create unit")
		return
	}

	logger.Info("Unit created", slog.String("entity_id", entityID), slog.String("unit_id", unit.UnitID))
	c.JSON(http.StatusCreated, dto.UnitResponse{UnitID: unit.UnitID, EntityID: unit.EntityID, Name: unit.Name, Slug: unit.Slug})
}

// listUnits godoc
// @Summary List business units
// @Tags entities
// @Produce json
// @Param entityID path string true "Entity ID"
// @Success 200 {array} dto.UnitResponse
// @Failure 404 {object} map[string]string "Entity not found"
// @Router /entities/{entityID}/units [get]
func (h *entityHandler) listUnits(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	units, err := h.entityService.ListUnits(c.Request.Context(), c.Param("entityID"))
	if err != nil {
		respondError(c, logger, err, "Failed to list units")
		return
	}
	c.JSON(http.StatusOK, dto.ToUnitResponses(units))
}
