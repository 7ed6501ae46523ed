package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// CreateEntityRequest defines the data needed to create a new accounting entity.
type CreateEntityRequest struct {
	Name      string `json:"name" binding:"required"`
	Slug      string `json:"slug"`      // Optional, derived from name when empty
	ChartSlug string `json:"chartSlug"` // Optional, defaults to "default"
}

// EntityResponse defines the data returned for an entity.
type EntityResponse struct {
	EntityID        string     `json:"entityID"`
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	ChartSlug       string     `json:"chartSlug"`
	LastClosingDate *time.Time `json:"lastClosingDate,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	CreatedBy       string     `json:"createdBy"`
}

// ToEntityResponse converts a domain.Entity to EntityResponse DTO.
func ToEntityResponse(e *domain.Entity) EntityResponse {
	return EntityResponse{
		EntityID:        e.EntityID,
		Name:            e.Name,
		Slug:            e.Slug,
		ChartSlug:       e.ChartSlug,
		LastClosingDate: e.LastClosingDate,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
}

// CreateUnitRequest defines the data needed to create a business unit.
type CreateUnitRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug"`
}

// UnitResponse defines the data returned for a business unit.
type UnitResponse struct {
	UnitID   string `json:"unitID"`
	EntityID string `json:"entityID"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
}

// ToUnitResponses converts units to their DTOs.
func ToUnitResponses(units []domain.Unit) []UnitResponse {
	out := make([]UnitResponse, len(units))
	for i, u := range units {
		out[i] = UnitResponse{UnitID: u.UnitID, EntityID: u.EntityID, Name: u.Name, Slug: u.Slug}
	}
	return out
}
