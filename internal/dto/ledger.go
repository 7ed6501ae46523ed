package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// CreateLedgerRequest defines the data needed to create a ledger.
type CreateLedgerRequest struct {
	Name       string `json:"name" binding:"required"`
	ExternalID string `json:"externalID"`
	Posted     bool   `json:"posted"`
}

// LedgerResponse defines the data returned for a ledger.
type LedgerResponse struct {
	LedgerID      string    `json:"ledgerID"`
	EntityID      string    `json:"entityID"`
	Name          string    `json:"name"`
	ExternalID    string    `json:"externalID,omitempty"`
	IsPosted      bool      `json:"isPosted"`
	IsLocked      bool      `json:"isLocked"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToLedgerResponse converts a domain.Ledger to LedgerResponse DTO.
func ToLedgerResponse(l *domain.Ledger) LedgerResponse {
	return LedgerResponse{
		LedgerID:      l.LedgerID,
		EntityID:      l.EntityID,
		Name:          l.Name,
		ExternalID:    l.ExternalID,
		IsPosted:      l.IsPosted,
		IsLocked:      l.IsLocked,
		CreatedAt:     l.CreatedAt,
		CreatedBy:     l.CreatedBy,
		LastUpdatedAt: l.LastUpdatedAt,
		LastUpdatedBy: l.LastUpdatedBy,
	}
}

// ToListLedgerResponse converts a slice of ledgers.
func ToListLedgerResponse(ledgers []domain.Ledger) []LedgerResponse {
	out := make([]LedgerResponse, len(ledgers))
	for i := range ledgers {
		out[i] = ToLedgerResponse(&ledgers[i])
	}
	return out
}
