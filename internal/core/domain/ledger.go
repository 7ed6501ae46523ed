package domain

import (
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
)

// Ledger is a named transaction journal owned by an entity.
type Ledger struct {
	LedgerID   string `json:"ledgerID"`
	EntityID   string `json:"entityID"`
	Name       string `json:"name"`
	ExternalID string `json:"externalID,omitempty"` // caller supplied xid, unique per entity
	IsPosted   bool   `json:"isPosted"`
	IsLocked   bool   `json:"isLocked"`
	AuditFields
}

// LedgerState enumerates the lifecycle transitions exposed by the ledger service.
type LedgerState string

const (
	LedgerPost   LedgerState = "post"
	LedgerUnpost LedgerState = "unpost"
	LedgerLock   LedgerState = "lock"
	LedgerUnlock LedgerState = "unlock"
)

// Apply returns the ledger after the transition, or an error if it is not allowed.
// Locking requires a posted ledger and a locked ledger cannot be unposted.
func (l Ledger) Apply(state LedgerState) (Ledger, error) {
	switch state {
	case LedgerPost:
		l.IsPosted = true
	case LedgerUnpost:
		if l.IsLocked {
			return l, ErrLockedLedger
		}
		l.IsPosted = false
	case LedgerLock:
		if !l.IsPosted {
			return l, ErrLedgerNotPosted
		}
		l.IsLocked = true
	case LedgerUnlock:
		l.IsLocked = false
	default:
		return l, fmt.Errorf("%w: unknown ledger transition %q", apperrors.ErrValidation, state)
	}
	return l, nil
}
