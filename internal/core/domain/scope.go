package domain

import "fmt"

// Scope selects the base set of transactions an operation works on. The set of
// implementations is closed: EntityScope, LedgerScope and UnitScope.
type Scope interface {
	// Entity returns the owning entity id.
	Entity() string
	// Filter returns the base transaction filter of the scope.
	Filter() ScopeFilter
	// Kind is a short label used in logs and metrics.
	Kind() string
	// PostingTarget resolves the ledger and unit a commit request writes to.
	PostingTarget(req CommitRequest) (ledgerID, unitID string, err error)

	isScope()
}

// ScopeFilter restricts aggregation to an entity and optionally a ledger or unit.
type ScopeFilter struct {
	EntityID string
	LedgerID string
	UnitID   string
}

// EntityScope covers every ledger of the entity.
type EntityScope struct {
	EntityID string
}

func (s EntityScope) Entity() string      { return s.EntityID }
func (s EntityScope) Filter() ScopeFilter { return ScopeFilter{EntityID: s.EntityID} }
func (EntityScope) Kind() string          { return "entity" }
func (EntityScope) isScope()              {}

func (s EntityScope) PostingTarget(req CommitRequest) (string, string, error) {
	if req.LedgerID == "" {
		return "", "", fmt.Errorf("%w: entity scoped commits must name a ledger", ErrMissingLedger)
	}
	return req.LedgerID, req.UnitID, nil
}

// LedgerScope covers a single ledger.
type LedgerScope struct {
	EntityID string
	LedgerID string
}

func (s LedgerScope) Entity() string { return s.EntityID }
func (s LedgerScope) Filter() ScopeFilter {
	return ScopeFilter{EntityID: s.EntityID, LedgerID: s.LedgerID}
}
func (LedgerScope) Kind() string { return "ledger" }
func (LedgerScope) isScope()     {}

func (s LedgerScope) PostingTarget(req CommitRequest) (string, string, error) {
	if req.LedgerID != "" && req.LedgerID != s.LedgerID {
		return "", "", fmt.Errorf("%w: ledger %s outside scope ledger %s", ErrCrossEntityReference, req.LedgerID, s.LedgerID)
	}
	return s.LedgerID, req.UnitID, nil
}

// UnitScope covers journal entries tagged with a business unit, across ledgers.
type UnitScope struct {
	EntityID string
	UnitID   string
}

func (s UnitScope) Entity() string { return s.EntityID }
func (s UnitScope) Filter() ScopeFilter {
	return ScopeFilter{EntityID: s.EntityID, UnitID: s.UnitID}
}
func (UnitScope) Kind() string { return "unit" }
func (UnitScope) isScope()     {}

func (s UnitScope) PostingTarget(req CommitRequest) (string, string, error) {
	if req.LedgerID == "" {
		return "", "", fmt.Errorf("%w: unit scoped commits must name a ledger", ErrMissingLedger)
	}
	if req.UnitID != "" && req.UnitID != s.UnitID {
		return "", "", fmt.Errorf("%w: unit %s outside scope unit %s", ErrCrossEntityReference, req.UnitID, s.UnitID)
	}
	return req.LedgerID, s.UnitID, nil
}

var (
	_ Scope = EntityScope{}
	_ Scope = LedgerScope{}
	_ Scope = UnitScope{}
)
