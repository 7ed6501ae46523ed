package models

// Ledger is the row of the ledgers table.
type Ledger struct {
	LedgerID   string `db:"ledger_id"`
	EntityID   string `db:"entity_id"`
	Name       string `db:"name"`
	ExternalID string `db:"external_id"` // Nullable, unique per entity
	IsPosted   bool   `db:"is_posted"`
	IsLocked   bool   `db:"is_locked"`
	AuditFields
}
