package models

import "time"

// JournalEntry represents a timestamped, balanced group of transactions on a ledger.
type JournalEntry struct {
	JournalEntryID string    `db:"journal_entry_id"`
	LedgerID       string    `db:"ledger_id"`
	EntityID       string    `db:"entity_id"`
	UnitID         string    `db:"unit_id"`   // Nullable
	ParentID       string    `db:"parent_id"` // Nullable
	Timestamp      time.Time `db:"timestamp"`
	Description    string    `db:"description"`
	Origin         string    `db:"origin"`
	Activity       string    `db:"activity"` // Nullable
	IsPosted       bool      `db:"is_posted"`
	IsLocked       bool      `db:"is_locked"`
	AuditFields
}
