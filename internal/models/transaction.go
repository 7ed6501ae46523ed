package models

import "github.com/shopspring/decimal"

// Transaction represents a single line item within a JournalEntry, affecting one account.
type Transaction struct {
	TransactionID  string          `db:"transaction_id"`
	JournalEntryID string          `db:"journal_entry_id"`
	AccountID      string          `db:"account_id"`
	TxType         string          `db:"tx_type"` // debit or credit
	Amount         decimal.Decimal `db:"amount"`  // Positive value
	Description    string          `db:"description"`
	Cleared        bool            `db:"cleared"`
	Reconciled     bool            `db:"reconciled"`
	AuditFields
}
