package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single line item within a JournalEntry, affecting one account.
type Transaction struct {
	TransactionID  string          `json:"transactionID"`
	JournalEntryID string          `json:"journalEntryID"`
	AccountID      string          `json:"accountID"`
	TxType         TransactionType `json:"txType"`
	Amount         decimal.Decimal `json:"amount"` // never negative
	Description    string          `json:"description"`
	Cleared        bool            `json:"cleared"`
	Reconciled     bool            `json:"reconciled"`
	AuditFields
}

// TransactionLine is a caller supplied line descriptor. Either AccountID or AccountCode
// identifies the account; the posting service resolves codes against the entity chart.
type TransactionLine struct {
	AccountID   string          `json:"accountID,omitempty"`
	AccountCode string          `json:"accountCode,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	TxType      TransactionType `json:"txType"`
	Description string          `json:"description,omitempty"`
}

// Validate checks the line in isolation.
func (l TransactionLine) Validate() error {
	if l.AccountID == "" && l.AccountCode == "" {
		return fmt.Errorf("%w: line has no account", ErrInvalidLine)
	}
	if !l.TxType.IsValid() {
		return fmt.Errorf("%w: tx type %q", ErrInvalidLine, l.TxType)
	}
	if l.Amount.IsNegative() {
		return fmt.Errorf("%w: %s is negative", ErrInvalidAmount, l.Amount.String())
	}
	return nil
}

// CommitRequest carries the input of a single CommitTxs call.
type CommitRequest struct {
	Timestamp   time.Time
	Lines       []TransactionLine
	LedgerID    string
	UnitID      string
	ParentID    string
	Description string
	Origin      string
	// Post marks the journal entry posted in the same write as its lines.
	Post bool
	// ForceRetrieval appends the lines to the journal entry that already exists at
	// exactly Timestamp instead of creating a new one.
	ForceRetrieval bool
	Actor          string
}

// CommitResult is what CommitTxs produced.
type CommitResult struct {
	JournalEntry JournalEntry  `json:"journalEntry"`
	Transactions []Transaction `json:"transactions"`
}

// PostingPlan is a fully validated and resolved write handed to the store. The store
// re-checks ledger lock and closing date inside its own atomic unit.
type PostingPlan struct {
	EntityID       string
	LedgerID       string
	JournalEntry   JournalEntry // new entry, or the lookup key when ForceRetrieval is set
	ForceRetrieval bool
	Transactions   []Transaction
	Post           bool
	Tolerance      decimal.Decimal
}
