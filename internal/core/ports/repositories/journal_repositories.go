package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// JournalEntryReader defines read operations for journal entry data
type JournalEntryReader interface {
	// FindJournalEntryByID retrieves a specific journal entry by its unique identifier.
	FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// FindJournalEntryByTimestamp retrieves the journal entry of a ledger at exactly ts.
	FindJournalEntryByTimestamp(ctx context.Context, ledgerID string, ts time.Time) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a page of journal entries of a ledger, newest first.
	// It returns the entries, a token for the next page, and an error.
	ListJournalEntries(ctx context.Context, ledgerID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionsByJournalEntryID retrieves all transactions of a journal entry.
	FindTransactionsByJournalEntryID(ctx context.Context, journalEntryID string) ([]domain.Transaction, error)
}

// JournalEntryWriter defines write operations for journal entry data
type JournalEntryWriter interface {
	// CommitJournalEntry persists a posting plan as one atomic unit. Inside that unit it
	// re-checks the entity closing date and the ledger lock, creates or locates the
	// journal entry, inserts the lines, validates the journal entry balance against
	// plan.Tolerance and marks the entry posted when plan.Post is set.
	CommitJournalEntry(ctx context.Context, plan domain.PostingPlan) (domain.JournalEntry, []domain.Transaction, error)

	// DeleteJournalEntry removes a journal entry and all of its transactions. Inside the
	// same atomic unit it refuses locked entries, locked ledgers and closed periods.
	DeleteJournalEntry(ctx context.Context, journalEntryID string) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalEntryReader
	TransactionReader
	JournalEntryWriter
}
