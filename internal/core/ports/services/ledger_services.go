package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// LedgerReaderSvc defines read operations for ledgers and their journal entries
type LedgerReaderSvc interface {
	GetLedger(ctx context.Context, ledgerID string) (*domain.Ledger, error)
	ListLedgers(ctx context.Context, entityID string) ([]domain.Ledger, error)

	// ListJournalEntries retrieves a page of journal entries of a ledger, newest first.
	ListJournalEntries(ctx context.Context, ledgerID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)

	// GetJournalEntry retrieves a journal entry with its transactions.
	GetJournalEntry(ctx context.Context, journalEntryID string) (*domain.JournalEntry, []domain.Transaction, error)
}

// LedgerWriterSvc defines write operations and lifecycle transitions for ledgers
type LedgerWriterSvc interface {
	CreateLedger(ctx context.Context, entityID string, req dto.CreateLedgerRequest, actor string) (*domain.Ledger, error)
	PostLedger(ctx context.Context, ledgerID string, actor string) (*domain.Ledger, error)
	LockLedger(ctx context.Context, ledgerID string, actor string) (*domain.Ledger, error)
	UnlockLedger(ctx context.Context, ledgerID string, actor string) (*domain.Ledger, error)

	// DeleteJournalEntry removes an unlocked journal entry of an open period.
	DeleteJournalEntry(ctx context.Context, journalEntryID string, actor string) error
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
