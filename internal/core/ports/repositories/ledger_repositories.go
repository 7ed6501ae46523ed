package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// LedgerReader defines read operations for ledger data
type LedgerReader interface {
	// FindLedgerByID retrieves a ledger by its unique identifier.
	FindLedgerByID(ctx context.Context, ledgerID string) (*domain.Ledger, error)

	// FindLedgerByExternalID retrieves a ledger by the caller supplied xid within an entity.
	FindLedgerByExternalID(ctx context.Context, entityID, externalID string) (*domain.Ledger, error)

	// ListLedgers retrieves all ledgers of an entity.
	ListLedgers(ctx context.Context, entityID string) ([]domain.Ledger, error)
}

// LedgerWriter defines write operations for ledger data
type LedgerWriter interface {
	// SaveLedger persists a new ledger.
	SaveLedger(ctx context.Context, ledger domain.Ledger) error

	// UpdateLedgerState persists the posted and locked flags of a ledger.
	UpdateLedgerState(ctx context.Context, ledger domain.Ledger) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
