package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// ClosingEntryReader defines read operations for closing entries
type ClosingEntryReader interface {
	// ListClosingEntries returns the closing entries of an entity without lines,
	// ordered by closing date.
	ListClosingEntries(ctx context.Context, entityID string) ([]domain.ClosingEntry, error)
}

// ClosingEntryBuilder computes a closing entry from the balances visible to r.
type ClosingEntryBuilder func(r DigestReader) (domain.ClosingEntry, error)

// ClosingEntryWriter defines write operations for closing entries
type ClosingEntryWriter interface {
	// CloseEntityPeriod locks the entity against posting, hands build a reader over the
	// locked state and persists the closing entry build returns. A posted entry advances
	// the entity LastClosingDate. Summing and saving happen in one atomic unit, so no
	// journal entry can land in the period between the two.
	CloseEntityPeriod(ctx context.Context, entityID string, build ClosingEntryBuilder) (domain.ClosingEntry, error)
}

// ClosingEntryRepositoryFacade combines all closing entry repository interfaces
type ClosingEntryRepositoryFacade interface {
	ClosingEntryReader
	ClosingEntryWriter
}
