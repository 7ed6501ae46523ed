package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// DigestReader is the read surface available inside a digest snapshot.
type DigestReader interface {
	// ClosingEntryDates lists the posted closing entry dates of an entity, ascending.
	ClosingEntryDates(ctx context.Context, entityID string) ([]time.Time, error)

	// ClosingEntryLines returns the lines of the posted closing entry dated exactly date.
	ClosingEntryLines(ctx context.Context, entityID string, date time.Time) ([]domain.ClosingEntryLine, error)

	// AggregateTransactions runs phase one aggregation over transaction lines.
	AggregateTransactions(ctx context.Context, q domain.AggregateQuery) ([]domain.AggregateRow, error)
}

// DigestRepository provides consistent read snapshots for the digest pipeline.
type DigestRepository interface {
	// ReadSnapshot runs fn against a reader that sees one consistent state of the store.
	ReadSnapshot(ctx context.Context, fn func(r DigestReader) error) error
}
