package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// DigestSvc aggregates transactions into balances and financial statements.
type DigestSvc interface {
	Digest(ctx context.Context, scope domain.Scope, q domain.DigestQuery) (*domain.DigestResult, error)
}

// ClosingReaderSvc defines read operations for closing entries
type ClosingReaderSvc interface {
	ListClosingEntries(ctx context.Context, entityID string) ([]domain.ClosingEntry, error)
}

// ClosingWriterSvc defines the period close operation
type ClosingWriterSvc interface {
	// ClosePeriod checkpoints cumulative balances through date and closes every period
	// up to and including it.
	ClosePeriod(ctx context.Context, entityID string, date time.Time, actor string) (*domain.ClosingEntry, error)
}

// ClosingSvcFacade combines the closing entry service interfaces
type ClosingSvcFacade interface {
	ClosingReaderSvc
	ClosingWriterSvc
}
