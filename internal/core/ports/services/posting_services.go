package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// PostingSvc commits balanced transaction lines as journal entries.
type PostingSvc interface {
	// CommitTxs validates the request and writes one journal entry with its lines as a
	// single atomic unit. Nothing is written when an error is returned.
	CommitTxs(ctx context.Context, scope domain.Scope, req domain.CommitRequest) (*domain.CommitResult, error)
}
