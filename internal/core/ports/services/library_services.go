package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// IOLibrarySvc is a registry of named blueprint functions and the factory of cursors.
type IOLibrarySvc interface {
	// Register adds a blueprint function under name. Names must be unique.
	Register(name string, fn domain.BlueprintFunc) error

	// Blueprints lists the registered names in order.
	Blueprints() []string

	// GetCursor returns a new cursor bound to an entity and actor.
	GetCursor(entityID, actor string, mode domain.CursorMode) CursorSvc
}

// CursorSvc accumulates blueprint dispatches across ledgers and commits them.
type CursorSvc interface {
	// Dispatch queues a registered blueprint; the blueprint runs at commit time.
	Dispatch(name string, ref domain.LedgerRef, params domain.BlueprintParams) error

	// Commit validates every queued ledger before writing anything, then commits one
	// journal entry per ledger. A cursor commits at most once.
	Commit(ctx context.Context, opts domain.CursorCommitOptions) ([]domain.LedgerCommitResult, error)

	// Committed reports whether Commit has started writing.
	Committed() bool
}
