package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// ListAccounts returns the entity chart in depth-first code order.
	ListAccounts(ctx context.Context, entityID string) ([]domain.Account, error)

	// GetAccountTree returns the entity chart as a tree.
	GetAccountTree(ctx context.Context, entityID string) (*domain.AccountTree, error)

	// ListSubAccounts returns every account below the given code, depth first.
	ListSubAccounts(ctx context.Context, entityID, code string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	// SeedChart validates a chart definition and persists its accounts under the default
	// root nodes. Root nodes are created on the first seed.
	SeedChart(ctx context.Context, entityID string, seed domain.ChartSeed, actor string) ([]domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
