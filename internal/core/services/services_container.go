package services

import (
	"time"

	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/platform/cache"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, m *metrics.Metrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The digest and closing services share the closing date cache so a close
	// invalidates what digests read.
	dates := cache.New[[]time.Time](cfg.ClosingEntryCacheTTL)

	container.Entity = NewEntityService(repos.EntityRepo)
	container.Account = NewAccountService(repos.EntityRepo, repos.AccountRepo)
	container.Ledger = NewLedgerService(repos.EntityRepo, repos.LedgerRepo, repos.JournalRepo)

	container.Posting = NewPostingService(
		repos.EntityRepo,
		repos.LedgerRepo,
		repos.AccountRepo,
		repos.JournalRepo,
		WithTolerance(cfg.BalanceTolerance),
		WithPostingMetrics(m),
	)
	container.Digest = NewDigestService(
		repos.EntityRepo,
		repos.LedgerRepo,
		repos.AccountRepo,
		repos.DigestRepo,
		WithClosingEntries(cfg.UseClosingEntries),
		WithClosingDateCache(dates),
		WithDigestMetrics(m),
	)
	container.Closing = NewClosingService(
		repos.EntityRepo,
		repos.AccountRepo,
		repos.ClosingEntryRepo,
		WithClosingCache(dates),
	)
	container.Library = NewIOLibrary(
		repos.LedgerRepo,
		repos.AccountRepo,
		container.Posting,
		WithLibraryMetrics(m),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.EntitySvcFacade  = (*entityService)(nil)
	_ portssvc.AccountSvcFacade = (*accountService)(nil)
	_ portssvc.LedgerSvcFacade  = (*ledgerService)(nil)
	_ portssvc.CursorSvc        = (*cursor)(nil)
)
