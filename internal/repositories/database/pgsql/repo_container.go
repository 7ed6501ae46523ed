package pgsql

import (
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every PostgreSQL repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		EntityRepo:       newPgxEntityRepository(dbPool),
		AccountRepo:      newPgxAccountRepository(dbPool),
		LedgerRepo:       newPgxLedgerRepository(dbPool),
		JournalRepo:      newPgxJournalRepository(dbPool),
		ClosingEntryRepo: newPgxClosingEntryRepository(dbPool),
		DigestRepo:       newPgxDigestRepository(dbPool),
	}
}
