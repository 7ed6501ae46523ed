// Package store opens the repository provider selected by configuration.
package store

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_engine/internal/repositories/memory"
	"github.com/SscSPs/ledger_engine/pkg/database"
)

// Options tune Open.
type Options struct {
	// Migrate applies pending migrations before the pool is handed out.
	Migrate bool
}

// Open returns the repositories for cfg.StoreDriver and a function releasing them.
func Open(ctx context.Context, cfg *config.Config, opts Options) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		slog.WarnContext(ctx, "Using the in-memory store, data is lost on exit")
		return memory.New().Provider(), func() {}, nil
	case config.StoreDriverPostgres:
		if opts.Migrate {
			if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, database.Up); err != nil {
				return portsrepo.RepositoryProvider{}, nil, err
			}
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		return pgsql.NewRepositoryProvider(pool), func() { database.ClosePgxPool(pool) }, nil
	default:
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
