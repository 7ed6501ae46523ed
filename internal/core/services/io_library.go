package services

import (
	"fmt"
	"sync"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/platform/metrics"
)

// ioLibrary is the registry of blueprint functions.
type ioLibrary struct {
	BaseService
	mu    sync.RWMutex
	names []string
	fns   map[string]domain.BlueprintFunc

	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountReader
	posting     portssvc.PostingSvc
	metrics     *metrics.Metrics
}

// LibraryOption is a functional option for configuring the IO library
type LibraryOption func(*ioLibrary)

// WithLibraryMetrics records per ledger cursor outcomes.
func WithLibraryMetrics(m *metrics.Metrics) LibraryOption {
	return func(l *ioLibrary) {
		l.metrics = m
	}
}

// NewIOLibrary creates an empty blueprint library whose cursors commit through posting.
func NewIOLibrary(
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	posting portssvc.PostingSvc,
	options ...LibraryOption,
) portssvc.IOLibrarySvc {
	lib := &ioLibrary{
		fns:         make(map[string]domain.BlueprintFunc),
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
		posting:     posting,
	}
	for _, option := range options {
		option(lib)
	}
	return lib
}

// Ensure ioLibrary implements the IOLibrarySvc interface
var _ portssvc.IOLibrarySvc = (*ioLibrary)(nil)

func (l *ioLibrary) Register(name string, fn domain.BlueprintFunc) error {
	if name == "" || fn == nil {
		return fmt.Errorf("%w: blueprint name and function are required", apperrors.ErrValidation)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, dup := l.fns[name]; dup {
		return fmt.Errorf("%w: blueprint %s", apperrors.ErrDuplicate, name)
	}
	l.fns[name] = fn
	l.names = append(l.names, name)
	return nil
}

func (l *ioLibrary) Blueprints() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.names...)
}

func (l *ioLibrary) GetCursor(entityID, actor string, mode domain.CursorMode) portssvc.CursorSvc {
	if !mode.IsValid() {
		mode = domain.CursorPermissive
	}
	return &cursor{
		lib:      l,
		entityID: entityID,
		actor:    actor,
		mode:     mode,
	}
}

func (l *ioLibrary) lookup(name string) (domain.BlueprintFunc, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	fn, ok := l.fns[name]
	return fn, ok
}
