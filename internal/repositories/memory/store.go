// Package memory provides a mutex guarded in-memory implementation of every repository
// port. It backs development mode and end-to-end tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

// Store keeps all state in maps behind one RWMutex. Writes that span several maps run
// under the write lock so they are atomic with respect to readers.
type Store struct {
	mu sync.RWMutex

	entities map[string]domain.Entity
	units    map[string]domain.Unit
	accounts map[string]domain.Account
	ledgers  map[string]domain.Ledger
	entries  map[string]domain.JournalEntry
	txs      map[string][]domain.Transaction // by journal entry id
	closing  map[string][]domain.ClosingEntry // by entity id, ordered by date
}

// New returns an empty store.
func New() *Store {
	return &Store{
		entities: make(map[string]domain.Entity),
		units:    make(map[string]domain.Unit),
		accounts: make(map[string]domain.Account),
		ledgers:  make(map[string]domain.Ledger),
		entries:  make(map[string]domain.JournalEntry),
		txs:      make(map[string][]domain.Transaction),
		closing:  make(map[string][]domain.ClosingEntry),
	}
}

// Provider exposes the store through every repository port.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		EntityRepo:       s,
		AccountRepo:      s,
		LedgerRepo:       s,
		JournalRepo:      s,
		ClosingEntryRepo: s,
		DigestRepo:       s,
	}
}

var (
	_ portsrepo.EntityRepositoryFacade       = (*Store)(nil)
	_ portsrepo.AccountRepositoryFacade      = (*Store)(nil)
	_ portsrepo.LedgerRepositoryFacade       = (*Store)(nil)
	_ portsrepo.JournalRepositoryFacade      = (*Store)(nil)
	_ portsrepo.ClosingEntryRepositoryFacade = (*Store)(nil)
	_ portsrepo.DigestRepository             = (*Store)(nil)
)

// SaveEntity persists a new entity. Slugs are unique.
func (s *Store) SaveEntity(_ context.Context, entity domain.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entities[entity.EntityID]; ok {
		return fmt.Errorf("%w: entity %s", apperrors.ErrDuplicate, entity.EntityID)
	}
	for _, e := range s.entities {
		if e.Slug == entity.Slug {
			return fmt.Errorf("%w: entity slug %s", apperrors.ErrDuplicate, entity.Slug)
		}
	}
	s.entities[entity.EntityID] = entity
	return nil
}

// FindEntityByID retrieves an entity by id.
func (s *Store) FindEntityByID(_ context.Context, entityID string) (*domain.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entities[entityID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrEntityNotFound, entityID)
	}
	return &e, nil
}

// SaveUnit persists a new business unit. Slugs are unique within the entity.
func (s *Store) SaveUnit(_ context.Context, unit domain.Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entities[unit.EntityID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrEntityNotFound, unit.EntityID)
	}
	if _, ok := s.units[unit.UnitID]; ok {
		return fmt.Errorf("%w: unit %s", apperrors.ErrDuplicate, unit.UnitID)
	}
	for _, u := range s.units {
		if u.EntityID == unit.EntityID && u.Slug == unit.Slug {
			return fmt.Errorf("%w: unit slug %s", apperrors.ErrDuplicate, unit.Slug)
		}
	}
	s.units[unit.UnitID] = unit
	return nil
}

// FindUnitByID retrieves a unit by id.
func (s *Store) FindUnitByID(_ context.Context, unitID string) (*domain.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.units[unitID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnitNotFound, unitID)
	}
	return &u, nil
}

// ListUnits returns the units of an entity ordered by slug.
func (s *Store) ListUnits(_ context.Context, entityID string) ([]domain.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Unit
	for _, u := range s.units {
		if u.EntityID == entityID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

// SaveAccounts persists a batch of accounts. The batch is rejected as a whole if any
// code already exists in the entity chart.
func (s *Store) SaveAccounts(_ context.Context, accounts []domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	codes := make(map[string]bool)
	for _, a := range s.accounts {
		codes[a.EntityID+"/"+a.Code] = true
	}
	for _, a := range accounts {
		if _, ok := s.entities[a.EntityID]; !ok {
			return fmt.Errorf("%w: %s", domain.ErrEntityNotFound, a.EntityID)
		}
		key := a.EntityID + "/" + a.Code
		if codes[key] {
			return fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, a.Code)
		}
		codes[key] = true
	}
	for _, a := range accounts {
		s.accounts[a.AccountID] = a
	}
	return nil
}

// FindAccountByID retrieves an account by id.
func (s *Store) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
	}
	return &a, nil
}

// FindAccountsByIDs returns the known accounts among ids.
func (s *Store) FindAccountsByIDs(_ context.Context, accountIDs []string) (map[string]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if a, ok := s.accounts[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

// FindAccountsByCodes resolves codes within an entity chart.
func (s *Store) FindAccountsByCodes(_ context.Context, entityID string, codes []string) (map[string]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	want := make(map[string]bool, len(codes))
	for _, c := range codes {
		want[c] = true
	}
	out := make(map[string]domain.Account, len(codes))
	for _, a := range s.accounts {
		if a.EntityID == entityID && want[a.Code] {
			out[a.Code] = a
		}
	}
	return out, nil
}

// ListAccounts returns the chart of an entity ordered by code.
func (s *Store) ListAccounts(_ context.Context, entityID string) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listAccountsLocked(entityID), nil
}

func (s *Store) listAccountsLocked(entityID string) []domain.Account {
	var out []domain.Account
	for _, a := range s.accounts {
		if a.EntityID == entityID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// SaveLedger persists a new ledger. External ids are unique within the entity.
func (s *Store) SaveLedger(_ context.Context, ledger domain.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entities[ledger.EntityID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrEntityNotFound, ledger.EntityID)
	}
	if _, ok := s.ledgers[ledger.LedgerID]; ok {
		return fmt.Errorf("%w: ledger %s", apperrors.ErrDuplicate, ledger.LedgerID)
	}
	if ledger.ExternalID != "" {
		for _, l := range s.ledgers {
			if l.EntityID == ledger.EntityID && l.ExternalID == ledger.ExternalID {
				return fmt.Errorf("%w: ledger xid %s", apperrors.ErrDuplicate, ledger.ExternalID)
			}
		}
	}
	s.ledgers[ledger.LedgerID] = ledger
	return nil
}

// UpdateLedgerState stores the posted and locked flags.
func (s *Store) UpdateLedgerState(_ context.Context, ledger domain.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.ledgers[ledger.LedgerID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrLedgerNotFound, ledger.LedgerID)
	}
	cur.IsPosted = ledger.IsPosted
	cur.IsLocked = ledger.IsLocked
	cur.LastUpdatedAt = ledger.LastUpdatedAt
	cur.LastUpdatedBy = ledger.LastUpdatedBy
	s.ledgers[ledger.LedgerID] = cur
	return nil
}

// FindLedgerByID retrieves a ledger by id.
func (s *Store) FindLedgerByID(_ context.Context, ledgerID string) (*domain.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.ledgers[ledgerID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrLedgerNotFound, ledgerID)
	}
	return &l, nil
}

// FindLedgerByExternalID retrieves a ledger by xid within an entity.
func (s *Store) FindLedgerByExternalID(_ context.Context, entityID, externalID string) (*domain.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, l := range s.ledgers {
		if l.EntityID == entityID && l.ExternalID == externalID {
			return &l, nil
		}
	}
	return nil, fmt.Errorf("%w: xid %s", domain.ErrLedgerNotFound, externalID)
}

// ListLedgers returns the ledgers of an entity ordered by creation time.
func (s *Store) ListLedgers(_ context.Context, entityID string) ([]domain.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Ledger
	for _, l := range s.ledgers {
		if l.EntityID == entityID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].LedgerID < out[j].LedgerID
	})
	return out, nil
}

func inRange(ts time.Time, from, to *time.Time) bool {
	d := domain.DateOf(ts)
	if from != nil && d.Before(*from) {
		return false
	}
	if to != nil && d.After(*to) {
		return false
	}
	return true
}
