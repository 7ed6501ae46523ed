package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

// CloseEntityPeriod holds the write lock while build reads balances and the entry is
// stored, so no commit can interleave.
func (s *Store) CloseEntityPeriod(_ context.Context, entityID string, build portsrepo.ClosingEntryBuilder) (domain.ClosingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entities[entityID]; !ok {
		return domain.ClosingEntry{}, fmt.Errorf("%w: %s", domain.ErrEntityNotFound, entityID)
	}
	entry, err := build(snapshot{s})
	if err != nil {
		return domain.ClosingEntry{}, err
	}
	entry.EntityID = entityID
	if err := s.saveClosingEntryLocked(entry); err != nil {
		return domain.ClosingEntry{}, err
	}
	return entry, nil
}

func (s *Store) saveClosingEntryLocked(entry domain.ClosingEntry) error {
	entity := s.entities[entry.EntityID]
	date := domain.DateOf(entry.ClosingDate)
	if entity.IsClosedOn(date) {
		return fmt.Errorf("%w: %s is already closed", domain.ErrClosedPeriod, date.Format(time.DateOnly))
	}
	for _, ce := range s.closing[entity.EntityID] {
		if ce.ClosingDate.Equal(date) {
			return fmt.Errorf("%w: closing entry on %s", apperrors.ErrDuplicate, date.Format(time.DateOnly))
		}
	}

	entry.ClosingDate = date
	entry.Lines = append([]domain.ClosingEntryLine(nil), entry.Lines...)
	list := append(s.closing[entity.EntityID], entry)
	sort.Slice(list, func(i, j int) bool { return list[i].ClosingDate.Before(list[j].ClosingDate) })
	s.closing[entity.EntityID] = list

	if entry.IsPosted {
		entity.LastClosingDate = &date
		entity.LastUpdatedAt = entry.LastUpdatedAt
		entity.LastUpdatedBy = entry.LastUpdatedBy
		s.entities[entity.EntityID] = entity
	}
	return nil
}

// ListClosingEntries returns closing entry headers ordered by date.
func (s *Store) ListClosingEntries(_ context.Context, entityID string) ([]domain.ClosingEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.closing[entityID]
	out := make([]domain.ClosingEntry, len(list))
	for i, ce := range list {
		ce.Lines = nil
		out[i] = ce
	}
	return out, nil
}
