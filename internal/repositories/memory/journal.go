package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/SscSPs/ledger_engine/internal/utils/pagination"
)

// FindJournalEntryByID retrieves a journal entry by id.
func (s *Store) FindJournalEntryByID(_ context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	je, ok := s.entries[journalEntryID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrJournalEntryNotFound, journalEntryID)
	}
	return &je, nil
}

// FindJournalEntryByTimestamp retrieves the journal entry of a ledger at exactly ts.
func (s *Store) FindJournalEntryByTimestamp(_ context.Context, ledgerID string, ts time.Time) (*domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	je, ok := s.findByTimestampLocked(ledgerID, ts)
	if !ok {
		return nil, fmt.Errorf("%w: ledger %s at %s", domain.ErrJournalEntryNotFound, ledgerID, ts.Format(time.RFC3339Nano))
	}
	return &je, nil
}

func (s *Store) findByTimestampLocked(ledgerID string, ts time.Time) (domain.JournalEntry, bool) {
	var found *domain.JournalEntry
	for _, je := range s.entries {
		if je.LedgerID != ledgerID || !je.Timestamp.Equal(ts) {
			continue
		}
		// oldest entry wins when several share a timestamp
		if found == nil || je.CreatedAt.Before(found.CreatedAt) ||
			(je.CreatedAt.Equal(found.CreatedAt) && je.JournalEntryID < found.JournalEntryID) {
			je := je
			found = &je
		}
	}
	if found == nil {
		return domain.JournalEntry{}, false
	}
	return *found, true
}

// ListJournalEntries returns a page of journal entries of a ledger, newest first.
func (s *Store) ListJournalEntries(_ context.Context, ledgerID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	var cursor *pagination.Cursor
	if nextToken != nil {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursor = c
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []domain.JournalEntry
	for _, je := range s.entries {
		if je.LedgerID == ledgerID && cursor.Before(je.Timestamp, je.JournalEntryID) {
			all = append(all, je)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].Timestamp.Equal(all[j].Timestamp) {
			return all[i].Timestamp.After(all[j].Timestamp)
		}
		return all[i].JournalEntryID > all[j].JournalEntryID
	})

	if limit <= 0 || len(all) <= limit {
		return all, nil, nil
	}
	page := all[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeToken(last.Timestamp, last.JournalEntryID)
	return page, &token, nil
}

// FindTransactionsByJournalEntryID returns the lines of a journal entry in insert order.
func (s *Store) FindTransactionsByJournalEntryID(_ context.Context, journalEntryID string) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.entries[journalEntryID]; !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrJournalEntryNotFound, journalEntryID)
	}
	return append([]domain.Transaction(nil), s.txs[journalEntryID]...), nil
}

// CommitJournalEntry applies a posting plan under the write lock. Every check runs
// before the first map is touched, so a failed plan leaves no trace.
func (s *Store) CommitJournalEntry(_ context.Context, plan domain.PostingPlan) (domain.JournalEntry, []domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entity, ok := s.entities[plan.EntityID]
	if !ok {
		return domain.JournalEntry{}, nil, fmt.Errorf("%w: %s", domain.ErrEntityNotFound, plan.EntityID)
	}
	ledger, ok := s.ledgers[plan.LedgerID]
	if !ok {
		return domain.JournalEntry{}, nil, fmt.Errorf("%w: %s", domain.ErrLedgerNotFound, plan.LedgerID)
	}
	if ledger.EntityID != entity.EntityID {
		return domain.JournalEntry{}, nil, fmt.Errorf("%w: ledger %s", domain.ErrCrossEntityReference, ledger.LedgerID)
	}
	if ledger.IsLocked {
		return domain.JournalEntry{}, nil, fmt.Errorf("%w: %s", domain.ErrLockedLedger, ledger.LedgerID)
	}
	if entity.IsClosedOn(plan.JournalEntry.Timestamp) {
		return domain.JournalEntry{}, nil, fmt.Errorf("%w: %s is on or before %s", domain.ErrClosedPeriod,
			plan.JournalEntry.Timestamp.Format(time.DateOnly), entity.LastClosingDate.Format(time.DateOnly))
	}

	je := plan.JournalEntry
	var existing []domain.Transaction
	if plan.ForceRetrieval {
		found, ok := s.findByTimestampLocked(ledger.LedgerID, plan.JournalEntry.Timestamp)
		if !ok {
			return domain.JournalEntry{}, nil, fmt.Errorf("%w: ledger %s at %s", domain.ErrJournalEntryNotFound,
				ledger.LedgerID, plan.JournalEntry.Timestamp.Format(time.RFC3339Nano))
		}
		if found.IsLocked {
			return domain.JournalEntry{}, nil, fmt.Errorf("%w: %s", domain.ErrLockedJournalEntry, found.JournalEntryID)
		}
		existing = s.txs[found.JournalEntryID]
		found.Activity = plan.JournalEntry.Activity
		found.LastUpdatedAt = plan.JournalEntry.LastUpdatedAt
		found.LastUpdatedBy = plan.JournalEntry.LastUpdatedBy
		je = found
	} else if _, dup := s.entries[je.JournalEntryID]; dup {
		return domain.JournalEntry{}, nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrDuplicate, je.JournalEntryID)
	}

	txs := make([]domain.Transaction, len(plan.Transactions))
	for i, tx := range plan.Transactions {
		if _, ok := s.accounts[tx.AccountID]; !ok {
			return domain.JournalEntry{}, nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, tx.AccountID)
		}
		tx.JournalEntryID = je.JournalEntryID
		txs[i] = tx
	}

	all := append(append([]domain.Transaction(nil), existing...), txs...)
	if err := accounting.ValidateJournalEntryBalance(all, plan.Tolerance); err != nil {
		return domain.JournalEntry{}, nil, err
	}
	if plan.Post {
		je.IsPosted = true
	}

	s.entries[je.JournalEntryID] = je
	s.txs[je.JournalEntryID] = all
	return je, txs, nil
}

// DeleteJournalEntry drops a journal entry together with its transactions.
func (s *Store) DeleteJournalEntry(_ context.Context, journalEntryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	je, ok := s.entries[journalEntryID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrJournalEntryNotFound, journalEntryID)
	}
	if je.IsLocked {
		return fmt.Errorf("%w: %s", domain.ErrLockedJournalEntry, journalEntryID)
	}
	if ledger := s.ledgers[je.LedgerID]; ledger.IsLocked {
		return fmt.Errorf("%w: %s", domain.ErrLockedLedger, ledger.LedgerID)
	}
	if entity := s.entities[je.EntityID]; entity.IsClosedOn(je.Timestamp) {
		return fmt.Errorf("%w: %s is on or before %s", domain.ErrClosedPeriod,
			je.Timestamp.Format(time.DateOnly), entity.LastClosingDate.Format(time.DateOnly))
	}
	for _, other := range s.entries {
		if other.ParentID == journalEntryID {
			return fmt.Errorf("%w: %s", domain.ErrJournalEntryInUse, other.JournalEntryID)
		}
	}

	delete(s.entries, journalEntryID)
	delete(s.txs, journalEntryID)
	return nil
}
