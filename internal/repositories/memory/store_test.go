package memory

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *Store
	day   time.Time
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = New()
	s.day = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	s.Require().NoError(s.store.SaveEntity(s.ctx, domain.Entity{EntityID: "e1", Slug: "acme"}))
	s.Require().NoError(s.store.SaveAccounts(s.ctx, []domain.Account{
		{AccountID: "cash", EntityID: "e1", Code: "1010", Role: domain.RoleAssetCash, BalanceType: domain.Debit, IsActive: true},
		{AccountID: "cap", EntityID: "e1", Code: "3010", Role: domain.RoleEquityCapital, BalanceType: domain.Credit, IsActive: true},
	}))
	s.Require().NoError(s.store.SaveLedger(s.ctx, domain.Ledger{LedgerID: "l1", EntityID: "e1", ExternalID: "x1"}))
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) plan(id string, ts time.Time, amount int64, post bool) domain.PostingPlan {
	amt := decimal.NewFromInt(amount)
	return domain.PostingPlan{
		EntityID:     "e1",
		LedgerID:     "l1",
		JournalEntry: domain.JournalEntry{JournalEntryID: id, LedgerID: "l1", EntityID: "e1", Timestamp: ts},
		Transactions: []domain.Transaction{
			{TransactionID: id + "-d", AccountID: "cash", TxType: domain.Debit, Amount: amt},
			{TransactionID: id + "-c", AccountID: "cap", TxType: domain.Credit, Amount: amt},
		},
		Post:      post,
		Tolerance: decimal.RequireFromString("0.02"),
	}
}

// close stores entry through CloseEntityPeriod.
func (s *StoreTestSuite) close(entry domain.ClosingEntry) error {
	_, err := s.store.CloseEntityPeriod(s.ctx, entry.EntityID, func(portsrepo.DigestReader) (domain.ClosingEntry, error) {
		return entry, nil
	})
	return err
}

func (s *StoreTestSuite) TestDuplicates() {
	err := s.store.SaveEntity(s.ctx, domain.Entity{EntityID: "e2", Slug: "acme"})
	s.ErrorIs(err, apperrors.ErrDuplicate)

	err = s.store.SaveAccounts(s.ctx, []domain.Account{{AccountID: "other", EntityID: "e1", Code: "1010"}})
	s.ErrorIs(err, apperrors.ErrDuplicate)

	err = s.store.SaveLedger(s.ctx, domain.Ledger{LedgerID: "l2", EntityID: "e1", ExternalID: "x1"})
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *StoreTestSuite) TestCommitJournalEntry() {
	je, txs, err := s.store.CommitJournalEntry(s.ctx, s.plan("je1", s.day, 100, true))
	s.Require().NoError(err)
	s.True(je.IsPosted)
	s.Len(txs, 2)
	s.Equal("je1", txs[0].JournalEntryID)

	stored, err := s.store.FindTransactionsByJournalEntryID(s.ctx, "je1")
	s.Require().NoError(err)
	s.Len(stored, 2)
}

func (s *StoreTestSuite) TestCommitRejectsUnbalancedWithoutTrace() {
	p := s.plan("je1", s.day, 100, true)
	p.Transactions[1].Amount = decimal.NewFromInt(90)

	_, _, err := s.store.CommitJournalEntry(s.ctx, p)
	s.ErrorIs(err, domain.ErrBalanceValidation)

	_, err = s.store.FindJournalEntryByID(s.ctx, "je1")
	s.ErrorIs(err, domain.ErrJournalEntryNotFound)
}

func (s *StoreTestSuite) TestCommitRechecksLedgerAndPeriod() {
	s.Require().NoError(s.store.UpdateLedgerState(s.ctx, domain.Ledger{LedgerID: "l1", IsPosted: true, IsLocked: true}))
	_, _, err := s.store.CommitJournalEntry(s.ctx, s.plan("je1", s.day, 1, false))
	s.ErrorIs(err, domain.ErrLockedLedger)

	s.Require().NoError(s.store.UpdateLedgerState(s.ctx, domain.Ledger{LedgerID: "l1", IsPosted: true}))
	s.Require().NoError(s.close(domain.ClosingEntry{
		ClosingEntryID: "ce1", EntityID: "e1", ClosingDate: s.day, IsPosted: true,
	}))
	_, _, err = s.store.CommitJournalEntry(s.ctx, s.plan("je2", s.day.Add(6*time.Hour), 1, false))
	s.ErrorIs(err, domain.ErrClosedPeriod)

	_, _, err = s.store.CommitJournalEntry(s.ctx, s.plan("je3", s.day.AddDate(0, 0, 1), 1, false))
	s.NoError(err)
}

func (s *StoreTestSuite) TestForceRetrieval() {
	p := s.plan("ignored", s.day, 10, false)
	p.ForceRetrieval = true
	_, _, err := s.store.CommitJournalEntry(s.ctx, p)
	s.ErrorIs(err, domain.ErrJournalEntryNotFound)

	_, _, err = s.store.CommitJournalEntry(s.ctx, s.plan("je1", s.day, 10, false))
	s.Require().NoError(err)

	p = s.plan("ignored", s.day, 5, true)
	p.ForceRetrieval = true
	je, txs, err := s.store.CommitJournalEntry(s.ctx, p)
	s.Require().NoError(err)
	s.Equal("je1", je.JournalEntryID)
	s.True(je.IsPosted)
	s.Len(txs, 2)

	all, err := s.store.FindTransactionsByJournalEntryID(s.ctx, "je1")
	s.Require().NoError(err)
	s.Len(all, 4)

	locked := s.store.entries["je1"]
	locked.IsLocked = true
	s.store.entries["je1"] = locked
	_, _, err = s.store.CommitJournalEntry(s.ctx, p)
	s.ErrorIs(err, domain.ErrLockedJournalEntry)
}

func (s *StoreTestSuite) TestDeleteJournalEntry() {
	_, _, err := s.store.CommitJournalEntry(s.ctx, s.plan("je1", s.day, 100, true))
	s.Require().NoError(err)
	s.Require().NoError(s.store.DeleteJournalEntry(s.ctx, "je1"))

	_, err = s.store.FindJournalEntryByID(s.ctx, "je1")
	s.ErrorIs(err, domain.ErrJournalEntryNotFound)
	s.Empty(s.store.txs["je1"])
	s.ErrorIs(s.store.DeleteJournalEntry(s.ctx, "je1"), domain.ErrJournalEntryNotFound)

	err = s.store.ReadSnapshot(s.ctx, func(r portsrepo.DigestReader) error {
		rows, err := r.AggregateTransactions(s.ctx, domain.AggregateQuery{Scope: domain.ScopeFilter{EntityID: "e1"}})
		s.Empty(rows)
		return err
	})
	s.NoError(err)
}

func (s *StoreTestSuite) TestDeleteJournalEntryRefusals() {
	_, _, err := s.store.CommitJournalEntry(s.ctx, s.plan("locked", s.day, 1, true))
	s.Require().NoError(err)
	je := s.store.entries["locked"]
	je.IsLocked = true
	s.store.entries["locked"] = je
	s.ErrorIs(s.store.DeleteJournalEntry(s.ctx, "locked"), domain.ErrLockedJournalEntry)

	parent := s.plan("parent", s.day.AddDate(0, 0, 2), 5, true)
	_, _, err = s.store.CommitJournalEntry(s.ctx, parent)
	s.Require().NoError(err)
	child := s.plan("child", s.day.AddDate(0, 0, 3), 5, true)
	child.JournalEntry.ParentID = "parent"
	_, _, err = s.store.CommitJournalEntry(s.ctx, child)
	s.Require().NoError(err)
	s.ErrorIs(s.store.DeleteJournalEntry(s.ctx, "parent"), domain.ErrJournalEntryInUse)

	s.Require().NoError(s.close(domain.ClosingEntry{
		ClosingEntryID: "ce1", EntityID: "e1", ClosingDate: s.day.AddDate(0, 0, 5), IsPosted: true,
	}))
	err = s.store.DeleteJournalEntry(s.ctx, "child")
	s.ErrorIs(err, domain.ErrClosedPeriod)
	s.ErrorIs(err, apperrors.ErrConflict)

	_, _, err = s.store.CommitJournalEntry(s.ctx, s.plan("late", s.day.AddDate(0, 0, 10), 1, true))
	s.Require().NoError(err)
	s.Require().NoError(s.store.UpdateLedgerState(s.ctx, domain.Ledger{LedgerID: "l1", IsPosted: true, IsLocked: true}))
	s.ErrorIs(s.store.DeleteJournalEntry(s.ctx, "late"), domain.ErrLockedLedger)
}

func (s *StoreTestSuite) TestListJournalEntriesPagination() {
	for i := 0; i < 5; i++ {
		_, _, err := s.store.CommitJournalEntry(s.ctx, s.plan(string(rune('a'+i)), s.day.AddDate(0, 0, i), 1, true))
		s.Require().NoError(err)
	}

	page, next, err := s.store.ListJournalEntries(s.ctx, "l1", 2, nil)
	s.Require().NoError(err)
	s.Require().NotNil(next)
	s.Equal([]string{"e", "d"}, ids(page))

	page, next, err = s.store.ListJournalEntries(s.ctx, "l1", 2, next)
	s.Require().NoError(err)
	s.Equal([]string{"c", "b"}, ids(page))

	page, next, err = s.store.ListJournalEntries(s.ctx, "l1", 2, next)
	s.Require().NoError(err)
	s.Nil(next)
	s.Equal([]string{"a"}, ids(page))

	bad := "%%%"
	_, _, err = s.store.ListJournalEntries(s.ctx, "l1", 2, &bad)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func ids(jes []domain.JournalEntry) []string {
	out := make([]string, len(jes))
	for i, je := range jes {
		out[i] = je.JournalEntryID
	}
	return out
}

func (s *StoreTestSuite) TestAggregateTransactions() {
	_, _, err := s.store.CommitJournalEntry(s.ctx, s.plan("je1", s.day, 100, true))
	s.Require().NoError(err)
	_, _, err = s.store.CommitJournalEntry(s.ctx, s.plan("je2", s.day.AddDate(0, 1, 0), 50, true))
	s.Require().NoError(err)
	_, _, err = s.store.CommitJournalEntry(s.ctx, s.plan("je3", s.day, 7, false))
	s.Require().NoError(err)

	to := domain.DateOf(s.day)
	var rows []domain.AggregateRow
	err = s.store.ReadSnapshot(s.ctx, func(r portsrepo.DigestReader) error {
		var err error
		rows, err = r.AggregateTransactions(s.ctx, domain.AggregateQuery{
			Scope:      domain.ScopeFilter{EntityID: "e1"},
			To:         &to,
			PostedOnly: true,
			AccountIDs: []string{"cash"},
		})
		return err
	})
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal(domain.Debit, rows[0].TxType)
	s.True(rows[0].Balance.Equal(decimal.NewFromInt(100)))

	err = s.store.ReadSnapshot(s.ctx, func(r portsrepo.DigestReader) error {
		var err error
		rows, err = r.AggregateTransactions(s.ctx, domain.AggregateQuery{
			Scope:    domain.ScopeFilter{EntityID: "e1", LedgerID: "l1"},
			Roles:    []domain.Role{domain.RoleEquityCapital},
			ByPeriod: true,
		})
		return err
	})
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal(1, rows[0].Month)
	s.True(rows[0].Balance.Equal(decimal.NewFromInt(107)))
	s.Equal(2, rows[1].Month)
}

func (s *StoreTestSuite) TestClosingEntries() {
	d1 := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	line := domain.ClosingEntryLine{AccountID: "cash", TxType: domain.Debit, Balance: decimal.NewFromInt(5)}
	s.Require().NoError(s.close(domain.ClosingEntry{
		ClosingEntryID: "ce1", EntityID: "e1", FiscalYear: 2023, ClosingDate: d1, IsPosted: true,
		Lines: []domain.ClosingEntryLine{line},
	}))

	err := s.close(domain.ClosingEntry{ClosingEntryID: "ce0", EntityID: "e1", ClosingDate: d1.AddDate(0, -1, 0), IsPosted: true})
	s.ErrorIs(err, domain.ErrClosedPeriod)

	_, err = s.store.CloseEntityPeriod(s.ctx, "nope", func(portsrepo.DigestReader) (domain.ClosingEntry, error) {
		return domain.ClosingEntry{}, nil
	})
	s.ErrorIs(err, domain.ErrEntityNotFound)

	entity, err := s.store.FindEntityByID(s.ctx, "e1")
	s.Require().NoError(err)
	s.Equal(d1, *entity.LastClosingDate)

	list, err := s.store.ListClosingEntries(s.ctx, "e1")
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Nil(list[0].Lines)

	err = s.store.ReadSnapshot(s.ctx, func(r portsrepo.DigestReader) error {
		dates, err := r.ClosingEntryDates(s.ctx, "e1")
		s.Require().NoError(err)
		s.Equal([]time.Time{d1}, dates)

		lines, err := r.ClosingEntryLines(s.ctx, "e1", d1)
		s.Require().NoError(err)
		s.Equal([]domain.ClosingEntryLine{line}, lines)

		_, err = r.ClosingEntryLines(s.ctx, "e1", d1.AddDate(0, 0, 1))
		s.ErrorIs(err, domain.ErrClosingEntryNotFound)
		return nil
	})
	s.NoError(err)
}

func (s *StoreTestSuite) TestCloseEntityPeriodSumsAndSavesUnderOneLock() {
	_, _, err := s.store.CommitJournalEntry(s.ctx, s.plan("je1", s.day, 100, true))
	s.Require().NoError(err)

	closing := domain.DateOf(s.day.AddDate(0, 0, 21))
	late := make(chan error, 1)
	entry, err := s.store.CloseEntityPeriod(s.ctx, "e1", func(r portsrepo.DigestReader) (domain.ClosingEntry, error) {
		go func() {
			_, _, err := s.store.CommitJournalEntry(s.ctx, s.plan("je2", s.day.AddDate(0, 0, 10), 50, true))
			late <- err
		}()
		rows, err := r.AggregateTransactions(s.ctx, domain.AggregateQuery{
			Scope:      domain.ScopeFilter{EntityID: "e1"},
			To:         &closing,
			PostedOnly: true,
			AccountIDs: []string{"cash"},
		})
		if err != nil {
			return domain.ClosingEntry{}, err
		}
		lines := make([]domain.ClosingEntryLine, len(rows))
		for i, row := range rows {
			lines[i] = domain.ClosingEntryLine{AccountID: row.AccountID, TxType: row.TxType, Balance: row.Balance}
		}
		return domain.ClosingEntry{ClosingEntryID: "ce1", ClosingDate: closing, IsPosted: true, Lines: lines}, nil
	})
	s.Require().NoError(err)
	s.Equal("e1", entry.EntityID)
	s.Require().Len(entry.Lines, 1)
	s.True(entry.Lines[0].Balance.Equal(decimal.NewFromInt(100)))

	// The commit waited for the close and then found its period closed.
	s.ErrorIs(<-late, domain.ErrClosedPeriod)
	_, err = s.store.FindJournalEntryByID(s.ctx, "je2")
	s.ErrorIs(err, domain.ErrJournalEntryNotFound)
}
