package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	entityRepo  *MockEntityRepository
	ledgerRepo  *MockLedgerRepository
	journalRepo *MockJournalRepository
	service     portssvc.LedgerSvcFacade
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.entityRepo = new(MockEntityRepository)
	s.ledgerRepo = new(MockLedgerRepository)
	s.journalRepo = new(MockJournalRepository)
	s.service = services.NewLedgerService(s.entityRepo, s.ledgerRepo, s.journalRepo)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) TestCreateLedger() {
	s.entityRepo.On("FindEntityByID", mock.Anything, "e1").Return(&domain.Entity{EntityID: "e1"}, nil)
	s.ledgerRepo.On("SaveLedger", mock.Anything, mock.MatchedBy(func(l domain.Ledger) bool {
		return l.EntityID == "e1" && l.Name == "General" && l.ExternalID == "gl" && l.LedgerID != ""
	})).Return(nil)

	ledger, err := s.service.CreateLedger(s.ctx, "e1", dto.CreateLedgerRequest{Name: "General", ExternalID: "gl"}, "alice")

	s.Require().NoError(err)
	s.Equal("alice", ledger.CreatedBy)
	s.False(ledger.IsPosted)
}

func (s *LedgerServiceTestSuite) TestCreateLedger_DuplicateExternalID() {
	s.entityRepo.On("FindEntityByID", mock.Anything, "e1").Return(&domain.Entity{EntityID: "e1"}, nil)
	s.ledgerRepo.On("SaveLedger", mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate)

	_, err := s.service.CreateLedger(s.ctx, "e1", dto.CreateLedgerRequest{Name: "General", ExternalID: "gl"}, "alice")
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *LedgerServiceTestSuite) TestTransitions() {
	tests := []struct {
		name       string
		ledger     domain.Ledger
		apply      func(id string) (*domain.Ledger, error)
		wantErr    error
		wantPosted bool
		wantLocked bool
	}{
		{
			name:       "post",
			ledger:     domain.Ledger{LedgerID: "l1"},
			apply:      func(id string) (*domain.Ledger, error) { return s.service.PostLedger(s.ctx, id, "bob") },
			wantPosted: true,
		},
		{
			name:    "lock unposted",
			ledger:  domain.Ledger{LedgerID: "l1"},
			apply:   func(id string) (*domain.Ledger, error) { return s.service.LockLedger(s.ctx, id, "bob") },
			wantErr: domain.ErrLedgerNotPosted,
		},
		{
			name:       "lock posted",
			ledger:     domain.Ledger{LedgerID: "l1", IsPosted: true},
			apply:      func(id string) (*domain.Ledger, error) { return s.service.LockLedger(s.ctx, id, "bob") },
			wantPosted: true,
			wantLocked: true,
		},
		{
			name:       "unlock",
			ledger:     domain.Ledger{LedgerID: "l1", IsPosted: true, IsLocked: true},
			apply:      func(id string) (*domain.Ledger, error) { return s.service.UnlockLedger(s.ctx, id, "bob") },
			wantPosted: true,
		},
	}
	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.SetupTest()
			ledger := tc.ledger
			s.ledgerRepo.On("FindLedgerByID", mock.Anything, "l1").Return(&ledger, nil)
			s.ledgerRepo.On("UpdateLedgerState", mock.Anything, mock.Anything).Return(nil)

			got, err := tc.apply("l1")
			if tc.wantErr != nil {
				s.ErrorIs(err, tc.wantErr)
				s.ledgerRepo.AssertNotCalled(s.T(), "UpdateLedgerState", mock.Anything, mock.Anything)
				return
			}
			s.Require().NoError(err)
			s.Equal(tc.wantPosted, got.IsPosted)
			s.Equal(tc.wantLocked, got.IsLocked)
			s.Equal("bob", got.LastUpdatedBy)
		})
	}
}

func (s *LedgerServiceTestSuite) TestListJournalEntries_ClampsLimit() {
	s.ledgerRepo.On("FindLedgerByID", mock.Anything, "l1").Return(&domain.Ledger{LedgerID: "l1"}, nil)
	s.journalRepo.On("ListJournalEntries", mock.Anything, "l1", 20, (*string)(nil)).
		Return([]domain.JournalEntry{{JournalEntryID: "je1"}}, "next", nil).Once()
	token := "next"
	s.journalRepo.On("ListJournalEntries", mock.Anything, "l1", 100, &token).
		Return([]domain.JournalEntry{}, nil, nil).Once()

	page, err := s.service.ListJournalEntries(s.ctx, "l1", dto.ListJournalEntriesParams{})
	s.Require().NoError(err)
	s.Len(page.JournalEntries, 1)
	s.Require().NotNil(page.NextToken)
	s.Equal("next", *page.NextToken)

	page, err = s.service.ListJournalEntries(s.ctx, "l1", dto.ListJournalEntriesParams{Limit: 500, NextToken: "next"})
	s.Require().NoError(err)
	s.Empty(page.JournalEntries)
	s.Nil(page.NextToken)
}

func (s *LedgerServiceTestSuite) TestGetJournalEntry() {
	s.journalRepo.On("FindJournalEntryByID", mock.Anything, "je1").Return(&domain.JournalEntry{JournalEntryID: "je1"}, nil)
	s.journalRepo.On("FindTransactionsByJournalEntryID", mock.Anything, "je1").Return([]domain.Transaction{{TransactionID: "t1"}}, nil)

	je, txs, err := s.service.GetJournalEntry(s.ctx, "je1")
	s.Require().NoError(err)
	s.Equal("je1", je.JournalEntryID)
	s.Len(txs, 1)

	s.journalRepo.On("FindJournalEntryByID", mock.Anything, "missing").Return(nil, domain.ErrJournalEntryNotFound)
	_, _, err = s.service.GetJournalEntry(s.ctx, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LedgerServiceTestSuite) TestDeleteJournalEntry() {
	s.journalRepo.On("DeleteJournalEntry", mock.Anything, "je1").Return(nil)
	s.Require().NoError(s.service.DeleteJournalEntry(s.ctx, "je1", "tester"))

	s.journalRepo.On("DeleteJournalEntry", mock.Anything, "je2").Return(domain.ErrLockedJournalEntry)
	err := s.service.DeleteJournalEntry(s.ctx, "je2", "tester")
	s.ErrorIs(err, apperrors.ErrConflict)
	s.journalRepo.AssertExpectations(s.T())
}
