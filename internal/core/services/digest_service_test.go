package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/platform/cache"
	"github.com/SscSPs/ledger_engine/internal/platform/metrics"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DigestServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	entityRepo  *MockEntityRepository
	ledgerRepo  *MockLedgerRepository
	accountRepo *MockAccountRepository
	digestRepo  *MockDigestRepository
	reader      *MockDigestReader
	dates       *services.ClosingDateCache
	metrics     *metrics.Metrics
	service     portssvc.DigestSvc

	chart []domain.Account
	close time.Time
}

func (s *DigestServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.entityRepo = new(MockEntityRepository)
	s.ledgerRepo = new(MockLedgerRepository)
	s.accountRepo = new(MockAccountRepository)
	s.reader = new(MockDigestReader)
	s.digestRepo = &MockDigestRepository{Reader: s.reader}
	s.dates = cache.New[[]time.Time](time.Minute)
	s.metrics = metrics.NewMetrics()
	s.service = services.NewDigestService(s.entityRepo, s.ledgerRepo, s.accountRepo, s.digestRepo,
		services.WithClosingDateCache(s.dates),
		services.WithDigestMetrics(s.metrics))

	s.chart = []domain.Account{
		{AccountID: "cash", EntityID: "e1", Code: "1010", Role: domain.RoleAssetCash, BalanceType: domain.Debit, IsActive: true},
		{AccountID: "cap", EntityID: "e1", Code: "3010", Role: domain.RoleEquityCapital, BalanceType: domain.Credit, IsActive: true},
	}
	s.close = time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	s.entityRepo.On("FindEntityByID", mock.Anything, "e1").Return(&domain.Entity{EntityID: "e1"}, nil)
	s.accountRepo.On("ListAccounts", mock.Anything, "e1").Return(s.chart, nil)
	s.digestRepo.On("ReadSnapshot", mock.Anything).Return(nil)
}

func (s *DigestServiceTestSuite) TearDownTest() {
	s.dates.Close()
}

func TestDigestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DigestServiceTestSuite))
}

func (s *DigestServiceTestSuite) rows(amount int64) []domain.AggregateRow {
	amt := decimal.NewFromInt(amount)
	return []domain.AggregateRow{
		{AccountID: "cash", TxType: domain.Debit, Balance: amt},
		{AccountID: "cap", TxType: domain.Credit, Balance: amt},
	}
}

func (s *DigestServiceTestSuite) TestDigest_Direct() {
	s.reader.On("ClosingEntryDates", mock.Anything, "e1").Return([]time.Time{}, nil)
	s.reader.On("AggregateTransactions", mock.Anything, mock.MatchedBy(func(q domain.AggregateQuery) bool {
		return q.PostedOnly && q.Scope.EntityID == "e1" && q.From == nil && q.To == nil
	})).Return(s.rows(100), nil)

	res, err := s.service.Digest(s.ctx, domain.EntityScope{EntityID: "e1"}, domain.DigestQuery{})

	s.Require().NoError(err)
	s.Equal(domain.CheckpointDirect, res.Checkpoint)
	s.Equal("entity", res.Scope)
	s.Require().Len(res.Rows, 2)
	s.Equal("1010", res.Rows[0].Code)
	s.True(res.Rows[0].Balance.Equal(decimal.NewFromInt(100)))
	s.Equal("3010", res.Rows[1].Code)
	s.True(res.Rows[1].Balance.Equal(decimal.NewFromInt(100)))
}

func (s *DigestServiceTestSuite) TestDigest_ExactToCheckpoint() {
	s.reader.On("ClosingEntryDates", mock.Anything, "e1").Return([]time.Time{s.close}, nil).Once()
	s.reader.On("ClosingEntryLines", mock.Anything, "e1", s.close).Return([]domain.ClosingEntryLine{
		{AccountID: "cash", TxType: domain.Debit, Balance: decimal.NewFromInt(40)},
		{AccountID: "cap", TxType: domain.Credit, Balance: decimal.NewFromInt(40)},
	}, nil)

	to := s.close
	q := domain.DigestQuery{To: &to}
	res, err := s.service.Digest(s.ctx, domain.EntityScope{EntityID: "e1"}, q)
	s.Require().NoError(err)
	s.Equal(domain.CheckpointExactTo, res.Checkpoint)
	row, ok := res.Row("1010")
	s.Require().True(ok)
	s.True(row.Balance.Equal(decimal.NewFromInt(40)))
	s.reader.AssertNotCalled(s.T(), "AggregateTransactions", mock.Anything, mock.Anything)

	// second digest reads the dates from the cache
	_, err = s.service.Digest(s.ctx, domain.EntityScope{EntityID: "e1"}, q)
	s.Require().NoError(err)
	s.reader.AssertNumberOfCalls(s.T(), "ClosingEntryDates", 1)

	snap := s.metrics.GetSnapshot(nil, []string{string(domain.CheckpointExactTo)})
	s.Equal(2.0, snap.CheckpointUsage[string(domain.CheckpointExactTo)])
	s.InDelta(0.5, snap.CacheHitRate, 0.0001)
}

func (s *DigestServiceTestSuite) TestDigest_LedgerScopeSkipsCheckpoints() {
	s.ledgerRepo.On("FindLedgerByID", mock.Anything, "l1").Return(&domain.Ledger{LedgerID: "l1", EntityID: "e1"}, nil)
	s.reader.On("AggregateTransactions", mock.Anything, mock.MatchedBy(func(q domain.AggregateQuery) bool {
		return q.Scope.LedgerID == "l1"
	})).Return(s.rows(7), nil)

	res, err := s.service.Digest(s.ctx, domain.LedgerScope{EntityID: "e1", LedgerID: "l1"}, domain.DigestQuery{})

	s.Require().NoError(err)
	s.Equal(domain.CheckpointDirect, res.Checkpoint)
	s.reader.AssertNotCalled(s.T(), "ClosingEntryDates", mock.Anything, mock.Anything)
}

func (s *DigestServiceTestSuite) TestDigest_ClosingEntriesDisabled() {
	svc := services.NewDigestService(s.entityRepo, s.ledgerRepo, s.accountRepo, s.digestRepo,
		services.WithClosingEntries(false))
	s.reader.On("AggregateTransactions", mock.Anything, mock.Anything).Return(s.rows(1), nil)

	res, err := svc.Digest(s.ctx, domain.EntityScope{EntityID: "e1"}, domain.DigestQuery{})

	s.Require().NoError(err)
	s.Equal(domain.CheckpointDirect, res.Checkpoint)
	s.reader.AssertNotCalled(s.T(), "ClosingEntryDates", mock.Anything, mock.Anything)
}

func (s *DigestServiceTestSuite) TestDigest_AccountFilterByCode() {
	s.reader.On("ClosingEntryDates", mock.Anything, "e1").Return([]time.Time{}, nil)
	s.reader.On("AggregateTransactions", mock.Anything, mock.MatchedBy(func(q domain.AggregateQuery) bool {
		return len(q.AccountIDs) == 1 && q.AccountIDs[0] == "cash"
	})).Return(s.rows(3)[:1], nil)

	res, err := s.service.Digest(s.ctx, domain.EntityScope{EntityID: "e1"}, domain.DigestQuery{Accounts: []string{"1010"}})
	s.Require().NoError(err)
	s.Len(res.Rows, 1)

	_, err = s.service.Digest(s.ctx, domain.EntityScope{EntityID: "e1"}, domain.DigestQuery{Accounts: []string{"9999"}})
	s.ErrorIs(err, domain.ErrAccountNotFound)
}

func (s *DigestServiceTestSuite) TestDigest_Errors() {
	s.Run("income statement without dates", func() {
		_, err := s.service.Digest(s.ctx, domain.EntityScope{EntityID: "e1"}, domain.DigestQuery{IncomeStatement: true})
		s.ErrorIs(err, domain.ErrInvalidDateRange)
	})

	s.Run("unknown role", func() {
		_, err := s.service.Digest(s.ctx, domain.EntityScope{EntityID: "e1"}, domain.DigestQuery{Roles: []domain.Role{"bogus"}})
		s.ErrorIs(err, domain.ErrInvalidRole)
	})

	s.Run("ledger of another entity", func() {
		s.ledgerRepo.On("FindLedgerByID", mock.Anything, "l2").Return(&domain.Ledger{LedgerID: "l2", EntityID: "e2"}, nil)
		_, err := s.service.Digest(s.ctx, domain.LedgerScope{EntityID: "e1", LedgerID: "l2"}, domain.DigestQuery{})
		s.ErrorIs(err, domain.ErrCrossEntityReference)
	})

	s.Run("unit of another entity", func() {
		s.entityRepo.On("FindUnitByID", mock.Anything, "u2").Return(&domain.Unit{UnitID: "u2", EntityID: "e2"}, nil)
		_, err := s.service.Digest(s.ctx, domain.UnitScope{EntityID: "e1", UnitID: "u2"}, domain.DigestQuery{})
		s.ErrorIs(err, domain.ErrCrossEntityReference)
	})
}
