package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock EntityRepository ---
type MockEntityRepository struct {
	mock.Mock
}

var (
	_ portsrepo.EntityRepositoryFacade = (*MockEntityRepository)(nil)
	_ portsrepo.EntityUnitReader       = (*MockEntityRepository)(nil)
)

func (m *MockEntityRepository) FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockEntityRepository) SaveEntity(ctx context.Context, entity domain.Entity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockEntityRepository) FindUnitByID(ctx context.Context, unitID string) (*domain.Unit, error) {
	args := m.Called(ctx, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Unit), args.Error(1)
}

func (m *MockEntityRepository) ListUnits(ctx context.Context, entityID string) ([]domain.Unit, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Unit), args.Error(1)
}

func (m *MockEntityRepository) SaveUnit(ctx context.Context, unit domain.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, entityID string, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, entityID, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, entityID string) ([]domain.Account, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	args := m.Called(ctx, accounts)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindLedgerByID(ctx context.Context, ledgerID string) (*domain.Ledger, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

func (m *MockLedgerRepository) FindLedgerByExternalID(ctx context.Context, entityID, externalID string) (*domain.Ledger, error) {
	args := m.Called(ctx, entityID, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

func (m *MockLedgerRepository) ListLedgers(ctx context.Context, entityID string) ([]domain.Ledger, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ledger), args.Error(1)
}

func (m *MockLedgerRepository) SaveLedger(ctx context.Context, ledger domain.Ledger) error {
	args := m.Called(ctx, ledger)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateLedgerState(ctx context.Context, ledger domain.Ledger) error {
	args := m.Called(ctx, ledger)
	return args.Error(0)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindJournalEntryByTimestamp(ctx context.Context, ledgerID string, ts time.Time) (*domain.JournalEntry, error) {
	args := m.Called(ctx, ledgerID, ts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListJournalEntries(ctx context.Context, ledgerID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, ledgerID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) FindTransactionsByJournalEntryID(ctx context.Context, journalEntryID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockJournalRepository) CommitJournalEntry(ctx context.Context, plan domain.PostingPlan) (domain.JournalEntry, []domain.Transaction, error) {
	args := m.Called(ctx, plan)
	var txs []domain.Transaction
	if args.Get(1) != nil {
		txs = args.Get(1).([]domain.Transaction)
	}
	return args.Get(0).(domain.JournalEntry), txs, args.Error(2)
}

func (m *MockJournalRepository) DeleteJournalEntry(ctx context.Context, journalEntryID string) error {
	args := m.Called(ctx, journalEntryID)
	return args.Error(0)
}

// --- Mock ClosingEntryRepository ---

// MockClosingEntryRepository runs the closing builder against Reader when the call
// is expected to succeed.
type MockClosingEntryRepository struct {
	mock.Mock
	Reader *MockDigestReader
}

var _ portsrepo.ClosingEntryRepositoryFacade = (*MockClosingEntryRepository)(nil)

func (m *MockClosingEntryRepository) ListClosingEntries(ctx context.Context, entityID string) ([]domain.ClosingEntry, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClosingEntry), args.Error(1)
}

func (m *MockClosingEntryRepository) CloseEntityPeriod(ctx context.Context, entityID string, build portsrepo.ClosingEntryBuilder) (domain.ClosingEntry, error) {
	args := m.Called(ctx, entityID)
	if err := args.Error(0); err != nil {
		return domain.ClosingEntry{}, err
	}
	return build(m.Reader)
}

// --- Mock DigestRepository ---

// MockDigestRepository hands its embedded reader mock to every snapshot callback.
type MockDigestRepository struct {
	mock.Mock
	Reader *MockDigestReader
}

var _ portsrepo.DigestRepository = (*MockDigestRepository)(nil)

func (m *MockDigestRepository) ReadSnapshot(ctx context.Context, fn func(r portsrepo.DigestReader) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m.Reader)
}

type MockDigestReader struct {
	mock.Mock
}

var _ portsrepo.DigestReader = (*MockDigestReader)(nil)

func (m *MockDigestReader) ClosingEntryDates(ctx context.Context, entityID string) ([]time.Time, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *MockDigestReader) ClosingEntryLines(ctx context.Context, entityID string, date time.Time) ([]domain.ClosingEntryLine, error) {
	args := m.Called(ctx, entityID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClosingEntryLine), args.Error(1)
}

func (m *MockDigestReader) AggregateTransactions(ctx context.Context, q domain.AggregateQuery) ([]domain.AggregateRow, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AggregateRow), args.Error(1)
}

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

var _ portssvc.PostingSvc = (*MockPostingService)(nil)

func (m *MockPostingService) CommitTxs(ctx context.Context, scope domain.Scope, req domain.CommitRequest) (*domain.CommitResult, error) {
	args := m.Called(ctx, scope, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommitResult), args.Error(1)
}
