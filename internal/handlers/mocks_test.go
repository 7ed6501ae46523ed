package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock EntityService ---
type MockEntityService struct {
	mock.Mock
}

func (m *MockEntityService) CreateEntity(ctx context.Context, req dto.CreateEntityRequest, actor string) (*domain.Entity, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockEntityService) GetEntity(ctx context.Context, entityID string) (*domain.Entity, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockEntityService) CreateUnit(ctx context.Context, entityID string, req dto.CreateUnitRequest, actor string) (*domain.Unit, error) {
	args := m.Called(ctx, entityID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Unit), args.Error(1)
}

func (m *MockEntityService) GetUnit(ctx context.Context, unitID string) (*domain.Unit, error) {
	args := m.Called(ctx, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Unit), args.Error(1)
}

func (m *MockEntityService) ListUnits(ctx context.Context, entityID string) ([]domain.Unit, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Unit), args.Error(1)
}

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) ListAccounts(ctx context.Context, entityID string) ([]domain.Account, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountTree(ctx context.Context, entityID string) (*domain.AccountTree, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountTree), args.Error(1)
}

func (m *MockAccountService) ListSubAccounts(ctx context.Context, entityID, code string) ([]domain.Account, error) {
	args := m.Called(ctx, entityID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) SeedChart(ctx context.Context, entityID string, seed domain.ChartSeed, actor string) ([]domain.Account, error) {
	args := m.Called(ctx, entityID, seed, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetLedger(ctx context.Context, ledgerID string) (*domain.Ledger, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

func (m *MockLedgerService) ListLedgers(ctx context.Context, entityID string) ([]domain.Ledger, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ledger), args.Error(1)
}

func (m *MockLedgerService) ListJournalEntries(ctx context.Context, ledgerID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	args := m.Called(ctx, ledgerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalEntriesResponse), args.Error(1)
}

func (m *MockLedgerService) GetJournalEntry(ctx context.Context, journalEntryID string) (*domain.JournalEntry, []domain.Transaction, error) {
	args := m.Called(ctx, journalEntryID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var txs []domain.Transaction
	if args.Get(1) != nil {
		txs = args.Get(1).([]domain.Transaction)
	}
	return args.Get(0).(*domain.JournalEntry), txs, args.Error(2)
}

func (m *MockLedgerService) CreateLedger(ctx context.Context, entityID string, req dto.CreateLedgerRequest, actor string) (*domain.Ledger, error) {
	args := m.Called(ctx, entityID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

func (m *MockLedgerService) PostLedger(ctx context.Context, ledgerID string, actor string) (*domain.Ledger, error) {
	return m.transition("PostLedger", ctx, ledgerID, actor)
}

func (m *MockLedgerService) LockLedger(ctx context.Context, ledgerID string, actor string) (*domain.Ledger, error) {
	return m.transition("LockLedger", ctx, ledgerID, actor)
}

func (m *MockLedgerService) UnlockLedger(ctx context.Context, ledgerID string, actor string) (*domain.Ledger, error) {
	return m.transition("UnlockLedger", ctx, ledgerID, actor)
}

func (m *MockLedgerService) DeleteJournalEntry(ctx context.Context, journalEntryID string, actor string) error {
	args := m.Called(ctx, journalEntryID, actor)
	return args.Error(0)
}

func (m *MockLedgerService) transition(name string, ctx context.Context, ledgerID, actor string) (*domain.Ledger, error) {
	args := m.MethodCalled(name, ctx, ledgerID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

func (m *MockPostingService) CommitTxs(ctx context.Context, scope domain.Scope, req domain.CommitRequest) (*domain.CommitResult, error) {
	args := m.Called(ctx, scope, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommitResult), args.Error(1)
}

// --- Mock DigestService ---
type MockDigestService struct {
	mock.Mock
}

func (m *MockDigestService) Digest(ctx context.Context, scope domain.Scope, q domain.DigestQuery) (*domain.DigestResult, error) {
	args := m.Called(ctx, scope, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DigestResult), args.Error(1)
}

// --- Mock ClosingService ---
type MockClosingService struct {
	mock.Mock
}

func (m *MockClosingService) ListClosingEntries(ctx context.Context, entityID string) ([]domain.ClosingEntry, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClosingEntry), args.Error(1)
}

func (m *MockClosingService) ClosePeriod(ctx context.Context, entityID string, date time.Time, actor string) (*domain.ClosingEntry, error) {
	args := m.Called(ctx, entityID, date, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosingEntry), args.Error(1)
}

// --- Mock IOLibrary and Cursor ---
type MockLibrary struct {
	mock.Mock
}

func (m *MockLibrary) Register(name string, fn domain.BlueprintFunc) error {
	return m.Called(name, fn).Error(0)
}

func (m *MockLibrary) Blueprints() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockLibrary) GetCursor(entityID, actor string, mode domain.CursorMode) portssvc.CursorSvc {
	return m.Called(entityID, actor, mode).Get(0).(portssvc.CursorSvc)
}

type MockCursor struct {
	mock.Mock
}

func (m *MockCursor) Dispatch(name string, ref domain.LedgerRef, params domain.BlueprintParams) error {
	return m.Called(name, ref, params).Error(0)
}

func (m *MockCursor) Commit(ctx context.Context, opts domain.CursorCommitOptions) ([]domain.LedgerCommitResult, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerCommitResult), args.Error(1)
}

func (m *MockCursor) Committed() bool {
	return m.Called().Bool(0)
}
