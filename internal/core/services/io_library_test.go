package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/platform/metrics"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func transfer(code string) domain.BlueprintFunc {
	return func(params domain.BlueprintParams) (*domain.Blueprint, error) {
		amount, err := params.Decimal("amount")
		if err != nil {
			return nil, err
		}
		bp := domain.NewBlueprint("transfer", 2)
		if err := bp.Debit(code, amount, ""); err != nil {
			return nil, err
		}
		if err := bp.Credit("3010", amount, ""); err != nil {
			return nil, err
		}
		return bp, nil
	}
}

func TestIOLibrary_Register(t *testing.T) {
	lib := services.NewIOLibrary(nil, nil, nil)

	require.NoError(t, lib.Register("b", transfer("1010")))
	require.NoError(t, lib.Register("a", transfer("1010")))
	assert.ErrorIs(t, lib.Register("a", transfer("1010")), apperrors.ErrDuplicate)
	assert.ErrorIs(t, lib.Register("", transfer("1010")), apperrors.ErrValidation)
	assert.ErrorIs(t, lib.Register("c", nil), apperrors.ErrValidation)

	assert.Equal(t, []string{"b", "a"}, lib.Blueprints())
}

func TestCursor_PartialCommit(t *testing.T) {
	ctx := context.Background()
	ledgerRepo := new(MockLedgerRepository)
	accountRepo := new(MockAccountRepository)
	posting := new(MockPostingService)
	m := metrics.NewMetrics()

	l1 := &domain.Ledger{LedgerID: "l1", EntityID: "e1", IsPosted: true}
	l2 := &domain.Ledger{LedgerID: "l2", EntityID: "e1", IsPosted: true}
	ledgerRepo.On("FindLedgerByID", mock.Anything, "l1").Return(l1, nil)
	ledgerRepo.On("FindLedgerByID", mock.Anything, "l2").Return(l2, nil)
	accountRepo.On("FindAccountsByCodes", mock.Anything, "e1", mock.Anything).Return(map[string]domain.Account{
		"1010": {AccountID: "cash", Code: "1010", IsActive: true},
		"3010": {AccountID: "cap", Code: "3010", IsActive: true},
	}, nil)

	ts := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	posting.On("CommitTxs", mock.Anything, domain.LedgerScope{EntityID: "e1", LedgerID: "l1"}, mock.MatchedBy(func(r domain.CommitRequest) bool {
		return r.Origin == services.CursorOrigin && r.Timestamp.Equal(ts) && r.Actor == "robot" && len(r.Lines) == 2
	})).Return(&domain.CommitResult{JournalEntry: domain.JournalEntry{JournalEntryID: "je1"}}, nil)
	lockErr := errors.New("ledger locked meanwhile")
	posting.On("CommitTxs", mock.Anything, domain.LedgerScope{EntityID: "e1", LedgerID: "l2"}, mock.Anything).Return(nil, lockErr)

	lib := services.NewIOLibrary(ledgerRepo, accountRepo, posting, services.WithLibraryMetrics(m))
	require.NoError(t, lib.Register("transfer", transfer("1010")))

	cur := lib.GetCursor("e1", "robot", domain.CursorStrict)
	require.NoError(t, cur.Dispatch("transfer", domain.LedgerRef{LedgerID: "l1"}, domain.BlueprintParams{"amount": "3"}))
	require.NoError(t, cur.Dispatch("transfer", domain.LedgerRef{LedgerID: "l2"}, domain.BlueprintParams{"amount": "4"}))

	results, err := cur.Commit(ctx, domain.CursorCommitOptions{Timestamp: ts})

	assert.ErrorIs(t, err, domain.ErrPartialCommit)
	require.Len(t, results, 2)
	assert.True(t, results[0].Committed)
	assert.Equal(t, "je1", results[0].JournalEntry.JournalEntryID)
	assert.False(t, results[1].Committed)
	assert.ErrorIs(t, results[1].Err, lockErr)
	assert.True(t, results[1].Instructions[0].Amount.Equal(decimal.NewFromInt(4)))
	assert.True(t, cur.Committed())
	ledgerRepo.AssertNotCalled(t, "SaveLedger", mock.Anything, mock.Anything)
}

func TestCursor_RejectsForeignAndLockedLedgers(t *testing.T) {
	tests := []struct {
		name   string
		ledger *domain.Ledger
		want   error
	}{
		{name: "other entity", ledger: &domain.Ledger{LedgerID: "l1", EntityID: "e2"}, want: domain.ErrCrossEntityReference},
		{name: "locked", ledger: &domain.Ledger{LedgerID: "l1", EntityID: "e1", IsPosted: true, IsLocked: true}, want: domain.ErrLockedLedger},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ledgerRepo := new(MockLedgerRepository)
			accountRepo := new(MockAccountRepository)
			posting := new(MockPostingService)
			ledgerRepo.On("FindLedgerByID", mock.Anything, "l1").Return(tc.ledger, nil)
			accountRepo.On("FindAccountsByCodes", mock.Anything, "e1", mock.Anything).Return(map[string]domain.Account{
				"1010": {Code: "1010", IsActive: true},
				"3010": {Code: "3010", IsActive: true},
			}, nil)

			lib := services.NewIOLibrary(ledgerRepo, accountRepo, posting)
			require.NoError(t, lib.Register("transfer", transfer("1010")))
			cur := lib.GetCursor("e1", "robot", domain.CursorPermissive)
			require.NoError(t, cur.Dispatch("transfer", domain.LedgerRef{LedgerID: "l1"}, domain.BlueprintParams{"amount": 1}))

			_, err := cur.Commit(context.Background(), domain.CursorCommitOptions{})
			assert.ErrorIs(t, err, tc.want)
			assert.False(t, cur.Committed())
			posting.AssertNotCalled(t, "CommitTxs", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCursor_DispatchRejectsBadAmounts(t *testing.T) {
	lib := services.NewIOLibrary(nil, nil, nil)
	require.NoError(t, lib.Register("transfer", transfer("1010")))
	cur := lib.GetCursor("e1", "robot", domain.CursorPermissive)

	tests := []struct {
		name   string
		params domain.BlueprintParams
	}{
		{name: "negative", params: domain.BlueprintParams{"amount": "-5"}},
		{name: "zero", params: domain.BlueprintParams{"amount": 0}},
		{name: "missing", params: domain.BlueprintParams{}},
		{name: "not a number", params: domain.BlueprintParams{"amount": "ten"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, cur.Dispatch("transfer", domain.LedgerRef{LedgerID: "l1"}, tc.params), domain.ErrInvalidAmount)
		})
	}
	assert.False(t, cur.Committed())
}

func TestCursor_CommitWithoutDispatches(t *testing.T) {
	lib := services.NewIOLibrary(nil, nil, nil)
	_, err := lib.GetCursor("e1", "robot", domain.CursorPermissive).Commit(context.Background(), domain.CursorCommitOptions{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestParseBlueprintTemplates(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{name: "empty document", doc: "blueprints: []", want: apperrors.ErrValidation},
		{name: "single line", doc: "blueprints:\n  - name: x\n    lines:\n      - {account: \"1010\", tx_type: debit, amount: \"1\"}\n", want: apperrors.ErrValidation},
		{name: "bad tx type", doc: "blueprints:\n  - name: x\n    lines:\n      - {account: \"1010\", tx_type: up, amount: \"1\"}\n      - {account: \"3010\", tx_type: credit, amount: \"1\"}\n", want: apperrors.ErrValidation},
		{name: "no amount source", doc: "blueprints:\n  - name: x\n    lines:\n      - {account: \"1010\", tx_type: debit}\n      - {account: \"3010\", tx_type: credit, amount: \"1\"}\n", want: apperrors.ErrValidation},
		{name: "bad ratio", doc: "blueprints:\n  - name: x\n    lines:\n      - {account: \"1010\", tx_type: debit, param: amount, ratio: half}\n      - {account: \"3010\", tx_type: credit, param: amount}\n", want: domain.ErrInvalidAmount},
		{name: "not yaml", doc: "blueprints: [", want: apperrors.ErrValidation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := services.ParseBlueprintTemplates([]byte(tc.doc))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestBlueprintTemplate_Func(t *testing.T) {
	templates, err := services.ParseBlueprintTemplates([]byte(`
blueprints:
  - name: sale_with_tax
    lines:
      - account: "1010"
        tx_type: debit
        param: gross
      - account: "4010"
        tx_type: credit
        param: gross
        ratio: "0.8"
        description: net
      - account: "2030"
        tx_type: credit
        param: gross
        ratio: "0.2"
`))
	require.NoError(t, err)
	require.Len(t, templates, 1)

	bp, err := templates[0].Func(2)(domain.BlueprintParams{"gross": "10.555", "description": "till 4"})
	require.NoError(t, err)
	require.Len(t, bp.Instructions, 3)
	assert.Equal(t, "10.56", bp.Instructions[0].Amount.StringFixed(2))
	assert.Equal(t, "till 4", bp.Instructions[0].Description)
	assert.Equal(t, "8.44", bp.Instructions[1].Amount.StringFixed(2))
	assert.Equal(t, "net", bp.Instructions[1].Description)
	assert.Equal(t, domain.Credit, bp.Instructions[2].TxType)
	assert.Equal(t, "2.11", bp.Instructions[2].Amount.StringFixed(2))

	_, err = templates[0].Func(2)(domain.BlueprintParams{})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}
