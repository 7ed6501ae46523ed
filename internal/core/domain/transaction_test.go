package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionLine_Validate(t *testing.T) {
	tests := []struct {
		name    string
		line    domain.TransactionLine
		wantErr error
	}{
		{
			name: "valid by code",
			line: domain.TransactionLine{AccountCode: "1010", Amount: decimal.NewFromInt(10), TxType: domain.Debit},
		},
		{
			name: "zero amount is allowed",
			line: domain.TransactionLine{AccountID: "acc_1", Amount: decimal.Zero, TxType: domain.Credit},
		},
		{
			name:    "missing account",
			line:    domain.TransactionLine{Amount: decimal.NewFromInt(10), TxType: domain.Debit},
			wantErr: domain.ErrInvalidLine,
		},
		{
			name:    "bad tx type",
			line:    domain.TransactionLine{AccountCode: "1010", Amount: decimal.NewFromInt(10), TxType: "DEBIT"},
			wantErr: domain.ErrInvalidLine,
		},
		{
			name:    "negative amount",
			line:    domain.TransactionLine{AccountCode: "1010", Amount: decimal.NewFromInt(-1), TxType: domain.Debit},
			wantErr: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.line.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestLedger_Apply(t *testing.T) {
	fresh := domain.Ledger{LedgerID: "l1"}

	_, err := fresh.Apply(domain.LedgerLock)
	assert.ErrorIs(t, err, domain.ErrLedgerNotPosted)

	posted, err := fresh.Apply(domain.LedgerPost)
	require.NoError(t, err)
	assert.True(t, posted.IsPosted)
	assert.False(t, fresh.IsPosted, "receiver is not mutated")

	locked, err := posted.Apply(domain.LedgerLock)
	require.NoError(t, err)
	assert.True(t, locked.IsLocked)

	_, err = locked.Apply(domain.LedgerUnpost)
	assert.ErrorIs(t, err, domain.ErrLockedLedger)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	unlocked, err := locked.Apply(domain.LedgerUnlock)
	require.NoError(t, err)
	assert.False(t, unlocked.IsLocked)

	_, err = unlocked.Apply("archive")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestEntity_IsClosedOn(t *testing.T) {
	closing := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	e := domain.Entity{LastClosingDate: &closing}

	assert.True(t, e.IsClosedOn(time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC)))
	assert.True(t, e.IsClosedOn(time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, e.IsClosedOn(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, domain.Entity{}.IsClosedOn(closing))
}

func TestScope_PostingTarget(t *testing.T) {
	tests := []struct {
		name       string
		scope      domain.Scope
		req        domain.CommitRequest
		wantLedger string
		wantUnit   string
		wantErr    error
	}{
		{
			name:       "entity scope with ledger",
			scope:      domain.EntityScope{EntityID: "e"},
			req:        domain.CommitRequest{LedgerID: "l", UnitID: "u"},
			wantLedger: "l",
			wantUnit:   "u",
		},
		{
			name:    "entity scope without ledger",
			scope:   domain.EntityScope{EntityID: "e"},
			wantErr: domain.ErrMissingLedger,
		},
		{
			name:       "ledger scope uses its own ledger",
			scope:      domain.LedgerScope{EntityID: "e", LedgerID: "l"},
			wantLedger: "l",
		},
		{
			name:    "ledger scope rejects another ledger",
			scope:   domain.LedgerScope{EntityID: "e", LedgerID: "l"},
			req:     domain.CommitRequest{LedgerID: "other"},
			wantErr: domain.ErrCrossEntityReference,
		},
		{
			name:       "unit scope tags its unit",
			scope:      domain.UnitScope{EntityID: "e", UnitID: "u"},
			req:        domain.CommitRequest{LedgerID: "l"},
			wantLedger: "l",
			wantUnit:   "u",
		},
		{
			name:    "unit scope rejects another unit",
			scope:   domain.UnitScope{EntityID: "e", UnitID: "u"},
			req:     domain.CommitRequest{LedgerID: "l", UnitID: "x"},
			wantErr: domain.ErrCrossEntityReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledgerID, unitID, err := tt.scope.PostingTarget(tt.req)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLedger, ledgerID)
			assert.Equal(t, tt.wantUnit, unitID)
			assert.Equal(t, "e", tt.scope.Entity())
		})
	}
}
