package txbalancer

import (
	"testing"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func l(code, amount string, txType domain.TransactionType) domain.TransactionLine {
	return domain.TransactionLine{AccountCode: code, Amount: decimal.RequireFromString(amount), TxType: txType}
}

func TestBalance(t *testing.T) {
	tests := []struct {
		name    string
		lines   []domain.TransactionLine
		want    map[string]string
		wantErr bool
	}{
		{
			name:  "already balanced",
			lines: []domain.TransactionLine{l("1010", "10.00", domain.Debit), l("3010", "10.00", domain.Credit)},
			want:  map[string]string{"1010": "10", "3010": "10"},
		},
		{
			name: "debit side short",
			lines: []domain.TransactionLine{
				l("1010", "3.333", domain.Debit), l("1020", "6.666", domain.Debit), l("3010", "10.00", domain.Credit),
			},
			want: map[string]string{"1010": "3.33", "1020": "6.67", "3010": "10"},
		},
		{
			name:  "credit side short",
			lines: []domain.TransactionLine{l("1010", "100", domain.Debit), l("3010", "99.5", domain.Credit)},
			want:  map[string]string{"1010": "100", "3010": "100"},
		},
		{
			name:    "no line on the short side",
			lines:   []domain.TransactionLine{l("1010", "5", domain.Debit)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(2).Balance(tt.lines)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrCannotBalance)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, accounting.ValidateLinesBalance(got, decimal.Zero))
			for _, line := range got {
				assert.True(t, decimal.RequireFromString(tt.want[line.AccountCode]).Equal(line.Amount),
					"%s: got %s", line.AccountCode, line.Amount)
			}
		})
	}
}

func TestBalanceDoesNotMutateInput(t *testing.T) {
	in := []domain.TransactionLine{l("1010", "1", domain.Debit), l("3010", "2", domain.Credit)}
	_, err := New(2).Balance(in)
	require.NoError(t, err)
	assert.True(t, in[0].Amount.Equal(decimal.NewFromInt(1)))
}
