package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlueprintAmounts(t *testing.T) {
	bp := NewBlueprint("capital", 2)

	require.NoError(t, bp.Debit("1010", decimal.RequireFromString("1000.005"), "cash"))
	require.NoError(t, bp.Credit("3010", decimal.RequireFromString("1000.00"), ""))
	assert.ErrorIs(t, bp.Debit("1010", decimal.Zero, ""), ErrInvalidAmount)
	assert.ErrorIs(t, bp.Credit("1010", decimal.NewFromInt(-5), ""), ErrInvalidAmount)
	assert.ErrorIs(t, bp.Credit("", decimal.NewFromInt(5), ""), ErrInvalidLine)

	require.Len(t, bp.Instructions, 2)
	assert.Equal(t, "1000.01", bp.Instructions[0].Amount.StringFixed(2))
	assert.Equal(t, Debit, bp.Instructions[0].TxType)
	assert.Equal(t, Credit, bp.Instructions[1].Line().TxType)
}

func TestBlueprintParams(t *testing.T) {
	p := BlueprintParams{"a": "12.50", "b": 3.25, "c": 7, "d": decimal.NewFromInt(2), "e": true}

	for key, want := range map[string]string{"a": "12.5", "b": "3.25", "c": "7", "d": "2"} {
		got, err := p.Decimal(key)
		require.NoError(t, err, key)
		assert.True(t, decimal.RequireFromString(want).Equal(got), key)
	}
	_, err := p.Decimal("e")
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = p.Decimal("missing")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	assert.Equal(t, "12.50", p.String("a"))
	assert.Equal(t, "3.25", p.String("b"))
	assert.Equal(t, "", p.String("missing"))
}

func TestLedgerRef(t *testing.T) {
	assert.True(t, LedgerRef{}.IsZero())
	assert.Equal(t, "id:l1", LedgerRef{LedgerID: "l1", ExternalID: "x"}.String())
	assert.Equal(t, "xid:x", LedgerRef{ExternalID: "x"}.String())
	assert.Equal(t, "new", LedgerRef{}.String())
}

func TestChartSeedValidate(t *testing.T) {
	valid := ChartSeed{Slug: "default", Accounts: []AccountSeed{
		{Code: "1000", Name: "Current Assets", Role: RoleAssetCash, BalanceType: Debit, Children: []AccountSeed{
			{Code: "1010", Name: "Cash", Role: RoleAssetCash, BalanceType: Debit},
		}},
	}}
	assert.NoError(t, valid.Validate())

	dup := valid
	dup.Accounts = append(dup.Accounts, AccountSeed{Code: "1010", Name: "Again", Role: RoleAssetCash, BalanceType: Debit})
	assert.ErrorIs(t, dup.Validate(), ErrInvalidAccountTree)

	rootClash := ChartSeed{Slug: "x", Accounts: []AccountSeed{{Code: "01000", Name: "n", Role: RoleAssetCash, BalanceType: Debit}}}
	assert.ErrorIs(t, rootClash.Validate(), ErrInvalidAccountTree)

	badRole := ChartSeed{Slug: "x", Accounts: []AccountSeed{{Code: "1", Name: "n", Role: "nope", BalanceType: Debit}}}
	assert.ErrorIs(t, badRole.Validate(), ErrInvalidRole)

	rootRole := ChartSeed{Slug: "x", Accounts: []AccountSeed{{Code: "1", Name: "n", Role: RoleRootAssets, BalanceType: Debit}}}
	assert.ErrorIs(t, rootRole.Validate(), ErrInvalidAccountTree)
}

func TestRootFor(t *testing.T) {
	meta, ok := RootFor(RoleAssetCash)
	require.True(t, ok)
	assert.Equal(t, "01000", meta.Code)

	meta, ok = RootFor(RoleExpenseOperational)
	require.True(t, ok)
	assert.Equal(t, RoleRootExpenses, meta.Role)

	_, ok = RootFor(RoleRootAssets)
	assert.False(t, ok)
}
