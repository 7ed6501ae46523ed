package digest

import (
	"testing"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(code string, role domain.Role, bal string) domain.DigestRow {
	return domain.DigestRow{Code: code, Role: role, RoleBS: role.Section(), Balance: dec(bal), BalanceAbs: dec(bal).Abs()}
}

func sampleRows() []domain.DigestRow {
	return []domain.DigestRow{
		row("1010", domain.RoleAssetCash, "1500"),
		row("1100", domain.RoleAssetReceivables, "500"),
		row("1500", domain.RoleAssetEquipment, "2000"),
		row("2010", domain.RoleLiabilityAccountsPayable, "1000"),
		row("2500", domain.RoleLiabilityLTNotesPayable, "1000"),
		row("3010", domain.RoleEquityCapital, "1000"),
		row("4010", domain.RoleIncomeOperational, "3000"),
		row("4020", domain.RoleIncomeInterest, "100"),
		row("5010", domain.RoleCOGS, "-1200"),
		row("6010", domain.RoleExpenseOperational, "-700"),
		row("6020", domain.RoleExpenseInterest, "-200"),
	}
}

func TestClassifyRoles(t *testing.T) {
	roles := ClassifyRoles(sampleRows(), false)
	assert.True(t, roles.Balance(domain.RoleAssetCash).Equal(dec("1500")))
	assert.True(t, roles.Balance(domain.RoleAssetInventory).IsZero())
	assert.Empty(t, roles.Buckets)
	// directory order: first asset role first
	require.NotEmpty(t, roles.Roles)
	assert.Equal(t, domain.RolesDirectory[domain.CategoryAsset][0], roles.Roles[0].Role)
}

func TestClassifyRoles_Buckets(t *testing.T) {
	rows := []domain.DigestRow{
		{Code: "1010", Role: domain.RoleAssetCash, UnitID: "b", Balance: dec("5")},
		{Code: "1010", Role: domain.RoleAssetCash, UnitID: "a", Balance: dec("7")},
		{Code: "1100", Role: domain.RoleAssetReceivables, UnitID: "a", Balance: dec("1")},
	}
	roles := ClassifyRoles(rows, true)
	require.Len(t, roles.Buckets, 2)
	assert.Equal(t, "a", roles.Buckets[0].Key.UnitID)
	assert.True(t, roles.Buckets[0].Balances[domain.RoleAssetCash].Equal(dec("7")))
	assert.True(t, roles.Buckets[0].Balances[domain.RoleAssetReceivables].Equal(dec("1")))
	assert.True(t, roles.Buckets[1].Balances[domain.RoleAssetCash].Equal(dec("5")))
	assert.True(t, roles.Balance(domain.RoleAssetCash).Equal(dec("12")))
}

func TestClassifyGroups(t *testing.T) {
	groups := ClassifyGroups(sampleRows(), false)
	require.Len(t, groups.Groups, len(domain.RoleGroups))
	assert.Equal(t, domain.RoleGroups[0].Name, groups.Groups[0].Group)

	tests := []struct {
		group string
		want  string
	}{
		{domain.GroupQuickAssets, "1500"},
		{domain.GroupCurrentAssets, "2000"},
		{domain.GroupAssets, "4000"},
		{domain.GroupCurrentLiabilities, "1000"},
		{domain.GroupLiabilities, "2000"},
		{domain.GroupCapital, "1000"},
		{domain.GroupNetSales, "3000"},
		{domain.GroupGrossProfit, "1800"},
		{domain.GroupEarnings, "1000"},
		{domain.GroupLiabilitiesEquity, "4000"},
		{"GROUP_DOES_NOT_EXIST", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.group, func(t *testing.T) {
			got := groups.Balance(tt.group)
			assert.True(t, got.Equal(dec(tt.want)), "got %s", got)
		})
	}
}

func TestComputeRatios(t *testing.T) {
	r := ComputeRatios(ClassifyGroups(sampleRows(), false))

	assert.True(t, r.QuickRatio.Valid)
	assert.True(t, r.QuickRatio.Decimal.Equal(dec("1.5")))
	assert.True(t, r.CurrentRatio.Decimal.Equal(dec("2")))
	assert.True(t, r.DebtToEquity.Decimal.Equal(dec("2")))
	assert.True(t, r.ReturnOnEquity.Decimal.Equal(dec("1")))
	assert.True(t, r.ReturnOnAssets.Decimal.Equal(dec("0.25")))
	assert.True(t, r.GrossProfitMargin.Decimal.Equal(dec("0.6")))
}

func TestComputeRatios_ZeroDenominator(t *testing.T) {
	rows := []domain.DigestRow{row("1010", domain.RoleAssetCash, "100")}
	r := ComputeRatios(ClassifyGroups(rows, false))

	assert.False(t, r.QuickRatio.Valid)
	assert.False(t, r.CurrentRatio.Valid)
	assert.False(t, r.DebtToEquity.Valid)
	assert.False(t, r.ReturnOnEquity.Valid)
	assert.False(t, r.NetProfitMargin.Valid)
	assert.False(t, r.GrossProfitMargin.Valid)
	assert.True(t, r.ReturnOnAssets.Valid)
	assert.True(t, r.ReturnOnAssets.Decimal.IsZero())
}

func TestBuildBalanceSheet(t *testing.T) {
	bs := BuildBalanceSheet(ClassifyGroups(sampleRows(), false))
	require.Len(t, bs.Sections, 3)

	assert.Equal(t, domain.BSAssets, bs.Sections[0].Section)
	assert.True(t, bs.Sections[0].Balance.Equal(dec("4000")))
	assert.Len(t, bs.Sections[0].Roles, 3)
	assert.Equal(t, domain.BSLiabilities, bs.Sections[1].Section)
	assert.True(t, bs.Sections[1].Balance.Equal(dec("2000")))
	assert.Equal(t, domain.BSEquity, bs.Sections[2].Section)
	assert.True(t, bs.Sections[2].Balance.Equal(dec("1000")))

	assert.True(t, bs.RetainedEarningsBalance.Equal(dec("1000")))
	assert.True(t, bs.EquityBalance.Equal(dec("2000")))
	assert.True(t, bs.LiabilitiesEquityBalance.Equal(bs.Sections[0].Balance), "assets equal liabilities plus equity")
}

func TestBuildIncomeStatement(t *testing.T) {
	is := BuildIncomeStatement(ClassifyGroups(sampleRows(), false))

	assert.Len(t, is.Operating.Revenues, 1)
	assert.True(t, is.Operating.GrossProfit.Equal(dec("1800")))
	assert.True(t, is.Operating.NetOperatingIncome.Equal(dec("1100")))
	assert.True(t, is.Other.NetOtherRevenues.Equal(dec("100")))
	assert.True(t, is.Other.NetOtherExpenses.Equal(dec("-200")))
	assert.True(t, is.Other.NetOtherIncome.Equal(dec("-100")))
	assert.True(t, is.NetIncome.Equal(dec("1000")))
}

func TestBuildCashFlow(t *testing.T) {
	rows := []domain.DigestRow{
		{Code: "1010", Role: domain.RoleAssetCash, Activity: domain.ActivityFinancingEquity, Balance: dec("1000")},
		{Code: "1010", Role: domain.RoleAssetCash, Activity: domain.ActivityInvestingPPE, Balance: dec("-400")},
		{Code: "1010", Role: domain.RoleAssetCash, Activity: domain.ActivityOperating, Balance: dec("250")},
		{Code: "1100", Role: domain.RoleAssetReceivables, Activity: domain.ActivityOperating, Balance: dec("50")},
		{Code: "1500", Role: domain.RoleAssetEquipment, Activity: domain.ActivityInvestingPPE, Balance: dec("400")},
		{Code: "3010", Role: domain.RoleEquityCapital, Activity: domain.ActivityFinancingEquity, Balance: dec("1000")},
		{Code: "4010", Role: domain.RoleIncomeOperational, Activity: domain.ActivityOperating, Balance: dec("300")},
	}
	cfs := BuildCashFlow(rows, ClassifyGroups(rows, false))

	assert.True(t, cfs.NetIncome.Equal(dec("300")))
	assert.True(t, cfs.NetCashByActivity[domain.CategoryOperating].Equal(dec("250")), "net income less receivables increase")
	assert.True(t, cfs.NetCashByActivity[domain.CategoryFinancing].Equal(dec("1000")))
	assert.True(t, cfs.NetCashByActivity[domain.CategoryInvesting].Equal(dec("-400")))
	assert.True(t, cfs.NetCash.Equal(dec("850")))

	var cash decimal.Decimal
	for _, r := range rows {
		if r.Role == domain.RoleAssetCash {
			cash = cash.Add(r.Balance)
		}
	}
	assert.True(t, cash.Equal(cfs.NetCash), "net cash matches the change in cash")
}

func TestApply(t *testing.T) {
	q, err := domain.DigestQuery{BalanceSheet: true, ProcessRatios: true}.Normalize()
	require.NoError(t, err)

	res := &domain.DigestResult{Rows: sampleRows()}
	Apply(q, res)

	assert.NotNil(t, res.Groups)
	assert.NotNil(t, res.Ratios)
	assert.NotNil(t, res.BalanceSheet)
	assert.Nil(t, res.Roles)
	assert.Nil(t, res.IncomeStatement)
	assert.Nil(t, res.CashFlow)
	assert.Nil(t, res.Activities)
}
