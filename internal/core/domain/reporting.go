package domain

import (
	"github.com/shopspring/decimal"
)

// RoleBalance is the total of all digest rows sharing a role.
type RoleBalance struct {
	Role     Role            `json:"role"`
	RoleBS   RoleBS          `json:"roleBS"`
	Name     string          `json:"roleName"`
	Accounts []DigestRow     `json:"accounts"`
	Balance  decimal.Decimal `json:"balance"`
}

// RoleBucket holds per role balances for one unit/period bucket.
type RoleBucket struct {
	Key      BreakdownKey             `json:"key"`
	Balances map[Role]decimal.Decimal `json:"balances"`
}

// RoleBreakdown is the output of role classification. Roles follow the role directory
// order; Buckets is populated when the digest was broken down by unit or period.
type RoleBreakdown struct {
	Roles   []RoleBalance `json:"roles"`
	Buckets []RoleBucket  `json:"buckets,omitempty"`
}

// Balance returns the total balance of the role.
func (b *RoleBreakdown) Balance(r Role) decimal.Decimal {
	for _, rb := range b.Roles {
		if rb.Role == r {
			return rb.Balance
		}
	}
	return decimal.Zero
}

// GroupBalance is the total of all digest rows whose role belongs to a role group.
type GroupBalance struct {
	Group    string          `json:"group"`
	Accounts []DigestRow     `json:"accounts"`
	Balance  decimal.Decimal `json:"balance"`
}

// GroupBucket holds per group balances for one unit/period bucket.
type GroupBucket struct {
	Key      BreakdownKey               `json:"key"`
	Balances map[string]decimal.Decimal `json:"balances"`
}

// GroupBreakdown is the output of group classification, one entry per RoleGroups
// element in the same order.
type GroupBreakdown struct {
	Groups  []GroupBalance `json:"groups"`
	Buckets []GroupBucket  `json:"buckets,omitempty"`

	index map[string]int
}

// NewGroupBreakdown indexes groups by name.
func NewGroupBreakdown(groups []GroupBalance, buckets []GroupBucket) *GroupBreakdown {
	idx := make(map[string]int, len(groups))
	for i, g := range groups {
		idx[g.Group] = i
	}
	return &GroupBreakdown{Groups: groups, Buckets: buckets, index: idx}
}

// Balance returns the group total, zero for unknown groups.
func (b *GroupBreakdown) Balance(group string) decimal.Decimal {
	if i, ok := b.index[group]; ok {
		return b.Groups[i].Balance
	}
	return decimal.Zero
}

// Accounts returns the rows of a group.
func (b *GroupBreakdown) Accounts(group string) []DigestRow {
	if i, ok := b.index[group]; ok {
		return b.Groups[i].Accounts
	}
	return nil
}

// ActivityBalance is the total of all digest rows tagged with an activity.
type ActivityBalance struct {
	Activity Activity         `json:"activity"`
	Name     string           `json:"name"`
	Category ActivityCategory `json:"category"`
	Accounts []DigestRow      `json:"accounts"`
	Balance  decimal.Decimal  `json:"balance"`
}

// ActivityBucket holds per activity balances for one unit/period bucket.
type ActivityBucket struct {
	Key      BreakdownKey                 `json:"key"`
	Balances map[Activity]decimal.Decimal `json:"balances"`
}

// ActivityBreakdown is the output of activity classification.
type ActivityBreakdown struct {
	Activities []ActivityBalance `json:"activities"`
	Buckets    []ActivityBucket  `json:"buckets,omitempty"`
}

// Balance returns the total balance of the activity.
func (b *ActivityBreakdown) Balance(a Activity) decimal.Decimal {
	for _, ab := range b.Activities {
		if ab.Activity == a {
			return ab.Balance
		}
	}
	return decimal.Zero
}

// Ratios are standard financial ratios. A ratio is invalid (null) when its denominator
// is zero.
type Ratios struct {
	QuickRatio        decimal.NullDecimal `json:"quickRatio"`
	CurrentRatio      decimal.NullDecimal `json:"currentRatio"`
	DebtToEquity      decimal.NullDecimal `json:"debtToEquity"`
	ReturnOnEquity    decimal.NullDecimal `json:"returnOnEquity"`
	ReturnOnAssets    decimal.NullDecimal `json:"returnOnAssets"`
	NetProfitMargin   decimal.NullDecimal `json:"netProfitMargin"`
	GrossProfitMargin decimal.NullDecimal `json:"grossProfitMargin"`
}

// BalanceSheetSection is one balance sheet block (assets, liabilities or equity).
type BalanceSheetSection struct {
	Section RoleBS          `json:"section"`
	Roles   []RoleBalance   `json:"roles"`
	Balance decimal.Decimal `json:"balance"`
}

// BalanceSheet is a point in time statement.
type BalanceSheet struct {
	Sections                 []BalanceSheetSection `json:"sections"`
	EquityBalance            decimal.Decimal       `json:"equityBalance"`
	RetainedEarningsBalance  decimal.Decimal       `json:"retainedEarningsBalance"`
	LiabilitiesEquityBalance decimal.Decimal       `json:"liabilitiesEquityBalance"`
}

// IncomeStatementOperating is the operating block of the income statement.
type IncomeStatementOperating struct {
	Revenues             []DigestRow     `json:"revenues"`
	COGS                 []DigestRow     `json:"cogs"`
	Expenses             []DigestRow     `json:"expenses"`
	GrossProfit          decimal.Decimal `json:"grossProfit"`
	NetOperatingIncome   decimal.Decimal `json:"netOperatingIncome"`
	NetOperatingRevenue  decimal.Decimal `json:"netOperatingRevenue"`
	NetCOGS              decimal.Decimal `json:"netCOGS"`
	NetOperatingExpenses decimal.Decimal `json:"netOperatingExpenses"`
}

// IncomeStatementOther is the non operating block of the income statement.
type IncomeStatementOther struct {
	Revenues         []DigestRow     `json:"revenues"`
	Expenses         []DigestRow     `json:"expenses"`
	NetOtherRevenues decimal.Decimal `json:"netOtherRevenues"`
	NetOtherExpenses decimal.Decimal `json:"netOtherExpenses"`
	NetOtherIncome   decimal.Decimal `json:"netOtherIncome"`
}

// IncomeStatement covers a date window.
type IncomeStatement struct {
	Operating IncomeStatementOperating `json:"operating"`
	Other     IncomeStatementOther     `json:"other"`
	NetIncome decimal.Decimal          `json:"netIncome"`
}

// CashFlowLine is one adjustment or activity line of the cash flow statement.
type CashFlowLine struct {
	Group   string          `json:"group"`
	Balance decimal.Decimal `json:"balance"`
}

// CashFlowStatement is organized by activity category.
type CashFlowStatement struct {
	Operating         []CashFlowLine                       `json:"operating"`
	Financing         []CashFlowLine                       `json:"financing"`
	Investing         []CashFlowLine                       `json:"investing"`
	NetCashByActivity map[ActivityCategory]decimal.Decimal `json:"netCashByActivity"`
	NetCash           decimal.Decimal                      `json:"netCash"`
	NetIncome         decimal.Decimal                      `json:"netIncome"`
}
