package digest

import (
	"sort"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

const ratioPlaces = 4

func keyOf(r domain.DigestRow) domain.BreakdownKey {
	return domain.BreakdownKey{UnitID: r.UnitID, Year: r.Year, Month: r.Month}
}

func sum(rows []domain.DigestRow) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Balance)
	}
	return total
}

// bucketize sums rows per breakdown key for every label produced by labelsOf.
func bucketize[L comparable](rows []domain.DigestRow, labelsOf func(domain.DigestRow) []L) (map[domain.BreakdownKey]map[L]decimal.Decimal, []domain.BreakdownKey) {
	buckets := make(map[domain.BreakdownKey]map[L]decimal.Decimal)
	var keys []domain.BreakdownKey
	for _, r := range rows {
		k := keyOf(r)
		b, ok := buckets[k]
		if !ok {
			b = make(map[L]decimal.Decimal)
			buckets[k] = b
			keys = append(keys, k)
		}
		for _, l := range labelsOf(r) {
			b[l] = b[l].Add(r.Balance)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return buckets, keys
}

// ClassifyRoles sums rows per role in role directory order. When bucketed, per unit and
// period balances are also produced.
func ClassifyRoles(rows []domain.DigestRow, bucketed bool) *domain.RoleBreakdown {
	byRole := make(map[domain.Role][]domain.DigestRow)
	for _, r := range rows {
		byRole[r.Role] = append(byRole[r.Role], r)
	}

	out := &domain.RoleBreakdown{}
	for _, cat := range roleCategories {
		for _, role := range domain.RolesDirectory[cat] {
			accs := byRole[role]
			out.Roles = append(out.Roles, domain.RoleBalance{
				Role:     role,
				RoleBS:   role.Section(),
				Name:     role.VerboseName(),
				Accounts: accs,
				Balance:  sum(accs),
			})
		}
	}

	if bucketed {
		buckets, keys := bucketize(rows, func(r domain.DigestRow) []domain.Role { return []domain.Role{r.Role} })
		for _, k := range keys {
			out.Buckets = append(out.Buckets, domain.RoleBucket{Key: k, Balances: buckets[k]})
		}
	}
	return out
}

var roleCategories = []domain.RoleCategory{
	domain.CategoryAsset,
	domain.CategoryLiability,
	domain.CategoryEquity,
	domain.CategoryIncome,
	domain.CategoryCOGS,
	domain.CategoryExpense,
}

// ClassifyGroups sums rows per role group, one entry per domain.RoleGroups element.
func ClassifyGroups(rows []domain.DigestRow, bucketed bool) *domain.GroupBreakdown {
	groups := make([]domain.GroupBalance, 0, len(domain.RoleGroups))
	for _, g := range domain.RoleGroups {
		var accs []domain.DigestRow
		for _, r := range rows {
			if g.Contains(r.Role) {
				accs = append(accs, r)
			}
		}
		groups = append(groups, domain.GroupBalance{Group: g.Name, Accounts: accs, Balance: sum(accs)})
	}

	var buckets []domain.GroupBucket
	if bucketed {
		byKey, keys := bucketize(rows, func(r domain.DigestRow) []string {
			var names []string
			for _, g := range domain.RoleGroups {
				if g.Contains(r.Role) {
					names = append(names, g.Name)
				}
			}
			return names
		})
		for _, k := range keys {
			buckets = append(buckets, domain.GroupBucket{Key: k, Balances: byKey[k]})
		}
	}
	return domain.NewGroupBreakdown(groups, buckets)
}

// ClassifyActivities sums rows per journal entry activity. Rows must have been produced
// with ByActivity; rows without an activity are not part of any entry.
func ClassifyActivities(rows []domain.DigestRow, bucketed bool) *domain.ActivityBreakdown {
	out := &domain.ActivityBreakdown{}
	for _, act := range domain.ValidActivities {
		var accs []domain.DigestRow
		for _, r := range rows {
			if r.Activity == act {
				accs = append(accs, r)
			}
		}
		out.Activities = append(out.Activities, domain.ActivityBalance{
			Activity: act,
			Name:     act.VerboseName(),
			Category: act.Category(),
			Accounts: accs,
			Balance:  sum(accs),
		})
	}
	if bucketed {
		tagged := make([]domain.DigestRow, 0, len(rows))
		for _, r := range rows {
			if r.Activity != domain.ActivityNone {
				tagged = append(tagged, r)
			}
		}
		byKey, keys := bucketize(tagged, func(r domain.DigestRow) []domain.Activity { return []domain.Activity{r.Activity} })
		for _, k := range keys {
			out.Buckets = append(out.Buckets, domain.ActivityBucket{Key: k, Balances: byKey[k]})
		}
	}
	return out
}

func ratio(num, den decimal.Decimal) decimal.NullDecimal {
	if den.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(num.DivRound(den, ratioPlaces))
}

// ComputeRatios derives the standard ratios from group totals.
func ComputeRatios(groups *domain.GroupBreakdown) *domain.Ratios {
	var (
		quickAssets        = groups.Balance(domain.GroupQuickAssets)
		assets             = groups.Balance(domain.GroupAssets)
		currentAssets      = groups.Balance(domain.GroupCurrentAssets)
		currentLiabilities = groups.Balance(domain.GroupCurrentLiabilities)
		liabilities        = groups.Balance(domain.GroupLiabilities)
		equity             = groups.Balance(domain.GroupCapital)
		netIncome          = groups.Balance(domain.GroupEarnings)
		netSales           = groups.Balance(domain.GroupNetSales)
		netProfit          = groups.Balance(domain.GroupNetProfit)
		grossProfit        = groups.Balance(domain.GroupGrossProfit)
	)
	return &domain.Ratios{
		QuickRatio:        ratio(quickAssets, currentLiabilities),
		CurrentRatio:      ratio(currentAssets, currentLiabilities),
		DebtToEquity:      ratio(liabilities, equity),
		ReturnOnEquity:    ratio(netIncome, equity),
		ReturnOnAssets:    ratio(netIncome, assets),
		NetProfitMargin:   ratio(netProfit, netSales),
		GrossProfitMargin: ratio(grossProfit, netSales),
	}
}

// BuildBalanceSheet groups asset, liability and capital rows by section and role.
func BuildBalanceSheet(groups *domain.GroupBreakdown) *domain.BalanceSheet {
	bs := &domain.BalanceSheet{
		EquityBalance:            groups.Balance(domain.GroupEquity),
		RetainedEarningsBalance:  groups.Balance(domain.GroupEarnings),
		LiabilitiesEquityBalance: groups.Balance(domain.GroupLiabilitiesEquity),
	}
	sections := []struct {
		section domain.RoleBS
		group   string
	}{
		{domain.BSAssets, domain.GroupAssets},
		{domain.BSLiabilities, domain.GroupLiabilities},
		{domain.BSEquity, domain.GroupCapital},
	}
	for _, s := range sections {
		accs := groups.Accounts(s.group)
		sec := domain.BalanceSheetSection{Section: s.section, Balance: sum(accs)}
		roles := ClassifyRoles(accs, false)
		for _, rb := range roles.Roles {
			if len(rb.Accounts) > 0 {
				sec.Roles = append(sec.Roles, rb)
			}
		}
		bs.Sections = append(bs.Sections, sec)
	}
	return bs
}

func filterRoles(rows []domain.DigestRow, group string) []domain.DigestRow {
	g := domain.MustRoleGroup(group)
	var out []domain.DigestRow
	for _, r := range rows {
		if g.Contains(r.Role) {
			out = append(out, r)
		}
	}
	return out
}

// BuildIncomeStatement splits earnings rows into operating and other blocks.
func BuildIncomeStatement(groups *domain.GroupBreakdown) *domain.IncomeStatement {
	income := groups.Accounts(domain.GroupIncome)
	cogs := groups.Accounts(domain.GroupCOGS)
	expenses := groups.Accounts(domain.GroupExpenses)

	op := domain.IncomeStatementOperating{
		Revenues: filterRoles(income, domain.GroupICOperatingRevenues),
		COGS:     filterRoles(cogs, domain.GroupICOperatingCOGS),
		Expenses: filterRoles(expenses, domain.GroupICOperatingExpenses),
	}
	op.NetOperatingRevenue = sum(op.Revenues)
	op.NetCOGS = sum(op.COGS)
	op.NetOperatingExpenses = sum(op.Expenses)
	op.GrossProfit = op.NetOperatingRevenue.Add(op.NetCOGS)
	op.NetOperatingIncome = op.GrossProfit.Add(op.NetOperatingExpenses)

	other := domain.IncomeStatementOther{
		Revenues: filterRoles(income, domain.GroupICOtherRevenues),
		Expenses: filterRoles(expenses, domain.GroupICOtherExpenses),
	}
	other.NetOtherRevenues = sum(other.Revenues)
	other.NetOtherExpenses = sum(other.Expenses)
	other.NetOtherIncome = other.NetOtherRevenues.Add(other.NetOtherExpenses)

	return &domain.IncomeStatement{
		Operating: op,
		Other:     other,
		NetIncome: op.NetOperatingIncome.Add(other.NetOtherIncome),
	}
}

// BuildCashFlow assembles the cash flow statement. Operating cash is derived from net
// income and working capital changes; financing and investing cash are the cash account
// rows tagged with the matching activity, so rows must carry activities.
func BuildCashFlow(rows []domain.DigestRow, groups *domain.GroupBreakdown) *domain.CashFlowStatement {
	cashBy := func(act domain.Activity) decimal.Decimal {
		total := decimal.Zero
		for _, r := range rows {
			if r.Role == domain.RoleAssetCash && r.Activity == act {
				total = total.Add(r.Balance)
			}
		}
		return total
	}
	line := func(group string, bal decimal.Decimal) domain.CashFlowLine {
		return domain.CashFlowLine{Group: group, Balance: bal}
	}
	g := groups.Balance

	cfs := &domain.CashFlowStatement{
		Operating: []domain.CashFlowLine{
			line(domain.GroupCFSNetIncome, g(domain.GroupCFSNetIncome)),
			line(domain.GroupCFSOpDepreciationAmort, g(domain.GroupCFSOpDepreciationAmort).Neg()),
			line(domain.GroupCFSOpInvestmentGains, g(domain.GroupCFSOpInvestmentGains)),
			line(domain.GroupCFSOpAccountsReceivable, g(domain.GroupCFSOpAccountsReceivable).Neg()),
			line(domain.GroupCFSOpInventory, g(domain.GroupCFSOpInventory).Neg()),
			line(domain.GroupCFSOpAccountsPayable, g(domain.GroupCFSOpAccountsPayable)),
			line(domain.GroupCFSOpOtherCurrentAssets, g(domain.GroupCFSOpOtherCurrentAssets).Neg()),
			line(domain.GroupCFSOpOtherCurrentLiability, g(domain.GroupCFSOpOtherCurrentLiability)),
		},
		Financing: []domain.CashFlowLine{
			line(domain.GroupCFSFinIssuingEquity, cashBy(domain.ActivityFinancingEquity)),
			line(domain.GroupCFSFinDividends, cashBy(domain.ActivityFinancingDividends)),
			line(domain.GroupCFSFinSTDebtPayments, cashBy(domain.ActivityFinancingSTD)),
			line(domain.GroupCFSFinLTDebtPayments, cashBy(domain.ActivityFinancingLTD)),
		},
		Investing: []domain.CashFlowLine{
			line(domain.GroupCFSInvestingSecurities, cashBy(domain.ActivityInvestingSecurities)),
			line(domain.GroupCFSInvestingPPE, cashBy(domain.ActivityInvestingPPE)),
		},
		NetIncome: g(domain.GroupCFSNetIncome),
	}

	total := func(lines []domain.CashFlowLine) decimal.Decimal {
		t := decimal.Zero
		for _, l := range lines {
			t = t.Add(l.Balance)
		}
		return t
	}
	cfs.NetCashByActivity = map[domain.ActivityCategory]decimal.Decimal{
		domain.CategoryOperating: total(cfs.Operating),
		domain.CategoryFinancing: total(cfs.Financing),
		domain.CategoryInvesting: total(cfs.Investing),
	}
	cfs.NetCash = cfs.NetCashByActivity[domain.CategoryOperating].
		Add(cfs.NetCashByActivity[domain.CategoryFinancing]).
		Add(cfs.NetCashByActivity[domain.CategoryInvesting])
	return cfs
}

// Apply runs the stages requested by a normalized query over the rows and fills the
// result. Statement stages take the group breakdown as input.
func Apply(q domain.DigestQuery, res *domain.DigestResult) {
	bucketed := q.ByUnit || q.ByPeriod
	if q.ProcessRoles {
		res.Roles = ClassifyRoles(res.Rows, bucketed)
	}
	if q.ProcessActivity {
		res.Activities = ClassifyActivities(res.Rows, bucketed)
	}
	if !q.ProcessGroups {
		return
	}
	groups := ClassifyGroups(res.Rows, bucketed)
	res.Groups = groups
	if q.ProcessRatios {
		res.Ratios = ComputeRatios(groups)
	}
	if q.BalanceSheet {
		res.BalanceSheet = BuildBalanceSheet(groups)
	}
	if q.IncomeStatement {
		res.IncomeStatement = BuildIncomeStatement(groups)
	}
	if q.CashFlowStatement {
		res.CashFlow = BuildCashFlow(res.Rows, groups)
	}
}
