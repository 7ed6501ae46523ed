package domain

import (
	"fmt"
	"slices"
)

// Role tags an account with the statement section it reports into.
type Role string

// Asset roles.
const (
	RoleAssetCash                  Role = "asset_ca_cash"
	RoleAssetMktSecurities         Role = "asset_ca_mkt_sec"
	RoleAssetReceivables           Role = "asset_ca_recv"
	RoleAssetInventory             Role = "asset_ca_inv"
	RoleAssetUncollectibles        Role = "asset_ca_uncoll"
	RoleAssetPrepaid               Role = "asset_ca_prepaid"
	RoleAssetOther                 Role = "asset_ca_other"
	RoleAssetNotesReceivable       Role = "asset_lti_notes"
	RoleAssetLand                  Role = "asset_lti_land"
	RoleAssetSecurities            Role = "asset_lti_sec"
	RoleAssetBuildings             Role = "asset_ppe_build"
	RoleAssetBuildingsAccumDepr    Role = "asset_ppe_build_accum_depr"
	RoleAssetEquipment             Role = "asset_ppe_equip"
	RoleAssetEquipmentAccumDepr    Role = "asset_ppe_equip_accum_depr"
	RoleAssetPlant                 Role = "asset_ppe_plant"
	RoleAssetPlantAccumDepr        Role = "asset_ppe_plant_depr"
	RoleAssetIntangibles           Role = "asset_ia"
	RoleAssetIntangiblesAccumAmort Role = "asset_ia_accum_amort"
	RoleAssetAdjustments           Role = "asset_adjustment"
)

// Liability roles.
const (
	RoleLiabilityAccountsPayable Role = "lia_cl_acc_payable"
	RoleLiabilityWagesPayable    Role = "lia_cl_wages_payable"
	RoleLiabilityTaxesPayable    Role = "lia_cl_taxes_payable"
	RoleLiabilityInterestPayable Role = "lia_cl_int_payable"
	RoleLiabilitySTNotesPayable  Role = "lia_cl_st_notes_payable"
	RoleLiabilityLTDMaturities   Role = "lia_cl_ltd_mat"
	RoleLiabilityDeferredRevenue Role = "lia_cl_def_rev"
	RoleLiabilityCurrentOther    Role = "lia_cl_other"
	RoleLiabilityLTNotesPayable  Role = "lia_ltl_notes"
	RoleLiabilityBondsPayable    Role = "lia_ltl_bonds"
	RoleLiabilityMortgagePayable Role = "lia_ltl_mortgage"
)

// Equity, income, cost of goods sold and expense roles.
const (
	RoleEquityCapital        Role = "eq_capital"
	RoleEquityAdjustment     Role = "eq_adjustment"
	RoleEquityCommonStock    Role = "eq_stock_common"
	RoleEquityPreferredStock Role = "eq_stock_preferred"
	RoleEquityDividends      Role = "eq_dividends"

	RoleIncomeOperational Role = "in_operational"
	RoleIncomePassive     Role = "in_passive"
	RoleIncomeGainLoss    Role = "in_gain_loss"
	RoleIncomeInterest    Role = "in_interest"
	RoleIncomeOther       Role = "in_other"

	RoleCOGS Role = "cogs_regular"

	RoleExpenseOperational  Role = "ex_regular"
	RoleExpenseCapital      Role = "ex_capital"
	RoleExpenseDepreciation Role = "ex_depreciation"
	RoleExpenseAmortization Role = "ex_amortization"
	RoleExpenseTaxes        Role = "ex_taxes"
	RoleExpenseInterest     Role = "ex_interest"
	RoleExpenseOther        Role = "ex_other"
)

// Root roles anchor the chart of accounts tree.
const (
	RoleRootCOA         Role = "root_coa"
	RoleRootAssets      Role = "root_assets"
	RoleRootLiabilities Role = "root_liabilities"
	RoleRootCapital     Role = "root_capital"
	RoleRootIncome      Role = "root_income"
	RoleRootCOGS        Role = "root_cogs"
	RoleRootExpenses    Role = "root_expenses"
)

// RoleBS is the balance sheet section a role reports into.
type RoleBS string

const (
	BSAssets      RoleBS = "assets"
	BSLiabilities RoleBS = "liabilities"
	BSEquity      RoleBS = "equity"
	BSRoot        RoleBS = "root"
)

type roleInfo struct {
	role    Role
	section RoleBS
	verbose string
}

// roleTable follows presentation order inside each section.
var roleTable = []roleInfo{
	{RoleAssetCash, BSAssets, "Current Asset"},
	{RoleAssetMktSecurities, BSAssets, "Marketable Securities"},
	{RoleAssetReceivables, BSAssets, "Receivables"},
	{RoleAssetInventory, BSAssets, "Inventory"},
	{RoleAssetUncollectibles, BSAssets, "Uncollectibles"},
	{RoleAssetPrepaid, BSAssets, "Prepaid"},
	{RoleAssetOther, BSAssets, "Other Liquid Assets"},
	{RoleAssetNotesReceivable, BSAssets, "Notes Receivable"},
	{RoleAssetLand, BSAssets, "Land"},
	{RoleAssetSecurities, BSAssets, "Securities"},
	{RoleAssetBuildings, BSAssets, "Buildings"},
	{RoleAssetBuildingsAccumDepr, BSAssets, "Buildings - Accum. Depreciation"},
	{RoleAssetPlant, BSAssets, "Plant"},
	{RoleAssetPlantAccumDepr, BSAssets, "Plant - Accum. Depreciation"},
	{RoleAssetEquipment, BSAssets, "Equipment"},
	{RoleAssetEquipmentAccumDepr, BSAssets, "Equipment - Accum. Depreciation"},
	{RoleAssetIntangibles, BSAssets, "Intangible Assets"},
	{RoleAssetIntangiblesAccumAmort, BSAssets, "Intangible Assets - Accum. Amortization"},
	{RoleAssetAdjustments, BSAssets, "Other Assets"},

	{RoleLiabilityAccountsPayable, BSLiabilities, "Accounts Payable"},
	{RoleLiabilityWagesPayable, BSLiabilities, "Wages Payable"},
	{RoleLiabilityInterestPayable, BSLiabilities, "Interest Payable"},
	{RoleLiabilityTaxesPayable, BSLiabilities, "Taxes Payable"},
	{RoleLiabilitySTNotesPayable, BSLiabilities, "Short Term Notes Payable"},
	{RoleLiabilityLTDMaturities, BSLiabilities, "Current Maturities of Long Term Debt"},
	{RoleLiabilityDeferredRevenue, BSLiabilities, "Deferred Revenue"},
	{RoleLiabilityCurrentOther, BSLiabilities, "Other Liabilities"},
	{RoleLiabilityLTNotesPayable, BSLiabilities, "Long Term Notes Payable"},
	{RoleLiabilityBondsPayable, BSLiabilities, "Bonds Payable"},
	{RoleLiabilityMortgagePayable, BSLiabilities, "Mortgage Payable"},

	{RoleEquityCapital, BSEquity, "Capital"},
	{RoleEquityCommonStock, BSEquity, "Common Stock"},
	{RoleEquityPreferredStock, BSEquity, "Preferred Stock"},
	{RoleEquityAdjustment, BSEquity, "Other Equity Adjustments"},
	{RoleEquityDividends, BSEquity, "Dividends & Distributions to Shareholders"},
	{RoleIncomeOperational, BSEquity, "Operational Income"},
	{RoleIncomePassive, BSEquity, "Investing/Passive Income"},
	{RoleIncomeInterest, BSEquity, "Interest Income"},
	{RoleIncomeGainLoss, BSEquity, "Capital Gain/Loss Income"},
	{RoleIncomeOther, BSEquity, "Other Income"},
	{RoleCOGS, BSEquity, "Cost of Goods Sold"},
	{RoleExpenseOperational, BSEquity, "Regular Expense"},
	{RoleExpenseInterest, BSEquity, "Interest Expense"},
	{RoleExpenseTaxes, BSEquity, "Tax Expense"},
	{RoleExpenseCapital, BSEquity, "Capital Expense"},
	{RoleExpenseDepreciation, BSEquity, "Depreciation Expense"},
	{RoleExpenseAmortization, BSEquity, "Amortization Expense"},
	{RoleExpenseOther, BSEquity, "Other Expense"},

	{RoleRootCOA, BSRoot, "CoA Root Account"},
	{RoleRootAssets, BSRoot, "Assets Root Account"},
	{RoleRootLiabilities, BSRoot, "Liabilities Root Account"},
	{RoleRootCapital, BSRoot, "Capital Root Account"},
	{RoleRootIncome, BSRoot, "Income Root Account"},
	{RoleRootCOGS, BSRoot, "COGS Root Account"},
	{RoleRootExpenses, BSRoot, "Expenses Root Account"},
}

var (
	roleIndex = func() map[Role]int {
		idx := make(map[Role]int, len(roleTable))
		for i, r := range roleTable {
			idx[r.role] = i
		}
		return idx
	}()

	// RolesOrderAssets, RolesOrderLiabilities and RolesOrderCapital give the presentation order
	// used to sort accounts inside balance sheet sections.
	RolesOrderAssets      = rolesInSection(BSAssets)
	RolesOrderLiabilities = rolesInSection(BSLiabilities)
	RolesOrderCapital     = rolesInSection(BSEquity)
)

func rolesInSection(section RoleBS) []Role {
	var roles []Role
	for _, r := range roleTable {
		if r.section == section {
			roles = append(roles, r.role)
		}
	}
	return roles
}

// IsValid reports whether the role is known, root roles included.
func (r Role) IsValid() bool {
	_, ok := roleIndex[r]
	return ok
}

// IsRoot reports whether the role anchors a chart of accounts subtree.
func (r Role) IsRoot() bool {
	return r.Section() == BSRoot
}

// Section returns the balance sheet section of the role, or "" for unknown roles.
func (r Role) Section() RoleBS {
	i, ok := roleIndex[r]
	if !ok {
		return ""
	}
	return roleTable[i].section
}

// VerboseName returns the human readable role name.
func (r Role) VerboseName() string {
	i, ok := roleIndex[r]
	if !ok {
		return string(r)
	}
	return roleTable[i].verbose
}

// Order returns the position of the role in presentation order; unknown roles sort last.
func (r Role) Order() int {
	i, ok := roleIndex[r]
	if !ok {
		return len(roleTable)
	}
	return i
}

// ValidateRoles returns the de-duplicated role list, failing on the first unknown role.
func ValidateRoles(roles []Role) ([]Role, error) {
	seen := make(map[Role]struct{}, len(roles))
	out := make([]Role, 0, len(roles))
	for _, r := range roles {
		if !r.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRole, r)
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out, nil
}

// RoleCategory is a coarse classification used by the role directory.
type RoleCategory string

const (
	CategoryAsset     RoleCategory = "ASSET"
	CategoryLiability RoleCategory = "LIABILITY"
	CategoryEquity    RoleCategory = "EQUITY"
	CategoryIncome    RoleCategory = "INCOME"
	CategoryCOGS      RoleCategory = "COGS"
	CategoryExpense   RoleCategory = "EXPENSE"
)

// RoleGroup is a named list of roles that is summed as a unit in statements and ratios.
type RoleGroup struct {
	Name  string
	Roles []Role
}

// Contains reports whether the role belongs to the group.
func (g RoleGroup) Contains(r Role) bool {
	return slices.Contains(g.Roles, r)
}

func concatRoles(lists ...[]Role) []Role {
	var out []Role
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// Group names.
const (
	GroupQuickAssets        = "GROUP_QUICK_ASSETS"
	GroupCurrentAssets      = "GROUP_CURRENT_ASSETS"
	GroupNonCurrentAssets   = "GROUP_NON_CURRENT_ASSETS"
	GroupAssets             = "GROUP_ASSETS"
	GroupCurrentLiabilities = "GROUP_CURRENT_LIABILITIES"
	GroupLTLiabilities      = "GROUP_LT_LIABILITIES"
	GroupLiabilities        = "GROUP_LIABILITIES"
	GroupCapital            = "GROUP_CAPITAL"
	GroupIncome             = "GROUP_INCOME"
	GroupCOGS               = "GROUP_COGS"
	GroupExpenses           = "GROUP_EXPENSES"
	GroupNetProfit          = "GROUP_NET_PROFIT"
	GroupGrossProfit        = "GROUP_GROSS_PROFIT"
	GroupNetSales           = "GROUP_NET_SALES"
	GroupPPEAccumDepr       = "GROUP_PPE_ACCUM_DEPRECIATION"
	GroupExpenseDepAndAmt   = "GROUP_EXPENSE_DEP_AND_AMT"
	GroupEarnings           = "GROUP_EARNINGS"
	GroupEquity             = "GROUP_EQUITY"
	GroupLiabilitiesEquity  = "GROUP_LIABILITIES_EQUITY"
	GroupInvoice            = "GROUP_INVOICE"
	GroupBill               = "GROUP_BILL"

	GroupICOperatingRevenues = "GROUP_IC_OPERATING_REVENUES"
	GroupICOperatingCOGS     = "GROUP_IC_OPERATING_COGS"
	GroupICOperatingExpenses = "GROUP_IC_OPERATING_EXPENSES"
	GroupICOtherRevenues     = "GROUP_IC_OTHER_REVENUES"
	GroupICOtherExpenses     = "GROUP_IC_OTHER_EXPENSES"

	GroupCFSNetIncome               = "GROUP_CFS_NET_INCOME"
	GroupCFSOpDepreciationAmort     = "GROUP_CFS_OP_DEPRECIATION_AMORTIZATION"
	GroupCFSOpInvestmentGains       = "GROUP_CFS_OP_INVESTMENT_GAINS"
	GroupCFSOpAccountsReceivable    = "GROUP_CFS_OP_ACCOUNTS_RECEIVABLE"
	GroupCFSOpInventory             = "GROUP_CFS_OP_INVENTORY"
	GroupCFSOpAccountsPayable       = "GROUP_CFS_OP_ACCOUNTS_PAYABLE"
	GroupCFSOpOtherCurrentAssets    = "GROUP_CFS_OP_OTHER_CURRENT_ASSETS_ADJUSTMENT"
	GroupCFSOpOtherCurrentLiability = "GROUP_CFS_OP_OTHER_CURRENT_LIABILITIES_ADJUSTMENT"
	GroupCFSOperating               = "GROUP_CFS_OPERATING"
	GroupCFSFinIssuingEquity        = "GROUP_CFS_FIN_ISSUING_EQUITY"
	GroupCFSFinDividends            = "GROUP_CFS_FIN_DIVIDENDS"
	GroupCFSFinSTDebtPayments       = "GROUP_CFS_FIN_ST_DEBT_PAYMENTS"
	GroupCFSFinLTDebtPayments       = "GROUP_CFS_FIN_LT_DEBT_PAYMENTS"
	GroupCFSFinancing               = "GROUP_CFS_FINANCING"
	GroupCFSInvPurchaseOfPPE        = "GROUP_CFS_INV_PURCHASE_OR_SALE_OF_PPE"
	GroupCFSInvLTDOfPPE             = "GROUP_CFS_INV_LTD_OF_PPE"
	GroupCFSInvestingPPE            = "GROUP_CFS_INVESTING_PPE"
	GroupCFSInvPurchaseOfSecurities = "GROUP_CFS_INV_PURCHASE_OF_SECURITIES"
	GroupCFSInvLTDOfSecurities      = "GROUP_CFS_INV_LTD_OF_SECURITIES"
	GroupCFSInvestingSecurities     = "GROUP_CFS_INVESTING_SECURITIES"
	GroupCFSInvesting               = "GROUP_CFS_INVESTING"
	GroupCFSInvestingAndFinancing   = "GROUP_CFS_INVESTING_AND_FINANCING"
)

var (
	rolesQuickAssets   = []Role{RoleAssetCash, RoleAssetMktSecurities}
	rolesCurrentAssets = []Role{
		RoleAssetCash, RoleAssetMktSecurities, RoleAssetInventory, RoleAssetReceivables,
		RoleAssetPrepaid, RoleAssetUncollectibles, RoleAssetOther,
	}
	rolesNonCurrentAssets = []Role{
		RoleAssetNotesReceivable, RoleAssetLand, RoleAssetSecurities,
		RoleAssetBuildings, RoleAssetBuildingsAccumDepr, RoleAssetEquipment, RoleAssetEquipmentAccumDepr,
		RoleAssetPlant, RoleAssetPlantAccumDepr, RoleAssetIntangibles, RoleAssetIntangiblesAccumAmort,
		RoleAssetAdjustments,
	}
	rolesCurrentLiabilities = []Role{
		RoleLiabilityAccountsPayable, RoleLiabilityDeferredRevenue, RoleLiabilityInterestPayable,
		RoleLiabilityLTDMaturities, RoleLiabilityCurrentOther, RoleLiabilitySTNotesPayable,
		RoleLiabilityWagesPayable, RoleLiabilityTaxesPayable,
	}
	rolesLTLiabilities = []Role{RoleLiabilityLTNotesPayable, RoleLiabilityBondsPayable, RoleLiabilityMortgagePayable}
	rolesCapital       = []Role{
		RoleEquityCapital, RoleEquityCommonStock, RoleEquityPreferredStock, RoleEquityDividends, RoleEquityAdjustment,
	}
	rolesIncome = []Role{
		RoleIncomeOperational, RoleIncomePassive, RoleIncomeInterest, RoleIncomeGainLoss, RoleIncomeOther,
	}
	rolesCOGS     = []Role{RoleCOGS}
	rolesExpenses = []Role{
		RoleExpenseOperational, RoleExpenseInterest, RoleExpenseTaxes, RoleExpenseCapital,
		RoleExpenseDepreciation, RoleExpenseAmortization, RoleExpenseOther,
	}
	rolesEarnings = concatRoles(rolesIncome, rolesCOGS, rolesExpenses)

	rolesCFSDepAmort      = []Role{RoleExpenseDepreciation, RoleExpenseAmortization}
	rolesCFSInvGains      = []Role{RoleIncomeGainLoss}
	rolesCFSAR            = []Role{RoleAssetReceivables}
	rolesCFSInventory     = []Role{RoleAssetInventory}
	rolesCFSAP            = []Role{RoleLiabilityAccountsPayable}
	rolesCFSOtherCA       = []Role{RoleAssetPrepaid, RoleAssetUncollectibles, RoleAssetOther}
	rolesCFSOtherCL       = []Role{
		RoleLiabilityWagesPayable, RoleLiabilityInterestPayable, RoleLiabilityTaxesPayable,
		RoleLiabilityLTDMaturities, RoleLiabilityDeferredRevenue, RoleLiabilityCurrentOther,
	}
	rolesCFSIssuingEquity = []Role{RoleEquityCapital, RoleEquityCommonStock, RoleEquityPreferredStock}
	rolesCFSDividends     = []Role{RoleEquityDividends}
	rolesCFSSTDebt        = []Role{RoleLiabilitySTNotesPayable}
	rolesCFSLTDebt        = []Role{RoleLiabilityLTNotesPayable, RoleLiabilityBondsPayable, RoleLiabilityMortgagePayable}
	rolesCFSFinancing     = concatRoles(rolesCFSIssuingEquity, rolesCFSDividends, rolesCFSSTDebt, rolesCFSLTDebt)
	rolesCFSPurchasePPE   = []Role{RoleAssetBuildings, RoleAssetPlant, RoleAssetEquipment}
	rolesCFSLTDOfPPE      = []Role{RoleLiabilityLTNotesPayable, RoleLiabilityMortgagePayable, RoleLiabilityBondsPayable}
	rolesCFSInvPPE        = concatRoles(rolesCFSPurchasePPE, rolesCFSLTDOfPPE)
	rolesCFSPurchaseSec   = []Role{RoleAssetMktSecurities, RoleAssetSecurities}
	rolesCFSLTDOfSec      = []Role{RoleLiabilityLTNotesPayable, RoleLiabilityBondsPayable}
	rolesCFSInvSec        = concatRoles(rolesCFSPurchaseSec, rolesCFSLTDOfSec)
	rolesCFSInvesting     = concatRoles(rolesCFSInvPPE, rolesCFSInvSec)
)

// RoleGroups lists every role group in a fixed order. The group classification stage
// produces one entry per group, in this order.
var RoleGroups = []RoleGroup{
	{GroupQuickAssets, rolesQuickAssets},
	{GroupCurrentAssets, rolesCurrentAssets},
	{GroupNonCurrentAssets, rolesNonCurrentAssets},
	{GroupAssets, concatRoles(rolesCurrentAssets, rolesNonCurrentAssets)},
	{GroupCurrentLiabilities, rolesCurrentLiabilities},
	{GroupLTLiabilities, rolesLTLiabilities},
	{GroupLiabilities, concatRoles(rolesCurrentLiabilities, rolesLTLiabilities)},
	{GroupCapital, rolesCapital},
	{GroupIncome, rolesIncome},
	{GroupCOGS, rolesCOGS},
	{GroupExpenses, rolesExpenses},
	{GroupNetProfit, concatRoles(rolesIncome, rolesCOGS)},
	{GroupGrossProfit, []Role{RoleIncomeOperational, RoleCOGS}},
	{GroupNetSales, []Role{RoleIncomeOperational, RoleIncomePassive}},
	{GroupPPEAccumDepr, []Role{RoleAssetBuildingsAccumDepr, RoleAssetEquipmentAccumDepr, RoleAssetPlantAccumDepr}},
	{GroupExpenseDepAndAmt, rolesCFSDepAmort},
	{GroupEarnings, rolesEarnings},
	{GroupEquity, concatRoles(rolesCapital, rolesEarnings)},
	{GroupLiabilitiesEquity, concatRoles(rolesCurrentLiabilities, rolesLTLiabilities, rolesCapital, rolesEarnings)},
	{GroupInvoice, []Role{RoleAssetCash, RoleAssetReceivables, RoleLiabilityDeferredRevenue}},
	{GroupBill, []Role{RoleAssetCash, RoleAssetPrepaid, RoleLiabilityAccountsPayable}},

	{GroupICOperatingRevenues, []Role{RoleIncomeOperational}},
	{GroupICOperatingCOGS, rolesCOGS},
	{GroupICOperatingExpenses, []Role{RoleExpenseOperational}},
	{GroupICOtherRevenues, []Role{RoleIncomePassive, RoleIncomeInterest, RoleIncomeGainLoss, RoleIncomeOther}},
	{GroupICOtherExpenses, []Role{
		RoleExpenseInterest, RoleExpenseTaxes, RoleExpenseCapital,
		RoleExpenseDepreciation, RoleExpenseAmortization, RoleExpenseOther,
	}},

	{GroupCFSNetIncome, rolesEarnings},
	{GroupCFSOpDepreciationAmort, rolesCFSDepAmort},
	{GroupCFSOpInvestmentGains, rolesCFSInvGains},
	{GroupCFSOpAccountsReceivable, rolesCFSAR},
	{GroupCFSOpInventory, rolesCFSInventory},
	{GroupCFSOpAccountsPayable, rolesCFSAP},
	{GroupCFSOpOtherCurrentAssets, rolesCFSOtherCA},
	{GroupCFSOpOtherCurrentLiability, rolesCFSOtherCL},
	{GroupCFSOperating, concatRoles(
		rolesEarnings, rolesCFSDepAmort, rolesCFSInvGains, rolesCFSAR,
		rolesCFSInventory, rolesCFSAP, rolesCFSOtherCA, rolesCFSOtherCL,
	)},
	{GroupCFSFinIssuingEquity, rolesCFSIssuingEquity},
	{GroupCFSFinDividends, rolesCFSDividends},
	{GroupCFSFinSTDebtPayments, rolesCFSSTDebt},
	{GroupCFSFinLTDebtPayments, rolesCFSLTDebt},
	{GroupCFSFinancing, rolesCFSFinancing},
	{GroupCFSInvPurchaseOfPPE, rolesCFSPurchasePPE},
	{GroupCFSInvLTDOfPPE, rolesCFSLTDOfPPE},
	{GroupCFSInvestingPPE, rolesCFSInvPPE},
	{GroupCFSInvPurchaseOfSecurities, rolesCFSPurchaseSec},
	{GroupCFSInvLTDOfSecurities, rolesCFSLTDOfSec},
	{GroupCFSInvestingSecurities, rolesCFSInvSec},
	{GroupCFSInvesting, rolesCFSInvesting},
	{GroupCFSInvestingAndFinancing, concatRoles(rolesCFSInvesting, rolesCFSFinancing)},
}

var roleGroupIndex = func() map[string]RoleGroup {
	idx := make(map[string]RoleGroup, len(RoleGroups))
	for _, g := range RoleGroups {
		idx[g.Name] = g
	}
	return idx
}()

// LookupRoleGroup returns the named group.
func LookupRoleGroup(name string) (RoleGroup, bool) {
	g, ok := roleGroupIndex[name]
	return g, ok
}

// MustRoleGroup returns the named group and panics if it does not exist. Only used with
// the Group* constants above.
func MustRoleGroup(name string) RoleGroup {
	g, ok := roleGroupIndex[name]
	if !ok {
		panic("unknown role group " + name)
	}
	return g
}

// RolesDirectory maps each category to its roles.
var RolesDirectory = map[RoleCategory][]Role{
	CategoryAsset:     concatRoles(rolesCurrentAssets, rolesNonCurrentAssets),
	CategoryLiability: concatRoles(rolesCurrentLiabilities, rolesLTLiabilities),
	CategoryEquity:    rolesCapital,
	CategoryIncome:    rolesIncome,
	CategoryCOGS:      rolesCOGS,
	CategoryExpense:   rolesExpenses,
}

// RootAccountMeta describes the default root node of a role category in a chart.
type RootAccountMeta struct {
	Role        Role
	Code        string
	Name        string
	BalanceType TransactionType
}

// RootAccounts lists root nodes in chart order.
var RootAccounts = []RootAccountMeta{
	{RoleRootCOA, "00000", "CoA Root Node", Debit},
	{RoleRootAssets, "01000", "Asset Accounts Root Node", Debit},
	{RoleRootLiabilities, "02000", "Liability Accounts Root Node", Credit},
	{RoleRootCapital, "03000", "Capital Accounts Root Node", Credit},
	{RoleRootIncome, "04000", "Income Accounts Root Node", Credit},
	{RoleRootCOGS, "05000", "COGS Accounts Root Node", Debit},
	{RoleRootExpenses, "06000", "Expense Accounts Root Node", Debit},
}
