package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DigestQuery selects, filters and post-processes a digest. The zero value digests
// posted, non-zero balances over all time with closing entries enabled.
type DigestQuery struct {
	From *time.Time `json:"from,omitempty"` // inclusive date
	To   *time.Time `json:"to,omitempty"`   // inclusive date

	IncludeUnposted     bool `json:"includeUnposted,omitempty"`
	IncludeZeroBalances bool `json:"includeZeroBalances,omitempty"`
	RawSigns            bool `json:"rawSigns,omitempty"` // skip statement sign conventions
	SkipClosingEntries  bool `json:"skipClosingEntries,omitempty"`
	EquityOnly          bool `json:"equityOnly,omitempty"`

	ByActivity bool `json:"byActivity,omitempty"`
	ByTxType   bool `json:"byTxType,omitempty"`
	ByPeriod   bool `json:"byPeriod,omitempty"`
	ByUnit     bool `json:"byUnit,omitempty"`

	Accounts   []string   `json:"accounts,omitempty"` // account codes
	Activities []Activity `json:"activities,omitempty"`
	Roles      []Role     `json:"roles,omitempty"`
	Cleared    *bool      `json:"cleared,omitempty"`
	Reconciled *bool      `json:"reconciled,omitempty"`

	ProcessRoles    bool `json:"processRoles,omitempty"`
	ProcessGroups   bool `json:"processGroups,omitempty"`
	ProcessRatios   bool `json:"processRatios,omitempty"`
	ProcessActivity bool `json:"processActivity,omitempty"`

	BalanceSheet      bool `json:"balanceSheet,omitempty"`
	IncomeStatement   bool `json:"incomeStatement,omitempty"`
	CashFlowStatement bool `json:"cashFlowStatement,omitempty"`

	matchesNothing bool
}

// MatchesNothing reports whether Normalize found the filters disjoint, in which case
// the digest has no rows.
func (q DigestQuery) MatchesNothing() bool {
	return q.matchesNothing
}

// Normalize validates filters and dates and applies the flag implications of the
// statement options. It returns a copy; q is left untouched.
func (q DigestQuery) Normalize() (DigestQuery, error) {
	var err error
	if q.Activities, err = ValidateActivities(q.Activities); err != nil {
		return q, err
	}
	if q.Roles, err = ValidateRoles(q.Roles); err != nil {
		return q, err
	}
	if q.EquityOnly {
		earnings := MustRoleGroup(GroupEarnings)
		if len(q.Roles) == 0 {
			q.Roles = append([]Role(nil), earnings.Roles...)
		} else {
			kept := q.Roles[:0:0]
			for _, r := range q.Roles {
				if earnings.Contains(r) {
					kept = append(kept, r)
				}
			}
			q.Roles = kept
			q.matchesNothing = len(kept) == 0
		}
	}

	if q.From != nil {
		d := DateOf(*q.From)
		q.From = &d
	}
	if q.To != nil {
		d := DateOf(*q.To)
		q.To = &d
	}

	if q.BalanceSheet {
		q.From = nil
		q.ProcessGroups = true
	}
	if q.IncomeStatement {
		if q.From == nil || q.To == nil {
			return q, fmt.Errorf("%w: income statement requires from and to dates", ErrInvalidDateRange)
		}
		q.ProcessGroups = true
	}
	if q.CashFlowStatement {
		q.ProcessGroups = true
		q.ProcessActivity = true
	}
	if q.ProcessActivity {
		q.ByActivity = true
	}
	if q.ProcessRatios {
		q.ProcessGroups = true
	}

	if q.From != nil && q.To != nil && q.From.After(*q.To) {
		return q, fmt.Errorf("%w: from %s is after to %s", ErrInvalidDateRange,
			q.From.Format(time.DateOnly), q.To.Format(time.DateOnly))
	}
	return q, nil
}

// CheckpointsUsable reports whether closing entries can replace transaction aggregation
// for this query in the given scope. Closing entries are entity wide cumulative sums of
// posted entries without period or reconciliation detail.
func (q DigestQuery) CheckpointsUsable(scope Scope) bool {
	if q.SkipClosingEntries || q.ByPeriod || q.IncludeUnposted {
		return false
	}
	if q.Cleared != nil || q.Reconciled != nil {
		return false
	}
	_, ledger := scope.(LedgerScope)
	return !ledger
}

// AggregateQuery is the storage level (phase one) aggregation request. Date bounds
// compare against the UTC date of the journal entry timestamp and are inclusive.
type AggregateQuery struct {
	Scope      ScopeFilter
	From       *time.Time
	To         *time.Time
	PostedOnly bool
	AccountIDs []string
	Activities []Activity
	Roles      []Role
	Cleared    *bool
	Reconciled *bool
	ByUnit     bool
	ByPeriod   bool
	ByActivity bool
}

// AggregateRow is a raw phase one sum. TxType is always populated; the other key
// fields are empty unless the matching breakdown was requested.
type AggregateRow struct {
	AccountID string          `json:"accountID"`
	UnitID    string          `json:"unitID,omitempty"`
	Year      int             `json:"year,omitempty"`
	Month     int             `json:"month,omitempty"`
	Activity  Activity        `json:"activity,omitempty"`
	TxType    TransactionType `json:"txType"`
	Balance   decimal.Decimal `json:"balance"`
}

// DigestRow is a normalized (phase two) account balance.
type DigestRow struct {
	AccountID   string          `json:"accountID"`
	ChartSlug   string          `json:"chartSlug"`
	UnitID      string          `json:"unitID,omitempty"`
	Year        int             `json:"periodYear,omitempty"`
	Month       int             `json:"periodMonth,omitempty"`
	Activity    Activity        `json:"activity,omitempty"`
	Role        Role            `json:"role"`
	RoleBS      RoleBS          `json:"roleBS"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	BalanceType TransactionType `json:"balanceType"`
	TxType      TransactionType `json:"txType,omitempty"`
	Balance     decimal.Decimal `json:"balance"`
	BalanceAbs  decimal.Decimal `json:"balanceAbs"`
}

// BreakdownKey identifies a unit and/or period bucket. The zero key is the total.
type BreakdownKey struct {
	UnitID string `json:"unitID,omitempty"`
	Year   int    `json:"year,omitempty"`
	Month  int    `json:"month,omitempty"`
}

// Less orders keys by unit then period.
func (k BreakdownKey) Less(o BreakdownKey) bool {
	if k.UnitID != o.UnitID {
		return k.UnitID < o.UnitID
	}
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	return k.Month < o.Month
}

// CheckpointState names the closing entry strategy picked for a digest.
type CheckpointState string

const (
	// CheckpointDirect aggregates the whole window from transactions.
	CheckpointDirect CheckpointState = "direct"
	// CheckpointExactTo uses the closing entry dated exactly on the window end.
	CheckpointExactTo CheckpointState = "exact_to"
	// CheckpointCarryForward adds transactions after the latest earlier closing entry.
	CheckpointCarryForward CheckpointState = "carry_forward"
	// CheckpointBounded subtracts the closing entry before the window from the one at its end.
	CheckpointBounded CheckpointState = "bounded"
)

// CheckpointPlan is the outcome of checkpoint selection. AddDate and SubtractDate name
// the closing entries whose lines are added or negated; AggregateFrom and AggregateTo
// bound the transaction aggregation when Aggregate is set.
type CheckpointPlan struct {
	State         CheckpointState
	AddDate       *time.Time
	SubtractDate  *time.Time
	Aggregate     bool
	AggregateFrom *time.Time
	AggregateTo   *time.Time
}

// DigestResult holds the rows and whichever stage outputs were requested.
type DigestResult struct {
	EntityID   string          `json:"entityID"`
	Scope      string          `json:"scope"`
	From       *time.Time      `json:"from,omitempty"`
	To         *time.Time      `json:"to,omitempty"`
	Checkpoint CheckpointState `json:"checkpoint"`
	Rows       []DigestRow     `json:"accounts"`

	Roles      *RoleBreakdown     `json:"roles,omitempty"`
	Groups     *GroupBreakdown    `json:"groups,omitempty"`
	Activities *ActivityBreakdown `json:"activities,omitempty"`
	Ratios     *Ratios            `json:"ratios,omitempty"`

	BalanceSheet    *BalanceSheet      `json:"balanceSheet,omitempty"`
	IncomeStatement *IncomeStatement   `json:"incomeStatement,omitempty"`
	CashFlow        *CashFlowStatement `json:"cashFlowStatement,omitempty"`
}

// Balances returns total debits and credits of the rows by tx type. Rows only carry a
// tx type when the digest was run with ByTxType.
func (r DigestResult) Balances() (debits, credits decimal.Decimal) {
	for _, row := range r.Rows {
		switch row.TxType {
		case Debit:
			debits = debits.Add(row.BalanceAbs)
		case Credit:
			credits = credits.Add(row.BalanceAbs)
		}
	}
	return debits, credits
}

// Row returns the first row for the account code.
func (r DigestResult) Row(code string) (DigestRow, bool) {
	for _, row := range r.Rows {
		if row.Code == code {
			return row, true
		}
	}
	return DigestRow{}, false
}
