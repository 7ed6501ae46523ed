package dto

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils/timeutil"
)

// DigestRequest is the body of the digest endpoints. Dates are inclusive and accept
// either a date or a date-time.
type DigestRequest struct {
	From string `json:"from"`
	To   string `json:"to"`

	IncludeUnposted     bool `json:"includeUnposted"`
	IncludeZeroBalances bool `json:"includeZeroBalances"`
	RawSigns            bool `json:"rawSigns"`
	SkipClosingEntries  bool `json:"skipClosingEntries"`
	EquityOnly          bool `json:"equityOnly"`

	ByActivity bool `json:"byActivity"`
	ByTxType   bool `json:"byTxType"`
	ByPeriod   bool `json:"byPeriod"`
	ByUnit     bool `json:"byUnit"`

	Accounts   []string `json:"accounts"`
	Activities []string `json:"activities"`
	Roles      []string `json:"roles"`
	Cleared    *bool    `json:"cleared"`
	Reconciled *bool    `json:"reconciled"`

	ProcessRoles    bool `json:"processRoles"`
	ProcessGroups   bool `json:"processGroups"`
	ProcessRatios   bool `json:"processRatios"`
	ProcessActivity bool `json:"processActivity"`

	BalanceSheet      bool `json:"balanceSheet"`
	IncomeStatement   bool `json:"incomeStatement"`
	CashFlowStatement bool `json:"cashFlowStatement"`
}

// ToQuery converts the request into a domain.DigestQuery. Filters are validated later
// by the digest service.
func (r DigestRequest) ToQuery() (domain.DigestQuery, error) {
	from, err := timeutil.ParseOptionalDate(r.From)
	if err != nil {
		return domain.DigestQuery{}, err
	}
	to, err := timeutil.ParseOptionalDate(r.To)
	if err != nil {
		return domain.DigestQuery{}, err
	}
	q := domain.DigestQuery{
		From:                from,
		To:                  to,
		IncludeUnposted:     r.IncludeUnposted,
		IncludeZeroBalances: r.IncludeZeroBalances,
		RawSigns:            r.RawSigns,
		SkipClosingEntries:  r.SkipClosingEntries,
		EquityOnly:          r.EquityOnly,
		ByActivity:          r.ByActivity,
		ByTxType:            r.ByTxType,
		ByPeriod:            r.ByPeriod,
		ByUnit:              r.ByUnit,
		Accounts:            r.Accounts,
		Cleared:             r.Cleared,
		Reconciled:          r.Reconciled,
		ProcessRoles:        r.ProcessRoles,
		ProcessGroups:       r.ProcessGroups,
		ProcessRatios:       r.ProcessRatios,
		ProcessActivity:     r.ProcessActivity,
		BalanceSheet:        r.BalanceSheet,
		IncomeStatement:     r.IncomeStatement,
		CashFlowStatement:   r.CashFlowStatement,
	}
	for _, a := range r.Activities {
		q.Activities = append(q.Activities, domain.Activity(a))
	}
	for _, role := range r.Roles {
		q.Roles = append(q.Roles, domain.Role(role))
	}
	return q, nil
}

// ClosePeriodRequest defines the body of the close period endpoint.
type ClosePeriodRequest struct {
	Date string `json:"date" binding:"required"`
}
