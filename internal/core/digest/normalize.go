package digest

import (
	"sort"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NormalizeOptions controls the phase two regrouping.
type NormalizeOptions struct {
	ByUnit              bool
	ByPeriod            bool
	ByActivity          bool
	ByTxType            bool
	RawSigns            bool
	IncludeZeroBalances bool
}

// OptionsFor derives normalization options from a normalized query.
func OptionsFor(q domain.DigestQuery) NormalizeOptions {
	return NormalizeOptions{
		ByUnit:              q.ByUnit,
		ByPeriod:            q.ByPeriod,
		ByActivity:          q.ByActivity,
		ByTxType:            q.ByTxType,
		RawSigns:            q.RawSigns,
		IncludeZeroBalances: q.IncludeZeroBalances,
	}
}

type rowKey struct {
	accountID string
	unitID    string
	year      int
	month     int
	activity  domain.Activity
	txType    domain.TransactionType
}

// Normalize turns raw phase one sums into signed account balances.
//
// A raw sum whose tx type differs from the account balance type reduces the balance.
// Rows are then regrouped by account and the requested breakdowns. Unless RawSigns is
// set, assets with a credit balance type and liabilities or equity with a debit balance
// type are negated so contra accounts read as reductions of their section. Rows for
// accounts missing from the map are dropped.
func Normalize(rows []domain.AggregateRow, accounts map[string]domain.Account, opts NormalizeOptions) []domain.DigestRow {
	grouped := make(map[rowKey]*domain.DigestRow)
	order := make([]rowKey, 0, len(rows))

	for _, r := range rows {
		acc, ok := accounts[r.AccountID]
		if !ok {
			continue
		}
		bal := r.Balance
		if acc.BalanceType != r.TxType {
			bal = bal.Neg()
		}

		k := rowKey{accountID: r.AccountID}
		if opts.ByUnit {
			k.unitID = r.UnitID
		}
		if opts.ByPeriod {
			k.year, k.month = r.Year, r.Month
		}
		if opts.ByActivity {
			k.activity = r.Activity
		}
		if opts.ByTxType {
			k.txType = r.TxType
		}

		row, seen := grouped[k]
		if !seen {
			row = &domain.DigestRow{
				AccountID:   acc.AccountID,
				ChartSlug:   acc.ChartSlug,
				UnitID:      k.unitID,
				Year:        k.year,
				Month:       k.month,
				Activity:    k.activity,
				Role:        acc.Role,
				RoleBS:      acc.RoleBS(),
				Code:        acc.Code,
				Name:        acc.Name,
				BalanceType: acc.BalanceType,
				TxType:      k.txType,
				Balance:     decimal.Zero,
			}
			grouped[k] = row
			order = append(order, k)
		}
		row.Balance = row.Balance.Add(bal)
	}

	out := make([]domain.DigestRow, 0, len(order))
	for _, k := range order {
		row := *grouped[k]
		if !opts.IncludeZeroBalances && row.Balance.IsZero() {
			continue
		}
		row.BalanceAbs = row.Balance.Abs()
		if !opts.RawSigns && isContra(row) {
			row.Balance = row.Balance.Neg()
		}
		out = append(out, row)
	}
	SortRows(out)
	return out
}

func isContra(r domain.DigestRow) bool {
	switch r.RoleBS {
	case domain.BSAssets:
		return r.BalanceType == domain.Credit
	case domain.BSLiabilities, domain.BSEquity:
		return r.BalanceType == domain.Debit
	}
	return false
}

// SortRows orders rows by account code, then unit, period, activity and tx type.
func SortRows(rows []domain.DigestRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch {
		case a.Code != b.Code:
			return a.Code < b.Code
		case a.UnitID != b.UnitID:
			return a.UnitID < b.UnitID
		case a.Year != b.Year:
			return a.Year < b.Year
		case a.Month != b.Month:
			return a.Month < b.Month
		case a.Activity != b.Activity:
			return a.Activity < b.Activity
		default:
			return a.TxType < b.TxType
		}
	})
}
