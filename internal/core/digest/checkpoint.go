// Package digest holds the pure parts of the aggregation pipeline: closing entry
// checkpoint selection, phase two normalization and the statement stages.
package digest

import (
	"sort"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// PlanCheckpoint picks how a window is computed from the available closing entry
// dates. from and to are inclusive dates; nil means unbounded.
//
//   - Bounded: closing entries exist on the day before from and on to. The result is
//     the to entry minus the from entry and no transaction is read.
//   - ExactTo: from is unbounded and a closing entry exists on to.
//   - CarryForward: from is unbounded and a closing entry exists before to (or at all,
//     when to is unbounded). Its lines are added to the transactions after it.
//   - Direct: anything else. The whole window is aggregated from transactions.
func PlanCheckpoint(dates []time.Time, from, to *time.Time) domain.CheckpointPlan {
	direct := domain.CheckpointPlan{
		State:         domain.CheckpointDirect,
		Aggregate:     true,
		AggregateFrom: from,
		AggregateTo:   to,
	}
	if len(dates) == 0 {
		return direct
	}

	sorted := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		sorted = append(sorted, domain.DateOf(d))
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	var exactTo *time.Time
	if to != nil {
		exactTo = find(sorted, domain.DateOf(*to))
	}

	if from != nil {
		if exactTo == nil {
			return direct
		}
		exactFrom := find(sorted, domain.DateOf(*from).AddDate(0, 0, -1))
		if exactFrom == nil {
			return direct
		}
		return domain.CheckpointPlan{
			State:        domain.CheckpointBounded,
			AddDate:      exactTo,
			SubtractDate: exactFrom,
		}
	}

	if exactTo != nil {
		return domain.CheckpointPlan{State: domain.CheckpointExactTo, AddDate: exactTo}
	}

	var latest *time.Time
	for i := len(sorted) - 1; i >= 0; i-- {
		if to == nil || sorted[i].Before(domain.DateOf(*to)) {
			d := sorted[i]
			latest = &d
			break
		}
	}
	if latest == nil {
		return direct
	}
	next := latest.AddDate(0, 0, 1)
	return domain.CheckpointPlan{
		State:         domain.CheckpointCarryForward,
		AddDate:       latest,
		Aggregate:     true,
		AggregateFrom: &next,
		AggregateTo:   to,
	}
}

func find(sorted []time.Time, d time.Time) *time.Time {
	i := sort.Search(len(sorted), func(i int) bool { return !sorted[i].Before(d) })
	if i < len(sorted) && sorted[i].Equal(d) {
		out := sorted[i]
		return &out
	}
	return nil
}

// Negate returns a copy of rows with every balance sign flipped. Closing entry lines
// are cumulative, so the entry before a window is subtracted this way.
func Negate(rows []domain.AggregateRow) []domain.AggregateRow {
	out := make([]domain.AggregateRow, len(rows))
	for i, r := range rows {
		r.Balance = r.Balance.Neg()
		out[i] = r
	}
	return out
}

// CheckpointFilter mirrors the phase one filters that can be applied to closing entry
// lines in memory.
type CheckpointFilter struct {
	UnitID     string
	AccountIDs []string
	Activities []domain.Activity
	Roles      []domain.Role
	ByUnit     bool
	ByActivity bool
}

// FilterCheckpointLines converts closing entry lines to aggregate rows, dropping lines
// outside the filter and clearing key fields that were not requested.
func FilterCheckpointLines(lines []domain.ClosingEntryLine, accounts map[string]domain.Account, f CheckpointFilter) []domain.AggregateRow {
	accountSet := toSet(f.AccountIDs)
	activitySet := toSet(f.Activities)
	roleSet := toSet(f.Roles)

	out := make([]domain.AggregateRow, 0, len(lines))
	for _, l := range lines {
		if f.UnitID != "" && l.UnitID != f.UnitID {
			continue
		}
		if accountSet != nil {
			if _, ok := accountSet[l.AccountID]; !ok {
				continue
			}
		}
		if activitySet != nil {
			if _, ok := activitySet[l.Activity]; !ok {
				continue
			}
		}
		if roleSet != nil {
			acc, ok := accounts[l.AccountID]
			if !ok {
				continue
			}
			if _, ok := roleSet[acc.Role]; !ok {
				continue
			}
		}
		row := l.AsAggregateRow()
		if !f.ByUnit {
			row.UnitID = ""
		}
		if !f.ByActivity {
			row.Activity = domain.ActivityNone
		}
		out = append(out, row)
	}
	return out
}

func toSet[T comparable](items []T) map[T]struct{} {
	if len(items) == 0 {
		return nil
	}
	set := make(map[T]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}
