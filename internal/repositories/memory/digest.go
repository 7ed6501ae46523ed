package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// ReadSnapshot holds the read lock for the duration of fn, so every read inside sees
// the same state.
func (s *Store) ReadSnapshot(_ context.Context, fn func(r portsrepo.DigestReader) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(snapshot{s})
}

// snapshot reads store maps without locking; it is only handed out by ReadSnapshot.
type snapshot struct {
	s *Store
}

func (r snapshot) ClosingEntryDates(_ context.Context, entityID string) ([]time.Time, error) {
	var out []time.Time
	for _, ce := range r.s.closing[entityID] {
		if ce.IsPosted {
			out = append(out, ce.ClosingDate)
		}
	}
	return out, nil
}

func (r snapshot) ClosingEntryLines(_ context.Context, entityID string, date time.Time) ([]domain.ClosingEntryLine, error) {
	date = domain.DateOf(date)
	for _, ce := range r.s.closing[entityID] {
		if ce.IsPosted && ce.ClosingDate.Equal(date) {
			return append([]domain.ClosingEntryLine(nil), ce.Lines...), nil
		}
	}
	return nil, fmt.Errorf("%w: %s on %s", domain.ErrClosingEntryNotFound, entityID, date.Format(time.DateOnly))
}

type aggKey struct {
	account  string
	unit     string
	year     int
	month    int
	activity domain.Activity
	txType   domain.TransactionType
}

func (r snapshot) AggregateTransactions(_ context.Context, q domain.AggregateQuery) ([]domain.AggregateRow, error) {
	accountSet := stringSet(q.AccountIDs)
	roleSet := make(map[domain.Role]bool, len(q.Roles))
	for _, role := range q.Roles {
		roleSet[role] = true
	}
	activitySet := make(map[domain.Activity]bool, len(q.Activities))
	for _, a := range q.Activities {
		activitySet[a] = true
	}

	sums := make(map[aggKey]decimal.Decimal)
	for _, je := range r.s.entries {
		if je.EntityID != q.Scope.EntityID {
			continue
		}
		if q.Scope.LedgerID != "" && je.LedgerID != q.Scope.LedgerID {
			continue
		}
		if q.Scope.UnitID != "" && je.UnitID != q.Scope.UnitID {
			continue
		}
		if q.PostedOnly && !je.IsPosted {
			continue
		}
		if !inRange(je.Timestamp, q.From, q.To) {
			continue
		}
		if len(activitySet) > 0 && !activitySet[je.Activity] {
			continue
		}

		for _, tx := range r.s.txs[je.JournalEntryID] {
			if accountSet != nil && !accountSet[tx.AccountID] {
				continue
			}
			if len(roleSet) > 0 && !roleSet[r.s.accounts[tx.AccountID].Role] {
				continue
			}
			if q.Cleared != nil && tx.Cleared != *q.Cleared {
				continue
			}
			if q.Reconciled != nil && tx.Reconciled != *q.Reconciled {
				continue
			}

			k := aggKey{account: tx.AccountID, txType: tx.TxType}
			if q.ByUnit {
				k.unit = je.UnitID
			}
			if q.ByPeriod {
				k.year, k.month = je.Timestamp.Year(), int(je.Timestamp.Month())
			}
			if q.ByActivity {
				k.activity = je.Activity
			}
			sums[k] = sums[k].Add(tx.Amount)
		}
	}

	out := make([]domain.AggregateRow, 0, len(sums))
	for k, v := range sums {
		out = append(out, domain.AggregateRow{
			AccountID: k.account,
			UnitID:    k.unit,
			Year:      k.year,
			Month:     k.month,
			Activity:  k.activity,
			TxType:    k.txType,
			Balance:   v,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.AccountID != b.AccountID {
			return a.AccountID < b.AccountID
		}
		if a.UnitID != b.UnitID {
			return a.UnitID < b.UnitID
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		if a.Activity != b.Activity {
			return a.Activity < b.Activity
		}
		return a.TxType < b.TxType
	})
	return out, nil
}

func stringSet(items []string) map[string]bool {
	if len(items) == 0 {
		return nil
	}
	set := make(map[string]bool, len(items))
	for _, i := range items {
		set[i] = true
	}
	return set
}
