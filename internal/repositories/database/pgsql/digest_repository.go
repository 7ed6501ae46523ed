package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxDigestRepository serves digest reads from a repeatable read snapshot.
type PgxDigestRepository struct {
	BaseRepository
}

func newPgxDigestRepository(pool *pgxpool.Pool) portsrepo.DigestRepository {
	return &PgxDigestRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DigestRepository = (*PgxDigestRepository)(nil)

// ReadSnapshot runs fn inside a read-only repeatable read transaction, so the
// checkpoint lookups and the aggregation see the same committed state.
func (r *PgxDigestRepository) ReadSnapshot(ctx context.Context, fn func(r portsrepo.DigestReader) error) error {
	tx, err := r.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // read-only

	if err := fn(digestReader{q: tx}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

type digestReader struct {
	q querier
}

func (d digestReader) ClosingEntryDates(ctx context.Context, entityID string) ([]time.Time, error) {
	rows, err := d.q.Query(ctx, `
		SELECT closing_date FROM closing_entries
		WHERE entity_id = $1 AND is_posted
		ORDER BY closing_date;`, entityID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list closing dates", err)
	}
	dates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (time.Time, error) {
		var t time.Time
		err := row.Scan(&t)
		return domain.DateOf(t), err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan closing dates", err)
	}
	return dates, nil
}

func (d digestReader) ClosingEntryLines(ctx context.Context, entityID string, date time.Time) ([]domain.ClosingEntryLine, error) {
	date = domain.DateOf(date)
	var closingEntryID string
	err := d.q.QueryRow(ctx, `
		SELECT closing_entry_id FROM closing_entries
		WHERE entity_id = $1 AND closing_date = $2 AND is_posted;`, entityID, date).Scan(&closingEntryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s on %s", domain.ErrClosingEntryNotFound, entityID, date.Format(time.DateOnly))
		}
		return nil, apperrors.NewAppError(500, "failed to find closing entry", err)
	}

	rows, err := d.q.Query(ctx, `
		SELECT closing_entry_id, account_id, COALESCE(unit_id, ''), COALESCE(activity, ''), tx_type, balance
		FROM closing_entry_lines WHERE closing_entry_id = $1;`, closingEntryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query closing entry lines", err)
	}
	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ClosingEntryLine, error) {
		var m models.ClosingEntryLine
		if err := row.Scan(&m.ClosingEntryID, &m.AccountID, &m.UnitID, &m.Activity, &m.TxType, &m.Balance); err != nil {
			return domain.ClosingEntryLine{}, err
		}
		return mapping.ToDomainClosingEntryLine(m), nil
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan closing entry lines", err)
	}
	return lines, nil
}

func (d digestReader) AggregateTransactions(ctx context.Context, q domain.AggregateQuery) ([]domain.AggregateRow, error) {
	query, args := buildAggregateQuery(q)
	rows, err := d.q.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate transactions", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AggregateRow, error) {
		var (
			r                domain.AggregateRow
			activity, txType string
		)
		if err := row.Scan(&r.AccountID, &r.UnitID, &r.Year, &r.Month, &activity, &txType, &r.Balance); err != nil {
			return domain.AggregateRow{}, err
		}
		r.Activity = domain.Activity(activity)
		r.TxType = domain.TransactionType(txType)
		return r, nil
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan aggregate rows", err)
	}
	return out, nil
}

// buildAggregateQuery renders the phase one GROUP BY. Breakdowns that were not
// requested select a constant and stay out of the grouping.
func buildAggregateQuery(q domain.AggregateQuery) (string, []any) {
	var (
		args  []any
		where []string
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	day := `(je.timestamp AT TIME ZONE 'UTC')::date`

	where = append(where, "je.entity_id = "+arg(q.Scope.EntityID))
	if q.Scope.LedgerID != "" {
		where = append(where, "je.ledger_id = "+arg(q.Scope.LedgerID))
	}
	if q.Scope.UnitID != "" {
		where = append(where, "je.unit_id = "+arg(q.Scope.UnitID))
	}
	if q.PostedOnly {
		where = append(where, "je.is_posted")
	}
	if q.From != nil {
		where = append(where, day+" >= "+arg(domain.DateOf(*q.From)))
	}
	if q.To != nil {
		where = append(where, day+" <= "+arg(domain.DateOf(*q.To)))
	}
	if len(q.Activities) > 0 {
		acts := make([]string, len(q.Activities))
		for i, a := range q.Activities {
			acts[i] = string(a)
		}
		where = append(where, "COALESCE(je.activity, '') = ANY("+arg(acts)+")")
	}
	if len(q.AccountIDs) > 0 {
		where = append(where, "t.account_id = ANY("+arg(q.AccountIDs)+")")
	}
	join := ""
	if len(q.Roles) > 0 {
		roles := make([]string, len(q.Roles))
		for i, r := range q.Roles {
			roles[i] = string(r)
		}
		join = " JOIN accounts a ON a.account_id = t.account_id"
		where = append(where, "a.role = ANY("+arg(roles)+")")
	}
	if q.Cleared != nil {
		where = append(where, "t.cleared = "+arg(*q.Cleared))
	}
	if q.Reconciled != nil {
		where = append(where, "t.reconciled = "+arg(*q.Reconciled))
	}

	group := []string{"t.account_id", "t.tx_type"}
	unitCol, yearCol, monthCol, activityCol := "''", "0", "0", "''"
	if q.ByUnit {
		unitCol = "COALESCE(je.unit_id, '')"
		group = append(group, unitCol)
	}
	if q.ByPeriod {
		yearCol = "EXTRACT(YEAR FROM je.timestamp AT TIME ZONE 'UTC')::int"
		monthCol = "EXTRACT(MONTH FROM je.timestamp AT TIME ZONE 'UTC')::int"
		group = append(group, yearCol, monthCol)
	}
	if q.ByActivity {
		activityCol = "COALESCE(je.activity, '')"
		group = append(group, activityCol)
	}

	var b strings.Builder
	b.WriteString("SELECT t.account_id, ")
	b.WriteString(unitCol + ", " + yearCol + ", " + monthCol + ", " + activityCol)
	b.WriteString(", t.tx_type, SUM(t.amount)")
	b.WriteString(" FROM transactions t JOIN journal_entries je ON je.journal_entry_id = t.journal_entry_id")
	b.WriteString(join)
	b.WriteString(" WHERE " + strings.Join(where, " AND "))
	b.WriteString(" GROUP BY " + strings.Join(group, ", "))
	b.WriteString(" ORDER BY 1, 2, 3, 4, 5, 6")
	return b.String(), args
}
