package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/SscSPs/ledger_engine/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const journalEntryColumns = `journal_entry_id, ledger_id, entity_id, COALESCE(unit_id, ''),
	COALESCE(parent_id, ''), timestamp, description, origin, COALESCE(activity, ''),
	is_posted, is_locked, created_at, created_by, last_updated_at, last_updated_by`

const transactionColumns = `transaction_id, journal_entry_id, account_id, tx_type, amount,
	description, cleared, reconciled, created_at, created_by, last_updated_at, last_updated_by`

// PgxJournalRepository stores journal entries and their transaction lines.
type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal and transaction data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// storedTime matches the microsecond resolution of timestamptz, so lookups by
// timestamp find what was written.
func storedTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// FindJournalEntryByID retrieves a journal entry by id.
func (r *PgxJournalRepository) FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE journal_entry_id = $1;`
	je, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, journalEntryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrJournalEntryNotFound, journalEntryID)
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+journalEntryID, err)
	}
	return &je, nil
}

// FindJournalEntryByTimestamp retrieves the oldest journal entry of a ledger at exactly ts.
func (r *PgxJournalRepository) FindJournalEntryByTimestamp(ctx context.Context, ledgerID string, ts time.Time) (*domain.JournalEntry, error) {
	je, err := findByTimestamp(ctx, r.Pool, ledgerID, ts, false)
	if err != nil {
		return nil, err
	}
	return &je, nil
}

func findByTimestamp(ctx context.Context, q querier, ledgerID string, ts time.Time, forUpdate bool) (domain.JournalEntry, error) {
	query := `
		SELECT ` + journalEntryColumns + ` FROM journal_entries
		WHERE ledger_id = $1 AND timestamp = $2
		ORDER BY created_at, journal_entry_id
		LIMIT 1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	je, err := scanJournalEntry(q.QueryRow(ctx, query, ledgerID, storedTime(ts)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.JournalEntry{}, fmt.Errorf("%w: ledger %s at %s", domain.ErrJournalEntryNotFound,
				ledgerID, ts.Format(time.RFC3339Nano))
		}
		return domain.JournalEntry{}, apperrors.NewAppError(500, "failed to find journal entry by timestamp", err)
	}
	return je, nil
}

// ListJournalEntries returns a page of journal entries of a ledger, newest first.
func (r *PgxJournalRepository) ListJournalEntries(ctx context.Context, ledgerID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := []any{ledgerID}
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE ledger_id = $1`

	if nextToken != nil {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		if cursor != nil {
			query += ` AND (timestamp, journal_entry_id) < ($2, $3)`
			args = append(args, cursor.Timestamp, cursor.JournalEntryID)
		}
	}
	query += ` ORDER BY timestamp DESC, journal_entry_id DESC`
	if limit > 0 {
		// one extra row tells whether another page exists
		query += ` LIMIT ` + strconv.Itoa(limit+1)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list journal entries", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.JournalEntry, error) {
		return scanJournalEntry(row)
	})
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to scan journal entries", err)
	}

	if limit <= 0 || len(entries) <= limit {
		return entries, nil, nil
	}
	page := entries[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeToken(last.Timestamp, last.JournalEntryID)
	return page, &token, nil
}

// FindTransactionsByJournalEntryID returns the lines of a journal entry in insert order.
func (r *PgxJournalRepository) FindTransactionsByJournalEntryID(ctx context.Context, journalEntryID string) ([]domain.Transaction, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM journal_entries WHERE journal_entry_id = $1);`,
		journalEntryID).Scan(&exists)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to check journal entry "+journalEntryID, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrJournalEntryNotFound, journalEntryID)
	}
	return transactionsOf(ctx, r.Pool, journalEntryID)
}

func transactionsOf(ctx context.Context, q querier, journalEntryID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE journal_entry_id = $1 ORDER BY line_seq;`
	rows, err := q.Query(ctx, query, journalEntryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	txs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan transactions", err)
	}
	return txs, nil
}

// CommitJournalEntry writes a posting plan in one database transaction. The entity row
// is share-locked so a concurrent close waits, and the ledger row is locked so a
// concurrent lock transition waits.
func (r *PgxJournalRepository) CommitJournalEntry(ctx context.Context, plan domain.PostingPlan) (domain.JournalEntry, []domain.Transaction, error) {
	var (
		saved    domain.JournalEntry
		savedTxs []domain.Transaction
	)
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		var err error
		saved, savedTxs, err = r.commit(ctx, tx, plan)
		return err
	})
	if err != nil {
		return domain.JournalEntry{}, nil, err
	}
	return saved, savedTxs, nil
}

func (r *PgxJournalRepository) commit(ctx context.Context, tx pgx.Tx, plan domain.PostingPlan) (domain.JournalEntry, []domain.Transaction, error) {
	var entity domain.Entity
	err := tx.QueryRow(ctx, `SELECT entity_id, last_closing_date FROM entities WHERE entity_id = $1 FOR SHARE;`,
		plan.EntityID).Scan(&entity.EntityID, &entity.LastClosingDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.JournalEntry{}, nil, fmt.Errorf("%w: %s", domain.ErrEntityNotFound, plan.EntityID)
		}
		return domain.JournalEntry{}, nil, apperrors.NewAppError(500, "failed to lock entity "+plan.EntityID, err)
	}

	var (
		ledgerEntity string
		ledgerLocked bool
	)
	err = tx.QueryRow(ctx, `SELECT entity_id, is_locked FROM ledgers WHERE ledger_id = $1 FOR UPDATE;`,
		plan.LedgerID).Scan(&ledgerEntity, &ledgerLocked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.JournalEntry{}, nil, fmt.Errorf("%w: %s", domain.ErrLedgerNotFound, plan.LedgerID)
		}
		return domain.JournalEntry{}, nil, apperrors.NewAppError(500, "failed to lock ledger "+plan.LedgerID, err)
	}
	if ledgerEntity != entity.EntityID {
		return domain.JournalEntry{}, nil, fmt.Errorf("%w: ledger %s", domain.ErrCrossEntityReference, plan.LedgerID)
	}
	if ledgerLocked {
		return domain.JournalEntry{}, nil, fmt.Errorf("%w: %s", domain.ErrLockedLedger, plan.LedgerID)
	}
	if entity.IsClosedOn(plan.JournalEntry.Timestamp) {
		return domain.JournalEntry{}, nil, fmt.Errorf("%w: %s is on or before %s", domain.ErrClosedPeriod,
			plan.JournalEntry.Timestamp.Format(time.DateOnly), entity.LastClosingDate.Format(time.DateOnly))
	}

	je := plan.JournalEntry
	je.Timestamp = storedTime(je.Timestamp)
	var existing []domain.Transaction
	if plan.ForceRetrieval {
		found, err := findByTimestamp(ctx, tx, plan.LedgerID, je.Timestamp, true)
		if err != nil {
			return domain.JournalEntry{}, nil, err
		}
		if found.IsLocked {
			return domain.JournalEntry{}, nil, fmt.Errorf("%w: %s", domain.ErrLockedJournalEntry, found.JournalEntryID)
		}
		if existing, err = transactionsOf(ctx, tx, found.JournalEntryID); err != nil {
			return domain.JournalEntry{}, nil, err
		}
		found.Activity = je.Activity
		found.LastUpdatedAt = je.LastUpdatedAt
		found.LastUpdatedBy = je.LastUpdatedBy
		_, err = tx.Exec(ctx, `
			UPDATE journal_entries
			SET activity = NULLIF($2, ''), last_updated_at = $3, last_updated_by = $4
			WHERE journal_entry_id = $1;`,
			found.JournalEntryID, string(found.Activity), found.LastUpdatedAt, found.LastUpdatedBy)
		if err != nil {
			return domain.JournalEntry{}, nil, apperrors.NewAppError(500, "failed to update journal entry "+found.JournalEntryID, err)
		}
		je = found
	} else if err := insertJournalEntry(ctx, tx, je); err != nil {
		return domain.JournalEntry{}, nil, err
	}

	txs := make([]domain.Transaction, len(plan.Transactions))
	for i, t := range plan.Transactions {
		t.JournalEntryID = je.JournalEntryID
		txs[i] = t
	}
	if err := insertTransactions(ctx, tx, txs); err != nil {
		return domain.JournalEntry{}, nil, err
	}

	all := append(append([]domain.Transaction(nil), existing...), txs...)
	if err := accounting.ValidateJournalEntryBalance(all, plan.Tolerance); err != nil {
		return domain.JournalEntry{}, nil, err
	}

	if plan.Post && !je.IsPosted {
		_, err := tx.Exec(ctx, `UPDATE journal_entries SET is_posted = TRUE WHERE journal_entry_id = $1;`, je.JournalEntryID)
		if err != nil {
			return domain.JournalEntry{}, nil, apperrors.NewAppError(500, "failed to post journal entry "+je.JournalEntryID, err)
		}
		je.IsPosted = true
	}
	return je, txs, nil
}

// DeleteJournalEntry deletes a journal entry; its transactions go with it through the
// ON DELETE CASCADE foreign key. The entity row is share-locked so a concurrent close
// cannot checkpoint the entry while it is being removed.
func (r *PgxJournalRepository) DeleteJournalEntry(ctx context.Context, journalEntryID string) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		var (
			entity   domain.Entity
			ts       time.Time
			jeLocked bool
			ledgerID string
			ldLocked bool
		)
		err := tx.QueryRow(ctx, `
			SELECT e.entity_id, e.last_closing_date, je.timestamp, je.is_locked, l.ledger_id, l.is_locked
			FROM journal_entries je
			JOIN ledgers l ON l.ledger_id = je.ledger_id
			JOIN entities e ON e.entity_id = je.entity_id
			WHERE je.journal_entry_id = $1
			FOR UPDATE OF je FOR SHARE OF e, l;`,
			journalEntryID).Scan(&entity.EntityID, &entity.LastClosingDate, &ts, &jeLocked, &ledgerID, &ldLocked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: %s", domain.ErrJournalEntryNotFound, journalEntryID)
			}
			return apperrors.NewAppError(500, "failed to lock journal entry "+journalEntryID, err)
		}
		if jeLocked {
			return fmt.Errorf("%w: %s", domain.ErrLockedJournalEntry, journalEntryID)
		}
		if ldLocked {
			return fmt.Errorf("%w: %s", domain.ErrLockedLedger, ledgerID)
		}
		if entity.IsClosedOn(ts) {
			return fmt.Errorf("%w: %s is on or before %s", domain.ErrClosedPeriod,
				ts.Format(time.DateOnly), entity.LastClosingDate.Format(time.DateOnly))
		}
		var childID string
		err = tx.QueryRow(ctx, `SELECT journal_entry_id FROM journal_entries WHERE parent_id = $1 LIMIT 1;`,
			journalEntryID).Scan(&childID)
		if err == nil {
			return fmt.Errorf("%w: %s", domain.ErrJournalEntryInUse, childID)
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewAppError(500, "failed to check references to journal entry "+journalEntryID, err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE journal_entry_id = $1;`, journalEntryID); err != nil {
			return apperrors.NewAppError(500, "failed to delete journal entry "+journalEntryID, err)
		}
		return nil
	})
}

func insertJournalEntry(ctx context.Context, tx pgx.Tx, je domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(je)
	query := `
		INSERT INTO journal_entries (
			journal_entry_id, ledger_id, entity_id, unit_id, parent_id, timestamp,
			description, origin, activity, is_posted, is_locked,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, NULLIF($9, ''), $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		m.JournalEntryID, m.LedgerID, m.EntityID, m.UnitID, m.ParentID, m.Timestamp,
		m.Description, m.Origin, m.Activity, m.IsPosted, m.IsLocked,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: journal entry %s", apperrors.ErrDuplicate, m.JournalEntryID)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: journal entry %s references an unknown unit or parent", domain.ErrCrossEntityReference, m.JournalEntryID)
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.JournalEntryID, err)
	}
	return nil
}

func insertTransactions(ctx context.Context, tx pgx.Tx, txs []domain.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	batch := &pgx.Batch{}
	for _, t := range txs {
		m := mapping.ToModelTransaction(t)
		batch.Queue(query,
			m.TransactionID, m.JournalEntryID, m.AccountID, m.TxType, m.Amount,
			m.Description, m.Cleared, m.Reconciled,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for _, t := range txs {
		if _, err := br.Exec(); err != nil {
			br.Close()
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, t.AccountID)
			}
			return apperrors.NewAppError(500, "failed to insert transaction "+t.TransactionID, err)
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to close transaction batch", err)
	}
	return nil
}

func scanJournalEntry(row pgx.Row) (domain.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.JournalEntryID, &m.LedgerID, &m.EntityID, &m.UnitID,
		&m.ParentID, &m.Timestamp, &m.Description, &m.Origin, &m.Activity,
		&m.IsPosted, &m.IsLocked, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	je := mapping.ToDomainJournalEntry(m)
	je.Timestamp = je.Timestamp.UTC()
	return je, nil
}

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID, &m.JournalEntryID, &m.AccountID, &m.TxType, &m.Amount,
		&m.Description, &m.Cleared, &m.Reconciled,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Transaction{}, err
	}
	return mapping.ToDomainTransaction(m), nil
}
