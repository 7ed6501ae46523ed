package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const closingEntryColumns = `closing_entry_id, entity_id, fiscal_year, closing_date, is_posted,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxClosingEntryRepository stores closing checkpoints.
type PgxClosingEntryRepository struct {
	BaseRepository
}

func newPgxClosingEntryRepository(pool *pgxpool.Pool) portsrepo.ClosingEntryRepositoryFacade {
	return &PgxClosingEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClosingEntryRepositoryFacade = (*PgxClosingEntryRepository)(nil)

// CloseEntityPeriod locks the entity row FOR UPDATE, runs build against the same
// transaction and inserts the resulting closing entry. Posting takes FOR SHARE on the
// entity row, so commits into the period wait until the checkpoint is saved and then
// see the advanced closing date.
func (r *PgxClosingEntryRepository) CloseEntityPeriod(ctx context.Context, entityID string, build portsrepo.ClosingEntryBuilder) (domain.ClosingEntry, error) {
	var entry domain.ClosingEntry
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		var entity domain.Entity
		err := tx.QueryRow(ctx, `SELECT entity_id, last_closing_date FROM entities WHERE entity_id = $1 FOR UPDATE;`,
			entityID).Scan(&entity.EntityID, &entity.LastClosingDate)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: %s", domain.ErrEntityNotFound, entityID)
			}
			return apperrors.NewAppError(500, "failed to lock entity "+entityID, err)
		}

		entry, err = build(digestReader{q: tx})
		if err != nil {
			return err
		}
		entry.EntityID = entityID
		entry.ClosingDate = domain.DateOf(entry.ClosingDate)
		if entity.IsClosedOn(entry.ClosingDate) {
			return fmt.Errorf("%w: %s is already closed", domain.ErrClosedPeriod, entry.ClosingDate.Format(time.DateOnly))
		}
		return saveClosingEntry(ctx, tx, entry)
	})
	if err != nil {
		return domain.ClosingEntry{}, err
	}
	return entry, nil
}

// saveClosingEntry inserts the header and lines of a closing entry and, when posted,
// advances the entity closing date.
func saveClosingEntry(ctx context.Context, tx pgx.Tx, entry domain.ClosingEntry) error {
	header, lines := mapping.ToModelClosingEntry(entry)

	_, err := tx.Exec(ctx, `
		INSERT INTO closing_entries (`+closingEntryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		header.ClosingEntryID, header.EntityID, header.FiscalYear, header.ClosingDate, header.IsPosted,
		header.CreatedAt, header.CreatedBy, header.LastUpdatedAt, header.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: closing entry on %s", apperrors.ErrDuplicate, entry.ClosingDate.Format(time.DateOnly))
		}
		return apperrors.NewAppError(500, "failed to insert closing entry "+header.ClosingEntryID, err)
	}

	if err := insertClosingEntryLines(ctx, tx, lines); err != nil {
		return err
	}

	if entry.IsPosted {
		_, err = tx.Exec(ctx, `
			UPDATE entities SET last_closing_date = $2, last_updated_at = $3, last_updated_by = $4
			WHERE entity_id = $1;`,
			entry.EntityID, entry.ClosingDate, entry.LastUpdatedAt, entry.LastUpdatedBy)
		if err != nil {
			return apperrors.NewAppError(500, "failed to advance closing date of "+entry.EntityID, err)
		}
	}
	return nil
}

func insertClosingEntryLines(ctx context.Context, tx pgx.Tx, lines []models.ClosingEntryLine) error {
	if len(lines) == 0 {
		return nil
	}
	query := `
		INSERT INTO closing_entry_lines (closing_entry_id, account_id, unit_id, activity, tx_type, balance)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6);
	`
	batch := &pgx.Batch{}
	for _, l := range lines {
		batch.Queue(query, l.ClosingEntryID, l.AccountID, l.UnitID, l.Activity, l.TxType, l.Balance)
	}
	br := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return apperrors.NewAppError(500, "failed to insert closing entry line", err)
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to close closing line batch", err)
	}
	return nil
}

// ListClosingEntries returns the closing entry headers of an entity ordered by date.
func (r *PgxClosingEntryRepository) ListClosingEntries(ctx context.Context, entityID string) ([]domain.ClosingEntry, error) {
	query := `SELECT ` + closingEntryColumns + ` FROM closing_entries WHERE entity_id = $1 ORDER BY closing_date;`
	rows, err := r.Pool.Query(ctx, query, entityID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list closing entries", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ClosingEntry, error) {
		var m models.ClosingEntry
		err := row.Scan(
			&m.ClosingEntryID, &m.EntityID, &m.FiscalYear, &m.ClosingDate, &m.IsPosted,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return domain.ClosingEntry{}, err
		}
		return mapping.ToDomainClosingEntry(m, nil), nil
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan closing entries", err)
	}
	return entries, nil
}
