package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ledgerColumns = `ledger_id, entity_id, name, COALESCE(external_id, ''), is_posted, is_locked,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxLedgerRepository stores ledgers.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// SaveLedger inserts a new ledger.
func (r *PgxLedgerRepository) SaveLedger(ctx context.Context, ledger domain.Ledger) error {
	m := mapping.ToModelLedger(ledger)
	query := `
		INSERT INTO ledgers (
			ledger_id, entity_id, name, external_id, is_posted, is_locked,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.LedgerID, m.EntityID, m.Name, m.ExternalID, m.IsPosted, m.IsLocked,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ledger xid %s", apperrors.ErrDuplicate, m.ExternalID)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrEntityNotFound, m.EntityID)
		}
		return apperrors.NewAppError(500, "failed to insert ledger "+m.LedgerID, err)
	}
	return nil
}

// UpdateLedgerState persists the posted and locked flags.
func (r *PgxLedgerRepository) UpdateLedgerState(ctx context.Context, ledger domain.Ledger) error {
	query := `
		UPDATE ledgers
		SET is_posted = $2, is_locked = $3, last_updated_at = $4, last_updated_by = $5
		WHERE ledger_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		ledger.LedgerID, ledger.IsPosted, ledger.IsLocked, ledger.LastUpdatedAt, ledger.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update ledger "+ledger.LedgerID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrLedgerNotFound, ledger.LedgerID)
	}
	return nil
}

// FindLedgerByID retrieves a ledger by id.
func (r *PgxLedgerRepository) FindLedgerByID(ctx context.Context, ledgerID string) (*domain.Ledger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledgers WHERE ledger_id = $1;`
	l, err := scanLedger(r.Pool.QueryRow(ctx, query, ledgerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrLedgerNotFound, ledgerID)
		}
		return nil, apperrors.NewAppError(500, "failed to find ledger "+ledgerID, err)
	}
	return &l, nil
}

// FindLedgerByExternalID retrieves a ledger by xid within an entity.
func (r *PgxLedgerRepository) FindLedgerByExternalID(ctx context.Context, entityID, externalID string) (*domain.Ledger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledgers WHERE entity_id = $1 AND external_id = $2;`
	l, err := scanLedger(r.Pool.QueryRow(ctx, query, entityID, externalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: xid %s", domain.ErrLedgerNotFound, externalID)
		}
		return nil, apperrors.NewAppError(500, "failed to find ledger xid "+externalID, err)
	}
	return &l, nil
}

// ListLedgers returns the ledgers of an entity ordered by creation time.
func (r *PgxLedgerRepository) ListLedgers(ctx context.Context, entityID string) ([]domain.Ledger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledgers WHERE entity_id = $1 ORDER BY created_at, ledger_id;`
	rows, err := r.Pool.Query(ctx, query, entityID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list ledgers", err)
	}
	ledgers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Ledger, error) {
		return scanLedger(row)
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan ledgers", err)
	}
	return ledgers, nil
}

func scanLedger(row pgx.Row) (domain.Ledger, error) {
	var m models.Ledger
	err := row.Scan(
		&m.LedgerID, &m.EntityID, &m.Name, &m.ExternalID, &m.IsPosted, &m.IsLocked,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Ledger{}, err
	}
	return mapping.ToDomainLedger(m), nil
}
