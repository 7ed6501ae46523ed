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

const entityColumns = `entity_id, name, slug, chart_slug, last_closing_date,
	created_at, created_by, last_updated_at, last_updated_by`

const unitColumns = `unit_id, entity_id, name, slug,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxEntityRepository stores entities and their business units.
type PgxEntityRepository struct {
	BaseRepository
}

func newPgxEntityRepository(pool *pgxpool.Pool) portsrepo.EntityRepositoryFacade {
	return &PgxEntityRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EntityRepositoryFacade = (*PgxEntityRepository)(nil)

// SaveEntity inserts a new entity.
func (r *PgxEntityRepository) SaveEntity(ctx context.Context, entity domain.Entity) error {
	m := mapping.ToModelEntity(entity)
	query := `
		INSERT INTO entities (` + entityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EntityID, m.Name, m.Slug, m.ChartSlug, m.LastClosingDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: entity slug %s", apperrors.ErrDuplicate, m.Slug)
		}
		return apperrors.NewAppError(500, "failed to insert entity "+m.EntityID, err)
	}
	return nil
}

// FindEntityByID retrieves an entity by its id.
func (r *PgxEntityRepository) FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error) {
	query := `SELECT ` + entityColumns + ` FROM entities WHERE entity_id = $1;`
	e, err := scanEntity(r.Pool.QueryRow(ctx, query, entityID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrEntityNotFound, entityID)
		}
		return nil, apperrors.NewAppError(500, "failed to find entity "+entityID, err)
	}
	return &e, nil
}

// SaveUnit inserts a new business unit.
func (r *PgxEntityRepository) SaveUnit(ctx context.Context, unit domain.Unit) error {
	m := mapping.ToModelUnit(unit)
	query := `
		INSERT INTO units (` + unitColumns + `)
		SELECT $1, entity_id, $3, $4, $5, $6, $7, $8 FROM entities WHERE entity_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.UnitID, m.EntityID, m.Name, m.Slug,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: unit slug %s", apperrors.ErrDuplicate, m.Slug)
		}
		return apperrors.NewAppError(500, "failed to insert unit "+m.UnitID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrEntityNotFound, m.EntityID)
	}
	return nil
}

// FindUnitByID retrieves a unit by its id.
func (r *PgxEntityRepository) FindUnitByID(ctx context.Context, unitID string) (*domain.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE unit_id = $1;`
	u, err := scanUnit(r.Pool.QueryRow(ctx, query, unitID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnitNotFound, unitID)
		}
		return nil, apperrors.NewAppError(500, "failed to find unit "+unitID, err)
	}
	return &u, nil
}

// ListUnits returns the units of an entity ordered by slug.
func (r *PgxEntityRepository) ListUnits(ctx context.Context, entityID string) ([]domain.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE entity_id = $1 ORDER BY slug;`
	rows, err := r.Pool.Query(ctx, query, entityID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list units", err)
	}
	units, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Unit, error) {
		return scanUnit(row)
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan units", err)
	}
	return units, nil
}

func scanEntity(row pgx.Row) (domain.Entity, error) {
	var m models.Entity
	err := row.Scan(
		&m.EntityID, &m.Name, &m.Slug, &m.ChartSlug, &m.LastClosingDate,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Entity{}, err
	}
	return mapping.ToDomainEntity(m), nil
}

func scanUnit(row pgx.Row) (domain.Unit, error) {
	var m models.Unit
	err := row.Scan(
		&m.UnitID, &m.EntityID, &m.Name, &m.Slug,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Unit{}, err
	}
	return mapping.ToDomainUnit(m), nil
}
