package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// EntityReader defines read operations for entity data
type EntityReader interface {
	// FindEntityByID retrieves an entity by its unique identifier.
	FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error)
}

// EntityWriter defines write operations for entity data
type EntityWriter interface {
	// SaveEntity persists a new entity.
	SaveEntity(ctx context.Context, entity domain.Entity) error
}

// UnitReader defines read operations for business units
type UnitReader interface {
	FindUnitByID(ctx context.Context, unitID string) (*domain.Unit, error)
	ListUnits(ctx context.Context, entityID string) ([]domain.Unit, error)
}

// UnitWriter defines write operations for business units
type UnitWriter interface {
	SaveUnit(ctx context.Context, unit domain.Unit) error
}

// EntityUnitReader reads entities together with their business units.
type EntityUnitReader interface {
	EntityReader
	UnitReader
}

// EntityRepositoryFacade combines all entity-related repository interfaces
type EntityRepositoryFacade interface {
	EntityReader
	EntityWriter
	UnitReader
	UnitWriter
}
