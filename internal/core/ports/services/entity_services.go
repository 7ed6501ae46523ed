package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// EntityReaderSvc defines read operations for entities and units
type EntityReaderSvc interface {
	GetEntity(ctx context.Context, entityID string) (*domain.Entity, error)
	GetUnit(ctx context.Context, unitID string) (*domain.Unit, error)
	ListUnits(ctx context.Context, entityID string) ([]domain.Unit, error)
}

// EntityWriterSvc defines write operations for entities and units
type EntityWriterSvc interface {
	CreateEntity(ctx context.Context, req dto.CreateEntityRequest, actor string) (*domain.Entity, error)
	CreateUnit(ctx context.Context, entityID string, req dto.CreateUnitRequest, actor string) (*domain.Unit, error)
}

// EntitySvcFacade combines all entity-related service interfaces
type EntitySvcFacade interface {
	EntityReaderSvc
	EntityWriterSvc
}
