package services

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
)

// DefaultChartSlug names the chart of accounts of entities created without one.
const DefaultChartSlug = "default"

// entityService manages accounting entities and their business units.
type entityService struct {
	BaseService
	entityRepo portsrepo.EntityRepositoryFacade
}

// NewEntityService creates a new entity service.
func NewEntityService(entityRepo portsrepo.EntityRepositoryFacade) portssvc.EntitySvcFacade {
	return &entityService{entityRepo: entityRepo}
}

// Ensure entityService implements the EntitySvcFacade interface
var _ portssvc.EntitySvcFacade = (*entityService)(nil)

func (s *entityService) CreateEntity(ctx context.Context, req dto.CreateEntityRequest, actor string) (*domain.Entity, error) {
	entity := domain.Entity{
		EntityID:    uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Slug:        req.Slug,
		ChartSlug:   req.ChartSlug,
		AuditFields: domain.NewAuditFields(actor, now()),
	}
	if entity.Slug == "" {
		entity.Slug = slugify(entity.Name)
	}
	if entity.ChartSlug == "" {
		entity.ChartSlug = DefaultChartSlug
	}

	if err := s.entityRepo.SaveEntity(ctx, entity); err != nil {
		s.LogError(ctx, err, "Failed to save entity", slog.String("slug", entity.Slug))
		return nil, err
	}
	s.LogInfo(ctx, "Entity created",
		slog.String("entity_id", entity.EntityID),
		slog.String("slug", entity.Slug))
	return &entity, nil
}

func (s *entityService) GetEntity(ctx context.Context, entityID string) (*domain.Entity, error) {
	return s.entityRepo.FindEntityByID(ctx, entityID)
}

func (s *entityService) CreateUnit(ctx context.Context, entityID string, req dto.CreateUnitRequest, actor string) (*domain.Unit, error) {
	if _, err := s.entityRepo.FindEntityByID(ctx, entityID); err != nil {
		return nil, err
	}
	unit := domain.Unit{
		UnitID:      uuid.NewString(),
		EntityID:    entityID,
		Name:        strings.TrimSpace(req.Name),
		Slug:        req.Slug,
		AuditFields: domain.NewAuditFields(actor, now()),
	}
	if unit.Slug == "" {
		unit.Slug = slugify(unit.Name)
	}
	if err := s.entityRepo.SaveUnit(ctx, unit); err != nil {
		s.LogError(ctx, err, "Failed to save unit",
			slog.String("entity_id", entityID),
			slog.String("slug", unit.Slug))
		return nil, err
	}
	return &unit, nil
}

// GetUnit retrieves a business unit by id.
func (s *entityService) GetUnit(ctx context.Context, unitID string) (*domain.Unit, error) {
	return s.entityRepo.FindUnitByID(ctx, unitID)
}

func (s *entityService) ListUnits(ctx context.Context, entityID string) ([]domain.Unit, error) {
	if _, err := s.entityRepo.FindEntityByID(ctx, entityID); err != nil {
		return nil, err
	}
	return s.entityRepo.ListUnits(ctx, entityID)
}

// slugify lowercases s and joins its alphanumeric runs with dashes.
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
