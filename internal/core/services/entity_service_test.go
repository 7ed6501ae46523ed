package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEntityService_CreateEntity(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateEntityRequest
		wantSlug  string
		wantChart string
	}{
		{name: "derived slug", req: dto.CreateEntityRequest{Name: "  Acme Holdings, Inc. "}, wantSlug: "acme-holdings-inc", wantChart: "default"},
		{name: "explicit values", req: dto.CreateEntityRequest{Name: "Acme", Slug: "acme-co", ChartSlug: "retail"}, wantSlug: "acme-co", wantChart: "retail"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockEntityRepository)
			repo.On("SaveEntity", mock.Anything, mock.Anything).Return(nil)
			svc := services.NewEntityService(repo)

			entity, err := svc.CreateEntity(context.Background(), tc.req, "alice")

			require.NoError(t, err)
			assert.Equal(t, tc.wantSlug, entity.Slug)
			assert.Equal(t, tc.wantChart, entity.ChartSlug)
			assert.NotEmpty(t, entity.EntityID)
			assert.Equal(t, "alice", entity.CreatedBy)
			repo.AssertExpectations(t)
		})
	}
}

func TestEntityService_Units(t *testing.T) {
	ctx := context.Background()
	repo := new(MockEntityRepository)
	repo.On("FindEntityByID", mock.Anything, "e1").Return(&domain.Entity{EntityID: "e1"}, nil)
	repo.On("FindEntityByID", mock.Anything, "e2").Return(nil, domain.ErrEntityNotFound)
	repo.On("SaveUnit", mock.Anything, mock.MatchedBy(func(u domain.Unit) bool {
		return u.EntityID == "e1" && u.Slug == "north-store"
	})).Return(nil)
	repo.On("ListUnits", mock.Anything, "e1").Return([]domain.Unit{{UnitID: "u1", EntityID: "e1"}}, nil)
	svc := services.NewEntityService(repo)

	unit, err := svc.CreateUnit(ctx, "e1", dto.CreateUnitRequest{Name: "North Store"}, "alice")
	require.NoError(t, err)
	assert.Equal(t, "north-store", unit.Slug)

	units, err := svc.ListUnits(ctx, "e1")
	require.NoError(t, err)
	assert.Len(t, units, 1)

	_, err = svc.CreateUnit(ctx, "e2", dto.CreateUnitRequest{Name: "x"}, "alice")
	assert.ErrorIs(t, err, domain.ErrEntityNotFound)
}
