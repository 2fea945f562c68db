package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"aidconnect/internal/core/domain"
)

func newCatalogService(schemes *MockSchemeRepository) *CatalogService {
	log := zerolog.Nop()
	return NewCatalogService(schemes, &log)
}

func TestCatalogService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		schemes := new(MockSchemeRepository)
		svc := newCatalogService(schemes)

		schemes.On("Create", ctx, mock.AnythingOfType("*domain.Scheme")).Return(nil).Once()

		scheme, err := svc.Create(ctx, &domain.Scheme{
			ExternalID: 101,
			Title:      "Housing Assistance",
			Status:     domain.SchemeActive,
		})

		require.NoError(t, err)
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", scheme.ID.String())
		schemes.AssertExpectations(t)
	})

	t.Run("Failure - blank title", func(t *testing.T) {
		schemes := new(MockSchemeRepository)
		svc := newCatalogService(schemes)

		_, err := svc.Create(ctx, &domain.Scheme{ExternalID: 101, Title: "  ", Status: domain.SchemeActive})

		require.Error(t, err)
		schemes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Failure - bogus status", func(t *testing.T) {
		schemes := new(MockSchemeRepository)
		svc := newCatalogService(schemes)

		_, err := svc.Create(ctx, &domain.Scheme{ExternalID: 101, Title: "Housing", Status: "paused"})

		require.Error(t, err)
	})
}

func TestCatalogService_GetUpdateDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("Get - unknown id", func(t *testing.T) {
		schemes := new(MockSchemeRepository)
		svc := newCatalogService(schemes)

		schemes.On("GetByExternalID", ctx, int64(999)).Return(nil, nil).Once()

		_, err := svc.Get(ctx, 999)

		assert.ErrorIs(t, err, domain.ErrSchemeNotFound)
	})

	t.Run("Update - unknown id", func(t *testing.T) {
		schemes := new(MockSchemeRepository)
		svc := newCatalogService(schemes)

		scheme := &domain.Scheme{ExternalID: 999, Title: "Housing", Status: domain.SchemeClosed}
		schemes.On("Update", ctx, scheme).Return(nil, nil).Once()

		_, err := svc.Update(ctx, scheme)

		assert.ErrorIs(t, err, domain.ErrSchemeNotFound)
	})

	t.Run("Delete - unknown id", func(t *testing.T) {
		schemes := new(MockSchemeRepository)
		svc := newCatalogService(schemes)

		schemes.On("Delete", ctx, int64(999)).Return(false, nil).Once()

		err := svc.Delete(ctx, 999)

		assert.ErrorIs(t, err, domain.ErrSchemeNotFound)
	})

	t.Run("Delete - success", func(t *testing.T) {
		schemes := new(MockSchemeRepository)
		svc := newCatalogService(schemes)

		schemes.On("Delete", ctx, int64(101)).Return(true, nil).Once()

		require.NoError(t, svc.Delete(ctx, 101))
	})
}
