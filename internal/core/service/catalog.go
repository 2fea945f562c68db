package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"aidconnect/internal/core/domain"
	"aidconnect/internal/core/ports"
)

// CatalogService owns the Scheme Catalog: read by all citizens, managed by
// nodal officers.
type CatalogService struct {
	schemes ports.SchemeRepository
	log     zerolog.Logger
}

// NewCatalogService creates the scheme catalog service.
func NewCatalogService(schemes ports.SchemeRepository, baseLogger *zerolog.Logger) *CatalogService {
	return &CatalogService{
		schemes: schemes,
		log:     baseLogger.With().Str("component", "catalog_service").Logger(),
	}
}

// List returns all schemes ordered by external id.
func (s *CatalogService) List(ctx context.Context) ([]*domain.Scheme, error) {
	return s.schemes.List(ctx)
}

// Get fetches one scheme by its public numeric id.
func (s *CatalogService) Get(ctx context.Context, externalID int64) (*domain.Scheme, error) {
	scheme, err := s.schemes.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if scheme == nil {
		return nil, domain.ErrSchemeNotFound
	}
	return scheme, nil
}

// Create adds a scheme to the catalog.
func (s *CatalogService) Create(ctx context.Context, scheme *domain.Scheme) (*domain.Scheme, error) {
	if err := validateScheme(scheme); err != nil {
		return nil, err
	}
	scheme.ID = uuid.New()
	if err := s.schemes.Create(ctx, scheme); err != nil {
		s.log.Error().Err(err).Int64("external_id", scheme.ExternalID).Msg("Failed to create scheme")
		return nil, err
	}
	s.log.Info().Int64("external_id", scheme.ExternalID).Str("title", scheme.Title).Msg("Scheme created")
	return scheme, nil
}

// Update rewrites the scheme with the given external id.
func (s *CatalogService) Update(ctx context.Context, scheme *domain.Scheme) (*domain.Scheme, error) {
	if err := validateScheme(scheme); err != nil {
		return nil, err
	}
	updated, err := s.schemes.Update(ctx, scheme)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrSchemeNotFound
	}
	s.log.Info().Int64("external_id", scheme.ExternalID).Msg("Scheme updated")
	return updated, nil
}

// Delete removes the scheme with the given external id.
func (s *CatalogService) Delete(ctx context.Context, externalID int64) error {
	removed, err := s.schemes.Delete(ctx, externalID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrSchemeNotFound
	}
	s.log.Info().Int64("external_id", externalID).Msg("Scheme deleted")
	return nil
}

func validateScheme(scheme *domain.Scheme) error {
	if strings.TrimSpace(scheme.Title) == "" {
		return errors.New("scheme title is required")
	}
	if !scheme.Status.Valid() {
		return errors.New("scheme status must be active, upcoming or closed")
	}
	return nil
}
