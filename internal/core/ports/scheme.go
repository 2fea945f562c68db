package ports

import (
	"context"

	"aidconnect/internal/core/domain"
)

// SchemeRepository defines the persistence operations for the Scheme Catalog.
type SchemeRepository interface {
	Create(ctx context.Context, scheme *domain.Scheme) error

	// GetByExternalID finds a scheme by its public numeric id.
	// Returns nil, nil when absent.
	GetByExternalID(ctx context.Context, externalID int64) (*domain.Scheme, error)

	// Update rewrites the descriptive fields of the scheme with this
	// external id, returning the updated row or nil, nil when absent.
	Update(ctx context.Context, scheme *domain.Scheme) (*domain.Scheme, error)

	// Delete removes the scheme with this external id. Reports whether a
	// row was removed.
	Delete(ctx context.Context, externalID int64) (bool, error)

	// List returns all schemes ordered by external id.
	List(ctx context.Context) ([]*domain.Scheme, error)
}
