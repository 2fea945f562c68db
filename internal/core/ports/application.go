package ports

import (
	"context"

	"github.com/google/uuid"

	"aidconnect/internal/core/domain"
)

// ApplicationRepository defines the persistence operations for Applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error

	// GetByID finds an application by its UUID. Returns nil, nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)

	// UpdateStatus sets status, and remarks when non-nil, returning the
	// updated row. Returns nil, nil when the application does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus, remarks *string) (*domain.Application, error)

	// AttachPhoto records the photo filename and flips PhotoUploaded.
	// A missing application is a no-op, not an error.
	AttachPhoto(ctx context.Context, id uuid.UUID, filename string) error

	// MergeDocuments overlays docs onto the application's set and flips
	// DocumentsUploaded. A missing application is a no-op, not an error.
	MergeDocuments(ctx context.Context, id uuid.UUID, docs domain.DocumentSet) error

	// ListByUser returns a user's applications, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Application, error)

	// ListByScheme returns a scheme's applications with owner display
	// fields, newest first.
	ListByScheme(ctx context.Context, schemeID string) ([]*domain.ApplicationWithOwner, error)

	// ListAll returns every application with owner display fields.
	ListAll(ctx context.Context) ([]*domain.ApplicationWithOwner, error)

	// ListWithRemarks returns a user's applications carrying non-empty
	// remarks, most recently updated first.
	ListWithRemarks(ctx context.Context, userID uuid.UUID) ([]*domain.Application, error)

	// CountWithRemarks counts a user's applications carrying non-empty remarks.
	CountWithRemarks(ctx context.Context, userID uuid.UUID) (int, error)
}
