package ports

import (
	"context"

	"github.com/google/uuid"

	"aidconnect/internal/core/domain"
)

// UserRepository defines the persistence operations for Users.
type UserRepository interface {
	// Create saves a new user to the database.
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail finds a user by their unique email. Returns nil, nil when absent.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByID finds a user by their internal UUID. Returns nil, nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// SavePersonalInfo overwrites the KYC fields and marks the profile completed.
	SavePersonalInfo(ctx context.Context, id uuid.UUID, info domain.PersonalInfo) (*domain.User, error)

	// AttachPhoto records the stored photo filename, and the last-applied
	// scheme title when non-nil.
	AttachPhoto(ctx context.Context, id uuid.UUID, filename string, schemeTitle *string) error

	// MergeDocuments overlays the non-nil entries of docs onto the user's
	// document set and returns the updated user.
	MergeDocuments(ctx context.Context, id uuid.UUID, docs domain.DocumentSet) (*domain.User, error)

	// SetEmailVerified flips the verified flag for the user with this email.
	// A missing user is not an error.
	SetEmailVerified(ctx context.Context, email string) error

	// List returns all users, newest first.
	List(ctx context.Context) ([]*domain.User, error)
}
