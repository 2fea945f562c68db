package ports

import (
	"context"
	"time"

	"aidconnect/internal/core/domain"
)

// VerificationRepository persists per-email OTP verification records.
type VerificationRepository interface {
	// Upsert re-arms the record for email with a fresh code and expiry,
	// clearing any previous verified flag.
	Upsert(ctx context.Context, email, otp string, expiry time.Time) error

	// GetByEmail finds the record for email. Returns nil, nil when absent.
	GetByEmail(ctx context.Context, email string) (*domain.EmailVerification, error)

	// MarkVerified sets the verified flag and clears the code and expiry.
	MarkVerified(ctx context.Context, email string) error
}
