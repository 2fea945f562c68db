package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"aidconnect/internal/core/domain"
	"aidconnect/internal/core/ports"
)

type verificationRepository struct {
	db  *DB
	log zerolog.Logger
}

var _ ports.VerificationRepository = (*verificationRepository)(nil)

// NewVerificationRepository creates a new repository for email-verification
// records.
func NewVerificationRepository(db *DB, baseLogger *zerolog.Logger) ports.VerificationRepository {
	return &verificationRepository{
		db:  db,
		log: baseLogger.With().Str("component", "verification_repo").Logger(),
	}
}

// Upsert re-arms the record for email with a fresh code and expiry. A new
// issue always supersedes the previous code and clears any verified flag.
func (r *verificationRepository) Upsert(ctx context.Context, email, otp string, expiry time.Time) error {
	query := `
		INSERT INTO email_verifications (email, otp, otp_expiry, verified)
		VALUES ($1, $2, $3, FALSE)
		ON CONFLICT (email) DO UPDATE SET
			otp = EXCLUDED.otp,
			otp_expiry = EXCLUDED.otp_expiry,
			verified = FALSE,
			updated_at = now()
	`
	_, err := r.db.pool.Exec(ctx, query, email, otp, expiry)
	if err != nil {
		r.log.Error().Err(err).Str("email", email).Msg("Failed to upsert verification record")
	}
	return err
}

// GetByEmail finds the record for email.
func (r *verificationRepository) GetByEmail(ctx context.Context, email string) (*domain.EmailVerification, error) {
	query := `
		SELECT email, otp, otp_expiry, verified, created_at, updated_at
		FROM email_verifications WHERE email = $1
	`
	var rec domain.EmailVerification
	err := r.db.pool.QueryRow(ctx, query, email).Scan(
		&rec.Email,
		&rec.OTP,
		&rec.OTPExpiry,
		&rec.Verified,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error().Err(err).Str("email", email).Msg("Failed to scan verification row")
		return nil, err
	}
	return &rec, nil
}

// MarkVerified sets the verified flag and clears the code and expiry. The
// code is gone afterwards, so verification cannot be replayed.
func (r *verificationRepository) MarkVerified(ctx context.Context, email string) error {
	query := `
		UPDATE email_verifications SET
			verified = TRUE, otp = NULL, otp_expiry = NULL, updated_at = now()
		WHERE email = $1
	`
	_, err := r.db.pool.Exec(ctx, query, email)
	if err != nil {
		r.log.Error().Err(err).Str("email", email).Msg("Failed to mark verification record")
	}
	return err
}
