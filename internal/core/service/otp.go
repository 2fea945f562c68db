package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"aidconnect/internal/core/domain"
	"aidconnect/internal/core/ports"
)

// otpTTL is how long an issued code stays verifiable.
const otpTTL = 10 * time.Minute

// OTPService binds short-lived numeric codes to email addresses to assert
// control of an inbox before KYC submission. OTP state lives on a dedicated
// verification record; issuing a code never creates a login-capable account.
type OTPService struct {
	verifications ports.VerificationRepository
	users         ports.UserRepository
	mailer        ports.Mailer
	log           zerolog.Logger
	now           func() time.Time
}

// NewOTPService creates the OTP workflow service.
func NewOTPService(
	verifications ports.VerificationRepository,
	users ports.UserRepository,
	mailer ports.Mailer,
	baseLogger *zerolog.Logger,
) *OTPService {
	return &OTPService{
		verifications: verifications,
		users:         users,
		mailer:        mailer,
		log:           baseLogger.With().Str("component", "otp_service").Logger(),
		now:           time.Now,
	}
}

// IssueCode generates a 6-digit code, re-arms the verification record for the
// email, and mails the code. The record is persisted before the send attempt,
// so a delivery failure leaves a stored, verifiable code behind; callers get
// domain.ErrDelivery in that case.
func (s *OTPService) IssueCode(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email is required")
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("could not generate OTP: %w", err)
	}
	expiry := s.now().Add(otpTTL)

	if err := s.verifications.Upsert(ctx, email, code, expiry); err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("Failed to store OTP")
		return err
	}

	if _, err := s.mailer.Send(ctx, email, "OTP Verification - Scheme Portal", otpBody(code)); err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("Failed to send OTP email")
		return fmt.Errorf("%w: %v", domain.ErrDelivery, err)
	}

	s.log.Info().Str("email", email).Time("expiry", expiry).Msg("OTP issued")
	return nil
}

// VerifyCode checks the submitted code against the stored one. On success it
// marks the record verified, clears the code, and flips the email-verified
// flag on a matching user account when one exists. Verification is not
// repeatable: a second call with the same code fails because the code is gone.
func (s *OTPService) VerifyCode(ctx context.Context, email, code string) error {
	email = strings.TrimSpace(email)

	rec, err := s.verifications.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if rec == nil {
		return domain.ErrVerificationNotFound
	}

	if rec.OTP == nil || *rec.OTP != code {
		return domain.ErrInvalidCode
	}
	if rec.OTPExpiry == nil || s.now().After(*rec.OTPExpiry) {
		return domain.ErrCodeExpired
	}

	if err := s.verifications.MarkVerified(ctx, email); err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("Failed to mark email verified")
		return err
	}

	// Best effort: the account may not exist yet; registration will pick
	// the verified record up later.
	if err := s.users.SetEmailVerified(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("Could not flag user as verified")
	}

	s.log.Info().Str("email", email).Msg("Email verified")
	return nil
}

// generateOTP draws a 6-digit decimal code uniformly from [100000, 999999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func otpBody(code string) string {
	return fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
          <h2 style="color: #2563eb;">OTP Verification</h2>
          <p>Your OTP for email verification is:</p>
          <div style="background: #f3f4f6; padding: 20px; text-align: center; margin: 20px 0;">
            <h1 style="color: #1f2937; font-size: 32px; margin: 0;">%s</h1>
          </div>
          <p>This OTP will expire in 10 minutes.</p>
          <p style="color: #6b7280; font-size: 14px;">If you didn't request this, please ignore this email.</p>
        </div>`, code)
}
