package domain

import "errors"

// Sentinel errors shared across services and adapters. The HTTP layer maps
// these onto status codes; everything else wraps them with context.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrSchemeNotFound       = errors.New("scheme not found")
	ErrVerificationNotFound = errors.New("no verification record for email")

	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrInvalidStatus = errors.New("invalid application status")
	ErrInvalidCode   = errors.New("invalid OTP")
	ErrCodeExpired   = errors.New("OTP expired")

	ErrUnsupportedMedia = errors.New("only images and PDFs allowed")
	ErrPayloadTooLarge  = errors.New("file exceeds size limit")
	ErrDelivery         = errors.New("mail delivery failed")
)
