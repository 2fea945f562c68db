package domain

import "time"

// EmailVerification is the pending-verification record for one email address.
// OTP state lives here, never on a User: issuing a code must not create a
// login-capable account. A verified record is promoted onto the User at
// registration time.
type EmailVerification struct {
	Email     string
	OTP       *string    // Set together with OTPExpiry, cleared together
	OTPExpiry *time.Time
	Verified  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
