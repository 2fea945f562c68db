package ports

import "github.com/google/uuid"

// AuthToken is what a validated portal token carries.
type AuthToken struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// TokenIssuer signs access tokens for authenticated accounts.
type TokenIssuer interface {
	Issue(userID uuid.UUID, isAdmin bool) (string, error)
}

// TokenValidator verifies a token string and returns its claims.
type TokenValidator interface {
	Validate(token string) (*AuthToken, error)
}
