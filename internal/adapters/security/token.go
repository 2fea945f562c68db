package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"aidconnect/internal/core/ports"
)

// TokenManager issues and validates signed JWTs for portal accounts.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

var (
	_ ports.TokenIssuer    = (*TokenManager)(nil)
	_ ports.TokenValidator = (*TokenManager)(nil)
)

// NewTokenManager creates a manager with the provided secret and lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token carrying the account id and admin flag.
func (t *TokenManager) Issue(userID uuid.UUID, isAdmin bool) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId":  userID.String(),
		"isAdmin": isAdmin,
		"iat":     now.Unix(),
		"exp":     now.Add(t.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Validate parses and verifies a token string.
func (t *TokenManager) Validate(tokenString string) (*ports.AuthToken, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	rawID, _ := claims["userId"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, errors.New("invalid userId claim")
	}
	isAdmin, _ := claims["isAdmin"].(bool)

	return &ports.AuthToken{UserID: userID, IsAdmin: isAdmin}, nil
}
