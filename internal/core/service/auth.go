package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"aidconnect/internal/core/domain"
	"aidconnect/internal/core/ports"
)

// bcryptCost matches what the portal has always used for citizen passwords.
const bcryptCost = 12

// AuthService owns registration, login and the KYC profile of a user.
type AuthService struct {
	users         ports.UserRepository
	verifications ports.VerificationRepository
	tokens        ports.TokenIssuer
	log           zerolog.Logger
}

// NewAuthService creates the account service.
func NewAuthService(
	users ports.UserRepository,
	verifications ports.VerificationRepository,
	tokens ports.TokenIssuer,
	baseLogger *zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:         users,
		verifications: verifications,
		tokens:        tokens,
		log:           baseLogger.With().Str("component", "auth_service").Logger(),
	}
}

// Register creates a citizen account. A verified pending-verification record
// for the email is promoted onto the new account, so an OTP flow completed
// before signup is not lost.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, "", errors.New("name, email and password are required")
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	rec, err := s.verifications.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if rec != nil && rec.Verified {
		user.IsEmailVerified = true
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("Failed to create user")
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, false)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("user_id", user.ID.String()).Str("email", email).Msg("User registered")
	return user, token, nil
}

// Login authenticates a citizen by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// AdminLogin authenticates an administrator. The admin id is the account
// email; non-admin accounts are rejected with the same error as a bad
// password.
func (s *AuthService) AdminLogin(ctx context.Context, adminID, password string) (*domain.User, string, error) {
	admin, err := s.users.GetByEmail(ctx, strings.TrimSpace(adminID))
	if err != nil {
		return nil, "", err
	}
	if admin == nil || !admin.IsAdmin {
		return nil, "", domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(admin.ID, true)
	if err != nil {
		return nil, "", err
	}
	return admin, token, nil
}

// GetUser fetches one account by id.
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// SavePersonalInfo overwrites the account's KYC fields and marks the profile
// completed.
func (s *AuthService) SavePersonalInfo(ctx context.Context, id uuid.UUID, info domain.PersonalInfo) (*domain.User, error) {
	user, err := s.users.SavePersonalInfo(ctx, id, info)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	s.log.Info().Str("user_id", id.String()).Msg("Personal information saved")
	return user, nil
}
