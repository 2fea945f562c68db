package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"aidconnect/internal/core/domain"
	"aidconnect/internal/core/ports"
)

// --- Mocks ---

// MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

var _ ports.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SavePersonalInfo(ctx context.Context, id uuid.UUID, info domain.PersonalInfo) (*domain.User, error) {
	args := m.Called(ctx, id, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) AttachPhoto(ctx context.Context, id uuid.UUID, filename string, schemeTitle *string) error {
	args := m.Called(ctx, id, filename, schemeTitle)
	return args.Error(0)
}

func (m *MockUserRepository) MergeDocuments(ctx context.Context, id uuid.UUID, docs domain.DocumentSet) (*domain.User, error) {
	args := m.Called(ctx, id, docs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SetEmailVerified(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

// MockVerificationRepository
type MockVerificationRepository struct {
	mock.Mock
}

var _ ports.VerificationRepository = (*MockVerificationRepository)(nil)

func (m *MockVerificationRepository) Upsert(ctx context.Context, email, otp string, expiry time.Time) error {
	args := m.Called(ctx, email, otp, expiry)
	return args.Error(0)
}

func (m *MockVerificationRepository) GetByEmail(ctx context.Context, email string) (*domain.EmailVerification, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmailVerification), args.Error(1)
}

func (m *MockVerificationRepository) MarkVerified(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockApplicationRepository
type MockApplicationRepository struct {
	mock.Mock
}

var _ ports.ApplicationRepository = (*MockApplicationRepository)(nil)

func (m *MockApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus, remarks *string) (*domain.Application, error) {
	args := m.Called(ctx, id, status, remarks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepository) AttachPhoto(ctx context.Context, id uuid.UUID, filename string) error {
	args := m.Called(ctx, id, filename)
	return args.Error(0)
}

func (m *MockApplicationRepository) MergeDocuments(ctx context.Context, id uuid.UUID, docs domain.DocumentSet) error {
	args := m.Called(ctx, id, docs)
	return args.Error(0)
}

func (m *MockApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Application, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Application), args.Error(1)
}

func (m *MockApplicationRepository) ListByScheme(ctx context.Context, schemeID string) ([]*domain.ApplicationWithOwner, error) {
	args := m.Called(ctx, schemeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ApplicationWithOwner), args.Error(1)
}

func (m *MockApplicationRepository) ListAll(ctx context.Context) ([]*domain.ApplicationWithOwner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ApplicationWithOwner), args.Error(1)
}

func (m *MockApplicationRepository) ListWithRemarks(ctx context.Context, userID uuid.UUID) ([]*domain.Application, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Application), args.Error(1)
}

func (m *MockApplicationRepository) CountWithRemarks(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// MockSchemeRepository
type MockSchemeRepository struct {
	mock.Mock
}

var _ ports.SchemeRepository = (*MockSchemeRepository)(nil)

func (m *MockSchemeRepository) Create(ctx context.Context, scheme *domain.Scheme) error {
	args := m.Called(ctx, scheme)
	return args.Error(0)
}

func (m *MockSchemeRepository) GetByExternalID(ctx context.Context, externalID int64) (*domain.Scheme, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scheme), args.Error(1)
}

func (m *MockSchemeRepository) Update(ctx context.Context, scheme *domain.Scheme) (*domain.Scheme, error) {
	args := m.Called(ctx, scheme)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scheme), args.Error(1)
}

func (m *MockSchemeRepository) Delete(ctx context.Context, externalID int64) (bool, error) {
	args := m.Called(ctx, externalID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSchemeRepository) List(ctx context.Context) ([]*domain.Scheme, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Scheme), args.Error(1)
}

// MockMailer
type MockMailer struct {
	mock.Mock
}

var _ ports.Mailer = (*MockMailer)(nil)

func (m *MockMailer) Send(ctx context.Context, to, subject, htmlBody string, attachments ...ports.Attachment) (string, error) {
	args := m.Called(ctx, to, subject, htmlBody, attachments)
	return args.String(0), args.Error(1)
}

// MockCertificateRenderer
type MockCertificateRenderer struct {
	mock.Mock
}

var _ ports.CertificateRenderer = (*MockCertificateRenderer)(nil)

func (m *MockCertificateRenderer) Render(app *domain.Application, user *domain.User, scheme domain.SchemeDisplay) ([]byte, error) {
	args := m.Called(app, user, scheme)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockTokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

var _ ports.TokenIssuer = (*MockTokenIssuer)(nil)

func (m *MockTokenIssuer) Issue(userID uuid.UUID, isAdmin bool) (string, error) {
	args := m.Called(userID, isAdmin)
	return args.String(0), args.Error(1)
}
