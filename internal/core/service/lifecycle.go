package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"aidconnect/internal/core/domain"
	"aidconnect/internal/core/ports"
)

// schemeDescription is the display text used where only the snapshot title of
// a scheme is known.
const schemeDescription = "Government scheme for eligible citizens"

// TransitionResult is what an admin review returns: the updated application
// and whether the follow-up notification actually went out. The status write
// is authoritative; notification is best-effort.
type TransitionResult struct {
	Application *domain.Application
	Notified    bool
}

// ApplicationDetail bundles a single application with its owner's profile and
// the scheme display data, for the admin review screen.
type ApplicationDetail struct {
	Application *domain.Application
	Owner       *domain.User
	Scheme      domain.SchemeDisplay
}

// LifecycleService owns application creation, document/photo attachment
// bookkeeping, and the pending -> approved/rejected transition with its
// certificate and email side effects.
type LifecycleService struct {
	apps   ports.ApplicationRepository
	users  ports.UserRepository
	certs  ports.CertificateRenderer
	mailer ports.Mailer
	log    zerolog.Logger
	now    func() time.Time
}

// NewLifecycleService creates the application workflow service.
func NewLifecycleService(
	apps ports.ApplicationRepository,
	users ports.UserRepository,
	certs ports.CertificateRenderer,
	mailer ports.Mailer,
	baseLogger *zerolog.Logger,
) *LifecycleService {
	return &LifecycleService{
		apps:   apps,
		users:  users,
		certs:  certs,
		mailer: mailer,
		log:    baseLogger.With().Str("component", "lifecycle_service").Logger(),
		now:    time.Now,
	}
}

// CreateApplication inserts a fresh pending application. Nothing prevents a
// user from holding several applications to the same scheme.
func (s *LifecycleService) CreateApplication(ctx context.Context, userID uuid.UUID, schemeID, schemeTitle string) (*domain.Application, error) {
	schemeID = strings.TrimSpace(schemeID)
	schemeTitle = strings.TrimSpace(schemeTitle)
	if userID == uuid.Nil || schemeID == "" || schemeTitle == "" {
		return nil, errors.New("userId, schemeId and schemeTitle are required")
	}

	app := &domain.Application{
		ID:              uuid.New(),
		UserID:          userID,
		SchemeID:        schemeID,
		SchemeTitle:     schemeTitle,
		Status:          domain.StatusPending,
		ApplicationDate: s.now(),
	}
	if err := s.apps.Create(ctx, app); err != nil {
		s.log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create application")
		return nil, err
	}

	s.log.Info().Str("application_id", app.ID.String()).Str("scheme_id", schemeID).Msg("Application created")
	return app, nil
}

// AttachPhoto records an already-stored photo filename on the user and, when
// an application id is given, on that application. The two writes are
// independent: a missing application leaves the user side updated.
func (s *LifecycleService) AttachPhoto(ctx context.Context, userID uuid.UUID, applicationID *uuid.UUID, filename string, schemeTitle *string) error {
	if err := s.users.AttachPhoto(ctx, userID, filename, schemeTitle); err != nil {
		return err
	}
	if applicationID != nil {
		if err := s.apps.AttachPhoto(ctx, *applicationID, filename); err != nil {
			return err
		}
	}
	return nil
}

// AttachDocuments merges already-stored document filenames into the user's
// set and, when an application id is given, into that application's set.
// Same two-write saga as AttachPhoto.
func (s *LifecycleService) AttachDocuments(ctx context.Context, userID uuid.UUID, applicationID *uuid.UUID, docs domain.DocumentSet) (*domain.User, error) {
	user, err := s.users.MergeDocuments(ctx, userID, docs)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if applicationID != nil {
		if err := s.apps.MergeDocuments(ctx, *applicationID, docs); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// TransitionStatus updates an application's status (and remarks, when given)
// and then fires the matching notification. Any target status in the enum is
// accepted regardless of the current one; the portal has always allowed a
// re-review. Certificate or mail failure never rolls the status back: the
// result carries Notified=false instead.
func (s *LifecycleService) TransitionStatus(ctx context.Context, applicationID uuid.UUID, status domain.ApplicationStatus, remarks *string) (*TransitionResult, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	app, err := s.apps.UpdateStatus(ctx, applicationID, status, remarks)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, domain.ErrApplicationNotFound
	}

	result := &TransitionResult{Application: app}

	switch status {
	case domain.StatusApproved:
		result.Notified = s.sendApproval(ctx, app)
	case domain.StatusRejected:
		result.Notified = s.sendRejection(ctx, app, remarks)
	}

	s.log.Info().
		Str("application_id", app.ID.String()).
		Str("status", string(status)).
		Bool("notified", result.Notified).
		Msg("Application status updated")
	return result, nil
}

// Get fetches one application with its owner profile and scheme display data.
func (s *LifecycleService) Get(ctx context.Context, applicationID uuid.UUID) (*ApplicationDetail, error) {
	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, domain.ErrApplicationNotFound
	}

	owner, err := s.users.GetByID(ctx, app.UserID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrUserNotFound
	}

	return &ApplicationDetail{
		Application: app,
		Owner:       owner,
		Scheme:      domain.SchemeDisplay{Title: app.SchemeTitle, Description: schemeDescription},
	}, nil
}

// ListByUser returns a user's applications, newest first.
func (s *LifecycleService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Application, error) {
	return s.apps.ListByUser(ctx, userID)
}

// ListByScheme returns a scheme's applications with owner display fields.
func (s *LifecycleService) ListByScheme(ctx context.Context, schemeID string) ([]*domain.ApplicationWithOwner, error) {
	return s.apps.ListByScheme(ctx, schemeID)
}

// ListAll returns every application with owner display fields.
func (s *LifecycleService) ListAll(ctx context.Context) ([]*domain.ApplicationWithOwner, error) {
	return s.apps.ListAll(ctx)
}

// ListMessages returns a user's applications carrying admin remarks.
func (s *LifecycleService) ListMessages(ctx context.Context, userID uuid.UUID) ([]*domain.Application, error) {
	return s.apps.ListWithRemarks(ctx, userID)
}

// CountMessages counts a user's applications carrying admin remarks.
func (s *LifecycleService) CountMessages(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.apps.CountWithRemarks(ctx, userID)
}

// sendApproval renders the certificate and mails it. Returns whether the
// notification went out.
func (s *LifecycleService) sendApproval(ctx context.Context, app *domain.Application) bool {
	owner, err := s.users.GetByID(ctx, app.UserID)
	if err != nil || owner == nil {
		s.log.Error().Err(err).Str("application_id", app.ID.String()).Msg("Approval notice skipped: owner lookup failed")
		return false
	}

	scheme := domain.SchemeDisplay{Title: app.SchemeTitle, Description: schemeDescription}
	pdf, err := s.certs.Render(app, owner, scheme)
	if err != nil {
		s.log.Error().Err(err).Str("application_id", app.ID.String()).Msg("Certificate generation failed (application still approved)")
		return false
	}

	attachment := ports.Attachment{
		Filename:    fmt.Sprintf("approval-certificate-%s.pdf", app.ID),
		ContentType: "application/pdf",
		Content:     pdf,
	}
	_, err = s.mailer.Send(ctx, owner.Email, "Application Approved - Scheme Portal",
		approvalBody(owner.Name, app.ID.String()), attachment)
	if err != nil {
		s.log.Error().Err(err).Str("application_id", app.ID.String()).Msg("Approval email failed (application still approved)")
		return false
	}
	return true
}

// sendRejection mails the rejection notice, including remarks when present.
func (s *LifecycleService) sendRejection(ctx context.Context, app *domain.Application, remarks *string) bool {
	owner, err := s.users.GetByID(ctx, app.UserID)
	if err != nil || owner == nil {
		s.log.Error().Err(err).Str("application_id", app.ID.String()).Msg("Rejection notice skipped: owner lookup failed")
		return false
	}

	_, err = s.mailer.Send(ctx, owner.Email, "Application Status Update - Scheme Portal",
		rejectionBody(owner.Name, app.ID.String(), remarks))
	if err != nil {
		s.log.Error().Err(err).Str("application_id", app.ID.String()).Msg("Rejection email failed (application still rejected)")
		return false
	}
	return true
}

func approvalBody(name, applicationID string) string {
	return fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
          <h2 style="color: #2563eb;">Congratulations %s!</h2>
          <p>We are pleased to inform you that your application has been <strong>APPROVED</strong>.</p>
          <div style="background: #f0f9ff; padding: 20px; border-radius: 8px; margin: 20px 0;">
            <p><strong>Application ID:</strong> %s</p>
            <p><strong>Status:</strong> Approved</p>
            <p><strong>Date:</strong> %s</p>
          </div>
          <p>Please find your approval certificate attached to this email.</p>
          <p style="color: #6b7280; font-size: 14px;">
            If you have any questions, please contact our support team.
          </p>
          <hr style="margin: 30px 0;">
          <p style="color: #9ca3af; font-size: 12px; text-align: center;">
            This is an automated email from Scheme Portal. Please do not reply.
          </p>
        </div>`, name, applicationID, time.Now().Format("02/01/2006"))
}

func rejectionBody(name, applicationID string, remarks *string) string {
	remarksLine := ""
	if remarks != nil && *remarks != "" {
		remarksLine = fmt.Sprintf("<p><strong>Remarks:</strong> %s</p>", *remarks)
	}
	return fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
          <h2 style="color: #dc2626;">Application Status Update</h2>
          <p>Dear %s,</p>
          <p>We regret to inform you that your application has been <strong>REJECTED</strong>.</p>
          <div style="background: #fef2f2; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 4px solid #dc2626;">
            <p><strong>Application ID:</strong> %s</p>
            <p><strong>Status:</strong> Rejected</p>
            <p><strong>Date:</strong> %s</p>
            %s
          </div>
          <p>You may reapply after addressing the issues mentioned in the remarks.</p>
          <p style="color: #6b7280; font-size: 14px;">
            If you have any questions, please contact our support team.
          </p>
          <hr style="margin: 30px 0;">
          <p style="color: #9ca3af; font-size: 12px; text-align: center;">
            This is an automated email from Scheme Portal. Please do not reply.
          </p>
        </div>`, name, applicationID, time.Now().Format("02/01/2006"), remarksLine)
}
