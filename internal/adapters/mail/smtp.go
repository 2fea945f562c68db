package mail

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog"
	gomail "github.com/wneessen/go-mail"

	"aidconnect/internal/core/ports"
	"aidconnect/internal/shared/config"
)

// smtpMailer implements the Mailer port over SMTP. The transport and its
// credentials are injected at construction; nothing here is package-level
// state.
type smtpMailer struct {
	client *gomail.Client
	from   string
	log    zerolog.Logger
}

var _ ports.Mailer = (*smtpMailer)(nil)

// NewSMTPMailer creates a mailer from the injected SMTP settings.
func NewSMTPMailer(cfg config.SMTPConfig, baseLogger *zerolog.Logger) (ports.Mailer, error) {
	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.User),
		gomail.WithPassword(cfg.Pass),
	)
	if err != nil {
		return nil, fmt.Errorf("could not create SMTP client: %w", err)
	}

	return &smtpMailer{
		client: client,
		from:   cfg.From,
		log:    baseLogger.With().Str("component", "smtp_mailer").Logger(),
	}, nil
}

// Send delivers one HTML mail with optional attachments and returns the
// generated message id.
func (m *smtpMailer) Send(ctx context.Context, to, subject, htmlBody string, attachments ...ports.Attachment) (string, error) {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return "", fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return "", fmt.Errorf("invalid to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)
	msg.SetMessageID()

	for _, att := range attachments {
		if err := msg.AttachReader(att.Filename, bytes.NewReader(att.Content),
			gomail.WithFileContentType(gomail.ContentType(att.ContentType))); err != nil {
			return "", fmt.Errorf("could not attach %s: %w", att.Filename, err)
		}
	}

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		m.log.Error().Err(err).Str("to", to).Str("subject", subject).Msg("SMTP send failed")
		return "", err
	}

	messageID := msg.GetMessageID()
	m.log.Info().Str("to", to).Str("message_id", messageID).Msg("Email sent")
	return messageID, nil
}
