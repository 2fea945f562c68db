package ports

import "context"

// Attachment is a file included with an outgoing mail.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Mailer is the mail-delivery capability. Implementations own their own
// transport, credentials and timeouts; callers treat a send as best-effort
// unless stated otherwise.
type Mailer interface {
	// Send delivers one HTML mail and returns the transport message id.
	Send(ctx context.Context, to, subject, htmlBody string, attachments ...Attachment) (string, error)
}
