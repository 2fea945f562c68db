package ports

import "aidconnect/internal/core/domain"

// CertificateRenderer produces the approval certificate for an application.
// Render is pure: it takes snapshots and returns a document buffer, no I/O.
type CertificateRenderer interface {
	Render(app *domain.Application, user *domain.User, scheme domain.SchemeDisplay) ([]byte, error)
}
