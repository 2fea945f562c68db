package domain

import (
	"time"

	"github.com/google/uuid"
)

// DocumentSet holds the stored filenames of a citizen's identity documents.
// The kinds are fixed so completeness checks stay compile-time checkable.
type DocumentSet struct {
	Signature              *string
	NationalID             *string
	TaxID                  *string
	ResidentialCertificate *string
}

// IsEmpty reports whether no document of any kind has been attached.
func (d DocumentSet) IsEmpty() bool {
	return d.Signature == nil && d.NationalID == nil && d.TaxID == nil && d.ResidentialCertificate == nil
}

// Merge overlays the non-nil entries of other onto a copy of d.
func (d DocumentSet) Merge(other DocumentSet) DocumentSet {
	out := d
	if other.Signature != nil {
		out.Signature = other.Signature
	}
	if other.NationalID != nil {
		out.NationalID = other.NationalID
	}
	if other.TaxID != nil {
		out.TaxID = other.TaxID
	}
	if other.ResidentialCertificate != nil {
		out.ResidentialCertificate = other.ResidentialCertificate
	}
	return out
}

// User represents a citizen (or administrator) account.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	IsAdmin      bool

	Photo             *string // Nullable, stored filename
	LastAppliedScheme *string // Nullable

	// KYC personal information, all optional until submitted together.
	FatherName  *string
	MotherName  *string
	Mobile      *string
	NationalID  *string // Encrypted at rest
	TaxID       *string // Encrypted at rest
	Income      *int64
	RoutingCode *string
	BankName    *string

	IsEmailVerified         bool
	IsPersonalInfoCompleted bool

	Documents DocumentSet

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PersonalInfo carries one KYC submission. Saving it overwrites the
// corresponding User fields and marks the profile completed.
type PersonalInfo struct {
	Name        string
	Email       string
	FatherName  *string
	MotherName  *string
	Mobile      *string
	NationalID  *string
	TaxID       *string
	Income      *int64
	RoutingCode *string
	BankName    *string
}
