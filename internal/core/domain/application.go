package domain

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is a custom type for our ENUM
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

// Valid reports whether s is one of the three known statuses.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Application is one citizen's submission against one scheme.
// It snapshots the scheme title at apply-time and carries its own
// document/photo bookkeeping, independent of later profile edits.
type Application struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	SchemeID    string // Opaque scheme reference
	SchemeTitle string // Snapshot, not refreshed on scheme edits

	Status ApplicationStatus

	PhotoFilename *string
	PhotoUploaded bool

	Documents         DocumentSet
	DocumentsUploaded bool

	Remarks *string // Admin free-text, set on review

	ApplicationDate time.Time // Set once at creation
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ApplicationWithOwner pairs an application with display fields of its owner,
// for admin listings.
type ApplicationWithOwner struct {
	Application
	OwnerName  string
	OwnerEmail string
}
