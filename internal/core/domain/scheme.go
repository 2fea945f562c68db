package domain

import (
	"time"

	"github.com/google/uuid"
)

// SchemeStatus is a custom type for our ENUM
type SchemeStatus string

const (
	SchemeActive   SchemeStatus = "active"
	SchemeUpcoming SchemeStatus = "upcoming"
	SchemeClosed   SchemeStatus = "closed"
)

// Valid reports whether s is a known scheme status.
func (s SchemeStatus) Valid() bool {
	switch s {
	case SchemeActive, SchemeUpcoming, SchemeClosed:
		return true
	}
	return false
}

// Scheme is a government benefit program citizens apply to.
// The date/fee/window fields are descriptive strings shown as-is in listings.
type Scheme struct {
	ID               uuid.UUID
	ExternalID       int64 // Public numeric id, unique
	Title            string
	Description      string
	StartDate        string
	EndDate          string
	FeeDate          string
	CorrectionWindow string
	Category         string
	Priority         string
	LastUpdated      string
	Status           SchemeStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SchemeDisplay is the subset of scheme data embedded in certificates
// and single-application responses.
type SchemeDisplay struct {
	Title       string
	Description string
}
