package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestDocumentSet_Merge(t *testing.T) {
	base := DocumentSet{Signature: strPtr("sig-v1.png"), NationalID: strPtr("nid.pdf")}

	merged := base.Merge(DocumentSet{Signature: strPtr("sig-v2.png"), TaxID: strPtr("tax.pdf")})

	assert.Equal(t, "sig-v2.png", *merged.Signature, "newer upload wins")
	assert.Equal(t, "nid.pdf", *merged.NationalID, "untouched kind survives")
	assert.Equal(t, "tax.pdf", *merged.TaxID)
	assert.Nil(t, merged.ResidentialCertificate)

	// The receiver is not mutated.
	assert.Equal(t, "sig-v1.png", *base.Signature)
}

func TestDocumentSet_IsEmpty(t *testing.T) {
	assert.True(t, DocumentSet{}.IsEmpty())
	assert.False(t, DocumentSet{TaxID: strPtr("tax.pdf")}.IsEmpty())
}

func TestApplicationStatus_Valid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusApproved.Valid())
	assert.True(t, StatusRejected.Valid())
	assert.False(t, ApplicationStatus("archived").Valid())
	assert.False(t, ApplicationStatus("").Valid())
}

func TestSchemeStatus_Valid(t *testing.T) {
	assert.True(t, SchemeActive.Valid())
	assert.True(t, SchemeUpcoming.Valid())
	assert.True(t, SchemeClosed.Valid())
	assert.False(t, SchemeStatus("paused").Valid())
}
