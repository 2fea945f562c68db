package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"aidconnect/internal/core/domain"
	"aidconnect/internal/core/ports"
)

func createTestApplication(t *testing.T, repo ports.ApplicationRepository, userID uuid.UUID) *domain.Application {
	t.Helper()
	app := &domain.Application{
		ID:              uuid.New(),
		UserID:          userID,
		SchemeID:        "101",
		SchemeTitle:     "Housing Assistance",
		Status:          domain.StatusPending,
		ApplicationDate: time.Now().UTC().Truncate(time.Second),
	}
	if err := repo.Create(context.Background(), app); err != nil {
		t.Fatalf("createTestApplication failed: %v", err)
	}
	t.Cleanup(func() { cleanupTestApplication(t, app.ID) })
	return app
}

func TestApplicationRepository_Create_GetByID_Roundtrip(t *testing.T) {
	nopLogger := zerolog.Nop()
	userRepo := NewUserRepository(testDB, testSecSvc, &nopLogger)
	repo := NewApplicationRepository(testDB, &nopLogger)
	ctx := context.Background()

	user, cleanup := createTestUser(t, userRepo)
	defer cleanup()

	app := createTestApplication(t, repo, user.ID)

	found, err := repo.GetByID(ctx, app.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found == nil {
		t.Fatal("GetByID: application not found, but should exist")
	}
	if found.Status != domain.StatusPending {
		t.Errorf("Status mismatch: got %s, want %s", found.Status, domain.StatusPending)
	}
	if found.SchemeTitle != app.SchemeTitle {
		t.Errorf("SchemeTitle mismatch: got %s, want %s", found.SchemeTitle, app.SchemeTitle)
	}
	if found.Remarks != nil {
		t.Error("Remarks should start empty")
	}
}

func TestApplicationRepository_UpdateStatus(t *testing.T) {
	nopLogger := zerolog.Nop()
	userRepo := NewUserRepository(testDB, testSecSvc, &nopLogger)
	repo := NewApplicationRepository(testDB, &nopLogger)
	ctx := context.Background()

	user, cleanup := createTestUser(t, userRepo)
	defer cleanup()
	app := createTestApplication(t, repo, user.ID)

	// 1. Reject with remarks.
	remarks := "Income certificate is illegible."
	updated, err := repo.UpdateStatus(ctx, app.ID, domain.StatusRejected, &remarks)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status != domain.StatusRejected {
		t.Errorf("Status mismatch: got %s, want rejected", updated.Status)
	}
	if updated.Remarks == nil || *updated.Remarks != remarks {
		t.Error("Remarks were not stored verbatim")
	}

	// 2. Re-review to approved without remarks; the old note must survive.
	updated, err = repo.UpdateStatus(ctx, app.ID, domain.StatusApproved, nil)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status != domain.StatusApproved {
		t.Errorf("Status mismatch: got %s, want approved", updated.Status)
	}
	if updated.Remarks == nil || *updated.Remarks != remarks {
		t.Error("Remarks were erased by a nil-remarks transition")
	}
}

func TestApplicationRepository_UpdateStatus_UnknownID(t *testing.T) {
	nopLogger := zerolog.Nop()
	repo := NewApplicationRepository(testDB, &nopLogger)

	updated, err := repo.UpdateStatus(context.Background(), uuid.New(), domain.StatusApproved, nil)
	if err != nil {
		t.Fatalf("UpdateStatus returned an error: %v", err)
	}
	if updated != nil {
		t.Fatal("UpdateStatus returned a row for an unknown id")
	}
}

func TestApplicationRepository_ListWithRemarks_And_Count(t *testing.T) {
	nopLogger := zerolog.Nop()
	userRepo := NewUserRepository(testDB, testSecSvc, &nopLogger)
	repo := NewApplicationRepository(testDB, &nopLogger)
	ctx := context.Background()

	user, cleanup := createTestUser(t, userRepo)
	defer cleanup()

	plain := createTestApplication(t, repo, user.ID)
	remarked := createTestApplication(t, repo, user.ID)

	remarks := "Please re-upload your signature."
	if _, err := repo.UpdateStatus(ctx, remarked.ID, domain.StatusRejected, &remarks); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	listed, err := repo.ListWithRemarks(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListWithRemarks failed: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("ListWithRemarks returned %d rows, want 1", len(listed))
	}
	if listed[0].ID != remarked.ID {
		t.Errorf("ListWithRemarks returned %s, want %s (not %s)", listed[0].ID, remarked.ID, plain.ID)
	}

	count, err := repo.CountWithRemarks(ctx, user.ID)
	if err != nil {
		t.Fatalf("CountWithRemarks failed: %v", err)
	}
	if count != 1 {
		t.Errorf("CountWithRemarks = %d, want 1", count)
	}
}

func TestApplicationRepository_ListByScheme_JoinsOwner(t *testing.T) {
	nopLogger := zerolog.Nop()
	userRepo := NewUserRepository(testDB, testSecSvc, &nopLogger)
	repo := NewApplicationRepository(testDB, &nopLogger)
	ctx := context.Background()

	user, cleanup := createTestUser(t, userRepo)
	defer cleanup()
	app := createTestApplication(t, repo, user.ID)

	listed, err := repo.ListByScheme(ctx, app.SchemeID)
	if err != nil {
		t.Fatalf("ListByScheme failed: %v", err)
	}

	var found *domain.ApplicationWithOwner
	for _, row := range listed {
		if row.ID == app.ID {
			found = row
		}
	}
	if found == nil {
		t.Fatal("ListByScheme did not return the created application")
	}
	if found.OwnerName != user.Name {
		t.Errorf("OwnerName mismatch: got %s, want %s", found.OwnerName, user.Name)
	}
	if found.OwnerEmail != user.Email {
		t.Errorf("OwnerEmail mismatch: got %s, want %s", found.OwnerEmail, user.Email)
	}
}

func TestApplicationRepository_AttachPhoto_UnknownIDIsNoOp(t *testing.T) {
	nopLogger := zerolog.Nop()
	repo := NewApplicationRepository(testDB, &nopLogger)

	// The photo intake updates the user first and the application second;
	// a stale application id must not fail the whole upload.
	if err := repo.AttachPhoto(context.Background(), uuid.New(), "123-photo.png"); err != nil {
		t.Fatalf("AttachPhoto for an unknown id returned an error: %v", err)
	}
}

func TestApplicationRepository_MergeDocuments(t *testing.T) {
	nopLogger := zerolog.Nop()
	userRepo := NewUserRepository(testDB, testSecSvc, &nopLogger)
	repo := NewApplicationRepository(testDB, &nopLogger)
	ctx := context.Background()

	user, cleanup := createTestUser(t, userRepo)
	defer cleanup()
	app := createTestApplication(t, repo, user.ID)

	if err := repo.MergeDocuments(ctx, app.ID, domain.DocumentSet{Signature: strPtr("sig.png")}); err != nil {
		t.Fatalf("MergeDocuments failed: %v", err)
	}
	if err := repo.MergeDocuments(ctx, app.ID, domain.DocumentSet{TaxID: strPtr("tax.pdf")}); err != nil {
		t.Fatalf("MergeDocuments failed: %v", err)
	}

	found, err := repo.GetByID(ctx, app.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.Documents.Signature == nil || *found.Documents.Signature != "sig.png" {
		t.Error("Signature was lost by the second merge")
	}
	if found.Documents.TaxID == nil || *found.Documents.TaxID != "tax.pdf" {
		t.Error("TaxID was not merged in")
	}
	if !found.DocumentsUploaded {
		t.Error("DocumentsUploaded flag was not set")
	}
}
