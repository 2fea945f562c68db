package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"aidconnect/internal/core/domain"
)

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }

func TestUserRepository_Create_GetByEmail_Roundtrip(t *testing.T) {
	// 1. Setup
	nopLogger := zerolog.Nop()
	repo := NewUserRepository(testDB, testSecSvc, &nopLogger)
	ctx := context.Background()

	user := &domain.User{
		ID:           uuid.New(),
		Name:         "Asha Rao",
		Email:        uuid.NewString() + "@test.local",
		PasswordHash: "$2a$12$notarealhashbutlongenough................",
		FatherName:   strPtr("Raghav Rao"),
		Mobile:       strPtr("9876543210"),
		NationalID:   strPtr("1234-5678-9012"),
		TaxID:        strPtr("ABCDE1234F"),
		Income:       int64Ptr(250000),
		RoutingCode:  strPtr("SBIN0001234"),
		BankName:     strPtr("State Bank"),
	}

	// 2. Run Create
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	defer cleanupTestUser(t, user.ID)

	// 3. Run GetByEmail
	foundUser, err := repo.GetByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("Failed to get user by email: %v", err)
	}
	if foundUser == nil {
		t.Fatalf("GetByEmail: user not found, but should exist")
	}

	// 4. Verify
	if foundUser.ID != user.ID {
		t.Errorf("ID mismatch: got %v, want %v", foundUser.ID, user.ID)
	}
	if foundUser.Name != user.Name {
		t.Errorf("Name mismatch: got %s, want %s", foundUser.Name, user.Name)
	}
	if *foundUser.NationalID != *user.NationalID {
		t.Errorf("NationalID mismatch (decryption failed?): got %s, want %s", *foundUser.NationalID, *user.NationalID)
	}
	if *foundUser.TaxID != *user.TaxID {
		t.Errorf("TaxID mismatch (decryption failed?): got %s, want %s", *foundUser.TaxID, *user.TaxID)
	}
	if *foundUser.Income != *user.Income {
		t.Errorf("Income mismatch: got %d, want %d", *foundUser.Income, *user.Income)
	}
	if foundUser.IsPersonalInfoCompleted {
		t.Error("IsPersonalInfoCompleted should start false")
	}
	t.Logf("Successfully created and retrieved user %s", user.ID)
}

func TestUserRepository_EncryptsSensitiveColumnsAtRest(t *testing.T) {
	nopLogger := zerolog.Nop()
	repo := NewUserRepository(testDB, testSecSvc, &nopLogger)
	ctx := context.Background()

	nationalID := "9999-8888-7777"
	user := &domain.User{
		ID:           uuid.New(),
		Name:         "Cipher Check",
		Email:        uuid.NewString() + "@test.local",
		PasswordHash: "x",
		NationalID:   &nationalID,
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	defer cleanupTestUser(t, user.ID)

	var stored *string
	err := testDB.pool.QueryRow(ctx, "SELECT national_id FROM users WHERE id = $1", user.ID).Scan(&stored)
	if err != nil {
		t.Fatalf("Raw read failed: %v", err)
	}
	if stored == nil || *stored == nationalID {
		t.Fatal("national_id column holds the plaintext, but it should be encrypted")
	}
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	nopLogger := zerolog.Nop()
	repo := NewUserRepository(testDB, testSecSvc, &nopLogger)

	foundUser, err := repo.GetByEmail(context.Background(), "nobody@test.local")
	if err != nil {
		t.Fatalf("GetByEmail for non-existent user returned an error: %v", err)
	}
	if foundUser != nil {
		t.Fatalf("GetByEmail found a user, but it should not exist")
	}
}

func TestUserRepository_SavePersonalInfo(t *testing.T) {
	// 1. Setup
	nopLogger := zerolog.Nop()
	repo := NewUserRepository(testDB, testSecSvc, &nopLogger)
	ctx := context.Background()

	user, cleanup := createTestUser(t, repo)
	defer cleanup()

	// 2. Run SavePersonalInfo
	info := domain.PersonalInfo{
		Name:       "Asha R. Rao",
		Email:      user.Email,
		FatherName: strPtr("Raghav Rao"),
		Mobile:     strPtr("9876543210"),
		NationalID: strPtr("1234-5678-9012"),
		Income:     int64Ptr(300000),
	}
	updated, err := repo.SavePersonalInfo(ctx, user.ID, info)
	if err != nil {
		t.Fatalf("SavePersonalInfo failed: %v", err)
	}
	if updated == nil {
		t.Fatal("SavePersonalInfo returned nil for an existing user")
	}

	// 3. Verify
	if updated.Name != info.Name {
		t.Errorf("Name was not updated: got %s, want %s", updated.Name, info.Name)
	}
	if *updated.NationalID != *info.NationalID {
		t.Errorf("NationalID was not updated: got %s, want %s", *updated.NationalID, *info.NationalID)
	}
	if !updated.IsPersonalInfoCompleted {
		t.Error("IsPersonalInfoCompleted was not flipped")
	}
}

func TestUserRepository_SavePersonalInfo_UnknownUser(t *testing.T) {
	nopLogger := zerolog.Nop()
	repo := NewUserRepository(testDB, testSecSvc, &nopLogger)

	updated, err := repo.SavePersonalInfo(context.Background(), uuid.New(), domain.PersonalInfo{Name: "Ghost"})
	if err != nil {
		t.Fatalf("SavePersonalInfo returned an error: %v", err)
	}
	if updated != nil {
		t.Fatal("SavePersonalInfo returned a user for an unknown id")
	}
}

func TestUserRepository_MergeDocuments(t *testing.T) {
	nopLogger := zerolog.Nop()
	repo := NewUserRepository(testDB, testSecSvc, &nopLogger)
	ctx := context.Background()

	user, cleanup := createTestUser(t, repo)
	defer cleanup()

	// First upload: signature only.
	first, err := repo.MergeDocuments(ctx, user.ID, domain.DocumentSet{Signature: strPtr("sig.png")})
	if err != nil {
		t.Fatalf("MergeDocuments failed: %v", err)
	}
	if first.Documents.Signature == nil || *first.Documents.Signature != "sig.png" {
		t.Fatal("Signature was not stored")
	}

	// Second upload: national id. The signature must survive the merge.
	second, err := repo.MergeDocuments(ctx, user.ID, domain.DocumentSet{NationalID: strPtr("nid.pdf")})
	if err != nil {
		t.Fatalf("MergeDocuments failed: %v", err)
	}
	if second.Documents.Signature == nil || *second.Documents.Signature != "sig.png" {
		t.Error("Signature was lost by the second merge")
	}
	if second.Documents.NationalID == nil || *second.Documents.NationalID != "nid.pdf" {
		t.Error("NationalID was not merged in")
	}
}

func TestUserRepository_AttachPhoto(t *testing.T) {
	nopLogger := zerolog.Nop()
	repo := NewUserRepository(testDB, testSecSvc, &nopLogger)
	ctx := context.Background()

	user, cleanup := createTestUser(t, repo)
	defer cleanup()

	if err := repo.AttachPhoto(ctx, user.ID, "123-photo.png", strPtr("Housing Assistance")); err != nil {
		t.Fatalf("AttachPhoto failed: %v", err)
	}

	found, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.Photo == nil || *found.Photo != "123-photo.png" {
		t.Error("Photo was not stored")
	}
	if found.LastAppliedScheme == nil || *found.LastAppliedScheme != "Housing Assistance" {
		t.Error("LastAppliedScheme was not stored")
	}

	// A second photo without a scheme title must keep the previous title.
	if err := repo.AttachPhoto(ctx, user.ID, "456-photo.png", nil); err != nil {
		t.Fatalf("AttachPhoto failed: %v", err)
	}
	found, err = repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if *found.Photo != "456-photo.png" {
		t.Error("Photo was not replaced")
	}
	if *found.LastAppliedScheme != "Housing Assistance" {
		t.Error("LastAppliedScheme was cleared, but should be kept")
	}
}
