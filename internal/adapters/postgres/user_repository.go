package postgres

import (
	"context"
	"encoding/base64"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"aidconnect/internal/core/domain"
	"aidconnect/internal/core/ports"
)

type userRepository struct {
	db     *DB
	secSvc ports.SecurityPort // Encrypts national_id / tax_id at rest
	log    zerolog.Logger
}

var _ ports.UserRepository = (*userRepository)(nil)

// NewUserRepository creates a new repository for user operations.
func NewUserRepository(db *DB, secSvc ports.SecurityPort, baseLogger *zerolog.Logger) ports.UserRepository {
	return &userRepository{
		db:     db,
		secSvc: secSvc,
		log:    baseLogger.With().Str("component", "user_repo").Logger(),
	}
}

const userQueryCols = `
	id, name, email, password_hash, is_admin, photo, last_applied_scheme,
	father_name, mother_name, mobile, national_id, tax_id, income, routing_code, bank_name,
	is_email_verified, is_personal_info_completed,
	doc_signature, doc_national_id, doc_tax_id, doc_residential_cert,
	created_at, updated_at
`

// Create encrypts the sensitive KYC fields and saves a new user.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	encNationalID, err := r.encryptField(user.NationalID)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to encrypt national ID")
		return err
	}
	encTaxID, err := r.encryptField(user.TaxID)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to encrypt tax ID")
		return err
	}

	query := `
		INSERT INTO users (
			id, name, email, password_hash, is_admin, photo, last_applied_scheme,
			father_name, mother_name, mobile, national_id, tax_id, income, routing_code, bank_name,
			is_email_verified, is_personal_info_completed,
			doc_signature, doc_national_id, doc_tax_id, doc_residential_cert
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`
	_, err = r.db.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.IsAdmin,
		user.Photo,
		user.LastAppliedScheme,
		user.FatherName,
		user.MotherName,
		user.Mobile,
		encNationalID,
		encTaxID,
		user.Income,
		user.RoutingCode,
		user.BankName,
		user.IsEmailVerified,
		user.IsPersonalInfoCompleted,
		user.Documents.Signature,
		user.Documents.NationalID,
		user.Documents.TaxID,
		user.Documents.ResidentialCertificate,
	)
	if err != nil {
		r.log.Error().Err(err).Str("email", user.Email).Msg("Failed to insert new user")
	}
	return err
}

// GetByEmail finds and decrypts a user by their email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userQueryCols + ` FROM users WHERE email = $1`
	return r.getOne(ctx, query, email)
}

// GetByID finds and decrypts a user by their internal UUID.
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userQueryCols + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// SavePersonalInfo overwrites the KYC fields and marks the profile completed.
func (r *userRepository) SavePersonalInfo(ctx context.Context, id uuid.UUID, info domain.PersonalInfo) (*domain.User, error) {
	encNationalID, err := r.encryptField(info.NationalID)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to encrypt national ID")
		return nil, err
	}
	encTaxID, err := r.encryptField(info.TaxID)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to encrypt tax ID")
		return nil, err
	}

	query := `
		UPDATE users SET
			name = $2, email = $3, father_name = $4, mother_name = $5, mobile = $6,
			national_id = $7, tax_id = $8, income = $9, routing_code = $10, bank_name = $11,
			is_personal_info_completed = TRUE, updated_at = now()
		WHERE id = $1
	`
	tag, err := r.db.pool.Exec(ctx, query,
		id,
		info.Name,
		info.Email,
		info.FatherName,
		info.MotherName,
		info.Mobile,
		encNationalID,
		encTaxID,
		info.Income,
		info.RoutingCode,
		info.BankName,
	)
	if err != nil {
		r.log.Error().Err(err).Str("user_id", id.String()).Msg("Failed to save personal info")
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// AttachPhoto records the stored photo filename, and the last-applied scheme
// title when given.
func (r *userRepository) AttachPhoto(ctx context.Context, id uuid.UUID, filename string, schemeTitle *string) error {
	query := `
		UPDATE users SET
			photo = $2,
			last_applied_scheme = COALESCE($3, last_applied_scheme),
			updated_at = now()
		WHERE id = $1
	`
	_, err := r.db.pool.Exec(ctx, query, id, filename, schemeTitle)
	if err != nil {
		r.log.Error().Err(err).Str("user_id", id.String()).Msg("Failed to attach photo")
	}
	return err
}

// MergeDocuments overlays the non-nil document filenames onto the user's set.
func (r *userRepository) MergeDocuments(ctx context.Context, id uuid.UUID, docs domain.DocumentSet) (*domain.User, error) {
	query := `
		UPDATE users SET
			doc_signature = COALESCE($2, doc_signature),
			doc_national_id = COALESCE($3, doc_national_id),
			doc_tax_id = COALESCE($4, doc_tax_id),
			doc_residential_cert = COALESCE($5, doc_residential_cert),
			updated_at = now()
		WHERE id = $1
	`
	tag, err := r.db.pool.Exec(ctx, query, id,
		docs.Signature, docs.NationalID, docs.TaxID, docs.ResidentialCertificate)
	if err != nil {
		r.log.Error().Err(err).Str("user_id", id.String()).Msg("Failed to merge documents")
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// SetEmailVerified flips the verified flag for the account with this email.
// A missing account is not an error: the record is promoted at registration.
func (r *userRepository) SetEmailVerified(ctx context.Context, email string) error {
	_, err := r.db.pool.Exec(ctx,
		`UPDATE users SET is_email_verified = TRUE, updated_at = now() WHERE email = $1`, email)
	if err != nil {
		r.log.Error().Err(err).Str("email", email).Msg("Failed to flag email verified")
	}
	return err
}

// List returns all users, newest first.
func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userQueryCols + ` FROM users ORDER BY created_at DESC`
	rows, err := r.db.pool.Query(ctx, query)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to list users")
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	row := r.db.pool.QueryRow(ctx, query, arg)
	user, err := r.scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// scanUser is a helper to scan a row into a User struct.
// It handles decryption internally.
func (r *userRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var encNationalID, encTaxID *string

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.Photo,
		&user.LastAppliedScheme,
		&user.FatherName,
		&user.MotherName,
		&user.Mobile,
		&encNationalID,
		&encTaxID,
		&user.Income,
		&user.RoutingCode,
		&user.BankName,
		&user.IsEmailVerified,
		&user.IsPersonalInfoCompleted,
		&user.Documents.Signature,
		&user.Documents.NationalID,
		&user.Documents.TaxID,
		&user.Documents.ResidentialCertificate,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		r.log.Error().Err(err).Msg("Failed to scan user row")
		return nil, err
	}

	if user.NationalID, err = r.decryptField(encNationalID); err != nil {
		r.log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to decrypt national ID (tampered?)")
		return nil, err
	}
	if user.TaxID, err = r.decryptField(encTaxID); err != nil {
		r.log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to decrypt tax ID (tampered?)")
		return nil, err
	}

	return &user, nil
}

// encryptField AES-encrypts a nullable field and base64-encodes it for the
// text column.
func (r *userRepository) encryptField(plain *string) (*string, error) {
	if plain == nil {
		return nil, nil
	}
	encBytes, err := r.secSvc.Encrypt([]byte(*plain))
	if err != nil {
		return nil, err
	}
	encStr := base64.StdEncoding.EncodeToString(encBytes)
	return &encStr, nil
}

func (r *userRepository) decryptField(enc *string) (*string, error) {
	if enc == nil {
		return nil, nil
	}
	decBytes, err := base64.StdEncoding.DecodeString(*enc)
	if err != nil {
		return nil, err
	}
	dec, err := r.secSvc.Decrypt(decBytes)
	if err != nil {
		return nil, err
	}
	decStr := string(dec)
	return &decStr, nil
}
