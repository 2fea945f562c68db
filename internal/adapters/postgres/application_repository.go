package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"aidconnect/internal/core/domain"
	"aidconnect/internal/core/ports"
)

type applicationRepository struct {
	db  *DB
	log zerolog.Logger
}

var _ ports.ApplicationRepository = (*applicationRepository)(nil)

// NewApplicationRepository creates a new repository for application records.
func NewApplicationRepository(db *DB, baseLogger *zerolog.Logger) ports.ApplicationRepository {
	return &applicationRepository{
		db:  db,
		log: baseLogger.With().Str("component", "application_repo").Logger(),
	}
}

const applicationQueryCols = `
	id, user_id, scheme_id, scheme_title, status,
	photo_filename, photo_uploaded,
	doc_signature, doc_national_id, doc_tax_id, doc_residential_cert, documents_uploaded,
	remarks, application_date, created_at, updated_at
`

// Create inserts a new application record.
func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (
			id, user_id, scheme_id, scheme_title, status,
			photo_filename, photo_uploaded,
			doc_signature, doc_national_id, doc_tax_id, doc_residential_cert, documents_uploaded,
			remarks, application_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.pool.Exec(ctx, query,
		app.ID,
		app.UserID,
		app.SchemeID,
		app.SchemeTitle,
		app.Status,
		app.PhotoFilename,
		app.PhotoUploaded,
		app.Documents.Signature,
		app.Documents.NationalID,
		app.Documents.TaxID,
		app.Documents.ResidentialCertificate,
		app.DocumentsUploaded,
		app.Remarks,
		app.ApplicationDate,
	)
	if err != nil {
		r.log.Error().Err(err).Str("user_id", app.UserID.String()).Msg("Failed to insert application")
	}
	return err
}

// GetByID finds an application by its UUID.
func (r *applicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	query := `SELECT ` + applicationQueryCols + ` FROM applications WHERE id = $1`
	row := r.db.pool.QueryRow(ctx, query, id)
	app, err := r.scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return app, nil
}

// UpdateStatus sets status, and remarks when non-nil, returning the updated
// row. Remarks are left untouched when nil so a plain transition does not
// erase an earlier note.
func (r *applicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus, remarks *string) (*domain.Application, error) {
	query := `
		UPDATE applications SET
			status = $2,
			remarks = COALESCE($3, remarks),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + applicationQueryCols
	row := r.db.pool.QueryRow(ctx, query, id, status, remarks)
	app, err := r.scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error().Err(err).Str("application_id", id.String()).Msg("Failed to update status")
		return nil, err
	}
	return app, nil
}

// AttachPhoto records the photo filename. A missing application is a no-op.
func (r *applicationRepository) AttachPhoto(ctx context.Context, id uuid.UUID, filename string) error {
	query := `
		UPDATE applications SET
			photo_filename = $2, photo_uploaded = TRUE, updated_at = now()
		WHERE id = $1
	`
	_, err := r.db.pool.Exec(ctx, query, id, filename)
	if err != nil {
		r.log.Error().Err(err).Str("application_id", id.String()).Msg("Failed to attach photo")
	}
	return err
}

// MergeDocuments overlays docs onto the application's set. A missing
// application is a no-op.
func (r *applicationRepository) MergeDocuments(ctx context.Context, id uuid.UUID, docs domain.DocumentSet) error {
	query := `
		UPDATE applications SET
			doc_signature = COALESCE($2, doc_signature),
			doc_national_id = COALESCE($3, doc_national_id),
			doc_tax_id = COALESCE($4, doc_tax_id),
			doc_residential_cert = COALESCE($5, doc_residential_cert),
			documents_uploaded = TRUE,
			updated_at = now()
		WHERE id = $1
	`
	_, err := r.db.pool.Exec(ctx, query, id,
		docs.Signature, docs.NationalID, docs.TaxID, docs.ResidentialCertificate)
	if err != nil {
		r.log.Error().Err(err).Str("application_id", id.String()).Msg("Failed to merge documents")
	}
	return err
}

// ListByUser returns a user's applications, newest first.
func (r *applicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Application, error) {
	query := `SELECT ` + applicationQueryCols + ` FROM applications WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

// ListWithRemarks returns a user's applications carrying non-empty remarks,
// most recently updated first.
func (r *applicationRepository) ListWithRemarks(ctx context.Context, userID uuid.UUID) ([]*domain.Application, error) {
	query := `SELECT ` + applicationQueryCols + `
		FROM applications
		WHERE user_id = $1 AND remarks IS NOT NULL AND remarks <> ''
		ORDER BY updated_at DESC`
	return r.list(ctx, query, userID)
}

// CountWithRemarks counts a user's applications carrying non-empty remarks.
func (r *applicationRepository) CountWithRemarks(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.pool.QueryRow(ctx,
		`SELECT count(*) FROM applications WHERE user_id = $1 AND remarks IS NOT NULL AND remarks <> ''`,
		userID).Scan(&count)
	if err != nil {
		r.log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to count remarked applications")
		return 0, err
	}
	return count, nil
}

// ListByScheme returns a scheme's applications with owner display fields.
func (r *applicationRepository) ListByScheme(ctx context.Context, schemeID string) ([]*domain.ApplicationWithOwner, error) {
	query := ownerJoinQuery + ` WHERE a.scheme_id = $1 ORDER BY a.created_at DESC`
	return r.listWithOwner(ctx, query, schemeID)
}

// ListAll returns every application with owner display fields.
func (r *applicationRepository) ListAll(ctx context.Context) ([]*domain.ApplicationWithOwner, error) {
	query := ownerJoinQuery + ` ORDER BY a.created_at DESC`
	return r.listWithOwner(ctx, query)
}

const ownerJoinQuery = `
	SELECT
		a.id, a.user_id, a.scheme_id, a.scheme_title, a.status,
		a.photo_filename, a.photo_uploaded,
		a.doc_signature, a.doc_national_id, a.doc_tax_id, a.doc_residential_cert, a.documents_uploaded,
		a.remarks, a.application_date, a.created_at, a.updated_at,
		u.name, u.email
	FROM applications a
	JOIN users u ON u.id = a.user_id
`

func (r *applicationRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Application, error) {
	rows, err := r.db.pool.Query(ctx, query, args...)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to list applications")
		return nil, err
	}
	defer rows.Close()

	var apps []*domain.Application
	for rows.Next() {
		app, err := r.scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *applicationRepository) listWithOwner(ctx context.Context, query string, args ...any) ([]*domain.ApplicationWithOwner, error) {
	rows, err := r.db.pool.Query(ctx, query, args...)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to list applications with owners")
		return nil, err
	}
	defer rows.Close()

	var apps []*domain.ApplicationWithOwner
	for rows.Next() {
		var app domain.ApplicationWithOwner
		err := rows.Scan(
			&app.ID,
			&app.UserID,
			&app.SchemeID,
			&app.SchemeTitle,
			&app.Status,
			&app.PhotoFilename,
			&app.PhotoUploaded,
			&app.Documents.Signature,
			&app.Documents.NationalID,
			&app.Documents.TaxID,
			&app.Documents.ResidentialCertificate,
			&app.DocumentsUploaded,
			&app.Remarks,
			&app.ApplicationDate,
			&app.CreatedAt,
			&app.UpdatedAt,
			&app.OwnerName,
			&app.OwnerEmail,
		)
		if err != nil {
			r.log.Error().Err(err).Msg("Failed to scan application row")
			return nil, err
		}
		apps = append(apps, &app)
	}
	return apps, rows.Err()
}

func (r *applicationRepository) scanApplication(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	err := row.Scan(
		&app.ID,
		&app.UserID,
		&app.SchemeID,
		&app.SchemeTitle,
		&app.Status,
		&app.PhotoFilename,
		&app.PhotoUploaded,
		&app.Documents.Signature,
		&app.Documents.NationalID,
		&app.Documents.TaxID,
		&app.Documents.ResidentialCertificate,
		&app.DocumentsUploaded,
		&app.Remarks,
		&app.ApplicationDate,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		r.log.Error().Err(err).Msg("Failed to scan application row")
		return nil, err
	}
	return &app, nil
}
