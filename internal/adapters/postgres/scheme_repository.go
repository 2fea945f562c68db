package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"aidconnect/internal/core/domain"
	"aidconnect/internal/core/ports"
)

type schemeRepository struct {
	db  *DB
	log zerolog.Logger
}

var _ ports.SchemeRepository = (*schemeRepository)(nil)

// NewSchemeRepository creates a new repository for the scheme catalog.
func NewSchemeRepository(db *DB, baseLogger *zerolog.Logger) ports.SchemeRepository {
	return &schemeRepository{
		db:  db,
		log: baseLogger.With().Str("component", "scheme_repo").Logger(),
	}
}

const schemeQueryCols = `
	id, external_id, title, description, start_date, end_date, fee_date,
	correction_window, category, priority, last_updated, status,
	created_at, updated_at
`

// Create inserts a new scheme.
func (r *schemeRepository) Create(ctx context.Context, scheme *domain.Scheme) error {
	query := `
		INSERT INTO schemes (
			id, external_id, title, description, start_date, end_date, fee_date,
			correction_window, category, priority, last_updated, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.pool.Exec(ctx, query,
		scheme.ID,
		scheme.ExternalID,
		scheme.Title,
		scheme.Description,
		scheme.StartDate,
		scheme.EndDate,
		scheme.FeeDate,
		scheme.CorrectionWindow,
		scheme.Category,
		scheme.Priority,
		scheme.LastUpdated,
		scheme.Status,
	)
	if err != nil {
		r.log.Error().Err(err).Int64("external_id", scheme.ExternalID).Msg("Failed to insert scheme")
	}
	return err
}

// GetByExternalID finds a scheme by its public numeric id.
func (r *schemeRepository) GetByExternalID(ctx context.Context, externalID int64) (*domain.Scheme, error) {
	query := `SELECT ` + schemeQueryCols + ` FROM schemes WHERE external_id = $1`
	row := r.db.pool.QueryRow(ctx, query, externalID)
	scheme, err := r.scanScheme(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return scheme, nil
}

// Update rewrites the descriptive fields of an existing scheme.
func (r *schemeRepository) Update(ctx context.Context, scheme *domain.Scheme) (*domain.Scheme, error) {
	query := `
		UPDATE schemes SET
			title = $2, description = $3, start_date = $4, end_date = $5, fee_date = $6,
			correction_window = $7, category = $8, priority = $9, last_updated = $10,
			status = $11, updated_at = now()
		WHERE external_id = $1
		RETURNING ` + schemeQueryCols
	row := r.db.pool.QueryRow(ctx, query,
		scheme.ExternalID,
		scheme.Title,
		scheme.Description,
		scheme.StartDate,
		scheme.EndDate,
		scheme.FeeDate,
		scheme.CorrectionWindow,
		scheme.Category,
		scheme.Priority,
		scheme.LastUpdated,
		scheme.Status,
	)
	updated, err := r.scanScheme(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error().Err(err).Int64("external_id", scheme.ExternalID).Msg("Failed to update scheme")
		return nil, err
	}
	return updated, nil
}

// Delete removes the scheme with this external id.
func (r *schemeRepository) Delete(ctx context.Context, externalID int64) (bool, error) {
	tag, err := r.db.pool.Exec(ctx, `DELETE FROM schemes WHERE external_id = $1`, externalID)
	if err != nil {
		r.log.Error().Err(err).Int64("external_id", externalID).Msg("Failed to delete scheme")
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// List returns all schemes ordered by external id.
func (r *schemeRepository) List(ctx context.Context) ([]*domain.Scheme, error) {
	query := `SELECT ` + schemeQueryCols + ` FROM schemes ORDER BY external_id`
	rows, err := r.db.pool.Query(ctx, query)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to list schemes")
		return nil, err
	}
	defer rows.Close()

	var schemes []*domain.Scheme
	for rows.Next() {
		scheme, err := r.scanScheme(rows)
		if err != nil {
			return nil, err
		}
		schemes = append(schemes, scheme)
	}
	return schemes, rows.Err()
}

func (r *schemeRepository) scanScheme(row pgx.Row) (*domain.Scheme, error) {
	var scheme domain.Scheme
	err := row.Scan(
		&scheme.ID,
		&scheme.ExternalID,
		&scheme.Title,
		&scheme.Description,
		&scheme.StartDate,
		&scheme.EndDate,
		&scheme.FeeDate,
		&scheme.CorrectionWindow,
		&scheme.Category,
		&scheme.Priority,
		&scheme.LastUpdated,
		&scheme.Status,
		&scheme.CreatedAt,
		&scheme.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		r.log.Error().Err(err).Msg("Failed to scan scheme row")
		return nil, err
	}
	return &scheme, nil
}
