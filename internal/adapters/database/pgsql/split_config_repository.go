package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/revenue_split_app/internal/apperrors"
	"github.com/SscSPs/revenue_split_app/internal/core/domain"
	portsrepo "github.com/SscSPs/revenue_split_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxSplitConfigRepository implements portsrepo.SplitConfigRepositoryFacade using pgxpool.
type PgxSplitConfigRepository struct {
	BaseRepository
}

// newPgxSplitConfigRepository creates a new PgxSplitConfigRepository.
func newPgxSplitConfigRepository(db *pgxpool.Pool) *PgxSplitConfigRepository {
	return &PgxSplitConfigRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var (
	_ portsrepo.SplitConfigRepositoryFacade = (*PgxSplitConfigRepository)(nil)
	_ portsrepo.TransactionManager          = (*PgxSplitConfigRepository)(nil)
)

// FindSplitConfiguration retrieves the single global configuration row.
func (r *PgxSplitConfigRepository) FindSplitConfiguration(ctx context.Context) (*domain.SplitConfiguration, error) {
	query := `
		SELECT
			distribution_partner_percentage, company_admin_percentage,
			label_admin_percentage, artist_percentage,
			created_at, created_by, last_updated_at, last_updated_by
		FROM split_configuration
		WHERE id = 1;
	`

	var cfg domain.SplitConfiguration
	err := r.Pool.QueryRow(ctx, query).Scan(
		&cfg.DistributionPartnerPercentage, &cfg.CompanyAdminPercentage,
		&cfg.LabelAdminPercentage, &cfg.ArtistPercentage,
		&cfg.CreatedAt, &cfg.CreatedBy, &cfg.LastUpdatedAt, &cfg.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("split configuration not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find split configuration", err)
	}
	return &cfg, nil
}

// SaveSplitConfiguration upserts the global configuration, keeping the original creation audit.
func (r *PgxSplitConfigRepository) SaveSplitConfiguration(ctx context.Context, cfg domain.SplitConfiguration) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO split_configuration (
			id, distribution_partner_percentage, company_admin_percentage,
			label_admin_percentage, artist_percentage,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			distribution_partner_percentage = EXCLUDED.distribution_partner_percentage,
			company_admin_percentage = EXCLUDED.company_admin_percentage,
			label_admin_percentage = EXCLUDED.label_admin_percentage,
			artist_percentage = EXCLUDED.artist_percentage,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by`,
		cfg.DistributionPartnerPercentage, cfg.CompanyAdminPercentage,
		cfg.LabelAdminPercentage, cfg.ArtistPercentage,
		cfg.CreatedAt, cfg.CreatedBy, cfg.LastUpdatedAt, cfg.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save split configuration", err)
	}
	return nil
}

// FindLabelAdminOverride retrieves the override for one label admin.
func (r *PgxSplitConfigRepository) FindLabelAdminOverride(ctx context.Context, labelAdminID string) (*domain.LabelAdminOverride, error) {
	query := `
		SELECT label_admin_id, percentage, created_at, created_by, last_updated_at, last_updated_by
		FROM label_admin_split_overrides
		WHERE label_admin_id = $1;
	`

	var o domain.LabelAdminOverride
	err := r.Pool.QueryRow(ctx, query, labelAdminID).Scan(
		&o.LabelAdminID, &o.Percentage, &o.CreatedAt, &o.CreatedBy, &o.LastUpdatedAt, &o.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no split override for label admin " + labelAdminID)
		}
		return nil, apperrors.NewAppError(500, "failed to find label admin override", err)
	}
	return &o, nil
}

// ListLabelAdminOverrides retrieves every override ordered by label admin.
func (r *PgxSplitConfigRepository) ListLabelAdminOverrides(ctx context.Context) ([]domain.LabelAdminOverride, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT label_admin_id, percentage, created_at, created_by, last_updated_at, last_updated_by
		FROM label_admin_split_overrides
		ORDER BY label_admin_id;
	`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list label admin overrides", err)
	}
	defer rows.Close()

	overrides := []domain.LabelAdminOverride{}
	for rows.Next() {
		var o domain.LabelAdminOverride
		if err := rows.Scan(&o.LabelAdminID, &o.Percentage, &o.CreatedAt, &o.CreatedBy, &o.LastUpdatedAt, &o.LastUpdatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan label admin override", err)
		}
		overrides = append(overrides, o)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating label admin overrides", err)
	}
	return overrides, nil
}

// SaveLabelAdminOverride inserts or updates an override inside a transaction.
func (r *PgxSplitConfigRepository) SaveLabelAdminOverride(ctx context.Context, override domain.LabelAdminOverride) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM label_admin_split_overrides WHERE label_admin_id = $1)`,
		override.LabelAdminID,
	).Scan(&exists)

	if err == nil && exists {
		_, err = tx.Exec(ctx, `
			UPDATE label_admin_split_overrides
			SET percentage = $1, last_updated_at = $2, last_updated_by = $3
			WHERE label_admin_id = $4`,
			override.Percentage, override.LastUpdatedAt, override.LastUpdatedBy, override.LabelAdminID,
		)
	} else if err == nil {
		_, err = tx.Exec(ctx, `
			INSERT INTO label_admin_split_overrides (
				label_admin_id, percentage, created_at, created_by, last_updated_at, last_updated_by
			) VALUES ($1, $2, $3, $4, $5, $6)`,
			override.LabelAdminID, override.Percentage,
			override.CreatedAt, override.CreatedBy, override.LastUpdatedAt, override.LastUpdatedBy,
		)
	}

	if err != nil {
		_ = r.Rollback(ctx, tx)
		return apperrors.NewAppError(500, "failed to save label admin override", err)
	}
	return r.Commit(ctx, tx)
}

// DeleteLabelAdminOverride removes an override.
func (r *PgxSplitConfigRepository) DeleteLabelAdminOverride(ctx context.Context, labelAdminID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM label_admin_split_overrides WHERE label_admin_id = $1`, labelAdminID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete label admin override", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("no split override for label admin " + labelAdminID)
	}
	return nil
}
