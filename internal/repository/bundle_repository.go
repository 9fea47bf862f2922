package repository

import (
	"context"
	"errors"
	"fmt"

	"cart-bundler/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// bundleRepository implements the BundleRepository interface using PostgreSQL.
type bundleRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewBundleRepository creates a new PostgreSQL-backed bundle repository.
func NewBundleRepository(pool *pgxpool.Pool, logger zerolog.Logger) BundleRepository {
	return &bundleRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "bundle").Logger(),
	}
}

// GetAll retrieves stored bundles ordered by ID with pagination support.
func (r *bundleRepository) GetAll(ctx context.Context, limit, offset int) ([]model.BundleRecord, error) {
	query := `
		SELECT id, strategy, rules, created_at, updated_at
		FROM bundles
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query bundles")
		return nil, fmt.Errorf("failed to query bundles: %w", err)
	}
	defer rows.Close()

	bundles := []model.BundleRecord{}
	for rows.Next() {
		b, err := scanBundle(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan bundle row")
			return nil, fmt.Errorf("failed to scan bundle: %w", err)
		}
		bundles = append(bundles, *b)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating bundle rows")
		return nil, fmt.Errorf("error iterating bundles: %w", err)
	}

	return bundles, nil
}

// GetByID retrieves a single bundle by its ID.
func (r *bundleRepository) GetByID(ctx context.Context, id int) (*model.BundleRecord, error) {
	query := `
		SELECT id, strategy, rules, created_at, updated_at
		FROM bundles
		WHERE id = $1
	`

	b, err := scanBundle(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int("bundle_id", id).Msg("bundle not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int("bundle_id", id).Msg("failed to query bundle")
		return nil, fmt.Errorf("failed to query bundle: %w", err)
	}

	return b, nil
}

// Upsert inserts or replaces a bundle.
func (r *bundleRepository) Upsert(ctx context.Context, record *model.BundleRecord) error {
	query := `
		INSERT INTO bundles (id, strategy, rules)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET strategy = EXCLUDED.strategy,
			rules = EXCLUDED.rules,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, record.ID, record.Strategy, string(record.Rules)).
		Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int("bundle_id", record.ID).
			Msg("failed to upsert bundle")
		return fmt.Errorf("failed to upsert bundle: %w", err)
	}

	r.logger.Debug().
		Int("bundle_id", record.ID).
		Str("strategy", record.Strategy).
		Msg("bundle stored successfully")

	return nil
}

// Delete removes a bundle by its ID.
func (r *bundleRepository) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bundles WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int("bundle_id", id).Msg("failed to delete bundle")
		return false, fmt.Errorf("failed to delete bundle: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func scanBundle(row pgx.Row) (*model.BundleRecord, error) {
	var (
		b     model.BundleRecord
		rules []byte
	)
	if err := row.Scan(&b.ID, &b.Strategy, &rules, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.Rules = rules
	return &b, nil
}
