package repository

import (
	"context"

	"cart-bundler/internal/model"
)

// BundleRepository defines the interface for bundle catalog data access operations.
type BundleRepository interface {
	// GetAll retrieves stored bundles ordered by ID with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.BundleRecord, error)

	// GetByID retrieves a single bundle. It returns nil, nil when no bundle has the ID.
	GetByID(ctx context.Context, id int) (*model.BundleRecord, error)

	// Upsert inserts the bundle or replaces the strategy and rules of an
	// existing one. Timestamps are written back to record.
	Upsert(ctx context.Context, record *model.BundleRecord) error

	// Delete removes a bundle and reports whether it existed.
	Delete(ctx context.Context, id int) (bool, error)
}
