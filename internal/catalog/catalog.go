// Package catalog loads seed bundle catalogs from the local file system or
// S3 and writes them to the bundle store.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"cart-bundler/internal/model"
)

// Loader defines the interface for loading catalog files.
type Loader interface {
	// Load reads a catalog file (a JSON array of bundles, optionally
	// gzip-compressed) and returns its bundles in file order.
	Load(ctx context.Context, path string) ([]model.BundleRecord, error)
}

// Store is the subset of the bundle repository the seeder writes to.
type Store interface {
	Upsert(ctx context.Context, record *model.BundleRecord) error
}

// fileBundle is the on-disk shape of one catalog entry.
type fileBundle struct {
	ID       *int            `json:"id"`
	Strategy string          `json:"strategy,omitempty"`
	Rules    json.RawMessage `json:"rules"`
}

// decodeCatalog parses a catalog document. Rule contents are validated later
// against the strategy the bundle is stored under.
func decodeCatalog(r io.Reader) ([]model.BundleRecord, error) {
	var entries []fileBundle
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	records := make([]model.BundleRecord, 0, len(entries))
	for i, entry := range entries {
		if entry.ID == nil {
			return nil, fmt.Errorf("catalog entry %d: id is required", i)
		}
		if len(entry.Rules) == 0 {
			entry.Rules = json.RawMessage("[]")
		}
		records = append(records, model.BundleRecord{
			ID:       *entry.ID,
			Strategy: entry.Strategy,
			Rules:    entry.Rules,
		})
	}

	return records, nil
}
