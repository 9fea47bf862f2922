package catalog

import (
	"context"
	"fmt"
	"sync"

	"cart-bundler/internal/bundle"
	"cart-bundler/internal/model"

	"github.com/rs/zerolog"
)

// Seeder loads catalog files and writes their bundles to the store.
type Seeder struct {
	loader          Loader
	store           Store
	defaultStrategy bundle.Strategy
	logger          zerolog.Logger
}

// NewSeeder creates a seeder. Bundles that do not name a strategy are
// validated and stored under defaultStrategy.
func NewSeeder(loader Loader, store Store, defaultStrategy bundle.Strategy, logger zerolog.Logger) *Seeder {
	return &Seeder{
		loader:          loader,
		store:           store,
		defaultStrategy: defaultStrategy,
		logger:          logger.With().Str("component", "catalog-seeder").Logger(),
	}
}

// Seed loads every file concurrently, validates all bundles and upserts them
// in file order. Nothing is written if any file fails to load or validate.
// It returns the number of bundles written.
func (s *Seeder) Seed(ctx context.Context, paths []string) (int, error) {
	if len(paths) == 0 {
		return 0, nil
	}

	s.logger.Info().Int("file_count", len(paths)).Msg("seeding bundle catalogs")

	type loadResult struct {
		index   int
		records []model.BundleRecord
		err     error
	}

	resultChan := make(chan loadResult, len(paths))
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			records, err := s.loader.Load(ctx, path)
			resultChan <- loadResult{index: index, records: records, err: err}
		}(i, path)
	}

	wg.Wait()
	close(resultChan)

	results := make([]loadResult, len(paths))
	for result := range resultChan {
		results[result.index] = result
	}

	var pending []model.BundleRecord
	for i, result := range results {
		if result.err != nil {
			s.logger.Error().Err(result.err).Str("file", paths[i]).Msg("failed to load catalog file")
			return 0, fmt.Errorf("failed to load catalog file %s: %w", paths[i], result.err)
		}

		for _, record := range result.records {
			if err := s.validate(&record); err != nil {
				s.logger.Error().Err(err).Str("file", paths[i]).Int("bundle_id", record.ID).Msg("invalid bundle in catalog file")
				return 0, fmt.Errorf("invalid bundle %d in %s: %w", record.ID, paths[i], err)
			}
			pending = append(pending, record)
		}
	}

	for i := range pending {
		if err := s.store.Upsert(ctx, &pending[i]); err != nil {
			s.logger.Error().Err(err).Int("bundle_id", pending[i].ID).Msg("failed to store bundle")
			return i, fmt.Errorf("failed to store bundle %d: %w", pending[i].ID, err)
		}
	}

	s.logger.Info().Int("bundles_seeded", len(pending)).Msg("bundle catalogs seeded successfully")

	return len(pending), nil
}

func (s *Seeder) validate(record *model.BundleRecord) error {
	if err := bundle.ValidateBundleID(record.ID); err != nil {
		return err
	}

	if record.Strategy == "" {
		record.Strategy = string(s.defaultStrategy)
	}

	strategy, err := bundle.ParseStrategy(record.Strategy)
	if err != nil {
		return err
	}
	record.Strategy = string(strategy)

	_, err = bundle.DecodeRules(record.Rules, strategy)
	return err
}
