package service

import (
	"context"
	"encoding/json"
	"fmt"

	"cart-bundler/internal/bundle"
	"cart-bundler/internal/model"
	"cart-bundler/internal/repository"

	"github.com/rs/zerolog"
)

// bundleService implements BundleService.
type bundleService struct {
	bundleRepo       repository.BundleRepository
	defaultStrategy  bundle.Strategy
	catalogAttribute string
	logger           zerolog.Logger
}

// NewBundleService creates a new bundle service. A nil repository disables
// the store: every call then fails with model.ErrStoreDisabled.
func NewBundleService(
	bundleRepo repository.BundleRepository,
	defaultStrategy bundle.Strategy,
	catalogAttribute string,
	logger zerolog.Logger,
) BundleService {
	if catalogAttribute == "" {
		catalogAttribute = bundle.DefaultCatalogAttribute
	}
	return &bundleService{
		bundleRepo:       bundleRepo,
		defaultStrategy:  defaultStrategy,
		catalogAttribute: catalogAttribute,
		logger:           logger.With().Str("service", "bundle").Logger(),
	}
}

// GetAll retrieves stored bundles with pagination.
func (s *bundleService) GetAll(ctx context.Context, limit, offset int) ([]model.BundleRecord, error) {
	if s.bundleRepo == nil {
		return nil, model.ErrStoreDisabled
	}

	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	bundles, err := s.bundleRepo.GetAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to get all bundles")
		return nil, fmt.Errorf("failed to get bundles: %w", err)
	}

	s.logger.Debug().
		Int("count", len(bundles)).
		Int("limit", limit).
		Int("offset", offset).
		Msg("retrieved bundles")

	return bundles, nil
}

// GetByID retrieves a single bundle by ID.
func (s *bundleService) GetByID(ctx context.Context, id int) (*model.BundleRecord, error) {
	if s.bundleRepo == nil {
		return nil, model.ErrStoreDisabled
	}

	record, err := s.bundleRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int("bundle_id", id).Msg("failed to get bundle by ID")
		return nil, fmt.Errorf("failed to get bundle: %w", err)
	}

	if record == nil {
		s.logger.Debug().Int("bundle_id", id).Msg("bundle not found")
		return nil, model.ErrBundleNotFound
	}

	return record, nil
}

// Put validates the rules against the strategy and stores the bundle.
func (s *bundleService) Put(ctx context.Context, id int, req *model.BundleRequest) (*model.BundleRecord, error) {
	if s.bundleRepo == nil {
		return nil, model.ErrStoreDisabled
	}

	if err := bundle.ValidateBundleID(id); err != nil {
		return nil, model.WrapDomainError(model.ErrCodeInvalidBundleID, "Bundle ID must be a positive integer", err)
	}
	if req == nil || len(req.Rules) == 0 {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "rules is required")
	}

	name := req.Strategy
	if name == "" {
		name = string(s.defaultStrategy)
	}
	strategy, err := bundle.ParseStrategy(name)
	if err != nil {
		return nil, model.WrapDomainError(model.ErrCodeInvalidCatalog, "Unknown bundle strategy", err)
	}

	rules, err := bundle.DecodeRules(req.Rules, strategy)
	if err != nil {
		s.logger.Warn().Err(err).Int("bundle_id", id).Str("strategy", string(strategy)).Msg("rejected invalid bundle rules")
		return nil, model.WrapDomainError(model.ErrCodeInvalidCatalog, "Bundle rules are invalid", err)
	}

	record := &model.BundleRecord{
		ID:       id,
		Strategy: string(strategy),
		Rules:    req.Rules,
	}
	if err := s.bundleRepo.Upsert(ctx, record); err != nil {
		s.logger.Error().Err(err).Int("bundle_id", id).Msg("failed to store bundle")
		return nil, fmt.Errorf("failed to store bundle: %w", err)
	}

	s.logger.Info().
		Int("bundle_id", id).
		Str("strategy", record.Strategy).
		Int("rule_count", len(rules)).
		Msg("bundle stored")

	return record, nil
}

// Delete removes a bundle.
func (s *bundleService) Delete(ctx context.Context, id int) error {
	if s.bundleRepo == nil {
		return model.ErrStoreDisabled
	}

	deleted, err := s.bundleRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int("bundle_id", id).Msg("failed to delete bundle")
		return fmt.Errorf("failed to delete bundle: %w", err)
	}
	if !deleted {
		return model.ErrBundleNotFound
	}

	s.logger.Info().Int("bundle_id", id).Msg("bundle deleted")

	return nil
}

// catalogEntry is one bundle as the storefront writes it into the catalog attribute.
type catalogEntry struct {
	ID    int             `json:"id"`
	Rules json.RawMessage `json:"rules"`
}

// AttributeFor renders the catalog attribute holding only the given bundle.
func (s *bundleService) AttributeFor(ctx context.Context, id int) (*model.Attribute, error) {
	record, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	value, err := json.Marshal([]catalogEntry{{ID: record.ID, Rules: record.Rules}})
	if err != nil {
		s.logger.Error().Err(err).Int("bundle_id", id).Msg("failed to encode catalog attribute")
		return nil, fmt.Errorf("failed to encode catalog attribute: %w", err)
	}

	encoded := string(value)
	return &model.Attribute{Key: s.catalogAttribute, Value: &encoded}, nil
}
