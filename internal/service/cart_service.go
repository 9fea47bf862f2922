package service

import (
	"context"
	"errors"
	"fmt"

	"cart-bundler/internal/bundle"
	"cart-bundler/internal/discount"
	"cart-bundler/internal/model"

	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	resolver       Resolver
	volumeDiscount bool
	logger         zerolog.Logger
}

// NewCartService creates a new cart service. The volume discount answers
// with an empty result unless volumeDiscount is set.
func NewCartService(resolver Resolver, volumeDiscount bool, logger zerolog.Logger) CartService {
	return &cartService{
		resolver:       resolver,
		volumeDiscount: volumeDiscount,
		logger:         logger.With().Str("service", "cart").Logger(),
	}
}

// Transform resolves the merge operations for a cart.
func (s *cartService) Transform(ctx context.Context, input *model.TransformInput) (*model.FunctionResult, error) {
	if input == nil {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "cart is required")
	}

	result, err := s.resolver.Resolve(&input.Cart)
	if err != nil {
		var decodeErr *bundle.DecodeError
		if errors.As(err, &decodeErr) {
			s.logger.Warn().
				Err(err).
				Str("field", decodeErr.Field).
				Int("line_count", len(input.Cart.Lines)).
				Msg("failed to decode bundle catalog")
			return nil, model.WrapDomainError(model.ErrCodeInvalidCatalog, "Bundle catalog could not be decoded", err)
		}
		s.logger.Error().Err(err).Msg("failed to resolve bundles")
		return nil, fmt.Errorf("failed to resolve bundles: %w", err)
	}

	s.logger.Debug().
		Int("line_count", len(input.Cart.Lines)).
		Int("operation_count", len(result.Operations)).
		Msg("resolved cart bundles")

	return result, nil
}

// Discount computes the volume discount for a cart.
func (s *cartService) Discount(ctx context.Context, input *model.DiscountInput) (*model.DiscountResult, error) {
	if !s.volumeDiscount {
		s.logger.Debug().Msg("volume discount disabled")
		return model.EmptyDiscountResult(), nil
	}

	if input == nil {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "cart is required")
	}

	result, err := discount.Apply(input)
	if err != nil {
		if errors.Is(err, discount.ErrInvalidConfig) {
			s.logger.Warn().Err(err).Msg("invalid volume discount configuration")
			return nil, model.WrapDomainError(model.ErrCodeInvalidDiscountConfig, "Volume discount configuration is invalid", err)
		}
		s.logger.Error().Err(err).Msg("failed to apply volume discount")
		return nil, fmt.Errorf("failed to apply volume discount: %w", err)
	}

	if len(result.Discounts) == 0 {
		s.logger.Debug().
			Int("line_count", len(input.Cart.Lines)).
			Msg("no cart lines qualify for the volume discount")
		return result, nil
	}

	s.logger.Debug().
		Int("target_count", len(result.Discounts[0].Targets)).
		Msg("volume discount applied")

	return result, nil
}
