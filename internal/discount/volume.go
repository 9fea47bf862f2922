// Package discount implements the quantity-threshold product discount that
// ships alongside the bundle transform.
package discount

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cart-bundler/internal/model"
)

// ErrInvalidConfig indicates the discount metafield could not be decoded.
var ErrInvalidConfig = errors.New("invalid volume discount configuration")

// Config is the volume discount configuration stored on the discount node.
type Config struct {
	// Quantity is the minimum line quantity that qualifies.
	Quantity int `json:"quantity"`
	// Percentage is taken off every qualifying variant.
	Percentage float64 `json:"percentage"`
}

// Active reports whether both settings are present.
func (c Config) Active() bool {
	return c.Quantity > 0 && c.Percentage > 0
}

// ParseConfig reads the configuration from the discount node metafield.
// A missing metafield yields the zero Config.
func ParseConfig(input *model.DiscountInput) (Config, error) {
	var cfg Config
	if input == nil || input.DiscountNode == nil || input.DiscountNode.Metafield == nil || input.DiscountNode.Metafield.Value == nil {
		return cfg, nil
	}

	raw := strings.TrimSpace(*input.DiscountNode.Metafield.Value)
	if raw == "" {
		return cfg, nil
	}

	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if cfg.Percentage > 100 {
		return Config{}, fmt.Errorf("%w: percentage must not exceed 100, got %v", ErrInvalidConfig, cfg.Percentage)
	}

	return cfg, nil
}

// Apply computes the volume discount for a cart. It always returns a
// non-nil result; a cart with nothing to discount yields no discounts.
func Apply(input *model.DiscountInput) (*model.DiscountResult, error) {
	cfg, err := ParseConfig(input)
	if err != nil {
		return nil, err
	}

	if !cfg.Active() {
		return model.EmptyDiscountResult(), nil
	}

	targets := Targets(input.Cart.Lines, cfg.Quantity)
	if len(targets) == 0 {
		return model.EmptyDiscountResult(), nil
	}

	return &model.DiscountResult{
		DiscountApplicationStrategy: model.DiscountApplicationFirst,
		Discounts: []model.Discount{
			PercentageDiscount(cfg.Percentage, targets),
		},
	}, nil
}

// Targets returns one product variant target per line reaching minQuantity.
func Targets(lines []model.CartLine, minQuantity int) []model.Target {
	targets := make([]model.Target, 0, len(lines))
	for _, line := range lines {
		id := line.Merchandise.VariantID()
		if id == "" || line.Quantity < minQuantity {
			continue
		}
		targets = append(targets, model.Target{
			ProductVariant: &model.ProductVariantTarget{ID: id},
		})
	}
	return targets
}

// PercentageDiscount builds a percentage discount over the targets.
func PercentageDiscount(value float64, targets []model.Target) model.Discount {
	return model.Discount{
		Targets: targets,
		Message: fmt.Sprintf("-%s%% off", formatNumber(value)),
		Value: model.DiscountValue{
			Percentage: &model.Percentage{Value: value},
		},
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
