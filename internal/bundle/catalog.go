// Package bundle resolves which cart lines merge into discounted bundle
// parents. It is a pure function of the cart snapshot: nothing here performs
// I/O, logs or keeps state between calls.
package bundle

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Strategy selects how lines are matched against a bundle's rules.
type Strategy string

const (
	// StrategyItemSet matches explicit item lists, most specific rule first.
	StrategyItemSet Strategy = "item_set"
	// StrategyGrouped groups lines by their tag and picks a rule by group size.
	StrategyGrouped Strategy = "grouped"
)

// ParseStrategy converts a configuration value into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyItemSet:
		return StrategyItemSet, nil
	case StrategyGrouped:
		return StrategyGrouped, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// Catalog is the active bundle decoded from the cart attribute.
type Catalog struct {
	ID    int
	Rules []Rule
}

// Rule is one of ItemSetRule or TieredRule. A catalog never mixes the two.
type Rule interface {
	// DiscountPercent is the percentage taken off the merged line.
	DiscountPercent() int
	strategy() Strategy
}

// ItemSetRule requires every listed item to be present in the cart.
type ItemSetRule struct {
	ParentProductID string          `json:"parent_product_id"`
	Title           *string         `json:"title,omitempty"`
	Items           []RuleItem      `json:"items"`
	Discount        ItemSetDiscount `json:"discount"`
}

// RuleItem is a required product variant and the quantity it must reach.
type RuleItem struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// ItemSetDiscount is the discount granted by an ItemSetRule.
type ItemSetDiscount struct {
	Value int    `json:"value"`
	Type  string `json:"discount_type"`
}

// DiscountPercent implements Rule.
func (r ItemSetRule) DiscountPercent() int { return r.Discount.Value }

func (ItemSetRule) strategy() Strategy { return StrategyItemSet }

// TieredRule applies to a group whose size equals its position in the catalog.
type TieredRule struct {
	ProductsCount int `json:"productsCount"`
	Discount      int `json:"discount"`
}

// DiscountPercent implements Rule.
func (r TieredRule) DiscountPercent() int { return r.Discount }

func (TieredRule) strategy() Strategy { return StrategyGrouped }

// ValidateBundleID reports whether id can identify a stored bundle.
func ValidateBundleID(id int) error {
	if id <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidBundleID, id)
	}
	return nil
}

// rawBundle is the wire shape of one catalog entry before rule decoding.
type rawBundle struct {
	ID    *int            `json:"id"`
	Rules json.RawMessage `json:"rules"`
}

// Decode parses the catalog attribute value and returns the active bundle.
// The first bundle of the array is active. An empty array yields ErrNoBundle.
func Decode(value string, strategy Strategy) (*Catalog, error) {
	if strings.TrimSpace(value) == "" {
		return nil, &DecodeError{Field: "catalog", Err: errMissingValue}
	}

	if !isArray([]byte(value)) {
		return nil, &DecodeError{Field: "catalog", Err: errNotArray}
	}

	var bundles []rawBundle
	if err := json.Unmarshal([]byte(value), &bundles); err != nil {
		return nil, &DecodeError{Field: "catalog", Err: err}
	}

	if len(bundles) == 0 {
		return nil, ErrNoBundle
	}

	return decodeBundle(bundles[0], strategy)
}

// DecodeRules validates a rule list for the given strategy.
// It is used to check bundles before they are stored.
func DecodeRules(raw json.RawMessage, strategy Strategy) ([]Rule, error) {
	rules, err := splitRules(raw)
	if err != nil {
		return nil, err
	}
	return decodeRules(rules, strategy)
}

// splitRules requires raw to be a JSON array and returns its elements.
func splitRules(raw json.RawMessage) ([]json.RawMessage, error) {
	if !isArray(raw) {
		return nil, &DecodeError{Field: "rules", Err: errNotArray}
	}
	var rules []json.RawMessage
	if err := json.Unmarshal(raw, &rules); err != nil {
		return nil, &DecodeError{Field: "rules", Err: err}
	}
	return rules, nil
}

func isArray(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '['
}

func decodeBundle(raw rawBundle, strategy Strategy) (*Catalog, error) {
	if raw.ID == nil {
		return nil, &DecodeError{Field: "id", Err: errMissingValue}
	}

	list, err := splitRules(raw.Rules)
	if err != nil {
		return nil, err
	}

	rules, err := decodeRules(list, strategy)
	if err != nil {
		return nil, err
	}

	return &Catalog{ID: *raw.ID, Rules: rules}, nil
}

func decodeRules(raw []json.RawMessage, strategy Strategy) ([]Rule, error) {
	rules := make([]Rule, 0, len(raw))
	for i, msg := range raw {
		var (
			rule Rule
			err  error
		)
		switch strategy {
		case StrategyItemSet:
			rule, err = decodeItemSetRule(msg)
		case StrategyGrouped:
			rule, err = decodeTieredRule(msg)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
		}
		if err != nil {
			return nil, &DecodeError{Field: fmt.Sprintf("rules[%d]", i), Err: err}
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// itemSetWire and tieredWire use pointers so absent required keys are detected.
type itemSetWire struct {
	ParentProductID string     `json:"parent_product_id"`
	Title           *string    `json:"title"`
	Items           []RuleItem `json:"items"`
	Discount        *struct {
		Value *int   `json:"value"`
		Type  string `json:"discount_type"`
	} `json:"discount"`
}

type tieredWire struct {
	ProductsCount *int `json:"productsCount"`
	Discount      *int `json:"discount"`
}

func decodeItemSetRule(msg json.RawMessage) (ItemSetRule, error) {
	var wire itemSetWire
	if err := strictUnmarshal(msg, &wire); err != nil {
		return ItemSetRule{}, err
	}

	if wire.ParentProductID == "" {
		return ItemSetRule{}, errors.New("parent_product_id is required")
	}
	for i, item := range wire.Items {
		if item.ID == "" {
			return ItemSetRule{}, fmt.Errorf("items[%d]: id is required", i)
		}
		if item.Quantity <= 0 {
			return ItemSetRule{}, fmt.Errorf("items[%d]: quantity must be positive, got %d", i, item.Quantity)
		}
	}
	if wire.Discount == nil || wire.Discount.Value == nil {
		return ItemSetRule{}, errors.New("discount.value is required")
	}
	if err := checkPercent(*wire.Discount.Value); err != nil {
		return ItemSetRule{}, err
	}

	return ItemSetRule{
		ParentProductID: wire.ParentProductID,
		Title:           wire.Title,
		Items:           wire.Items,
		Discount: ItemSetDiscount{
			Value: *wire.Discount.Value,
			Type:  wire.Discount.Type,
		},
	}, nil
}

func decodeTieredRule(msg json.RawMessage) (TieredRule, error) {
	var wire tieredWire
	if err := strictUnmarshal(msg, &wire); err != nil {
		return TieredRule{}, err
	}

	if wire.Discount == nil {
		return TieredRule{}, errors.New("discount is required")
	}
	if err := checkPercent(*wire.Discount); err != nil {
		return TieredRule{}, err
	}

	rule := TieredRule{Discount: *wire.Discount}
	if wire.ProductsCount != nil {
		if *wire.ProductsCount < 0 {
			return TieredRule{}, fmt.Errorf("productsCount must not be negative, got %d", *wire.ProductsCount)
		}
		rule.ProductsCount = *wire.ProductsCount
	}

	return rule, nil
}

func checkPercent(v int) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("discount must be between 0 and 100, got %d", v)
	}
	return nil
}

// strictUnmarshal rejects unknown keys so one rule shape never decodes as the other.
func strictUnmarshal(msg json.RawMessage, v any) error {
	if len(bytes.TrimSpace(msg)) == 0 || bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
		return errMissingValue
	}
	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
