package bundle

import (
	"errors"
	"fmt"

	"cart-bundler/internal/model"
)

// DefaultCatalogAttribute is the cart attribute storefronts write the catalog to.
const DefaultCatalogAttribute = "zpBundles"

// BundleSelection chooses the active bundle among those in the catalog.
type BundleSelection string

// BundleSelectionFirst activates the first bundle of the catalog array.
const BundleSelectionFirst BundleSelection = "first"

// ParentSource chooses where a merge's parent variant id comes from.
type ParentSource string

const (
	// ParentSourceRule uses the rule's parent_product_id.
	ParentSourceRule ParentSource = "rule"
	// ParentSourceFirstCartLine uses the merchandise of the cart's first line.
	ParentSourceFirstCartLine ParentSource = "first_cart_line"
	// ParentSourceFirstBundleLine uses the merchandise of the first tagged line.
	ParentSourceFirstBundleLine ParentSource = "first_bundle_line"
)

// ParseParentSource converts a configuration value into a ParentSource.
// An empty string yields "" so the engine picks the strategy default.
func ParseParentSource(s string) (ParentSource, error) {
	switch ps := ParentSource(s); ps {
	case "", ParentSourceRule, ParentSourceFirstCartLine, ParentSourceFirstBundleLine:
		return ps, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownParentSource, s)
	}
}

// MatchStrategy selects a bundle's lines from the cart and matches them
// against the bundle rules.
type MatchStrategy interface {
	Strategy() Strategy
	SelectLines(cart *model.Cart, bundleID int) ([]model.CartLine, error)
	Match(lines []model.CartLine, catalog *Catalog) ([]SearchResult, error)
}

// Options configures an Engine. Zero values pick the strategy defaults.
type Options struct {
	Strategy        Strategy
	BundleSelection BundleSelection
	ParentSource    ParentSource
	// CatalogAttribute, when set, must equal the key of the cart attribute.
	CatalogAttribute string
}

// Engine resolves merge operations for a cart. It holds only configuration
// and is safe for concurrent use.
type Engine struct {
	opts    Options
	matcher MatchStrategy
}

// NewEngine validates the options and builds an engine.
func NewEngine(opts Options) (*Engine, error) {
	if opts.Strategy == "" {
		opts.Strategy = StrategyItemSet
	}
	if opts.BundleSelection == "" {
		opts.BundleSelection = BundleSelectionFirst
	}
	if opts.BundleSelection != BundleSelectionFirst {
		return nil, fmt.Errorf("unsupported bundle selection %q", opts.BundleSelection)
	}

	var matcher MatchStrategy
	switch opts.Strategy {
	case StrategyItemSet:
		matcher = itemSetStrategy{}
		if opts.ParentSource == "" {
			opts.ParentSource = ParentSourceRule
		}
	case StrategyGrouped:
		matcher = groupedStrategy{}
		if opts.ParentSource == "" {
			opts.ParentSource = ParentSourceFirstCartLine
		}
		if opts.ParentSource == ParentSourceRule {
			return nil, fmt.Errorf("parent source %q needs rules with a parent product, %s rules have none", ParentSourceRule, StrategyGrouped)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, opts.Strategy)
	}

	if _, err := ParseParentSource(string(opts.ParentSource)); err != nil {
		return nil, err
	}

	return &Engine{opts: opts, matcher: matcher}, nil
}

// Options returns the effective options after defaults were applied.
func (e *Engine) Options() Options {
	return e.opts
}

// Resolve computes the merge operations for a cart snapshot.
//
// A catalog without bundles, or rules that match nothing, yield an empty
// operation list. A missing or malformed catalog or line tag yields a
// *DecodeError and no operations.
func (e *Engine) Resolve(cart *model.Cart) (*model.FunctionResult, error) {
	if cart == nil {
		return nil, &DecodeError{Field: "cart", Err: errMissingValue}
	}

	value, ok := e.catalogValue(cart)
	if !ok {
		return nil, &DecodeError{Field: "catalog", Err: errMissingValue}
	}

	catalog, err := Decode(value, e.opts.Strategy)
	if errors.Is(err, ErrNoBundle) {
		return model.EmptyResult(), nil
	}
	if err != nil {
		return nil, err
	}

	lines, err := e.matcher.SelectLines(cart, catalog.ID)
	if err != nil {
		return nil, err
	}

	results, err := e.matcher.Match(lines, catalog)
	if err != nil {
		return nil, err
	}

	return &model.FunctionResult{
		Operations: buildOperations(results, e.parentOf(cart, lines)),
	}, nil
}

func (e *Engine) catalogValue(cart *model.Cart) (string, bool) {
	attr := cart.Attribute
	if attr == nil || attr.Value == nil {
		return "", false
	}
	if e.opts.CatalogAttribute != "" && attr.Key != "" && attr.Key != e.opts.CatalogAttribute {
		return "", false
	}
	return *attr.Value, true
}

func (e *Engine) parentOf(cart *model.Cart, lines []model.CartLine) func(Rule) string {
	switch e.opts.ParentSource {
	case ParentSourceFirstCartLine:
		parent := firstVariant(cart.Lines)
		return func(Rule) string { return parent }
	case ParentSourceFirstBundleLine:
		parent := firstVariant(lines)
		return func(Rule) string { return parent }
	default:
		return func(r Rule) string {
			if rule, ok := r.(ItemSetRule); ok {
				return rule.ParentProductID
			}
			return ""
		}
	}
}

func firstVariant(lines []model.CartLine) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[0].Merchandise.VariantID()
}
