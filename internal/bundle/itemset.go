package bundle

import (
	"fmt"
	"slices"
	"sort"

	"cart-bundler/internal/model"
)

// itemSetStrategy matches explicit item lists against the tagged lines.
//
// Lines are claimed whole: a line holding more than a rule needs is still
// removed from the pool entirely once the rule matches.
type itemSetStrategy struct{}

func (itemSetStrategy) Strategy() Strategy { return StrategyItemSet }

func (itemSetStrategy) SelectLines(cart *model.Cart, bundleID int) ([]model.CartLine, error) {
	return selectTaggedLines(cart, bundleID), nil
}

func (itemSetStrategy) Match(lines []model.CartLine, catalog *Catalog) ([]SearchResult, error) {
	rules := make([]ItemSetRule, 0, len(catalog.Rules))
	for i, r := range catalog.Rules {
		rule, ok := r.(ItemSetRule)
		if !ok {
			return nil, fmt.Errorf("rule %d: %T cannot be matched by the %s strategy", i, r, StrategyItemSet)
		}
		rules = append(rules, rule)
	}

	// More specific rules claim shared lines first; ties keep catalog order.
	sort.SliceStable(rules, func(i, j int) bool {
		return len(rules[i].Items) > len(rules[j].Items)
	})

	working := slices.Clone(lines)
	results := make([]SearchResult, 0)

	for _, rule := range rules {
		if len(working) == 0 {
			break
		}

		claimed, ok := claimLines(working, rule)
		if !ok {
			continue
		}

		result := SearchResult{Rule: rule, Lines: make([]model.CartLineInput, 0, len(claimed))}
		for i, idx := range claimed {
			result.Lines = append(result.Lines, model.CartLineInput{
				CartLineID: working[idx].ID,
				Quantity:   rule.Items[i].Quantity,
			})
		}
		results = append(results, result)

		working = removeIndices(working, claimed)
	}

	return results, nil
}

// claimLines finds one line per rule item, first fit in pool order.
// It returns the pool indices in item order, or false if any item is unmet.
func claimLines(pool []model.CartLine, rule ItemSetRule) ([]int, bool) {
	if len(rule.Items) == 0 {
		return nil, false
	}

	claimed := make([]int, 0, len(rule.Items))
	taken := make(map[int]struct{}, len(rule.Items))

	for _, item := range rule.Items {
		found := -1
		for idx, line := range pool {
			if _, used := taken[idx]; used {
				continue
			}
			if line.Merchandise.VariantID() == item.ID && line.Quantity >= item.Quantity {
				found = idx
				break
			}
		}
		if found < 0 {
			return nil, false
		}
		taken[found] = struct{}{}
		claimed = append(claimed, found)
	}

	return claimed, true
}

func removeIndices(lines []model.CartLine, indices []int) []model.CartLine {
	drop := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		drop[idx] = struct{}{}
	}

	kept := lines[:0:0]
	for idx, line := range lines {
		if _, ok := drop[idx]; !ok {
			kept = append(kept, line)
		}
	}
	return kept
}
