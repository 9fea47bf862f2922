package bundle

import (
	"fmt"

	"cart-bundler/internal/model"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// groupedStrategy partitions the tagged lines by tag time and applies the
// rule whose position matches the group size.
type groupedStrategy struct{}

func (groupedStrategy) Strategy() Strategy { return StrategyGrouped }

func (groupedStrategy) SelectLines(cart *model.Cart, bundleID int) ([]model.CartLine, error) {
	return selectGroupedLines(cart, bundleID)
}

func (groupedStrategy) Match(lines []model.CartLine, catalog *Catalog) ([]SearchResult, error) {
	groups := orderedmap.New[string, []model.CartLine]()
	for _, line := range lines {
		tag, ok, err := parseGroupTag(line)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		group, _ := groups.Get(tag.time)
		groups.Set(tag.time, append(group, line))
	}

	results := make([]SearchResult, 0, groups.Len())
	for pair := groups.Oldest(); pair != nil; pair = pair.Next() {
		size := len(pair.Value)
		if size > len(catalog.Rules) {
			continue
		}

		rule, ok := catalog.Rules[size-1].(TieredRule)
		if !ok {
			return nil, fmt.Errorf("rule %d: %T cannot be matched by the %s strategy", size-1, catalog.Rules[size-1], StrategyGrouped)
		}

		result := SearchResult{Rule: rule, Lines: make([]model.CartLineInput, 0, size)}
		for _, line := range pair.Value {
			result.Lines = append(result.Lines, model.CartLineInput{
				CartLineID: line.ID,
				Quantity:   line.Quantity,
			})
		}
		results = append(results, result)
	}

	return results, nil
}
