package bundle

import (
	"fmt"
	"strconv"

	"cart-bundler/internal/model"
)

// SearchResult pairs a satisfied rule with the lines it claimed.
type SearchResult struct {
	Rule  Rule
	Lines []model.CartLineInput
}

// buildOperations turns search results into merge operations.
// parentOf picks the parent variant for each result's rule.
func buildOperations(results []SearchResult, parentOf func(Rule) string) []model.CartOperation {
	operations := make([]model.CartOperation, 0, len(results))
	for _, result := range results {
		operations = append(operations, model.CartOperation{
			Merge: &model.MergeOperation{
				ParentVariantID: parentOf(result.Rule),
				Title:           titleFor(result.Rule),
				CartLines:       result.Lines,
				Image:           nil,
				Price: &model.PriceAdjustment{
					PercentageDecrease: &model.PriceAdjustmentValue{
						Value: strconv.Itoa(result.Rule.DiscountPercent()),
					},
				},
			},
		})
	}
	return operations
}

// titleFor returns the merged line title. Tiered rules never carry one.
func titleFor(rule Rule) *string {
	r, ok := rule.(ItemSetRule)
	if !ok {
		return nil
	}
	if r.Title != nil {
		title := *r.Title
		return &title
	}
	title := SynthesizeTitle(len(r.Items), r.Discount.Value)
	return &title
}

// SynthesizeTitle builds the fallback title for a bundle without one.
func SynthesizeTitle(items, discount int) string {
	count := "1 item"
	if items != 1 {
		count = fmt.Sprintf("%d items", items)
	}
	return fmt.Sprintf("My custom bundle: %s (-%d%% off)", count, discount)
}
