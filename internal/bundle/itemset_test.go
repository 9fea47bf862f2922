package bundle

import (
	"testing"

	"cart-bundler/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemRule(parent string, discount int, items ...RuleItem) ItemSetRule {
	return ItemSetRule{
		ParentProductID: parent,
		Items:           items,
		Discount:        ItemSetDiscount{Value: discount, Type: "percentage"},
	}
}

func TestItemSetStrategy_SelectLines(t *testing.T) {
	cart := &model.Cart{Lines: []model.CartLine{
		variantLine("l1", "A", 1, "1"),
		variantLine("l2", "B", 1, "2"),
		variantLine("l3", "C", 1, ""),
		{ID: "l4", Quantity: 1, Attribute: &model.Attribute{Key: "zpBundleId"}},
		variantLine("l5", "D", 1, "1"),
	}}

	lines, err := itemSetStrategy{}.SelectLines(cart, 1)

	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "l1", lines[0].ID)
	assert.Equal(t, "l5", lines[1].ID)
	assert.Len(t, cart.Lines, 5, "cart must not be modified")
}

func TestItemSetStrategy_Match(t *testing.T) {
	tests := []struct {
		name     string
		rules    []Rule
		lines    []model.CartLine
		expected []SearchResult
	}{
		{
			name:  "All items present",
			rules: []Rule{itemRule("P", 50, RuleItem{"X", 1}, RuleItem{"Y", 1})},
			lines: []model.CartLine{
				variantLine("l1", "X", 1, "1"),
				variantLine("l2", "Y", 1, "1"),
			},
			expected: []SearchResult{
				{
					Rule:  itemRule("P", 50, RuleItem{"X", 1}, RuleItem{"Y", 1}),
					Lines: []model.CartLineInput{{CartLineID: "l1", Quantity: 1}, {CartLineID: "l2", Quantity: 1}},
				},
			},
		},
		{
			name:  "Partial match is discarded",
			rules: []Rule{itemRule("P", 50, RuleItem{"X", 1}, RuleItem{"Y", 1})},
			lines: []model.CartLine{
				variantLine("l1", "X", 1, "1"),
			},
			expected: []SearchResult{},
		},
		{
			name: "Failed larger rule leaves its lines to smaller rules",
			rules: []Rule{
				itemRule("P", 50, RuleItem{"A", 1}, RuleItem{"B", 1}, RuleItem{"C", 1}),
				itemRule("P", 5, RuleItem{"A", 1}),
			},
			lines: []model.CartLine{
				variantLine("l1", "A", 1, "1"),
			},
			expected: []SearchResult{
				{
					Rule:  itemRule("P", 5, RuleItem{"A", 1}),
					Lines: []model.CartLineInput{{CartLineID: "l1", Quantity: 1}},
				},
			},
		},
		{
			name:  "Insufficient quantity never matches",
			rules: []Rule{itemRule("P", 5, RuleItem{"Z", 2})},
			lines: []model.CartLine{
				variantLine("l1", "Z", 1, "1"),
			},
			expected: []SearchResult{},
		},
		{
			name:  "Result quantity is the rule quantity",
			rules: []Rule{itemRule("P", 5, RuleItem{"Z", 2})},
			lines: []model.CartLine{
				variantLine("l1", "Z", 5, "1"),
			},
			expected: []SearchResult{
				{
					Rule:  itemRule("P", 5, RuleItem{"Z", 2}),
					Lines: []model.CartLineInput{{CartLineID: "l1", Quantity: 2}},
				},
			},
		},
		{
			name: "Larger rule wins shared line",
			rules: []Rule{
				itemRule("P", 5, RuleItem{"A", 1}),
				itemRule("P", 20, RuleItem{"A", 1}, RuleItem{"B", 1}),
			},
			lines: []model.CartLine{
				variantLine("l1", "A", 1, "1"),
				variantLine("l2", "B", 1, "1"),
			},
			expected: []SearchResult{
				{
					Rule:  itemRule("P", 20, RuleItem{"A", 1}, RuleItem{"B", 1}),
					Lines: []model.CartLineInput{{CartLineID: "l1", Quantity: 1}, {CartLineID: "l2", Quantity: 1}},
				},
			},
		},
		{
			name: "Equal sizes keep catalog order",
			rules: []Rule{
				itemRule("P1", 10, RuleItem{"A", 1}),
				itemRule("P2", 30, RuleItem{"A", 1}),
			},
			lines: []model.CartLine{
				variantLine("l1", "A", 1, "1"),
			},
			expected: []SearchResult{
				{
					Rule:  itemRule("P1", 10, RuleItem{"A", 1}),
					Lines: []model.CartLineInput{{CartLineID: "l1", Quantity: 1}},
				},
			},
		},
		{
			name:  "Same item twice needs two lines",
			rules: []Rule{itemRule("P", 10, RuleItem{"A", 1}, RuleItem{"A", 1})},
			lines: []model.CartLine{
				variantLine("l1", "A", 3, "1"),
			},
			expected: []SearchResult{},
		},
		{
			name:     "Rule without items never matches",
			rules:    []Rule{itemRule("P", 10)},
			lines:    []model.CartLine{variantLine("l1", "A", 1, "1")},
			expected: []SearchResult{},
		},
		{
			name:  "Non variant merchandise is ignored",
			rules: []Rule{itemRule("P", 10, RuleItem{"A", 1})},
			lines: []model.CartLine{
				{ID: "l1", Quantity: 1, Merchandise: model.Merchandise{Typename: "CustomProduct", ID: "A"}},
			},
			expected: []SearchResult{},
		},
		{
			name:     "No lines",
			rules:    []Rule{itemRule("P", 10, RuleItem{"A", 1})},
			lines:    nil,
			expected: []SearchResult{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := itemSetStrategy{}.Match(tt.lines, &Catalog{ID: 1, Rules: tt.rules})

			require.NoError(t, err)
			assert.Equal(t, tt.expected, results)
		})
	}
}

func TestItemSetStrategy_Match_ConsumesWholeLines(t *testing.T) {
	// Z x3 satisfies the first rule; the second rule finds nothing left even
	// though one unit was never needed.
	rules := []Rule{
		itemRule("P", 5, RuleItem{"Z", 2}),
		itemRule("P", 1, RuleItem{"Z", 1}),
	}
	lines := []model.CartLine{variantLine("l1", "Z", 3, "1")}

	results, err := itemSetStrategy{}.Match(lines, &Catalog{ID: 1, Rules: rules})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 5, results[0].Rule.DiscountPercent())
	assert.Len(t, lines, 1, "input lines must not be modified")
}

func TestItemSetStrategy_Match_RejectsTieredRules(t *testing.T) {
	_, err := itemSetStrategy{}.Match(nil, &Catalog{ID: 1, Rules: []Rule{TieredRule{Discount: 10}}})

	assert.Error(t, err)
}
