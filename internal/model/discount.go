package model

// DiscountApplicationStrategy tells the host how to combine discounts.
type DiscountApplicationStrategy string

const (
	DiscountApplicationFirst DiscountApplicationStrategy = "FIRST"
)

// DiscountInput is the payload the host sends for a product discount run.
type DiscountInput struct {
	Cart         Cart          `json:"cart"`
	DiscountNode *DiscountNode `json:"discountNode,omitempty"`
}

// DiscountNode is the discount owning the function configuration.
type DiscountNode struct {
	Metafield *Metafield `json:"metafield,omitempty"`
}

// Metafield holds the JSON-encoded function configuration.
type Metafield struct {
	Value *string `json:"value,omitempty"`
}

// DiscountResult is the response of a product discount run.
type DiscountResult struct {
	DiscountApplicationStrategy DiscountApplicationStrategy `json:"discountApplicationStrategy"`
	Discounts                   []Discount                  `json:"discounts"`
}

// Discount applies one value to a set of targets.
type Discount struct {
	Targets []Target      `json:"targets"`
	Message string        `json:"message,omitempty"`
	Value   DiscountValue `json:"value"`
}

// Target selects what a discount applies to.
type Target struct {
	ProductVariant *ProductVariantTarget `json:"productVariant,omitempty"`
}

// ProductVariantTarget targets every line of a product variant.
type ProductVariantTarget struct {
	ID string `json:"id"`
}

// DiscountValue carries the percentage taken off the targets.
type DiscountValue struct {
	Percentage *Percentage `json:"percentage,omitempty"`
}

// Percentage is a percentage discount value.
type Percentage struct {
	Value float64 `json:"value"`
}

// EmptyDiscountResult returns a result that applies no discount.
func EmptyDiscountResult() *DiscountResult {
	return &DiscountResult{
		DiscountApplicationStrategy: DiscountApplicationFirst,
		Discounts:                   []Discount{},
	}
}
