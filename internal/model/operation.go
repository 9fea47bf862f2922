package model

// FunctionResult is the list of operations returned to the host for one cart.
type FunctionResult struct {
	Operations []CartOperation `json:"operations"`
}

// CartOperation wraps a single operation. Only merges are produced.
type CartOperation struct {
	Merge *MergeOperation `json:"merge,omitempty"`
}

// MergeOperation combines cart lines into one discounted parent line.
type MergeOperation struct {
	ParentVariantID string           `json:"parentVariantId"`
	Title           *string          `json:"title"`
	CartLines       []CartLineInput  `json:"cartLines"`
	Image           *ImageInput      `json:"image"`
	Price           *PriceAdjustment `json:"price"`
}

// CartLineInput references a cart line claimed by a merge.
type CartLineInput struct {
	CartLineID string `json:"cartLineId"`
	Quantity   int    `json:"quantity"`
}

// ImageInput is reserved for a merged line image.
type ImageInput struct {
	URL string `json:"url"`
}

// PriceAdjustment describes the discount applied to the merged line.
type PriceAdjustment struct {
	PercentageDecrease *PriceAdjustmentValue `json:"percentageDecrease"`
}

// PriceAdjustmentValue carries a decimal value as a string.
type PriceAdjustmentValue struct {
	Value string `json:"value"`
}

// EmptyResult returns a result with a non-nil, empty operation list.
func EmptyResult() *FunctionResult {
	return &FunctionResult{Operations: []CartOperation{}}
}
