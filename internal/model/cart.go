package model

// MerchandiseTypeProductVariant is the only merchandise type bundles can match.
const MerchandiseTypeProductVariant = "ProductVariant"

// TransformInput is the payload the storefront host sends for a cart transform run.
type TransformInput struct {
	Cart Cart `json:"cart"`
}

// Cart is a read-only snapshot of a storefront cart.
type Cart struct {
	// Attribute holds the cart-level attribute carrying the bundle catalog.
	Attribute *Attribute `json:"attribute,omitempty"`
	Lines     []CartLine `json:"lines"`
}

// Attribute is a key/value pair attached to a cart or a cart line.
// Value is nil when the attribute exists but was never assigned.
type Attribute struct {
	Key   string  `json:"key"`
	Value *string `json:"value,omitempty"`
}

// CartLine represents a single line in the cart snapshot.
type CartLine struct {
	ID          string      `json:"id"`
	Quantity    int         `json:"quantity"`
	Attribute   *Attribute  `json:"attribute,omitempty"`
	Merchandise Merchandise `json:"merchandise"`
}

// Merchandise identifies what a cart line is selling.
type Merchandise struct {
	Typename string `json:"__typename"`
	ID       string `json:"id,omitempty"`
}

// VariantID returns the product variant id, or "" for any other merchandise type.
func (m Merchandise) VariantID() string {
	if m.Typename != MerchandiseTypeProductVariant {
		return ""
	}
	return m.ID
}

// AttributeValue returns the line attribute value and whether one is set.
func (l CartLine) AttributeValue() (string, bool) {
	if l.Attribute == nil || l.Attribute.Value == nil {
		return "", false
	}
	return *l.Attribute.Value, true
}
