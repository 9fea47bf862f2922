package bundle

import "cart-bundler/internal/model"

func strPtr(s string) *string {
	return &s
}

func variantLine(id, variant string, quantity int, tag string) model.CartLine {
	line := model.CartLine{
		ID:       id,
		Quantity: quantity,
		Merchandise: model.Merchandise{
			Typename: model.MerchandiseTypeProductVariant,
			ID:       variant,
		},
	}
	if tag != "" {
		line.Attribute = &model.Attribute{Key: "zpBundleId", Value: strPtr(tag)}
	}
	return line
}

func cartWith(catalog string, lines ...model.CartLine) *model.Cart {
	return &model.Cart{
		Attribute: &model.Attribute{Key: DefaultCatalogAttribute, Value: strPtr(catalog)},
		Lines:     lines,
	}
}
