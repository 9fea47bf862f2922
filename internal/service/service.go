package service

import (
	"context"

	"cart-bundler/internal/model"
)

// Resolver computes bundle merge operations for a cart snapshot.
type Resolver interface {
	Resolve(cart *model.Cart) (*model.FunctionResult, error)
}

// CartService defines the cart functions exposed to the storefront host.
type CartService interface {
	// Transform resolves the merge operations for a cart.
	Transform(ctx context.Context, input *model.TransformInput) (*model.FunctionResult, error)

	// Discount computes the volume discount for a cart.
	Discount(ctx context.Context, input *model.DiscountInput) (*model.DiscountResult, error)
}

// BundleService defines operations for bundle catalog management.
type BundleService interface {
	// GetAll retrieves stored bundles with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.BundleRecord, error)

	// GetByID retrieves a single bundle by ID.
	GetByID(ctx context.Context, id int) (*model.BundleRecord, error)

	// Put validates and stores a bundle under the given ID.
	Put(ctx context.Context, id int, req *model.BundleRequest) (*model.BundleRecord, error)

	// Delete removes a bundle.
	Delete(ctx context.Context, id int) error

	// AttributeFor renders the cart attribute a storefront attaches to
	// activate the bundle.
	AttributeFor(ctx context.Context, id int) (*model.Attribute, error)
}
