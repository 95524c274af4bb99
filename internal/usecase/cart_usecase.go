package usecase

import (
	"context"

	"github.com/shopspring/decimal"
)

// CartUsecase defines the interface for cart operations. Every mutation is saved
// with the owning account.
type CartUsecase interface {
	ViewCart(ctx context.Context, username string) (*CartView, error)
	AddToCart(ctx context.Context, username string, input *AddToCartInput) (*CartView, error)
	UpdateCartItem(ctx context.Context, username string, input *UpdateCartItemInput) (*CartView, error)
	RemoveFromCart(ctx context.Context, username, productID string) (*CartView, error)
	ClearCart(ctx context.Context, username string) error
}

// --- Input DTOs ---

// AddToCartInput adds quantity units of a product.
type AddToCartInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

// UpdateCartItemInput sets the quantity of a cart line. Zero removes the line.
type UpdateCartItemInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=0"`
}

// --- Output DTOs ---

// CartLineView is a cart line priced against the current catalogue.
type CartLineView struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
	Stock     int             `json:"stock"`
	Missing   bool            `json:"missing,omitempty"` // Product no longer in the catalogue.
}

// CartView is the priced cart returned to clients.
type CartView struct {
	Username        string          `json:"username"`
	Lines           []CartLineView  `json:"lines"`
	TotalItems      int             `json:"total_items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	MissingProducts []string        `json:"missing_products,omitempty"`
}
