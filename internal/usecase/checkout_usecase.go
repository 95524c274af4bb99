package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// CheckoutUsecase turns a customer's cart into a persisted order, invoice and receipt.
type CheckoutUsecase interface {
	Checkout(ctx context.Context, input *CheckoutInput) (*entity.OrderRecord, error)
}

// --- Input DTOs ---

// CheckoutInput defines the data required to place an order.
type CheckoutInput struct {
	Username string              `json:"-" validate:"required"`
	Shipping entity.ShippingInfo `json:"shipping"`
	Payment  entity.Payment      `json:"payment"`
}
