package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// AdminUsecase defines the interface for catalogue management and reporting.
type AdminUsecase interface {
	AddProduct(ctx context.Context, input *AddProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, productID string, input *UpdateProductInput) (*entity.Product, error)
	UpdateStock(ctx context.Context, productID string, stock int) (*entity.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
	SalesReport(ctx context.Context) (*entity.SalesReport, error)
}

// --- Input DTOs ---

// AddProductInput defines the data required to list a new product.
type AddProductInput struct {
	ProductID   string          `json:"product_id" validate:"required,max=64"`
	Name        string          `json:"name" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category" validate:"required"`
	Stock       int             `json:"stock" validate:"min=0"`
	Description string          `json:"description"`
}

// UpdateProductInput defines the product fields that may change. Nil fields are left as they are.
type UpdateProductInput struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    *string          `json:"category,omitempty" validate:"omitempty,min=1"`
	Stock       *int             `json:"stock,omitempty" validate:"omitempty,min=0"`
	Description *string          `json:"description,omitempty"`
}

// UpdateStockInput sets the units on hand.
type UpdateStockInput struct {
	Stock *int `json:"stock" validate:"required,min=0"`
}
