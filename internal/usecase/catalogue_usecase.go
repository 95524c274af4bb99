// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// StockFilter narrows a product listing to one stock tier.
type StockFilter string

const (
	StockAll       StockFilter = ""
	StockAvailable StockFilter = "available"
	StockLow       StockFilter = "low"
	StockOut       StockFilter = "out"
)

// CatalogueUsecase defines the interface for catalogue browsing.
type CatalogueUsecase interface {
	LoadCatalogue(ctx context.Context) (*entity.Catalogue, error)
	ListProducts(ctx context.Context, input *ListProductsInput) ([]*entity.Product, error)
	GetProduct(ctx context.Context, productID string) (*entity.Product, error)
	ListCategories(ctx context.Context) ([]entity.CategorySummary, error)
}

// --- Input DTOs ---

// ListProductsInput holds the optional listing filters. Filters combine.
type ListProductsInput struct {
	Category string      `query:"category"`
	Search   string      `query:"q"`
	Stock    StockFilter `query:"stock" validate:"omitempty,oneof=available low out"`
}
