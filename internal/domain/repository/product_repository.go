// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/pkg/errors"
)

// Domain-specific errors for product persistence.
var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateProduct is returned when trying to create a product whose id is taken.
	ErrDuplicateProduct = errors.New("product already exists")
	// ErrInsufficientStock is returned when a stock decrement would go below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductRepository defines the interface for catalogue persistence.
type ProductRepository interface {
	// FindAll returns every valid product in stored order. Records that cannot be
	// decoded or fail validation are skipped, never returned.
	FindAll(ctx context.Context) ([]*entity.Product, error)

	// FindByID retrieves a product by its id.
	FindByID(ctx context.Context, productID string) (*entity.Product, error)

	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// Update replaces every field of an existing product.
	Update(ctx context.Context, product *entity.Product) error

	// DecrementStock removes quantity units from a product, failing with
	// ErrInsufficientStock instead of going negative.
	DecrementStock(ctx context.Context, productID string, quantity int) error

	// Delete removes a product.
	Delete(ctx context.Context, productID string) error
}
