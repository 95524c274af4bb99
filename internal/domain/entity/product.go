// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Validation errors for products.
var (
	ErrProductIDRequired   = errors.New("product id is required")
	ErrProductNameRequired = errors.New("product name is required")
	ErrNegativePrice       = errors.New("price must not be negative")
	ErrNegativeStock       = errors.New("stock must not be negative")
)

// Product is a sellable item in the catalogue.
type Product struct {
	ProductID   string          `json:"product_id"`            // Unique product key, e.g. "P001".
	Name        string          `json:"name"`                  // Display name.
	Price       decimal.Decimal `json:"price"`                 // Current unit price, never negative.
	Category    string          `json:"category"`              // Free-text category used for browsing.
	Stock       int             `json:"stock"`                 // Units on hand, never negative.
	Description string          `json:"description,omitempty"` // Optional long description.
}

// Validate checks the product invariants.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.ProductID) == "" {
		return ErrProductIDRequired
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrProductNameRequired
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.Stock < 0 {
		return ErrNegativeStock
	}

	return nil
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// CanFulfil reports whether the current stock covers quantity units.
func (p *Product) CanFulfil(quantity int) bool {
	return quantity > 0 && p.Stock >= quantity
}
