package entity

import (
	"slices"
	"strings"
)

// DefaultLowStockThreshold is the stock level at or below which a product is reported as running low.
const DefaultLowStockThreshold = 5

// CategorySummary aggregates the products of one category.
type CategorySummary struct {
	Category     string `json:"category"`
	ProductCount int    `json:"product_count"`
	TotalStock   int    `json:"total_stock"`
}

// Catalogue is an immutable, in-memory snapshot of all products.
// A new snapshot is built on every load; snapshots are never merged or written back.
type Catalogue struct {
	products []*Product
	byID     map[string]*Product
}

// NewCatalogue builds a snapshot from products, preserving their order.
// When two products share an id, the first one wins.
func NewCatalogue(products []*Product) *Catalogue {
	c := &Catalogue{
		products: make([]*Product, 0, len(products)),
		byID:     make(map[string]*Product, len(products)),
	}
	for _, p := range products {
		if p == nil {
			continue
		}
		if _, dup := c.byID[p.ProductID]; dup {
			continue
		}
		c.products = append(c.products, p)
		c.byID[p.ProductID] = p
	}

	return c
}

// Len returns the number of products in the snapshot.
func (c *Catalogue) Len() int {
	return len(c.products)
}

// ListAll returns every product in load order.
func (c *Catalogue) ListAll() []*Product {
	return slices.Clone(c.products)
}

// ListByCategory returns products whose category equals category, ignoring case.
func (c *Catalogue) ListByCategory(category string) []*Product {
	return c.filter(func(p *Product) bool {
		return strings.EqualFold(p.Category, category)
	})
}

// Search returns products whose name, category or id contains term, ignoring case.
func (c *Catalogue) Search(term string) []*Product {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return c.ListAll()
	}

	return c.filter(func(p *Product) bool {
		return strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) ||
			strings.Contains(strings.ToLower(p.ProductID), needle)
	})
}

// GetByID looks a product up by id.
func (c *Catalogue) GetByID(productID string) (*Product, bool) {
	p, ok := c.byID[productID]

	return p, ok
}

// Available returns products with at least one unit in stock.
func (c *Catalogue) Available() []*Product {
	return c.filter((*Product).InStock)
}

// LowStock returns in-stock products whose stock is at or below threshold.
// A non-positive threshold falls back to DefaultLowStockThreshold.
func (c *Catalogue) LowStock(threshold int) []*Product {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}

	return c.filter(func(p *Product) bool {
		return p.Stock > 0 && p.Stock <= threshold
	})
}

// OutOfStock returns products with no units left.
func (c *Catalogue) OutOfStock() []*Product {
	return c.filter(func(p *Product) bool {
		return p.Stock == 0
	})
}

// Categories aggregates product count and stock per category, sorted by name.
// Categories differing only in case are reported once, under the first spelling seen.
func (c *Catalogue) Categories() []CategorySummary {
	index := make(map[string]int)
	var summaries []CategorySummary
	for _, p := range c.products {
		key := strings.ToLower(p.Category)
		i, ok := index[key]
		if !ok {
			i = len(summaries)
			index[key] = i
			summaries = append(summaries, CategorySummary{Category: p.Category})
		}
		summaries[i].ProductCount++
		summaries[i].TotalStock += p.Stock
	}

	slices.SortFunc(summaries, func(a, b CategorySummary) int {
		return strings.Compare(strings.ToLower(a.Category), strings.ToLower(b.Category))
	})

	return summaries
}

func (c *Catalogue) filter(keep func(*Product) bool) []*Product {
	var out []*Product
	for _, p := range c.products {
		if keep(p) {
			out = append(out, p)
		}
	}

	return out
}
