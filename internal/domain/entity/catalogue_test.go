package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProducts() []*Product {
	return []*Product{
		{ProductID: "P001", Name: "Wireless Mouse", Price: decimal.RequireFromString("10.00"), Category: "Accessories", Stock: 5},
		{ProductID: "P002", Name: "Gaming Laptop", Price: decimal.RequireFromString("1999.99"), Category: "Laptops", Stock: 0},
		{ProductID: "P003", Name: "USB-C Cable", Price: decimal.RequireFromString("4.50"), Category: "accessories", Stock: 40},
		{ProductID: "P004", Name: "Ultrabook", Price: decimal.RequireFromString("1299.00"), Category: "Laptops", Stock: 2},
	}
}

func productIDs(products []*Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ProductID)
	}

	return ids
}

func TestCatalogue_GetByID(t *testing.T) {
	products := testProducts()
	catalogue := NewCatalogue(products)

	for _, want := range products {
		got, ok := catalogue.GetByID(want.ProductID)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := catalogue.GetByID("missing")
	assert.False(t, ok)
}

func TestCatalogue_ListByCategoryIgnoresCase(t *testing.T) {
	catalogue := NewCatalogue(testProducts())

	assert.Equal(t, []string{"P001", "P003"}, productIDs(catalogue.ListByCategory("ACCESSORIES")))
	assert.Equal(t, []string{"P002", "P004"}, productIDs(catalogue.ListByCategory("laptops")))
	assert.Empty(t, catalogue.ListByCategory("lapt"))
}

func TestCatalogue_Search(t *testing.T) {
	catalogue := NewCatalogue(testProducts())

	tests := []struct {
		term string
		want []string
	}{
		{term: "mouse", want: []string{"P001"}},
		{term: "LAPTOP", want: []string{"P002", "P004"}},
		{term: "p00", want: []string{"P001", "P002", "P003", "P004"}},
		{term: "cable", want: []string{"P003"}},
		{term: "   ", want: []string{"P001", "P002", "P003", "P004"}},
		{term: "tablet", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, productIDs(catalogue.Search(tt.term)))
		})
	}
}

func TestCatalogue_StockTiers(t *testing.T) {
	catalogue := NewCatalogue(testProducts())

	assert.Equal(t, []string{"P001", "P003", "P004"}, productIDs(catalogue.Available()))
	assert.Equal(t, []string{"P001", "P004"}, productIDs(catalogue.LowStock(5)))
	assert.Equal(t, []string{"P004"}, productIDs(catalogue.LowStock(2)))
	assert.Equal(t, []string{"P001", "P004"}, productIDs(catalogue.LowStock(0)), "non-positive threshold uses the default")
	assert.Equal(t, []string{"P002"}, productIDs(catalogue.OutOfStock()))
}

func TestCatalogue_Categories(t *testing.T) {
	catalogue := NewCatalogue(testProducts())

	assert.Equal(t, []CategorySummary{
		{Category: "Accessories", ProductCount: 2, TotalStock: 45},
		{Category: "Laptops", ProductCount: 2, TotalStock: 2},
	}, catalogue.Categories())
}

func TestNewCatalogue_FirstDuplicateWins(t *testing.T) {
	first := &Product{ProductID: "P001", Name: "first"}
	second := &Product{ProductID: "P001", Name: "second"}

	catalogue := NewCatalogue([]*Product{first, nil, second})

	assert.Equal(t, 1, catalogue.Len())
	got, _ := catalogue.GetByID("P001")
	assert.Equal(t, "first", got.Name)
}

func TestProduct_Validate(t *testing.T) {
	valid := Product{ProductID: "P001", Name: "Mouse", Price: decimal.NewFromInt(1), Stock: 0}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(p *Product)
		wantErr error
	}{
		{"missing id", func(p *Product) { p.ProductID = " " }, ErrProductIDRequired},
		{"missing name", func(p *Product) { p.Name = "" }, ErrProductNameRequired},
		{"negative price", func(p *Product) { p.Price = decimal.NewFromInt(-1) }, ErrNegativePrice},
		{"negative stock", func(p *Product) { p.Stock = -1 }, ErrNegativeStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), tt.wantErr)
		})
	}
}
