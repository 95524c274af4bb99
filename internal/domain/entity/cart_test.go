package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddMergesDuplicateProducts(t *testing.T) {
	cart := NewCart(nil)

	cart.Add("P001", 2)
	cart.Add("P002", 1)
	cart.Add("P001", 3)

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, CartLine{ProductID: "P001", Quantity: 5}, lines[0])
	assert.Equal(t, CartLine{ProductID: "P002", Quantity: 1}, lines[1])
	assert.Equal(t, 6, cart.TotalItems())
}

func TestCart_AddIgnoresNonPositiveQuantity(t *testing.T) {
	cart := NewCart(nil)

	cart.Add("P001", 0)
	cart.Add("P001", -2)

	assert.True(t, cart.IsEmpty())
}

func TestCart_UpdateQuantity(t *testing.T) {
	tests := []struct {
		name      string
		productID string
		quantity  int
		wantFound bool
		wantLines []CartLine
	}{
		{
			name:      "sets quantity",
			productID: "P001",
			quantity:  7,
			wantFound: true,
			wantLines: []CartLine{{ProductID: "P001", Quantity: 7}, {ProductID: "P002", Quantity: 1}},
		},
		{
			name:      "zero removes line",
			productID: "P001",
			quantity:  0,
			wantFound: true,
			wantLines: []CartLine{{ProductID: "P002", Quantity: 1}},
		},
		{
			name:      "negative removes line",
			productID: "P002",
			quantity:  -1,
			wantFound: true,
			wantLines: []CartLine{{ProductID: "P001", Quantity: 2}},
		},
		{
			name:      "unknown product",
			productID: "P999",
			quantity:  3,
			wantFound: false,
			wantLines: []CartLine{{ProductID: "P001", Quantity: 2}, {ProductID: "P002", Quantity: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := NewCart([]CartLine{{ProductID: "P001", Quantity: 2}, {ProductID: "P002", Quantity: 1}})

			found := cart.UpdateQuantity(tt.productID, tt.quantity)

			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantLines, cart.Lines())
		})
	}
}

func TestCart_RemoveAndClear(t *testing.T) {
	cart := NewCart([]CartLine{{ProductID: "P001", Quantity: 2}, {ProductID: "P002", Quantity: 1}})

	assert.True(t, cart.Remove("P001"))
	assert.False(t, cart.Remove("P001"))
	assert.Equal(t, 0, cart.QuantityOf("P001"))
	assert.Equal(t, 1, cart.QuantityOf("P002"))

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.Zero(t, cart.TotalItems())
}

func TestNewCart_NormalisesPersistedLines(t *testing.T) {
	cart := NewCart([]CartLine{
		{ProductID: "P001", Quantity: 1},
		{ProductID: "P002", Quantity: 0},
		{ProductID: "P001", Quantity: 4},
	})

	assert.Equal(t, []CartLine{{ProductID: "P001", Quantity: 5}}, cart.Lines())
}

func TestCart_LinesReturnsCopy(t *testing.T) {
	cart := NewCart([]CartLine{{ProductID: "P001", Quantity: 1}})

	lines := cart.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, cart.QuantityOf("P001"))
}
