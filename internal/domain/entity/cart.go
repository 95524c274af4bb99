package entity

import "slices"

// CartLine is one product selection in a cart.
type CartLine struct {
	ProductID string `json:"product_id"` // Not checked against the catalogue until checkout.
	Quantity  int    `json:"quantity"`   // Always positive.
}

// Cart is a customer's pending selection. It holds at most one line per product id.
type Cart struct {
	lines []CartLine
}

// NewCart builds a cart from persisted lines, merging duplicates and dropping
// non-positive quantities so the one-line-per-product invariant holds.
func NewCart(lines []CartLine) *Cart {
	c := &Cart{}
	for _, line := range lines {
		if line.Quantity > 0 {
			c.Add(line.ProductID, line.Quantity)
		}
	}

	return c
}

// Add merges quantity into an existing line for productID or appends a new line.
// Non-positive quantities are ignored.
func (c *Cart) Add(productID string, quantity int) {
	if quantity <= 0 {
		return
	}
	if i := c.indexOf(productID); i >= 0 {
		c.lines[i].Quantity += quantity

		return
	}
	c.lines = append(c.lines, CartLine{ProductID: productID, Quantity: quantity})
}

// Remove deletes every line for productID and reports whether one existed.
func (c *Cart) Remove(productID string) bool {
	before := len(c.lines)
	c.lines = slices.DeleteFunc(c.lines, func(l CartLine) bool {
		return l.ProductID == productID
	})

	return len(c.lines) != before
}

// UpdateQuantity sets the quantity for productID; a quantity of zero or less removes the line.
// It reports whether a line for productID existed.
func (c *Cart) UpdateQuantity(productID string, quantity int) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	if quantity <= 0 {
		c.lines = slices.Delete(c.lines, i, i+1)

		return true
	}
	c.lines[i].Quantity = quantity

	return true
}

// QuantityOf returns the quantity held for productID, or zero.
func (c *Cart) QuantityOf(productID string) int {
	if i := c.indexOf(productID); i >= 0 {
		return c.lines[i].Quantity
	}

	return 0
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// TotalItems sums the quantities of every line.
func (c *Cart) TotalItems() int {
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}

	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []CartLine {
	return slices.Clone(c.lines)
}

func (c *Cart) indexOf(productID string) int {
	return slices.IndexFunc(c.lines, func(l CartLine) bool {
		return l.ProductID == productID
	})
}
