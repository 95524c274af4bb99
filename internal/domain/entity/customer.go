package entity

import "strings"

// Customer is a store account. Despite the name it also covers administrators;
// the Role field tells them apart.
type Customer struct {
	Username     string // Unique login name and the user id stamped on orders.
	PasswordHash string // bcrypt hash. Legacy records may still hold plaintext until the next login.
	Email        string
	Role         Role
	FullName     string
	Address      string
	PhoneNumber  string
	Cart         *Cart // Persisted with the account; every mutation saves the record.
}

// NewCustomer creates a customer account with an empty cart.
func NewCustomer(username, passwordHash, email string, role Role) *Customer {
	return &Customer{
		Username:     strings.TrimSpace(username),
		PasswordHash: passwordHash,
		Email:        strings.TrimSpace(email),
		Role:         role,
		Cart:         NewCart(nil),
	}
}

// IsAdmin reports whether the account manages the catalogue.
func (c *Customer) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// Roles returns the account roles for token claims.
func (c *Customer) Roles() Roles {
	return Roles{c.Role}
}

// EnsureCart guarantees a non-nil cart.
func (c *Customer) EnsureCart() *Cart {
	if c.Cart == nil {
		c.Cart = NewCart(nil)
	}

	return c.Cart
}
