package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleCustomer, ParseRole("customer"))
	assert.Equal(t, RoleCustomer, ParseRole(""))
	assert.Equal(t, RoleCustomer, ParseRole("superuser"))
}

func TestCustomer_Roles(t *testing.T) {
	admin := NewCustomer(" root ", "hash", "", RoleAdmin)

	assert.Equal(t, "root", admin.Username)
	assert.True(t, admin.IsAdmin())
	assert.Equal(t, []string{"admin"}, admin.Roles().ToStrings())
	assert.True(t, admin.Cart.IsEmpty())
}

func TestCustomer_EnsureCart(t *testing.T) {
	legacy := &Customer{Username: "ada"}

	cart := legacy.EnsureCart()

	assert.NotNil(t, cart)
	assert.Same(t, cart, legacy.EnsureCart())
}
