// Package entity contains the core business objects of the project.
package entity

// Role separates shoppers from store administrators.
type Role string

const (
	// RoleCustomer indicates a shopper who owns a cart and places orders.
	RoleCustomer Role = "customer"
	// RoleAdmin indicates a store administrator who manages the catalogue.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole reads a stored role. Records written before roles existed, or with an
// unknown value, are treated as customers so they can never gain admin rights.
func ParseRole(s string) Role {
	if role := Role(s); role.IsValid() {
		return role
	}

	return RoleCustomer
}

// Roles is the role set carried in access tokens.
type Roles []Role

// ToStrings converts Roles to []string for JWT compatibility.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}
