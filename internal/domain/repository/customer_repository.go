package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/pkg/errors"
)

// Domain-specific errors for customer persistence.
var (
	// ErrCustomerNotFound is returned when no account has the username.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrDuplicateCustomer is returned when the username is already registered.
	ErrDuplicateCustomer = errors.New("customer already exists")
)

// CustomerRepository defines the interface for account persistence. The cart is
// persisted as part of the account.
type CustomerRepository interface {
	// FindByUsername retrieves an account together with its cart.
	FindByUsername(ctx context.Context, username string) (*entity.Customer, error)

	// Create persists a new account.
	Create(ctx context.Context, customer *entity.Customer) error

	// Update saves the profile, password hash and cart of an existing account.
	Update(ctx context.Context, customer *entity.Customer) error
}
