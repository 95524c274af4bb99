package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrOrderNotFound is returned when no persisted order has the id.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository is the append-only order history. There is deliberately no
// update or delete operation.
type OrderRepository interface {
	// Append stores a new {order, invoice, receipt} triple.
	Append(ctx context.Context, record *entity.OrderRecord) error

	// FindAll returns the whole history in append order.
	FindAll(ctx context.Context) ([]*entity.OrderRecord, error)

	// FindByUser returns the history of one user in append order.
	FindByUser(ctx context.Context, userID string) ([]*entity.OrderRecord, error)

	// FindByID retrieves one triple by order id.
	FindByID(ctx context.Context, orderID string) (*entity.OrderRecord, error)
}
