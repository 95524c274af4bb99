package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// Requester identifies who is asking for order data.
type Requester struct {
	Username string
	IsAdmin  bool // Admins may read every order.
}

// OrderUsecase defines the interface for reading the order history.
type OrderUsecase interface {
	ListOrders(ctx context.Context, username string) ([]*entity.OrderRecord, error)
	GetOrder(ctx context.Context, requester Requester, orderID string) (*entity.OrderRecord, error)
	ReceiptQR(ctx context.Context, requester Requester, orderID string) ([]byte, error)
}
