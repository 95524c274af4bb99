package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderConfirmed  OrderStatus = "Confirmed"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

// ParseOrderStatus reads a stored order status. Records without a known status
// are treated as pending.
func ParseOrderStatus(s string) OrderStatus {
	switch status := OrderStatus(s); status {
	case OrderPending, OrderConfirmed, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return status
	default:
		return OrderPending
	}
}

// ErrNoOrderItems is returned when an order would be created without items.
var ErrNoOrderItems = errors.New("order must contain at least one item")

// OrderLineItem is a cart line priced at order time. The price is a snapshot and
// does not follow later catalogue changes.
type OrderLineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// LineTotal returns price × quantity.
func (i OrderLineItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the immutable record of a completed checkout.
type Order struct {
	OrderID       string          `json:"order_id"`
	UserID        string          `json:"user_id"`
	Items         []OrderLineItem `json:"items"`
	Shipping      ShippingInfo    `json:"shipping"`
	PaymentMethod string          `json:"payment_method"`
	Total         decimal.Decimal `json:"total"`
	OrderDate     time.Time       `json:"order_date"`
	Status        OrderStatus     `json:"status"`
}

// NewOrder creates a confirmed order with a fresh id. The total is always derived from items.
func NewOrder(userID string, items []OrderLineItem, shipping ShippingInfo, paymentMethod string, now time.Time) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrNoOrderItems
	}

	return &Order{
		OrderID:       uuid.NewString(),
		UserID:        userID,
		Items:         items,
		Shipping:      shipping,
		PaymentMethod: paymentMethod,
		Total:         CalculateTotal(items),
		OrderDate:     now,
		Status:        OrderConfirmed,
	}, nil
}

// CalculateTotal sums price × quantity over items.
func CalculateTotal(items []OrderLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}

	return total
}

// ItemCount sums the quantities of every line item.
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}

	return count
}

// TotalIsConsistent reports whether Total equals the sum of the line totals.
func (o *Order) TotalIsConsistent() bool {
	return o.Total.Equal(CalculateTotal(o.Items))
}

// OrderRecord is the persisted {order, invoice, receipt} triple.
type OrderRecord struct {
	Order   *Order   `json:"order"`
	Invoice *Invoice `json:"invoice"`
	Receipt *Receipt `json:"receipt"`
}
