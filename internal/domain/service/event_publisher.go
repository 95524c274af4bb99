package service

import (
	"context"
	"time"
)

// OrderPlacedEvent is published after a checkout has been committed.
type OrderPlacedEvent struct {
	RequestID string    `json:"request_id,omitempty"` // For distributed tracing
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	Total     string    `json:"total"` // Decimal string, e.g. "30.00"
	ItemCount int       `json:"item_count"`
	PlacedAt  time.Time `json:"placed_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderPlaced publishes an order-placed event for downstream consumers
	PublishOrderPlaced(ctx context.Context, event *OrderPlacedEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
