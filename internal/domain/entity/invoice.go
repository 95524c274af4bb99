package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the billing state of an invoice.
type InvoiceStatus string

const (
	InvoiceGenerated InvoiceStatus = "Generated"
	InvoicePaid      InvoiceStatus = "Paid"
	InvoiceOverdue   InvoiceStatus = "Overdue"
)

// ParseInvoiceStatus reads a stored invoice status, defaulting to Generated.
func ParseInvoiceStatus(s string) InvoiceStatus {
	switch status := InvoiceStatus(s); status {
	case InvoiceGenerated, InvoicePaid, InvoiceOverdue:
		return status
	default:
		return InvoiceGenerated
	}
}

// Invoice is the billing view of an order.
type Invoice struct {
	InvoiceID   string          `json:"invoice_id"`
	OrderID     string          `json:"order_id"`
	UserID      string          `json:"user_id"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	IssuedAt    time.Time       `json:"issued_at"`
	DueDate     time.Time       `json:"due_date"`
	Status      InvoiceStatus   `json:"status"`
	Items       []OrderLineItem `json:"items"`
	Shipping    ShippingInfo    `json:"shipping"`
}

// InvoiceFromOrder derives an invoice from order. Tax is subtotal × taxRate rounded to
// cents; a zero rate yields no tax. The due date is issue time plus dueIn.
func InvoiceFromOrder(order *Order, taxRate decimal.Decimal, dueIn time.Duration, now time.Time) *Invoice {
	subtotal := order.Total
	tax := subtotal.Mul(taxRate).Round(2)

	return &Invoice{
		InvoiceID:   uuid.NewString(),
		OrderID:     order.OrderID,
		UserID:      order.UserID,
		Subtotal:    subtotal,
		TaxRate:     taxRate,
		TaxAmount:   tax,
		TotalAmount: subtotal.Add(tax),
		IssuedAt:    now,
		DueDate:     now.Add(dueIn),
		Status:      InvoiceGenerated,
		Items:       slices.Clone(order.Items),
		Shipping:    order.Shipping,
	}
}

