package entity

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ReceiptStatus is the payment state recorded on a receipt.
type ReceiptStatus string

const (
	ReceiptPaid     ReceiptStatus = "Paid"
	ReceiptRefunded ReceiptStatus = "Refunded"
)

// ParseReceiptStatus reads a stored receipt status, defaulting to Paid.
func ParseReceiptStatus(s string) ReceiptStatus {
	if status := ReceiptStatus(s); status == ReceiptRefunded {
		return status
	}

	return ReceiptPaid
}

// PaymentTolerance is the largest difference between amount paid and invoice total
// still accepted as a full payment.
var PaymentTolerance = decimal.New(1, -2)

// ErrAmountMismatch is returned when the amount paid differs from the invoice total.
var ErrAmountMismatch = errors.New("amount paid does not match invoice total")

// Receipt confirms payment of an invoice.
type Receipt struct {
	ReceiptID            string          `json:"receipt_id"`
	InvoiceID            string          `json:"invoice_id"`
	OrderID              string          `json:"order_id"`
	UserID               string          `json:"user_id"`
	PaymentMethod        string          `json:"payment_method"`
	AmountPaid           decimal.Decimal `json:"amount_paid"`
	InvoiceTotal         decimal.Decimal `json:"invoice_total"`
	TransactionReference string          `json:"transaction_reference"`
	IssuedAt             time.Time       `json:"issued_at"`
	Status               ReceiptStatus   `json:"status"`
	Items                []OrderLineItem `json:"items"`
	Shipping             ShippingInfo    `json:"shipping"`
}

// ReceiptFromInvoice derives a receipt for invoice, assuming payment in full.
func ReceiptFromInvoice(invoice *Invoice, paymentMethod string, now time.Time) *Receipt {
	id := uuid.New()

	return &Receipt{
		ReceiptID:            id.String(),
		InvoiceID:            invoice.InvoiceID,
		OrderID:              invoice.OrderID,
		UserID:               invoice.UserID,
		PaymentMethod:        paymentMethod,
		AmountPaid:           invoice.TotalAmount,
		InvoiceTotal:         invoice.TotalAmount,
		TransactionReference: transactionReference(id, now),
		IssuedAt:             now,
		Status:               ReceiptPaid,
		Items:                slices.Clone(invoice.Items),
		Shipping:             invoice.Shipping,
	}
}

// ValidatePayment fails unless |amount paid − invoice total| < PaymentTolerance.
func (r *Receipt) ValidatePayment() error {
	if r.AmountPaid.Sub(r.InvoiceTotal).Abs().LessThan(PaymentTolerance) {
		return nil
	}

	return errors.Wrapf(ErrAmountMismatch, "paid %s, invoice total %s", r.AmountPaid.StringFixed(2), r.InvoiceTotal.StringFixed(2))
}

// transactionReference is cosmetic: TXN-<yyyymmddhhmmss>-<first 8 hex digits of the receipt id>.
func transactionReference(id uuid.UUID, now time.Time) string {
	fragment := strings.ReplaceAll(id.String(), "-", "")[:8]

	return strings.ToUpper("TXN-" + now.UTC().Format("20060102150405") + "-" + fragment)
}
