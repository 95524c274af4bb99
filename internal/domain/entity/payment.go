package entity

import (
	"strings"

	"github.com/pkg/errors"
)

// PaymentMethod is how the customer pays for an order.
type PaymentMethod string

const (
	PaymentPayPal     PaymentMethod = "paypal"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentCash       PaymentMethod = "cash"
)

const minAccountHolderLen = 2

// IsValid checks if the PaymentMethod is a supported value.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentPayPal, PaymentCreditCard, PaymentCash:
		return true
	default:
		return false
	}
}

// Payment holds the checkout payment choice.
type Payment struct {
	Method        PaymentMethod `json:"method"`
	AccountHolder string        `json:"account_holder"` // PayPal email or cardholder name; unused for cash.
}

// Validate checks the method and, for non-cash payments, the account holder.
func (p Payment) Validate() error {
	if !p.Method.IsValid() {
		return errors.Errorf("unsupported payment method %q", p.Method)
	}
	if p.Method != PaymentCash && len(strings.TrimSpace(p.AccountHolder)) < minAccountHolderLen {
		return errors.New("account holder name is required")
	}

	return nil
}

// Descriptor renders the free-text payment description stored on orders,
// e.g. "PayPal - jane@example.com" or "Cash".
func (p Payment) Descriptor() string {
	holder := strings.TrimSpace(p.AccountHolder)
	switch p.Method {
	case PaymentPayPal:
		return "PayPal - " + holder
	case PaymentCreditCard:
		return "Credit Card - " + holder
	default:
		return "Cash"
	}
}
