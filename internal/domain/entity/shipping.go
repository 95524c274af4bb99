package entity

import (
	"strings"

	"github.com/pkg/errors"
)

// DefaultCountry is assumed when a shipping address omits the country.
const DefaultCountry = "Australia"

// Minimum field lengths for shipping details.
const (
	minShippingNameLen    = 2
	minShippingAddressLen = 5
	minShippingPhoneLen   = 10
)

// ShippingInfo is the delivery destination captured on an order.
type ShippingInfo struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Normalize trims every field and applies the default country.
func (s ShippingInfo) Normalize() ShippingInfo {
	out := ShippingInfo{
		Name:       strings.TrimSpace(s.Name),
		Address:    strings.TrimSpace(s.Address),
		Phone:      strings.TrimSpace(s.Phone),
		City:       strings.TrimSpace(s.City),
		State:      strings.TrimSpace(s.State),
		PostalCode: strings.TrimSpace(s.PostalCode),
		Country:    strings.TrimSpace(s.Country),
	}
	if out.Country == "" {
		out.Country = DefaultCountry
	}

	return out
}

// Validate returns every problem with the shipping details joined into one error, or nil.
func (s ShippingInfo) Validate() error {
	var problems []string
	if len(strings.TrimSpace(s.Name)) < minShippingNameLen {
		problems = append(problems, "name is required")
	}
	if len(strings.TrimSpace(s.Address)) < minShippingAddressLen {
		problems = append(problems, "address is required")
	}
	if len(strings.TrimSpace(s.Phone)) < minShippingPhoneLen {
		problems = append(problems, "valid phone number is required")
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}

	return nil
}

// FormattedAddress joins the non-empty address parts with commas.
func (s ShippingInfo) FormattedAddress() string {
	parts := make([]string, 0, 5)
	for _, part := range []string{s.Address, s.City, s.State, s.PostalCode, s.Country} {
		if part != "" {
			parts = append(parts, part)
		}
	}

	return strings.Join(parts, ", ")
}
