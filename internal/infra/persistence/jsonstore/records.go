package jsonstore

import (
	"time"

	"storefront/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// The record types below fix the on-disk layout: money is a JSON number and
// field names match the files written by earlier versions of the store.

type productRecord struct {
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	Description string  `json:"description,omitempty"`
}

func toProductDomain(r *productRecord) *entity.Product {
	return &entity.Product{
		ProductID:   r.ProductID,
		Name:        r.Name,
		Price:       decimal.NewFromFloat(r.Price),
		Category:    r.Category,
		Stock:       r.Stock,
		Description: r.Description,
	}
}

func fromProductDomain(p *entity.Product) *productRecord {
	return &productRecord{
		ProductID:   p.ProductID,
		Name:        p.Name,
		Price:       p.Price.InexactFloat64(),
		Category:    p.Category,
		Stock:       p.Stock,
		Description: p.Description,
	}
}

type cartLineRecord struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type userRecord struct {
	Username    string           `json:"username"`
	Password    string           `json:"password"`
	Email       string           `json:"email"`
	Role        string           `json:"role"`
	FullName    string           `json:"full_name,omitempty"`
	Address     string           `json:"address"`
	PhoneNumber string           `json:"phone_number"`
	Cart        []cartLineRecord `json:"cart"`
}

func toCustomerDomain(r *userRecord) *entity.Customer {
	role := entity.ParseRole(r.Role)

	lines := make([]entity.CartLine, 0, len(r.Cart))
	for _, l := range r.Cart {
		lines = append(lines, entity.CartLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	return &entity.Customer{
		Username:     r.Username,
		PasswordHash: r.Password,
		Email:        r.Email,
		Role:         role,
		FullName:     r.FullName,
		Address:      r.Address,
		PhoneNumber:  r.PhoneNumber,
		Cart:         entity.NewCart(lines),
	}
}

func fromCustomerDomain(c *entity.Customer) *userRecord {
	lines := c.EnsureCart().Lines()
	cart := make([]cartLineRecord, 0, len(lines))
	for _, l := range lines {
		cart = append(cart, cartLineRecord{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	return &userRecord{
		Username:    c.Username,
		Password:    c.PasswordHash,
		Email:       c.Email,
		Role:        c.Role.String(),
		FullName:    c.FullName,
		Address:     c.Address,
		PhoneNumber: c.PhoneNumber,
		Cart:        cart,
	}
}

type lineItemRecord struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type shippingRecord struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

type orderRecord struct {
	OrderID       string           `json:"order_id"`
	UserID        string           `json:"user_id"`
	Items         []lineItemRecord `json:"items"`
	Shipping      shippingRecord   `json:"shipping"`
	PaymentMethod string           `json:"payment_method"`
	Total         float64          `json:"total"`
	OrderDate     time.Time        `json:"order_date"`
	Status        string           `json:"status"`
}

type invoiceRecord struct {
	InvoiceID   string           `json:"invoice_id"`
	OrderID     string           `json:"order_id"`
	UserID      string           `json:"user_id"`
	Subtotal    float64          `json:"subtotal"`
	TaxRate     float64          `json:"tax_rate"`
	TaxAmount   float64          `json:"tax_amount"`
	TotalAmount float64          `json:"total_amount"`
	IssuedAt    time.Time        `json:"issued_at"`
	DueDate     time.Time        `json:"due_date"`
	Status      string           `json:"status"`
	Items       []lineItemRecord `json:"items"`
	Shipping    shippingRecord   `json:"shipping"`
}

type receiptRecord struct {
	ReceiptID            string           `json:"receipt_id"`
	InvoiceID            string           `json:"invoice_id"`
	OrderID              string           `json:"order_id"`
	UserID               string           `json:"user_id"`
	PaymentMethod        string           `json:"payment_method"`
	AmountPaid           float64          `json:"amount_paid"`
	InvoiceTotal         float64          `json:"invoice_total"`
	TransactionReference string           `json:"transaction_reference"`
	IssuedAt             time.Time        `json:"issued_at"`
	Status               string           `json:"status"`
	Items                []lineItemRecord `json:"items"`
	Shipping             shippingRecord   `json:"shipping"`
}

type orderEnvelope struct {
	Order   *orderRecord   `json:"order"`
	Invoice *invoiceRecord `json:"invoice"`
	Receipt *receiptRecord `json:"receipt"`
}

func money(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func toItemsDomain(items []lineItemRecord) []entity.OrderLineItem {
	out := make([]entity.OrderLineItem, 0, len(items))
	for _, i := range items {
		out = append(out, entity.OrderLineItem{
			ProductID: i.ProductID,
			Name:      i.Name,
			Price:     money(i.Price),
			Quantity:  i.Quantity,
		})
	}

	return out
}

func fromItemsDomain(items []entity.OrderLineItem) []lineItemRecord {
	out := make([]lineItemRecord, 0, len(items))
	for _, i := range items {
		out = append(out, lineItemRecord{
			ProductID: i.ProductID,
			Name:      i.Name,
			Price:     i.Price.InexactFloat64(),
			Quantity:  i.Quantity,
		})
	}

	return out
}

func toShippingDomain(s shippingRecord) entity.ShippingInfo {
	return entity.ShippingInfo(s)
}

func fromShippingDomain(s entity.ShippingInfo) shippingRecord {
	return shippingRecord(s)
}

func toOrderRecordDomain(env *orderEnvelope) *entity.OrderRecord {
	record := &entity.OrderRecord{}

	if o := env.Order; o != nil {
		record.Order = &entity.Order{
			OrderID:       o.OrderID,
			UserID:        o.UserID,
			Items:         toItemsDomain(o.Items),
			Shipping:      toShippingDomain(o.Shipping),
			PaymentMethod: o.PaymentMethod,
			Total:         money(o.Total),
			OrderDate:     o.OrderDate,
			Status:        entity.ParseOrderStatus(o.Status),
		}
	}

	if i := env.Invoice; i != nil {
		record.Invoice = &entity.Invoice{
			InvoiceID:   i.InvoiceID,
			OrderID:     i.OrderID,
			UserID:      i.UserID,
			Subtotal:    money(i.Subtotal),
			TaxRate:     money(i.TaxRate),
			TaxAmount:   money(i.TaxAmount),
			TotalAmount: money(i.TotalAmount),
			IssuedAt:    i.IssuedAt,
			DueDate:     i.DueDate,
			Status:      entity.ParseInvoiceStatus(i.Status),
			Items:       toItemsDomain(i.Items),
			Shipping:    toShippingDomain(i.Shipping),
		}
	}

	if r := env.Receipt; r != nil {
		record.Receipt = &entity.Receipt{
			ReceiptID:            r.ReceiptID,
			InvoiceID:            r.InvoiceID,
			OrderID:              r.OrderID,
			UserID:               r.UserID,
			PaymentMethod:        r.PaymentMethod,
			AmountPaid:           money(r.AmountPaid),
			InvoiceTotal:         money(r.InvoiceTotal),
			TransactionReference: r.TransactionReference,
			IssuedAt:             r.IssuedAt,
			Status:               entity.ParseReceiptStatus(r.Status),
			Items:                toItemsDomain(r.Items),
			Shipping:             toShippingDomain(r.Shipping),
		}
	}

	return record
}

func fromOrderRecordDomain(record *entity.OrderRecord) *orderEnvelope {
	env := &orderEnvelope{}

	if o := record.Order; o != nil {
		env.Order = &orderRecord{
			OrderID:       o.OrderID,
			UserID:        o.UserID,
			Items:         fromItemsDomain(o.Items),
			Shipping:      fromShippingDomain(o.Shipping),
			PaymentMethod: o.PaymentMethod,
			Total:         o.Total.InexactFloat64(),
			OrderDate:     o.OrderDate,
			Status:        string(o.Status),
		}
	}

	if i := record.Invoice; i != nil {
		env.Invoice = &invoiceRecord{
			InvoiceID:   i.InvoiceID,
			OrderID:     i.OrderID,
			UserID:      i.UserID,
			Subtotal:    i.Subtotal.InexactFloat64(),
			TaxRate:     i.TaxRate.InexactFloat64(),
			TaxAmount:   i.TaxAmount.InexactFloat64(),
			TotalAmount: i.TotalAmount.InexactFloat64(),
			IssuedAt:    i.IssuedAt,
			DueDate:     i.DueDate,
			Status:      string(i.Status),
			Items:       fromItemsDomain(i.Items),
			Shipping:    fromShippingDomain(i.Shipping),
		}
	}

	if r := record.Receipt; r != nil {
		env.Receipt = &receiptRecord{
			ReceiptID:            r.ReceiptID,
			InvoiceID:            r.InvoiceID,
			OrderID:              r.OrderID,
			UserID:               r.UserID,
			PaymentMethod:        r.PaymentMethod,
			AmountPaid:           r.AmountPaid.InexactFloat64(),
			InvoiceTotal:         r.InvoiceTotal.InexactFloat64(),
			TransactionReference: r.TransactionReference,
			IssuedAt:             r.IssuedAt,
			Status:               string(r.Status),
			Items:                fromItemsDomain(r.Items),
			Shipping:             fromShippingDomain(r.Shipping),
		}
	}

	return env
}
