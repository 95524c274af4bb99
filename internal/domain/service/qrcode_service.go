package service

import "storefront/internal/domain/entity"

// ReceiptQRData is the payload encoded in a receipt QR code.
type ReceiptQRData struct {
	Type                 string `json:"type"`
	ReceiptID            string `json:"receipt_id"`
	OrderID              string `json:"order_id"`
	TransactionReference string `json:"transaction_reference"`
	AmountPaid           string `json:"amount_paid"`
}

// QRCodeService defines the interface for QR code generation
type QRCodeService interface {
	// GenerateReceiptQR renders a PNG QR code that identifies a receipt
	GenerateReceiptQR(receipt *entity.Receipt) ([]byte, error)
}
