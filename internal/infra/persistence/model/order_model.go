package model

import (
	"time"

	"storefront/internal/domain/entity"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderRecordModel mirrors the append-only 'order_records' table. The invoice and
// receipt travel with the order in a single JSONB payload; the searchable order
// fields are copied into their own columns.
type OrderRecordModel struct {
	OrderID   string                                 `gorm:"type:varchar(36);primaryKey"`
	UserID    string                                 `gorm:"type:varchar(100);not null;index"`
	Total     decimal.Decimal                        `gorm:"type:numeric(12,2);not null"`
	Status    string                                 `gorm:"type:varchar(20);not null"`
	OrderDate time.Time                              `gorm:"not null;index"`
	Payload   datatypes.JSONType[entity.OrderRecord] `gorm:"type:jsonb;not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderRecordModel) TableName() string {
	return "order_records"
}
