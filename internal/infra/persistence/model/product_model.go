// Package model holds the GORM persistence models for the PostgreSQL backend.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductModel mirrors the 'products' table.
// It is an exported type so it can be used by the GORM Gen tool from other packages.
type ProductModel struct {
	ProductID   string          `gorm:"type:varchar(64);primaryKey"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null;check:chk_products_price,price >= 0"`
	Category    string          `gorm:"type:varchar(100);index"`
	Stock       int             `gorm:"not null;check:chk_products_stock,stock >= 0"`
	Description string          `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
