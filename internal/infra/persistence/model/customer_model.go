package model

import "time"

// CustomerModel mirrors the 'customers' table. The cart lives in cart_lines.
type CustomerModel struct {
	Username     string `gorm:"type:varchar(100);primaryKey"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Email        string `gorm:"type:varchar(255)"`
	Role         string `gorm:"type:varchar(20);not null;default:customer"`
	FullName     string `gorm:"type:varchar(255)"`
	Address      string `gorm:"type:text"`
	PhoneNumber  string `gorm:"type:varchar(50)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	CartLines []CartLineModel `gorm:"foreignKey:Username;references:Username;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (CustomerModel) TableName() string {
	return "customers"
}

// CartLineModel mirrors the 'cart_lines' table. Position keeps the order lines were added in.
type CartLineModel struct {
	Username  string `gorm:"type:varchar(100);primaryKey"`
	ProductID string `gorm:"type:varchar(64);primaryKey"`
	Quantity  int    `gorm:"not null;check:chk_cart_lines_quantity,quantity > 0"`
	Position  int    `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (CartLineModel) TableName() string {
	return "cart_lines"
}
