package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64           `gorm:"not null;index" json:"user_id"`
	OrderDate   time.Time       `gorm:"not null;index" json:"order_date"`
	Status      OrderStatus     `gorm:"not null;index" json:"status"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_amount"`

	//配送先スナップショット（注文時点で固定、以後変更しない）
	ShippingName        string `gorm:"type:varchar(100);not null" json:"shipping_name"`
	ShippingPostalCode  string `gorm:"type:varchar(10);not null" json:"shipping_postal_code"`
	ShippingPrefecture  string `gorm:"type:varchar(50);not null" json:"shipping_prefecture"`
	ShippingCity        string `gorm:"type:varchar(100);not null" json:"shipping_city"`
	ShippingAddressLine string `gorm:"type:varchar(200);not null" json:"shipping_address_line"`
	ShippingPhone       string `gorm:"type:varchar(20)" json:"shipping_phone"`
	Notes               string `gorm:"type:varchar(500)" json:"notes"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
