package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 商品名・説明・単価は注文時点のスナップショット。商品が後から
// 変更・削除されても明細は変わらない。
type OrderItem struct {
	ID                 int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID            int64           `gorm:"not null;index" json:"order_id"`
	ProductID          int64           `gorm:"not null;index" json:"product_id"`
	Quantity           int64           `gorm:"not null" json:"quantity"`
	Price              decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	ProductName        string          `gorm:"type:varchar(200);not null" json:"product_name"`
	ProductDescription string          `gorm:"type:varchar(1000)" json:"product_description"`
	CreatedAt          time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}

// Subtotalは単価×数量
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}
