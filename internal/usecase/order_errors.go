package usecase

import (
	"errors"
	"fmt"
)

// カートが空
var ErrEmptyCart = errors.New("カートが空です。")

// カートの明細が存在しない商品を参照している
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Product with ID %d not found.", e.ProductID)
}

// 在庫不足。検証時と在庫減算時のどちらで検出しても同じ型で返す
type InsufficientStockError struct {
	ProductID   int64
	ProductName string
	Available   int64
	Requested   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf(
		"Insufficient stock for product %s. Available: %d, Requested: %d",
		e.ProductName, e.Available, e.Requested,
	)
}
