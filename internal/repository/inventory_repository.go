package repository

import "context"

// 在庫の増減指示（deltaは減算なら負）
type StockAdjustment struct {
	ProductID int64
	Delta     int64
}

// ErrInsufficientStockは在庫が足りず適用できなかったことを表す
type ErrInsufficientStock struct {
	ProductID int64
}

func (e *ErrInsufficientStock) Error() string {
	return "insufficient stock"
}

type InventoryRepository interface {
	// 全件適用できるときだけ在庫を増減する。1件でも在庫が負になる
	// 調整があれば *ErrInsufficientStock を返し、何も適用しない
	// （トランザクション内で呼ぶことが前提）。
	AdjustStockBatch(ctx context.Context, adjustments []StockAdjustment) error
}
