package repository

import (
	"context"

	"ecshop/internal/domain/model"
	repo "ecshop/internal/repository"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// AdjustStockBatch は条件付きUPDATEで在庫を増減する。
// stockが負になる調整はWHERE句で弾かれ、RowsAffected=0で検出する。
// トランザクション内で呼ばれる前提なので、途中で失敗したら
// 返したエラーでロールバックされ、適用済みの分も巻き戻る。
func (r *InventoryGormRepository) AdjustStockBatch(ctx context.Context, adjustments []repo.StockAdjustment) error {
	for _, a := range adjustments {
		res := r.db.WithContext(ctx).
			Model(&model.Product{}).
			Where("id = ? AND stock + ? >= 0", a.ProductID, a.Delta).
			Update("stock", gorm.Expr("stock + ?", a.Delta))

		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &repo.ErrInsufficientStock{ProductID: a.ProductID}
		}
	}
	return nil
}
