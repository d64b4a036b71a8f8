package repository

import (
	"context"
	"errors"

	"ecshop/internal/domain/model"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type ProductListQuery struct {
	Search    string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	SortBy    string // price / name / date
	SortOrder string // asc / desc
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error

	Count(ctx context.Context) (int64, error)
	ListLowStock(ctx context.Context, threshold int64, limit int) ([]model.Product, error)
}
