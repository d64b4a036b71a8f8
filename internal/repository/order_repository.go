package repository

import (
	"context"

	"ecshop/internal/domain/model"

	"github.com/shopspring/decimal"
)

type AdminOrderListFilter struct {
	Page   int
	Limit  int
	Status *model.OrderStatus
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	//管理者用の注文一覧
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)

	//ダッシュボード用の集計
	Count(ctx context.Context) (int64, error)
	SumRevenue(ctx context.Context) (decimal.Decimal, error)
	ListRecent(ctx context.Context, limit int) ([]model.Order, error)
}
