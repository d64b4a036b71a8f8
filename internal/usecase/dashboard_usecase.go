package usecase

import (
	"context"
	"net/http"
	"time"

	"ecshop/internal/domain/model"
	repo "ecshop/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	lowStockThreshold = 5
	recentOrdersCount = 5
	lowStockCount     = 5
)

type DashboardUsecase struct {
	tx       repo.TransactionManager
	userRepo repo.UserRepository
}

func NewDashboardUsecase(tx repo.TransactionManager, userRepo repo.UserRepository) *DashboardUsecase {
	return &DashboardUsecase{tx: tx, userRepo: userRepo}
}

type DashboardSummary struct {
	TotalUsers    int64           `json:"total_users"`
	TotalProducts int64           `json:"total_products"`
	TotalOrders   int64           `json:"total_orders"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

type RecentOrderOutput struct {
	ID           int64           `json:"id"`
	OrderDate    time.Time       `json:"order_date"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	ShippingName string          `json:"shipping_name"`
	StatusText   string          `json:"status_text"`
	ItemCount    int             `json:"item_count"`
}

type DashboardOutput struct {
	Summary          DashboardSummary    `json:"summary"`
	RecentOrders     []RecentOrderOutput `json:"recent_orders"`
	LowStockProducts []model.Product     `json:"low_stock_products"`
}

// GetDashboardは管理画面トップの集計。売上はキャンセル分を除く
func (u *DashboardUsecase) GetDashboard(ctx context.Context) (DashboardOutput, error) {
	totalUsers, err := u.userRepo.Count(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var out DashboardOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		totalProducts, err := r.Products().Count(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		totalOrders, err := r.Orders().Count(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		totalRevenue, err := r.Orders().SumRevenue(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		recent, err := r.Orders().ListRecent(ctx, recentOrdersCount)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		recentOuts := make([]RecentOrderOutput, 0, len(recent))
		for _, o := range recent {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			recentOuts = append(recentOuts, RecentOrderOutput{
				ID:           o.ID,
				OrderDate:    o.OrderDate,
				TotalAmount:  o.TotalAmount,
				ShippingName: o.ShippingName,
				StatusText:   o.Status.Label(),
				ItemCount:    len(items),
			})
		}

		lowStock, err := r.Products().ListLowStock(ctx, lowStockThreshold, lowStockCount)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = DashboardOutput{
			Summary: DashboardSummary{
				TotalUsers:    totalUsers,
				TotalProducts: totalProducts,
				TotalOrders:   totalOrders,
				TotalRevenue:  totalRevenue,
			},
			RecentOrders:     recentOuts,
			LowStockProducts: lowStock,
		}
		return nil
	})

	if err != nil {
		return DashboardOutput{}, err
	}
	return out, nil
}
