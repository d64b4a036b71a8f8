package usecase

import (
	"context"
	"errors"
	"net/http"

	"ecshop/internal/domain/model"
	repo "ecshop/internal/repository"
)

type AdminOrderUsecase struct {
	tx repo.TransactionManager
}

func NewAdminOrderUsecase(tx repo.TransactionManager) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx}
}

type AdminOrderListInput struct {
	Page   int
	Limit  int
	Status *int
}

type AdminOrderListOutput struct {
	Orders     []OrderOutput `json:"orders"`
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
}

func (u *AdminOrderUsecase) ListAllOrders(ctx context.Context, in AdminOrderListInput) (AdminOrderListOutput, error) {
	if in.Page <= 0 {
		in.Page = 1
	}
	if in.Limit <= 0 || in.Limit > 100 {
		in.Limit = 20
	}

	var status *model.OrderStatus
	if in.Status != nil {
		s, ok := model.OrderStatusFromInt(*in.Status)
		if !ok {
			return AdminOrderListOutput{}, NewHTTPError(http.StatusBadRequest, "無効な注文ステータスです。")
		}
		status = &s
	}

	var out AdminOrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListAdmin(ctx, repo.AdminOrderListFilter{
			Page:   in.Page,
			Limit:  in.Limit,
			Status: status,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs := make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}

		out = AdminOrderListOutput{
			Orders:     outs,
			TotalCount: total,
			Page:       in.Page,
			Limit:      in.Limit,
		}
		return nil
	})

	if err != nil {
		return AdminOrderListOutput{}, err
	}
	return out, nil
}

// 管理者は所有チェックなしで任意の注文のステータスを変更できる。
// キャンセルでも在庫は戻さない
func (u *AdminOrderUsecase) UpdateAnyOrderStatus(ctx context.Context, orderID int64, status int) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	newStatus, ok := model.OrderStatusFromInt(status)
	if !ok {
		return NewHTTPError(http.StatusBadRequest, "無効な注文ステータスです。")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		err := r.Orders().UpdateStatus(ctx, orderID, newStatus)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "注文が見つかりません。")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}
