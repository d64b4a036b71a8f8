package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"ecshop/internal/domain/model"
	repo "ecshop/internal/repository"

	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type CartLineInput struct {
	ProductID int64
	Quantity  int64
}

type ShippingDetailsInput struct {
	Name        string
	PostalCode  string
	Prefecture  string
	City        string
	AddressLine string
	Phone       string
	Notes       string
}

type PlaceOrderInput struct {
	Items    []CartLineInput
	Shipping ShippingDetailsInput
}

type OrderItemOutput struct {
	ID                 int64           `json:"id"`
	ProductID          int64           `json:"product_id"`
	ProductName        string          `json:"product_name"`
	ProductDescription string          `json:"product_description"`
	Quantity           int64           `json:"quantity"`
	Price              decimal.Decimal `json:"price"`
	Subtotal           decimal.Decimal `json:"subtotal"`
}

type OrderOutput struct {
	ID                  int64             `json:"id"`
	UserID              int64             `json:"user_id"`
	OrderDate           time.Time         `json:"order_date"`
	Status              int               `json:"status"`
	StatusText          string            `json:"status_text"`
	TotalAmount         decimal.Decimal   `json:"total_amount"`
	ShippingName        string            `json:"shipping_name"`
	ShippingPostalCode  string            `json:"shipping_postal_code"`
	ShippingPrefecture  string            `json:"shipping_prefecture"`
	ShippingCity        string            `json:"shipping_city"`
	ShippingAddressLine string            `json:"shipping_address_line"`
	ShippingPhone       string            `json:"shipping_phone,omitempty"`
	Notes               string            `json:"notes,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
	Items               []OrderItemOutput `json:"items"`
}

type OrderSummaryOutput struct {
	ID          int64           `json:"id"`
	OrderDate   time.Time       `json:"order_date"`
	Status      int             `json:"status"`
	StatusText  string          `json:"status_text"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
}

// PlaceOrderはカートを検証して在庫を減らし、注文を確定する。
// 全明細の検証が通るまでは一切書き込まない（途中で失敗しても
// 在庫・注文とも変化しない）。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(in.Items) == 0 {
		return OrderOutput{}, ErrEmptyCart
	}
	for _, line := range in.Items {
		if line.Quantity < 1 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "quantity must be >= 1")
		}
	}

	var out OrderOutput

	//確定処理はトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//先に全明細を検証してスナップショットを作る（ここでは書き込まない）
		orderItems := make([]model.OrderItem, 0, len(in.Items))
		requested := make(map[int64]int64, len(in.Items))
		total := decimal.Zero

		for _, line := range in.Items {
			p, err := r.Products().FindByID(ctx, line.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return &ProductNotFoundError{ProductID: line.ProductID}
			}
			if err != nil {
				return err
			}

			if p.Stock < line.Quantity {
				return &InsufficientStockError{
					ProductID:   p.ID,
					ProductName: p.Name,
					Available:   p.Stock,
					Requested:   line.Quantity,
				}
			}

			//商品名・説明・単価は今の値を固定して明細に焼き込む
			orderItems = append(orderItems, model.OrderItem{
				ProductID:          p.ID,
				Quantity:           line.Quantity,
				Price:              p.Price,
				ProductName:        p.Name,
				ProductDescription: p.Description,
			})

			requested[p.ID] += line.Quantity
			total = total.Add(p.Price.Mul(decimal.NewFromInt(line.Quantity)))
		}

		//全明細が通ったのでまとめて在庫を減らす。
		//同時注文に負けた場合はここで在庫不足になり、全体がロールバックされる
		adjustments := make([]repo.StockAdjustment, 0, len(in.Items))
		for _, line := range in.Items {
			adjustments = append(adjustments, repo.StockAdjustment{
				ProductID: line.ProductID,
				Delta:     -line.Quantity,
			})
		}
		if err := r.Inventory().AdjustStockBatch(ctx, adjustments); err != nil {
			var ins *repo.ErrInsufficientStock
			if errors.As(err, &ins) {
				p, ferr := r.Products().FindByID(ctx, ins.ProductID)
				if ferr != nil {
					return err
				}
				return &InsufficientStockError{
					ProductID:   p.ID,
					ProductName: p.Name,
					Available:   p.Stock,
					Requested:   requested[p.ID],
				}
			}
			return err
		}

		//注文作成
		now := time.Now()
		order := model.Order{
			UserID:              userID,
			OrderDate:           now,
			Status:              model.OrderStatusPending,
			TotalAmount:         total,
			ShippingName:        in.Shipping.Name,
			ShippingPostalCode:  in.Shipping.PostalCode,
			ShippingPrefecture:  in.Shipping.Prefecture,
			ShippingCity:        in.Shipping.City,
			ShippingAddressLine: in.Shipping.AddressLine,
			ShippingPhone:       in.Shipping.Phone,
			Notes:               in.Shipping.Notes,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return err
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return err
		}

		order.ID = orderID
		out = toOrderOutput(order, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderSummaryOutput, error) {
	if userID <= 0 {
		return []OrderSummaryOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderSummaryOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderSummaryOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, OrderSummaryOutput{
				ID:          o.ID,
				OrderDate:   o.OrderDate,
				Status:      int(o.Status),
				StatusText:  o.Status.Label(),
				TotalAmount: o.TotalAmount,
				ItemCount:   len(items),
			})
		}
		return nil
	})

	if err != nil {
		return []OrderSummaryOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// UpdateMyOrderStatusは自分の注文のステータスだけを変更する。
// キャンセルしても在庫は戻さない。
func (u *OrderUsecase) UpdateMyOrderStatus(ctx context.Context, userID int64, orderID int64, status int) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	newStatus, ok := model.OrderStatusFromInt(status)
	if !ok {
		return NewHTTPError(http.StatusBadRequest, "無効な注文ステータスです。")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ID:                 it.ID,
			ProductID:          it.ProductID,
			ProductName:        it.ProductName,
			ProductDescription: it.ProductDescription,
			Quantity:           it.Quantity,
			Price:              it.Price,
			Subtotal:           it.Subtotal(),
		})
	}

	return OrderOutput{
		ID:                  o.ID,
		UserID:              o.UserID,
		OrderDate:           o.OrderDate,
		Status:              int(o.Status),
		StatusText:          o.Status.Label(),
		TotalAmount:         o.TotalAmount,
		ShippingName:        o.ShippingName,
		ShippingPostalCode:  o.ShippingPostalCode,
		ShippingPrefecture:  o.ShippingPrefecture,
		ShippingCity:        o.ShippingCity,
		ShippingAddressLine: o.ShippingAddressLine,
		ShippingPhone:       o.ShippingPhone,
		Notes:               o.Notes,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
		Items:               outItems,
	}
}
