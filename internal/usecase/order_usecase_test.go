package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"ecshop/internal/domain/model"
	"ecshop/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProduct(st *memState, id int64, name string, price int64, stock int64) {
	st.products[id] = model.Product{
		ID:          id,
		Name:        name,
		Description: name + "の説明",
		Price:       decimal.NewFromInt(price),
		Stock:       stock,
	}
}

func shipping() usecase.ShippingDetailsInput {
	return usecase.ShippingDetailsInput{
		Name:        "山田 太郎",
		PostalCode:  "100-0001",
		Prefecture:  "東京都",
		City:        "千代田区",
		AddressLine: "千代田1-1",
	}
}

// Test: 注文確定で小計・合計・在庫が正しく反映される
func TestPlaceOrderComputesTotalsAndDecrementsStock(t *testing.T) {
	st := newMemState()
	seedProduct(st, 1, "AirPods Pro", 100, 5)
	uc := usecase.NewOrderUsecase(newMemTxManager(st))

	out, err := uc.PlaceOrder(context.Background(), 10, usecase.PlaceOrderInput{
		Items:    []usecase.CartLineInput{{ProductID: 1, Quantity: 2}},
		Shipping: shipping(),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), out.UserID)
	assert.Equal(t, int(model.OrderStatusPending), out.Status)
	assert.Equal(t, "注文確認中", out.StatusText)
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromInt(200)), "total=%s", out.TotalAmount)

	require.Len(t, out.Items, 1)
	assert.Equal(t, "AirPods Pro", out.Items[0].ProductName)
	assert.True(t, out.Items[0].Subtotal.Equal(decimal.NewFromInt(200)))

	//在庫は5→3
	assert.Equal(t, int64(3), st.products[1].Stock)
}

// Test: 合計は全明細の小計の和になる
func TestPlaceOrderTotalAmountInvariant(t *testing.T) {
	st := newMemState()
	seedProduct(st, 1, "商品A", 100, 10)
	seedProduct(st, 2, "商品B", 250, 10)
	uc := usecase.NewOrderUsecase(newMemTxManager(st))

	out, err := uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{
		Items: []usecase.CartLineInput{
			{ProductID: 1, Quantity: 3},
			{ProductID: 2, Quantity: 2},
		},
		Shipping: shipping(),
	})
	require.NoError(t, err)

	sum := decimal.Zero
	for _, it := range out.Items {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}
	assert.True(t, out.TotalAmount.Equal(sum))
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromInt(800)))
}

// Test: 在庫不足は全体を中断し、何も書き込まない
func TestPlaceOrderInsufficientStock(t *testing.T) {
	st := newMemState()
	seedProduct(st, 1, "AirPods Pro", 100, 5)
	uc := usecase.NewOrderUsecase(newMemTxManager(st))

	_, err := uc.PlaceOrder(context.Background(), 10, usecase.PlaceOrderInput{
		Items:    []usecase.CartLineInput{{ProductID: 1, Quantity: 10}},
		Shipping: shipping(),
	})

	var ins *usecase.InsufficientStockError
	require.ErrorAs(t, err, &ins)
	assert.Equal(t, int64(1), ins.ProductID)
	assert.Equal(t, int64(5), ins.Available)
	assert.Equal(t, int64(10), ins.Requested)
	assert.Equal(t, "Insufficient stock for product AirPods Pro. Available: 5, Requested: 10", ins.Error())

	//在庫は減っていない、注文も無い
	assert.Equal(t, int64(5), st.products[1].Stock)
	assert.Empty(t, st.orders)
}

// Test: 2行目の商品が存在しないとき、1行目の在庫も減らない
func TestPlaceOrderProductNotFoundAbortsWholeOperation(t *testing.T) {
	st := newMemState()
	seedProduct(st, 1, "商品A", 100, 5)
	uc := usecase.NewOrderUsecase(newMemTxManager(st))

	_, err := uc.PlaceOrder(context.Background(), 10, usecase.PlaceOrderInput{
		Items: []usecase.CartLineInput{
			{ProductID: 1, Quantity: 1},
			{ProductID: 999, Quantity: 1},
		},
		Shipping: shipping(),
	})

	var pnf *usecase.ProductNotFoundError
	require.ErrorAs(t, err, &pnf)
	assert.Equal(t, int64(999), pnf.ProductID)
	assert.Equal(t, "Product with ID 999 not found.", pnf.Error())

	assert.Equal(t, int64(5), st.products[1].Stock)
	assert.Empty(t, st.orders)
	assert.Empty(t, st.items)
}

// Test: 空カートはストレージに触れずに拒否
func TestPlaceOrderEmptyCart(t *testing.T) {
	st := newMemState()
	uc := usecase.NewOrderUsecase(newMemTxManager(st))

	_, err := uc.PlaceOrder(context.Background(), 10, usecase.PlaceOrderInput{
		Items:    []usecase.CartLineInput{},
		Shipping: shipping(),
	})

	require.ErrorIs(t, err, usecase.ErrEmptyCart)
	assert.Empty(t, st.orders)
}

// Test: 数量0はエンジンに入る前に拒否
func TestPlaceOrderRejectsNonPositiveQuantity(t *testing.T) {
	st := newMemState()
	seedProduct(st, 1, "商品A", 100, 5)
	uc := usecase.NewOrderUsecase(newMemTxManager(st))

	_, err := uc.PlaceOrder(context.Background(), 10, usecase.PlaceOrderInput{
		Items:    []usecase.CartLineInput{{ProductID: 1, Quantity: 0}},
		Shipping: shipping(),
	})

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, int64(5), st.products[1].Stock)
}

// Test: 最後の1個を取り合う同時注文は、片方だけが成功する
func TestPlaceOrderConcurrentLastUnit(t *testing.T) {
	st := newMemState()
	seedProduct(st, 1, "ラス1商品", 500, 1)
	uc := usecase.NewOrderUsecase(newMemTxManager(st))

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.PlaceOrder(context.Background(), int64(i+1), usecase.PlaceOrderInput{
				Items:    []usecase.CartLineInput{{ProductID: 1, Quantity: 1}},
				Shipping: shipping(),
			})
			results[i] = err
		}(i)
	}
	wg.Wait()

	succeeded := 0
	insufficient := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		var ins *usecase.InsufficientStockError
		if errors.As(err, &ins) {
			insufficient++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, int64(0), st.products[1].Stock)
	assert.Len(t, st.orders, 1)
}

// Test: 注文後に商品を変更しても明細のスナップショットは変わらない
func TestPlaceOrderSnapshotImmutable(t *testing.T) {
	st := newMemState()
	seedProduct(st, 1, "旧商品名", 100, 5)
	uc := usecase.NewOrderUsecase(newMemTxManager(st))

	out, err := uc.PlaceOrder(context.Background(), 10, usecase.PlaceOrderInput{
		Items:    []usecase.CartLineInput{{ProductID: 1, Quantity: 1}},
		Shipping: shipping(),
	})
	require.NoError(t, err)

	//商品側を変更
	p := st.products[1]
	p.Name = "新商品名"
	p.Price = decimal.NewFromInt(9999)
	st.products[1] = p

	detail, err := uc.GetMyOrderDetail(context.Background(), 10, out.ID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, "旧商品名", detail.Items[0].ProductName)
	assert.True(t, detail.Items[0].Price.Equal(decimal.NewFromInt(100)))
	assert.True(t, detail.TotalAmount.Equal(decimal.NewFromInt(100)))
}

// Test: キャンセルしても在庫は戻らない
func TestUpdateMyOrderStatusCancelDoesNotRestock(t *testing.T) {
	st := newMemState()
	seedProduct(st, 1, "商品A", 100, 5)
	uc := usecase.NewOrderUsecase(newMemTxManager(st))

	out, err := uc.PlaceOrder(context.Background(), 10, usecase.PlaceOrderInput{
		Items:    []usecase.CartLineInput{{ProductID: 1, Quantity: 2}},
		Shipping: shipping(),
	})
	require.NoError(t, err)
	require.Equal(t, int64(3), st.products[1].Stock)

	createdAt := st.orders[out.ID].UpdatedAt
	time.Sleep(10 * time.Millisecond)

	err = uc.UpdateMyOrderStatus(context.Background(), 10, out.ID, int(model.OrderStatusCancelled))
	require.NoError(t, err)

	o := st.orders[out.ID]
	assert.Equal(t, model.OrderStatusCancelled, o.Status)
	assert.True(t, o.UpdatedAt.After(createdAt))

	//在庫はそのまま
	assert.Equal(t, int64(3), st.products[1].Stock)
}

// Test: 範囲外のステータスは400
func TestUpdateMyOrderStatusInvalidStatus(t *testing.T) {
	st := newMemState()
	uc := usecase.NewOrderUsecase(newMemTxManager(st))

	err := uc.UpdateMyOrderStatus(context.Background(), 10, 1, 99)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

// Test: 他人の注文は「存在しない扱い」
func TestOrderOwnershipScoping(t *testing.T) {
	st := newMemState()
	seedProduct(st, 1, "商品A", 100, 5)
	uc := usecase.NewOrderUsecase(newMemTxManager(st))

	out, err := uc.PlaceOrder(context.Background(), 10, usecase.PlaceOrderInput{
		Items:    []usecase.CartLineInput{{ProductID: 1, Quantity: 1}},
		Shipping: shipping(),
	})
	require.NoError(t, err)

	//他人（userID=20）からは見えない
	_, err = uc.GetMyOrderDetail(context.Background(), 20, out.ID)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)

	err = uc.UpdateMyOrderStatus(context.Background(), 20, out.ID, int(model.OrderStatusCancelled))
	he, ok = usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

// Test: 自分の注文一覧は新しい順で、明細数が付く
func TestListMyOrdersNewestFirst(t *testing.T) {
	st := newMemState()
	seedProduct(st, 1, "商品A", 100, 100)
	seedProduct(st, 2, "商品B", 200, 100)
	uc := usecase.NewOrderUsecase(newMemTxManager(st))

	first, err := uc.PlaceOrder(context.Background(), 10, usecase.PlaceOrderInput{
		Items:    []usecase.CartLineInput{{ProductID: 1, Quantity: 1}},
		Shipping: shipping(),
	})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	second, err := uc.PlaceOrder(context.Background(), 10, usecase.PlaceOrderInput{
		Items: []usecase.CartLineInput{
			{ProductID: 1, Quantity: 1},
			{ProductID: 2, Quantity: 1},
		},
		Shipping: shipping(),
	})
	require.NoError(t, err)

	outs, err := uc.ListMyOrders(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, outs, 2)
	assert.Equal(t, second.ID, outs[0].ID)
	assert.Equal(t, 2, outs[0].ItemCount)
	assert.Equal(t, first.ID, outs[1].ID)
	assert.Equal(t, 1, outs[1].ItemCount)
}
