package usecase_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"ecshop/internal/domain/model"
	repo "ecshop/internal/repository"

	"github.com/shopspring/decimal"
)

// =====================
// インメモリのトランザクション付きストア。
// WithinTxは作業用コピーに適用し、fnが成功したときだけ反映する
// （失敗＝ロールバック）。トランザクションは直列化されるので
// 同時注文の競合テストにも使える。
// =====================

type memState struct {
	products    map[int64]model.Product
	orders      map[int64]model.Order
	items       map[int64][]model.OrderItem
	nextOrderID int64
}

func newMemState() *memState {
	return &memState{
		products:    map[int64]model.Product{},
		orders:      map[int64]model.Order{},
		items:       map[int64][]model.OrderItem{},
		nextOrderID: 1,
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	c.nextOrderID = s.nextOrderID
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.items {
		items := make([]model.OrderItem, len(v))
		copy(items, v)
		c.items[k] = items
	}
	return c
}

type memTxManager struct {
	mu sync.Mutex
	st *memState
}

func newMemTxManager(st *memState) *memTxManager {
	return &memTxManager{st: st}
}

func (m *memTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	work := m.st.clone()
	if err := fn(&memRepos{st: work}); err != nil {
		return err
	}
	*m.st = *work
	return nil
}

type memRepos struct {
	st *memState
}

func (r *memRepos) Orders() repo.OrderRepository         { return &memOrderRepo{st: r.st} }
func (r *memRepos) OrderItems() repo.OrderItemRepository { return &memOrderItemRepo{st: r.st} }
func (r *memRepos) Products() repo.ProductRepository     { return &memProductRepo{st: r.st} }
func (r *memRepos) Inventory() repo.InventoryRepository  { return &memInventoryRepo{st: r.st} }

// ---- products ----

type memProductRepo struct {
	st *memState
}

func (r *memProductRepo) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.st.products))
	for _, p := range r.st.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memProductRepo) FindByID(ctx context.Context, id int64) (model.Product, error) {
	p, ok := r.st.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (r *memProductRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	r.st.products[p.ID] = p
	return p, nil
}

func (r *memProductRepo) Update(ctx context.Context, p model.Product) error {
	if _, ok := r.st.products[p.ID]; !ok {
		return repo.ErrNotFound
	}
	r.st.products[p.ID] = p
	return nil
}

func (r *memProductRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.st.products[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.st.products, id)
	return nil
}

func (r *memProductRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.st.products)), nil
}

func (r *memProductRepo) ListLowStock(ctx context.Context, threshold int64, limit int) ([]model.Product, error) {
	out := []model.Product{}
	for _, p := range r.st.products {
		if p.Stock <= threshold {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stock < out[j].Stock })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ---- inventory ----

type memInventoryRepo struct {
	st *memState
}

func (r *memInventoryRepo) AdjustStockBatch(ctx context.Context, adjustments []repo.StockAdjustment) error {
	for _, a := range adjustments {
		p, ok := r.st.products[a.ProductID]
		if !ok || p.Stock+a.Delta < 0 {
			return &repo.ErrInsufficientStock{ProductID: a.ProductID}
		}
		p.Stock += a.Delta
		r.st.products[a.ProductID] = p
	}
	return nil
}

// ---- orders ----

type memOrderRepo struct {
	st *memState
}

func (r *memOrderRepo) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	o, ok := r.st.orders[orderID]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (r *memOrderRepo) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	out := []model.Order{}
	for _, o := range r.st.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out, nil
}

func (r *memOrderRepo) Create(ctx context.Context, order model.Order) (int64, error) {
	order.ID = r.st.nextOrderID
	r.st.nextOrderID++
	r.st.orders[order.ID] = order
	return order.ID, nil
}

func (r *memOrderRepo) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	o, ok := r.st.orders[orderID]
	if !ok {
		return repo.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	r.st.orders[orderID] = o
	return nil
}

func (r *memOrderRepo) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	out := []model.Order{}
	for _, o := range r.st.orders {
		if f.Status != nil && o.Status != *f.Status {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	total := int64(len(out))

	offset := (f.Page - 1) * f.Limit
	if offset >= len(out) {
		return []model.Order{}, total, nil
	}
	end := offset + f.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

func (r *memOrderRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.st.orders)), nil
}

func (r *memOrderRepo) SumRevenue(ctx context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, o := range r.st.orders {
		if o.Status != model.OrderStatusCancelled {
			sum = sum.Add(o.TotalAmount)
		}
	}
	return sum, nil
}

func (r *memOrderRepo) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	out := []model.Order{}
	for _, o := range r.st.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ---- order items ----

type memOrderItemRepo struct {
	st *memState
}

func (r *memOrderItemRepo) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	stored := make([]model.OrderItem, len(items))
	copy(stored, items)
	for i := range stored {
		stored[i].ID = int64(len(r.st.items[orderID]) + i + 1)
		stored[i].OrderID = orderID
	}
	r.st.items[orderID] = append(r.st.items[orderID], stored...)
	return nil
}

func (r *memOrderItemRepo) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	items := make([]model.OrderItem, len(r.st.items[orderID]))
	copy(items, r.st.items[orderID])
	return items, nil
}
