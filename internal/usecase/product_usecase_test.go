package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"ecshop/internal/domain/model"
	repo "ecshop/internal/repository"
	"ecshop/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type ProdProductRepoMock struct{ mock.Mock }

func (m *ProdProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProdProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProdProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProdProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProdProductRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProdProductRepoMock) Count(ctx context.Context) (int64, error) {
	panic("not used in ProductUsecase tests")
}

func (m *ProdProductRepoMock) ListLowStock(ctx context.Context, threshold int64, limit int) ([]model.Product, error) {
	panic("not used in ProductUsecase tests")
}

func assertHTTPStatus(t *testing.T, err error, status int) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %v", err)
	assert.Equal(t, status, he.Status)
}

// =====================
// Public: List / Detail
// =====================

func TestProductUsecase_ListProducts_Success(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProdProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	items := []model.Product{
		{ID: 1, Name: "AirPods Pro", Price: decimal.NewFromInt(38000), Stock: 10},
	}
	pRepo.On("List", mock.Anything, repo.ProductListQuery{Search: "air", SortBy: "price", SortOrder: "asc"}).
		Return(items, nil)

	out, err := uc.ListProducts(ctx, usecase.ListProductsInput{Search: "air", SortBy: "price", SortOrder: "asc"})
	assert.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "AirPods Pro", out[0].Name)
	pRepo.AssertExpectations(t)
}

func TestProductUsecase_ListProducts_InvalidPriceRange(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProdProductRepoMock))

	minP := decimal.NewFromInt(500)
	maxP := decimal.NewFromInt(100)
	_, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{MinPrice: &minP, MaxPrice: &maxP})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestProductUsecase_ListProducts_NegativeMinPrice(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProdProductRepoMock))

	minP := decimal.NewFromInt(-1)
	_, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{MinPrice: &minP})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestProductUsecase_ListProducts_InvalidSort(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProdProductRepoMock))

	_, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{SortBy: "stock"})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.ListProducts(context.Background(), usecase.ListProductsInput{SortOrder: "up"})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestProductUsecase_GetProductDetail_NotFound(t *testing.T) {
	pRepo := new(ProdProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("FindByID", mock.Anything, int64(42)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.GetProductDetail(context.Background(), 42)
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestProductUsecase_GetProductDetail_InvalidID(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProdProductRepoMock))

	_, err := uc.GetProductDetail(context.Background(), 0)
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

// =====================
// Admin: Create / Update / Delete
// =====================

func TestProductUsecase_AdminCreateProduct_Success(t *testing.T) {
	pRepo := new(ProdProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "新商品" && p.Stock == 3
	})).Return(model.Product{ID: 7, Name: "新商品", Stock: 3}, nil)

	out, err := uc.AdminCreateProduct(context.Background(), usecase.AdminProductInput{
		Name:  "  新商品  ",
		Price: decimal.NewFromInt(1200),
		Stock: 3,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(7), out.ID)
	pRepo.AssertExpectations(t)
}

func TestProductUsecase_AdminCreateProduct_Validation(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProdProductRepoMock))

	_, err := uc.AdminCreateProduct(context.Background(), usecase.AdminProductInput{
		Name:  "   ",
		Price: decimal.NewFromInt(100),
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.AdminCreateProduct(context.Background(), usecase.AdminProductInput{
		Name:  "商品",
		Price: decimal.NewFromInt(-1),
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.AdminCreateProduct(context.Background(), usecase.AdminProductInput{
		Name:  "商品",
		Price: decimal.NewFromInt(100),
		Stock: -5,
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestProductUsecase_AdminUpdateProduct_NotFound(t *testing.T) {
	pRepo := new(ProdProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("Update", mock.Anything, mock.Anything).Return(repo.ErrNotFound)

	err := uc.AdminUpdateProduct(context.Background(), 42, usecase.AdminProductInput{
		Name:  "商品",
		Price: decimal.NewFromInt(100),
	})
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestProductUsecase_AdminDeleteProduct_Success(t *testing.T) {
	pRepo := new(ProdProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("Delete", mock.Anything, int64(7)).Return(nil)

	err := uc.AdminDeleteProduct(context.Background(), 7)
	assert.NoError(t, err)
	pRepo.AssertExpectations(t)
}
