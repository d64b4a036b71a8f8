package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"ecshop/internal/domain/model"
	repo "ecshop/internal/repository"
	"ecshop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type AdmUserRepoMock struct{ mock.Mock }

func (m *AdmUserRepoMock) Create(ctx context.Context, user *model.User) error {
	panic("not used in AdminUserUsecase tests")
}

func (m *AdmUserRepoMock) FindByID(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *AdmUserRepoMock) FindByUsername(ctx context.Context, username string) (model.User, error) {
	panic("not used in AdminUserUsecase tests")
}

func (m *AdmUserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	panic("not used in AdminUserUsecase tests")
}

func (m *AdmUserRepoMock) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *AdmUserRepoMock) UpdateAdminStatus(ctx context.Context, userID int64, isAdmin bool) error {
	args := m.Called(ctx, userID, isAdmin)
	return args.Error(0)
}

func (m *AdmUserRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AdmUserRepoMock) CountAdmins(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestAdminUserUsecase_ListUsers_Success(t *testing.T) {
	uRepo := new(AdmUserRepoMock)
	uc := usecase.NewAdminUserUsecase(uRepo)

	uRepo.On("List", mock.Anything).Return([]model.User{
		{ID: 1, Username: "admin", IsAdmin: true},
		{ID: 2, Username: "taro"},
	}, nil)

	users, err := uc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestAdminUserUsecase_UpdateAdminStatus_Grant(t *testing.T) {
	uRepo := new(AdmUserRepoMock)
	uc := usecase.NewAdminUserUsecase(uRepo)

	uRepo.On("FindByID", mock.Anything, int64(2)).Return(model.User{ID: 2, Username: "taro"}, nil)
	uRepo.On("UpdateAdminStatus", mock.Anything, int64(2), true).Return(nil)

	err := uc.UpdateAdminStatus(context.Background(), 2, true)
	assert.NoError(t, err)
	uRepo.AssertExpectations(t)
}

// Test: 最後の管理者の権限は外せない
func TestAdminUserUsecase_UpdateAdminStatus_LastAdminGuard(t *testing.T) {
	uRepo := new(AdmUserRepoMock)
	uc := usecase.NewAdminUserUsecase(uRepo)

	uRepo.On("FindByID", mock.Anything, int64(1)).Return(model.User{ID: 1, Username: "admin", IsAdmin: true}, nil)
	uRepo.On("CountAdmins", mock.Anything).Return(int64(1), nil)

	err := uc.UpdateAdminStatus(context.Background(), 1, false)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "最後の管理者の権限を削除することはできません。", he.Message)
	uRepo.AssertNotCalled(t, "UpdateAdminStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminUserUsecase_UpdateAdminStatus_RevokeWithRemainingAdmins(t *testing.T) {
	uRepo := new(AdmUserRepoMock)
	uc := usecase.NewAdminUserUsecase(uRepo)

	uRepo.On("FindByID", mock.Anything, int64(1)).Return(model.User{ID: 1, Username: "admin", IsAdmin: true}, nil)
	uRepo.On("CountAdmins", mock.Anything).Return(int64(2), nil)
	uRepo.On("UpdateAdminStatus", mock.Anything, int64(1), false).Return(nil)

	err := uc.UpdateAdminStatus(context.Background(), 1, false)
	assert.NoError(t, err)
	uRepo.AssertExpectations(t)
}

func TestAdminUserUsecase_UpdateAdminStatus_UserNotFound(t *testing.T) {
	uRepo := new(AdmUserRepoMock)
	uc := usecase.NewAdminUserUsecase(uRepo)

	uRepo.On("FindByID", mock.Anything, int64(99)).Return(model.User{}, repo.ErrNotFound)

	err := uc.UpdateAdminStatus(context.Background(), 99, true)
	assertHTTPStatus(t, err, http.StatusNotFound)
}
