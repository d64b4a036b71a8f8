package usecase

import (
	"context"
	"errors"
	"net/http"

	"ecshop/internal/domain/model"
	repo "ecshop/internal/repository"
)

type AdminUserUsecase struct {
	userRepo repo.UserRepository
}

func NewAdminUserUsecase(userRepo repo.UserRepository) *AdminUserUsecase {
	return &AdminUserUsecase{userRepo: userRepo}
}

func (u *AdminUserUsecase) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := u.userRepo.List(ctx)
	if err != nil {
		return []model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return users, nil
}

// UpdateAdminStatusは管理者権限の付与・剥奪。
// 最後の1人の管理者から権限を外すことはできない
func (u *AdminUserUsecase) UpdateAdminStatus(ctx context.Context, userID int64, isAdmin bool) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	target, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "ユーザーが見つかりません。")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !isAdmin && target.IsAdmin {
		adminCount, err := u.userRepo.CountAdmins(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if adminCount <= 1 {
			return NewHTTPError(http.StatusBadRequest, "最後の管理者の権限を削除することはできません。")
		}
	}

	if err := u.userRepo.UpdateAdminStatus(ctx, userID, isAdmin); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
