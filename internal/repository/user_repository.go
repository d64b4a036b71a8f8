package repository

import (
	"context"

	"ecshop/internal/domain/model"
)

// 保存・取得を約束
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateAdminStatus(ctx context.Context, userID int64, isAdmin bool) error

	Count(ctx context.Context) (int64, error)
	CountAdmins(ctx context.Context) (int64, error)
}
