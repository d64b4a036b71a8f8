package repository

import (
	"context"
	"time"

	"ecshop/internal/domain/model"
)

type AnnouncementListFilter struct {
	Category  string
	Keyword   string // タイトルまたは内容に部分一致
	Published *bool
	From      *time.Time
	To        *time.Time
}

type AnnouncementRepository interface {
	List(ctx context.Context, f AnnouncementListFilter) ([]model.Announcement, error)
	FindByID(ctx context.Context, id int64) (model.Announcement, error)
	Create(ctx context.Context, a model.Announcement) (model.Announcement, error)
	Update(ctx context.Context, a model.Announcement) error
	Delete(ctx context.Context, id int64) error
}
