package repository

import (
	"context"
	"errors"
	"strings"

	"ecshop/internal/domain/model"
	repo "ecshop/internal/repository"

	"gorm.io/gorm"
)

type AnnouncementGormRepository struct {
	db *gorm.DB
}

func NewAnnouncementGormRepository(db *gorm.DB) *AnnouncementGormRepository {
	return &AnnouncementGormRepository{db: db}
}

func (r *AnnouncementGormRepository) List(ctx context.Context, f repo.AnnouncementListFilter) ([]model.Announcement, error) {
	q := r.db.WithContext(ctx).Model(&model.Announcement{})

	if c := strings.TrimSpace(f.Category); c != "" {
		q = q.Where("LOWER(category) = ?", strings.ToLower(c))
	}
	if k := strings.TrimSpace(f.Keyword); k != "" {
		like := "%" + strings.ToLower(k) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", like, like)
	}
	if f.Published != nil {
		q = q.Where("is_published = ?", *f.Published)
	}
	if f.From != nil {
		q = q.Where("publish_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("publish_date <= ?", *f.To)
	}

	var items []model.Announcement
	if err := q.Order("publish_date desc").Find(&items).Error; err != nil {
		return []model.Announcement{}, err
	}
	return items, nil
}

func (r *AnnouncementGormRepository) FindByID(ctx context.Context, id int64) (model.Announcement, error) {
	var a model.Announcement
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Announcement{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Announcement{}, err
	}
	return a, nil
}

func (r *AnnouncementGormRepository) Create(ctx context.Context, a model.Announcement) (model.Announcement, error) {
	if err := r.db.WithContext(ctx).Create(&a).Error; err != nil {
		return model.Announcement{}, err
	}
	return a, nil
}

func (r *AnnouncementGormRepository) Update(ctx context.Context, a model.Announcement) error {
	res := r.db.WithContext(ctx).Model(&model.Announcement{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"title":        a.Title,
			"content":      a.Content,
			"category":     a.Category,
			"is_published": a.IsPublished,
			"publish_date": a.PublishDate,
			"updated_at":   a.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *AnnouncementGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Announcement{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
