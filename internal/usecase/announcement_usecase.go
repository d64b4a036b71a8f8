package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"ecshop/internal/domain/model"
	repo "ecshop/internal/repository"
)

type AnnouncementUsecase struct {
	announcementRepo repo.AnnouncementRepository
}

func NewAnnouncementUsecase(announcementRepo repo.AnnouncementRepository) *AnnouncementUsecase {
	return &AnnouncementUsecase{announcementRepo: announcementRepo}
}

type ListAnnouncementsInput struct {
	Category  string
	Keyword   string
	Published *bool
	From      *time.Time
	To        *time.Time
}

type AnnouncementSummaryOutput struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	IsPublished bool      `json:"is_published"`
	PublishDate time.Time `json:"publish_date"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *AnnouncementUsecase) ListAnnouncements(ctx context.Context, in ListAnnouncementsInput) ([]AnnouncementSummaryOutput, error) {
	items, err := u.announcementRepo.List(ctx, repo.AnnouncementListFilter{
		Category:  in.Category,
		Keyword:   in.Keyword,
		Published: in.Published,
		From:      in.From,
		To:        in.To,
	})
	if err != nil {
		return []AnnouncementSummaryOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]AnnouncementSummaryOutput, 0, len(items))
	for _, a := range items {
		outs = append(outs, AnnouncementSummaryOutput{
			ID:          a.ID,
			Title:       a.Title,
			Category:    a.Category,
			IsPublished: a.IsPublished,
			PublishDate: a.PublishDate,
			CreatedAt:   a.CreatedAt,
		})
	}
	return outs, nil
}

func (u *AnnouncementUsecase) GetAnnouncement(ctx context.Context, id int64) (model.Announcement, error) {
	if id <= 0 {
		return model.Announcement{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	a, err := u.announcementRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Announcement{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Announcement{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return a, nil
}

type AnnouncementInput struct {
	Title       string
	Content     string
	Category    string
	IsPublished bool
	PublishDate time.Time
}

func (u *AnnouncementUsecase) AdminCreateAnnouncement(ctx context.Context, in AnnouncementInput) (model.Announcement, error) {
	if err := validateAnnouncementInput(in); err != nil {
		return model.Announcement{}, err
	}

	now := time.Now()
	a, err := u.announcementRepo.Create(ctx, model.Announcement{
		Title:       strings.TrimSpace(in.Title),
		Content:     in.Content,
		Category:    strings.TrimSpace(in.Category),
		IsPublished: in.IsPublished,
		PublishDate: in.PublishDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return model.Announcement{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return a, nil
}

func (u *AnnouncementUsecase) AdminUpdateAnnouncement(ctx context.Context, id int64, in AnnouncementInput) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := validateAnnouncementInput(in); err != nil {
		return err
	}

	err := u.announcementRepo.Update(ctx, model.Announcement{
		ID:          id,
		Title:       strings.TrimSpace(in.Title),
		Content:     in.Content,
		Category:    strings.TrimSpace(in.Category),
		IsPublished: in.IsPublished,
		PublishDate: in.PublishDate,
		UpdatedAt:   time.Now(),
	})
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AnnouncementUsecase) AdminDeleteAnnouncement(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.announcementRepo.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func validateAnnouncementInput(in AnnouncementInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" || len(title) > 200 {
		return NewHTTPError(http.StatusBadRequest, "title must be 1-200 characters")
	}
	if in.Content == "" || len(in.Content) > 2000 {
		return NewHTTPError(http.StatusBadRequest, "content must be 1-2000 characters")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" || len(category) > 50 {
		return NewHTTPError(http.StatusBadRequest, "category must be 1-50 characters")
	}
	if in.PublishDate.IsZero() {
		return NewHTTPError(http.StatusBadRequest, "publish_date required")
	}
	return nil
}
