package handler

import (
	"net/http"
	"strconv"
	"time"

	"ecshop/internal/config"
	"ecshop/internal/middleware"
	"ecshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AnnouncementHandler struct {
	uc *usecase.AnnouncementUsecase
}

func NewAnnouncementHandler(uc *usecase.AnnouncementUsecase) *AnnouncementHandler {
	return &AnnouncementHandler{uc: uc}
}

type announcementRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Content     string    `json:"content" validate:"required,max=2000"`
	Category    string    `json:"category" validate:"required,max=50"`
	IsPublished bool      `json:"is_published"`
	PublishDate time.Time `json:"publish_date" validate:"required"`
}

func (h *AnnouncementHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/announcements", h.list)
	e.GET("/announcements/:id", h.detail)

	g := e.Group("/admin/announcements")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

func (h *AnnouncementHandler) list(c echo.Context) error {
	in := usecase.ListAnnouncementsInput{
		Category: c.QueryParam("category"),
		Keyword:  c.QueryParam("keyword"),
	}

	if v := c.QueryParam("published"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid published"})
		}
		in.Published = &b
	}
	if v := c.QueryParam("from_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from_date"})
		}
		in.From = &t
	}
	if v := c.QueryParam("to_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to_date"})
		}
		in.To = &t
	}

	out, err := h.uc.ListAnnouncements(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AnnouncementHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetAnnouncement(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AnnouncementHandler) create(c echo.Context) error {
	var req announcementRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	out, err := h.uc.AdminCreateAnnouncement(c.Request().Context(), usecase.AnnouncementInput{
		Title:       req.Title,
		Content:     req.Content,
		Category:    req.Category,
		IsPublished: req.IsPublished,
		PublishDate: req.PublishDate,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AnnouncementHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req announcementRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	if err := h.uc.AdminUpdateAnnouncement(c.Request().Context(), id, usecase.AnnouncementInput{
		Title:       req.Title,
		Content:     req.Content,
		Category:    req.Category,
		IsPublished: req.IsPublished,
		PublishDate: req.PublishDate,
	}); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AnnouncementHandler) remove(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.AdminDeleteAnnouncement(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
