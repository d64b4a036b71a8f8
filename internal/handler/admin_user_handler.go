package handler

import (
	"net/http"
	"strconv"

	"ecshop/internal/config"
	"ecshop/internal/middleware"
	"ecshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminUserHandler struct {
	userUC      *usecase.AdminUserUsecase
	dashboardUC *usecase.DashboardUsecase
}

func NewAdminUserHandler(userUC *usecase.AdminUserUsecase, dashboardUC *usecase.DashboardUsecase) *AdminUserHandler {
	return &AdminUserHandler{userUC: userUC, dashboardUC: dashboardUC}
}

type adminStatusRequest struct {
	IsAdmin bool `json:"is_admin"`
}

func (h *AdminUserHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.GET("/users", h.listUsers)
	g.PUT("/users/:id/admin-status", h.updateAdminStatus)
	g.GET("/dashboard", h.dashboard)
}

func (h *AdminUserHandler) listUsers(c echo.Context) error {
	out, err := h.userUC.ListUsers(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) updateAdminStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req adminStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.userUC.UpdateAdminStatus(c.Request().Context(), id, req.IsAdmin); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "管理者権限を更新しました。"})
}

func (h *AdminUserHandler) dashboard(c echo.Context) error {
	out, err := h.dashboardUC.GetDashboard(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
