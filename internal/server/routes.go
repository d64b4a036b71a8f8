package server

import (
	"ecshop/internal/config"
	"ecshop/internal/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth          *handler.AuthHandler
	Product       *handler.ProductHandler
	Order         *handler.OrderHandler
	Announcement  *handler.AnnouncementHandler
	AdminProduct  *handler.AdminProductHandler
	AdminOrder    *handler.AdminOrderHandler
	AdminUser     *handler.AdminUserHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Auth.RegisterRoutes(e, cfg)
	h.Product.RegisterRoutes(e)
	h.Order.RegisterRoutes(e, cfg)
	h.Announcement.RegisterRoutes(e, cfg)
	h.AdminProduct.RegisterRoutes(e, cfg)
	h.AdminOrder.RegisterRoutes(e, cfg)
	h.AdminUser.RegisterRoutes(e, cfg)
}
