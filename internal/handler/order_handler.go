package handler

import (
	"net/http"
	"strconv"

	"ecshop/internal/config"
	"ecshop/internal/middleware"
	"ecshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int64 `json:"quantity" validate:"required,min=1"`
}

type CreateOrderRequest struct {
	Items               []OrderItemRequest `json:"items" validate:"dive"`
	ShippingName        string             `json:"shipping_name" validate:"required,max=100"`
	ShippingPostalCode  string             `json:"shipping_postal_code" validate:"required,max=10"`
	ShippingPrefecture  string             `json:"shipping_prefecture" validate:"required,max=50"`
	ShippingCity        string             `json:"shipping_city" validate:"required,max=100"`
	ShippingAddressLine string             `json:"shipping_address_line" validate:"required,max=200"`
	ShippingPhone       string             `json:"shipping_phone" validate:"omitempty,max=20"`
	Notes               string             `json:"notes" validate:"omitempty,max=500"`
}

type UpdateOrderStatusRequest struct {
	Status int `json:"status"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.PUT("/:id/status", h.updateStatus)
}

func (h *OrderHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	items := make([]usecase.CartLineInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.CartLineInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), userID, usecase.PlaceOrderInput{
		Items: items,
		Shipping: usecase.ShippingDetailsInput{
			Name:        req.ShippingName,
			PostalCode:  req.ShippingPostalCode,
			Prefecture:  req.ShippingPrefecture,
			City:        req.ShippingCity,
			AddressLine: req.ShippingAddressLine,
			Phone:       req.ShippingPhone,
			Notes:       req.Notes,
		},
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMyOrders(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetMyOrderDetail(c.Request().Context(), userID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.UpdateMyOrderStatus(c.Request().Context(), userID, id, req.Status); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	userID, ok := c.Get(middleware.CtxUserIDKey).(int64)
	if !ok || userID <= 0 {
		return 0, false
	}
	return userID, true
}
