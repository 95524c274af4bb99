package handler

import (
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// OrderHandler serves order history and receipts.
type OrderHandler struct {
	uc usecase.OrderUsecase
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func requester(c echo.Context) usecase.Requester {
	return usecase.Requester{
		Username: deliverycontext.GetUsername(c),
		IsAdmin:  deliverycontext.HasRole(c, entity.RoleAdmin),
	}
}

// ListOrders handles GET /orders.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	records, err := h.uc.ListOrders(c.Request().Context(), deliverycontext.GetUsername(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, records, "")
}

// GetOrder handles GET /orders/:id.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	record, err := h.uc.GetOrder(c.Request().Context(), requester(c), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, record, "")
}

// ReceiptQR handles GET /orders/:id/receipt/qr and answers with a PNG.
func (h *OrderHandler) ReceiptQR(c echo.Context) error {
	png, err := h.uc.ReceiptQR(c.Request().Context(), requester(c), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.PNG(c, png)
}
