package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/response"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AdminHandler serves catalogue management and reporting for administrators.
type AdminHandler struct {
	uc     usecase.AdminUsecase
	logger *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.AdminUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		uc:     uc,
		logger: logger,
	}
}

// AddProduct handles POST /admin/products.
func (h *AdminHandler) AddProduct(c echo.Context) error {
	var input usecase.AddProductInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid product input")
	}

	product, err := h.uc.AddProduct(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}
	h.audit(c, "Product added", product.ProductID)

	return response.Created(c, product, "Product added successfully")
}

// UpdateProduct handles PUT /admin/products/:id.
func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	var input usecase.UpdateProductInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid product input")
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), c.Param("id"), &input)
	if err != nil {
		return errors.WithStack(err)
	}
	h.audit(c, "Product updated", product.ProductID)

	return response.OK(c, product, "Product updated successfully")
}

// UpdateStock handles PATCH /admin/products/:id/stock. The body sets the absolute
// number of units on hand.
func (h *AdminHandler) UpdateStock(c echo.Context) error {
	var input usecase.UpdateStockInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid stock input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	product, err := h.uc.UpdateStock(c.Request().Context(), c.Param("id"), *input.Stock)
	if err != nil {
		return errors.WithStack(err)
	}
	h.audit(c, "Stock updated", product.ProductID, slog.Int("stock", product.Stock))

	return response.OK(c, product, "Stock updated successfully")
}

// DeleteProduct handles DELETE /admin/products/:id.
func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	productID := c.Param("id")
	if err := h.uc.DeleteProduct(c.Request().Context(), productID); err != nil {
		return errors.WithStack(err)
	}
	h.audit(c, "Product deleted", productID)

	return response.Success(c, http.StatusOK, nil, "Product deleted successfully")
}

// SalesReport handles GET /admin/reports/sales.
func (h *AdminHandler) SalesReport(c echo.Context) error {
	report, err := h.uc.SalesReport(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, report, "")
}

func (h *AdminHandler) audit(c echo.Context, msg, productID string, attrs ...any) {
	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger)
	logger.Info(msg, append([]any{
		slog.String("admin", deliverycontext.GetUsername(c)),
		slog.String("productID", productID),
	}, attrs...)...)
}
