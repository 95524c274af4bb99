package handler

import (
	"storefront/internal/delivery/http/response"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ProductHandler serves the public catalogue.
type ProductHandler struct {
	uc usecase.CatalogueUsecase
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.CatalogueUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// ListProducts handles GET /products with the optional category, q and stock filters.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	var input usecase.ListProductsInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid product filter")
	}

	products, err := h.uc.ListProducts(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, products, "")
}

// GetProduct handles GET /products/:id.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.uc.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, product, "")
}

// ListCategories handles GET /products/categories.
func (h *ProductHandler) ListCategories(c echo.Context) error {
	categories, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, categories, "")
}
