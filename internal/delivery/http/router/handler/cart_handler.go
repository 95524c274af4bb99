package handler

import (
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/response"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// CartHandler serves the authenticated account's cart.
type CartHandler struct {
	uc usecase.CartUsecase
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

// ViewCart handles GET /cart.
func (h *CartHandler) ViewCart(c echo.Context) error {
	view, err := h.uc.ViewCart(c.Request().Context(), deliverycontext.GetUsername(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, view, "")
}

// AddItem handles POST /cart/items. Adding a product already in the cart merges quantities.
func (h *CartHandler) AddItem(c echo.Context) error {
	var input usecase.AddToCartInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid cart item")
	}

	view, err := h.uc.AddToCart(c.Request().Context(), deliverycontext.GetUsername(c), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, view, "Item added to cart")
}

// UpdateItem handles PUT /cart/items/:productID. A quantity of zero removes the line.
func (h *CartHandler) UpdateItem(c echo.Context) error {
	var input usecase.UpdateCartItemInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid cart item")
	}
	input.ProductID = c.Param("productID")

	view, err := h.uc.UpdateCartItem(c.Request().Context(), deliverycontext.GetUsername(c), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, view, "Cart updated")
}

// RemoveItem handles DELETE /cart/items/:productID.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	view, err := h.uc.RemoveFromCart(c.Request().Context(), deliverycontext.GetUsername(c), c.Param("productID"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, view, "Item removed from cart")
}

// ClearCart handles DELETE /cart.
func (h *CartHandler) ClearCart(c echo.Context) error {
	if err := h.uc.ClearCart(c.Request().Context(), deliverycontext.GetUsername(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, nil, "Cart cleared")
}
