package handler

import (
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AccountHandler holds dependencies for registration, login and profile handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// ProfileResponse is the public view of an account. The password hash and the cart
// are never part of it.
type ProfileResponse struct {
	Username    string      `json:"username"`
	Email       string      `json:"email,omitempty"`
	Role        entity.Role `json:"role"`
	FullName    string      `json:"full_name,omitempty"`
	Address     string      `json:"address,omitempty"`
	PhoneNumber string      `json:"phone_number,omitempty"`
}

func newProfileResponse(customer *entity.Customer) *ProfileResponse {
	return &ProfileResponse{
		Username:    customer.Username,
		Email:       customer.Email,
		Role:        customer.Role,
		FullName:    customer.FullName,
		Address:     customer.Address,
		PhoneNumber: customer.PhoneNumber,
	}
}

// LoginResponse carries the access token and the account it was issued for.
type LoginResponse struct {
	*usecase.AuthResult
	Profile *ProfileResponse `json:"profile"`
}

// Register handles customer self-registration.
func (h *AccountHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid registration input")
	}

	customer, err := h.uc.Register(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, newProfileResponse(customer), "Account registered successfully")
}

// Login exchanges credentials for an access token.
func (h *AccountHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid login input")
	}

	result, err := h.uc.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, &LoginResponse{AuthResult: result, Profile: newProfileResponse(result.Customer)}, "Login successful")
}

// GetProfile returns the authenticated account.
func (h *AccountHandler) GetProfile(c echo.Context) error {
	customer, err := h.uc.GetProfile(c.Request().Context(), deliverycontext.GetUsername(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, newProfileResponse(customer), "")
}

// UpdateProfile changes contact details or the password of the authenticated account.
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	var input usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid profile input")
	}

	customer, err := h.uc.UpdateProfile(c.Request().Context(), deliverycontext.GetUsername(c), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, newProfileResponse(customer), "Profile updated successfully")
}
