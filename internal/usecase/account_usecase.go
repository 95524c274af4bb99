package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// AccountUsecase defines the interface for account registration, login and profile management.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*entity.Customer, error)
	Login(ctx context.Context, input *LoginInput) (*AuthResult, error)
	GetProfile(ctx context.Context, username string) (*entity.Customer, error)
	UpdateProfile(ctx context.Context, username string, input *UpdateProfileInput) (*entity.Customer, error)
}

// --- Input DTOs ---

// RegisterInput defines the data required to create an account.
type RegisterInput struct {
	Username    string      `json:"username" validate:"required,min=3,max=50"`
	Password    string      `json:"password" validate:"required,min=6,maxbytes=72"`
	Email       string      `json:"email" validate:"omitempty,email"`
	FullName    string      `json:"full_name"`
	Address     string      `json:"address"`
	PhoneNumber string      `json:"phone_number"`
	Role        entity.Role `json:"-"` // Only set by operator tooling; empty means customer.
}

// LoginInput defines the data required to authenticate.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileInput defines the profile fields that may change. Nil fields are left as they are.
type UpdateProfileInput struct {
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	FullName    *string `json:"full_name,omitempty"`
	Address     *string `json:"address,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Password    *string `json:"password,omitempty" validate:"omitempty,min=6,maxbytes=72"`
}

// --- Output DTOs ---

// AuthResult is returned by a successful login.
type AuthResult struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	Customer    *entity.Customer `json:"-"`
}
