package service

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the custom claims for access tokens. The username travels in
// the registered "sub" claim.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Username returns the account the token was issued to.
func (c *Claims) Username() string {
	return c.Subject
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateAccessToken creates a signed access token for a username and its roles.
	GenerateAccessToken(username string, roles []string) (string, error)

	// ValidateToken checks the signature and expiry of a token string and returns its claims.
	ValidateToken(tokenString string) (*Claims, error)
}
