package context

import (
	"slices"

	"storefront/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

const (
	// KeyUsername is the key for the authenticated account name in echo.Context.
	KeyUsername ContextKey = "username"

	// KeyRoles is the key for the authenticated account roles in echo.Context.
	KeyRoles ContextKey = "roles"
)

// SetIdentity stores the authenticated account in echo.Context.
func SetIdentity(c echo.Context, username string, roles []string) {
	c.Set(string(KeyUsername), username)
	c.Set(string(KeyRoles), roles)
}

// GetUsername returns the authenticated account name, or "" for anonymous requests.
func GetUsername(c echo.Context) string {
	if username, ok := c.Get(string(KeyUsername)).(string); ok {
		return username
	}

	return ""
}

// GetRoles returns the authenticated account roles.
func GetRoles(c echo.Context) []string {
	if roles, ok := c.Get(string(KeyRoles)).([]string); ok {
		return roles
	}

	return nil
}

// HasRole reports whether the authenticated account holds role.
func HasRole(c echo.Context, role entity.Role) bool {
	return slices.Contains(GetRoles(c), role.String())
}
