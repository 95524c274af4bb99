package context

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newEchoContext() echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestWithRequest(t *testing.T) {
	var buf bytes.Buffer
	fallback := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := WithRequest(context.Background(), "req-42", fallback)
	GetLoggerOrDefault(ctx, nil).Info("hello")

	assert.Equal(t, "req-42", GetRequestIDFromContext(ctx))
	assert.Contains(t, buf.String(), "request_id=req-42")
}

func TestGetLoggerOrDefault_Fallback(t *testing.T) {
	fallback := slog.Default()

	assert.Same(t, fallback, GetLoggerOrDefault(context.Background(), fallback))
	assert.Empty(t, GetRequestIDFromContext(context.Background()))
}

func TestGetRequestID(t *testing.T) {
	c := newEchoContext()
	assert.Empty(t, GetRequestID(c))

	c.Response().Header().Set(HeaderXRequestID, "from-header")
	assert.Equal(t, "from-header", GetRequestID(c))

	SetRequestID(c, "from-middleware")
	assert.Equal(t, "from-middleware", GetRequestID(c))
}

func TestIdentity(t *testing.T) {
	c := newEchoContext()
	assert.Empty(t, GetUsername(c))
	assert.False(t, HasRole(c, entity.RoleCustomer))

	SetIdentity(c, "root", []string{entity.RoleAdmin.String()})

	assert.Equal(t, "root", GetUsername(c))
	assert.Equal(t, []string{"admin"}, GetRoles(c))
	assert.True(t, HasRole(c, entity.RoleAdmin))
	assert.False(t, HasRole(c, entity.RoleCustomer))
}
