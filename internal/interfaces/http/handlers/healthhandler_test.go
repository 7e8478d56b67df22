package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kimono-rental/kimono/internal/interfaces/http/handlers/testutil"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	up := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return context.DeadlineExceeded })

	h := NewHealthHandler(map[string]Pinger{"database": up, "redis": nil})
	c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)
	h.HealthCheck(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"up"`)
	assert.NotContains(t, w.Body.String(), "redis")

	h = NewHealthHandler(map[string]Pinger{"database": up, "redis": down})
	c, w = testutil.NewTestContext(http.MethodGet, "/health", nil)
	h.HealthCheck(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
