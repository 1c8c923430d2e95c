package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/Skotchmaster/moviehub/internal/apperr"
)

func TestPerIP_BurstThenRefill(t *testing.T) {
	t.Parallel()
	now := time.Unix(0, 0)
	p := NewPerIP(1, 2)
	p.now = func() time.Time { return now }

	assert.True(t, p.Allow("1.1.1.1"))
	assert.True(t, p.Allow("1.1.1.1"))
	assert.False(t, p.Allow("1.1.1.1"))
	assert.True(t, p.Allow("2.2.2.2"))

	now = now.Add(time.Second)
	assert.True(t, p.Allow("1.1.1.1"))
	assert.False(t, p.Allow("1.1.1.1"))
}

func TestPerIP_SweepsIdleVisitors(t *testing.T) {
	t.Parallel()
	now := time.Unix(0, 0)
	p := NewPerIP(1, 1)
	p.now = func() time.Time { return now }

	p.Allow("1.1.1.1")
	now = now.Add(2 * idleTTL)
	p.Allow("2.2.2.2")

	p.mu.Lock()
	defer p.mu.Unlock()
	assert.Len(t, p.visitors, 1)
	assert.Contains(t, p.visitors, "2.2.2.2")
}

func TestPerIP_Middleware(t *testing.T) {
	t.Parallel()
	p := NewPerIP(0.001, 1)
	e := echo.New()
	h := p.Middleware(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	call := func() error {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		return h(e.NewContext(req, httptest.NewRecorder()))
	}

	assert.NoError(t, call())
	assert.ErrorIs(t, call(), apperr.ErrTooManyRequests)
}
