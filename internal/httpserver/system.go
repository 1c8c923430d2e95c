package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/moviehub/internal/cache"
	"github.com/Skotchmaster/moviehub/internal/logging"
	"github.com/Skotchmaster/moviehub/internal/transport"
)

type SystemHTTP struct {
	Visits cache.Counter
}

func (h *SystemHTTP) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, transport.Message{Message: "Welcome to MovieHub API"})
}

// Health counts the visit in Redis. A cache outage degrades the redis field
// only, the service still reports ok.
func (h *SystemHTTP) Health(c echo.Context) error {
	ctx := c.Request().Context()
	resp := transport.Health{Status: "ok", Redis: "unavailable"}

	if h.Visits != nil {
		n, err := h.Visits.Incr(ctx, cache.VisitsKey)
		if err != nil {
			logging.FromContext(ctx).With("handler", "system.health").Warn("visits_error", "error", err)
		} else {
			resp.Visits = &n
			resp.Redis = "connected"
		}
	}
	return c.JSON(http.StatusOK, resp)
}
