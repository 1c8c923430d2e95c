package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/moviehub/internal/logging"
)

type Envelope struct {
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
	Status    int    `json:"status"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

func NewEnvelope(path string, status int, code, message string, now time.Time) Envelope {
	return Envelope{
		Timestamp: now.UTC().Format("2006-01-02T15:04:05.000Z"),
		Path:      path,
		Status:    status,
		Code:      code,
		Message:   message,
	}
}

// HTTPErrorHandler renders every error leaving a handler, including echo's
// own 404/405 errors, as an Envelope.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, code, message := Describe(err)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		code = CodeForStatus(he.Code)
		message = httpErrorMessage(he)
	}

	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request().Context()).Error("unhandled_error", "status", status, "error", err)
	}

	body := NewEnvelope(c.Request().URL.Path, status, code, message, time.Now())

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(status)
	} else {
		werr = c.JSON(status, body)
	}
	if werr != nil {
		logging.FromContext(c.Request().Context()).Error("write_error_response", "error", werr)
	}
}

func httpErrorMessage(he *echo.HTTPError) string {
	switch m := he.Message.(type) {
	case string:
		return m
	case error:
		return m.Error()
	case nil:
		return http.StatusText(he.Code)
	default:
		return fmt.Sprint(m)
	}
}
