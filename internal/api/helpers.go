package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/ggmlcheck/internal/ggml"
	"github.com/samcharles93/ggmlcheck/internal/resolve"
)

const headerRequestID = "X-Request-Id"

func writeBadRequest(c *echo.Context, msg, param string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg, param)
}

func writeError(c *echo.Context, status int, errType, msg, param string) error {
	return c.JSON(status, map[string]any{
		"error": ResponseError{
			Message: msg,
			Type:    errType,
			Param:   param,
		},
	})
}

// classifyError maps a per-file failure to an HTTP status and error type.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, "invalid_request_error"
	case errors.Is(err, resolve.ErrPathInvalid):
		return http.StatusNotFound, "not_found_error"
	case errors.Is(err, ggml.ErrTruncated), errors.Is(err, ggml.ErrOutOfRange):
		return http.StatusUnprocessableEntity, "corrupt_header_error"
	default:
		return http.StatusInternalServerError, "server_error"
	}
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	dec := json.NewDecoder(r)
	if err := dec.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}

// requestID tags every request and response with an identifier, reusing the
// caller's header when present.
func requestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c *echo.Context) error {
		id := c.Request().Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(headerRequestID, id)
		c.Response().Header().Set(headerRequestID, id)
		return next(c)
	}
}

func requestIDFrom(c *echo.Context) string {
	if id, ok := c.Get(headerRequestID).(string); ok {
		return id
	}
	return ""
}
