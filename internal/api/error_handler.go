package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/reachskyline/crm-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain
// sentinels to status codes and renders {"error": "<message>"}. Unexpected
// errors are logged and answered with a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrClientNotFound),
		errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrEmployeeNotFound):
		return http.StatusNotFound, sentinelMessage(err)
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, sentinelMessage(err)
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, domain.ErrForbidden.Error()
	case errors.Is(err, domain.ErrEmployeeExists),
		errors.Is(err, domain.ErrBusy):
		return http.StatusConflict, sentinelMessage(err)
	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest, domain.ErrInvalidID.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

var knownErrors = []error{
	domain.ErrClientNotFound,
	domain.ErrTaskNotFound,
	domain.ErrEmployeeNotFound,
	domain.ErrEmployeeExists,
	domain.ErrInvalidCredentials,
	domain.ErrUnauthenticated,
	domain.ErrBusy,
}

// sentinelMessage strips the "op: " wrapping so callers only see the
// sentinel's own text.
func sentinelMessage(err error) string {
	for _, s := range knownErrors {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return err.Error()
}
