package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sabor/restaurant-orders/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type errorMapping struct {
	target  error
	status  int
	code    string
	message string // empty = use err.Error()
}

// Checked in order. Middleware errors arrive as *echo.HTTPError whose
// Internal is one of these sentinels; errors.Is sees through it.
var errorMappings = []errorMapping{
	{domain.ErrDuplicateEmail, http.StatusBadRequest, "DuplicateEmail", "email already registered"},
	{domain.ErrUserNotFound, http.StatusNotFound, "NotFound", "user not found"},
	{domain.ErrOrderNotFound, http.StatusNotFound, "NotFound", "order not found"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "InvalidCredential", "invalid credentials"},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "Unauthenticated", ""},
	{domain.ErrInvalidToken, http.StatusUnauthorized, "InvalidToken", ""},
	{domain.ErrForbidden, http.StatusForbidden, "Forbidden", "access forbidden"},
	{domain.ErrInvalidInput, http.StatusBadRequest, "InvalidInput", ""},
	{domain.ErrInvalidTransition, http.StatusBadRequest, "InvalidTransition", ""},
	{domain.ErrConcurrentUpdate, http.StatusConflict, "Conflict", "order was modified concurrently, retry"},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status and taxonomy code.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "code": "<code>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		msg := m.message
		if msg == "" {
			msg = publicMessage(err)
		}
		return m.status, errorResponse{Error: msg, Code: m.code}
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message), Code: codeForStatus(he.Code)}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error", Code: "Internal"}
}

// publicMessage prefers the message of an *echo.HTTPError wrapper over the
// wrapped sentinel text.
func publicMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return fmt.Sprintf("%v", he.Message)
	}
	return err.Error()
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusUnsupportedMediaType:
		return "InvalidInput"
	case http.StatusUnauthorized:
		return "Unauthenticated"
	case http.StatusForbidden:
		return "Forbidden"
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return "NotFound"
	case http.StatusConflict:
		return "Conflict"
	default:
		return "Internal"
	}
}
