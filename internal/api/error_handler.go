package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jiet-alumni/alumni-directory/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. The web
// client reads the "message" key.
type errorResponse struct {
	Message string `json:"message"`
}

// knownErrors maps domain sentinels to their status and client-facing message.
var knownErrors = []struct {
	err  error
	code int
	msg  string
}{
	{domain.ErrInvalidEmailDomain, http.StatusBadRequest, "Invalid email domain"},
	{domain.ErrInvalidRole, http.StatusBadRequest, "Invalid role"},
	{domain.ErrInvalidID, http.StatusBadRequest, "Invalid ID"},
	{domain.ErrSelfRoleChange, http.StatusBadRequest, "Cannot change your own role"},
	{domain.ErrSelfDelete, http.StatusBadRequest, "Cannot delete your own account"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "Not authorized"},
	{domain.ErrForbidden, http.StatusForbidden, "Access forbidden"},
	{domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{domain.ErrAlumniNotFound, http.StatusNotFound, "Alumni not found"},
	{domain.ErrUserExists, http.StatusConflict, "User already exists with that email"},
	{domain.ErrTooManyAttempts, http.StatusTooManyRequests, "Too many login attempts, try again later"},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "<text>"}.
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
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Message
	}

	for _, k := range knownErrors {
		if errors.Is(err, k.err) {
			return k.code, k.msg
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Server error"
}
