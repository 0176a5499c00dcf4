package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jiet-alumni/alumni-directory/internal/api/middleware"
	"github.com/jiet-alumni/alumni-directory/internal/core/domain"
)

// caller extracts the identity injected by the Authenticated middleware.
// Handlers mounted behind the middleware always find one; anything else is a
// routing mistake and is reported as unauthenticated.
func caller(c echo.Context) (domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return identity, nil
}

// queryInt parses an integer query parameter, clamped to at least 1. Missing
// or malformed values yield 0 so the service applies its default.
func queryInt(c echo.Context, name string) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.QueryParam(name)))
	if err != nil {
		return 0
	}
	if n < 1 {
		return 1
	}
	return n
}
