package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jiet-alumni/alumni-directory/internal/core/domain"
)

const identityKey = "identity"

// IdentityResolver turns a bearer token into the caller's identity.
type IdentityResolver interface {
	Authenticate(ctx context.Context, token string) (domain.Identity, error)
}

// Authenticated resolves the bearer token and stores the caller's identity in
// the request context. Requests without a usable token fail with
// domain.ErrUnauthenticated.
func Authenticated(resolver IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return domain.ErrUnauthenticated
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return domain.ErrUnauthenticated
			}

			identity, err := resolver.Authenticate(c.Request().Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				return err
			}

			SetIdentity(c, identity)
			return next(c)
		}
	}
}

// SetIdentity stores the caller on the echo context.
func SetIdentity(c echo.Context, identity domain.Identity) {
	c.Set(identityKey, identity)
}

// IdentityFrom returns the caller stored by Authenticated.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(identityKey).(domain.Identity)
	if !ok || identity.ID == "" {
		return domain.Identity{}, false
	}
	return identity, true
}
