package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/featherback/featherback-api/internal/core/token"
)

// Tier guards. They run after RequireJWT and inspect only the attached
// claim set; a role change after issuance does not take effect until the
// token expires.

// RequireRoot passes cross-tenant super-users only.
func RequireRoot() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(ClaimsKey).(*token.Claims)
			if !ok || !claims.Root {
				return echo.NewHTTPError(http.StatusUnauthorized, "Root access required")
			}
			return next(c)
		}
	}
}

// RequireAdmin passes tenant administrators. Root does not imply admin: the
// flags are independent and a root user without the admin flag is rejected,
// matching how tokens have always been interpreted.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(ClaimsKey).(*token.Claims)
			if !ok || !claims.Admin {
				return echo.NewHTTPError(http.StatusUnauthorized, "Administrator access required")
			}
			return next(c)
		}
	}
}
