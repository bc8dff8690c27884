package middleware

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/featherback/featherback-api/internal/api/metrics"
	"github.com/featherback/featherback-api/internal/core/token"
)

// Context keys for credentials attached by the middleware chain.
const (
	// UsernameKey and PasswordKey hold the raw Basic-Auth credentials.
	// They are extracted, not verified: the login handler checks them
	// against storage.
	UsernameKey = "username"
	PasswordKey = "password"
	// ClaimsKey holds the *token.Claims of a verified JWT.
	ClaimsKey = "claims"
)

// ParseBasicAuth extracts Basic-Auth credentials and attaches them to the
// request context. Credential-extraction failures are Bad Requests, not
// Unauthorized: the request shape is wrong before authentication even runs.
func ParseBasicAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusBadRequest, "No authorization header provided")
			}

			const prefix = "basic "
			if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
				return echo.NewHTTPError(http.StatusBadRequest, "Malformed Authorization Header")
			}

			decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header[len(prefix):]))
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "Malformed Authorization Header")
			}
			username, pwd, ok := strings.Cut(string(decoded), ":")
			if !ok {
				return echo.NewHTTPError(http.StatusBadRequest, "Malformed Authorization Header")
			}

			c.Set(UsernameKey, username)
			c.Set(PasswordKey, pwd)
			return next(c)
		}
	}
}

// RequireJWT resolves a token from the Authorization header (Bearer) or the
// jwt query parameter, verifies it, and attaches the claim set to the
// request context. Downstream guards trust the signed claims at face value;
// no live user lookup happens here.
func RequireJWT(tokens *token.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var tokenString string

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			const prefix = "bearer "
			switch {
			case len(header) >= len(prefix) && strings.EqualFold(header[:len(prefix)], prefix):
				tokenString = strings.TrimSpace(header[len(prefix):])
			case c.QueryParam("jwt") != "":
				tokenString = c.QueryParam("jwt")
			default:
				return echo.NewHTTPError(http.StatusBadRequest, "Required JWT authorization token missing")
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusBadRequest, "Malformed JWT authorization token provided")
			}
			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}
