package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/featherback/featherback-api/internal/api/middleware"
	"github.com/featherback/featherback-api/internal/core/token"
)

// ctxClaims extracts the verified claim set injected by RequireJWT. Its
// presence proves the middleware ran; a handler wired without it is a
// routing bug surfaced as 401 rather than a panic.
func ctxClaims(c echo.Context) (*token.Claims, error) {
	claims, ok := c.Get(middleware.ClaimsKey).(*token.Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}

// ctxBasicCredentials extracts the raw credentials injected by
// ParseBasicAuth. They have not been checked against storage yet.
func ctxBasicCredentials(c echo.Context) (username, password string, err error) {
	username, _ = c.Get(middleware.UsernameKey).(string)
	password, _ = c.Get(middleware.PasswordKey).(string)
	if username == "" {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, "Malformed Authorization Header")
	}
	return username, password, nil
}
