package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/featherback/featherback-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.) and the
	// middleware chain's credential errors arrive pre-shaped.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Uniqueness violations read as client-correctable input errors; the
	// raw storage error never reaches the client.
	if domain.IsDuplicateKey(err) {
		return http.StatusBadRequest, "Email address already taken"
	}

	switch {
	case errors.Is(err, domain.ErrAccountDisabled):
		return http.StatusUnauthorized, "Your Account has been disabled"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Incorrect username or password"
	case errors.Is(err, domain.ErrRootRequired):
		return http.StatusUnauthorized, "Root access required"
	case errors.Is(err, domain.ErrAdminRequired):
		return http.StatusUnauthorized, "Administrator access required"
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusBadRequest, "Malformed JWT authorization token provided"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "No User exists with that ID"
	case errors.Is(err, domain.ErrCustomerNotFound):
		return http.StatusNotFound, "No Customer exists with that ID"
	case errors.Is(err, domain.ErrNotificationNotFound):
		return http.StatusNotFound, "No Notification exists with that ID"
	case errors.Is(err, domain.ErrPasswordPolicy):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrPasswordMismatch):
		return http.StatusBadRequest, "New passwords do not match"
	case errors.Is(err, domain.ErrWrongPassword):
		return http.StatusBadRequest, "Incorrect password provided"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
