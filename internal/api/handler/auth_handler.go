package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/featherback/featherback-api/internal/core/domain"
	"github.com/featherback/featherback-api/internal/core/ports"
)

// AuthHandler serves login, whoami and signup.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login exchanges Basic-Auth credentials for a JWT.
//
// @Summary      Authenticate with Basic-Auth credentials
// @Tags         auth
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  tokenResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	username, pwd, err := ctxBasicCredentials(c)
	if err != nil {
		return err
	}

	signed, err := h.authService.Login(c.Request().Context(), username, pwd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{Token: signed, Type: "jwt"})
}

// WhoAmI returns the live user record behind the presented token.
//
// @Summary      Return the authenticated user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dataResponse
// @Failure      400  {object}  errorResponse
// @Router       /whoami [get]
func (h *AuthHandler) WhoAmI(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.authService.WhoAmI(c.Request().Context(), claims.UserID)
	if err != nil {
		// A token can outlive its user; here that reads as a bad request,
		// not a 404, and clients depend on it.
		if errors.Is(err, domain.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "No User exists with that ID")
		}
		return err
	}

	return c.JSON(http.StatusOK, dataResponse{Data: user})
}

// Signup registers a new tenant with its first administrator.
//
// @Summary      Register a new Customer and admin User
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Registration details"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Router       /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	signed, _, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Name:             req.Name,
		Login:            req.Login,
		Password:         req.Password,
		OrganisationName: req.OrganisationName,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{Token: signed, Type: "jwt"})
}
