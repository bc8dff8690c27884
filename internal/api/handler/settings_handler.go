package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/featherback/featherback-api/internal/core/domain"
	"github.com/featherback/featherback-api/internal/core/ports"
)

// SettingsHandler serves the authenticated user's own settings and, behind
// the admin guard, the tenant account settings.
type SettingsHandler struct {
	settingsService ports.SettingsService
}

func NewSettingsHandler(settingsService ports.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// A token can outlive its user record. For settings routes that stale
// identity reads as Unauthorized, not NotFound.
func settingsIdentityError(err error) error {
	if errors.Is(err, domain.ErrUserNotFound) {
		return echo.NewHTTPError(http.StatusUnauthorized, "No User exists with that ID")
	}
	if errors.Is(err, domain.ErrCustomerNotFound) {
		return echo.NewHTTPError(http.StatusUnauthorized, "No Customer exists with that ID")
	}
	return err
}

// @Summary      Change the caller's password
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Password change"
// @Success      200   {object}  dataResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /settings/password [patch]
func (h *SettingsHandler) ChangePassword(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.settingsService.ChangePassword(c.Request().Context(), claims.UserID, ports.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword1:    req.NewPassword1,
		NewPassword2:    req.NewPassword2,
	})
	if err != nil {
		return settingsIdentityError(err)
	}
	return c.JSON(http.StatusOK, dataResponse{Data: user})
}

// @Summary      Get the caller's profile
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dataResponse
// @Failure      401  {object}  errorResponse
// @Router       /settings/profile [get]
func (h *SettingsHandler) GetProfile(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.settingsService.GetProfile(c.Request().Context(), claims.UserID)
	if err != nil {
		return settingsIdentityError(err)
	}
	return c.JSON(http.StatusOK, dataResponse{Data: user})
}

// @Summary      Update the caller's profile
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  dataResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /settings/profile [patch]
func (h *SettingsHandler) UpdateProfile(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.settingsService.UpdateProfile(c.Request().Context(), claims.UserID, req.Name)
	if err != nil {
		return settingsIdentityError(err)
	}
	return c.JSON(http.StatusOK, dataResponse{Data: user})
}

// @Summary      Get the tenant account settings
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dataResponse
// @Failure      401  {object}  errorResponse
// @Router       /settings/account [get]
func (h *SettingsHandler) GetAccount(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	customer, err := h.settingsService.GetAccount(c.Request().Context(), claims.CustomerID)
	if err != nil {
		return settingsIdentityError(err)
	}
	return c.JSON(http.StatusOK, dataResponse{Data: customer})
}

// @Summary      Update the tenant account settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      customerRequest  true  "Account fields"
// @Success      200   {object}  dataResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /settings/account [patch]
func (h *SettingsHandler) UpdateAccount(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	customer, err := h.settingsService.UpdateAccount(c.Request().Context(), claims.CustomerID, ports.CreateCustomerInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return settingsIdentityError(err)
	}
	return c.JSON(http.StatusOK, dataResponse{Data: customer})
}
