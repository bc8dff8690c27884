package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/featherback/featherback-api/internal/core/ports"
)

// UserHandler serves tenant-scoped user management plus root impersonation.
// The admin guard runs on the whole group; Impersonate additionally sits
// behind the root guard.
type UserHandler struct {
	userService ports.UserService
	authService ports.AuthService
}

func NewUserHandler(userService ports.UserService, authService ports.AuthService) *UserHandler {
	return &UserHandler{userService: userService, authService: authService}
}

// List pages through the caller's tenant.
//
// @Summary      List Users of the caller's tenant
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Page size (default 10)"
// @Success      200    {object}  ports.UserPage
// @Failure      401    {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	users, err := h.userService.List(c.Request().Context(), claims.CustomerID, page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Create adds a user to the caller's tenant. The customerId always comes
// from the caller's claims, never from the body, so an admin cannot plant
// users in another tenant.
//
// @Summary      Create a User in the caller's tenant
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New user"
// @Success      200   {object}  docsResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Create(c.Request().Context(), claims.CustomerID, ports.CreateUserInput{
		Login:    req.Login,
		Name:     req.Name,
		Password: req.Password,
		Admin:    req.Admin,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, docsResponse{Docs: user})
}

// Get returns one user of the caller's tenant.
//
// @Summary      Get a User by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  docsResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Get(c.Request().Context(), claims.CustomerID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, docsResponse{Docs: user})
}

// Update edits a user of the caller's tenant.
//
// @Summary      Update a User
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Updated fields"
// @Success      200   {object}  docsResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Update(c.Request().Context(), claims.CustomerID, c.Param("id"), ports.UpdateUserInput{
		Login:    req.Login,
		Name:     req.Name,
		Admin:    req.Admin,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, docsResponse{Docs: user})
}

// Delete removes a user of the caller's tenant.
//
// @Summary      Delete a User
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  docsResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Delete(c.Request().Context(), claims.CustomerID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, docsResponse{Docs: user})
}

// Impersonate lets root mint a token for any user. The target's own claim
// set is annotated with the caller's claims under impersonatedBy, so the
// audit trail travels inside the token.
//
// @Summary      Issue an impersonation token for a User
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Target user id"
// @Success      200  {object}  tokenResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id}/impersonate [get]
func (h *UserHandler) Impersonate(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	signed, err := h.authService.Impersonate(c.Request().Context(), claims, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{Token: signed, Type: "jwt"})
}
