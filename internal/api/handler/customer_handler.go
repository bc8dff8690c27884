package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/featherback/featherback-api/internal/core/ports"
)

// CustomerHandler serves root-only tenant management. The whole group sits
// behind the root guard.
type CustomerHandler struct {
	customerService ports.CustomerService
}

func NewCustomerHandler(customerService ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// @Summary      List all Customers
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dataResponse
// @Failure      401  {object}  errorResponse
// @Router       /customers [get]
func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.customerService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: customers})
}

// @Summary      Create a Customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      customerRequest  true  "New customer"
// @Success      200   {object}  dataResponse
// @Failure      400   {object}  errorResponse
// @Router       /customers [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	customer, err := h.customerService.Create(c.Request().Context(), ports.CreateCustomerInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: customer})
}

// @Summary      Get a Customer by id
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Customer id"
// @Success      200  {object}  dataResponse
// @Failure      404  {object}  errorResponse
// @Router       /customers/{id} [get]
func (h *CustomerHandler) Get(c echo.Context) error {
	customer, err := h.customerService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: customer})
}

// @Summary      Update a Customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Customer id"
// @Param        body  body      customerRequest  true  "Updated fields"
// @Success      200   {object}  dataResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /customers/{id} [patch]
func (h *CustomerHandler) Update(c echo.Context) error {
	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	customer, err := h.customerService.Update(c.Request().Context(), c.Param("id"), ports.CreateCustomerInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: customer})
}

// Delete removes the tenant only; its users are left behind as orphans.
//
// @Summary      Delete a Customer
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Customer id"
// @Success      200  {object}  dataResponse
// @Failure      404  {object}  errorResponse
// @Router       /customers/{id} [delete]
func (h *CustomerHandler) Delete(c echo.Context) error {
	customer, err := h.customerService.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: customer})
}

// @Summary      List any Customer's Users
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "Customer id"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Page size (default 10)"
// @Success      200    {object}  ports.UserPage
// @Failure      404    {object}  errorResponse
// @Router       /customers/{id}/users [get]
func (h *CustomerHandler) ListUsers(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	users, err := h.customerService.ListUsers(c.Request().Context(), c.Param("id"), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}
