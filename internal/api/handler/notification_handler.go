package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/featherback/featherback-api/internal/core/domain"
	"github.com/featherback/featherback-api/internal/core/ports"
)

// NotificationHandler serves the calling user's notifications. Every
// operation is scoped by the claim set's customer and user ids.
type NotificationHandler struct {
	notificationService ports.NotificationService
}

func NewNotificationHandler(notificationService ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// @Summary      List the caller's notifications, newest first
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  docsResponse
// @Failure      401  {object}  errorResponse
// @Router       /notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	notifications, err := h.notificationService.List(c.Request().Context(), claims.CustomerID, claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, docsResponse{Docs: notifications})
}

// @Summary      Create a notification for the caller
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createNotificationRequest  true  "New notification"
// @Success      200   {object}  docsResponse
// @Failure      400   {object}  errorResponse
// @Router       /notifications [post]
func (h *NotificationHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createNotificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	notification, err := h.notificationService.Create(c.Request().Context(), claims.CustomerID, claims.UserID, ports.CreateNotificationInput{
		Class:   domain.NotificationClass(req.Class),
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, docsResponse{Docs: notification})
}

// @Summary      Delete one of the caller's notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notification id"
// @Success      200  {object}  docsResponse
// @Failure      404  {object}  errorResponse
// @Router       /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	notification, err := h.notificationService.Delete(c.Request().Context(), c.Param("id"), claims.CustomerID, claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, docsResponse{Docs: notification})
}
