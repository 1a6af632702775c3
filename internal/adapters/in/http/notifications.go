package http

import (
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// ListNotifications handles GET /api/v1/notifications.
func (s *Server) ListNotifications(c echo.Context) error {
	list, err := s.handlers.ListNotifications.Handle(c.Request().Context(), queries.NewListNotificationsQuery())
	if err != nil {
		return s.writeError(c, err, "Failed to retrieve notifications")
	}

	resp := make([]Notification, len(list))
	for i, n := range list {
		resp[i] = notificationFromResponse(n)
	}
	return c.JSON(http.StatusOK, resp)
}

// CreateNotification handles POST /api/v1/notifications.
func (s *Server) CreateNotification(c echo.Context) error {
	var req NotificationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	cmd, err := commands.NewCreateNotificationCommand(req.Message)
	if err != nil {
		return badRequest(c, "Invalid notification: "+err.Error())
	}

	n, err := s.handlers.CreateNotification.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err, "Failed to create notification")
	}
	return c.JSON(http.StatusCreated, notificationFromDomain(n))
}

// MarkNotificationRead handles POST /api/v1/notifications/:id/read.
func (s *Server) MarkNotificationRead(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid notification id")
	}
	cmd, err := commands.NewMarkNotificationReadCommand(id)
	if err != nil {
		return badRequest(c, "Invalid notification id: "+err.Error())
	}

	n, err := s.handlers.MarkNotificationRead.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err, "Failed to update notification")
	}
	return c.JSON(http.StatusOK, notificationFromDomain(n))
}

// MarkAllNotificationsRead handles POST /api/v1/notifications/read-all.
func (s *Server) MarkAllNotificationsRead(c echo.Context) error {
	updated, err := s.handlers.MarkAllNotificationsRead.Handle(
		c.Request().Context(),
		commands.NewMarkAllNotificationsReadCommand(),
	)
	if err != nil {
		return s.writeError(c, err, "Failed to update notifications")
	}
	return c.JSON(http.StatusOK, MarkAllReadResponse{Updated: updated})
}
