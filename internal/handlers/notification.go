package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mentorlink/mentorlink-backend/internal/models"
	"github.com/mentorlink/mentorlink-backend/internal/storage"
)

// NotificationHandler exposes notifications read-only, scoped to their
// owner.
type NotificationHandler struct {
	store storage.Store
}

// NewNotificationHandler creates the notification handler.
func NewNotificationHandler(store storage.Store) *NotificationHandler {
	return &NotificationHandler{store: store}
}

// List returns the caller's notifications, newest first.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	notifications, err := h.store.ListNotificationsByUser(userID(c))
	if err != nil {
		return RenderError(c, err)
	}
	return Results(c, fiber.StatusOK, notifications)
}

// Get returns one notification if the caller owns it.
func (h *NotificationHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return Error(c, fiber.StatusBadRequest, "ERR_INVALID_ID", "Notification id must be a positive integer")
	}

	notification, err := h.store.GetNotification(uint(id))
	if err != nil {
		return RenderError(c, err)
	}
	if notification.UserID != userID(c) {
		return RenderError(c, models.ErrForbidden)
	}
	return Results(c, fiber.StatusOK, notification)
}
