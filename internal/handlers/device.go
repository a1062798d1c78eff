package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mentorlink/mentorlink-backend/internal/models"
	"github.com/mentorlink/mentorlink-backend/internal/storage"
)

// DeviceHandler manages push-token registrations.
type DeviceHandler struct {
	store storage.Store
}

// NewDeviceHandler creates the device handler.
func NewDeviceHandler(store storage.Store) *DeviceHandler {
	return &DeviceHandler{store: store}
}

// Register stores a push token for the caller.
func (h *DeviceHandler) Register(c *fiber.Ctx) error {
	var reg models.DeviceRegistration
	if err := c.BodyParser(&reg); err != nil {
		return Error(c, fiber.StatusBadRequest, "ERR_INVALID_BODY", "Invalid request body")
	}
	if reg.Token == "" {
		return Error(c, fiber.StatusBadRequest, "ERR_MISSING_FIELDS", "token is required")
	}

	device, err := h.store.CreateDevice(&models.Device{
		UserID:   userID(c),
		Platform: reg.Platform,
		Token:    reg.Token,
	})
	if err != nil {
		return RenderError(c, err)
	}
	return Results(c, fiber.StatusCreated, device)
}

// List returns the caller's registered devices.
func (h *DeviceHandler) List(c *fiber.Ctx) error {
	devices, err := h.store.ListDevicesByUser(userID(c))
	if err != nil {
		return RenderError(c, err)
	}
	return Results(c, fiber.StatusOK, devices)
}

// Delete removes one of the caller's devices.
func (h *DeviceHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return Error(c, fiber.StatusBadRequest, "ERR_INVALID_ID", "Device id must be a positive integer")
	}

	if err := h.store.DeleteDevice(uint(id), userID(c)); err != nil {
		return RenderError(c, err)
	}
	return OKMeta(c, "OK_DEVICE_DELETED", "Device removed")
}
