package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mentorlink/mentorlink-backend/internal/models"
)

// Every JSON body leaves the API wrapped under exactly one of the
// top-level keys "results", "errors" or "metadata". Bare payloads are
// auto-wrapped under "results"; payloads already carrying one of the
// keys pass through unchanged.

// Wrap applies the response envelope convention to a handler payload.
func Wrap(payload interface{}) interface{} {
	switch p := payload.(type) {
	case fiber.Map:
		if hasEnvelopeKey(p) {
			return p
		}
	case map[string]interface{}:
		if hasEnvelopeKey(p) {
			return p
		}
	}
	return fiber.Map{"results": payload}
}

func hasEnvelopeKey(m map[string]interface{}) bool {
	for _, key := range []string{"results", "errors", "metadata"} {
		if _, ok := m[key]; ok {
			return true
		}
	}
	return false
}

// Results writes a payload under the envelope with the given status.
func Results(c *fiber.Ctx, status int, payload interface{}) error {
	return c.Status(status).JSON(Wrap(payload))
}

// Error writes a structured error body.
func Error(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"errors": fiber.Map{"code": code, "message": message},
	})
}

// OKMeta writes an "OK_" action acknowledgement under metadata.
func OKMeta(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"metadata": fiber.Map{"code": code, "message": message},
	})
}

// RenderError maps service errors onto the wire contract: domain errors
// keep their stable code at 400 (404/403 for the not-found/forbidden
// sentinels), anything unexpected becomes a generic 500 with no
// business code.
func RenderError(c *fiber.Ctx, err error) error {
	if derr, ok := err.(*models.DomainError); ok {
		status := fiber.StatusBadRequest
		switch derr {
		case models.ErrNotFound:
			status = fiber.StatusNotFound
		case models.ErrForbidden:
			status = fiber.StatusForbidden
		}
		return Error(c, status, derr.Code, derr.Message)
	}
	return Error(c, fiber.StatusInternalServerError, "ERR_INTERNAL", "Internal server error")
}

// userID pulls the authenticated user id set by the auth middleware.
func userID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("user_id").(uint); ok {
		return id
	}
	return 0
}
