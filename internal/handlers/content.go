package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mentorlink/mentorlink-backend/internal/models"
	"github.com/mentorlink/mentorlink-backend/internal/services"
)

// ContentHandler manages user content mirrored to the feed store.
type ContentHandler struct {
	content *services.ContentService
}

// NewContentHandler creates the content handler.
func NewContentHandler(content *services.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// Create posts a new content entry.
func (h *ContentHandler) Create(c *fiber.Ctx) error {
	var input models.ContentInput
	if err := c.BodyParser(&input); err != nil {
		return Error(c, fiber.StatusBadRequest, "ERR_INVALID_BODY", "Invalid request body")
	}
	if input.Title == "" {
		return Error(c, fiber.StatusBadRequest, "ERR_MISSING_FIELDS", "title is required")
	}

	content, err := h.content.Create(userID(c), &input)
	if err != nil {
		return RenderError(c, err)
	}
	return Results(c, fiber.StatusCreated, content)
}

// Delete removes a content entry and its feed mirror.
func (h *ContentHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return Error(c, fiber.StatusBadRequest, "ERR_INVALID_ID", "Content id must be a positive integer")
	}

	if err := h.content.Delete(userID(c), uint(id)); err != nil {
		return RenderError(c, err)
	}
	return OKMeta(c, "OK_CONTENT_DELETED", "Content removed")
}
