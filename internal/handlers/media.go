package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mentorlink/mentorlink-backend/internal/models"
	"github.com/mentorlink/mentorlink-backend/internal/storage"
)

// MediaHandler manages profile media.
type MediaHandler struct {
	store storage.Store
}

// NewMediaHandler creates the media handler.
func NewMediaHandler(store storage.Store) *MediaHandler {
	return &MediaHandler{store: store}
}

// Upload records a media entry for the caller.
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	var input models.MediaUpload
	if err := c.BodyParser(&input); err != nil {
		return Error(c, fiber.StatusBadRequest, "ERR_INVALID_BODY", "Invalid request body")
	}
	if input.URL == "" {
		return Error(c, fiber.StatusBadRequest, "ERR_MISSING_FIELDS", "url is required")
	}

	media, err := h.store.CreateMedia(&models.UserMedia{
		UserID:    userID(c),
		MediaType: input.MediaType,
		URL:       input.URL,
	})
	if err != nil {
		return RenderError(c, err)
	}
	return Results(c, fiber.StatusCreated, media)
}

// List returns the caller's media.
func (h *MediaHandler) List(c *fiber.Ctx) error {
	media, err := h.store.ListMediaByUser(userID(c))
	if err != nil {
		return RenderError(c, err)
	}
	return Results(c, fiber.StatusOK, media)
}

// SetPrimary promotes one record to primary; every other record of the
// caller is demoted in the same operation.
func (h *MediaHandler) SetPrimary(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return Error(c, fiber.StatusBadRequest, "ERR_INVALID_ID", "Media id must be a positive integer")
	}

	if err := h.store.SetPrimaryMedia(userID(c), uint(id)); err != nil {
		return RenderError(c, err)
	}
	return OKMeta(c, "OK_MEDIA_PRIMARY", "Primary media updated")
}
