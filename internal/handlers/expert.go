package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mentorlink/mentorlink-backend/internal/models"
	"github.com/mentorlink/mentorlink-backend/internal/storage"
)

// ExpertHandler manages expert records and their profiles.
type ExpertHandler struct {
	store storage.Store
}

// NewExpertHandler creates the expert handler.
func NewExpertHandler(store storage.Store) *ExpertHandler {
	return &ExpertHandler{store: store}
}

// Register turns the caller into an expert. The profile is created
// explicitly here, in the same operation, rather than through a model
// hook.
func (h *ExpertHandler) Register(c *fiber.Ctx) error {
	var reg models.ExpertRegistration
	if err := c.BodyParser(&reg); err != nil {
		return Error(c, fiber.StatusBadRequest, "ERR_INVALID_BODY", "Invalid request body")
	}
	if reg.Headline == "" {
		return Error(c, fiber.StatusBadRequest, "ERR_MISSING_FIELDS", "headline is required")
	}

	caller := userID(c)
	if _, err := h.store.GetExpertByUser(caller); err == nil {
		return Error(c, fiber.StatusBadRequest, "ERR_ALREADY_EXPERT", "User is already registered as an expert")
	}

	profile := &models.ExpertProfile{
		Headline:      reg.Headline,
		Bio:           reg.Bio,
		RatePerMinute: reg.RatePerMinute,
	}
	for _, name := range reg.TagNames {
		tag, err := h.store.GetTagByName(name)
		if err != nil {
			tag, err = h.store.CreateTag(&models.Tag{Name: name})
			if err != nil {
				return RenderError(c, err)
			}
		}
		profile.Tags = append(profile.Tags, *tag)
	}

	expert, err := h.store.CreateExpert(&models.Expert{UserID: caller}, profile)
	if err != nil {
		return RenderError(c, err)
	}
	return Results(c, fiber.StatusCreated, expert)
}

// Get returns an expert with its profile.
func (h *ExpertHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return Error(c, fiber.StatusBadRequest, "ERR_INVALID_ID", "Expert id must be a positive integer")
	}

	expert, err := h.store.GetExpert(uint(id))
	if err != nil {
		return RenderError(c, err)
	}
	if expert.Profile == nil {
		profile, err := h.store.GetExpertProfile(expert.ID)
		if err == nil {
			expert.Profile = profile
		}
	}
	return Results(c, fiber.StatusOK, expert)
}
