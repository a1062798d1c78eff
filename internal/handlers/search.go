package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mentorlink/mentorlink-backend/internal/models"
	"github.com/mentorlink/mentorlink-backend/internal/services"
)

// SearchHandler exposes the read-only search and stats query layer.
type SearchHandler struct {
	search *services.SearchService
}

// NewSearchHandler creates the search handler.
func NewSearchHandler(search *services.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// Experts lists expert profiles matching the query filters.
func (h *SearchHandler) Experts(c *fiber.Ctx) error {
	filters := &models.ExpertFilters{
		TagID:     uint(c.QueryInt("tag_id")),
		MinRating: c.QueryFloat("min_rating"),
		Query:     c.Query("q"),
		Limit:     c.QueryInt("limit"),
	}

	profiles, err := h.search.ListExperts(filters)
	if err != nil {
		return RenderError(c, err)
	}
	return Results(c, fiber.StatusOK, profiles)
}

// RandomExperts returns a random sample of well-rated experts.
func (h *SearchHandler) RandomExperts(c *fiber.Ctx) error {
	profiles, err := h.search.RandomExperts(
		c.QueryInt("limit"),
		c.QueryFloat("min_rating"),
		c.QueryInt("min_ratings"),
	)
	if err != nil {
		return RenderError(c, err)
	}
	return Results(c, fiber.StatusOK, profiles)
}

// TagStats reports the search counters for one tag.
func (h *SearchHandler) TagStats(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return Error(c, fiber.StatusBadRequest, "ERR_INVALID_ID", "Tag id must be a positive integer")
	}

	stats, err := h.search.TagStats(uint(id))
	if err != nil {
		return RenderError(c, err)
	}
	return Results(c, fiber.StatusOK, stats)
}

// MeStats aggregates the caller's consultation history.
func (h *SearchHandler) MeStats(c *fiber.Ctx) error {
	stats, err := h.search.MeStats(userID(c))
	if err != nil {
		return RenderError(c, err)
	}
	return Results(c, fiber.StatusOK, stats)
}
