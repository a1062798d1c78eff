package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mentorlink/mentorlink-backend/internal/models"
	"github.com/mentorlink/mentorlink-backend/internal/services"
)

// PaymentHandler manages vaulted cards.
type PaymentHandler struct {
	billing *services.BillingService
}

// NewPaymentHandler creates the payment handler.
func NewPaymentHandler(billing *services.BillingService) *PaymentHandler {
	return &PaymentHandler{billing: billing}
}

// AddCard exchanges a client nonce for a vaulted card.
func (h *PaymentHandler) AddCard(c *fiber.Ctx) error {
	var input models.CardInput
	if err := c.BodyParser(&input); err != nil {
		return Error(c, fiber.StatusBadRequest, "ERR_INVALID_BODY", "Invalid request body")
	}
	if input.Nonce == "" {
		return Error(c, fiber.StatusBadRequest, "ERR_MISSING_FIELDS", "nonce is required")
	}

	card, err := h.billing.AddCard(userID(c), &input)
	if err != nil {
		return RenderError(c, err)
	}
	return Results(c, fiber.StatusCreated, card)
}

// ListCards returns the caller's vaulted cards.
func (h *PaymentHandler) ListCards(c *fiber.Ctx) error {
	cards, err := h.billing.Cards(userID(c))
	if err != nil {
		return RenderError(c, err)
	}
	return Results(c, fiber.StatusOK, cards)
}
