package services

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mentorlink/mentorlink-backend/internal/metrics"
	"github.com/mentorlink/mentorlink-backend/internal/models"
	"github.com/mentorlink/mentorlink-backend/internal/storage"
)

// BillingService charges users for completed sessions and vaults their
// payment methods through the external gateway.
type BillingService struct {
	store   storage.Store
	gateway PaymentGateway
}

// NewBillingService wires billing.
func NewBillingService(store storage.Store, gateway PaymentGateway) *BillingService {
	return &BillingService{store: store, gateway: gateway}
}

// AddCard exchanges a one-time client nonce for a vaulted card. A
// declined pre-authorization surfaces as ErrInvalidPaymentPreauth.
func (b *BillingService) AddCard(userID uint, input *models.CardInput) (*models.Card, error) {
	vaulted, err := b.gateway.VaultCard(input.Nonce)
	if err != nil {
		return nil, err
	}

	card := &models.Card{
		UserID:    userID,
		Token:     vaulted.Token,
		Last4:     vaulted.Last4,
		Brand:     vaulted.Brand,
		IsDefault: input.IsDefault,
	}
	return b.store.CreateCard(card)
}

// ChargeSession bills the completed session against the user's default
// card. The charge row records the outcome either way so audit never
// loses a billing attempt.
func (b *BillingService) ChargeSession(session *models.Session) error {
	profile, err := b.store.GetExpertProfile(session.ExpertID)
	if err != nil {
		return err
	}
	amount := profile.RatePerMinute * float64(session.SessionLength)
	if amount <= 0 {
		return nil
	}

	card, err := b.store.GetDefaultCard(session.UserID)
	if err != nil {
		if err == models.ErrNotFound {
			return models.ErrNoDefaultCard
		}
		return err
	}

	reference := fmt.Sprintf("session-%d", session.ID)
	charge := &models.Charge{
		SessionID: session.ID,
		UserID:    session.UserID,
		CardID:    card.ID,
		Amount:    amount,
	}

	gatewayID, err := b.gateway.Charge(card.Token, amount, reference)
	if err != nil {
		charge.Status = models.ChargeStatusFailed
		metrics.ChargesTotal.WithLabelValues("failed").Inc()
		if _, createErr := b.store.CreateCharge(charge); createErr != nil {
			log.Error().Err(createErr).Uint("session_id", session.ID).Msg("failed to record failed charge")
		}
		return err
	}

	charge.Status = models.ChargeStatusCaptured
	charge.GatewayID = gatewayID
	metrics.ChargesTotal.WithLabelValues("captured").Inc()
	_, err = b.store.CreateCharge(charge)
	return err
}

// Cards lists a user's vaulted cards.
func (b *BillingService) Cards(userID uint) ([]*models.Card, error) {
	return b.store.ListCardsByUser(userID)
}
