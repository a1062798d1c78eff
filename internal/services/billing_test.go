package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorlink/mentorlink-backend/internal/models"
)

func TestAddCardVaultsNonce(t *testing.T) {
	f := newFixture()
	gateway := &fakeGateway{}
	billing := NewBillingService(f.store, gateway)

	card, err := billing.AddCard(f.user.ID, &models.CardInput{Nonce: "abc", IsDefault: true})
	require.NoError(t, err)
	assert.Equal(t, "tok_abc", card.Token)
	assert.Equal(t, "4242", card.Last4)
	assert.True(t, card.IsDefault)
}

func TestAddCardDeclinedPreauth(t *testing.T) {
	f := newFixture()
	gateway := &fakeGateway{declineVault: true}
	billing := NewBillingService(f.store, gateway)

	_, err := billing.AddCard(f.user.ID, &models.CardInput{Nonce: "abc"})
	assert.Equal(t, models.ErrInvalidPaymentPreauth, err)

	cards, _ := billing.Cards(f.user.ID)
	assert.Empty(t, cards, "declined nonce must not vault a card")
}

func TestChargeSessionWithoutDefaultCard(t *testing.T) {
	f := newFixture()
	billing := NewBillingService(f.store, &fakeGateway{})

	session := &models.Session{UserID: f.user.ID, ExpertID: f.expert.ID, SessionLength: 10}
	session, _ = f.store.CreateSession(session)

	err := billing.ChargeSession(session)
	assert.Equal(t, models.ErrNoDefaultCard, err)
}

func TestChargeSessionRecordsFailedCharge(t *testing.T) {
	f := newFixture()
	gateway := &fakeGateway{declineCharge: true}
	billing := NewBillingService(f.store, gateway)

	_, err := f.store.CreateCard(&models.Card{UserID: f.user.ID, Token: "tok", IsDefault: true})
	require.NoError(t, err)

	session, _ := f.store.CreateSession(&models.Session{UserID: f.user.ID, ExpertID: f.expert.ID, SessionLength: 10})

	err = billing.ChargeSession(session)
	require.Error(t, err)

	charges, _ := f.store.ListChargesByUser(f.user.ID)
	require.Len(t, charges, 1)
	assert.Equal(t, models.ChargeStatusFailed, charges[0].Status)
}
