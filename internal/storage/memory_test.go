package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorlink/mentorlink-backend/internal/models"
)

func seedUser(t *testing.T, store *MemoryStore, email string) *models.User {
	t.Helper()
	user, err := store.CreateUser(&models.User{Name: "U", Email: email, PasswordHash: "x"})
	require.NoError(t, err)
	return user
}

func TestSetPrimaryMediaIsExclusivePerOwner(t *testing.T) {
	store := NewMemoryStore()
	owner := seedUser(t, store, "owner@example.com")
	other := seedUser(t, store, "other@example.com")

	first, _ := store.CreateMedia(&models.UserMedia{UserID: owner.ID, MediaType: "image", URL: "a.jpg", IsPrimary: true})
	second, _ := store.CreateMedia(&models.UserMedia{UserID: owner.ID, MediaType: "image", URL: "b.jpg"})
	foreign, _ := store.CreateMedia(&models.UserMedia{UserID: other.ID, MediaType: "image", URL: "c.jpg", IsPrimary: true})

	require.NoError(t, store.SetPrimaryMedia(owner.ID, second.ID))

	media, _ := store.ListMediaByUser(owner.ID)
	require.Len(t, media, 2)
	for _, item := range media {
		assert.Equal(t, item.ID == second.ID, item.IsPrimary)
	}
	_ = first

	// Another owner's primary flag is untouched.
	got, _ := store.GetMedia(foreign.ID)
	assert.True(t, got.IsPrimary)
}

func TestSetPrimaryMediaRejectsForeignMedia(t *testing.T) {
	store := NewMemoryStore()
	owner := seedUser(t, store, "owner@example.com")
	other := seedUser(t, store, "other@example.com")

	foreign, _ := store.CreateMedia(&models.UserMedia{UserID: other.ID, MediaType: "image", URL: "c.jpg"})

	assert.Equal(t, models.ErrForbidden, store.SetPrimaryMedia(owner.ID, foreign.ID))
	assert.Equal(t, models.ErrNotFound, store.SetPrimaryMedia(owner.ID, 9999))
}

func TestCreateDeviceReassignsExistingToken(t *testing.T) {
	store := NewMemoryStore()
	alice := seedUser(t, store, "alice@example.com")
	bob := seedUser(t, store, "bob@example.com")

	first, err := store.CreateDevice(&models.Device{UserID: alice.ID, Platform: "ios", Token: "tok-1"})
	require.NoError(t, err)

	// Same token registered by another account moves ownership instead
	// of duplicating the row.
	second, err := store.CreateDevice(&models.Device{UserID: bob.ID, Platform: "android", Token: "tok-1"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, bob.ID, second.UserID)
	assert.Equal(t, "android", second.Platform)

	aliceDevices, _ := store.ListDevicesByUser(alice.ID)
	assert.Empty(t, aliceDevices)
	bobDevices, _ := store.ListDevicesByUser(bob.ID)
	assert.Len(t, bobDevices, 1)
}

func TestDeleteDeviceChecksOwnership(t *testing.T) {
	store := NewMemoryStore()
	alice := seedUser(t, store, "alice@example.com")
	bob := seedUser(t, store, "bob@example.com")

	device, _ := store.CreateDevice(&models.Device{UserID: alice.ID, Platform: "ios", Token: "tok-1"})

	assert.Equal(t, models.ErrForbidden, store.DeleteDevice(device.ID, bob.ID))
	require.NoError(t, store.DeleteDevice(device.ID, alice.ID))
	assert.Equal(t, models.ErrNotFound, store.DeleteDevice(device.ID, alice.ID))
}

func TestCreateCardDemotesPreviousDefault(t *testing.T) {
	store := NewMemoryStore()
	user := seedUser(t, store, "payer@example.com")

	first, _ := store.CreateCard(&models.Card{UserID: user.ID, Token: "tok-1", IsDefault: true})
	second, _ := store.CreateCard(&models.Card{UserID: user.ID, Token: "tok-2", IsDefault: true})

	def, err := store.GetDefaultCard(user.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, def.ID)

	cards, _ := store.ListCardsByUser(user.ID)
	require.Len(t, cards, 2)
	for _, card := range cards {
		assert.Equal(t, card.ID == second.ID, card.IsDefault)
	}
	_ = first
}

func TestGetDefaultCardWhenNoneSet(t *testing.T) {
	store := NewMemoryStore()
	user := seedUser(t, store, "payer@example.com")

	_, err := store.GetDefaultCard(user.ID)
	assert.Equal(t, models.ErrNotFound, err)
}

func TestGetActivityReturnsSnapshot(t *testing.T) {
	store := NewMemoryStore()
	user := seedUser(t, store, "ana@example.com")

	activity, err := store.CreateActivity(&models.Activity{UserID: user.ID, Verb: "session_requested"})
	require.NoError(t, err)

	got, err := store.GetActivity(activity.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DeliveryPending, got.PushStatus)

	// Mutating the returned value must not leak into the store.
	got.PushStatus = models.DeliverySuccess
	got.EmailStatus = models.DeliverySuccess

	fresh, err := store.GetActivity(activity.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DeliveryPending, fresh.PushStatus)
	assert.Equal(t, models.DeliveryPending, fresh.EmailStatus)
}

func TestGetUserByEmailNormalizes(t *testing.T) {
	store := NewMemoryStore()
	seedUser(t, store, "ana@example.com")

	user, err := store.GetUserByEmail("ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
}
