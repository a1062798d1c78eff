package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorlink/mentorlink-backend/internal/models"
)

func seedActivity(f *fixture) (*models.Activity, *models.Notification) {
	activity, _ := f.store.CreateActivity(&models.Activity{
		UserID: f.expertUser.ID,
		Verb:   "session_requested",
	})
	notification, _ := f.store.CreateNotification(&models.Notification{
		UserID:     f.expertUser.ID,
		ActivityID: activity.ID,
		Title:      "New consultation request",
		Body:       "Ana wants to start a session with you",
	})
	return activity, notification
}

func TestDispatchDeliversBothChannels(t *testing.T) {
	f := newFixture()
	notifier := &fakeNotifier{}
	d := NewDispatcher(f.store, notifier)

	activity, notification := seedActivity(f)
	require.NoError(t, d.Dispatch(activity.ID, notification.ID))

	assert.Equal(t, 1, notifier.pushCount())
	assert.Equal(t, 1, notifier.emailCount())
	assert.Equal(t, f.expertUser.Email, notifier.emails[0].To)

	got, err := f.store.GetActivity(activity.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DeliverySuccess, got.PushStatus)
	assert.Equal(t, models.DeliverySuccess, got.EmailStatus)
}

func TestDispatchIsIdempotent(t *testing.T) {
	f := newFixture()
	notifier := &fakeNotifier{}
	d := NewDispatcher(f.store, notifier)

	activity, notification := seedActivity(f)
	require.NoError(t, d.Dispatch(activity.ID, notification.ID))
	afterFirst, _ := f.store.GetActivity(activity.ID)

	// A duplicate delivery of the same job must not send again or
	// touch the statuses.
	require.NoError(t, d.Dispatch(activity.ID, notification.ID))

	assert.Equal(t, 1, notifier.pushCount())
	assert.Equal(t, 1, notifier.emailCount())

	afterSecond, _ := f.store.GetActivity(activity.ID)
	assert.Equal(t, afterFirst.PushStatus, afterSecond.PushStatus)
	assert.Equal(t, afterFirst.EmailStatus, afterSecond.EmailStatus)
	assert.Equal(t, afterFirst.UpdatedAt, afterSecond.UpdatedAt, "no-op dispatch must not write")
}

func TestDispatchSkipsChannelsAlreadyInProgress(t *testing.T) {
	f := newFixture()
	notifier := &fakeNotifier{}
	d := NewDispatcher(f.store, notifier)

	activity, notification := seedActivity(f)
	activity.PushStatus = models.DeliveryInProgress
	activity.EmailStatus = models.DeliverySuccess
	require.NoError(t, f.store.UpdateActivity(activity))

	require.NoError(t, d.Dispatch(activity.ID, notification.ID))
	assert.Zero(t, notifier.pushCount())
	assert.Zero(t, notifier.emailCount())
}

func TestDispatchFailureMarksChannelForRetry(t *testing.T) {
	f := newFixture()
	notifier := &fakeNotifier{failPush: true}
	d := NewDispatcher(f.store, notifier)

	activity, notification := seedActivity(f)
	require.NoError(t, d.Dispatch(activity.ID, notification.ID))

	got, _ := f.store.GetActivity(activity.ID)
	assert.Equal(t, models.DeliveryFailure, got.PushStatus, "failed sends settle as failure, not in_progress")
	assert.Equal(t, models.DeliverySuccess, got.EmailStatus, "channels fail independently")

	// A later dispatch retries only the failed channel.
	notifier.failPush = false
	require.NoError(t, d.Dispatch(activity.ID, notification.ID))

	got, _ = f.store.GetActivity(activity.ID)
	assert.Equal(t, models.DeliverySuccess, got.PushStatus)
	assert.Equal(t, 1, notifier.pushCount())
	assert.Equal(t, 1, notifier.emailCount(), "successful email is not resent")
}

func TestDispatchWithMissingNotificationLeavesChannelsPending(t *testing.T) {
	f := newFixture()
	notifier := &fakeNotifier{}
	d := NewDispatcher(f.store, notifier)

	activity, notification := seedActivity(f)

	// A bad notification id must not strand the activity: statuses stay
	// pending so a later dispatch can still deliver.
	err := d.Dispatch(activity.ID, notification.ID+100)
	require.Error(t, err)
	assert.Zero(t, notifier.pushCount())
	assert.Zero(t, notifier.emailCount())

	got, _ := f.store.GetActivity(activity.ID)
	assert.Equal(t, models.DeliveryPending, got.PushStatus)
	assert.Equal(t, models.DeliveryPending, got.EmailStatus)

	require.NoError(t, d.Dispatch(activity.ID, notification.ID))

	got, _ = f.store.GetActivity(activity.ID)
	assert.Equal(t, models.DeliverySuccess, got.PushStatus)
	assert.Equal(t, models.DeliverySuccess, got.EmailStatus)
	assert.Equal(t, 1, notifier.pushCount())
	assert.Equal(t, 1, notifier.emailCount())
}

func TestDispatchWithNoDevicesSucceeds(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.store.DeleteDevice(f.expertDevice.ID, f.expertUser.ID))

	notifier := &fakeNotifier{}
	d := NewDispatcher(f.store, notifier)

	activity, notification := seedActivity(f)
	require.NoError(t, d.Dispatch(activity.ID, notification.ID))

	got, _ := f.store.GetActivity(activity.ID)
	assert.Equal(t, models.DeliverySuccess, got.PushStatus, "nothing to deliver counts as delivered")
	assert.Zero(t, notifier.pushCount())
}
