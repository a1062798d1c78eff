package services

import (
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/mentorlink/mentorlink-backend/internal/metrics"
	"github.com/mentorlink/mentorlink-backend/internal/models"
	"github.com/mentorlink/mentorlink-backend/internal/storage"
)

// Dispatcher delivers one activity over whichever channels still need
// it. It is the consumer side of the dispatch queue and must stay
// idempotent: jobs arrive at-least-once.
type Dispatcher struct {
	store    storage.Store
	notifier Notifier
}

// NewDispatcher wires the dispatch consumer.
func NewDispatcher(store storage.Store, notifier Notifier) *Dispatcher {
	return &Dispatcher{store: store, notifier: notifier}
}

// Dispatch loads the activity and, for each channel independently,
// attempts delivery if its status is pending or failure. Channels
// already in_progress or success are left alone; when neither channel
// needs sending the whole call is a no-op with no writes.
//
// A channel is marked in_progress before its send and settles as
// success or failure afterwards, so a failed gateway call is retried by
// the next dispatch instead of staying stuck.
func (d *Dispatcher) Dispatch(activityID, notificationID uint) error {
	activity, err := d.store.GetActivity(activityID)
	if err != nil {
		return err
	}

	needsEmail := models.NeedsDelivery(activity.EmailStatus)
	needsPush := models.NeedsDelivery(activity.PushStatus)
	if !needsEmail && !needsPush {
		metrics.DispatchNoops.Inc()
		return nil
	}

	// Load the notification before touching any status: a failure here
	// must leave the channels pending so the next dispatch retries.
	notification, err := d.store.GetNotification(notificationID)
	if err != nil {
		return err
	}

	if needsEmail {
		activity.EmailStatus = models.DeliveryInProgress
	}
	if needsPush {
		activity.PushStatus = models.DeliveryInProgress
	}
	if err := d.store.UpdateActivity(activity); err != nil {
		return err
	}

	if needsPush {
		activity.PushStatus = d.sendPush(activity, notification)
	}
	if needsEmail {
		activity.EmailStatus = d.sendEmail(activity, notification)
	}
	return d.store.UpdateActivity(activity)
}

// sendPush delivers to every active device of the activity's user. No
// registered devices counts as success: there is nothing to deliver.
func (d *Dispatcher) sendPush(activity *models.Activity, notification *models.Notification) string {
	devices, err := d.store.ListDevicesByUser(activity.UserID)
	if err != nil {
		log.Error().Err(err).Uint("activity_id", activity.ID).Msg("push dispatch: device lookup failed")
		metrics.Dispatches.WithLabelValues("push", "failure").Inc()
		return models.DeliveryFailure
	}

	data := map[string]string{"activity_id": itoa(activity.ID), "verb": activity.Verb}
	for _, device := range devices {
		if err := d.notifier.SendPush(device.Token, notification.Title, notification.Body, data); err != nil {
			log.Warn().Err(err).Uint("activity_id", activity.ID).Msg("push dispatch failed")
			metrics.Dispatches.WithLabelValues("push", "failure").Inc()
			return models.DeliveryFailure
		}
	}
	metrics.Dispatches.WithLabelValues("push", "success").Inc()
	return models.DeliverySuccess
}

func (d *Dispatcher) sendEmail(activity *models.Activity, notification *models.Notification) string {
	user, err := d.store.GetUser(activity.UserID)
	if err != nil {
		log.Error().Err(err).Uint("activity_id", activity.ID).Msg("email dispatch: user lookup failed")
		metrics.Dispatches.WithLabelValues("email", "failure").Inc()
		return models.DeliveryFailure
	}

	if err := d.notifier.SendEmail(user.Email, notification.Title, notification.Body); err != nil {
		log.Warn().Err(err).Uint("activity_id", activity.ID).Msg("email dispatch failed")
		metrics.Dispatches.WithLabelValues("email", "failure").Inc()
		return models.DeliveryFailure
	}
	metrics.Dispatches.WithLabelValues("email", "success").Inc()
	return models.DeliverySuccess
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
