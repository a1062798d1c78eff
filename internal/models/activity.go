package models

import (
	"gorm.io/gorm"
)

// Activity is a notification-worthy event with independent delivery
// tracking per channel. Dispatch for a channel only proceeds while its
// status is pending or failure; once picked up it moves to in_progress
// and finishes as success or failure.
type Activity struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"not null;index"`
	Verb        string `json:"verb" gorm:"not null"` // e.g. "session_requested"
	EmailStatus string `json:"email_status" gorm:"not null;default:'pending'"`
	PushStatus  string `json:"push_status" gorm:"not null;default:'pending'"`
}

// Per-channel delivery statuses.
const (
	DeliveryPending    = "pending"
	DeliveryInProgress = "in_progress"
	DeliveryFailure    = "failure"
	DeliverySuccess    = "success"
)

// NeedsDelivery reports whether a channel status still requires a send
// attempt.
func NeedsDelivery(status string) bool {
	return status == DeliveryPending || status == DeliveryFailure
}

// Notification is a queued or delivered message tied to a user. The
// payload is opaque JSON rendered by clients; the API exposes rows
// read-only to their owner.
type Notification struct {
	gorm.Model
	UserID     uint   `json:"user_id" gorm:"not null;index"`
	ActivityID uint   `json:"activity_id" gorm:"index"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	Payload    string `json:"payload"` // JSON blob
	IsRead     bool   `json:"is_read" gorm:"default:false"`
}
