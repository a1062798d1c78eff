package models

import (
	"gorm.io/gorm"
)

// Device is a push-notification registration for one of a user's
// devices.
type Device struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"not null;index"`
	Platform string `json:"platform"` // "ios" or "android"
	Token    string `json:"token" gorm:"uniqueIndex;not null"`
	IsActive bool   `json:"is_active" gorm:"default:true"`
}

// DeviceRegistration is the payload accepted by POST /devices/.
type DeviceRegistration struct {
	Platform string `json:"platform"`
	Token    string `json:"token"`
}
