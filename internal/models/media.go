package models

import (
	"gorm.io/gorm"
)

// UserMedia is an uploaded image or video attached to a user profile.
// At most one record per owner may have IsPrimary set; the store
// enforces the exclusivity when a record is promoted.
type UserMedia struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"not null;index"`
	MediaType string `json:"media_type"` // "image" or "video"
	URL       string `json:"url" gorm:"not null"`
	IsPrimary bool   `json:"is_primary" gorm:"default:false"`
}

// MediaUpload is the payload accepted by POST /media/.
type MediaUpload struct {
	MediaType string `json:"media_type"`
	URL       string `json:"url"`
}
