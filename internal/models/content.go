package models

import (
	"gorm.io/gorm"
)

// Content is a user post mirrored to the external feed store. Deleting
// a row always issues a removal call against the feed keyed by
// (owner id, content id).
type Content struct {
	gorm.Model
	UserID uint   `json:"user_id" gorm:"not null;index"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	URL    string `json:"url"`
}

// ContentInput is the payload accepted by POST /content/.
type ContentInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}
