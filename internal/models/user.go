package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User represents a platform member (consultation seeker or expert).
type User struct {
	gorm.Model
	Name         string     `json:"name"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	Phone        string     `json:"phone" gorm:"index"`
	PasswordHash string     `json:"-" gorm:"not null"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	IsSuspended  bool       `json:"is_suspended" gorm:"default:false"`
	LastSeenAt   *time.Time `json:"last_seen_at"`
}

// BeforeCreate normalizes contact fields before the row is written.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Phone != "" && !strings.HasPrefix(u.Phone, "+") {
		u.Phone = "+" + u.Phone
	}
	return nil
}

// UserRegistration is the payload accepted by POST /register/.
type UserRegistration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// UserLogin is the payload accepted by POST /login/.
type UserLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
