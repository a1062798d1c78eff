package models

import (
	"gorm.io/gorm"
)

// Card is a vaulted payment method. Only the gateway token and display
// fields are stored; raw card data never touches this service.
type Card struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"not null;index"`
	Token     string `json:"-" gorm:"not null"` // gateway vault token
	Last4     string `json:"last4"`
	Brand     string `json:"brand"`
	IsDefault bool   `json:"is_default" gorm:"default:false"`
}

// CardInput exchanges a one-time client nonce for a vaulted card.
type CardInput struct {
	Nonce     string `json:"nonce"`
	IsDefault bool   `json:"is_default"`
}

// Charge records a completed billing attempt against a session.
type Charge struct {
	gorm.Model
	SessionID uint    `json:"session_id" gorm:"not null;index"`
	UserID    uint    `json:"user_id" gorm:"not null;index"`
	CardID    uint    `json:"card_id"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"` // "captured" or "failed"
	GatewayID string  `json:"gateway_id"`
}

const (
	ChargeStatusCaptured = "captured"
	ChargeStatusFailed   = "failed"
)
