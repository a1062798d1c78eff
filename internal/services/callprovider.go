package services

import (
	"github.com/google/uuid"
)

// CallProvider allocates a call session with the external call-session
// provider and returns its connection id.
type CallProvider interface {
	CreateConnection(userID, expertID uint) (string, error)
}

// LocalCallProvider mints connection ids locally. Used when no external
// provider is configured (local runs, tests); the real provider plugs
// in behind the same interface.
type LocalCallProvider struct{}

func (LocalCallProvider) CreateConnection(userID, expertID uint) (string, error) {
	return uuid.NewString(), nil
}
