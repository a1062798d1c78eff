package models

import (
	"time"

	"gorm.io/gorm"
)

// Session is a single scheduled or live consultation call between a user
// and an expert. Rows are soft-deleted only; billing and audit read them
// after the call ends.
type Session struct {
	gorm.Model
	UserID          uint       `json:"user_id" gorm:"not null;index"`
	ExpertID        uint       `json:"expert_id" gorm:"not null;index"`
	ExpertProfileID uint       `json:"expert_profile_id" gorm:"not null"`
	CallStatus      string     `json:"call_status" gorm:"not null;index"`
	ScheduledLength int        `json:"scheduled_length"` // minutes
	SessionLength   int        `json:"session_length"`   // actual minutes, set on completion
	ScheduledAt     *time.Time `json:"scheduled_at"`
	StartedAt       *time.Time `json:"started_at"`
	ConnectionID    string     `json:"connection_id" gorm:"index"`
}

// Call status values. Transitions are one-directional: a session never
// returns to "initiated" once it has left it.
const (
	CallStatusInitiated    = "initiated"
	CallStatusAccepted     = "accepted"
	CallStatusDeclined     = "declined"
	CallStatusCompleted    = "completed"
	CallStatusDelayed      = "delayed"
	CallStatusSwitched     = "switched"
	CallStatusInProgress   = "in_progress"
	CallStatusScheduled    = "scheduled"
	CallStatusUserMissed   = "user_missed"
	CallStatusExpertMissed = "expert_missed"
	CallStatusCancelled    = "cancelled"
)

// callTransitions maps each status to the statuses it may move to.
// Terminal statuses (completed, cancelled, user_missed, expert_missed)
// have no outgoing edges.
var callTransitions = map[string][]string{
	CallStatusScheduled:  {CallStatusInitiated, CallStatusCancelled},
	CallStatusInitiated:  {CallStatusAccepted, CallStatusDeclined, CallStatusDelayed, CallStatusSwitched, CallStatusCancelled, CallStatusExpertMissed},
	CallStatusAccepted:   {CallStatusInProgress, CallStatusCancelled, CallStatusUserMissed, CallStatusExpertMissed},
	CallStatusDelayed:    {CallStatusAccepted, CallStatusDeclined, CallStatusCancelled, CallStatusUserMissed, CallStatusExpertMissed},
	CallStatusSwitched:   {CallStatusAccepted, CallStatusInProgress, CallStatusCancelled},
	CallStatusInProgress: {CallStatusCompleted, CallStatusCancelled, CallStatusUserMissed, CallStatusExpertMissed},
	CallStatusDeclined:   {CallStatusCancelled},
}

// CanTransition reports whether a session may move from one call status
// to another.
func CanTransition(from, to string) bool {
	for _, next := range callTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether a call status has no outgoing transitions.
func IsTerminalStatus(status string) bool {
	return len(callTransitions[status]) == 0
}

// SessionEvent is an append-only log entry recording a session state
// change. Rows are never mutated or deleted.
type SessionEvent struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	SessionID    uint      `json:"session_id" gorm:"not null;index"`
	EventType    string    `json:"event_type" gorm:"not null"`
	EventReason  string    `json:"event_reason"`
	ConnectionID string    `json:"connection_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// SessionRequest is the payload accepted by POST /sessions/.
type SessionRequest struct {
	ExpertID        uint       `json:"expert_id"`
	ScheduledLength int        `json:"scheduled_length"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
}

// SessionStatusUpdate is the payload accepted by PATCH /sessions/:id/status.
type SessionStatusUpdate struct {
	CallStatus    string `json:"call_status"`
	Reason        string `json:"reason"`
	SessionLength int    `json:"session_length"`
}
