package services

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mentorlink/mentorlink-backend/internal/jobs"
	"github.com/mentorlink/mentorlink-backend/internal/metrics"
	"github.com/mentorlink/mentorlink-backend/internal/models"
	"github.com/mentorlink/mentorlink-backend/internal/storage"
)

// Enqueuer hands a dispatch job to the background queue.
type Enqueuer interface {
	Enqueue(job jobs.DispatchJob) error
}

// SessionService owns the consultation call lifecycle: creation, status
// transitions, the initialization side effects and the billing trigger
// on completion.
type SessionService struct {
	store    storage.Store
	provider CallProvider
	queue    Enqueuer
	billing  *BillingService
}

// NewSessionService wires the session lifecycle.
func NewSessionService(store storage.Store, provider CallProvider, queue Enqueuer, billing *BillingService) *SessionService {
	return &SessionService{store: store, provider: provider, queue: queue, billing: billing}
}

// Create records a new session. The initial status is "initiated", or
// "scheduled" when the request names a future start time. Only an
// initiated session is initialized immediately; a pre-scheduled session
// must not notify the expert at creation.
func (s *SessionService) Create(userID uint, req *models.SessionRequest) (*models.Session, error) {
	expert, err := s.store.GetExpert(req.ExpertID)
	if err != nil {
		return nil, err
	}
	profile, err := s.store.GetExpertProfile(expert.ID)
	if err != nil {
		return nil, err
	}

	status := models.CallStatusInitiated
	if req.ScheduledAt != nil && req.ScheduledAt.After(time.Now()) {
		status = models.CallStatusScheduled
	}

	session := &models.Session{
		UserID:          userID,
		ExpertID:        expert.ID,
		ExpertProfileID: profile.ID,
		CallStatus:      status,
		ScheduledLength: req.ScheduledLength,
		ScheduledAt:     req.ScheduledAt,
	}
	session, err = s.store.CreateSession(session)
	if err != nil {
		return nil, err
	}
	metrics.SessionsCreated.WithLabelValues(status).Inc()

	s.appendEvent(session, "created", status)

	if status == models.CallStatusInitiated {
		if err := s.initialize(session, expert); err != nil {
			return nil, err
		}
	}
	return session, nil
}

// initialize prepares the call with the external provider and queues a
// push notification to the expert. Runs exactly once, at creation, and
// only for sessions created in the initiated status.
func (s *SessionService) initialize(session *models.Session, expert *models.Expert) error {
	connID, err := s.provider.CreateConnection(session.UserID, session.ExpertID)
	if err != nil {
		return err
	}
	session.ConnectionID = connID
	if err := s.store.UpdateSession(session); err != nil {
		return err
	}
	s.appendEvent(session, "initialized", "call_prepared")

	user, err := s.store.GetUser(session.UserID)
	if err != nil {
		return err
	}

	activity, err := s.store.CreateActivity(&models.Activity{
		UserID: expert.UserID,
		Verb:   "session_requested",
	})
	if err != nil {
		return err
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"session_id":    session.ID,
		"connection_id": session.ConnectionID,
		"user_id":       session.UserID,
	})
	notification, err := s.store.CreateNotification(&models.Notification{
		UserID:     expert.UserID,
		ActivityID: activity.ID,
		Title:      "New consultation request",
		Body:       user.Name + " wants to start a session with you",
		Payload:    string(payload),
	})
	if err != nil {
		return err
	}

	if err := s.queue.Enqueue(jobs.DispatchJob{
		ActivityID:     activity.ID,
		NotificationID: notification.ID,
	}); err != nil {
		// The activity stays pending; a later dispatch picks it up.
		log.Error().Err(err).Uint("activity_id", activity.ID).Msg("failed to enqueue dispatch job")
	}
	return nil
}

// UpdateStatus moves a session along the one-directional transition
// graph, appending a SessionEvent for the change. Completing a session
// records its actual length and triggers billing.
func (s *SessionService) UpdateStatus(sessionID, actorUserID uint, update *models.SessionStatusUpdate) (*models.Session, error) {
	session, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.checkParticipant(session, actorUserID); err != nil {
		return nil, err
	}

	if !models.CanTransition(session.CallStatus, update.CallStatus) {
		return nil, models.ErrInvalidTransition
	}

	session.CallStatus = update.CallStatus
	switch update.CallStatus {
	case models.CallStatusInProgress:
		now := time.Now()
		session.StartedAt = &now
	case models.CallStatusCompleted:
		session.SessionLength = update.SessionLength
		if session.SessionLength == 0 && session.StartedAt != nil {
			session.SessionLength = int(time.Since(*session.StartedAt).Minutes())
		}
	}

	if err := s.store.UpdateSession(session); err != nil {
		return nil, err
	}
	s.appendEvent(session, update.CallStatus, update.Reason)

	if update.CallStatus == models.CallStatusCompleted && s.billing != nil {
		if err := s.billing.ChargeSession(session); err != nil {
			// Billing failures are recorded as failed charges; the
			// completed session itself stands.
			log.Error().Err(err).Uint("session_id", session.ID).Msg("session billing failed")
		}
	}
	return session, nil
}

// Get returns a session visible to the given user.
func (s *SessionService) Get(sessionID, userID uint) (*models.Session, error) {
	session, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.checkParticipant(session, userID); err != nil {
		return nil, err
	}
	return session, nil
}

// Events returns the append-only event log for a session.
func (s *SessionService) Events(sessionID, userID uint) ([]*models.SessionEvent, error) {
	if _, err := s.Get(sessionID, userID); err != nil {
		return nil, err
	}
	return s.store.ListSessionEvents(sessionID)
}

func (s *SessionService) checkParticipant(session *models.Session, userID uint) error {
	if session.UserID == userID {
		return nil
	}
	expert, err := s.store.GetExpert(session.ExpertID)
	if err == nil && expert.UserID == userID {
		return nil
	}
	return models.ErrForbidden
}

func (s *SessionService) appendEvent(session *models.Session, eventType, reason string) {
	_, err := s.store.AppendSessionEvent(&models.SessionEvent{
		SessionID:    session.ID,
		EventType:    eventType,
		EventReason:  reason,
		ConnectionID: session.ConnectionID,
	})
	if err != nil {
		log.Error().Err(err).Uint("session_id", session.ID).Msg("failed to append session event")
	}
}
