package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorlink/mentorlink-backend/internal/models"
)

func newSessionService(f *fixture, notifier *fakeNotifier, gateway PaymentGateway) (*SessionService, *syncQueue) {
	dispatcher := NewDispatcher(f.store, notifier)
	queue := &syncQueue{dispatcher: dispatcher}
	var billing *BillingService
	if gateway != nil {
		billing = NewBillingService(f.store, gateway)
	}
	return NewSessionService(f.store, LocalCallProvider{}, queue, billing), queue
}

func TestCreateInitiatedSessionNotifiesExpertOnce(t *testing.T) {
	f := newFixture()
	notifier := &fakeNotifier{}
	svc, queue := newSessionService(f, notifier, nil)

	session, err := svc.Create(f.user.ID, &models.SessionRequest{
		ExpertID:        f.expert.ID,
		ScheduledLength: 30,
	})
	require.NoError(t, err)

	assert.Equal(t, models.CallStatusInitiated, session.CallStatus)
	assert.NotEmpty(t, session.ConnectionID, "initialize must allocate a connection")

	// Exactly one dispatch job, exactly one push to the expert's device.
	assert.Equal(t, 1, queue.enqueued)
	require.Equal(t, 1, notifier.pushCount())
	assert.Equal(t, f.expertDevice.Token, notifier.pushes[0].Token)

	// The lifecycle is recorded as events.
	events, err := f.store.ListSessionEvents(session.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "created", events[0].EventType)
	assert.Equal(t, "initialized", events[1].EventType)
}

func TestCreateScheduledSessionDoesNotNotify(t *testing.T) {
	f := newFixture()
	notifier := &fakeNotifier{}
	svc, queue := newSessionService(f, notifier, nil)

	future := time.Now().Add(2 * time.Hour)
	session, err := svc.Create(f.user.ID, &models.SessionRequest{
		ExpertID:        f.expert.ID,
		ScheduledLength: 30,
		ScheduledAt:     &future,
	})
	require.NoError(t, err)

	assert.Equal(t, models.CallStatusScheduled, session.CallStatus)
	assert.Empty(t, session.ConnectionID, "scheduled sessions are not initialized at creation")
	assert.Zero(t, queue.enqueued)
	assert.Zero(t, notifier.pushCount())
	assert.Zero(t, notifier.emailCount())
}

func TestUpdateStatusFollowsTransitionGraph(t *testing.T) {
	f := newFixture()
	svc, _ := newSessionService(f, &fakeNotifier{}, nil)

	session, err := svc.Create(f.user.ID, &models.SessionRequest{ExpertID: f.expert.ID, ScheduledLength: 15})
	require.NoError(t, err)

	// initiated -> accepted -> in_progress is legal.
	_, err = svc.UpdateStatus(session.ID, f.expertUser.ID, &models.SessionStatusUpdate{CallStatus: models.CallStatusAccepted, Reason: "expert_answered"})
	require.NoError(t, err)
	updated, err := svc.UpdateStatus(session.ID, f.user.ID, &models.SessionStatusUpdate{CallStatus: models.CallStatusInProgress})
	require.NoError(t, err)
	assert.NotNil(t, updated.StartedAt)

	// Going back to initiated is rejected.
	_, err = svc.UpdateStatus(session.ID, f.user.ID, &models.SessionStatusUpdate{CallStatus: models.CallStatusInitiated})
	assert.Equal(t, models.ErrInvalidTransition, err)

	// Strangers cannot touch the session.
	stranger, _ := f.store.CreateUser(&models.User{Name: "Eve", Email: "eve@example.com", PasswordHash: "x"})
	_, err = svc.UpdateStatus(session.ID, stranger.ID, &models.SessionStatusUpdate{CallStatus: models.CallStatusCompleted})
	assert.Equal(t, models.ErrForbidden, err)
}

func TestCompletingSessionChargesDefaultCard(t *testing.T) {
	f := newFixture()
	gateway := &fakeGateway{}
	svc, _ := newSessionService(f, &fakeNotifier{}, gateway)

	_, err := f.store.CreateCard(&models.Card{UserID: f.user.ID, Token: "tok_1", Last4: "4242", IsDefault: true})
	require.NoError(t, err)

	session, err := svc.Create(f.user.ID, &models.SessionRequest{ExpertID: f.expert.ID, ScheduledLength: 20})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(session.ID, f.expertUser.ID, &models.SessionStatusUpdate{CallStatus: models.CallStatusAccepted})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(session.ID, f.user.ID, &models.SessionStatusUpdate{CallStatus: models.CallStatusInProgress})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(session.ID, f.user.ID, &models.SessionStatusUpdate{CallStatus: models.CallStatusCompleted, SessionLength: 20})
	require.NoError(t, err)

	// 20 minutes at 2.5/minute.
	require.Len(t, gateway.charges, 1)
	assert.Equal(t, 50.0, gateway.charges[0])

	charges, err := f.store.ListChargesByUser(f.user.ID)
	require.NoError(t, err)
	require.Len(t, charges, 1)
	assert.Equal(t, models.ChargeStatusCaptured, charges[0].Status)

	stats, err := f.store.GetUserStats(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CompletedSessions)
	assert.Equal(t, 20, stats.TotalMinutes)
	assert.Equal(t, 50.0, stats.TotalSpent)
}

func TestSessionsAreSoftRetained(t *testing.T) {
	f := newFixture()
	svc, _ := newSessionService(f, &fakeNotifier{}, nil)

	session, err := svc.Create(f.user.ID, &models.SessionRequest{ExpertID: f.expert.ID, ScheduledLength: 10})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(session.ID, f.user.ID, &models.SessionStatusUpdate{CallStatus: models.CallStatusCancelled, Reason: "user_cancelled"})
	require.NoError(t, err)

	// A cancelled session is still readable for audit.
	got, err := f.store.GetSession(session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CallStatusCancelled, got.CallStatus)

	events, _ := f.store.ListSessionEvents(session.ID)
	last := events[len(events)-1]
	assert.Equal(t, models.CallStatusCancelled, last.EventType)
	assert.Equal(t, "user_cancelled", last.EventReason)
}
