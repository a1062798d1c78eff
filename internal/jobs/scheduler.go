package jobs

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mentorlink/mentorlink-backend/internal/storage"
)

// Texter sends a plain text message. Failures are logged and swallowed;
// a missed reminder never fails a job run.
type Texter interface {
	SendSMS(to, body string) error
}

// Scheduler owns the recurring background jobs: weekly tag counter
// resets and SMS reminders for upcoming scheduled sessions.
type Scheduler struct {
	store     storage.Store
	texter    Texter
	isRunning bool
	stop      chan struct{}
}

// NewScheduler creates the scheduled job runner.
func NewScheduler(store storage.Store, texter Texter) *Scheduler {
	return &Scheduler{store: store, texter: texter}
}

// Start begins all recurring jobs.
func (s *Scheduler) Start() {
	if s.isRunning {
		log.Warn().Msg("scheduled jobs already running")
		return
	}
	s.isRunning = true
	s.stop = make(chan struct{})

	go s.runWeeklyTagReset()
	go s.runSessionReminders()

	log.Info().Msg("scheduled jobs started")
}

// Stop halts all recurring jobs.
func (s *Scheduler) Stop() {
	if !s.isRunning {
		return
	}
	s.isRunning = false
	close(s.stop)
	log.Info().Msg("scheduled jobs stopped")
}

// runWeeklyTagReset zeroes the weekly search counters every Sunday at
// midnight.
func (s *Scheduler) runWeeklyTagReset() {
	for {
		now := time.Now()
		daysUntilSunday := (7 - int(now.Weekday())) % 7
		if daysUntilSunday == 0 && (now.Hour() > 0 || now.Minute() > 0) {
			daysUntilSunday = 7
		}
		nextRun := time.Date(now.Year(), now.Month(), now.Day()+daysUntilSunday, 0, 0, 0, 0, now.Location())

		log.Info().Time("next_run", nextRun).Msg("weekly tag counter reset scheduled")
		select {
		case <-s.stop:
			return
		case <-time.After(time.Until(nextRun)):
		}

		if err := s.store.ResetWeeklyTagSearches(); err != nil {
			log.Error().Err(err).Msg("weekly tag counter reset failed")
			continue
		}
		log.Info().Msg("weekly tag counters reset")
	}
}

// runSessionReminders texts users about scheduled sessions starting
// within the next 30 minutes. Runs every 5 minutes.
func (s *Scheduler) runSessionReminders() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sendSessionReminders()
		}
	}
}

func (s *Scheduler) sendSessionReminders() {
	sessions, err := s.store.ListScheduledSessionsDue(30 * time.Minute)
	if err != nil {
		log.Error().Err(err).Msg("failed to list upcoming sessions")
		return
	}

	sent := 0
	for _, session := range sessions {
		user, err := s.store.GetUser(session.UserID)
		if err != nil || user.Phone == "" {
			continue
		}

		body := fmt.Sprintf("Reminder: your MentorLink session starts at %s.",
			session.ScheduledAt.Format("15:04"))
		// SMS failures are deliberately not surfaced.
		if err := s.texter.SendSMS(user.Phone, body); err != nil {
			log.Warn().Err(err).Uint("session_id", session.ID).Msg("session reminder SMS failed")
			continue
		}
		sent++
	}

	if sent > 0 {
		log.Info().Int("sent", sent).Msg("session reminders sent")
	}
}
