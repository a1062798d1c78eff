package storage

import (
	"time"

	"github.com/mentorlink/mentorlink-backend/internal/models"
)

// Store defines the interface for storage operations. Two
// implementations exist: MemoryStore for tests/local runs and
// DatabaseStore backed by Postgres.
type Store interface {
	// User operations
	CreateUser(user *models.User) (*models.User, error)
	GetUser(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error

	// Expert operations
	CreateExpert(expert *models.Expert, profile *models.ExpertProfile) (*models.Expert, error)
	GetExpert(id uint) (*models.Expert, error)
	GetExpertByUser(userID uint) (*models.Expert, error)
	GetExpertProfile(expertID uint) (*models.ExpertProfile, error)
	UpdateExpertProfile(profile *models.ExpertProfile) error
	ListExperts(filters *models.ExpertFilters) ([]*models.ExpertProfile, error)
	ListQualifiedExperts(minAvgRating float64, minNumRatings int) ([]*models.ExpertProfile, error)

	// Tag operations
	CreateTag(tag *models.Tag) (*models.Tag, error)
	GetTag(id uint) (*models.Tag, error)
	GetTagByName(name string) (*models.Tag, error)
	IncrementTagSearches(id uint) error
	ResetWeeklyTagSearches() error

	// Session operations
	CreateSession(session *models.Session) (*models.Session, error)
	GetSession(id uint) (*models.Session, error)
	UpdateSession(session *models.Session) error
	ListSessionsByUser(userID uint) ([]*models.Session, error)
	ListScheduledSessionsDue(within time.Duration) ([]*models.Session, error)

	// Session event operations (append-only)
	AppendSessionEvent(event *models.SessionEvent) (*models.SessionEvent, error)
	ListSessionEvents(sessionID uint) ([]*models.SessionEvent, error)

	// Activity operations
	CreateActivity(activity *models.Activity) (*models.Activity, error)
	GetActivity(id uint) (*models.Activity, error)
	UpdateActivity(activity *models.Activity) error

	// Notification operations
	CreateNotification(notification *models.Notification) (*models.Notification, error)
	GetNotification(id uint) (*models.Notification, error)
	ListNotificationsByUser(userID uint) ([]*models.Notification, error)

	// Device operations
	CreateDevice(device *models.Device) (*models.Device, error)
	DeleteDevice(id uint, userID uint) error
	ListDevicesByUser(userID uint) ([]*models.Device, error)

	// Media operations
	CreateMedia(media *models.UserMedia) (*models.UserMedia, error)
	GetMedia(id uint) (*models.UserMedia, error)
	SetPrimaryMedia(userID, mediaID uint) error
	ListMediaByUser(userID uint) ([]*models.UserMedia, error)

	// Content operations
	CreateContent(content *models.Content) (*models.Content, error)
	GetContent(id uint) (*models.Content, error)
	DeleteContent(id uint) error

	// Card operations
	CreateCard(card *models.Card) (*models.Card, error)
	ListCardsByUser(userID uint) ([]*models.Card, error)
	GetDefaultCard(userID uint) (*models.Card, error)

	// Charge operations
	CreateCharge(charge *models.Charge) (*models.Charge, error)
	ListChargesByUser(userID uint) ([]*models.Charge, error)

	// Stats operations
	GetUserStats(userID uint) (*models.UserStats, error)
}
