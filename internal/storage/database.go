package storage

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mentorlink/mentorlink-backend/internal/models"
)

// DatabaseStore implements Store on top of GORM/Postgres.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a store backed by the given GORM connection.
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrNotFound
	}
	return err
}

// User operations

func (s *DatabaseStore) CreateUser(user *models.User) (*models.User, error) {
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *DatabaseStore) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *DatabaseStore) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *DatabaseStore) UpdateUser(user *models.User) error {
	return s.db.Save(user).Error
}

// Expert operations

func (s *DatabaseStore) CreateExpert(expert *models.Expert, profile *models.ExpertProfile) (*models.Expert, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(expert).Error; err != nil {
			return err
		}
		profile.ExpertID = expert.ID
		return tx.Create(profile).Error
	})
	if err != nil {
		return nil, err
	}
	expert.Profile = profile
	return expert, nil
}

func (s *DatabaseStore) GetExpert(id uint) (*models.Expert, error) {
	var expert models.Expert
	if err := s.db.Preload("Profile").First(&expert, id).Error; err != nil {
		return nil, translate(err)
	}
	return &expert, nil
}

func (s *DatabaseStore) GetExpertByUser(userID uint) (*models.Expert, error) {
	var expert models.Expert
	if err := s.db.Preload("Profile").Where("user_id = ?", userID).First(&expert).Error; err != nil {
		return nil, translate(err)
	}
	return &expert, nil
}

func (s *DatabaseStore) GetExpertProfile(expertID uint) (*models.ExpertProfile, error) {
	var profile models.ExpertProfile
	if err := s.db.Preload("Tags").Where("expert_id = ?", expertID).First(&profile).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (s *DatabaseStore) UpdateExpertProfile(profile *models.ExpertProfile) error {
	return s.db.Save(profile).Error
}

func (s *DatabaseStore) ListExperts(filters *models.ExpertFilters) ([]*models.ExpertProfile, error) {
	query := s.db.Model(&models.ExpertProfile{}).Preload("Tags")

	if filters.MinRating > 0 {
		query = query.Where("average_rating >= ?", filters.MinRating)
	}
	if filters.TagID != 0 {
		query = query.Joins("JOIN expert_profile_tags ept ON ept.expert_profile_id = expert_profiles.id").
			Where("ept.tag_id = ?", filters.TagID)
	}
	if filters.Query != "" {
		like := "%" + strings.ToLower(filters.Query) + "%"
		query = query.Where("LOWER(headline) LIKE ? OR LOWER(bio) LIKE ?", like, like)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	var profiles []*models.ExpertProfile
	if err := query.Order("expert_profiles.id").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (s *DatabaseStore) ListQualifiedExperts(minAvgRating float64, minNumRatings int) ([]*models.ExpertProfile, error) {
	var profiles []*models.ExpertProfile
	err := s.db.Where("average_rating >= ? AND num_ratings >= ?", minAvgRating, minNumRatings).
		Order("id").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// Tag operations

func (s *DatabaseStore) CreateTag(tag *models.Tag) (*models.Tag, error) {
	if err := s.db.Create(tag).Error; err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *DatabaseStore) GetTag(id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.First(&tag, id).Error; err != nil {
		return nil, translate(err)
	}
	return &tag, nil
}

func (s *DatabaseStore) GetTagByName(name string) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.Where("LOWER(name) = LOWER(?)", name).First(&tag).Error; err != nil {
		return nil, translate(err)
	}
	return &tag, nil
}

func (s *DatabaseStore) IncrementTagSearches(id uint) error {
	result := s.db.Model(&models.Tag{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_searches":  gorm.Expr("total_searches + 1"),
			"weekly_searches": gorm.Expr("weekly_searches + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *DatabaseStore) ResetWeeklyTagSearches() error {
	return s.db.Model(&models.Tag{}).Where("weekly_searches > 0").
		Update("weekly_searches", 0).Error
}

// Session operations

func (s *DatabaseStore) CreateSession(session *models.Session) (*models.Session, error) {
	if err := s.db.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (s *DatabaseStore) GetSession(id uint) (*models.Session, error) {
	var session models.Session
	if err := s.db.First(&session, id).Error; err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

func (s *DatabaseStore) UpdateSession(session *models.Session) error {
	return s.db.Save(session).Error
}

func (s *DatabaseStore) ListSessionsByUser(userID uint) ([]*models.Session, error) {
	var sessions []*models.Session
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *DatabaseStore) ListScheduledSessionsDue(within time.Duration) ([]*models.Session, error) {
	var sessions []*models.Session
	cutoff := time.Now().Add(within)
	err := s.db.Where("call_status = ? AND scheduled_at IS NOT NULL AND scheduled_at <= ?",
		models.CallStatusScheduled, cutoff).Order("id").Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// Session event operations

func (s *DatabaseStore) AppendSessionEvent(event *models.SessionEvent) (*models.SessionEvent, error) {
	if err := s.db.Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (s *DatabaseStore) ListSessionEvents(sessionID uint) ([]*models.SessionEvent, error) {
	var events []*models.SessionEvent
	if err := s.db.Where("session_id = ?", sessionID).Order("id").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// Activity operations

func (s *DatabaseStore) CreateActivity(activity *models.Activity) (*models.Activity, error) {
	if activity.EmailStatus == "" {
		activity.EmailStatus = models.DeliveryPending
	}
	if activity.PushStatus == "" {
		activity.PushStatus = models.DeliveryPending
	}
	if err := s.db.Create(activity).Error; err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *DatabaseStore) GetActivity(id uint) (*models.Activity, error) {
	var activity models.Activity
	if err := s.db.First(&activity, id).Error; err != nil {
		return nil, translate(err)
	}
	return &activity, nil
}

func (s *DatabaseStore) UpdateActivity(activity *models.Activity) error {
	return s.db.Save(activity).Error
}

// Notification operations

func (s *DatabaseStore) CreateNotification(notification *models.Notification) (*models.Notification, error) {
	if err := s.db.Create(notification).Error; err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *DatabaseStore) GetNotification(id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := s.db.First(&notification, id).Error; err != nil {
		return nil, translate(err)
	}
	return &notification, nil
}

func (s *DatabaseStore) ListNotificationsByUser(userID uint) ([]*models.Notification, error) {
	var notifications []*models.Notification
	if err := s.db.Where("user_id = ?", userID).Order("id DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// Device operations

func (s *DatabaseStore) CreateDevice(device *models.Device) (*models.Device, error) {
	var existing models.Device
	err := s.db.Where("token = ?", device.Token).First(&existing).Error
	if err == nil {
		existing.UserID = device.UserID
		existing.Platform = device.Platform
		existing.IsActive = true
		if err := s.db.Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	device.IsActive = true
	if err := s.db.Create(device).Error; err != nil {
		return nil, err
	}
	return device, nil
}

func (s *DatabaseStore) DeleteDevice(id uint, userID uint) error {
	var device models.Device
	if err := s.db.First(&device, id).Error; err != nil {
		return translate(err)
	}
	if device.UserID != userID {
		return models.ErrForbidden
	}
	return s.db.Delete(&device).Error
}

func (s *DatabaseStore) ListDevicesByUser(userID uint) ([]*models.Device, error) {
	var devices []*models.Device
	err := s.db.Where("user_id = ? AND is_active = ?", userID, true).Order("id").Find(&devices).Error
	if err != nil {
		return nil, err
	}
	return devices, nil
}

// Media operations

func (s *DatabaseStore) CreateMedia(media *models.UserMedia) (*models.UserMedia, error) {
	if err := s.db.Create(media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

func (s *DatabaseStore) GetMedia(id uint) (*models.UserMedia, error) {
	var media models.UserMedia
	if err := s.db.First(&media, id).Error; err != nil {
		return nil, translate(err)
	}
	return &media, nil
}

// SetPrimaryMedia promotes one record and demotes every other record of
// the same owner inside a single transaction.
func (s *DatabaseStore) SetPrimaryMedia(userID, mediaID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var media models.UserMedia
		if err := tx.First(&media, mediaID).Error; err != nil {
			return translate(err)
		}
		if media.UserID != userID {
			return models.ErrForbidden
		}
		if err := tx.Model(&models.UserMedia{}).
			Where("user_id = ? AND id <> ?", userID, mediaID).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		return tx.Model(&media).Update("is_primary", true).Error
	})
}

func (s *DatabaseStore) ListMediaByUser(userID uint) ([]*models.UserMedia, error) {
	var media []*models.UserMedia
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

// Content operations

func (s *DatabaseStore) CreateContent(content *models.Content) (*models.Content, error) {
	if err := s.db.Create(content).Error; err != nil {
		return nil, err
	}
	return content, nil
}

func (s *DatabaseStore) GetContent(id uint) (*models.Content, error) {
	var content models.Content
	if err := s.db.First(&content, id).Error; err != nil {
		return nil, translate(err)
	}
	return &content, nil
}

func (s *DatabaseStore) DeleteContent(id uint) error {
	result := s.db.Delete(&models.Content{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Card operations

func (s *DatabaseStore) CreateCard(card *models.Card) (*models.Card, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if card.IsDefault {
			if err := tx.Model(&models.Card{}).Where("user_id = ?", card.UserID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(card).Error
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

func (s *DatabaseStore) ListCardsByUser(userID uint) ([]*models.Card, error) {
	var cards []*models.Card
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func (s *DatabaseStore) GetDefaultCard(userID uint) (*models.Card, error) {
	var card models.Card
	err := s.db.Where("user_id = ? AND is_default = ?", userID, true).First(&card).Error
	if err != nil {
		return nil, translate(err)
	}
	return &card, nil
}

// Charge operations

func (s *DatabaseStore) CreateCharge(charge *models.Charge) (*models.Charge, error) {
	if err := s.db.Create(charge).Error; err != nil {
		return nil, err
	}
	return charge, nil
}

func (s *DatabaseStore) ListChargesByUser(userID uint) ([]*models.Charge, error) {
	var charges []*models.Charge
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&charges).Error; err != nil {
		return nil, err
	}
	return charges, nil
}

// Stats operations

func (s *DatabaseStore) GetUserStats(userID uint) (*models.UserStats, error) {
	stats := &models.UserStats{UserID: userID}

	type sessionAgg struct {
		Count   int
		Minutes int
	}
	var agg sessionAgg
	err := s.db.Model(&models.Session{}).
		Select("COUNT(*) AS count, COALESCE(SUM(session_length), 0) AS minutes").
		Where("user_id = ? AND call_status = ?", userID, models.CallStatusCompleted).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	stats.CompletedSessions = agg.Count
	stats.TotalMinutes = agg.Minutes

	var spent float64
	err = s.db.Model(&models.Charge{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND status = ?", userID, models.ChargeStatusCaptured).
		Scan(&spent).Error
	if err != nil {
		return nil, err
	}
	stats.TotalSpent = spent

	return stats, nil
}
