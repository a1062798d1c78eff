package storage

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mentorlink/mentorlink-backend/internal/models"
)

// MemoryStore holds all data in memory. Used by tests and local runs
// started with USE_MEMORY_STORE=true.
type MemoryStore struct {
	mu sync.RWMutex

	users         map[uint]*models.User
	experts       map[uint]*models.Expert
	profiles      map[uint]*models.ExpertProfile // keyed by profile ID
	tags          map[uint]*models.Tag
	sessions      map[uint]*models.Session
	events        []*models.SessionEvent
	activities    map[uint]*models.Activity
	notifications map[uint]*models.Notification
	devices       map[uint]*models.Device
	media         map[uint]*models.UserMedia
	content       map[uint]*models.Content
	cards         map[uint]*models.Card
	charges       map[uint]*models.Charge

	// profileTags maps profile ID -> tag IDs
	profileTags map[uint][]uint

	counter uint
}

// NewMemoryStore creates a new in-memory storage.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[uint]*models.User),
		experts:       make(map[uint]*models.Expert),
		profiles:      make(map[uint]*models.ExpertProfile),
		tags:          make(map[uint]*models.Tag),
		sessions:      make(map[uint]*models.Session),
		activities:    make(map[uint]*models.Activity),
		notifications: make(map[uint]*models.Notification),
		devices:       make(map[uint]*models.Device),
		media:         make(map[uint]*models.UserMedia),
		content:       make(map[uint]*models.Content),
		cards:         make(map[uint]*models.Card),
		charges:       make(map[uint]*models.Charge),
		profileTags:   make(map[uint][]uint),
	}
}

func (m *MemoryStore) nextID() uint {
	m.counter++
	return m.counter
}

// User operations

func (m *MemoryStore) CreateUser(user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.ID = m.nextID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	if !user.IsSuspended {
		user.IsActive = true
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *MemoryStore) GetUser(id uint) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, models.ErrNotFound
	}
	return user, nil
}

func (m *MemoryStore) GetUserByEmail(email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *MemoryStore) UpdateUser(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[user.ID]; !exists {
		return models.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

// Expert operations

func (m *MemoryStore) CreateExpert(expert *models.Expert, profile *models.ExpertProfile) (*models.Expert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expert.ID = m.nextID()
	expert.CreatedAt = time.Now()
	expert.UpdatedAt = time.Now()
	m.experts[expert.ID] = expert

	profile.ID = m.nextID()
	profile.ExpertID = expert.ID
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()
	m.profiles[profile.ID] = profile
	for _, tag := range profile.Tags {
		m.profileTags[profile.ID] = append(m.profileTags[profile.ID], tag.ID)
	}

	expert.Profile = profile
	return expert, nil
}

func (m *MemoryStore) GetExpert(id uint) (*models.Expert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	expert, exists := m.experts[id]
	if !exists {
		return nil, models.ErrNotFound
	}
	return expert, nil
}

func (m *MemoryStore) GetExpertByUser(userID uint) (*models.Expert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, expert := range m.experts {
		if expert.UserID == userID {
			return expert, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *MemoryStore) GetExpertProfile(expertID uint) (*models.ExpertProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, profile := range m.profiles {
		if profile.ExpertID == expertID {
			return profile, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *MemoryStore) UpdateExpertProfile(profile *models.ExpertProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.profiles[profile.ID]; !exists {
		return models.ErrNotFound
	}
	profile.UpdatedAt = time.Now()
	m.profiles[profile.ID] = profile
	return nil
}

func (m *MemoryStore) ListExperts(filters *models.ExpertFilters) ([]*models.ExpertProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []*models.ExpertProfile
	for _, profile := range m.profiles {
		if filters.MinRating > 0 && profile.AverageRating < filters.MinRating {
			continue
		}
		if filters.TagID != 0 && !m.profileHasTag(profile.ID, filters.TagID) {
			continue
		}
		if filters.Query != "" {
			q := strings.ToLower(filters.Query)
			if !strings.Contains(strings.ToLower(profile.Headline), q) &&
				!strings.Contains(strings.ToLower(profile.Bio), q) {
				continue
			}
		}
		results = append(results, profile)
	}

	// Stable order: deterministic listings for paging.
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })

	if filters.Limit > 0 && len(results) > filters.Limit {
		results = results[:filters.Limit]
	}
	return results, nil
}

func (m *MemoryStore) profileHasTag(profileID, tagID uint) bool {
	for _, id := range m.profileTags[profileID] {
		if id == tagID {
			return true
		}
	}
	return false
}

func (m *MemoryStore) ListQualifiedExperts(minAvgRating float64, minNumRatings int) ([]*models.ExpertProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []*models.ExpertProfile
	for _, profile := range m.profiles {
		if profile.AverageRating >= minAvgRating && profile.NumRatings >= minNumRatings {
			results = append(results, profile)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

// Tag operations

func (m *MemoryStore) CreateTag(tag *models.Tag) (*models.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tag.ID = m.nextID()
	tag.CreatedAt = time.Now()
	tag.UpdatedAt = time.Now()
	m.tags[tag.ID] = tag
	return tag, nil
}

func (m *MemoryStore) GetTag(id uint) (*models.Tag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tag, exists := m.tags[id]
	if !exists {
		return nil, models.ErrNotFound
	}
	return tag, nil
}

func (m *MemoryStore) GetTagByName(name string) (*models.Tag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, tag := range m.tags {
		if strings.EqualFold(tag.Name, name) {
			return tag, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *MemoryStore) IncrementTagSearches(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tag, exists := m.tags[id]
	if !exists {
		return models.ErrNotFound
	}
	tag.TotalSearches++
	tag.WeeklySearches++
	return nil
}

func (m *MemoryStore) ResetWeeklyTagSearches() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, tag := range m.tags {
		tag.WeeklySearches = 0
	}
	return nil
}

// Session operations

func (m *MemoryStore) CreateSession(session *models.Session) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session.ID = m.nextID()
	session.CreatedAt = time.Now()
	session.UpdatedAt = time.Now()
	m.sessions[session.ID] = session
	return session, nil
}

func (m *MemoryStore) GetSession(id uint) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[id]
	if !exists {
		return nil, models.ErrNotFound
	}
	return session, nil
}

func (m *MemoryStore) UpdateSession(session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[session.ID]; !exists {
		return models.ErrNotFound
	}
	session.UpdatedAt = time.Now()
	m.sessions[session.ID] = session
	return nil
}

func (m *MemoryStore) ListSessionsByUser(userID uint) ([]*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []*models.Session
	for _, session := range m.sessions {
		if session.UserID == userID {
			results = append(results, session)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (m *MemoryStore) ListScheduledSessionsDue(within time.Duration) ([]*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cutoff := time.Now().Add(within)
	var results []*models.Session
	for _, session := range m.sessions {
		if session.CallStatus != models.CallStatusScheduled || session.ScheduledAt == nil {
			continue
		}
		if session.ScheduledAt.Before(cutoff) {
			results = append(results, session)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

// Session event operations

func (m *MemoryStore) AppendSessionEvent(event *models.SessionEvent) (*models.SessionEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	event.ID = m.nextID()
	event.CreatedAt = time.Now()
	m.events = append(m.events, event)
	return event, nil
}

func (m *MemoryStore) ListSessionEvents(sessionID uint) ([]*models.SessionEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []*models.SessionEvent
	for _, event := range m.events {
		if event.SessionID == sessionID {
			results = append(results, event)
		}
	}
	return results, nil
}

// Activity operations

func (m *MemoryStore) CreateActivity(activity *models.Activity) (*models.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	activity.ID = m.nextID()
	activity.CreatedAt = time.Now()
	activity.UpdatedAt = time.Now()
	if activity.EmailStatus == "" {
		activity.EmailStatus = models.DeliveryPending
	}
	if activity.PushStatus == "" {
		activity.PushStatus = models.DeliveryPending
	}
	m.activities[activity.ID] = activity
	return activity, nil
}

func (m *MemoryStore) GetActivity(id uint) (*models.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	activity, exists := m.activities[id]
	if !exists {
		return nil, models.ErrNotFound
	}
	clone := *activity
	return &clone, nil
}

func (m *MemoryStore) UpdateActivity(activity *models.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.activities[activity.ID]; !exists {
		return models.ErrNotFound
	}
	activity.UpdatedAt = time.Now()
	clone := *activity
	m.activities[activity.ID] = &clone
	return nil
}

// Notification operations

func (m *MemoryStore) CreateNotification(notification *models.Notification) (*models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	notification.ID = m.nextID()
	notification.CreatedAt = time.Now()
	notification.UpdatedAt = time.Now()
	m.notifications[notification.ID] = notification
	return notification, nil
}

func (m *MemoryStore) GetNotification(id uint) (*models.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	notification, exists := m.notifications[id]
	if !exists {
		return nil, models.ErrNotFound
	}
	return notification, nil
}

func (m *MemoryStore) ListNotificationsByUser(userID uint) ([]*models.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []*models.Notification
	for _, notification := range m.notifications {
		if notification.UserID == userID {
			results = append(results, notification)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID > results[j].ID })
	return results, nil
}

// Device operations

func (m *MemoryStore) CreateDevice(device *models.Device) (*models.Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Re-registering an existing token moves it to the new owner.
	for _, existing := range m.devices {
		if existing.Token == device.Token {
			existing.UserID = device.UserID
			existing.Platform = device.Platform
			existing.IsActive = true
			existing.UpdatedAt = time.Now()
			return existing, nil
		}
	}

	device.ID = m.nextID()
	device.CreatedAt = time.Now()
	device.UpdatedAt = time.Now()
	device.IsActive = true
	m.devices[device.ID] = device
	return device, nil
}

func (m *MemoryStore) DeleteDevice(id uint, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	device, exists := m.devices[id]
	if !exists {
		return models.ErrNotFound
	}
	if device.UserID != userID {
		return models.ErrForbidden
	}
	delete(m.devices, id)
	return nil
}

func (m *MemoryStore) ListDevicesByUser(userID uint) ([]*models.Device, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []*models.Device
	for _, device := range m.devices {
		if device.UserID == userID && device.IsActive {
			results = append(results, device)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

// Media operations

func (m *MemoryStore) CreateMedia(media *models.UserMedia) (*models.UserMedia, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	media.ID = m.nextID()
	media.CreatedAt = time.Now()
	media.UpdatedAt = time.Now()
	m.media[media.ID] = media
	return media, nil
}

func (m *MemoryStore) GetMedia(id uint) (*models.UserMedia, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	media, exists := m.media[id]
	if !exists {
		return nil, models.ErrNotFound
	}
	return media, nil
}

func (m *MemoryStore) SetPrimaryMedia(userID, mediaID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	target, exists := m.media[mediaID]
	if !exists {
		return models.ErrNotFound
	}
	if target.UserID != userID {
		return models.ErrForbidden
	}

	for _, media := range m.media {
		if media.UserID == userID {
			media.IsPrimary = media.ID == mediaID
			media.UpdatedAt = time.Now()
		}
	}
	return nil
}

func (m *MemoryStore) ListMediaByUser(userID uint) ([]*models.UserMedia, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []*models.UserMedia
	for _, media := range m.media {
		if media.UserID == userID {
			results = append(results, media)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

// Content operations

func (m *MemoryStore) CreateContent(content *models.Content) (*models.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	content.ID = m.nextID()
	content.CreatedAt = time.Now()
	content.UpdatedAt = time.Now()
	m.content[content.ID] = content
	return content, nil
}

func (m *MemoryStore) GetContent(id uint) (*models.Content, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	content, exists := m.content[id]
	if !exists {
		return nil, models.ErrNotFound
	}
	return content, nil
}

func (m *MemoryStore) DeleteContent(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.content[id]; !exists {
		return models.ErrNotFound
	}
	delete(m.content, id)
	return nil
}

// Card operations

func (m *MemoryStore) CreateCard(card *models.Card) (*models.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	card.ID = m.nextID()
	card.CreatedAt = time.Now()
	card.UpdatedAt = time.Now()
	if card.IsDefault {
		for _, existing := range m.cards {
			if existing.UserID == card.UserID {
				existing.IsDefault = false
			}
		}
	}
	m.cards[card.ID] = card
	return card, nil
}

func (m *MemoryStore) ListCardsByUser(userID uint) ([]*models.Card, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []*models.Card
	for _, card := range m.cards {
		if card.UserID == userID {
			results = append(results, card)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (m *MemoryStore) GetDefaultCard(userID uint) (*models.Card, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, card := range m.cards {
		if card.UserID == userID && card.IsDefault {
			return card, nil
		}
	}
	return nil, models.ErrNotFound
}

// Charge operations

func (m *MemoryStore) CreateCharge(charge *models.Charge) (*models.Charge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	charge.ID = m.nextID()
	charge.CreatedAt = time.Now()
	charge.UpdatedAt = time.Now()
	m.charges[charge.ID] = charge
	return charge, nil
}

func (m *MemoryStore) ListChargesByUser(userID uint) ([]*models.Charge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []*models.Charge
	for _, charge := range m.charges {
		if charge.UserID == userID {
			results = append(results, charge)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

// Stats operations

func (m *MemoryStore) GetUserStats(userID uint) (*models.UserStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &models.UserStats{UserID: userID}
	for _, session := range m.sessions {
		if session.UserID == userID && session.CallStatus == models.CallStatusCompleted {
			stats.CompletedSessions++
			stats.TotalMinutes += session.SessionLength
		}
	}
	for _, charge := range m.charges {
		if charge.UserID == userID && charge.Status == models.ChargeStatusCaptured {
			stats.TotalSpent += charge.Amount
		}
	}
	return stats, nil
}
