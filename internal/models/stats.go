package models

// UserStats aggregates a user's consultation history for the
// /stats/me-stats/ endpoint. Computed from sessions and charges, not
// stored.
type UserStats struct {
	UserID            uint    `json:"user_id"`
	CompletedSessions int     `json:"completed_sessions"`
	TotalMinutes      int     `json:"total_minutes"`
	TotalSpent        float64 `json:"total_spent"`
}

// TagStats reports search counters for a single tag.
type TagStats struct {
	TagID          uint   `json:"tag_id"`
	Name           string `json:"name"`
	TotalSearches  int64  `json:"total_searches"`
	WeeklySearches int64  `json:"weekly_searches"`
}
