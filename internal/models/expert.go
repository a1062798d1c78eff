package models

import (
	"gorm.io/gorm"
)

// Expert marks a user as available for consultations.
type Expert struct {
	gorm.Model
	UserID      uint `json:"user_id" gorm:"uniqueIndex;not null"`
	IsAvailable bool `json:"is_available" gorm:"default:true"`
	IsApproved  bool `json:"is_approved" gorm:"default:false"`

	Profile *ExpertProfile `json:"profile,omitempty" gorm:"foreignKey:ExpertID"`
}

// ExpertProfile carries the public-facing consultation details for an expert.
// Created explicitly alongside the Expert row, never via a model hook.
type ExpertProfile struct {
	gorm.Model
	ExpertID      uint    `json:"expert_id" gorm:"uniqueIndex;not null"`
	Headline      string  `json:"headline"`
	Bio           string  `json:"bio"`
	RatePerMinute float64 `json:"rate_per_minute" gorm:"default:0"`
	AverageRating float64 `json:"average_rating" gorm:"default:0"`
	NumRatings    int     `json:"num_ratings" gorm:"default:0"`

	Tags []Tag `json:"tags,omitempty" gorm:"many2many:expert_profile_tags;"`
}

// Tag labels expert profiles and accumulates search counters for tag stats.
type Tag struct {
	gorm.Model
	Name           string `json:"name" gorm:"uniqueIndex;not null"`
	TotalSearches  int64  `json:"total_searches" gorm:"default:0"`
	WeeklySearches int64  `json:"weekly_searches" gorm:"default:0"`
}

// ExpertRegistration is the payload accepted when a user becomes an expert.
type ExpertRegistration struct {
	UserID        uint     `json:"user_id"`
	Headline      string   `json:"headline"`
	Bio           string   `json:"bio"`
	RatePerMinute float64  `json:"rate_per_minute"`
	TagNames      []string `json:"tags"`
}

// ExpertFilters narrows expert listings in the search service.
type ExpertFilters struct {
	TagID     uint    `json:"tag_id"`
	MinRating float64 `json:"min_rating"`
	Query     string  `json:"query"`
	Limit     int     `json:"limit"`
}
