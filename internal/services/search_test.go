package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorlink/mentorlink-backend/internal/models"
	"github.com/mentorlink/mentorlink-backend/internal/storage"
)

func seedExperts(store *storage.MemoryStore, count int, rating float64, numRatings int) {
	for i := 0; i < count; i++ {
		user, _ := store.CreateUser(&models.User{
			Name:         fmt.Sprintf("Expert %f-%d", rating, i),
			Email:        fmt.Sprintf("expert-%f-%d@example.com", rating, i),
			PasswordHash: "x",
		})
		store.CreateExpert(
			&models.Expert{UserID: user.ID, IsApproved: true},
			&models.ExpertProfile{Headline: "h", AverageRating: rating, NumRatings: numRatings},
		)
	}
}

func TestRandomExpertsRespectsThresholds(t *testing.T) {
	store := storage.NewMemoryStore()
	seedExperts(store, 8, 4.5, 10) // qualified
	seedExperts(store, 5, 3.0, 10) // rating too low
	seedExperts(store, 5, 4.9, 1)  // too few ratings

	svc := NewSearchService(store, SearchConfig{RandomMinRating: 4.0, RandomMinRatings: 3, RandomLimit: 10})

	for i := 0; i < 20; i++ {
		profiles, err := svc.RandomExperts(0, 0, 0)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(profiles), 10)
		for _, p := range profiles {
			assert.GreaterOrEqual(t, p.AverageRating, 4.0)
			assert.GreaterOrEqual(t, p.NumRatings, 3)
		}
	}
}

func TestRandomExpertsCapsResultSize(t *testing.T) {
	store := storage.NewMemoryStore()
	seedExperts(store, 12, 4.8, 20)

	svc := NewSearchService(store, SearchConfig{RandomMinRating: 4.0, RandomMinRatings: 3, RandomLimit: 10})

	profiles, err := svc.RandomExperts(5, 0, 0)
	require.NoError(t, err)
	assert.Len(t, profiles, 5)
}

func TestListExpertsByTagBumpsCounters(t *testing.T) {
	store := storage.NewMemoryStore()
	tag, _ := store.CreateTag(&models.Tag{Name: "finance"})

	user, _ := store.CreateUser(&models.User{Name: "E", Email: "e@example.com", PasswordHash: "x"})
	store.CreateExpert(
		&models.Expert{UserID: user.ID},
		&models.ExpertProfile{Headline: "Tax help", AverageRating: 4.2, NumRatings: 5, Tags: []models.Tag{*tag}},
	)

	svc := NewSearchService(store, SearchConfig{RandomLimit: 10})

	profiles, err := svc.ListExperts(&models.ExpertFilters{TagID: tag.ID})
	require.NoError(t, err)
	assert.Len(t, profiles, 1)

	stats, err := svc.TagStats(tag.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalSearches)
	assert.Equal(t, int64(1), stats.WeeklySearches)

	// Weekly counters reset, total survives.
	require.NoError(t, store.ResetWeeklyTagSearches())
	stats, _ = svc.TagStats(tag.ID)
	assert.Equal(t, int64(1), stats.TotalSearches)
	assert.Equal(t, int64(0), stats.WeeklySearches)
}
