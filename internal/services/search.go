package services

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mentorlink/mentorlink-backend/internal/models"
	"github.com/mentorlink/mentorlink-backend/internal/storage"
)

// SearchConfig carries the random-expert selection policy.
type SearchConfig struct {
	RandomMinRating  float64
	RandomMinRatings int
	RandomLimit      int
}

// SearchService is the read-only query layer over experts and tags.
type SearchService struct {
	store storage.Store
	cfg   SearchConfig

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSearchService wires the search layer with a process-seeded RNG.
func NewSearchService(store storage.Store, cfg SearchConfig) *SearchService {
	return &SearchService{
		store: store,
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ListExperts returns filtered expert profiles. Searching by tag bumps
// that tag's total and weekly counters.
func (s *SearchService) ListExperts(filters *models.ExpertFilters) ([]*models.ExpertProfile, error) {
	if filters.TagID != 0 {
		if err := s.store.IncrementTagSearches(filters.TagID); err != nil && err != models.ErrNotFound {
			log.Warn().Err(err).Uint("tag_id", filters.TagID).Msg("failed to bump tag search counters")
		}
	}
	return s.store.ListExperts(filters)
}

// RandomExperts returns up to limit experts drawn uniformly from the
// qualifying set: average rating at or above the threshold and at least
// the minimum number of ratings. Zero arguments fall back to the
// configured policy.
func (s *SearchService) RandomExperts(limit int, minAvgRating float64, minNumRatings int) ([]*models.ExpertProfile, error) {
	if limit <= 0 {
		limit = s.cfg.RandomLimit
	}
	if minAvgRating <= 0 {
		minAvgRating = s.cfg.RandomMinRating
	}
	if minNumRatings <= 0 {
		minNumRatings = s.cfg.RandomMinRatings
	}

	qualified, err := s.store.ListQualifiedExperts(minAvgRating, minNumRatings)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.rng.Shuffle(len(qualified), func(i, j int) {
		qualified[i], qualified[j] = qualified[j], qualified[i]
	})
	s.mu.Unlock()

	if len(qualified) > limit {
		qualified = qualified[:limit]
	}
	return qualified, nil
}

// TagStats reports the search counters for one tag.
func (s *SearchService) TagStats(tagID uint) (*models.TagStats, error) {
	tag, err := s.store.GetTag(tagID)
	if err != nil {
		return nil, err
	}
	return &models.TagStats{
		TagID:          tag.ID,
		Name:           tag.Name,
		TotalSearches:  tag.TotalSearches,
		WeeklySearches: tag.WeeklySearches,
	}, nil
}

// MeStats aggregates the caller's consultation history.
func (s *SearchService) MeStats(userID uint) (*models.UserStats, error) {
	return s.store.GetUserStats(userID)
}
