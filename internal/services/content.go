package services

import (
	"github.com/rs/zerolog/log"

	"github.com/mentorlink/mentorlink-backend/internal/models"
	"github.com/mentorlink/mentorlink-backend/internal/storage"
)

// ContentService keeps content rows and the external feed store in
// step with each other.
type ContentService struct {
	store storage.Store
	feed  FeedClient
}

// NewContentService wires content management.
func NewContentService(store storage.Store, feed FeedClient) *ContentService {
	return &ContentService{store: store, feed: feed}
}

// Create stores the content and mirrors it into the owner's feed.
func (c *ContentService) Create(userID uint, input *models.ContentInput) (*models.Content, error) {
	content, err := c.store.CreateContent(&models.Content{
		UserID: userID,
		Title:  input.Title,
		Body:   input.Body,
		URL:    input.URL,
	})
	if err != nil {
		return nil, err
	}

	if err := c.feed.AddContent(userID, content.ID, content.Title); err != nil {
		// The row is the source of truth; a feed hiccup is not fatal.
		log.Warn().Err(err).Uint("content_id", content.ID).Msg("failed to mirror content to feed")
	}
	return content, nil
}

// Delete removes a content row. Every delete issues a removal call to
// the feed store keyed by (owner id, content id), so the feed never
// keeps an entry for a row that is gone.
func (c *ContentService) Delete(userID, contentID uint) error {
	content, err := c.store.GetContent(contentID)
	if err != nil {
		return err
	}
	if content.UserID != userID {
		return models.ErrForbidden
	}

	if err := c.store.DeleteContent(contentID); err != nil {
		return err
	}

	if err := c.feed.RemoveContent(content.UserID, contentID); err != nil {
		log.Warn().Err(err).Uint("content_id", contentID).Msg("feed removal call failed")
	}
	return nil
}
