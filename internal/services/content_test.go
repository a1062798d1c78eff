package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorlink/mentorlink-backend/internal/models"
)

func TestContentDeleteRemovesFeedEntry(t *testing.T) {
	f := newFixture()
	feed := &recordingFeed{}
	svc := NewContentService(f.store, feed)

	content, err := svc.Create(f.user.ID, &models.ContentInput{Title: "Intro video", URL: "https://cdn/x.mp4"})
	require.NoError(t, err)
	require.Len(t, feed.added, 1)

	require.NoError(t, svc.Delete(f.user.ID, content.ID))

	// The removal call is keyed by (owner id, content id).
	require.Len(t, feed.removed, 1)
	assert.Equal(t, feedCall{OwnerID: f.user.ID, ContentID: content.ID}, feed.removed[0])

	_, err = f.store.GetContent(content.ID)
	assert.Equal(t, models.ErrNotFound, err)
}

func TestContentDeleteRejectsNonOwner(t *testing.T) {
	f := newFixture()
	feed := &recordingFeed{}
	svc := NewContentService(f.store, feed)

	content, err := svc.Create(f.user.ID, &models.ContentInput{Title: "Post"})
	require.NoError(t, err)

	err = svc.Delete(f.expertUser.ID, content.ID)
	assert.Equal(t, models.ErrForbidden, err)
	assert.Empty(t, feed.removed)
}

func TestContentCreateSurvivesFeedFailure(t *testing.T) {
	f := newFixture()
	feed := &recordingFeed{failNext: true}
	svc := NewContentService(f.store, feed)

	content, err := svc.Create(f.user.ID, &models.ContentInput{Title: "Post"})
	require.NoError(t, err, "the row is the source of truth")

	got, err := f.store.GetContent(content.ID)
	require.NoError(t, err)
	assert.Equal(t, "Post", got.Title)
}
