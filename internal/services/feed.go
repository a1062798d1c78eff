package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// FeedClient mirrors content records to the external social feed
// aggregation service. Entries are keyed by (owner id, content id).
type FeedClient interface {
	AddContent(ownerID, contentID uint, title string) error
	RemoveContent(ownerID, contentID uint) error
}

// HTTPFeedClient talks to the feed service's REST API.
type HTTPFeedClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewHTTPFeedClient builds the production feed client.
func NewHTTPFeedClient(baseURL, apiKey string) *HTTPFeedClient {
	return &HTTPFeedClient{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

func (f *HTTPFeedClient) AddContent(ownerID, contentID uint, title string) error {
	body, err := json.Marshal(map[string]interface{}{
		"content_id": contentID,
		"title":      title,
	})
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/feeds/%d/content/", f.baseURL, ownerID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.apiKey)
	return f.do(req)
}

func (f *HTTPFeedClient) RemoveContent(ownerID, contentID uint) error {
	url := fmt.Sprintf("%s/feeds/%d/content/%d", f.baseURL, ownerID, contentID)
	req, err := http.NewRequest(http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+f.apiKey)
	return f.do(req)
}

func (f *HTTPFeedClient) do(req *http.Request) error {
	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("feed service returned %d", resp.StatusCode)
	}
	return nil
}
