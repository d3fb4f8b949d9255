// Package jamendo queries the Jamendo v3.0 tracks API.
package jamendo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/nitingupta-05/nwave/internal/cache"
)

const defaultBaseURL = "https://api.jamendo.com/v3.0"

type Client struct {
	ClientID   string
	BaseURL    string
	HTTPClient *http.Client
	Cache      cache.Store
}

func NewClient(clientID string, store cache.Store, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		ClientID:   clientID,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: timeout},
		Cache:      store,
	}
}

// TrackItem is the subset of the Jamendo track schema the mapper consumes.
type TrackItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ArtistName string `json:"artist_name"`
	Duration   int    `json:"duration"`
	Image      string `json:"image"`
	Audio      string `json:"audio"`
}

type tracksResponse struct {
	Results []TrackItem `json:"results"`
}

// Fetch retrieves the result list for a fully-formed tracks URL. Building
// the URL (credential, limit, ordering, filters) is the caller's job, which
// keeps one cache entry per distinct upstream request shape. Failures yield
// an empty list.
func (c *Client) Fetch(ctx context.Context, fullURL string) []TrackItem {
	items, _ := cache.GetOrCompute(ctx, c.Cache, "jam_"+fullURL, func(ctx context.Context) ([]TrackItem, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			slog.Warn("jamendo request build failed", "error", err)
			return []TrackItem{}, nil
		}

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			slog.Warn("jamendo fetch failed", "error", err)
			return []TrackItem{}, nil
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			slog.Warn("jamendo fetch failed", "status", resp.StatusCode)
			return []TrackItem{}, nil
		}

		var payload tracksResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			slog.Warn("jamendo decode failed", "error", err)
			return []TrackItem{}, nil
		}
		if payload.Results == nil {
			return []TrackItem{}, nil
		}
		return payload.Results, nil
	})
	return items
}

// DefaultURL lists the most popular tracks.
func (c *Client) DefaultURL(limit int) string {
	return fmt.Sprintf("%s/tracks/?client_id=%s&format=json&limit=%d&order=popularity_total",
		c.BaseURL, c.ClientID, limit)
}

// TagURL filters by a single tag; tag "all" is the unfiltered default feed.
func (c *Client) TagURL(tag string, limit int) string {
	if tag == "all" {
		return c.DefaultURL(limit)
	}
	return fmt.Sprintf("%s/tracks/?client_id=%s&format=json&limit=%d&tags=%s&order=popularity_total",
		c.BaseURL, c.ClientID, limit, url.QueryEscape(tag))
}

// SearchURL does a free-text search.
func (c *Client) SearchURL(query string, limit int) string {
	return fmt.Sprintf("%s/tracks/?client_id=%s&format=json&limit=%d&search=%s",
		c.BaseURL, c.ClientID, limit, url.QueryEscape(query))
}
