// Package youtube queries the YouTube Data API v3 for video search results
// and batched video durations.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nitingupta-05/nwave/internal/cache"
)

const (
	defaultBaseURL   = "https://www.googleapis.com/youtube/v3"
	searchMaxResults = 15
)

type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Cache      cache.Store
}

func NewClient(apiKey string, store cache.Store, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		APIKey:     apiKey,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: timeout},
		Cache:      store,
	}
}

type Thumbnail struct {
	URL string `json:"url"`
}

type Thumbnails struct {
	Default Thumbnail `json:"default"`
	Medium  Thumbnail `json:"medium"`
}

type Snippet struct {
	Title        string     `json:"title"`
	ChannelTitle string     `json:"channelTitle"`
	Thumbnails   Thumbnails `json:"thumbnails"`
}

type SearchItem struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet Snippet `json:"snippet"`
}

type searchResponse struct {
	Items []SearchItem `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID             string `json:"id"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// Search returns up to 15 raw video results for a free-text query. Any
// transport, status or decode failure yields an empty list; a caller cannot
// distinguish an outage from "no results". Results are cached per query.
func (c *Client) Search(ctx context.Context, query string) []SearchItem {
	items, _ := cache.GetOrCompute(ctx, c.Cache, "yt_search_"+query, func(ctx context.Context) ([]SearchItem, error) {
		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("maxResults", fmt.Sprintf("%d", searchMaxResults))
		params.Set("q", query)
		params.Set("type", "video")
		params.Set("key", c.APIKey)

		var payload searchResponse
		if err := c.getJSON(ctx, c.BaseURL+"/search?"+params.Encode(), &payload); err != nil {
			slog.Warn("youtube search failed", "query", query, "error", err)
			return []SearchItem{}, nil
		}
		if payload.Items == nil {
			return []SearchItem{}, nil
		}
		return payload.Items, nil
	})
	return items
}

// Durations resolves whole-second durations for a batch of native video ids
// in a single upstream call. An empty batch short-circuits; failures yield an
// empty map. Cached under the joined id list.
func (c *Client) Durations(ctx context.Context, ids []string) map[string]int {
	if len(ids) == 0 {
		return map[string]int{}
	}

	joined := strings.Join(ids, ",")
	durations, _ := cache.GetOrCompute(ctx, c.Cache, "yt_durations_"+joined, func(ctx context.Context) (map[string]int, error) {
		params := url.Values{}
		params.Set("part", "contentDetails")
		params.Set("id", joined)
		params.Set("key", c.APIKey)

		var payload videosResponse
		if err := c.getJSON(ctx, c.BaseURL+"/videos?"+params.Encode(), &payload); err != nil {
			slog.Warn("youtube duration lookup failed", "ids", len(ids), "error", err)
			return map[string]int{}, nil
		}

		out := make(map[string]int, len(payload.Items))
		for _, v := range payload.Items {
			out[v.ID] = ParseISODuration(v.ContentDetails.Duration)
		}
		return out, nil
	})
	return durations
}

func (c *Client) getJSON(ctx context.Context, rawURL string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("youtube api status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
