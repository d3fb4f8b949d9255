package playlist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nitingupta-05/nwave/internal/cache"
	"github.com/nitingupta-05/nwave/internal/jamendo"
	"github.com/nitingupta-05/nwave/internal/youtube"
)

// fakeUpstreams stands in for both remote APIs and records what reached them.
type fakeUpstreams struct {
	mu            sync.Mutex
	searchQueries []string
	durationCalls int
	jamendoURLs   []string

	itemsPerQuery int
	jamendoCount  int
}

func (f *fakeUpstreams) record(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn()
}

func (f *fakeUpstreams) ytHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			q := r.URL.Query().Get("q")
			f.record(func() { f.searchQueries = append(f.searchQueries, q) })

			n := f.itemsPerQuery
			if n == 0 {
				n = 3
			}
			items := make([]map[string]any, 0, n)
			for i := 0; i < n; i++ {
				items = append(items, map[string]any{
					"id": map[string]any{"videoId": fmt.Sprintf("%s-%d", q, i)},
					"snippet": map[string]any{
						"title":        fmt.Sprintf("Video %s %d", q, i),
						"channelTitle": "Channel",
					},
				})
			}
			json.NewEncoder(w).Encode(map[string]any{"items": items})

		case "/videos":
			f.record(func() { f.durationCalls++ })
			json.NewEncoder(w).Encode(map[string]any{"items": []any{}})

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func (f *fakeUpstreams) jamHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.record(func() { f.jamendoURLs = append(f.jamendoURLs, r.URL.String()) })

		n := f.jamendoCount
		if n == 0 {
			n = 3
		}
		results := make([]map[string]any, 0, n)
		for i := 0; i < n; i++ {
			results = append(results, map[string]any{
				"id":          fmt.Sprintf("%d", 100+i),
				"name":        fmt.Sprintf("Audio %d", i),
				"artist_name": "Artist",
				"duration":    150,
				"image":       "http://img",
				"audio":       "http://audio",
			})
		}
		json.NewEncoder(w).Encode(map[string]any{"results": results})
	})
}

func newTestService(t *testing.T, f *fakeUpstreams) *Service {
	t.Helper()

	ytSrv := httptest.NewServer(f.ytHandler())
	t.Cleanup(ytSrv.Close)
	jamSrv := httptest.NewServer(f.jamHandler())
	t.Cleanup(jamSrv.Close)

	store := cache.NewMemoryStore(time.Minute)
	yt := youtube.NewClient("key", store, time.Second)
	yt.BaseURL = ytSrv.URL
	jam := jamendo.NewClient("cid", store, time.Second)
	jam.BaseURL = jamSrv.URL

	return NewService(yt, jam, store)
}

func TestLeftDefaultFansOutAndCaps(t *testing.T) {
	f := &fakeUpstreams{itemsPerQuery: 6}
	svc := newTestService(t, f)

	res := svc.LeftDefault(context.Background())

	if len(res.Tracks) != 15 {
		t.Errorf("got %d tracks, want cap of 15", len(res.Tracks))
	}
	if res.Count != len(res.Tracks) {
		t.Errorf("count %d != len(tracks) %d", res.Count, len(res.Tracks))
	}
	if res.PlaylistName != "YouTube Hits" || res.PlaylistID != "youtube-left" {
		t.Errorf("labels: name=%q id=%q", res.PlaylistName, res.PlaylistID)
	}
	for _, tr := range res.Tracks {
		if tr.PlaylistID != "left" {
			t.Fatalf("track %s playlistId = %q, want left", tr.ID, tr.PlaylistID)
		}
		if tr.Duration != 200 {
			t.Fatalf("track %s duration = %d, want fallback 200 (no durations served)", tr.ID, tr.Duration)
		}
	}

	if len(f.searchQueries) != 3 {
		t.Errorf("issued %d search queries, want 3", len(f.searchQueries))
	}
	if f.durationCalls != 1 {
		t.Errorf("duration lookups = %d, want single batched call", f.durationCalls)
	}
}

func TestLeftDefaultIsCachedWhole(t *testing.T) {
	f := &fakeUpstreams{}
	svc := newTestService(t, f)

	svc.LeftDefault(context.Background())
	before := len(f.searchQueries)
	svc.LeftDefault(context.Background())

	if len(f.searchQueries) != before {
		t.Errorf("second call reached upstream: %d -> %d queries", before, len(f.searchQueries))
	}
}

func TestLeftTagUnknownTagUsesAllPhrase(t *testing.T) {
	f := &fakeUpstreams{}
	svc := newTestService(t, f)
	ctx := context.Background()

	known := svc.LeftTag(ctx, "all")
	unknown := svc.LeftTag(ctx, "jazzcore")

	// Both resolve to the same upstream phrase; the adapter cache means the
	// phrase is only fetched once.
	if len(f.searchQueries) != 1 || f.searchQueries[0] != "popular music" {
		t.Errorf("search queries = %v, want single \"popular music\"", f.searchQueries)
	}
	if len(unknown.Tracks) != len(known.Tracks) {
		t.Errorf("unknown tag returned %d tracks, all returned %d", len(unknown.Tracks), len(known.Tracks))
	}
	if unknown.PlaylistName != "YouTube – jazzcore" {
		t.Errorf("playlistName = %q", unknown.PlaylistName)
	}
	for i := range unknown.Tracks {
		if unknown.Tracks[i].PlaylistID != "jazzcore" {
			t.Fatalf("track playlistId = %q, want requested tag", unknown.Tracks[i].PlaylistID)
		}
	}
}

func TestLeftTagIsUncapped(t *testing.T) {
	f := &fakeUpstreams{itemsPerQuery: 15}
	svc := newTestService(t, f)

	res := svc.LeftTag(context.Background(), "lofi")
	if len(res.Tracks) != 15 {
		t.Errorf("got %d tracks, want all 15", len(res.Tracks))
	}
	if res.PlaylistName != "YouTube – lofi" {
		t.Errorf("playlistName = %q", res.PlaylistName)
	}
}

func TestSearchEmptyQueryShortCircuits(t *testing.T) {
	f := &fakeUpstreams{}
	svc := newTestService(t, f)

	for _, q := range []string{"", "   "} {
		res := svc.Search(context.Background(), q)
		if res.Tracks == nil || len(res.Tracks) != 0 {
			t.Errorf("Search(%q) tracks = %v, want empty", q, res.Tracks)
		}
		if res.Count != 0 {
			t.Errorf("Search(%q) count = %d", q, res.Count)
		}
	}

	if len(f.searchQueries) != 0 || len(f.jamendoURLs) != 0 {
		t.Errorf("empty search reached upstream: yt=%v jam=%v", f.searchQueries, f.jamendoURLs)
	}
}

func TestSearchMergesVideoThenAudioAndCaps(t *testing.T) {
	f := &fakeUpstreams{itemsPerQuery: 12, jamendoCount: 12}
	svc := newTestService(t, f)

	res := svc.Search(context.Background(), "sunset")

	if len(res.Tracks) != 20 {
		t.Fatalf("got %d tracks, want cap of 20", len(res.Tracks))
	}
	for i, tr := range res.Tracks {
		want := SourceYouTube
		if i >= 12 {
			want = SourceJamendo
		}
		if tr.Source != want {
			t.Fatalf("track %d source = %s, want %s (video-then-audio order)", i, tr.Source, want)
		}
	}
	if res.PlaylistName != "Search – sunset" {
		t.Errorf("playlistName = %q", res.PlaylistName)
	}

	if len(f.searchQueries) != 1 || f.searchQueries[0] != "sunset song" {
		t.Errorf("video query = %v, want \"sunset song\"", f.searchQueries)
	}
}

func TestSearchIsNotCached(t *testing.T) {
	f := &fakeUpstreams{}
	svc := newTestService(t, f)
	ctx := context.Background()

	svc.Search(ctx, "first")
	svc.Search(ctx, "second")

	// Distinct queries both reach upstream; only the per-adapter cache is in
	// play, keyed by query.
	if len(f.searchQueries) != 2 {
		t.Errorf("search queries = %v, want two distinct upstream hits", f.searchQueries)
	}
}

func TestRightDefaultCapsAt25(t *testing.T) {
	f := &fakeUpstreams{jamendoCount: 40}
	svc := newTestService(t, f)

	res := svc.RightDefault(context.Background())
	if len(res.Tracks) != 25 {
		t.Errorf("got %d tracks, want cap of 25", len(res.Tracks))
	}
	if res.PlaylistName != "Jamendo Top Hits" || res.PlaylistID != "jamendo-right" {
		t.Errorf("labels: name=%q id=%q", res.PlaylistName, res.PlaylistID)
	}
	for _, tr := range res.Tracks {
		if tr.Source != SourceJamendo || tr.AudioURL == "" {
			t.Fatalf("unexpected track %+v", tr)
		}
	}
}

func TestRightTagAppendsTagFilter(t *testing.T) {
	f := &fakeUpstreams{}
	svc := newTestService(t, f)
	ctx := context.Background()

	svc.RightTag(ctx, "lofi")
	svc.RightTag(ctx, "all")

	if len(f.jamendoURLs) != 2 {
		t.Fatalf("jamendo calls = %v", f.jamendoURLs)
	}
	if want := "tags=lofi"; !strings.Contains(f.jamendoURLs[0], want) {
		t.Errorf("tag URL %q missing %q", f.jamendoURLs[0], want)
	}
	if strings.Contains(f.jamendoURLs[1], "tags=") {
		t.Errorf("all URL %q should not filter by tag", f.jamendoURLs[1])
	}
}
