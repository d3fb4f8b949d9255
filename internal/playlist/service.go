package playlist

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nitingupta-05/nwave/internal/cache"
	"github.com/nitingupta-05/nwave/internal/jamendo"
	"github.com/nitingupta-05/nwave/internal/youtube"
)

const (
	leftDefaultCap     = 15
	searchCap          = 20
	rightCap           = 25
	jamendoLimit       = 40
	jamendoSearchLimit = 30
)

// defaultQueries feed the left default playlist; they are fanned out
// concurrently and merged in this order.
var defaultQueries = []string{"top songs", "popular music", "music video"}

// tagPhrases maps a mood tag to the search phrase used against the video
// source. Unknown tags fall back to the "all" phrase.
var tagPhrases = map[string]string{
	"indie-pop": "indie pop playlist",
	"lofi":      "lofi beats",
	"night":     "night drive music",
	"romantic":  "romantic songs",
	"party":     "party dance mix",
	"all":       "popular music",
}

// Service composes the upstream adapters, the cache and the mappers into the
// five named feeds of the API.
type Service struct {
	YouTube *youtube.Client
	Jamendo *jamendo.Client
	Cache   cache.Store
}

func NewService(yt *youtube.Client, jam *jamendo.Client, store cache.Store) *Service {
	return &Service{YouTube: yt, Jamendo: jam, Cache: store}
}

// LeftDefault builds the default video feed: three fixed queries fanned out
// concurrently, one batched duration lookup over the union, capped at 15.
func (s *Service) LeftDefault(ctx context.Context) Result {
	result, _ := cache.GetOrCompute(ctx, s.Cache, "left_default", func(ctx context.Context) (Result, error) {
		itemLists := make([][]youtube.SearchItem, len(defaultQueries))

		var wg sync.WaitGroup
		for i, q := range defaultQueries {
			i, q := i, q
			wg.Add(1)
			go func() {
				defer wg.Done()
				itemLists[i] = s.YouTube.Search(ctx, q)
			}()
		}
		wg.Wait()

		var all []youtube.SearchItem
		for _, items := range itemLists {
			all = append(all, items...)
		}

		durations := s.YouTube.Durations(ctx, videoIDs(all))
		tracks := capTracks(mapVideoItems(all, durations, "left"), leftDefaultCap)

		return newResult(tracks, "YouTube Hits", "youtube-left"), nil
	})
	return result
}

// LeftTag builds the tag-filtered video feed. The full result list is
// returned, uncapped.
func (s *Service) LeftTag(ctx context.Context, tag string) Result {
	result, _ := cache.GetOrCompute(ctx, s.Cache, "left_tag_"+tag, func(ctx context.Context) (Result, error) {
		phrase, ok := tagPhrases[tag]
		if !ok {
			phrase = tagPhrases["all"]
		}

		items := s.YouTube.Search(ctx, phrase)
		durations := s.YouTube.Durations(ctx, videoIDs(items))
		tracks := mapVideoItems(items, durations, tag)

		return newResult(tracks, fmt.Sprintf("YouTube – %s", tag), ""), nil
	})
	return result
}

// Search is the cross-source feed: the video search (suffixed " song") and
// the audio search run concurrently, merged video-then-audio, capped at 20.
// The merged result is not cache-wrapped, though the constituent adapter
// calls still are. An empty query returns an empty result without touching
// either upstream.
func (s *Service) Search(ctx context.Context, query string) Result {
	if strings.TrimSpace(query) == "" {
		return newResult(nil, "Search", "")
	}

	var (
		wg         sync.WaitGroup
		videoItems []youtube.SearchItem
		durations  map[string]int
		audioItems []jamendo.TrackItem
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		videoItems = s.YouTube.Search(ctx, query+" song")
		durations = s.YouTube.Durations(ctx, videoIDs(videoItems))
	}()
	go func() {
		defer wg.Done()
		audioItems = s.Jamendo.Fetch(ctx, s.Jamendo.SearchURL(query, jamendoSearchLimit))
	}()
	wg.Wait()

	tracks := mapVideoItems(videoItems, durations, "search")
	tracks = append(tracks, mapAudioItems(audioItems)...)
	tracks = capTracks(tracks, searchCap)

	return newResult(tracks, fmt.Sprintf("Search – %s", query), "")
}

// RightDefault builds the default audio feed: popularity ordering, upstream
// limit 40, capped at 25.
func (s *Service) RightDefault(ctx context.Context) Result {
	result, _ := cache.GetOrCompute(ctx, s.Cache, "right_default", func(ctx context.Context) (Result, error) {
		items := s.Jamendo.Fetch(ctx, s.Jamendo.DefaultURL(jamendoLimit))
		tracks := capTracks(mapAudioItems(items), rightCap)

		return newResult(tracks, "Jamendo Top Hits", "jamendo-right"), nil
	})
	return result
}

// RightTag builds the tag-filtered audio feed; tag "all" is the unfiltered
// popularity feed.
func (s *Service) RightTag(ctx context.Context, tag string) Result {
	result, _ := cache.GetOrCompute(ctx, s.Cache, "right_tag_"+tag, func(ctx context.Context) (Result, error) {
		items := s.Jamendo.Fetch(ctx, s.Jamendo.TagURL(tag, jamendoLimit))
		tracks := capTracks(mapAudioItems(items), rightCap)

		return newResult(tracks, fmt.Sprintf("Jamendo – %s", tag), ""), nil
	})
	return result
}
