// Package playlist holds the normalized track model and the aggregation
// service that builds named feeds out of the two upstream sources.
package playlist

import "fmt"

type Source string

const (
	SourceYouTube Source = "youtube"
	SourceJamendo Source = "jamendo"
)

const (
	maxTitleLen  = 50
	maxArtistLen = 30

	// Used when an upstream omits the duration.
	fallbackDuration = 200
)

// Track is the common playable record both sources normalize into. Exactly
// one of VideoID or AudioURL is set, matching Source. ID is globally unique
// within one aggregation result via the source prefix.
type Track struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Artist     string   `json:"artist"`
	Duration   int      `json:"duration"`
	Thumb      string   `json:"thumb,omitempty"`
	VideoID    string   `json:"videoId,omitempty"`
	AudioURL   string   `json:"audioUrl,omitempty"`
	Source     Source   `json:"source"`
	Tags       []string `json:"tags"`
	PlaylistID string   `json:"playlistId"`
}

// Result is the wire shape of every feed endpoint. Count is fixed at
// construction and always equals len(Tracks) at that moment.
type Result struct {
	Tracks       []Track `json:"tracks"`
	PlaylistName string  `json:"playlistName"`
	PlaylistID   string  `json:"playlistId,omitempty"`
	Count        int     `json:"count"`
}

func newResult(tracks []Track, name, id string) Result {
	if tracks == nil {
		tracks = []Track{}
	}
	return Result{
		Tracks:       tracks,
		PlaylistName: name,
		PlaylistID:   id,
		Count:        len(tracks),
	}
}

// truncate hard-caps s at n runes, no ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func capTracks(tracks []Track, n int) []Track {
	if n > 0 && len(tracks) > n {
		return tracks[:n]
	}
	return tracks
}

func (s Source) String() string { return string(s) }

func (t Track) String() string {
	return fmt.Sprintf("%s (%s)", t.Title, t.Source)
}
