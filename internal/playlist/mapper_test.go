package playlist

import (
	"strings"
	"testing"

	"github.com/nitingupta-05/nwave/internal/jamendo"
	"github.com/nitingupta-05/nwave/internal/youtube"
)

func videoItem(id, title, channel string) youtube.SearchItem {
	var item youtube.SearchItem
	item.ID.VideoID = id
	item.Snippet.Title = title
	item.Snippet.ChannelTitle = channel
	return item
}

func TestMapVideoItemDropsMissingID(t *testing.T) {
	item := videoItem("", "No ID", "Chan")
	if got := mapVideoItem(item, 120, "left"); got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}

func TestMapVideoItemFields(t *testing.T) {
	item := videoItem("abc123", "A Title", "A Channel")
	item.Snippet.Thumbnails.Medium.URL = "http://img/medium.jpg"
	item.Snippet.Thumbnails.Default.URL = "http://img/default.jpg"

	got := mapVideoItem(item, 245, "left")
	if got == nil {
		t.Fatal("got nil")
	}
	if got.ID != "yt-abc123" {
		t.Errorf("ID = %s, want yt-abc123", got.ID)
	}
	if got.VideoID != "abc123" || got.AudioURL != "" {
		t.Errorf("backend discriminants wrong: videoId=%s audioUrl=%s", got.VideoID, got.AudioURL)
	}
	if got.Duration != 245 {
		t.Errorf("Duration = %d, want 245", got.Duration)
	}
	if got.Thumb != "http://img/medium.jpg" {
		t.Errorf("Thumb = %s, want medium resolution", got.Thumb)
	}
	if got.Source != SourceYouTube || got.PlaylistID != "left" {
		t.Errorf("source=%s playlistId=%s", got.Source, got.PlaylistID)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "youtube" {
		t.Errorf("Tags = %v", got.Tags)
	}
}

func TestMapVideoItemThumbnailFallback(t *testing.T) {
	item := videoItem("abc", "T", "C")
	item.Snippet.Thumbnails.Default.URL = "http://img/default.jpg"

	got := mapVideoItem(item, 0, "left")
	if got.Thumb != "http://img/default.jpg" {
		t.Errorf("Thumb = %s, want default resolution fallback", got.Thumb)
	}
}

func TestMapVideoItemDurationFallback(t *testing.T) {
	got := mapVideoItem(videoItem("abc", "T", "C"), 0, "left")
	if got.Duration != 200 {
		t.Errorf("Duration = %d, want fallback 200", got.Duration)
	}
}

func TestMapVideoItemTruncation(t *testing.T) {
	longTitle := strings.Repeat("t", 80)
	longChannel := strings.Repeat("c", 60)

	got := mapVideoItem(videoItem("abc", longTitle, longChannel), 100, "left")
	if got.Title != longTitle[:50] {
		t.Errorf("Title = %q (%d chars), want first 50 chars exactly", got.Title, len(got.Title))
	}
	if got.Artist != longChannel[:30] {
		t.Errorf("Artist = %q (%d chars), want first 30 chars exactly", got.Artist, len(got.Artist))
	}
}

func TestMapAudioItem(t *testing.T) {
	got := mapAudioItem(jamendo.TrackItem{
		ID:         "168",
		Name:       "Opus One",
		ArtistName: "Someone",
		Duration:   183,
		Image:      "http://img",
		Audio:      "http://audio.mp3",
	})

	if got.ID != "jam-168" {
		t.Errorf("ID = %s, want jam-168", got.ID)
	}
	if got.AudioURL != "http://audio.mp3" || got.VideoID != "" {
		t.Errorf("backend discriminants wrong: videoId=%s audioUrl=%s", got.VideoID, got.AudioURL)
	}
	if got.Source != SourceJamendo {
		t.Errorf("Source = %s", got.Source)
	}
	// The audio mapper pins the playlist label no matter which feed asked.
	if got.PlaylistID != "jamendo" {
		t.Errorf("PlaylistID = %s, want jamendo", got.PlaylistID)
	}
}

func TestMapAudioItemDurationFallback(t *testing.T) {
	got := mapAudioItem(jamendo.TrackItem{ID: "1", Name: "N", ArtistName: "A"})
	if got.Duration != 200 {
		t.Errorf("Duration = %d, want fallback 200", got.Duration)
	}
}

func TestTruncateIsRuneSafe(t *testing.T) {
	s := strings.Repeat("ä", 60)
	got := truncate(s, 50)
	if got != strings.Repeat("ä", 50) {
		t.Errorf("truncate cut mid-rune: %q", got)
	}
}
