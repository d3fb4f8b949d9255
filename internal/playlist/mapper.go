package playlist

import (
	"github.com/nitingupta-05/nwave/internal/jamendo"
	"github.com/nitingupta-05/nwave/internal/youtube"
)

// mapVideoItem normalizes one YouTube search result. Returns nil when the
// item carries no native video id, which drops that single item without
// failing the batch. durationSecs of 0 falls back to the default.
func mapVideoItem(item youtube.SearchItem, durationSecs int, playlistLabel string) *Track {
	id := item.ID.VideoID
	if id == "" {
		return nil
	}

	duration := durationSecs
	if duration == 0 {
		duration = fallbackDuration
	}

	thumb := item.Snippet.Thumbnails.Medium.URL
	if thumb == "" {
		thumb = item.Snippet.Thumbnails.Default.URL
	}

	return &Track{
		ID:         "yt-" + id,
		Title:      truncate(item.Snippet.Title, maxTitleLen),
		Artist:     truncate(item.Snippet.ChannelTitle, maxArtistLen),
		Duration:   duration,
		Thumb:      thumb,
		VideoID:    id,
		Source:     SourceYouTube,
		Tags:       []string{string(SourceYouTube)},
		PlaylistID: playlistLabel,
	}
}

// mapAudioItem normalizes one Jamendo result. Unlike the video mapper it is
// unconditional and pins PlaylistID to "jamendo" regardless of which feed
// requested it.
func mapAudioItem(item jamendo.TrackItem) Track {
	duration := item.Duration
	if duration == 0 {
		duration = fallbackDuration
	}

	return Track{
		ID:         "jam-" + item.ID,
		Title:      truncate(item.Name, maxTitleLen),
		Artist:     truncate(item.ArtistName, maxArtistLen),
		Duration:   duration,
		Thumb:      item.Image,
		AudioURL:   item.Audio,
		Source:     SourceJamendo,
		Tags:       []string{string(SourceJamendo)},
		PlaylistID: "jamendo",
	}
}

func mapVideoItems(items []youtube.SearchItem, durations map[string]int, playlistLabel string) []Track {
	tracks := make([]Track, 0, len(items))
	for _, item := range items {
		if t := mapVideoItem(item, durations[item.ID.VideoID], playlistLabel); t != nil {
			tracks = append(tracks, *t)
		}
	}
	return tracks
}

func mapAudioItems(items []jamendo.TrackItem) []Track {
	tracks := make([]Track, 0, len(items))
	for _, item := range items {
		tracks = append(tracks, mapAudioItem(item))
	}
	return tracks
}

func videoIDs(items []youtube.SearchItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	return ids
}
