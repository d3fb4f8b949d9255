package player

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/nitingupta-05/nwave/internal/playlist"
)

type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

type BackendKind string

const (
	BackendNone          BackendKind = "none"
	BackendEmbeddedVideo BackendKind = "embedded-video"
	BackendNativeAudio   BackendKind = "native-audio"
)

const defaultPollInterval = 500 * time.Millisecond

// Session is the playback state machine. It owns the two track lists, the
// active side and index, and whichever backend is currently driving
// playback. All mutation happens through user-action methods or through
// backend events consumed by Run.
type Session struct {
	// OnNowPlaying and friends feed the UI; nil callbacks are skipped.
	OnNowPlaying  func(playlist.Track)
	OnStateChange func(playing bool)
	OnProgress    func(fraction float64)

	video Backend
	audio Backend

	mu     sync.Mutex
	lists  map[Side][]playlist.Track
	side   Side
	index  int
	active Backend
	kind   BackendKind

	pollInterval time.Duration
	randIntN     func(n int) int
}

func NewSession(video, audio Backend) *Session {
	return &Session{
		video:        video,
		audio:        audio,
		lists:        make(map[Side][]playlist.Track),
		side:         SideLeft,
		kind:         BackendNone,
		pollInterval: defaultPollInterval,
		randIntN:     rand.Intn,
	}
}

// SetList replaces one side's track list. The current index is left alone;
// a stale index is caught by the range check on the next load.
func (s *Session) SetList(side Side, tracks []playlist.Track) {
	s.mu.Lock()
	s.lists[side] = tracks
	s.mu.Unlock()
}

// Select is a row click: switch to that side and index, load with autoplay.
func (s *Session) Select(side Side, index int) {
	s.mu.Lock()
	s.side = side
	s.index = index
	s.mu.Unlock()

	s.LoadTrackFromList(true)
}

// ActiveBackend reports which backend the last load picked; BackendNone
// before the first load.
func (s *Session) ActiveBackend() BackendKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kind
}

func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

func (s *Session) ActiveSide() Side {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.side
}

// LoadTrackFromList loads the current track of the active list into the
// backend matching its source. The previous backend is always stopped before
// the new one starts. Out-of-range index is a no-op. A playback start
// failure is logged and swallowed: no retry, no fallback to the other
// backend.
func (s *Session) LoadTrackFromList(autoplay bool) {
	s.mu.Lock()

	list := s.lists[s.side]
	if s.index < 0 || s.index >= len(list) {
		s.mu.Unlock()
		return
	}
	track := list[s.index]

	if s.active != nil {
		if err := s.active.Stop(); err != nil {
			slog.Warn("stopping previous backend failed", "error", err)
		}
	}

	var next Backend
	var kind BackendKind
	switch {
	case track.Source == playlist.SourceYouTube && track.VideoID != "":
		next, kind = s.video, BackendEmbeddedVideo
	case track.Source == playlist.SourceJamendo && track.AudioURL != "":
		next, kind = s.audio, BackendNativeAudio
	default:
		s.mu.Unlock()
		return
	}

	s.active = next
	s.kind = kind
	onNowPlaying := s.OnNowPlaying
	s.mu.Unlock()

	if onNowPlaying != nil {
		onNowPlaying(track)
	}

	if err := next.Load(track); err != nil {
		slog.Warn("track load failed", "track", track.ID, "error", err)
		return
	}
	if autoplay {
		if err := next.Play(); err != nil {
			slog.Warn("playback start failed", "track", track.ID, "error", err)
		}
	}
}

// TogglePlayPause flips playback on the active backend. Both backends are
// asked for their real state; nothing is mirrored locally.
func (s *Session) TogglePlayPause() {
	s.mu.Lock()
	active := s.active
	s.mu.Unlock()

	if active == nil {
		return
	}

	var err error
	if active.State() == StatePlaying {
		err = active.Pause()
	} else {
		err = active.Play()
	}
	if err != nil {
		slog.Warn("toggle play/pause failed", "error", err)
	}
}

// Next advances through the active list, wrapping from the end to index 0.
func (s *Session) Next() {
	s.step(func(index, length int) int {
		return (index + 1) % length
	})
}

// Prev retreats through the active list, wrapping from 0 to the last index.
func (s *Session) Prev() {
	s.step(func(index, length int) int {
		if index == 0 {
			return length - 1
		}
		return index - 1
	})
}

// RandomTrack jumps to a random index of the active list. A roll that lands
// on the current index advances by one instead of re-rolling, so a list of
// two or more tracks always moves somewhere else.
func (s *Session) RandomTrack() {
	s.step(func(index, length int) int {
		next := s.randIntN(length)
		if next == index {
			next = (next + 1) % length
		}
		return next
	})
}

func (s *Session) step(advance func(index, length int) int) {
	s.mu.Lock()
	list := s.lists[s.side]
	if len(list) == 0 {
		s.mu.Unlock()
		return
	}
	s.index = advance(s.index, len(list))
	s.mu.Unlock()

	s.LoadTrackFromList(true)
}

// Seek converts a 0–100 progress fraction into an absolute position against
// the active backend's own reported duration. Unknown or zero duration makes
// it a no-op.
func (s *Session) Seek(fractionPercent float64) {
	s.mu.Lock()
	active := s.active
	s.mu.Unlock()

	if active == nil {
		return
	}
	duration := active.Duration()
	if duration <= 0 {
		return
	}
	if err := active.Seek(fractionPercent / 100 * duration); err != nil {
		slog.Warn("seek failed", "error", err)
	}
}

// Run consumes backend events and polls playback progress until ctx is
// cancelled. Events from a backend that is not currently active are ignored;
// they belong to a track the session already moved away from. The poll is
// what keeps the progress indicator moving for the embedded player, which
// pushes no position events of its own; pushed updates and poll ticks may
// race on the indicator, last write wins.
func (s *Session) Run(ctx context.Context) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case e := <-s.video.Events():
			s.handleEvent(s.video, e)
		case e := <-s.audio.Events():
			s.handleEvent(s.audio, e)
		case <-ticker.C:
			s.publishProgress()
		}
	}
}

func (s *Session) handleEvent(from Backend, e Event) {
	s.mu.Lock()
	active := s.active
	onStateChange := s.OnStateChange
	s.mu.Unlock()

	if from != active {
		return
	}

	switch e.Type {
	case EventEnded:
		s.RandomTrack()
	case EventStateChange:
		if onStateChange != nil {
			onStateChange(e.Playing)
		}
	case EventTimeUpdate:
		s.publishProgress()
	}
}

func (s *Session) publishProgress() {
	s.mu.Lock()
	active := s.active
	onProgress := s.OnProgress
	s.mu.Unlock()

	if active == nil || onProgress == nil {
		return
	}

	duration := active.Duration()
	if duration <= 0 {
		return
	}
	onProgress(active.Position() / duration)
}
