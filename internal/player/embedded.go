package player

import (
	"sync"
	"time"

	"github.com/nitingupta-05/nwave/internal/playlist"
)

// Iframe player state codes, as reported by the embedded control surface.
const (
	videoStateEnded   = 0
	videoStatePlaying = 1
	videoStatePaused  = 2
)

// VideoControl is the control surface of an iframe-embedded video player:
// fire-and-forget commands, with playback state available only by query.
type VideoControl interface {
	LoadVideo(videoID string)
	Play()
	Pause()
	Stop()
	SeekTo(seconds float64)
	CurrentTime() float64
	VideoDuration() float64
	// PlayerState returns one of the videoState* codes; anything else is
	// treated as stopped.
	PlayerState() int
}

const defaultStartDelay = time.Second

// EmbeddedVideo adapts a VideoControl to the Backend interface. The control
// becomes usable only after an async ready callback, and a play straight
// after load is deferred by a fixed delay to ride out load latency.
type EmbeddedVideo struct {
	ctrl       VideoControl
	startDelay time.Duration

	mu      sync.Mutex
	ready   bool
	pending *time.Timer

	events chan Event
}

func NewEmbeddedVideo(ctrl VideoControl) *EmbeddedVideo {
	return &EmbeddedVideo{
		ctrl:       ctrl,
		startDelay: defaultStartDelay,
		events:     make(chan Event, 16),
	}
}

// HandleReady is the async ready callback from the embedded player. Loads
// before this point fail with ErrNotReady.
func (b *EmbeddedVideo) HandleReady() {
	b.mu.Lock()
	b.ready = true
	b.mu.Unlock()
}

// HandleStateChange is the embedded player's state-change callback.
func (b *EmbeddedVideo) HandleStateChange(code int) {
	switch code {
	case videoStatePlaying:
		sendEvent(b.events, Event{Type: EventStateChange, Playing: true})
	case videoStatePaused:
		sendEvent(b.events, Event{Type: EventStateChange, Playing: false})
	case videoStateEnded:
		sendEvent(b.events, Event{Type: EventEnded})
	}
}

func (b *EmbeddedVideo) Load(t playlist.Track) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ready {
		return ErrNotReady
	}
	b.cancelPendingLocked()
	b.ctrl.LoadVideo(t.VideoID)
	return nil
}

func (b *EmbeddedVideo) Play() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ready {
		return ErrNotReady
	}
	b.cancelPendingLocked()
	b.pending = time.AfterFunc(b.startDelay, b.ctrl.Play)
	return nil
}

func (b *EmbeddedVideo) Pause() error {
	b.ctrl.Pause()
	return nil
}

func (b *EmbeddedVideo) Stop() error {
	b.mu.Lock()
	b.cancelPendingLocked()
	b.mu.Unlock()

	b.ctrl.Stop()
	return nil
}

func (b *EmbeddedVideo) Seek(seconds float64) error {
	b.ctrl.SeekTo(seconds)
	return nil
}

func (b *EmbeddedVideo) Position() float64 { return b.ctrl.CurrentTime() }

func (b *EmbeddedVideo) Duration() float64 { return b.ctrl.VideoDuration() }

// State queries the embedded player; it is the authority, not a mirror.
func (b *EmbeddedVideo) State() State {
	switch b.ctrl.PlayerState() {
	case videoStatePlaying:
		return StatePlaying
	case videoStatePaused:
		return StatePaused
	default:
		return StateStopped
	}
}

func (b *EmbeddedVideo) Events() <-chan Event { return b.events }

func (b *EmbeddedVideo) cancelPendingLocked() {
	if b.pending != nil {
		b.pending.Stop()
		b.pending = nil
	}
}
