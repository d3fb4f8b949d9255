// Package player implements the playback session: which list is active,
// which index is current, which of the two player backends is driving sound,
// and the transitions between them.
package player

import (
	"errors"

	"github.com/nitingupta-05/nwave/internal/playlist"
)

var ErrNotReady = errors.New("player backend is not ready")

type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

type EventType int

const (
	// EventStateChange reports a play/pause flip originating in the backend.
	EventStateChange EventType = iota
	// EventEnded fires on natural end of track, never on manual stop.
	EventEnded
	// EventTimeUpdate carries a position push from backends that emit them.
	EventTimeUpdate
)

type Event struct {
	Type     EventType
	Playing  bool
	Position float64
}

// Backend is the capability surface the session drives. The two
// implementations wrap very different player personalities, an
// iframe-embedded video player with queried state and an HTML-audio-like
// element with evented state, behind these same calls.
type Backend interface {
	Load(t playlist.Track) error
	Play() error
	Pause() error
	Stop() error
	// Seek positions playback at an absolute offset in seconds.
	Seek(seconds float64) error
	// Position and Duration are in seconds; Duration returns 0 while unknown.
	Position() float64
	Duration() float64
	State() State
	// Events delivers backend-originated notifications. Sends are lossy:
	// a slow consumer drops position updates, not correctness.
	Events() <-chan Event
}

func sendEvent(ch chan Event, e Event) {
	select {
	case ch <- e:
	default:
	}
}
