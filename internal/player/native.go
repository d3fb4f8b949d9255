package player

import (
	"github.com/nitingupta-05/nwave/internal/playlist"
)

// AudioControl is a native media element: synchronous commands, state pushed
// back through element events (relayed via the Handle* methods).
type AudioControl interface {
	SetSource(url string)
	Play() error
	Pause()
	SetPosition(seconds float64)
	Position() float64
	MediaDuration() float64
	Paused() bool
}

// NativeAudio adapts an AudioControl to the Backend interface. Play is
// immediate; Stop pauses and rewinds to zero so a later load starts clean.
type NativeAudio struct {
	el     AudioControl
	events chan Event
}

func NewNativeAudio(el AudioControl) *NativeAudio {
	return &NativeAudio{
		el:     el,
		events: make(chan Event, 16),
	}
}

// HandlePlay, HandlePause, HandleEnded and HandleTimeUpdate relay the
// element's own event callbacks into the session.
func (b *NativeAudio) HandlePlay() {
	sendEvent(b.events, Event{Type: EventStateChange, Playing: true})
}

func (b *NativeAudio) HandlePause() {
	sendEvent(b.events, Event{Type: EventStateChange, Playing: false})
}

func (b *NativeAudio) HandleEnded() {
	sendEvent(b.events, Event{Type: EventEnded})
}

func (b *NativeAudio) HandleTimeUpdate() {
	sendEvent(b.events, Event{Type: EventTimeUpdate, Position: b.el.Position()})
}

func (b *NativeAudio) Load(t playlist.Track) error {
	b.el.SetSource(t.AudioURL)
	return nil
}

func (b *NativeAudio) Play() error {
	return b.el.Play()
}

func (b *NativeAudio) Pause() error {
	b.el.Pause()
	return nil
}

func (b *NativeAudio) Stop() error {
	b.el.Pause()
	b.el.SetPosition(0)
	return nil
}

func (b *NativeAudio) Seek(seconds float64) error {
	b.el.SetPosition(seconds)
	return nil
}

func (b *NativeAudio) Position() float64 { return b.el.Position() }

func (b *NativeAudio) Duration() float64 { return b.el.MediaDuration() }

// State asks the element directly rather than mirroring a local flag, so it
// cannot drift from what the element is actually doing.
func (b *NativeAudio) State() State {
	if b.el.Paused() {
		return StatePaused
	}
	return StatePlaying
}

func (b *NativeAudio) Events() <-chan Event { return b.events }
