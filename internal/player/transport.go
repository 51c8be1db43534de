package player

import (
	"errors"
	"fmt"
	"log"
)

// TransportState is the transport part of a player session.
type TransportState struct {
	Playing      bool    `json:"playing"`
	CurrentTime  float64 `json:"current_time"`
	Duration     float64 `json:"duration"` // 0 while unknown
	Volume       float64 `json:"volume"`
	Muted        bool    `json:"muted"`
	PlaybackRate float64 `json:"playback_rate"`
	Fullscreen   bool    `json:"fullscreen"`
}

// Transport translates user intent into source mutations and mirrors the
// source's events into local state. It is not safe for concurrent use; the
// Shell serializes access to it.
type Transport struct {
	src   Source
	state TransportState
}

// NewTransport creates a controller over src. The initial playing flag is
// autoPlay; nothing is sent to the source until Start.
func NewTransport(src Source, autoPlay bool) *Transport {
	return &Transport{
		src: src,
		state: TransportState{
			Playing:      autoPlay,
			Volume:       1,
			PlaybackRate: 1,
		},
	}
}

// Start pushes the initial playing flag to the source.
func (t *Transport) Start() {
	if t.state.Playing {
		t.startPlayback()
	}
}

// Play enters the Playing state. A rejection from the source is logged only.
func (t *Transport) Play() {
	t.state.Playing = true
	t.startPlayback()
}

// Pause enters the Paused state.
func (t *Transport) Pause() {
	t.state.Playing = false
	if err := t.src.Pause(); err != nil {
		log.Printf("Pause failed: %v", err)
	}
}

// TogglePlay flips between Playing and Paused.
func (t *Transport) TogglePlay() {
	if t.state.Playing {
		t.Pause()
	} else {
		t.Play()
	}
}

// Seek moves the source to seconds. Callers bound the value; the source has
// the final say on where playback lands.
func (t *Transport) Seek(seconds float64) {
	if err := t.src.Seek(seconds); err != nil {
		log.Printf("Seek to %.2fs failed: %v", seconds, err)
	}
	t.state.CurrentTime = seconds
}

// SetVolume applies v immediately. Raising the volume above zero unmutes.
func (t *Transport) SetVolume(v float64) {
	t.state.Volume = v
	t.src.SetVolume(v)
	if v > 0 && t.state.Muted {
		t.state.Muted = false
		t.src.SetMuted(false)
	}
}

// ToggleMute flips the muted flag.
func (t *Transport) ToggleMute() {
	t.state.Muted = !t.state.Muted
	t.src.SetMuted(t.state.Muted)
}

// SetPlaybackRate applies r immediately.
func (t *Transport) SetPlaybackRate(r float64) {
	t.state.PlaybackRate = r
	t.src.SetPlaybackRate(r)
}

// ToggleFullscreen enters or leaves fullscreen. When the source cannot go
// fullscreen, or the platform refuses, the flag is left unchanged and the
// returned error wraps ErrUnsupportedCapability.
func (t *Transport) ToggleFullscreen() error {
	fs, ok := t.src.(Fullscreener)
	if !ok {
		return fmt.Errorf("fullscreen: %w", ErrUnsupportedCapability)
	}

	var err error
	if t.state.Fullscreen {
		err = fs.ExitFullscreen()
	} else {
		err = fs.RequestFullscreen()
	}
	if err != nil {
		if errors.Is(err, ErrUnsupportedCapability) {
			return fmt.Errorf("fullscreen: %w", err)
		}
		return fmt.Errorf("fullscreen: %w: %v", ErrUnsupportedCapability, err)
	}
	t.state.Fullscreen = !t.state.Fullscreen
	return nil
}

// HandleEvent folds a source event into the transport state.
func (t *Transport) HandleEvent(ev Event) {
	switch ev.Type {
	case EventLoadedMetadata:
		d := t.src.Duration()
		if !knownDuration(d) {
			d = 0
		}
		t.state.Duration = d
	case EventTimeUpdate:
		t.state.CurrentTime = t.src.Position()
	case EventEnded:
		t.state.Playing = false
	}
}

// State returns a snapshot of the transport state.
func (t *Transport) State() TransportState {
	return t.state
}

func (t *Transport) startPlayback() {
	if err := t.src.Play(); err != nil {
		log.Printf("Playback could not start: %v", err)
	}
}
