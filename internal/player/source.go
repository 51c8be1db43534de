// Package player implements the playback session core: the transport
// controller, the progress reporter, the subtitle track binder, and the
// player shell that composes them around a playback source.
package player

import (
	"errors"
	"math"
)

// ErrUnsupportedCapability is returned when the host environment cannot
// perform a request, e.g. fullscreen on a headless source.
var ErrUnsupportedCapability = errors.New("unsupported capability")

// EventType identifies a media element notification.
type EventType int

const (
	EventLoadedMetadata EventType = iota
	EventTimeUpdate
	EventProgress
	EventEnded
)

func (t EventType) String() string {
	switch t {
	case EventLoadedMetadata:
		return "loadedmetadata"
	case EventTimeUpdate:
		return "timeupdate"
	case EventProgress:
		return "progress"
	case EventEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Event is a notification from the playback source. Position and duration
// are read back from the source by the subscriber.
type Event struct {
	Type EventType
}

// TimeRange is a buffered span of media, in seconds.
type TimeRange struct {
	Start float64
	End   float64
}

// TrackMode is the visibility of a native text track.
type TrackMode string

const (
	TrackDisabled TrackMode = "disabled"
	TrackHidden   TrackMode = "hidden"
	TrackShowing  TrackMode = "showing"
)

// TextTrack is a native text track exposed by the source.
type TextTrack interface {
	Label() string
	Language() string
	Mode() TrackMode
	SetMode(TrackMode)
}

// Source is the media element a player session drives. Implementations
// deliver events through Subscribe, possibly from another goroutine.
// A Duration of 0 or NaN means the duration is not known yet.
type Source interface {
	Play() error
	Pause() error
	Seek(seconds float64) error
	Position() float64
	Duration() float64
	Buffered() []TimeRange
	SetVolume(v float64)
	SetMuted(muted bool)
	SetPlaybackRate(rate float64)
	TextTracks() []TextTrack
	Subscribe(fn func(Event)) (unsubscribe func())
}

// Fullscreener is implemented by sources whose container can go fullscreen.
// Either call may fail with ErrUnsupportedCapability when the platform
// refuses.
type Fullscreener interface {
	RequestFullscreen() error
	ExitFullscreen() error
}

// BufferedFraction returns the end of the last buffered range divided by
// duration, or 0 when nothing is buffered or the duration is unknown.
func BufferedFraction(ranges []TimeRange, duration float64) float64 {
	if len(ranges) == 0 || !knownDuration(duration) {
		return 0
	}
	return ranges[len(ranges)-1].End / duration
}

func knownDuration(d float64) bool {
	return d > 0 && !math.IsNaN(d) && !math.IsInf(d, 0)
}
