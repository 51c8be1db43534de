// Package mediasource provides playback sources for the player shell. The
// simulated source advances a virtual clock instead of decoding media, which
// is what the headless player and the tests drive.
package mediasource

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/vrsandeep/cinevault-go/internal/models"
	"github.com/vrsandeep/cinevault-go/internal/player"
)

const (
	defaultTickInterval = 250 * time.Millisecond
	defaultBufferAhead  = 30.0
)

// TrackInfo describes a native text track exposed by the source.
type TrackInfo struct {
	Label    string
	Language string
}

// Options configures a Simulated source.
type Options struct {
	// Duration in seconds. A non-positive value is a stream that never
	// reports its duration.
	Duration     float64
	TickInterval time.Duration
	// Speed multiplies media time against wall time in Run.
	Speed       float64
	BufferAhead float64
	TextTracks  []TrackInfo
	Fullscreen  bool
}

// Simulated is a player.Source driven by Advance or Run. Events are
// delivered from the goroutine that advances the clock, never from inside a
// mutating call.
type Simulated struct {
	locator string
	opts    Options
	tracks  []player.TextTrack

	mu         sync.Mutex
	position   float64
	playing    bool
	volume     float64
	muted      bool
	rate       float64
	bufEnd     float64
	metaSent   bool
	needUpdate bool
	fullscreen bool
	handlers   map[int]func(player.Event)
	nextID     int
}

var (
	_ player.Source       = (*Simulated)(nil)
	_ player.Fullscreener = (*Simulated)(nil)
)

// NewSimulated creates a paused source for locator.
func NewSimulated(locator string, opts Options) *Simulated {
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}
	if opts.Speed <= 0 {
		opts.Speed = 1
	}
	if opts.BufferAhead <= 0 {
		opts.BufferAhead = defaultBufferAhead
	}
	s := &Simulated{
		locator:  locator,
		opts:     opts,
		volume:   1,
		rate:     1,
		handlers: make(map[int]func(player.Event)),
	}
	for _, t := range opts.TextTracks {
		s.tracks = append(s.tracks, &textTrack{label: t.Label, language: t.Language, mode: player.TrackDisabled})
	}
	return s
}

// TextTracksFrom turns backend subtitle descriptors into native track specs.
func TextTracksFrom(tracks []models.SubtitleTrack) []TrackInfo {
	out := make([]TrackInfo, 0, len(tracks))
	for _, t := range tracks {
		var info TrackInfo
		if t.Label != nil {
			info.Label = *t.Label
		}
		if t.Language != nil {
			info.Language = *t.Language
		}
		out = append(out, info)
	}
	return out
}

// Locator returns the locator the source was created for.
func (s *Simulated) Locator() string { return s.locator }

func (s *Simulated) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.known() && s.position >= s.opts.Duration {
		s.position = 0
		s.needUpdate = true
	}
	s.playing = true
	return nil
}

func (s *Simulated) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = false
	return nil
}

// Seek moves the playhead, clamped to the media bounds. The matching time
// update is delivered on the next Advance.
func (s *Simulated) Seek(seconds float64) error {
	if math.IsNaN(seconds) {
		return fmt.Errorf("seek to NaN")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	seconds = math.Max(0, seconds)
	if s.known() {
		seconds = math.Min(s.opts.Duration, seconds)
	}
	s.position = seconds
	s.needUpdate = true
	return nil
}

func (s *Simulated) Position() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// Duration is NaN until metadata has been delivered, and for streams
// without a known duration.
func (s *Simulated) Duration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.metaSent || !s.known() {
		return math.NaN()
	}
	return s.opts.Duration
}

func (s *Simulated) Buffered() []player.TimeRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bufEnd <= 0 {
		return nil
	}
	return []player.TimeRange{{Start: 0, End: s.bufEnd}}
}

func (s *Simulated) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = v
}

func (s *Simulated) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = muted
}

func (s *Simulated) SetPlaybackRate(rate float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rate = rate
}

func (s *Simulated) TextTracks() []player.TextTrack {
	return s.tracks
}

func (s *Simulated) Subscribe(fn func(player.Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.handlers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.handlers, id)
	}
}

func (s *Simulated) RequestFullscreen() error {
	return s.setFullscreen(true)
}

func (s *Simulated) ExitFullscreen() error {
	return s.setFullscreen(false)
}

func (s *Simulated) setFullscreen(on bool) error {
	if !s.opts.Fullscreen {
		return player.ErrUnsupportedCapability
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fullscreen = on
	return nil
}

// Snapshot is the element-side view of the source, for display.
type Snapshot struct {
	Position   float64
	Playing    bool
	Volume     float64
	Muted      bool
	Rate       float64
	Fullscreen bool
}

func (s *Simulated) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Position:   s.position,
		Playing:    s.playing,
		Volume:     s.volume,
		Muted:      s.muted,
		Rate:       s.rate,
		Fullscreen: s.fullscreen,
	}
}

// Advance moves media time forward by d of wall time and delivers the
// resulting events. Metadata is delivered on the first Advance after
// someone subscribed.
func (s *Simulated) Advance(d time.Duration) {
	s.mu.Lock()
	var events []player.EventType
	if !s.metaSent {
		if len(s.handlers) == 0 {
			s.mu.Unlock()
			return
		}
		s.metaSent = true
		events = append(events, player.EventLoadedMetadata)
	}

	update := s.needUpdate
	s.needUpdate = false
	ended := false
	if s.playing {
		s.position += d.Seconds() * s.rate * s.opts.Speed
		if s.known() && s.position >= s.opts.Duration {
			s.position = s.opts.Duration
			s.playing = false
			ended = true
		}
		update = true
	}
	if update {
		events = append(events, player.EventTimeUpdate)
	}

	end := s.position + s.opts.BufferAhead
	if s.known() {
		end = math.Min(s.opts.Duration, end)
	}
	if end > s.bufEnd {
		s.bufEnd = end
		events = append(events, player.EventProgress)
	}
	if ended {
		events = append(events, player.EventEnded)
	}

	handlers := make([]func(player.Event), 0, len(s.handlers))
	for _, h := range s.handlers {
		handlers = append(handlers, h)
	}
	s.mu.Unlock()

	for _, ev := range events {
		for _, h := range handlers {
			h(player.Event{Type: ev})
		}
	}
}

// Run advances the source on a ticker until ctx is done.
func (s *Simulated) Run(ctx context.Context) {
	ticker := time.NewTicker(s.opts.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Advance(s.opts.TickInterval)
		}
	}
}

func (s *Simulated) known() bool {
	return s.opts.Duration > 0
}

type textTrack struct {
	label    string
	language string

	mu   sync.Mutex
	mode player.TrackMode
}

func (t *textTrack) Label() string    { return t.label }
func (t *textTrack) Language() string { return t.language }

func (t *textTrack) Mode() player.TrackMode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

func (t *textTrack) SetMode(m player.TrackMode) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mode = m
}
