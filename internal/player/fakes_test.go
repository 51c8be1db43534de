package player

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/vrsandeep/cinevault-go/internal/models"
)

type fakeTextTrack struct {
	label    string
	language string
	mode     TrackMode
}

func (t *fakeTextTrack) Label() string       { return t.label }
func (t *fakeTextTrack) Language() string    { return t.language }
func (t *fakeTextTrack) Mode() TrackMode     { return t.mode }
func (t *fakeTextTrack) SetMode(m TrackMode) { t.mode = m }

// fakeSource records every mutation and lets tests emit events by hand.
type fakeSource struct {
	mu       sync.Mutex
	calls    []string
	position float64
	duration float64
	buffered []TimeRange
	volume   float64
	muted    bool
	rate     float64
	playing  bool
	seeks    []float64
	tracks   []TextTrack
	handlers map[int]func(Event)
	nextID   int
}

func newFakeSource() *fakeSource {
	return &fakeSource{duration: math.NaN(), volume: 1, rate: 1, handlers: make(map[int]func(Event))}
}

func (f *fakeSource) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeSource) Play() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("play")
	f.playing = true
	return nil
}

func (f *fakeSource) Pause() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("pause")
	f.playing = false
	return nil
}

func (f *fakeSource) Seek(seconds float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("seek:%g", seconds))
	f.seeks = append(f.seeks, seconds)
	f.position = seconds
	return nil
}

func (f *fakeSource) Position() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.position
}

func (f *fakeSource) Duration() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.duration
}

func (f *fakeSource) Buffered() []TimeRange {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buffered
}

func (f *fakeSource) SetVolume(v float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volume = v
}

func (f *fakeSource) SetMuted(m bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.muted = m
}

func (f *fakeSource) SetPlaybackRate(r float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rate = r
}

func (f *fakeSource) TextTracks() []TextTrack {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tracks
}

func (f *fakeSource) Subscribe(fn func(Event)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("subscribe")
	id := f.nextID
	f.nextID++
	f.handlers[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.handlers, id)
	}
}

func (f *fakeSource) emit(t EventType) {
	f.mu.Lock()
	handlers := make([]func(Event), 0, len(f.handlers))
	for _, h := range f.handlers {
		handlers = append(handlers, h)
	}
	f.mu.Unlock()
	for _, h := range handlers {
		h(Event{Type: t})
	}
}

func (f *fakeSource) loadMetadata(duration float64) {
	f.mu.Lock()
	f.duration = duration
	f.mu.Unlock()
	f.emit(EventLoadedMetadata)
}

func (f *fakeSource) tick(position float64) {
	f.mu.Lock()
	f.position = position
	f.mu.Unlock()
	f.emit(EventTimeUpdate)
}

func (f *fakeSource) subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.handlers)
}

func (f *fakeSource) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// fullscreenSource is a fakeSource whose container can go fullscreen.
type fullscreenSource struct {
	*fakeSource
	err error
}

func (f *fullscreenSource) RequestFullscreen() error { return f.err }
func (f *fullscreenSource) ExitFullscreen() error    { return f.err }

// fakeService is an in-memory backend.
type fakeService struct {
	mu          sync.Mutex
	state       *models.PlaybackState
	stateErr    error
	tracks      []models.SubtitleTrack
	tracksErr   error
	updateErr   error
	positions   []float64
	completions []float64
}

func (s *fakeService) GetPlaybackState(ctx context.Context, mediaID int64) (*models.PlaybackState, error) {
	return s.state, s.stateErr
}

func (s *fakeService) UpdatePosition(ctx context.Context, mediaID int64, position, duration float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	s.positions = append(s.positions, position)
	return nil
}

func (s *fakeService) MarkAsCompleted(ctx context.Context, mediaID int64, duration float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completions = append(s.completions, duration)
	return nil
}

func (s *fakeService) GetSubtitleTracks(ctx context.Context, mediaID int64) ([]models.SubtitleTrack, error) {
	return s.tracks, s.tracksErr
}

func (s *fakeService) GetAudioTracks(ctx context.Context, mediaID int64) ([]models.AudioTrack, error) {
	return nil, errors.New("no audio tracks")
}

func (s *fakeService) saved() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]float64(nil), s.positions...)
}

func (s *fakeService) completed() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]float64(nil), s.completions...)
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *fakeNotifier) Info(msg string)  { n.add(msg) }
func (n *fakeNotifier) Error(msg string) { n.add(msg) }

func (n *fakeNotifier) add(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
}

func (n *fakeNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

// manualClock only fires timers when told to.
type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	f       func()
	stopped bool
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	was := !t.stopped
	t.stopped = true
	return was
}

// fire runs every pending timer.
func (c *manualClock) fire() {
	c.mu.Lock()
	var due []func()
	for _, t := range c.timers {
		if !t.stopped {
			t.stopped = true
			due = append(due, t.f)
		}
	}
	c.timers = nil
	c.mu.Unlock()
	for _, f := range due {
		f()
	}
}

func (c *manualClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}
