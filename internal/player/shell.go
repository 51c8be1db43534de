package player

import (
	"context"
	"errors"
	"log"
	"math"
	"sync"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/vrsandeep/cinevault-go/internal/models"
)

const (
	defaultSeekStep    = 10.0
	defaultVolumeStep  = 0.1
	defaultIdleTimeout = 3 * time.Second
)

// ErrAlreadyOpen is returned by Open on a shell that was opened before.
var ErrAlreadyOpen = errors.New("player already open")

// Service is the backend surface a Shell needs. *backend.Client satisfies it.
type Service interface {
	ProgressStore
	TrackFetcher
	GetAudioTracks(ctx context.Context, mediaID int64) ([]models.AudioTrack, error)
}

// Options configures a Shell. Zero values fall back to a 10s seek step,
// a 0.1 volume step, a 3s idle window, the quantized checkpoint and the
// 95% completion threshold.
type Options struct {
	MediaID        int64
	Title          string
	Locator        string
	ResumePosition float64
	AutoPlay       bool

	SeekStep    float64
	VolumeStep  float64
	IdleTimeout time.Duration

	CheckpointPolicy    CheckpointPolicy
	CompletionThreshold float64

	OnProgress func(position, duration float64)
	OnClose    func()

	Notifier Notifier
	Clock    Clock
}

// Settings are the Options that can change while a session is running.
type Settings struct {
	SeekStep    float64
	VolumeStep  float64
	IdleTimeout time.Duration
}

// SessionState is a snapshot of one player session.
type SessionState struct {
	TransportState
	ControlsVisible bool    `json:"controls_visible"`
	Buffered        float64 `json:"buffered"`
	ActiveSubtitle  string  `json:"active_subtitle,omitempty"`
}

// Shell composes the transport, the progress reporter and the subtitle
// binder around one Source. Source events may arrive on any goroutine; the
// shell serializes them with its own mutex. Callbacks supplied in Options
// run outside that mutex.
type Shell struct {
	src   Source
	svc   Service
	opts  Options
	clock Clock

	transport *Transport
	reporter  *Reporter
	subtitles *SubtitleBinder
	loads     conc.WaitGroup

	mu              sync.Mutex
	opened          bool
	closed          bool
	controlsVisible bool
	buffered        float64
	unsubscribe     func()
	idle            Timer
	idleGen         uint64
}

// NewShell creates a player shell over src. Nothing happens until Open.
func NewShell(src Source, svc Service, opts Options) *Shell {
	if opts.SeekStep <= 0 {
		opts.SeekStep = defaultSeekStep
	}
	if opts.VolumeStep <= 0 {
		opts.VolumeStep = defaultVolumeStep
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = defaultIdleTimeout
	}
	clock := opts.Clock
	if clock == nil {
		clock = realClock{}
	}

	return &Shell{
		src:       src,
		svc:       svc,
		opts:      opts,
		clock:     clock,
		transport: NewTransport(src, opts.AutoPlay),
		reporter: NewReporter(opts.MediaID, svc, ReporterOptions{
			OnProgress:          opts.OnProgress,
			Policy:              opts.CheckpointPolicy,
			CompletionThreshold: opts.CompletionThreshold,
			Notifier:            opts.Notifier,
		}),
		subtitles:       NewSubtitleBinder(svc, src),
		controlsVisible: true,
	}
}

// Open seeks to the resume position, subscribes to source events, starts
// playback when AutoPlay is set and loads the track lists in the background.
func (s *Shell) Open(ctx context.Context) error {
	s.mu.Lock()
	if s.opened {
		s.mu.Unlock()
		return ErrAlreadyOpen
	}
	s.opened = true
	log.Printf("Opening player for %d %q (%s)", s.opts.MediaID, s.opts.Title, s.opts.Locator)
	if s.opts.ResumePosition > 0 {
		s.transport.Seek(s.opts.ResumePosition)
	}
	s.mu.Unlock()

	// Subscribe outside the lock: a source may deliver its first event
	// synchronously.
	unsubscribe := s.src.Subscribe(s.handleEvent)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		unsubscribe()
		return nil
	}
	s.unsubscribe = unsubscribe
	s.transport.Start()
	s.syncIdleLocked()
	s.mu.Unlock()

	mediaID := s.opts.MediaID
	s.loads.Go(func() { s.subtitles.LoadTracks(ctx, mediaID) })
	s.loads.Go(func() {
		tracks, err := s.svc.GetAudioTracks(ctx, mediaID)
		if err != nil {
			log.Printf("Failed to load audio tracks for %d: %v", mediaID, err)
			return
		}
		log.Printf("Media %d has %d audio track(s)", mediaID, len(tracks))
	})
	return nil
}

// HandleKey applies a keyboard shortcut. Only a fullscreen toggle can fail.
func (s *Shell) HandleKey(k Key) error {
	s.mu.Lock()
	if !s.opened || s.closed {
		s.mu.Unlock()
		return nil
	}

	st := s.transport.State()
	var err error
	closeShell := false
	switch k {
	case KeySpace:
		s.transport.TogglePlay()
		s.syncIdleLocked()
	case KeyArrowLeft:
		s.transport.Seek(math.Max(0, st.CurrentTime-s.opts.SeekStep))
	case KeyArrowRight:
		target := st.CurrentTime + s.opts.SeekStep
		if knownDuration(st.Duration) {
			target = math.Min(st.Duration, target)
		}
		s.transport.Seek(target)
	case KeyArrowUp:
		s.transport.SetVolume(math.Min(1, st.Volume+s.opts.VolumeStep))
	case KeyArrowDown:
		s.transport.SetVolume(math.Max(0, st.Volume-s.opts.VolumeStep))
	case KeyFullscreen:
		err = s.transport.ToggleFullscreen()
	case KeyMute:
		s.transport.ToggleMute()
	case KeyEscape:
		if st.Fullscreen {
			err = s.transport.ToggleFullscreen()
		} else {
			closeShell = true
		}
	}
	s.mu.Unlock()

	if err != nil {
		log.Printf("Key %s: %v", k, err)
	}
	if closeShell {
		s.Close()
	}
	return err
}

// Seek moves playback to seconds, as a seek bar would.
func (s *Shell) Seek(seconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transport.Seek(seconds)
}

// SetVolume sets the volume, as a volume slider would.
func (s *Shell) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transport.SetVolume(math.Max(0, math.Min(1, v)))
}

// SetPlaybackRate changes the playback speed.
func (s *Shell) SetPlaybackRate(rate float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transport.SetPlaybackRate(rate)
}

// ToggleSubtitles switches the first subtitle track on or off and reports
// whether one is showing afterwards.
func (s *Shell) ToggleSubtitles() bool {
	return s.subtitles.ToggleActive()
}

// SubtitleTracks returns the loaded subtitle descriptors.
func (s *Shell) SubtitleTracks() []models.SubtitleTrack {
	return s.subtitles.Tracks()
}

// PointerMoved shows the controls and restarts the idle window.
func (s *Shell) PointerMoved() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.syncIdleLocked()
}

// ApplySettings changes the seek step, the volume step and the idle window
// of a running session. Zero fields keep the current value. A new idle
// window takes effect the next time the controls are shown.
func (s *Shell) ApplySettings(set Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if set.SeekStep > 0 {
		s.opts.SeekStep = set.SeekStep
	}
	if set.VolumeStep > 0 {
		s.opts.VolumeStep = set.VolumeStep
	}
	if set.IdleTimeout > 0 {
		s.opts.IdleTimeout = set.IdleTimeout
	}
}

// Close unsubscribes from the source, stops the idle timer and pauses the
// source. Writes already queued by the reporter still run. Close is
// idempotent.
func (s *Shell) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.stopIdleLocked()
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if err := s.src.Pause(); err != nil {
		log.Printf("Pause on close failed: %v", err)
	}
	log.Printf("Closed player for %d", s.opts.MediaID)
	if s.opts.OnClose != nil {
		s.opts.OnClose()
	}
}

// Closed reports whether Close has run.
func (s *Shell) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Completed reports whether this session marked the item as completed.
func (s *Shell) Completed() bool {
	return s.reporter.Completed()
}

// Wait blocks until the background track loads and all queued backend
// writes have finished.
func (s *Shell) Wait() {
	s.loads.Wait()
	s.reporter.Wait()
}

// State returns a snapshot of the session.
func (s *Shell) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionState{
		TransportState:  s.transport.State(),
		ControlsVisible: s.controlsVisible,
		Buffered:        s.buffered,
		ActiveSubtitle:  s.subtitles.Active(),
	}
}

func (s *Shell) handleEvent(ev Event) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.transport.HandleEvent(ev)

	report := false
	var position, duration float64
	switch ev.Type {
	case EventTimeUpdate:
		report = true
		position = s.transport.State().CurrentTime
		duration = s.src.Duration()
	case EventProgress:
		s.buffered = BufferedFraction(s.src.Buffered(), s.src.Duration())
	case EventEnded:
		s.syncIdleLocked()
	}
	s.mu.Unlock()

	if report {
		s.reporter.Report(position, duration)
	}
}

// syncIdleLocked shows the controls and, while playing, arms the timer
// that hides them again.
func (s *Shell) syncIdleLocked() {
	s.stopIdleLocked()
	s.controlsVisible = true
	if !s.transport.State().Playing {
		return
	}
	gen := s.idleGen
	s.idle = s.clock.AfterFunc(s.opts.IdleTimeout, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed || gen != s.idleGen {
			return
		}
		s.idle = nil
		if s.transport.State().Playing {
			s.controlsVisible = false
		}
	})
}

func (s *Shell) stopIdleLocked() {
	s.idleGen++
	if s.idle != nil {
		s.idle.Stop()
		s.idle = nil
	}
}
