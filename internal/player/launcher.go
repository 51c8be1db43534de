package player

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/vrsandeep/cinevault-go/internal/models"
)

// StateLookup reads the persisted playback state of an item.
type StateLookup interface {
	GetPlaybackState(ctx context.Context, mediaID int64) (*models.PlaybackState, error)
}

// LauncherService is the backend surface the Launcher needs.
// *backend.Client satisfies it.
type LauncherService interface {
	Service
	StateLookup
}

// Item is a catalog entry selected for playback.
type Item struct {
	MediaID int64
	Title   string
	Locator string
}

// Launcher opens player sessions for catalog items, resuming where the
// previous session left off.
type Launcher struct {
	svc LauncherService

	mu       sync.Mutex
	defaults Options
}

// NewLauncher creates a Launcher. defaults supplies everything except the
// per-item fields (MediaID, Title, Locator, ResumePosition).
func NewLauncher(svc LauncherService, defaults Options) *Launcher {
	return &Launcher{svc: svc, defaults: defaults}
}

// ResumePosition returns where playback of mediaID should start. Completed
// items and lookup failures start from 0.
func (l *Launcher) ResumePosition(ctx context.Context, mediaID int64) float64 {
	state, err := l.svc.GetPlaybackState(ctx, mediaID)
	if err != nil {
		log.Printf("Failed to get playback state for %d: %v", mediaID, err)
		return 0
	}
	if state == nil || state.LastPosition <= 0 || state.Completed {
		return 0
	}
	return float64(state.LastPosition)
}

// Open looks up the resume position of item, then builds and opens a Shell
// over src.
func (l *Launcher) Open(ctx context.Context, item Item, src Source) (*Shell, error) {
	l.mu.Lock()
	opts := l.defaults
	l.mu.Unlock()
	opts.MediaID = item.MediaID
	opts.Title = item.Title
	opts.Locator = item.Locator
	opts.ResumePosition = l.ResumePosition(ctx, item.MediaID)

	if opts.ResumePosition > 0 {
		l.info(fmt.Sprintf("Resuming from %s", formatResume(opts.ResumePosition)))
	}

	shell := NewShell(src, l.svc, opts)
	if err := shell.Open(ctx); err != nil {
		return nil, fmt.Errorf("open player for %d: %w", item.MediaID, err)
	}
	l.info(fmt.Sprintf("Playing: %s", item.Title))
	return shell, nil
}

// UpdateSettings changes the defaults used by sessions opened afterwards.
// Zero fields keep the current value.
func (l *Launcher) UpdateSettings(set Settings) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if set.SeekStep > 0 {
		l.defaults.SeekStep = set.SeekStep
	}
	if set.VolumeStep > 0 {
		l.defaults.VolumeStep = set.VolumeStep
	}
	if set.IdleTimeout > 0 {
		l.defaults.IdleTimeout = set.IdleTimeout
	}
}

func (l *Launcher) info(msg string) {
	if l.defaults.Notifier != nil {
		l.defaults.Notifier.Info(msg)
	}
}

// formatResume renders seconds as "Xm Ys".
func formatResume(seconds float64) string {
	s := int64(math.Floor(seconds))
	return fmt.Sprintf("%dm %ds", s/60, s%60)
}
