package player

import (
	"context"
	"log"
	"strconv"
	"sync"

	"github.com/vrsandeep/cinevault-go/internal/models"
)

// TrackFetcher loads the subtitle descriptors of a media item.
type TrackFetcher interface {
	GetSubtitleTracks(ctx context.Context, mediaID int64) ([]models.SubtitleTrack, error)
}

// SubtitleBinder maps backend subtitle descriptors onto the source's native
// text tracks. Its toggle is binary: it only ever switches the first
// available track on or off.
type SubtitleBinder struct {
	fetcher TrackFetcher
	src     Source

	mu     sync.Mutex
	tracks []models.SubtitleTrack
	active string
	native TextTrack
}

// NewSubtitleBinder creates a binder with no tracks loaded.
func NewSubtitleBinder(fetcher TrackFetcher, src Source) *SubtitleBinder {
	return &SubtitleBinder{fetcher: fetcher, src: src}
}

// LoadTracks replaces the available tracks with those of mediaID. A fetch
// failure is logged and leaves the binder with no tracks. No track is
// activated.
func (b *SubtitleBinder) LoadTracks(ctx context.Context, mediaID int64) {
	tracks, err := b.fetcher.GetSubtitleTracks(ctx, mediaID)
	if err != nil {
		log.Printf("Failed to load subtitle tracks for %d: %v", mediaID, err)
		tracks = nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.tracks = tracks
	log.Printf("Loaded %d subtitle track(s) for %d", len(tracks), mediaID)
}

// Tracks returns the available tracks.
func (b *SubtitleBinder) Tracks() []models.SubtitleTrack {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.SubtitleTrack(nil), b.tracks...)
}

// Active returns the identifier of the showing track, or "" when none is.
func (b *SubtitleBinder) Active() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

// ToggleActive turns the first track off when one is active, otherwise on.
// It reports whether a track is showing afterwards.
func (b *SubtitleBinder) ToggleActive() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active != "" {
		if b.native != nil {
			b.native.SetMode(TrackDisabled)
		}
		b.active = ""
		b.native = nil
		return false
	}

	if len(b.tracks) == 0 {
		return false
	}
	first := b.tracks[0]
	native := matchNativeTrack(b.src.TextTracks(), first)
	if native == nil {
		log.Printf("No native text track matches subtitle %q", trackID(first))
		return false
	}
	for _, t := range b.src.TextTracks() {
		if t != native && t.Mode() == TrackShowing {
			t.SetMode(TrackDisabled)
		}
	}
	native.SetMode(TrackShowing)
	b.native = native
	b.active = trackID(first)
	return true
}

// matchNativeTrack finds the native track for desc, by label first and then
// by language.
func matchNativeTrack(native []TextTrack, desc models.SubtitleTrack) TextTrack {
	if desc.Label != nil && *desc.Label != "" {
		for _, t := range native {
			if t.Label() == *desc.Label {
				return t
			}
		}
	}
	if desc.Language != nil && *desc.Language != "" {
		for _, t := range native {
			if t.Language() == *desc.Language {
				return t
			}
		}
	}
	return nil
}

func trackID(t models.SubtitleTrack) string {
	if t.ID != nil {
		return strconv.FormatInt(*t.ID, 10)
	}
	return t.FilePath
}
