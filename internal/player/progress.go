package player

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/vrsandeep/cinevault-go/internal/backend"
)

const defaultWriteTimeout = 10 * time.Second

// ProgressStore persists checkpoints and completion. *backend.Client
// satisfies it.
type ProgressStore interface {
	UpdatePosition(ctx context.Context, mediaID int64, position, duration float64) error
	MarkAsCompleted(ctx context.Context, mediaID int64, duration float64) error
}

// Notifier receives user-facing messages. *notify.Service satisfies it.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

// ReporterOptions configures a Reporter. The zero value gives the quantized
// 5-second checkpoint and the 95% completion threshold.
type ReporterOptions struct {
	OnProgress          func(position, duration float64)
	Policy              CheckpointPolicy
	CompletionThreshold float64
	Notifier            Notifier
	WriteTimeout        time.Duration
}

// Decision records what a single time update triggered.
type Decision struct {
	Checkpoint bool
	Completed  bool
}

// Reporter applies the checkpoint and completion policies to each time
// update of one player session. Backend writes are fire-and-forget: they run
// on a background writer and failures are only logged.
type Reporter struct {
	mediaID int64
	store   ProgressStore
	opts    ReporterOptions
	writer  *serialWriter

	mu        sync.Mutex
	completed bool
}

// NewReporter creates a Reporter for mediaID.
func NewReporter(mediaID int64, store ProgressStore, opts ReporterOptions) *Reporter {
	if opts.Policy == nil {
		opts.Policy = QuantizedCheckpoint{Every: defaultCheckpointInterval}
	}
	if sp, ok := opts.Policy.(SessionPolicy); ok {
		opts.Policy = sp.Fresh()
	}
	if opts.CompletionThreshold <= 0 {
		opts.CompletionThreshold = backend.DefaultCompletionThreshold
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = defaultWriteTimeout
	}
	r := &Reporter{mediaID: mediaID, store: store, opts: opts}
	r.writer = newSerialWriter(r.write)
	return r
}

// Report handles one time update.
func (r *Reporter) Report(position, duration float64) Decision {
	if r.opts.OnProgress != nil {
		r.opts.OnProgress(position, duration)
	}

	r.mu.Lock()
	var d Decision
	if r.opts.Policy.ShouldCheckpoint(position) {
		d.Checkpoint = true
	}
	if !r.completed && backend.ProgressPercentage(position, duration) >= r.opts.CompletionThreshold {
		r.completed = true
		d.Completed = true
	}
	r.mu.Unlock()

	if d.Checkpoint {
		r.writer.enqueue(writeOp{kind: writePosition, position: position, duration: duration})
	}
	if d.Completed {
		r.writer.enqueue(writeOp{kind: writeCompletion, duration: duration})
	}
	return d
}

// Completed reports whether completion has been sent during this session.
func (r *Reporter) Completed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completed
}

// Wait blocks until every queued backend write has finished.
func (r *Reporter) Wait() {
	r.writer.wait()
}

func (r *Reporter) write(op writeOp) {
	ctx, cancel := context.WithTimeout(context.Background(), r.opts.WriteTimeout)
	defer cancel()

	switch op.kind {
	case writePosition:
		if err := r.store.UpdatePosition(ctx, r.mediaID, op.position, op.duration); err != nil {
			log.Printf("Failed to save playback position for %d: %v", r.mediaID, err)
			r.notify("Failed to save playback position")
		}
	case writeCompletion:
		if err := r.store.MarkAsCompleted(ctx, r.mediaID, op.duration); err != nil {
			log.Printf("Failed to mark %d as completed: %v", r.mediaID, err)
			r.notify("Failed to mark as completed")
			return
		}
		log.Printf("Marked %d as completed", r.mediaID)
	}
}

func (r *Reporter) notify(msg string) {
	if r.opts.Notifier != nil {
		r.opts.Notifier.Error(msg)
	}
}
