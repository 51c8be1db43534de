package player

import (
	"fmt"
	"math"
)

// Checkpoint modes accepted by NewCheckpointPolicy.
const (
	CheckpointQuantized = "quantized"
	CheckpointDelta     = "delta"
)

const defaultCheckpointInterval = 5

// CheckpointPolicy decides, per time update, whether the position is saved.
type CheckpointPolicy interface {
	ShouldCheckpoint(position float64) bool
}

// SessionPolicy is a CheckpointPolicy that remembers earlier ticks. Every
// Reporter works on its own Fresh copy so sessions never share that memory.
type SessionPolicy interface {
	CheckpointPolicy
	Fresh() CheckpointPolicy
}

// QuantizedCheckpoint saves whenever the whole-second position is a multiple
// of Every. Ticks that skip a multiple miss that save, and several ticks
// inside the same second all save.
type QuantizedCheckpoint struct {
	Every int
}

func (q QuantizedCheckpoint) ShouldCheckpoint(position float64) bool {
	if math.IsNaN(position) || math.IsInf(position, 0) {
		return false
	}
	every := int64(q.Every)
	if every <= 0 {
		every = defaultCheckpointInterval
	}
	return int64(math.Floor(position))%every == 0
}

// DeltaCheckpoint saves on the first tick and then whenever the position is
// at least Interval seconds away from the last saved one, so seeks in either
// direction are persisted promptly.
type DeltaCheckpoint struct {
	Interval float64

	last  float64
	saved bool
}

func (d *DeltaCheckpoint) ShouldCheckpoint(position float64) bool {
	if math.IsNaN(position) {
		return false
	}
	interval := d.Interval
	if interval <= 0 {
		interval = defaultCheckpointInterval
	}
	if d.saved && math.Abs(position-d.last) < interval {
		return false
	}
	d.last = position
	d.saved = true
	return true
}

// Fresh returns a copy with the same interval and no saved position.
func (d *DeltaCheckpoint) Fresh() CheckpointPolicy {
	return &DeltaCheckpoint{Interval: d.Interval}
}

// NewCheckpointPolicy builds the policy for a configured mode. An empty mode
// selects the quantized policy, which only takes whole seconds. An interval
// of 0 selects the default of 5 seconds.
func NewCheckpointPolicy(mode string, interval float64) (CheckpointPolicy, error) {
	if interval < 0 || math.IsNaN(interval) || math.IsInf(interval, 0) {
		return nil, fmt.Errorf("invalid checkpoint interval %v", interval)
	}
	switch mode {
	case "", CheckpointQuantized:
		if interval != math.Trunc(interval) {
			return nil, fmt.Errorf("quantized checkpoint interval must be whole seconds, got %v", interval)
		}
		return QuantizedCheckpoint{Every: int(interval)}, nil
	case CheckpointDelta:
		return &DeltaCheckpoint{Interval: interval}, nil
	default:
		return nil, fmt.Errorf("unknown checkpoint mode %q", mode)
	}
}
