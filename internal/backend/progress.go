package backend

import "math"

// DefaultCompletionThreshold is the percentage at which an item counts as watched.
const DefaultCompletionThreshold = 95.0

// ProgressPercentage returns position/duration as a percentage clamped to
// [0, 100]. An unknown or zero duration yields 0.
func ProgressPercentage(position, duration float64) float64 {
	if duration <= 0 || math.IsNaN(duration) || math.IsNaN(position) {
		return 0
	}
	return math.Min(100, math.Max(0, position/duration*100))
}

// ShouldMarkCompleted reports whether playback crossed the 95% threshold.
func ShouldMarkCompleted(position, duration float64) bool {
	return ProgressPercentage(position, duration) >= DefaultCompletionThreshold
}
