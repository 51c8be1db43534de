package backend

import (
	"math"
	"testing"
)

func TestProgressPercentage(t *testing.T) {
	tests := []struct {
		name     string
		position float64
		duration float64
		want     float64
	}{
		{"zero duration", 50, 0, 0},
		{"negative duration", 50, -10, 0},
		{"NaN duration", 50, math.NaN(), 0},
		{"halfway", 50, 100, 50},
		{"clamped above", 150, 100, 100},
		{"clamped below", -5, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProgressPercentage(tt.position, tt.duration); got != tt.want {
				t.Errorf("ProgressPercentage(%v, %v) = %v, want %v", tt.position, tt.duration, got, tt.want)
			}
		})
	}
}

func TestShouldMarkCompleted(t *testing.T) {
	for _, d := range []float64{1, 60, 1000, 7322.5} {
		for p := 0.0; p <= d*1.1; p += d / 40 {
			want := math.Min(100, math.Max(0, p/d*100)) >= 95
			if got := ShouldMarkCompleted(p, d); got != want {
				t.Errorf("ShouldMarkCompleted(%v, %v) = %v, want %v", p, d, got, want)
			}
		}
	}

	for _, p := range []float64{0, 1, 950, 1e9} {
		if ShouldMarkCompleted(p, 0) {
			t.Errorf("ShouldMarkCompleted(%v, 0) should be false", p)
		}
	}

	if !ShouldMarkCompleted(950, 1000) {
		t.Error("950 of 1000 should complete")
	}
	if ShouldMarkCompleted(949, 1000) {
		t.Error("949 of 1000 should not complete")
	}
}
