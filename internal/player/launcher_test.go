package player

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrsandeep/cinevault-go/internal/models"
)

func TestLauncher_Open(t *testing.T) {
	testCases := []struct {
		name       string
		state      *models.PlaybackState
		stateErr   error
		wantResume float64
		wantNotes  []string
	}{
		{
			name:       "Resumes an unfinished item",
			state:      &models.PlaybackState{MediaID: 1, LastPosition: 125},
			wantResume: 125,
			wantNotes:  []string{"Resuming from 2m 5s", "Playing: Heat"},
		},
		{
			name:      "Completed item starts over",
			state:     &models.PlaybackState{MediaID: 1, LastPosition: 7000, Completed: true},
			wantNotes: []string{"Playing: Heat"},
		},
		{
			name:      "Never played",
			wantNotes: []string{"Playing: Heat"},
		},
		{
			name:      "Lookup failure starts from zero",
			stateErr:  errors.New("bridge closed"),
			wantNotes: []string{"Playing: Heat"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			src := newFakeSource()
			notifier := &fakeNotifier{}
			svc := &fakeService{state: tc.state, stateErr: tc.stateErr}
			l := NewLauncher(svc, Options{AutoPlay: true, Notifier: notifier, Clock: &manualClock{}})

			s, err := l.Open(context.Background(), Item{MediaID: 1, Title: "Heat", Locator: "asset://localhost/1"}, src)
			require.NoError(t, err)
			defer s.Close()

			assert.Equal(t, tc.wantNotes, notifier.all())
			if tc.wantResume > 0 {
				require.NotEmpty(t, src.seeks)
				assert.Equal(t, tc.wantResume, src.seeks[0])
			} else {
				assert.Empty(t, src.seeks)
			}
			s.Wait()
		})
	}
}

func TestLauncher_SessionsDoNotShareDeltaPolicy(t *testing.T) {
	svc := &fakeService{}
	l := NewLauncher(svc, Options{
		AutoPlay:         true,
		CheckpointPolicy: &DeltaCheckpoint{Interval: 5},
		Clock:            &manualClock{},
	})

	for _, position := range []float64{42, 40} {
		src := newFakeSource()
		s, err := l.Open(context.Background(), Item{MediaID: 1, Title: "Heat"}, src)
		require.NoError(t, err)
		src.tick(position)
		s.Close()
		s.Wait()
	}

	assert.Equal(t, []float64{42, 40}, svc.saved(), "each session saves its first tick")
}

func TestLauncher_UpdateSettings(t *testing.T) {
	l := NewLauncher(&fakeService{}, Options{AutoPlay: true, SeekStep: 10, Clock: &manualClock{}})
	l.UpdateSettings(Settings{SeekStep: 30})

	src := newFakeSource()
	s, err := l.Open(context.Background(), Item{MediaID: 1, Title: "Heat"}, src)
	require.NoError(t, err)
	defer s.Close()

	src.tick(10)
	require.NoError(t, s.HandleKey(KeyArrowRight))
	assert.Equal(t, 40.0, src.seeks[len(src.seeks)-1])
}

func TestFormatResume(t *testing.T) {
	assert.Equal(t, "0m 42s", formatResume(42))
	assert.Equal(t, "61m 1s", formatResume(3661.9))
}
