package backend_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vrsandeep/cinevault-go/internal/backend"
	"github.com/vrsandeep/cinevault-go/internal/models"
)

// MockInvoker is a mock implementation of backend.Invoker
type MockInvoker struct {
	mock.Mock
}

var _ backend.Invoker = (*MockInvoker)(nil)

func (m *MockInvoker) Invoke(ctx context.Context, cmd string, args any, out any) error {
	ret := m.Called(ctx, cmd, args, out)
	return ret.Error(0)
}

func TestClient_GetPlaybackState(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		inv := new(MockInvoker)
		inv.On("Invoke", mock.Anything, backend.CmdGetPlaybackState, backend.MediaArgs{MediaID: 7}, mock.Anything).
			Run(func(args mock.Arguments) {
				out := args.Get(3).(**models.PlaybackState)
				*out = &models.PlaybackState{MediaID: 7, LastPosition: 42}
			}).
			Return(nil)

		state, err := backend.NewClient(inv).GetPlaybackState(context.Background(), 7)
		require.NoError(t, err)
		require.NotNil(t, state)
		assert.Equal(t, int64(42), state.LastPosition)
		inv.AssertExpectations(t)
	})

	t.Run("Never played", func(t *testing.T) {
		inv := new(MockInvoker)
		inv.On("Invoke", mock.Anything, backend.CmdGetPlaybackState, mock.Anything, mock.Anything).Return(nil)

		state, err := backend.NewClient(inv).GetPlaybackState(context.Background(), 8)
		require.NoError(t, err)
		assert.Nil(t, state)
	})

	t.Run("Error is wrapped", func(t *testing.T) {
		errBridge := errors.New("bridge down")
		inv := new(MockInvoker)
		inv.On("Invoke", mock.Anything, backend.CmdGetPlaybackState, mock.Anything, mock.Anything).Return(errBridge)

		_, err := backend.NewClient(inv).GetPlaybackState(context.Background(), 9)
		assert.ErrorIs(t, err, errBridge)
	})
}

func TestClient_UpdatePosition(t *testing.T) {
	t.Run("Floors position and duration", func(t *testing.T) {
		inv := new(MockInvoker)
		inv.On("Invoke", mock.Anything, backend.CmdUpdatePlaybackPosition, mock.MatchedBy(func(a backend.UpdatePositionArgs) bool {
			return a.MediaID == 3 && a.Position == 10 && a.Duration != nil && *a.Duration == 1000
		}), nil).Return(nil)

		err := backend.NewClient(inv).UpdatePosition(context.Background(), 3, 10.9, 1000.4)
		require.NoError(t, err)
		inv.AssertExpectations(t)
	})

	t.Run("Unknown duration is sent as null", func(t *testing.T) {
		inv := new(MockInvoker)
		inv.On("Invoke", mock.Anything, backend.CmdUpdatePlaybackPosition, mock.MatchedBy(func(a backend.UpdatePositionArgs) bool {
			return a.Position == 5 && a.Duration == nil
		}), nil).Return(nil)

		err := backend.NewClient(inv).UpdatePosition(context.Background(), 3, 5.2, 0)
		require.NoError(t, err)
		inv.AssertExpectations(t)
	})
}

func TestClient_MarkAsCompleted(t *testing.T) {
	inv := new(MockInvoker)
	inv.On("Invoke", mock.Anything, backend.CmdMarkAsCompleted, backend.MarkCompletedArgs{MediaID: 4, Duration: 1000}, nil).Return(nil)

	require.NoError(t, backend.NewClient(inv).MarkAsCompleted(context.Background(), 4, 1000.7))
	inv.AssertExpectations(t)
}

func TestClient_ListCommandsDefaultLimit(t *testing.T) {
	inv := new(MockInvoker)
	inv.On("Invoke", mock.Anything, backend.CmdGetRecentlyPlayed, backend.LimitArgs{Limit: 20}, mock.Anything).Return(nil)
	inv.On("Invoke", mock.Anything, backend.CmdGetInProgress, backend.LimitArgs{Limit: 5}, mock.Anything).Return(nil)

	c := backend.NewClient(inv)
	_, err := c.GetRecentlyPlayed(context.Background(), 0)
	require.NoError(t, err)
	_, err = c.GetInProgress(context.Background(), 5)
	require.NoError(t, err)
	inv.AssertExpectations(t)
}

func TestClient_GetSubtitleTracks(t *testing.T) {
	label := "English"
	inv := new(MockInvoker)
	inv.On("Invoke", mock.Anything, backend.CmdGetSubtitleTracks, backend.MediaArgs{MediaID: 1}, mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(3).(*[]models.SubtitleTrack)
			*out = []models.SubtitleTrack{{MediaID: 1, FilePath: "/m/a.srt", Label: &label}}
		}).
		Return(nil)

	tracks, err := backend.NewClient(inv).GetSubtitleTracks(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "English", *tracks[0].Label)
}
