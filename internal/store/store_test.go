package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrsandeep/cinevault-go/internal/models"
	"github.com/vrsandeep/cinevault-go/internal/store"
	"github.com/vrsandeep/cinevault-go/internal/testutil"
)

func strPtr(s string) *string { return &s }
func int64Ptr(i int64) *int64 { return &i }
func intPtr(i int) *int       { return &i }

func seedMedia(t *testing.T, s *store.Store, path, title string) *models.MediaFile {
	t.Helper()
	m, err := s.CreateMediaFile(models.MediaFile{
		FilePath:  path,
		FileName:  path[len("/media/"):],
		MediaType: "movie",
		Title:     strPtr(title),
		Year:      intPtr(1995),
	})
	require.NoError(t, err)
	return m
}

func TestMediaStore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)

	created := seedMedia(t, s, "/media/heat.mkv", "Heat")
	assert.NotZero(t, created.ID)

	t.Run("Get", func(t *testing.T) {
		m, err := s.GetMediaFile(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "heat.mkv", m.FileName)
		require.NotNil(t, m.Title)
		assert.Equal(t, "Heat", *m.Title)
		assert.Nil(t, m.Duration)
	})

	t.Run("Not found", func(t *testing.T) {
		_, err := s.GetMediaFile(999)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("Duplicate path", func(t *testing.T) {
		_, err := s.CreateMediaFile(models.MediaFile{FilePath: "/media/heat.mkv", FileName: "heat.mkv", MediaType: "movie"})
		assert.Error(t, err)
	})

	t.Run("List skips deleted", func(t *testing.T) {
		_, err := s.CreateMediaFile(models.MediaFile{FilePath: "/media/gone.mkv", FileName: "gone.mkv", MediaType: "movie", IsDeleted: true})
		require.NoError(t, err)
		items, err := s.ListMediaFiles()
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, created.ID, items[0].ID)
	})
}

func TestPlaybackStore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)
	m := seedMedia(t, s, "/media/heat.mkv", "Heat")

	t.Run("Never played", func(t *testing.T) {
		state, err := s.GetPlaybackState(m.ID)
		require.NoError(t, err)
		assert.Nil(t, state)
	})

	t.Run("Update keeps known duration", func(t *testing.T) {
		require.NoError(t, s.UpdatePlaybackPosition(m.ID, 10, int64Ptr(6000)))
		require.NoError(t, s.UpdatePlaybackPosition(m.ID, 15, nil))

		state, err := s.GetPlaybackState(m.ID)
		require.NoError(t, err)
		require.NotNil(t, state)
		assert.Equal(t, int64(15), state.LastPosition)
		require.NotNil(t, state.Duration)
		assert.Equal(t, int64(6000), *state.Duration)
		assert.False(t, state.Completed)
		assert.Equal(t, 0, state.WatchCount)
		assert.NotEmpty(t, state.LastPlayedAt)
		assert.NotEmpty(t, state.CreatedAt)
	})

	t.Run("Mark as completed counts watches", func(t *testing.T) {
		require.NoError(t, s.MarkAsCompleted(m.ID, 6000))
		require.NoError(t, s.MarkAsCompleted(m.ID, 6000))

		state, err := s.GetPlaybackState(m.ID)
		require.NoError(t, err)
		assert.True(t, state.Completed)
		assert.Equal(t, int64(6000), state.LastPosition)
		assert.Equal(t, 2, state.WatchCount)
	})

	t.Run("Mark as completed without prior state", func(t *testing.T) {
		other := seedMedia(t, s, "/media/ronin.mkv", "Ronin")
		require.NoError(t, s.MarkAsCompleted(other.ID, 7200))

		state, err := s.GetPlaybackState(other.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, state.WatchCount)
		assert.Equal(t, int64(7200), state.LastPosition)
	})

	t.Run("Unknown media is rejected", func(t *testing.T) {
		assert.Error(t, s.UpdatePlaybackPosition(999, 5, nil))
	})
}

func TestRecentlyPlayedAndStats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)
	heat := seedMedia(t, s, "/media/heat.mkv", "Heat")
	ronin := seedMedia(t, s, "/media/ronin.mkv", "Ronin")
	thief := seedMedia(t, s, "/media/thief.mkv", "Thief")

	require.NoError(t, s.UpdatePlaybackPosition(heat.ID, 120, int64Ptr(6000)))
	require.NoError(t, s.MarkAsCompleted(ronin.ID, 7200))
	require.NoError(t, s.UpdatePlaybackPosition(thief.ID, 0, nil))

	// Pin the order explicitly: heat newest, then ronin, then thief.
	_, err := db.Exec("UPDATE playback_state SET last_played_at = ? WHERE media_id = ?", "2026-01-03T00:00:00.000000Z", heat.ID)
	require.NoError(t, err)
	_, err = db.Exec("UPDATE playback_state SET last_played_at = ? WHERE media_id = ?", "2026-01-02T00:00:00.000000Z", ronin.ID)
	require.NoError(t, err)
	_, err = db.Exec("UPDATE playback_state SET last_played_at = ? WHERE media_id = ?", "2026-01-01T00:00:00.000000Z", thief.ID)
	require.NoError(t, err)

	t.Run("Recently played", func(t *testing.T) {
		items, err := s.GetRecentlyPlayed(10)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, heat.ID, items[0].MediaID)
		assert.Equal(t, ronin.ID, items[1].MediaID)
		assert.Equal(t, thief.ID, items[2].MediaID)
		require.NotNil(t, items[0].Title)
		assert.Equal(t, "Heat", *items[0].Title)

		limited, err := s.GetRecentlyPlayed(1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)
	})

	t.Run("In progress", func(t *testing.T) {
		items, err := s.GetInProgress(10)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, heat.ID, items[0].MediaID)
		assert.Equal(t, int64(120), items[0].LastPosition)
	})

	t.Run("Watch stats", func(t *testing.T) {
		_, err := s.LogPlaybackSession(heat.ID, 120, false)
		require.NoError(t, err)
		_, err = s.LogPlaybackSession(ronin.ID, 7200, true)
		require.NoError(t, err)

		stats, err := s.GetWatchStats()
		require.NoError(t, err)
		assert.Equal(t, models.WatchStats{
			TotalWatched:    1,
			TotalInProgress: 1,
			TotalWatchTime:  7320,
			TotalSessions:   2,
		}, *stats)
	})
}

func TestTrackStore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)
	m := seedMedia(t, s, "/media/heat.mkv", "Heat")

	t.Run("Subtitles ordered by track index", func(t *testing.T) {
		_, err := s.AddSubtitleTrack(models.SubtitleTrack{MediaID: m.ID, FilePath: "/media/heat.fr.srt", Language: strPtr("fr"), TrackIndex: intPtr(2)})
		require.NoError(t, err)
		enID, err := s.AddSubtitleTrack(models.SubtitleTrack{MediaID: m.ID, FilePath: "/media/heat.en.srt", Label: strPtr("English"), Language: strPtr("en"), TrackIndex: intPtr(1)})
		require.NoError(t, err)

		tracks, err := s.GetSubtitleTracks(m.ID)
		require.NoError(t, err)
		require.Len(t, tracks, 2)
		require.NotNil(t, tracks[0].ID)
		assert.Equal(t, enID, *tracks[0].ID)
		assert.Equal(t, "English", *tracks[0].Label)
		assert.Nil(t, tracks[1].Label)

		require.NoError(t, s.RemoveSubtitleTrack(enID))
		assert.ErrorIs(t, s.RemoveSubtitleTrack(enID), store.ErrNotFound)

		tracks, err = s.GetSubtitleTracks(m.ID)
		require.NoError(t, err)
		assert.Len(t, tracks, 1)
	})

	t.Run("No subtitles is an empty list", func(t *testing.T) {
		tracks, err := s.GetSubtitleTracks(999)
		require.NoError(t, err)
		assert.NotNil(t, tracks)
		assert.Empty(t, tracks)
	})

	t.Run("Audio tracks are replaced", func(t *testing.T) {
		first := []models.AudioTrack{
			{Language: strPtr("en"), Codec: strPtr("aac"), Channels: intPtr(2), IsDefault: true},
			{Language: strPtr("de"), Codec: strPtr("ac3"), Channels: intPtr(6)},
		}
		require.NoError(t, s.SaveAudioTracks(m.ID, m.FilePath, first))
		require.NoError(t, s.SaveAudioTracks(m.ID, m.FilePath, first[:1]))

		tracks, err := s.GetAudioTracks(m.ID)
		require.NoError(t, err)
		require.Len(t, tracks, 1)
		assert.Equal(t, "en", *tracks[0].Language)
		assert.Equal(t, 2, *tracks[0].Channels)
		assert.True(t, tracks[0].IsDefault)
		assert.Equal(t, m.FilePath, tracks[0].FilePath)
	})
}
