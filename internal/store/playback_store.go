package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/vrsandeep/cinevault-go/internal/models"
)

// UpdatePlaybackPosition records a checkpoint. A nil duration keeps the
// duration already stored.
func (s *Store) UpdatePlaybackPosition(mediaID, position int64, duration *int64) error {
	query := `
		INSERT INTO playback_state (media_id, last_position, duration, last_played_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(media_id) DO UPDATE SET
			last_position = excluded.last_position,
			duration = COALESCE(excluded.duration, duration),
			last_played_at = excluded.last_played_at;
	`
	_, err := s.db.Exec(query, mediaID, position, duration, now())
	return err
}

// MarkAsCompleted flags an item as watched, moves its position to the end
// and counts one more watch.
func (s *Store) MarkAsCompleted(mediaID, duration int64) error {
	query := `
		INSERT INTO playback_state (media_id, last_position, duration, completed, watch_count, last_played_at)
		VALUES (?, ?, ?, 1, 1, ?)
		ON CONFLICT(media_id) DO UPDATE SET
			last_position = excluded.last_position,
			duration = excluded.duration,
			completed = 1,
			watch_count = watch_count + 1,
			last_played_at = excluded.last_played_at;
	`
	_, err := s.db.Exec(query, mediaID, duration, duration, now())
	return err
}

// GetPlaybackState returns the state for mediaID, or nil when the item has
// never been played.
func (s *Store) GetPlaybackState(mediaID int64) (*models.PlaybackState, error) {
	var state models.PlaybackState
	var duration sql.NullInt64
	err := s.db.QueryRow(`
		SELECT media_id, last_position, duration, completed, watch_count, last_played_at, created_at
		FROM playback_state
		WHERE media_id = ?
	`, mediaID).Scan(&state.MediaID, &state.LastPosition, &duration, &state.Completed,
		&state.WatchCount, &state.LastPlayedAt, &state.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	state.Duration = nullInt64(duration)
	return &state, nil
}

// LogPlaybackSession appends a finished session to the history and returns
// its ID.
func (s *Store) LogPlaybackSession(mediaID, durationWatched int64, completed bool) (int64, error) {
	ts := now()
	res, err := s.db.Exec(`
		INSERT INTO playback_history (media_id, started_at, ended_at, duration_watched, completed)
		VALUES (?, ?, ?, ?, ?)
	`, mediaID, ts, ts, durationWatched, completed)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const recentlyPlayedColumns = `
	m.id, m.file_path, m.file_name, m.title, m.year, m.media_type,
	p.last_position, p.duration, p.completed, p.last_played_at
`

// GetRecentlyPlayed lists played items, most recent first.
func (s *Store) GetRecentlyPlayed(limit int) ([]models.RecentlyPlayed, error) {
	return s.queryRecentlyPlayed(`
		SELECT `+recentlyPlayedColumns+`
		FROM playback_state p
		JOIN media_files m ON p.media_id = m.id
		WHERE m.is_deleted = 0
		ORDER BY p.last_played_at DESC
		LIMIT ?
	`, limit)
}

// GetInProgress lists started but unfinished items, most recent first.
func (s *Store) GetInProgress(limit int) ([]models.RecentlyPlayed, error) {
	return s.queryRecentlyPlayed(`
		SELECT `+recentlyPlayedColumns+`
		FROM playback_state p
		JOIN media_files m ON p.media_id = m.id
		WHERE m.is_deleted = 0
		  AND p.completed = 0
		  AND p.last_position > 0
		ORDER BY p.last_played_at DESC
		LIMIT ?
	`, limit)
}

func (s *Store) queryRecentlyPlayed(query string, limit int) ([]models.RecentlyPlayed, error) {
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.RecentlyPlayed{}
	for rows.Next() {
		var item models.RecentlyPlayed
		var title sql.NullString
		var year, duration sql.NullInt64
		if err := rows.Scan(&item.MediaID, &item.FilePath, &item.FileName, &title, &year, &item.MediaType,
			&item.LastPosition, &duration, &item.Completed, &item.LastPlayedAt); err != nil {
			return nil, err
		}
		item.Title = nullString(title)
		item.Year = nullInt(year)
		item.Duration = nullInt64(duration)
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetWatchStats aggregates playback state and history.
func (s *Store) GetWatchStats() (*models.WatchStats, error) {
	var stats models.WatchStats
	err := s.db.QueryRow(`
		SELECT
			(SELECT COUNT(DISTINCT media_id) FROM playback_state WHERE completed = 1),
			(SELECT COUNT(*) FROM playback_state WHERE completed = 0 AND last_position > 0),
			(SELECT COALESCE(SUM(duration_watched), 0) FROM playback_history),
			(SELECT COUNT(*) FROM playback_history)
	`).Scan(&stats.TotalWatched, &stats.TotalInProgress, &stats.TotalWatchTime, &stats.TotalSessions)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetWatchHistoryChart sums the sessions of the last days calendar days
// (today included, UTC) per day, oldest first. Days without sessions are
// omitted.
func (s *Store) GetWatchHistoryChart(days int) ([]models.DailyWatch, error) {
	since := time.Now().UTC().AddDate(0, 0, -(days - 1)).Format("2006-01-02")
	rows, err := s.db.Query(`
		SELECT substr(started_at, 1, 10) AS day,
		       COALESCE(SUM(duration_watched), 0) / 60,
		       COUNT(*)
		FROM playback_history
		WHERE substr(started_at, 1, 10) >= ?
		GROUP BY day
		ORDER BY day ASC
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := []models.DailyWatch{}
	for rows.Next() {
		var p models.DailyWatch
		if err := rows.Scan(&p.Date, &p.Minutes, &p.Sessions); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// GetMediaTypeDistribution counts catalog items per media type, largest first.
func (s *Store) GetMediaTypeDistribution() ([]models.MediaTypeCount, error) {
	rows, err := s.db.Query(`
		SELECT media_type, COUNT(*) AS n
		FROM media_files
		WHERE is_deleted = 0
		GROUP BY media_type
		ORDER BY n DESC, media_type ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []models.MediaTypeCount{}
	for rows.Next() {
		var c models.MediaTypeCount
		if err := rows.Scan(&c.MediaType, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
