package store

import (
	"database/sql"
	"fmt"

	"github.com/vrsandeep/cinevault-go/internal/models"
)

// AddSubtitleTrack registers a subtitle track and returns its ID.
func (s *Store) AddSubtitleTrack(t models.SubtitleTrack) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO subtitle_tracks (media_id, file_path, language, label, codec, is_embedded, track_index, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, t.MediaID, t.FilePath, t.Language, t.Label, t.Codec, t.IsEmbedded, t.TrackIndex, now())
	if err != nil {
		return 0, fmt.Errorf("failed to add subtitle track %s: %w", t.FilePath, err)
	}
	return res.LastInsertId()
}

// GetSubtitleTracks lists the subtitle tracks of a media file, embedded
// streams in stream order first.
func (s *Store) GetSubtitleTracks(mediaID int64) ([]models.SubtitleTrack, error) {
	rows, err := s.db.Query(`
		SELECT id, media_id, file_path, language, label, codec, is_embedded, track_index, added_at
		FROM subtitle_tracks
		WHERE media_id = ?
		ORDER BY track_index, added_at
	`, mediaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tracks := []models.SubtitleTrack{}
	for rows.Next() {
		var t models.SubtitleTrack
		var id int64
		var language, label, codec sql.NullString
		var trackIndex sql.NullInt64
		if err := rows.Scan(&id, &t.MediaID, &t.FilePath, &language, &label, &codec, &t.IsEmbedded, &trackIndex, &t.AddedAt); err != nil {
			return nil, err
		}
		t.ID = &id
		t.Language = nullString(language)
		t.Label = nullString(label)
		t.Codec = nullString(codec)
		t.TrackIndex = nullInt(trackIndex)
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

// RemoveSubtitleTrack deletes a subtitle track by ID.
func (s *Store) RemoveSubtitleTrack(id int64) error {
	res, err := s.db.Exec("DELETE FROM subtitle_tracks WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveAudioTracks replaces the audio tracks of a media file.
func (s *Store) SaveAudioTracks(mediaID int64, filePath string, tracks []models.AudioTrack) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM audio_tracks WHERE media_id = ?", mediaID); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO audio_tracks (media_id, file_path, language, codec, channels, is_default)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range tracks {
		if _, err := stmt.Exec(mediaID, filePath, t.Language, t.Codec, t.Channels, t.IsDefault); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetAudioTracks lists the audio tracks of a media file in stream order.
func (s *Store) GetAudioTracks(mediaID int64) ([]models.AudioTrack, error) {
	rows, err := s.db.Query(`
		SELECT id, media_id, file_path, language, codec, channels, is_default
		FROM audio_tracks
		WHERE media_id = ?
		ORDER BY id ASC
	`, mediaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tracks := []models.AudioTrack{}
	for rows.Next() {
		var t models.AudioTrack
		var language, codec sql.NullString
		var channels sql.NullInt64
		if err := rows.Scan(&t.ID, &t.MediaID, &t.FilePath, &language, &codec, &channels, &t.IsDefault); err != nil {
			return nil, err
		}
		t.Language = nullString(language)
		t.Codec = nullString(codec)
		t.Channels = nullInt(channels)
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}
