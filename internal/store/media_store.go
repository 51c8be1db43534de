package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/vrsandeep/cinevault-go/internal/models"
)

const mediaColumns = `m.id, m.file_path, m.file_name, m.media_type, m.duration, m.title, m.year, m.is_deleted`

// CreateMediaFile inserts a catalog row and returns it with its new ID.
func (s *Store) CreateMediaFile(m models.MediaFile) (*models.MediaFile, error) {
	query := `
		INSERT INTO media_files (file_path, file_name, media_type, duration, title, year, is_deleted)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	res, err := s.db.Exec(query, m.FilePath, m.FileName, m.MediaType, m.Duration, m.Title, m.Year, m.IsDeleted)
	if err != nil {
		return nil, fmt.Errorf("failed to create media file %s: %w", m.FilePath, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	m.ID = id
	return &m, nil
}

// GetMediaFile fetches a catalog row by ID.
func (s *Store) GetMediaFile(id int64) (*models.MediaFile, error) {
	var m models.MediaFile
	var title sql.NullString
	var year sql.NullInt64
	var duration sql.NullInt64
	err := s.db.QueryRow(`
		SELECT id, file_path, file_name, media_type, duration, title, year, is_deleted
		FROM media_files WHERE id = ?
	`, id).Scan(&m.ID, &m.FilePath, &m.FileName, &m.MediaType, &duration, &title, &year, &m.IsDeleted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	m.Title = nullString(title)
	m.Year = nullInt(year)
	m.Duration = nullInt64(duration)
	return &m, nil
}

// ListMediaFiles returns every catalog row that is not deleted, ordered by ID.
func (s *Store) ListMediaFiles() ([]models.MediaFile, error) {
	rows, err := s.db.Query(`
		SELECT `+mediaColumns+`
		FROM media_files m WHERE m.is_deleted = 0 ORDER BY m.id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMediaFiles(rows)
}

// scanMediaFiles reads rows selected with mediaColumns.
func scanMediaFiles(rows *sql.Rows) ([]models.MediaFile, error) {
	items := []models.MediaFile{}
	for rows.Next() {
		var m models.MediaFile
		var title sql.NullString
		var year, duration sql.NullInt64
		if err := rows.Scan(&m.ID, &m.FilePath, &m.FileName, &m.MediaType, &duration, &title, &year, &m.IsDeleted); err != nil {
			return nil, err
		}
		m.Title = nullString(title)
		m.Year = nullInt(year)
		m.Duration = nullInt64(duration)
		items = append(items, m)
	}
	return items, rows.Err()
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
