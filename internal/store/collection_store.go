package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/vrsandeep/cinevault-go/internal/models"
)

// CreateCollection inserts a collection and returns its ID.
func (s *Store) CreateCollection(name string, description *string) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("%w: collection name is empty", ErrInvalid)
	}
	ts := now()
	res, err := s.db.Exec(`
		INSERT INTO collections (name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, name, description, ts, ts)
	if err != nil {
		return 0, fmt.Errorf("failed to create collection %s: %w", name, err)
	}
	return res.LastInsertId()
}

const collectionColumns = `
	c.id, c.name, c.description, c.created_at, c.updated_at,
	(SELECT COUNT(*) FROM collection_items ci WHERE ci.collection_id = c.id)
`

func scanCollection(row interface{ Scan(...any) error }) (models.Collection, error) {
	var c models.Collection
	var description sql.NullString
	err := row.Scan(&c.ID, &c.Name, &description, &c.CreatedAt, &c.UpdatedAt, &c.ItemCount)
	c.Description = nullString(description)
	return c, err
}

// GetCollection fetches one collection with its item count.
func (s *Store) GetCollection(id int64) (*models.Collection, error) {
	c, err := scanCollection(s.db.QueryRow(`SELECT `+collectionColumns+` FROM collections c WHERE c.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetAllCollections lists every collection, most recently changed first.
func (s *Store) GetAllCollections() ([]models.Collection, error) {
	rows, err := s.db.Query(`SELECT ` + collectionColumns + ` FROM collections c ORDER BY c.updated_at DESC, c.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	collections := []models.Collection{}
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		collections = append(collections, c)
	}
	return collections, rows.Err()
}

// GetCollectionMedia lists the items of a collection, newest addition first.
func (s *Store) GetCollectionMedia(id int64) ([]models.CollectionItem, error) {
	if _, err := s.GetCollection(id); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`
		SELECT `+mediaColumns+`, ci.added_at
		FROM collection_items ci
		JOIN media_files m ON ci.media_id = m.id
		WHERE ci.collection_id = ? AND m.is_deleted = 0
		ORDER BY ci.added_at DESC, ci.id DESC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.CollectionItem{}
	for rows.Next() {
		var item models.CollectionItem
		var title sql.NullString
		var year, duration sql.NullInt64
		if err := rows.Scan(&item.ID, &item.FilePath, &item.FileName, &item.MediaType, &duration, &title, &year,
			&item.IsDeleted, &item.AddedAt); err != nil {
			return nil, err
		}
		item.Title = nullString(title)
		item.Year = nullInt(year)
		item.Duration = nullInt64(duration)
		items = append(items, item)
	}
	return items, rows.Err()
}

// AddToCollection puts mediaID into a collection. Adding it twice is a no-op.
func (s *Store) AddToCollection(collectionID, mediaID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ts := now()
	res, err := tx.Exec("UPDATE collections SET updated_at = ? WHERE id = ?", ts, collectionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	_, err = tx.Exec(`
		INSERT OR IGNORE INTO collection_items (collection_id, media_id, added_at)
		VALUES (?, ?, ?)
	`, collectionID, mediaID, ts)
	if err != nil {
		return fmt.Errorf("failed to add media %d to collection %d: %w", mediaID, collectionID, err)
	}
	return tx.Commit()
}

// RemoveFromCollection drops mediaID from a collection.
func (s *Store) RemoveFromCollection(collectionID, mediaID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM collection_items WHERE collection_id = ? AND media_id = ?", collectionID, mediaID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if _, err := tx.Exec("UPDATE collections SET updated_at = ? WHERE id = ?", now(), collectionID); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateCollection renames a collection and replaces its description.
func (s *Store) UpdateCollection(id int64, name string, description *string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: collection name is empty", ErrInvalid)
	}
	res, err := s.db.Exec("UPDATE collections SET name = ?, description = ?, updated_at = ? WHERE id = ?",
		name, description, now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCollection removes a collection and its memberships.
func (s *Store) DeleteCollection(id int64) error {
	res, err := s.db.Exec("DELETE FROM collections WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
