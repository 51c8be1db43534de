package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vrsandeep/cinevault-go/internal/models"
)

// ruleOperators lists the operators each smart playlist rule type accepts.
var ruleOperators = map[string][]string{
	"media_type": {"equals", "notequals"},
	"year":       {"equals", "gt", "lt", "gte", "lte"},
	"duration":   {"equals", "gt", "lt", "gte", "lte"},
	"title":      {"equals", "contains", "starts_with", "ends_with"},
	"file_name":  {"equals", "contains", "starts_with", "ends_with"},
}

var ruleColumns = map[string]string{
	"media_type": "m.media_type",
	"year":       "m.year",
	"duration":   "m.duration",
	"title":      "m.title",
	"file_name":  "m.file_name",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// CreatePlaylist inserts a playlist and returns its ID. An empty type means manual.
func (s *Store) CreatePlaylist(name string, description *string, playlistType string) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("%w: playlist name is empty", ErrInvalid)
	}
	if playlistType == "" {
		playlistType = models.PlaylistManual
	}
	switch playlistType {
	case models.PlaylistManual, models.PlaylistSmart, models.PlaylistAuto:
	default:
		return 0, fmt.Errorf("%w: playlist type %q", ErrInvalid, playlistType)
	}

	ts := now()
	res, err := s.db.Exec(`
		INSERT INTO playlists (name, description, playlist_type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, name, description, playlistType, ts, ts)
	if err != nil {
		return 0, fmt.Errorf("failed to create playlist %s: %w", name, err)
	}
	return res.LastInsertId()
}

const playlistColumns = `
	p.id, p.name, p.description, p.playlist_type, p.created_at, p.updated_at,
	(SELECT COUNT(*) FROM playlist_items pi WHERE pi.playlist_id = p.id)
`

func scanPlaylist(row interface{ Scan(...any) error }) (models.Playlist, error) {
	var p models.Playlist
	var description sql.NullString
	err := row.Scan(&p.ID, &p.Name, &description, &p.PlaylistType, &p.CreatedAt, &p.UpdatedAt, &p.ItemCount)
	p.Description = nullString(description)
	return p, err
}

// GetPlaylist fetches one playlist with its item count.
func (s *Store) GetPlaylist(id int64) (*models.Playlist, error) {
	p, err := scanPlaylist(s.db.QueryRow(`SELECT `+playlistColumns+` FROM playlists p WHERE p.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetAllPlaylists lists every playlist, most recently changed first.
func (s *Store) GetAllPlaylists() ([]models.Playlist, error) {
	rows, err := s.db.Query(`SELECT ` + playlistColumns + ` FROM playlists p ORDER BY p.updated_at DESC, p.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	playlists := []models.Playlist{}
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, p)
	}
	return playlists, rows.Err()
}

// GetPlaylistMedia returns the items of a playlist. Manual and auto
// playlists keep their stored order; smart playlists are evaluated from
// their rules and ordered by title.
func (s *Store) GetPlaylistMedia(id int64) ([]models.MediaFile, error) {
	p, err := s.GetPlaylist(id)
	if err != nil {
		return nil, err
	}
	if p.PlaylistType == models.PlaylistSmart {
		return s.evaluateSmartPlaylist(id)
	}

	rows, err := s.db.Query(`
		SELECT `+mediaColumns+`
		FROM playlist_items pi
		JOIN media_files m ON pi.media_id = m.id
		WHERE pi.playlist_id = ? AND m.is_deleted = 0
		ORDER BY pi.position ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMediaFiles(rows)
}

func (s *Store) evaluateSmartPlaylist(id int64) ([]models.MediaFile, error) {
	rules, err := s.GetPlaylistRules(id)
	if err != nil {
		return nil, err
	}

	where := []string{"m.is_deleted = 0"}
	var args []any
	for _, r := range rules {
		clause, arg, err := ruleClause(r)
		if err != nil {
			return nil, err
		}
		where = append(where, clause)
		args = append(args, arg)
	}

	rows, err := s.db.Query(`
		SELECT `+mediaColumns+`
		FROM media_files m
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY COALESCE(m.title, m.file_name) ASC, m.id ASC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMediaFiles(rows)
}

// ruleClause turns a validated rule into a WHERE fragment and its argument.
func ruleClause(r models.PlaylistRule) (string, any, error) {
	if err := validateRule(r); err != nil {
		return "", nil, err
	}
	col := ruleColumns[r.RuleType]
	var arg any = r.Value
	if r.RuleType == "year" || r.RuleType == "duration" {
		n, _ := strconv.ParseInt(r.Value, 10, 64)
		arg = n
	}

	switch r.Operator {
	case "equals":
		return col + " = ?", arg, nil
	case "notequals":
		return col + " != ?", arg, nil
	case "gt":
		return col + " > ?", arg, nil
	case "lt":
		return col + " < ?", arg, nil
	case "gte":
		return col + " >= ?", arg, nil
	case "lte":
		return col + " <= ?", arg, nil
	case "contains":
		return col + ` LIKE ? ESCAPE '\'`, "%" + likeEscaper.Replace(r.Value) + "%", nil
	case "starts_with":
		return col + ` LIKE ? ESCAPE '\'`, likeEscaper.Replace(r.Value) + "%", nil
	case "ends_with":
		return col + ` LIKE ? ESCAPE '\'`, "%" + likeEscaper.Replace(r.Value), nil
	}
	return "", nil, fmt.Errorf("%w: operator %q", ErrInvalid, r.Operator)
}

func validateRule(r models.PlaylistRule) error {
	ops, ok := ruleOperators[r.RuleType]
	if !ok {
		return fmt.Errorf("%w: rule type %q", ErrInvalid, r.RuleType)
	}
	known := false
	for _, op := range ops {
		if op == r.Operator {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: operator %q for rule type %s", ErrInvalid, r.Operator, r.RuleType)
	}
	if r.RuleType == "year" || r.RuleType == "duration" {
		if _, err := strconv.ParseInt(r.Value, 10, 64); err != nil {
			return fmt.Errorf("%w: %s value %q is not a whole number", ErrInvalid, r.RuleType, r.Value)
		}
	}
	return nil
}

// AddToPlaylist appends mediaID to a manual playlist. Adding an item that
// is already present is a no-op.
func (s *Store) AddToPlaylist(playlistID, mediaID int64) error {
	p, err := s.GetPlaylist(playlistID)
	if err != nil {
		return err
	}
	if p.PlaylistType == models.PlaylistSmart {
		return fmt.Errorf("%w: smart playlist %d is filled by its rules", ErrInvalid, playlistID)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ts := now()
	_, err = tx.Exec(`
		INSERT OR IGNORE INTO playlist_items (playlist_id, media_id, position, added_at)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM playlist_items WHERE playlist_id = ?), ?)
	`, playlistID, mediaID, playlistID, ts)
	if err != nil {
		return fmt.Errorf("failed to add media %d to playlist %d: %w", mediaID, playlistID, err)
	}
	if _, err := tx.Exec("UPDATE playlists SET updated_at = ? WHERE id = ?", ts, playlistID); err != nil {
		return err
	}
	return tx.Commit()
}

// RemoveFromPlaylist drops mediaID from a playlist.
func (s *Store) RemoveFromPlaylist(playlistID, mediaID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM playlist_items WHERE playlist_id = ? AND media_id = ?", playlistID, mediaID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if _, err := tx.Exec("UPDATE playlists SET updated_at = ? WHERE id = ?", now(), playlistID); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdatePlaylist renames a playlist and replaces its description.
func (s *Store) UpdatePlaylist(id int64, name string, description *string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: playlist name is empty", ErrInvalid)
	}
	res, err := s.db.Exec("UPDATE playlists SET name = ?, description = ?, updated_at = ? WHERE id = ?",
		name, description, now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePlaylist removes a playlist together with its items and rules.
func (s *Store) DeletePlaylist(id int64) error {
	res, err := s.db.Exec("DELETE FROM playlists WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// AddPlaylistRule validates and stores a smart playlist rule.
func (s *Store) AddPlaylistRule(r models.PlaylistRule) (int64, error) {
	if err := validateRule(r); err != nil {
		return 0, err
	}
	if _, err := s.GetPlaylist(r.PlaylistID); err != nil {
		return 0, err
	}
	res, err := s.db.Exec(`
		INSERT INTO playlist_rules (playlist_id, rule_type, operator, value, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, r.PlaylistID, r.RuleType, r.Operator, r.Value, now())
	if err != nil {
		return 0, fmt.Errorf("failed to add rule to playlist %d: %w", r.PlaylistID, err)
	}
	return res.LastInsertId()
}

// GetPlaylistRules lists the rules of a playlist in creation order.
func (s *Store) GetPlaylistRules(playlistID int64) ([]models.PlaylistRule, error) {
	rows, err := s.db.Query(`
		SELECT id, playlist_id, rule_type, operator, value, created_at
		FROM playlist_rules
		WHERE playlist_id = ?
		ORDER BY id ASC
	`, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := []models.PlaylistRule{}
	for rows.Next() {
		var r models.PlaylistRule
		if err := rows.Scan(&r.ID, &r.PlaylistID, &r.RuleType, &r.Operator, &r.Value, &r.CreatedAt); err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// DeletePlaylistRule removes a rule by ID.
func (s *Store) DeletePlaylistRule(id int64) error {
	res, err := s.db.Exec("DELETE FROM playlist_rules WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
