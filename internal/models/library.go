package models

// Playlist types. Manual playlists hold an ordered item list, smart
// playlists are evaluated from their rules on every read.
const (
	PlaylistManual = "manual"
	PlaylistSmart  = "smart"
	PlaylistAuto   = "auto"
)

// Playlist is a named list of media items.
type Playlist struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	PlaylistType string  `json:"playlist_type"`
	ItemCount    int     `json:"item_count"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// PlaylistRule is one filter of a smart playlist. All rules of a playlist
// must match.
type PlaylistRule struct {
	ID         int64  `json:"id"`
	PlaylistID int64  `json:"playlist_id"`
	RuleType   string `json:"rule_type"` // media_type, year, duration, title, file_name
	Operator   string `json:"operator"`
	Value      string `json:"value"`
	CreatedAt  string `json:"created_at"`
}

// Collection is an unordered, user curated group of media items.
type Collection struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	ItemCount   int     `json:"item_count"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// CollectionItem is a catalog row together with the time it joined a collection.
type CollectionItem struct {
	MediaFile
	AddedAt string `json:"added_at"`
}

// DailyWatch is one bar of the watch history chart.
type DailyWatch struct {
	Date     string `json:"date"`
	Minutes  int64  `json:"minutes"`
	Sessions int    `json:"sessions"`
}

// MediaTypeCount is one slice of the media type distribution chart.
type MediaTypeCount struct {
	MediaType string `json:"media_type"`
	Count     int    `json:"count"`
}
