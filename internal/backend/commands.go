package backend

// Command names understood by the CineVault backend.
const (
	CmdGetPlaybackState       = "get_playback_state"
	CmdUpdatePlaybackPosition = "update_playback_position"
	CmdMarkAsCompleted        = "mark_as_completed"
	CmdGetRecentlyPlayed      = "get_recently_played"
	CmdGetInProgress          = "get_in_progress"
	CmdGetWatchStats          = "get_watch_stats"
	CmdGetSubtitleTracks      = "get_subtitle_tracks"
	CmdGetAudioTracks         = "get_audio_tracks"
	CmdBridgeVersion          = "bridge_version"

	CmdGetWatchHistoryChart     = "get_watch_history_chart"
	CmdGetMediaTypeDistribution = "get_media_type_distribution"

	CmdCreatePlaylist       = "create_playlist"
	CmdGetAllPlaylists      = "get_all_playlists"
	CmdGetPlaylistMedia     = "get_playlist_media"
	CmdAddToPlaylist        = "add_to_playlist"
	CmdRemoveFromPlaylist   = "remove_from_playlist"
	CmdUpdatePlaylist       = "update_playlist"
	CmdDeletePlaylist       = "delete_playlist"
	CmdAddPlaylistRule      = "add_playlist_rule"
	CmdGetPlaylistRules     = "get_playlist_rules"
	CmdDeletePlaylistRule   = "delete_playlist_rule"
	CmdCreateCollection     = "create_collection"
	CmdGetAllCollections    = "get_all_collections"
	CmdGetCollectionMedia   = "get_collection_media"
	CmdAddToCollection      = "add_to_collection"
	CmdRemoveFromCollection = "remove_from_collection"
	CmdUpdateCollection     = "update_collection"
	CmdDeleteCollection     = "delete_collection"
)

// Events pushed by the backend.
const (
	EventScanProgress = "scan-progress"
	EventWatchStats   = "watch-stats"
)

// MediaArgs carries a single media id.
type MediaArgs struct {
	MediaID int64 `json:"mediaId"`
}

// UpdatePositionArgs is the payload of update_playback_position.
// Duration is nil while the media element has not reported one.
type UpdatePositionArgs struct {
	MediaID  int64  `json:"mediaId"`
	Position int64  `json:"position"`
	Duration *int64 `json:"duration"`
}

// MarkCompletedArgs is the payload of mark_as_completed.
type MarkCompletedArgs struct {
	MediaID  int64 `json:"mediaId"`
	Duration int64 `json:"duration"`
}

// LimitArgs is the payload of the list commands.
type LimitArgs struct {
	Limit int `json:"limit"`
}

// DaysArgs is the payload of get_watch_history_chart.
type DaysArgs struct {
	Days int `json:"days"`
}

// CreatePlaylistArgs is the payload of create_playlist.
type CreatePlaylistArgs struct {
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	PlaylistType string  `json:"playlistType"`
}

// PlaylistArgs carries a single playlist id.
type PlaylistArgs struct {
	PlaylistID int64 `json:"playlistId"`
}

// PlaylistItemArgs names one media item of a playlist.
type PlaylistItemArgs struct {
	PlaylistID int64 `json:"playlistId"`
	MediaID    int64 `json:"mediaId"`
}

// UpdatePlaylistArgs is the payload of update_playlist.
type UpdatePlaylistArgs struct {
	PlaylistID  int64   `json:"playlistId"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// PlaylistRuleArgs is the payload of add_playlist_rule.
type PlaylistRuleArgs struct {
	PlaylistID int64  `json:"playlistId"`
	RuleType   string `json:"ruleType"`
	Operator   string `json:"operator"`
	Value      string `json:"value"`
}

// RuleArgs carries a single rule id.
type RuleArgs struct {
	RuleID int64 `json:"ruleId"`
}

// CreateCollectionArgs is the payload of create_collection.
type CreateCollectionArgs struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// CollectionArgs carries a single collection id.
type CollectionArgs struct {
	CollectionID int64 `json:"collectionId"`
}

// CollectionItemArgs names one media item of a collection.
type CollectionItemArgs struct {
	CollectionID int64 `json:"collectionId"`
	MediaID      int64 `json:"mediaId"`
}

// UpdateCollectionArgs is the payload of update_collection.
type UpdateCollectionArgs struct {
	CollectionID int64   `json:"collectionId"`
	Name         string  `json:"name"`
	Description  *string `json:"description"`
}

// VersionInfo is the result of bridge_version.
type VersionInfo struct {
	Version string `json:"version"`
}
