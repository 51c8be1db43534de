// This file defines the playback-related data structures shared between the
// player core, the backend client, and the development bridge server.

package models

// PlaybackState is the persisted resume point for one media item.
// It is owned by the backend and only read or written through bridge commands.
type PlaybackState struct {
	MediaID      int64  `json:"media_id"`
	LastPosition int64  `json:"last_position"`
	Duration     *int64 `json:"duration,omitempty"`
	Completed    bool   `json:"completed"`
	WatchCount   int    `json:"watch_count"`
	LastPlayedAt string `json:"last_played_at"`
	CreatedAt    string `json:"created_at"`
}

// RecentlyPlayed is a playback state joined with its catalog entry.
type RecentlyPlayed struct {
	MediaID      int64   `json:"media_id"`
	FilePath     string  `json:"file_path"`
	FileName     string  `json:"file_name"`
	Title        *string `json:"title,omitempty"`
	Year         *int    `json:"year,omitempty"`
	MediaType    string  `json:"media_type"`
	LastPosition int64   `json:"last_position"`
	Duration     *int64  `json:"duration,omitempty"`
	Completed    bool    `json:"completed"`
	LastPlayedAt string  `json:"last_played_at"`
}

// WatchStats aggregates playback history for the analytics dashboard.
type WatchStats struct {
	TotalWatched    int   `json:"total_watched"`
	TotalInProgress int   `json:"total_in_progress"`
	TotalWatchTime  int64 `json:"total_watch_time"`
	TotalSessions   int   `json:"total_sessions"`
}
