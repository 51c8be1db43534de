package models

// MediaFile is the minimal catalog row the playback core needs.
type MediaFile struct {
	ID        int64   `json:"id"`
	FilePath  string  `json:"file_path"`
	FileName  string  `json:"file_name"`
	Title     *string `json:"title,omitempty"`
	Year      *int    `json:"year,omitempty"`
	MediaType string  `json:"media_type"` // movie, tv_episode, music, video, audio
	Duration  *int64  `json:"duration,omitempty"`
	IsDeleted bool    `json:"is_deleted"`
}

// SubtitleTrack describes an external or embedded subtitle stream.
// Embedded tracks that have not been persisted yet carry no ID.
type SubtitleTrack struct {
	ID         *int64  `json:"id,omitempty"`
	MediaID    int64   `json:"media_id"`
	FilePath   string  `json:"file_path"`
	Language   *string `json:"language,omitempty"`
	Label      *string `json:"label,omitempty"`
	Codec      *string `json:"codec,omitempty"`
	IsEmbedded bool    `json:"is_embedded"`
	TrackIndex *int    `json:"track_index,omitempty"`
	AddedAt    string  `json:"added_at"`
}

// AudioTrack describes one audio stream of a media file.
type AudioTrack struct {
	ID        int64   `json:"id"`
	MediaID   int64   `json:"media_id"`
	FilePath  string  `json:"file_path"`
	Language  *string `json:"language,omitempty"`
	Codec     *string `json:"codec,omitempty"`
	Channels  *int    `json:"channels,omitempty"`
	IsDefault bool    `json:"is_default"`
}
