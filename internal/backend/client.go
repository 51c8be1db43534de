// This file wraps the raw invoke bridge with one typed method per backend
// command, mirroring the payload shapes the backend expects.

package backend

import (
	"context"
	"fmt"
	"math"

	"github.com/vrsandeep/cinevault-go/internal/models"
)

const defaultListLimit = 20

// Invoker sends a named command with JSON-encodable args and decodes the
// result into out. A nil out discards the result.
type Invoker interface {
	Invoke(ctx context.Context, cmd string, args any, out any) error
}

// Client is the typed backend API used by the player core.
type Client struct {
	inv Invoker
}

// NewClient creates a Client on top of an Invoker.
func NewClient(inv Invoker) *Client {
	return &Client{inv: inv}
}

// GetPlaybackState returns the persisted state for mediaID, or nil when the
// item has never been played.
func (c *Client) GetPlaybackState(ctx context.Context, mediaID int64) (*models.PlaybackState, error) {
	var state *models.PlaybackState
	if err := c.inv.Invoke(ctx, CmdGetPlaybackState, MediaArgs{MediaID: mediaID}, &state); err != nil {
		return nil, fmt.Errorf("get playback state for %d: %w", mediaID, err)
	}
	return state, nil
}

// UpdatePosition persists a checkpoint. Both values are floored to whole
// seconds; a duration that is not positive is sent as null.
func (c *Client) UpdatePosition(ctx context.Context, mediaID int64, position, duration float64) error {
	args := UpdatePositionArgs{
		MediaID:  mediaID,
		Position: int64(math.Floor(position)),
	}
	if duration > 0 && !math.IsInf(duration, 0) {
		d := int64(math.Floor(duration))
		args.Duration = &d
	}
	if err := c.inv.Invoke(ctx, CmdUpdatePlaybackPosition, args, nil); err != nil {
		return fmt.Errorf("update playback position for %d: %w", mediaID, err)
	}
	return nil
}

// MarkAsCompleted flags mediaID as watched to the end.
func (c *Client) MarkAsCompleted(ctx context.Context, mediaID int64, duration float64) error {
	args := MarkCompletedArgs{MediaID: mediaID, Duration: int64(math.Floor(duration))}
	if err := c.inv.Invoke(ctx, CmdMarkAsCompleted, args, nil); err != nil {
		return fmt.Errorf("mark %d as completed: %w", mediaID, err)
	}
	return nil
}

// GetRecentlyPlayed lists the most recently played items. limit <= 0 means 20.
func (c *Client) GetRecentlyPlayed(ctx context.Context, limit int) ([]models.RecentlyPlayed, error) {
	var items []models.RecentlyPlayed
	if err := c.inv.Invoke(ctx, CmdGetRecentlyPlayed, LimitArgs{Limit: listLimit(limit)}, &items); err != nil {
		return nil, fmt.Errorf("get recently played: %w", err)
	}
	return items, nil
}

// GetInProgress lists started but unfinished items. limit <= 0 means 20.
func (c *Client) GetInProgress(ctx context.Context, limit int) ([]models.RecentlyPlayed, error) {
	var items []models.RecentlyPlayed
	if err := c.inv.Invoke(ctx, CmdGetInProgress, LimitArgs{Limit: listLimit(limit)}, &items); err != nil {
		return nil, fmt.Errorf("get in progress: %w", err)
	}
	return items, nil
}

// GetWatchStats returns aggregate watch statistics.
func (c *Client) GetWatchStats(ctx context.Context) (*models.WatchStats, error) {
	var stats models.WatchStats
	if err := c.inv.Invoke(ctx, CmdGetWatchStats, struct{}{}, &stats); err != nil {
		return nil, fmt.Errorf("get watch stats: %w", err)
	}
	return &stats, nil
}

// GetSubtitleTracks lists the subtitle tracks known for mediaID.
func (c *Client) GetSubtitleTracks(ctx context.Context, mediaID int64) ([]models.SubtitleTrack, error) {
	var tracks []models.SubtitleTrack
	if err := c.inv.Invoke(ctx, CmdGetSubtitleTracks, MediaArgs{MediaID: mediaID}, &tracks); err != nil {
		return nil, fmt.Errorf("get subtitle tracks for %d: %w", mediaID, err)
	}
	return tracks, nil
}

// GetAudioTracks lists the audio tracks known for mediaID.
func (c *Client) GetAudioTracks(ctx context.Context, mediaID int64) ([]models.AudioTrack, error) {
	var tracks []models.AudioTrack
	if err := c.inv.Invoke(ctx, CmdGetAudioTracks, MediaArgs{MediaID: mediaID}, &tracks); err != nil {
		return nil, fmt.Errorf("get audio tracks for %d: %w", mediaID, err)
	}
	return tracks, nil
}

func listLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return limit
}
