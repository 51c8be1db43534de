package backend

import (
	"context"
	"fmt"

	"github.com/vrsandeep/cinevault-go/internal/models"
)

const defaultChartDays = 30

// GetWatchHistoryChart returns minutes watched and session counts per day.
// days <= 0 means 30.
func (c *Client) GetWatchHistoryChart(ctx context.Context, days int) ([]models.DailyWatch, error) {
	if days <= 0 {
		days = defaultChartDays
	}
	var points []models.DailyWatch
	if err := c.inv.Invoke(ctx, CmdGetWatchHistoryChart, DaysArgs{Days: days}, &points); err != nil {
		return nil, fmt.Errorf("get watch history chart: %w", err)
	}
	return points, nil
}

// GetMediaTypeDistribution counts catalog items per media type.
func (c *Client) GetMediaTypeDistribution(ctx context.Context) ([]models.MediaTypeCount, error) {
	var counts []models.MediaTypeCount
	if err := c.inv.Invoke(ctx, CmdGetMediaTypeDistribution, struct{}{}, &counts); err != nil {
		return nil, fmt.Errorf("get media type distribution: %w", err)
	}
	return counts, nil
}

// CreatePlaylist creates a playlist and returns its id.
func (c *Client) CreatePlaylist(ctx context.Context, name string, description *string, playlistType string) (int64, error) {
	var id int64
	args := CreatePlaylistArgs{Name: name, Description: description, PlaylistType: playlistType}
	if err := c.inv.Invoke(ctx, CmdCreatePlaylist, args, &id); err != nil {
		return 0, fmt.Errorf("create playlist %q: %w", name, err)
	}
	return id, nil
}

func (c *Client) GetAllPlaylists(ctx context.Context) ([]models.Playlist, error) {
	var playlists []models.Playlist
	if err := c.inv.Invoke(ctx, CmdGetAllPlaylists, struct{}{}, &playlists); err != nil {
		return nil, fmt.Errorf("get playlists: %w", err)
	}
	return playlists, nil
}

// GetPlaylistMedia lists a playlist's items in play order.
func (c *Client) GetPlaylistMedia(ctx context.Context, playlistID int64) ([]models.MediaFile, error) {
	var items []models.MediaFile
	if err := c.inv.Invoke(ctx, CmdGetPlaylistMedia, PlaylistArgs{PlaylistID: playlistID}, &items); err != nil {
		return nil, fmt.Errorf("get media of playlist %d: %w", playlistID, err)
	}
	return items, nil
}

func (c *Client) AddToPlaylist(ctx context.Context, playlistID, mediaID int64) error {
	args := PlaylistItemArgs{PlaylistID: playlistID, MediaID: mediaID}
	if err := c.inv.Invoke(ctx, CmdAddToPlaylist, args, nil); err != nil {
		return fmt.Errorf("add %d to playlist %d: %w", mediaID, playlistID, err)
	}
	return nil
}

func (c *Client) RemoveFromPlaylist(ctx context.Context, playlistID, mediaID int64) error {
	args := PlaylistItemArgs{PlaylistID: playlistID, MediaID: mediaID}
	if err := c.inv.Invoke(ctx, CmdRemoveFromPlaylist, args, nil); err != nil {
		return fmt.Errorf("remove %d from playlist %d: %w", mediaID, playlistID, err)
	}
	return nil
}

func (c *Client) UpdatePlaylist(ctx context.Context, playlistID int64, name string, description *string) error {
	args := UpdatePlaylistArgs{PlaylistID: playlistID, Name: name, Description: description}
	if err := c.inv.Invoke(ctx, CmdUpdatePlaylist, args, nil); err != nil {
		return fmt.Errorf("update playlist %d: %w", playlistID, err)
	}
	return nil
}

func (c *Client) DeletePlaylist(ctx context.Context, playlistID int64) error {
	if err := c.inv.Invoke(ctx, CmdDeletePlaylist, PlaylistArgs{PlaylistID: playlistID}, nil); err != nil {
		return fmt.Errorf("delete playlist %d: %w", playlistID, err)
	}
	return nil
}

// AddPlaylistRule adds a filter to a smart playlist and returns the rule id.
func (c *Client) AddPlaylistRule(ctx context.Context, playlistID int64, ruleType, operator, value string) (int64, error) {
	var id int64
	args := PlaylistRuleArgs{PlaylistID: playlistID, RuleType: ruleType, Operator: operator, Value: value}
	if err := c.inv.Invoke(ctx, CmdAddPlaylistRule, args, &id); err != nil {
		return 0, fmt.Errorf("add rule to playlist %d: %w", playlistID, err)
	}
	return id, nil
}

func (c *Client) GetPlaylistRules(ctx context.Context, playlistID int64) ([]models.PlaylistRule, error) {
	var rules []models.PlaylistRule
	if err := c.inv.Invoke(ctx, CmdGetPlaylistRules, PlaylistArgs{PlaylistID: playlistID}, &rules); err != nil {
		return nil, fmt.Errorf("get rules of playlist %d: %w", playlistID, err)
	}
	return rules, nil
}

func (c *Client) DeletePlaylistRule(ctx context.Context, ruleID int64) error {
	if err := c.inv.Invoke(ctx, CmdDeletePlaylistRule, RuleArgs{RuleID: ruleID}, nil); err != nil {
		return fmt.Errorf("delete playlist rule %d: %w", ruleID, err)
	}
	return nil
}

// CreateCollection creates a collection and returns its id.
func (c *Client) CreateCollection(ctx context.Context, name string, description *string) (int64, error) {
	var id int64
	args := CreateCollectionArgs{Name: name, Description: description}
	if err := c.inv.Invoke(ctx, CmdCreateCollection, args, &id); err != nil {
		return 0, fmt.Errorf("create collection %q: %w", name, err)
	}
	return id, nil
}

func (c *Client) GetAllCollections(ctx context.Context) ([]models.Collection, error) {
	var collections []models.Collection
	if err := c.inv.Invoke(ctx, CmdGetAllCollections, struct{}{}, &collections); err != nil {
		return nil, fmt.Errorf("get collections: %w", err)
	}
	return collections, nil
}

// GetCollectionMedia lists a collection's items, newest addition first.
func (c *Client) GetCollectionMedia(ctx context.Context, collectionID int64) ([]models.CollectionItem, error) {
	var items []models.CollectionItem
	if err := c.inv.Invoke(ctx, CmdGetCollectionMedia, CollectionArgs{CollectionID: collectionID}, &items); err != nil {
		return nil, fmt.Errorf("get media of collection %d: %w", collectionID, err)
	}
	return items, nil
}

func (c *Client) AddToCollection(ctx context.Context, collectionID, mediaID int64) error {
	args := CollectionItemArgs{CollectionID: collectionID, MediaID: mediaID}
	if err := c.inv.Invoke(ctx, CmdAddToCollection, args, nil); err != nil {
		return fmt.Errorf("add %d to collection %d: %w", mediaID, collectionID, err)
	}
	return nil
}

func (c *Client) RemoveFromCollection(ctx context.Context, collectionID, mediaID int64) error {
	args := CollectionItemArgs{CollectionID: collectionID, MediaID: mediaID}
	if err := c.inv.Invoke(ctx, CmdRemoveFromCollection, args, nil); err != nil {
		return fmt.Errorf("remove %d from collection %d: %w", mediaID, collectionID, err)
	}
	return nil
}

func (c *Client) UpdateCollection(ctx context.Context, collectionID int64, name string, description *string) error {
	args := UpdateCollectionArgs{CollectionID: collectionID, Name: name, Description: description}
	if err := c.inv.Invoke(ctx, CmdUpdateCollection, args, nil); err != nil {
		return fmt.Errorf("update collection %d: %w", collectionID, err)
	}
	return nil
}

func (c *Client) DeleteCollection(ctx context.Context, collectionID int64) error {
	if err := c.inv.Invoke(ctx, CmdDeleteCollection, CollectionArgs{CollectionID: collectionID}, nil); err != nil {
		return fmt.Errorf("delete collection %d: %w", collectionID, err)
	}
	return nil
}
