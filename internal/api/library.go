package api

import (
	"context"
	"encoding/json"

	"github.com/vrsandeep/cinevault-go/internal/backend"
	"github.com/vrsandeep/cinevault-go/internal/bridge"
	"github.com/vrsandeep/cinevault-go/internal/models"
	"github.com/vrsandeep/cinevault-go/internal/store"
)

func registerPlaylistCommands(d *bridge.Dispatcher, st *store.Store) {
	d.Handle(backend.CmdCreatePlaylist, func(ctx context.Context, args json.RawMessage) (any, error) {
		var in backend.CreatePlaylistArgs
		if err := bridge.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return st.CreatePlaylist(in.Name, in.Description, in.PlaylistType)
	})

	d.Handle(backend.CmdGetAllPlaylists, func(ctx context.Context, args json.RawMessage) (any, error) {
		return st.GetAllPlaylists()
	})

	d.Handle(backend.CmdGetPlaylistMedia, func(ctx context.Context, args json.RawMessage) (any, error) {
		var in backend.PlaylistArgs
		if err := bridge.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return st.GetPlaylistMedia(in.PlaylistID)
	})

	d.Handle(backend.CmdAddToPlaylist, func(ctx context.Context, args json.RawMessage) (any, error) {
		var in backend.PlaylistItemArgs
		if err := bridge.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return nil, st.AddToPlaylist(in.PlaylistID, in.MediaID)
	})

	d.Handle(backend.CmdRemoveFromPlaylist, func(ctx context.Context, args json.RawMessage) (any, error) {
		var in backend.PlaylistItemArgs
		if err := bridge.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return nil, st.RemoveFromPlaylist(in.PlaylistID, in.MediaID)
	})

	d.Handle(backend.CmdUpdatePlaylist, func(ctx context.Context, args json.RawMessage) (any, error) {
		var in backend.UpdatePlaylistArgs
		if err := bridge.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return nil, st.UpdatePlaylist(in.PlaylistID, in.Name, in.Description)
	})

	d.Handle(backend.CmdDeletePlaylist, func(ctx context.Context, args json.RawMessage) (any, error) {
		var in backend.PlaylistArgs
		if err := bridge.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return nil, st.DeletePlaylist(in.PlaylistID)
	})

	d.Handle(backend.CmdAddPlaylistRule, func(ctx context.Context, args json.RawMessage) (any, error) {
		var in backend.PlaylistRuleArgs
		if err := bridge.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return st.AddPlaylistRule(models.PlaylistRule{
			PlaylistID: in.PlaylistID,
			RuleType:   in.RuleType,
			Operator:   in.Operator,
			Value:      in.Value,
		})
	})

	d.Handle(backend.CmdGetPlaylistRules, func(ctx context.Context, args json.RawMessage) (any, error) {
		var in backend.PlaylistArgs
		if err := bridge.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return st.GetPlaylistRules(in.PlaylistID)
	})

	d.Handle(backend.CmdDeletePlaylistRule, func(ctx context.Context, args json.RawMessage) (any, error) {
		var in backend.RuleArgs
		if err := bridge.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return nil, st.DeletePlaylistRule(in.RuleID)
	})
}

func registerCollectionCommands(d *bridge.Dispatcher, st *store.Store) {
	d.Handle(backend.CmdCreateCollection, func(ctx context.Context, args json.RawMessage) (any, error) {
		var in backend.CreateCollectionArgs
		if err := bridge.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return st.CreateCollection(in.Name, in.Description)
	})

	d.Handle(backend.CmdGetAllCollections, func(ctx context.Context, args json.RawMessage) (any, error) {
		return st.GetAllCollections()
	})

	d.Handle(backend.CmdGetCollectionMedia, func(ctx context.Context, args json.RawMessage) (any, error) {
		var in backend.CollectionArgs
		if err := bridge.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return st.GetCollectionMedia(in.CollectionID)
	})

	d.Handle(backend.CmdAddToCollection, func(ctx context.Context, args json.RawMessage) (any, error) {
		var in backend.CollectionItemArgs
		if err := bridge.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return nil, st.AddToCollection(in.CollectionID, in.MediaID)
	})

	d.Handle(backend.CmdRemoveFromCollection, func(ctx context.Context, args json.RawMessage) (any, error) {
		var in backend.CollectionItemArgs
		if err := bridge.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return nil, st.RemoveFromCollection(in.CollectionID, in.MediaID)
	})

	d.Handle(backend.CmdUpdateCollection, func(ctx context.Context, args json.RawMessage) (any, error) {
		var in backend.UpdateCollectionArgs
		if err := bridge.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return nil, st.UpdateCollection(in.CollectionID, in.Name, in.Description)
	})

	d.Handle(backend.CmdDeleteCollection, func(ctx context.Context, args json.RawMessage) (any, error) {
		var in backend.CollectionArgs
		if err := bridge.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return nil, st.DeleteCollection(in.CollectionID)
	})
}
