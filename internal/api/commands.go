// Command handlers for the bridge dispatcher. The same handlers answer
// WebSocket request frames and POST /api/invoke/{command}.

package api

import (
	"context"
	"encoding/json"

	"github.com/vrsandeep/cinevault-go/internal/backend"
	"github.com/vrsandeep/cinevault-go/internal/bridge"
	"github.com/vrsandeep/cinevault-go/internal/store"
)

const (
	defaultListLimit = 20
	defaultChartDays = 30
)

// NewDispatcher registers one handler per backend command on top of st.
func NewDispatcher(st *store.Store) *bridge.Dispatcher {
	d := bridge.NewDispatcher()

	d.Handle(backend.CmdBridgeVersion, func(ctx context.Context, args json.RawMessage) (any, error) {
		return backend.VersionInfo{Version: bridge.ProtocolVersion}, nil
	})

	d.Handle(backend.CmdGetPlaybackState, func(ctx context.Context, args json.RawMessage) (any, error) {
		var in backend.MediaArgs
		if err := bridge.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return st.GetPlaybackState(in.MediaID)
	})

	d.Handle(backend.CmdUpdatePlaybackPosition, func(ctx context.Context, args json.RawMessage) (any, error) {
		var in backend.UpdatePositionArgs
		if err := bridge.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return nil, st.UpdatePlaybackPosition(in.MediaID, in.Position, in.Duration)
	})

	d.Handle(backend.CmdMarkAsCompleted, func(ctx context.Context, args json.RawMessage) (any, error) {
		var in backend.MarkCompletedArgs
		if err := bridge.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		if err := st.MarkAsCompleted(in.MediaID, in.Duration); err != nil {
			return nil, err
		}
		_, err := st.LogPlaybackSession(in.MediaID, in.Duration, true)
		return nil, err
	})

	d.Handle(backend.CmdGetRecentlyPlayed, func(ctx context.Context, args json.RawMessage) (any, error) {
		var in backend.LimitArgs
		if err := bridge.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return st.GetRecentlyPlayed(limitOrDefault(in.Limit))
	})

	d.Handle(backend.CmdGetInProgress, func(ctx context.Context, args json.RawMessage) (any, error) {
		var in backend.LimitArgs
		if err := bridge.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return st.GetInProgress(limitOrDefault(in.Limit))
	})

	d.Handle(backend.CmdGetWatchStats, func(ctx context.Context, args json.RawMessage) (any, error) {
		return st.GetWatchStats()
	})

	d.Handle(backend.CmdGetSubtitleTracks, func(ctx context.Context, args json.RawMessage) (any, error) {
		var in backend.MediaArgs
		if err := bridge.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return st.GetSubtitleTracks(in.MediaID)
	})

	d.Handle(backend.CmdGetAudioTracks, func(ctx context.Context, args json.RawMessage) (any, error) {
		var in backend.MediaArgs
		if err := bridge.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return st.GetAudioTracks(in.MediaID)
	})

	d.Handle(backend.CmdGetWatchHistoryChart, func(ctx context.Context, args json.RawMessage) (any, error) {
		var in backend.DaysArgs
		if err := bridge.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		if in.Days <= 0 {
			in.Days = defaultChartDays
		}
		return st.GetWatchHistoryChart(in.Days)
	})

	d.Handle(backend.CmdGetMediaTypeDistribution, func(ctx context.Context, args json.RawMessage) (any, error) {
		return st.GetMediaTypeDistribution()
	})

	registerPlaylistCommands(d, st)
	registerCollectionCommands(d, st)
	return d
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return limit
}
