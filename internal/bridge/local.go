package bridge

import (
	"context"
	"encoding/json"
	"fmt"
)

// LocalInvoker runs commands against an in-process Dispatcher while keeping
// the same JSON round trip a remote peer would apply.
type LocalInvoker struct {
	Dispatcher *Dispatcher
}

// Invoke implements backend.Invoker.
func (l LocalInvoker) Invoke(ctx context.Context, cmd string, args any, out any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode %s args: %w", cmd, err)
	}
	resp := l.Dispatcher.Respond(ctx, Frame{ID: 1, Cmd: cmd, Args: raw})
	if resp.Error != "" {
		return &RemoteError{Command: cmd, Message: resp.Error}
	}
	if out == nil || len(resp.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return fmt.Errorf("decode %s result: %w", cmd, err)
	}
	return nil
}
