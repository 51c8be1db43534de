package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"
)

// HandlerFunc serves one command. The returned value is JSON-encoded into
// the response frame.
type HandlerFunc func(ctx context.Context, args json.RawMessage) (any, error)

// Dispatcher routes request frames to command handlers.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]HandlerFunc)}
}

// Handle registers h for cmd, replacing any previous handler.
func (d *Dispatcher) Handle(cmd string, h HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[cmd] = h
}

// Commands lists the registered command names in sorted order.
func (d *Dispatcher) Commands() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs the handler registered for cmd.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd string, args json.RawMessage) (any, error) {
	d.mu.RLock()
	h, ok := d.handlers[cmd]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
	return h(ctx, args)
}

// Respond turns a request frame into its response frame.
func (d *Dispatcher) Respond(ctx context.Context, req Frame) Frame {
	resp := Frame{ID: req.ID}
	result, err := d.Dispatch(ctx, req.Cmd, req.Args)
	if err != nil {
		log.Printf("Command %s failed: %v", req.Cmd, err)
		resp.Error = err.Error()
		return resp
	}
	raw, err := json.Marshal(result)
	if err != nil {
		resp.Error = fmt.Sprintf("encode result: %v", err)
		return resp
	}
	resp.Result = raw
	return resp
}
