package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/avast/retry-go/v4"
	"github.com/gorilla/websocket"
)

const (
	defaultDialAttempts = 3
	dialRetryDelay      = 250 * time.Millisecond
	writeWait           = 10 * time.Second
)

// Options tunes Dial.
type Options struct {
	// DialAttempts is how many times the initial connection is tried.
	DialAttempts uint
	// VersionConstraint is checked against the server's bridge_version reply.
	// An empty constraint skips the handshake.
	VersionConstraint string
	Header            http.Header
	Dialer            *websocket.Dialer
}

// EventHandler receives the raw payload of a push event.
type EventHandler func(payload json.RawMessage)

// Client is a bridge connection. It is safe for concurrent use.
type Client struct {
	conn *websocket.Conn

	writeMu sync.Mutex

	mu           sync.Mutex
	nextID       uint64
	pending      map[uint64]chan Frame
	listeners    map[string]map[int]EventHandler
	nextListener int
	closed       bool
	closeErr     error
	done         chan struct{}

	serverVersion *semver.Version
}

// Dial connects to a bridge server, retrying the connection, then runs the
// version handshake when a constraint is configured.
func Dial(ctx context.Context, url string, opts Options) (*Client, error) {
	dialer := opts.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	attempts := opts.DialAttempts
	if attempts == 0 {
		attempts = defaultDialAttempts
	}

	var conn *websocket.Conn
	err := retry.Do(
		func() error {
			c, _, err := dialer.DialContext(ctx, url, opts.Header)
			if err != nil {
				return err
			}
			conn = c
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(dialRetryDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Printf("Bridge dial attempt %d to %s failed: %v", n+1, url, err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("dial bridge %s: %w", url, err)
	}

	c := newClient(conn)
	if opts.VersionConstraint != "" {
		if err := c.handshake(ctx, opts.VersionConstraint); err != nil {
			c.Close()
			return nil, err
		}
	}
	return c, nil
}

func newClient(conn *websocket.Conn) *Client {
	c := &Client{
		conn:      conn,
		pending:   make(map[uint64]chan Frame),
		listeners: make(map[string]map[int]EventHandler),
		done:      make(chan struct{}),
	}
	go c.readLoop()
	return c
}

func (c *Client) handshake(ctx context.Context, constraint string) error {
	cons, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid bridge version constraint %q: %w", constraint, err)
	}
	var info struct {
		Version string `json:"version"`
	}
	if err := c.Invoke(ctx, "bridge_version", struct{}{}, &info); err != nil {
		return fmt.Errorf("bridge handshake: %w", err)
	}
	v, err := semver.NewVersion(info.Version)
	if err != nil {
		return fmt.Errorf("%w: unparsable server version %q", ErrIncompatibleVersion, info.Version)
	}
	if !cons.Check(v) {
		return fmt.Errorf("%w: server %s does not satisfy %s", ErrIncompatibleVersion, v, constraint)
	}
	c.serverVersion = v
	return nil
}

// ServerVersion returns the version reported during the handshake, or nil
// when no handshake ran.
func (c *Client) ServerVersion() *semver.Version {
	return c.serverVersion
}

// Invoke implements backend.Invoker. It blocks until the response arrives,
// ctx is done, or the connection closes.
func (c *Client) Invoke(ctx context.Context, cmd string, args any, out any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode %s args: %w", cmd, err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.nextID++
	id := c.nextID
	ch := make(chan Frame, 1)
	c.pending[id] = ch
	c.mu.Unlock()

	if err := c.write(Frame{ID: id, Cmd: cmd, Args: raw}); err != nil {
		c.forget(id)
		return fmt.Errorf("send %s: %w", cmd, err)
	}

	select {
	case resp := <-ch:
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
	case <-ctx.Done():
		c.forget(id)
		return ctx.Err()
	case <-c.done:
		return ErrClosed
	}
}

// Listen subscribes handler to an event. Handlers run on the read goroutine
// in arrival order and must not block. The returned func unsubscribes.
func (c *Client) Listen(event string, handler EventHandler) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextListener
	c.nextListener++
	if c.listeners[event] == nil {
		c.listeners[event] = make(map[int]EventHandler)
	}
	c.listeners[event][id] = handler
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners[event], id)
	}
}

// Done is closed once the connection has shut down.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Err returns the reason the connection closed, if it has.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeErr
}

// Close shuts the connection down. Pending calls fail with ErrClosed.
func (c *Client) Close() error {
	c.writeMu.Lock()
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	c.writeMu.Unlock()
	c.shutdown(ErrClosed)
	return c.conn.Close()
}

func (c *Client) write(f Frame) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(f)
}

func (c *Client) forget(id uint64) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

func (c *Client) readLoop() {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.shutdown(err)
			return
		}
		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			log.Printf("Dropping malformed bridge frame: %v", err)
			continue
		}
		if f.IsEvent() {
			c.emit(f)
			continue
		}
		c.mu.Lock()
		ch, ok := c.pending[f.ID]
		delete(c.pending, f.ID)
		c.mu.Unlock()
		if ok {
			ch <- f
		}
	}
}

func (c *Client) emit(f Frame) {
	c.mu.Lock()
	handlers := make([]EventHandler, 0, len(c.listeners[f.Event]))
	for _, h := range c.listeners[f.Event] {
		handlers = append(handlers, h)
	}
	c.mu.Unlock()
	for _, h := range handlers {
		h(f.Payload)
	}
}

func (c *Client) shutdown(reason error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.closeErr = reason
	c.pending = make(map[uint64]chan Frame)
	close(c.done)
}
