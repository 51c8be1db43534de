package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrsandeep/cinevault-go/internal/bridge"
)

func TestHub(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Mock client
	client := &Client{
		hub:  hub,
		send: make(chan []byte, 1),
	}

	hub.register <- client
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	message := []byte("hello")
	hub.broadcast <- message

	select {
	case received := <-client.send:
		assert.Equal(t, "hello", string(received))
	case <-time.After(1 * time.Second):
		t.Fatal("Client did not receive broadcast message in time")
	}

	hub.unregister <- client
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-client.send
	assert.False(t, open, "send channel is closed on unregister")
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	slow := &Client{hub: hub, send: make(chan []byte)}
	hub.register <- slow

	hub.BroadcastJSON(map[string]string{"event": "watch-stats"})
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestServeWs_AnswersRequestsAndPushesEvents(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	d := bridge.NewDispatcher()
	d.Handle("bridge_version", func(ctx context.Context, args json.RawMessage) (any, error) {
		return map[string]string{"version": bridge.ProtocolVersion}, nil
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWs(d, w, r)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := bridge.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), bridge.Options{VersionConstraint: "^1.0.0"})
	require.NoError(t, err)
	defer c.Close()

	got := make(chan json.RawMessage, 1)
	c.Listen("watch-stats", func(payload json.RawMessage) { got <- payload })

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	hub.BroadcastEvent("watch-stats", map[string]int{"total_sessions": 4})

	select {
	case payload := <-got:
		assert.JSONEq(t, `{"total_sessions":4}`, string(payload))
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}

	err = c.Invoke(ctx, "missing", struct{}{}, nil)
	var remote *bridge.RemoteError
	assert.ErrorAs(t, err, &remote)
}
