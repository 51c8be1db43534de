// Shared test server setup, which keeps the API and job tests short.

package testutil

import (
	"database/sql"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vrsandeep/cinevault-go/internal/api"
	"github.com/vrsandeep/cinevault-go/internal/config"
	"github.com/vrsandeep/cinevault-go/internal/core"
	"github.com/vrsandeep/cinevault-go/internal/websocket"
)

// SetupTestApp builds a core.App over an in-memory database with a running hub.
func SetupTestApp(t *testing.T) *core.App {
	t.Helper()
	db := SetupTestDB(t)

	cfg := &config.Config{}
	hub := websocket.NewHub()
	go hub.Run()
	return core.NewApp(cfg, db, hub, "test")
}

// SetupTestServer initializes a full core.App and api.Server for integration testing.
func SetupTestServer(t *testing.T) (*api.Server, *sql.DB) {
	t.Helper()
	app := SetupTestApp(t)
	return api.NewServer(app), app.DB()
}

// StartBridge serves the router of server over HTTP and returns the
// WebSocket URL of its bridge endpoint.
func StartBridge(t *testing.T, server *api.Server) string {
	t.Helper()
	srv := httptest.NewServer(server.Router())
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
}
