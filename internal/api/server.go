// It defines the development bridge server, sets up the routes (endpoints)
// using chi, and links them to the handler functions.

package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vrsandeep/cinevault-go/internal/bridge"
	"github.com/vrsandeep/cinevault-go/internal/core"
	"github.com/vrsandeep/cinevault-go/internal/store"
)

// Server holds the dependencies for our API.
type Server struct {
	app        *core.App
	db         *sql.DB
	store      *store.Store
	dispatcher *bridge.Dispatcher
}

// NewServer creates a new Server instance.
func NewServer(app *core.App) *Server {
	st := store.New(app.DB())
	return &Server{
		app:        app,
		db:         app.DB(),
		store:      st,
		dispatcher: NewDispatcher(st),
	}
}

// App returns the application the server was built on.
func (s *Server) App() *core.App {
	return s.app
}

// Store returns the store instance.
func (s *Server) Store() *store.Store {
	return s.store
}

// Dispatcher returns the command dispatcher shared by HTTP and WebSocket.
func (s *Server) Dispatcher() *bridge.Dispatcher {
	return s.dispatcher
}

// Router sets up and returns the main router for the application.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// The bridge socket is long-lived, so it stays outside the timeout group.
	r.Get("/api/ws", func(w http.ResponseWriter, r *http.Request) {
		s.app.WsHub().ServeWs(s.dispatcher, w, r)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/api/version", s.handleGetVersion)
		r.Get("/api/commands", s.handleListCommands)
		r.Post("/api/invoke/{command}", s.handleInvoke)

		r.Route("/api/admin", func(r chi.Router) {
			r.Get("/jobs/status", s.handleGetAdminJobsStatus)
			r.Post("/jobs/run", s.handleRunAdminJob)
		})

		r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
			if err := s.db.Ping(); err != nil {
				RespondWithError(w, http.StatusServiceUnavailable, "Database connection failed")
				return
			}
			RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	return r
}
