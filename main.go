package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vrsandeep/cinevault-go/internal/api"
	"github.com/vrsandeep/cinevault-go/internal/config"
	"github.com/vrsandeep/cinevault-go/internal/core"
	"github.com/vrsandeep/cinevault-go/internal/jobs"
	"github.com/vrsandeep/cinevault-go/internal/logging"
)

var version = "dev"

func main() {
	os.Exit(run())
}

// run owns every deferred cleanup, so it reports failures through its exit
// code instead of exiting itself.
func run() int {
	// Initialize the core application components
	app, err := core.New(version)
	if err != nil {
		log.Printf("Fatal error during application setup: %v", err)
		return 1
	}
	defer app.Close()

	logCloser := logging.Setup(app.Config())
	defer logCloser.Close()

	scheduler := jobs.StartJobs(app)
	defer scheduler.Stop()

	statsInterval := app.Config().Jobs.StatsInterval
	config.Watch(func(cfg *config.Config) {
		if cfg.Jobs.StatsInterval != statsInterval {
			statsInterval = cfg.Jobs.StatsInterval
			jobs.ScheduleWatchStats(scheduler, app, statsInterval)
		}
	})

	// Setup the API server
	server := api.NewServer(app)
	addr := fmt.Sprintf(":%d", app.Config().Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.Router(),
	}

	// --- Graceful Shutdown ---
	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Starting bridge server on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serveErr:
		log.Printf("Could not start server: %v", err)
		return 1
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		return 1
	}

	log.Println("Server exiting.")
	return 0
}
