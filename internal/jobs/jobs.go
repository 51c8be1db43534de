package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vrsandeep/cinevault-go/internal/backend"
	"github.com/vrsandeep/cinevault-go/internal/store"
)

const WatchStatsJobID = "watch-stats"

// RegisterAll registers every known job on jm.
func RegisterAll(jm *JobManager) {
	jm.Register(WatchStatsJobID, "Broadcast watch statistics", RunWatchStats)
}

// StartJobs starts the background job scheduler. The returned scheduler
// should be stopped on shutdown.
func StartJobs(app JobContext) *gocron.Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	ScheduleWatchStats(s, app, app.Config().Jobs.StatsInterval)

	log.Println("Starting background job scheduler...")
	s.StartAsync()
	return s
}

// ScheduleWatchStats replaces the periodic watch-stats broadcast with one
// that fires every interval minutes, starting one interval from now. An
// interval of 0 only removes it.
func ScheduleWatchStats(s *gocron.Scheduler, app JobContext, interval int) {
	// An absent tag is not an error here.
	_ = s.RemoveByTag(WatchStatsJobID)

	if interval <= 0 {
		log.Println("Watch stats interval is 0, scheduled broadcast is disabled.")
		return
	}

	log.Printf("Scheduling job: '%s' to run every %d minutes.", WatchStatsJobID, interval)
	_, err := s.Every(interval).Minutes().WaitForSchedule().Tag(WatchStatsJobID).Do(func() {
		log.Println("Scheduler is triggering job:", WatchStatsJobID)
		// Go through the manager so a manual run and a scheduled one never overlap.
		if err := app.JobManager().RunJob(WatchStatsJobID, app); err != nil {
			log.Printf("Scheduled job '%s' could not start: %v", WatchStatsJobID, err)
		}
	})
	if err != nil {
		log.Printf("Error scheduling '%s' job: %v", WatchStatsJobID, err)
	}
}

// RunWatchStats reads the aggregate watch statistics and pushes them to
// every connected player as a watch-stats event.
func RunWatchStats(app JobContext) error {
	stats, err := store.New(app.DB()).GetWatchStats()
	if err != nil {
		return fmt.Errorf("load watch stats: %w", err)
	}
	app.WsHub().BroadcastEvent(backend.EventWatchStats, stats)
	return nil
}
