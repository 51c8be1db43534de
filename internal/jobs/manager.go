package jobs

import (
	"database/sql"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/vrsandeep/cinevault-go/internal/config"
	"github.com/vrsandeep/cinevault-go/internal/websocket"
)

// JobContext provides the dependencies a job needs to run.
// core.App implements it.
type JobContext interface {
	DB() *sql.DB
	Config() *config.Config
	WsHub() *websocket.Hub
	JobManager() *JobManager
}

type jobTask func(ctx JobContext) error

type JobStatus struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"` // "idle", "running", "success", "failed"
	Message   string    `json:"message"`
	StartTime time.Time `json:"start_time,omitempty"`
	EndTime   time.Time `json:"end_time,omitempty"`
}

// JobManager runs registered jobs one at a time.
type JobManager struct {
	mu      sync.Mutex
	jobs    map[string]jobTask
	status  map[string]*JobStatus
	running bool
	appCtx  JobContext
	done    chan struct{}
}

func NewManager(appCtx JobContext) *JobManager {
	return &JobManager{
		jobs:   make(map[string]jobTask),
		status: make(map[string]*JobStatus),
		appCtx: appCtx,
	}
}

func (jm *JobManager) Register(id, name string, task jobTask) {
	jm.mu.Lock()
	defer jm.mu.Unlock()
	jm.jobs[id] = task
	jm.status[id] = &JobStatus{ID: id, Name: name, Status: "idle"}
}

// RunJob starts the job in the background. It fails when another job is
// still running or id is unknown.
func (jm *JobManager) RunJob(id string, ctx JobContext) error {
	jm.mu.Lock()
	if jm.running {
		jm.mu.Unlock()
		return fmt.Errorf("a job is already running")
	}
	task, ok := jm.jobs[id]
	if !ok {
		jm.mu.Unlock()
		return fmt.Errorf("job '%s' not found", id)
	}
	if ctx == nil {
		ctx = jm.appCtx
	}

	jm.running = true
	jm.done = make(chan struct{})
	done := jm.done
	status := jm.status[id]
	status.Status = "running"
	status.StartTime = time.Now()
	status.EndTime = time.Time{}
	status.Message = "Job started..."
	jm.mu.Unlock()

	log.Printf("Starting job: %s", id)
	go func() {
		var taskErr error
		defer func() {
			r := recover()
			jm.mu.Lock()
			status.EndTime = time.Now()
			switch {
			case r != nil:
				log.Printf("Job '%s' panicked: %v", id, r)
				status.Status = "failed"
				status.Message = fmt.Sprintf("Job panicked: %v", r)
			case taskErr != nil:
				log.Printf("Job '%s' failed: %v", id, taskErr)
				status.Status = "failed"
				status.Message = taskErr.Error()
			default:
				status.Status = "success"
				status.Message = "Job completed successfully."
			}
			jm.running = false
			close(done)
			jm.mu.Unlock()
			log.Printf("Finished job: %s", id)
		}()

		taskErr = task(ctx)
	}()
	return nil
}

// Wait blocks until the job currently running, if any, has finished.
func (jm *JobManager) Wait() {
	jm.mu.Lock()
	done := jm.done
	jm.mu.Unlock()
	if done != nil {
		<-done
	}
}

// GetStatus returns a snapshot of every registered job, ordered by id.
func (jm *JobManager) GetStatus() []JobStatus {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	statuses := make([]JobStatus, 0, len(jm.status))
	for _, s := range jm.status {
		statuses = append(statuses, *s)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].ID < statuses[j].ID })
	return statuses
}
