package jobs_test

import (
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrsandeep/cinevault-go/internal/config"
	"github.com/vrsandeep/cinevault-go/internal/jobs"
	"github.com/vrsandeep/cinevault-go/internal/websocket"
)

type fakeJobContext struct {
	db     *sql.DB
	cfg    *config.Config
	ws     *websocket.Hub
	jobMgr *jobs.JobManager
}

func (f *fakeJobContext) DB() *sql.DB                  { return f.db }
func (f *fakeJobContext) Config() *config.Config       { return f.cfg }
func (f *fakeJobContext) WsHub() *websocket.Hub        { return f.ws }
func (f *fakeJobContext) JobManager() *jobs.JobManager { return f.jobMgr }

func newManager() (*jobs.JobManager, *fakeJobContext) {
	ctx := &fakeJobContext{cfg: &config.Config{}, ws: websocket.NewHub()}
	mgr := jobs.NewManager(ctx)
	ctx.jobMgr = mgr
	return mgr, ctx
}

func TestManager_NewManager(t *testing.T) {
	mgr, _ := newManager()
	assert.NotNil(t, mgr)
	assert.Empty(t, mgr.GetStatus())
}

func TestManager_RegisterAndGetStatus(t *testing.T) {
	mgr, _ := newManager()
	mgr.Register("jobB", "Job B", func(ctx jobs.JobContext) error { return nil })
	mgr.Register("jobA", "Job A", func(ctx jobs.JobContext) error { return nil })

	statuses := mgr.GetStatus()
	require.Len(t, statuses, 2)
	assert.Equal(t, "jobA", statuses[0].ID)
	assert.Equal(t, "Job A", statuses[0].Name)
	assert.Equal(t, "idle", statuses[0].Status)
	assert.Equal(t, "jobB", statuses[1].ID)
}

func TestManager_RunJob_SuccessAndStatus(t *testing.T) {
	mgr, ctx := newManager()
	var called bool
	mgr.Register("jobX", "Job X", func(ctx jobs.JobContext) error { called = true; return nil })

	require.NoError(t, mgr.RunJob("jobX", ctx))
	mgr.Wait()

	assert.True(t, called)
	status := mgr.GetStatus()[0]
	assert.Equal(t, "success", status.Status)
	assert.False(t, status.EndTime.IsZero())
}

func TestManager_RunJob_Failure(t *testing.T) {
	mgr, ctx := newManager()
	mgr.Register("jobF", "Job F", func(ctx jobs.JobContext) error { return errors.New("database is locked") })

	require.NoError(t, mgr.RunJob("jobF", ctx))
	mgr.Wait()

	status := mgr.GetStatus()[0]
	assert.Equal(t, "failed", status.Status)
	assert.Equal(t, "database is locked", status.Message)
}

func TestManager_RunJob_DefaultsToAppContext(t *testing.T) {
	mgr, ctx := newManager()
	var got jobs.JobContext
	mgr.Register("jobD", "Job D", func(c jobs.JobContext) error { got = c; return nil })

	require.NoError(t, mgr.RunJob("jobD", nil))
	mgr.Wait()
	assert.Same(t, ctx, got)
}

func TestManager_RunJob_AlreadyRunning(t *testing.T) {
	mgr, ctx := newManager()
	block := make(chan struct{})
	mgr.Register("jobY", "Job Y", func(ctx jobs.JobContext) error { <-block; return nil })

	require.NoError(t, mgr.RunJob("jobY", ctx))
	assert.Error(t, mgr.RunJob("jobY", ctx))
	close(block)
	mgr.Wait()
}

func TestManager_RunJob_NotFound(t *testing.T) {
	mgr, ctx := newManager()
	assert.Error(t, mgr.RunJob("nojob", ctx))
}

func TestManager_RunJob_Panic(t *testing.T) {
	mgr, ctx := newManager()
	mgr.Register("panicJob", "Panic Job", func(ctx jobs.JobContext) error { panic("fail") })

	require.NoError(t, mgr.RunJob("panicJob", ctx))
	mgr.Wait()

	status := mgr.GetStatus()[0]
	assert.Equal(t, "failed", status.Status)
	assert.Contains(t, status.Message, "panicked")
}

func TestManager_Concurrency(t *testing.T) {
	mgr, ctx := newManager()
	block := make(chan struct{})
	var mu sync.Mutex
	var count int
	mgr.Register("jobC", "Job C", func(ctx jobs.JobContext) error {
		mu.Lock()
		count++
		mu.Unlock()
		<-block
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = mgr.RunJob("jobC", ctx)
		}()
	}
	wg.Wait()
	close(block)
	mgr.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, count, "job should only run once concurrently")
}
