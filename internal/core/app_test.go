package core_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrsandeep/cinevault-go/internal/core"
)

func TestNew(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cinevault.db")
	t.Setenv("CINEVAULT_DATABASE_PATH", dbPath)

	app, err := core.New("1.2.3")
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, dbPath, app.Config().Database.Path)
	assert.Equal(t, "1.2.3", app.Version)
	assert.NotNil(t, app.WsHub())

	var count int
	require.NoError(t, app.DB().QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'playback_state'").Scan(&count))
	assert.Equal(t, 1, count)

	statuses := app.JobManager().GetStatus()
	require.Len(t, statuses, 1)
	assert.Equal(t, "watch-stats", statuses[0].ID)
}
