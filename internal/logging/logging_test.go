package logging

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrsandeep/cinevault-go/internal/config"
)

func TestSetup(t *testing.T) {
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	t.Run("No file configured", func(t *testing.T) {
		closer := Setup(&config.Config{})
		assert.NoError(t, closer.Close())
	})

	t.Run("Writes to rotating file", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Log.File = filepath.Join(t.TempDir(), "logs", "cinevault.log")
		cfg.Log.MaxSize = 1

		closer := Setup(cfg)
		log.Printf("hello from test")
		require.NoError(t, closer.Close())

		data, err := os.ReadFile(cfg.Log.File)
		require.NoError(t, err)
		assert.Contains(t, string(data), "hello from test")
	})
}
