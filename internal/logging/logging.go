// Package logging configures the standard logger shared by the bridge server
// and the player CLI.
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/vrsandeep/cinevault-go/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup points the standard logger at stdout and, when a log file is
// configured, at a size-rotated file as well. The returned closer flushes
// the rotating writer and is safe to call when no file is configured.
func Setup(cfg *config.Config) io.Closer {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if cfg == nil || cfg.Log.File == "" {
		return nopCloser{}
	}

	logDir := filepath.Dir(cfg.Log.File)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Printf("Warning: could not create log directory %s: %v", logDir, err)
		return nopCloser{}
	}

	fileWriter := &lumberjack.Logger{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, fileWriter))
	log.Printf("Logging to file: %s", cfg.Log.File)
	return fileWriter
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
