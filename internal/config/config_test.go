// This test file verifies the configuration loading logic using Viper.

package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults when no config file", func(t *testing.T) {
		// Ensure no config file exists for this test
		os.Remove("config.yml")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned an error: %v", err)
		}

		if cfg.Port != 8080 {
			t.Errorf("Expected default port 8080, got %d", cfg.Port)
		}
		if cfg.Database.Path != "./cinevault.db" {
			t.Errorf("Expected default db path './cinevault.db', got '%s'", cfg.Database.Path)
		}
		if cfg.Bridge.URL != "ws://localhost:8080/api/ws" {
			t.Errorf("Expected default bridge url, got '%s'", cfg.Bridge.URL)
		}
		if cfg.Player.SeekStep != 10 {
			t.Errorf("Expected default seek step 10, got %v", cfg.Player.SeekStep)
		}
		if cfg.Player.IdleTimeout() != 3*time.Second {
			t.Errorf("Expected default idle timeout 3s, got %v", cfg.Player.IdleTimeout())
		}
		if cfg.Player.CheckpointMode != "quantized" {
			t.Errorf("Expected default checkpoint mode 'quantized', got '%s'", cfg.Player.CheckpointMode)
		}
		if cfg.Player.CompletionThreshold != 95 {
			t.Errorf("Expected default completion threshold 95, got %v", cfg.Player.CompletionThreshold)
		}
	})

	t.Run("Loads from config file", func(t *testing.T) {
		configContent := `
port: 9999
database:
  path: "/tmp/test.db"
player:
  seek_step: 5
  checkpoint_mode: "delta"
unknown_setting: "should be ignored"
`
		// Create the config file in the current directory so Viper can find it.
		// Note: `t.TempDir()` is not used here because Viper looks in the CWD.
		configPath := "config.yml"
		if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
			t.Fatalf("Failed to write test config file: %v", err)
		}
		defer os.Remove(configPath)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned an error: %v", err)
		}

		if cfg.Port != 9999 {
			t.Errorf("Expected port 9999, got %d", cfg.Port)
		}
		if cfg.Database.Path != "/tmp/test.db" {
			t.Errorf("Expected db path '/tmp/test.db', got '%s'", cfg.Database.Path)
		}
		if cfg.Player.SeekStep != 5 {
			t.Errorf("Expected seek step 5, got %v", cfg.Player.SeekStep)
		}
		if cfg.Player.CheckpointMode != "delta" {
			t.Errorf("Expected checkpoint mode 'delta', got '%s'", cfg.Player.CheckpointMode)
		}
		if cfg.Player.VolumeStep != 0.1 {
			t.Errorf("Expected default volume step 0.1, got %v", cfg.Player.VolumeStep)
		}
	})

	t.Run("Environment overrides", func(t *testing.T) {
		os.Remove("config.yml")
		t.Setenv("CINEVAULT_PORT", "7070")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned an error: %v", err)
		}
		if cfg.Port != 7070 {
			t.Errorf("Expected port 7070 from environment, got %d", cfg.Port)
		}
	})
}
