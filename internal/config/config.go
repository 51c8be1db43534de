// This file defines the configuration structure for the application.
package config

import (
	// use Viper for loading the config.yml file.
	"log"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration settings for the application.
// It maps directly to the structure of config.yml.
type Config struct {
	Port     int `mapstructure:"port"`
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Bridge struct {
		URL               string `mapstructure:"url"`
		DialAttempts      uint   `mapstructure:"dial_attempts"`
		VersionConstraint string `mapstructure:"version_constraint"`
	} `mapstructure:"bridge"`
	Player PlayerConfig `mapstructure:"player"`
	Jobs   struct {
		StatsInterval int `mapstructure:"stats_interval"` // minutes, 0 disables
	} `mapstructure:"jobs"`
	Log struct {
		File       string `mapstructure:"file"`
		MaxSize    int    `mapstructure:"max_size"` // megabytes
		MaxBackups int    `mapstructure:"max_backups"`
		MaxAge     int    `mapstructure:"max_age"` // days
		Compress   bool   `mapstructure:"compress"`
	} `mapstructure:"log"`
}

// PlayerConfig tunes the player shell and the progress reporter.
type PlayerConfig struct {
	SeekStep            float64 `mapstructure:"seek_step"`
	VolumeStep          float64 `mapstructure:"volume_step"`
	IdleTimeoutMS       int     `mapstructure:"idle_timeout_ms"`
	AutoPlay            bool    `mapstructure:"autoplay"`
	CheckpointMode      string  `mapstructure:"checkpoint_mode"` // "quantized" or "delta"
	CheckpointInterval  float64 `mapstructure:"checkpoint_interval"`
	CompletionThreshold float64 `mapstructure:"completion_threshold"`
}

// IdleTimeout returns the controls idle window as a duration.
func (p PlayerConfig) IdleTimeout() time.Duration {
	return time.Duration(p.IdleTimeoutMS) * time.Millisecond
}

// Load reads configuration from a file named "config.yml" in the
// current directory and unmarshals it into a Config struct.
func Load() (*Config, error) {
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")    // or "yaml"
	viper.AddConfigPath(".")      // looking for config in the current directory

	// --- Environment Variable Overrides ---
	// e.g., CINEVAULT_DATABASE_PATH will override the `database.path` key.
	viper.SetEnvPrefix("CINEVAULT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error and use defaults
		} else {
			// Config file was found but another error was produced
			return nil, err
		}
	}

	return unmarshal()
}

func setDefaults() {
	viper.SetDefault("port", 8080)
	viper.SetDefault("database.path", "./cinevault.db")

	viper.SetDefault("bridge.url", "ws://localhost:8080/api/ws")
	viper.SetDefault("bridge.dial_attempts", 3)
	viper.SetDefault("bridge.version_constraint", "^1.0.0")

	viper.SetDefault("player.seek_step", 10.0)
	viper.SetDefault("player.volume_step", 0.1)
	viper.SetDefault("player.idle_timeout_ms", 3000)
	viper.SetDefault("player.autoplay", true)
	viper.SetDefault("player.checkpoint_mode", "quantized")
	viper.SetDefault("player.checkpoint_interval", 5.0)
	viper.SetDefault("player.completion_threshold", 95.0)

	viper.SetDefault("jobs.stats_interval", 0)

	viper.SetDefault("log.file", "")
	viper.SetDefault("log.max_size", 10)
	viper.SetDefault("log.max_backups", 3)
	viper.SetDefault("log.max_age", 28)
	viper.SetDefault("log.compress", false)
}

func unmarshal() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// Watch reloads the configuration whenever config.yml changes on disk and
// passes the fresh values to onChange. It is a no-op when Load found no file.
func Watch(onChange func(*Config)) {
	if viper.ConfigFileUsed() == "" {
		return
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := unmarshal()
		if err != nil {
			log.Printf("Ignoring config change in %s: %v", e.Name, err)
			return
		}
		log.Printf("Configuration reloaded from %s", e.Name)
		onChange(cfg)
	})
	viper.WatchConfig()
}
