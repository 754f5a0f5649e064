package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "remoteplay"

// DefaultURL is the track streamed when no URL is configured.
const DefaultURL = "http://goo.gl/oxlCUq"

type Config struct {
	Stream StreamConfig `koanf:"stream"`
	HTTP   HTTPConfig   `koanf:"http"`
	Log    LogConfig    `koanf:"log"`
}

// StreamConfig holds what to play and how often to redraw.
type StreamConfig struct {
	URL             string        `koanf:"url"`
	RefreshInterval time.Duration `koanf:"refresh_interval"` // e.g. "100ms"
	Volume          float64       `koanf:"volume"`           // initial volume, 0.0-1.0
	VolumeStep      float64       `koanf:"volume_step"`      // per key press
	ScrubStep       float64       `koanf:"scrub_step"`       // slider fraction per key press
}

// HTTPConfig holds fetch settings for the remote track.
type HTTPConfig struct {
	RetryMax int           `koanf:"retry_max"`
	Timeout  time.Duration `koanf:"timeout"`
	MaxBytes int64         `koanf:"max_bytes"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	File        string `koanf:"file"`  // empty means the XDG state dir
	Level       string `koanf:"level"` // debug, info, warn, error
	Development bool   `koanf:"development"`
}

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths())
}

// LoadFrom reads the given files in order; later files override earlier ones.
// Missing files are skipped.
func LoadFrom(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/remoteplay/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetStreamConfig returns the stream configuration with defaults applied.
func (c *Config) GetStreamConfig() StreamConfig {
	cfg := c.Stream

	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = 100 * time.Millisecond
	}
	if cfg.Volume <= 0 || cfg.Volume > 1 {
		cfg.Volume = 1
	}
	if cfg.VolumeStep <= 0 || cfg.VolumeStep > 1 {
		cfg.VolumeStep = 0.05
	}
	if cfg.ScrubStep <= 0 || cfg.ScrubStep > 1 {
		cfg.ScrubStep = 0.02
	}

	return cfg
}

// GetHTTPConfig returns the HTTP configuration with defaults applied.
func (c *Config) GetHTTPConfig() HTTPConfig {
	cfg := c.HTTP

	if cfg.RetryMax <= 0 {
		cfg.RetryMax = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 256 << 20
	}

	return cfg
}
