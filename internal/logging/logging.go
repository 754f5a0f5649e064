// Package logging builds the application's zap logger.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"go.uber.org/zap"
)

const defaultLogFile = "remoteplay/remoteplay.log"

// Options configures the logger.
type Options struct {
	File        string // empty means the XDG state dir
	Level       string // debug, info, warn, error
	Development bool   // development mode panics on DPanic
}

// New creates a logger writing to a file. The terminal belongs to the TUI,
// so nothing is written to stdout or stderr.
func New(opts Options) (*zap.Logger, error) {
	path, err := resolvePath(opts.File)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	if opts.Development {
		cfg = zap.NewDevelopmentConfig()
	}
	if opts.Level != "" {
		level, err := zap.ParseAtomicLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		cfg.Level = level
	}
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	return cfg.Build()
}

func resolvePath(file string) (string, error) {
	if file == "" {
		return xdg.StateFile(defaultLogFile)
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return "", err
	}
	return file, nil
}
