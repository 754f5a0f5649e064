package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// Compile-time check against the retryablehttp contract.
var _ retryablehttp.LeveledLogger = (*Leveled)(nil)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	log, err := New(Options{File: path, Level: "debug"})
	require.NoError(t, err)

	log.Info("hello", zap.String("k", "v"))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), `"k":"v"`)
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := New(Options{File: path, Level: "warn"})
	require.NoError(t, err)

	log.Info("quiet")
	log.Warn("loud")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "quiet")
	assert.Contains(t, string(data), "loud")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Options{File: filepath.Join(t.TempDir(), "app.log"), Level: "chatty"})

	assert.Error(t, err)
}

func TestNew_DevelopmentPanicsOnDPanic(t *testing.T) {
	log, err := New(Options{File: filepath.Join(t.TempDir(), "app.log"), Development: true})
	require.NoError(t, err)

	assert.Panics(t, func() { log.DPanic("wiring bug") })
}

func TestLeveled_ForwardsKeyValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLeveled(zap.New(core))

	l.Debug("performing request", "method", "GET")
	l.Info("info")
	l.Warn("retrying", "attempt", 2)
	l.Error("giving up", "url", "http://example.com")

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "GET", entries[0].ContextMap()["method"])
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, int64(2), entries[2].ContextMap()["attempt"])
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}
