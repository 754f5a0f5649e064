package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/remoteplay/internal/app"
	"github.com/llehouerou/remoteplay/internal/clock"
	"github.com/llehouerou/remoteplay/internal/config"
	"github.com/llehouerou/remoteplay/internal/errmsg"
	"github.com/llehouerou/remoteplay/internal/logging"
	"github.com/llehouerou/remoteplay/internal/playback"
	"github.com/llehouerou/remoteplay/internal/player"
	"github.com/llehouerou/remoteplay/internal/stderr"
)

func main() {
	if err := run(); err != nil {
		stderr.WriteOriginal(err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}
	stream := cfg.GetStreamConfig()
	if len(os.Args) > 1 {
		stream.URL = os.Args[1]
	}

	log, err := logging.New(logging.Options{
		File:        cfg.Log.File,
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	defer func() { _ = log.Sync() }()

	// ALSA writes straight to fd 2 once the speaker opens
	if err := stderr.Start(func(line string) {
		log.Warn("audio backend", zap.String("line", line))
	}); err != nil {
		log.Warn("stderr capture unavailable", zap.Error(err))
	}
	defer stderr.Stop()

	httpCfg := cfg.GetHTTPConfig()
	fetcher := player.NewFetcher(player.FetchConfig{
		RetryMax: httpCfg.RetryMax,
		Timeout:  httpCfg.Timeout,
		MaxBytes: httpCfg.MaxBytes,
	}, log.Named("fetch"))
	engine := player.New(fetcher, log.Named("player"))
	defer engine.Close()
	engine.SetVolume(stream.Volume)

	ticker := clock.NewTicker()

	var prog *tea.Program
	ctrl := playback.New(engine, ticker,
		playback.WithLogger(log.Named("playback")),
		playback.WithDispatcher(app.Dispatcher(func() *tea.Program { return prog })),
		playback.WithRefreshInterval(stream.RefreshInterval),
	)
	defer ctrl.Teardown()

	model := app.New(app.Options{
		Playback: ctrl,
		Muter:    engine,
		Log:      log.Named("app"),
		Stream:   stream,
	})

	log.Info("starting", zap.String("url", stream.URL))
	prog = tea.NewProgram(model, tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
