// internal/app/app.go
package app

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/llehouerou/remoteplay/internal/config"
	"github.com/llehouerou/remoteplay/internal/keymap"
	"github.com/llehouerou/remoteplay/internal/playback"
	"github.com/llehouerou/remoteplay/internal/player"
)

// Options configures a Model.
type Options struct {
	Playback *playback.Controller
	Muter    player.Muter // optional
	Keys     *keymap.Resolver
	Log      *zap.Logger
	Stream   config.StreamConfig
}

// Model is the root application model.
type Model struct {
	Playback *playback.Controller
	Muter    player.Muter
	Keys     *keymap.Resolver
	Log      *zap.Logger
	Spinner  spinner.Model

	URL        string
	Volume     float64
	VolumeStep float64
	ScrubStep  float64
	// Controls is the last control vector published by the controller. Key
	// handlers query the controller directly.
	Controls playback.Controls
	// Scrub is the slider value while the user drags the seek control.
	Scrub    float64
	ErrorMsg string
	Width    int
	Height   int

	sub      *playback.Subscription
	spinning bool
}

// New creates the application model. Playback starts when the program runs.
func New(opts Options) Model {
	keys := opts.Keys
	if keys == nil {
		keys = keymap.Default()
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#a78bfa"))

	return Model{
		Playback:   opts.Playback,
		Muter:      opts.Muter,
		Keys:       keys,
		Log:        log,
		Spinner:    s,
		URL:        opts.Stream.URL,
		Volume:     opts.Stream.Volume,
		VolumeStep: opts.Stream.VolumeStep,
		ScrubStep:  opts.Stream.ScrubStep,
		Controls:   opts.Playback.Controls(),
		sub:        opts.Playback.Subscribe(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(StartCmd(), m.WatchEvents())
}
