// Package app is the root Bubble Tea model of the terminal front-end.
package app

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/reel/internal/config"
	"github.com/llehouerou/reel/internal/convert"
	"github.com/llehouerou/reel/internal/keymap"
	"github.com/llehouerou/reel/internal/logging"
	"github.com/llehouerou/reel/internal/notify"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/state"
	"github.com/llehouerou/reel/internal/ui/jobbar"
	"github.com/llehouerou/reel/internal/ui/playerbar"
	"github.com/llehouerou/reel/internal/ui/playlistpanel"
	"github.com/llehouerou/reel/internal/ui/popup"
)

// Deps holds the collaborators the model is built from.
type Deps struct {
	Service   playback.Service
	State     state.Interface
	Converter *convert.Converter
	Notifier  notify.Notifier // nil means no notifications
	Config    *config.Config
	Logger    *slog.Logger
}

// Model is the root application model. It mirrors the playback service
// and never changes the playlist itself.
type Model struct {
	ctx        context.Context
	svc        playback.Service
	sub        *playback.Subscription
	stateMgr   state.Interface
	converter  *convert.Converter
	notifier   notify.Notifier
	convertCfg config.ConvertConfig
	logger     *slog.Logger
	keys       *keymap.Resolver

	panel  playlistpanel.Model
	player playerbar.State
	jobs   jobbar.State
	popup  popup.Popup

	errorMsg string
	now      time.Time
	width    int
	height   int
}

// New creates the root model and subscribes to the service.
func New(ctx context.Context, d Deps) Model {
	cfg := d.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	logger := d.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	notifier := d.Notifier
	if notifier == nil {
		notifier = notify.Nop()
	}
	converter := d.Converter
	if converter == nil {
		converter = convert.NewConverter(convert.WithFFmpeg(cfg.FFmpegPath), convert.WithLogger(logger))
	}

	m := Model{
		ctx:        ctx,
		svc:        d.Service,
		sub:        d.Service.Subscribe(),
		stateMgr:   d.State,
		converter:  converter,
		notifier:   notifier,
		convertCfg: cfg.GetConvertConfig(),
		logger:     logger,
		keys:       keymap.NewResolver(keymap.Bindings),
		panel:      playlistpanel.New(),
		now:        time.Now(),
	}
	m.panel.SetFocused(true)
	m.refresh()
	m.panel.SyncCursor()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.WatchServiceEvents(), TickCmd())
}

// refresh copies the service state into the surfaces.
func (m *Model) refresh() {
	snap := m.svc.Snapshot()
	m.panel.SetSnapshot(snap)
	m.player = playerbar.NewState(snap)
}

// ErrorMsg returns the error line currently displayed.
func (m Model) ErrorMsg() string {
	return m.errorMsg
}

// Jobs returns the job bar state.
func (m Model) Jobs() jobbar.State {
	return m.jobs
}

// Popup returns the open popup, or nil.
func (m Model) Popup() popup.Popup {
	return m.popup
}
