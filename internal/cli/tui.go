package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"golang.org/x/text/language"

	"github.com/llehouerou/reel/internal/app"
	"github.com/llehouerou/reel/internal/config"
	"github.com/llehouerou/reel/internal/convert"
	"github.com/llehouerou/reel/internal/errmsg"
	"github.com/llehouerou/reel/internal/media"
	"github.com/llehouerou/reel/internal/mpris"
	"github.com/llehouerou/reel/internal/notify"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/playlist"
	"github.com/llehouerou/reel/internal/state"
	"github.com/llehouerou/reel/internal/watch"
)

func runTUI(ctx context.Context, cfg *config.Config, args []string) error {
	logger := slog.Default()

	stateMgr, err := state.Open()
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpInitialize, err)
	}
	defer stateMgr.Close()

	svc, err := newService(cfg, stateMgr, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := restoreSession(ctx, svc, stateMgr, args); err != nil {
		if len(args) > 0 {
			return err
		}
		logger.Warn(errmsg.Format(errmsg.OpSessionLoad, err))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.WatchEnabled() {
		if w, err := watch.New(svc, logger); err != nil {
			logger.Warn(errmsg.Format(errmsg.OpWatchFiles, err))
		} else {
			go func() { _ = w.Run(ctx) }()
		}
	}

	if adapter, err := mpris.New(svc); err != nil {
		logger.Info("mpris unavailable", "err", err)
	} else {
		defer adapter.Close()
	}

	notifier := notify.Nop()
	if cfg.NotificationsEnabled() {
		if n, err := notify.New(); err != nil {
			logger.Info("notifications unavailable", "err", err)
		} else {
			notifier = n
		}
	}

	converter := convert.NewConverter(convert.WithFFmpeg(cfg.FFmpegPath), convert.WithLogger(logger))
	defer converter.Cancel()

	model := app.New(ctx, app.Deps{
		Service:   svc,
		State:     stateMgr,
		Converter: converter,
		Notifier:  notifier,
		Config:    cfg,
		Logger:    logger,
	})

	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// newService builds the playback service with the saved sort order and
// shuffle mode, persisting the session after every change.
func newService(cfg *config.Config, st state.Interface, logger *slog.Logger) (playback.Service, error) {
	pcfg := cfg.GetPlaylistConfig()

	settings, err := st.GetSettings()
	if err != nil {
		logger.Warn(errmsg.Format(errmsg.OpSettingsLoad, err))
		defaults := state.DefaultSettings()
		settings = &defaults
	}

	order, err := playlist.ParseSortOrder(settings.SortOrder)
	if err != nil {
		order = playlist.SortOrder(pcfg.SortOrder)
	}

	tag, err := language.Parse(pcfg.Language)
	if err != nil {
		logger.Warn("unknown playlist language", "language", pcfg.Language, "err", err)
		tag = language.Und
	}

	svc := playback.New(
		playlist.NewQueue(playlist.WithCollation(tag)),
		playback.WithLogger(logger),
		playback.WithSortOrder(order),
		playback.WithPersister(func(paths []string, current int) {
			st.SaveSession(state.Session{Paths: paths, CurrentIndex: current, SavedAt: time.Now()})
		}),
	)

	if settings.Shuffle || pcfg.Shuffle {
		if err := svc.SetShuffle(true); err != nil {
			_ = svc.Close()
			return nil, err
		}
	}
	return svc, nil
}

// restoreSession loads args, or the saved session when args is empty.
// Saved files that no longer exist are skipped and the restored session
// starts stopped on its saved current file.
func restoreSession(ctx context.Context, svc playback.Service, st state.Interface, args []string) error {
	if len(args) > 0 {
		return svc.Dispatch(ctx, playback.DropFiles{Paths: args})
	}

	sess, err := st.GetSession()
	if err != nil {
		return err
	}
	if sess.IsEmpty() {
		return nil
	}

	var current string
	if sess.CurrentIndex >= 0 && sess.CurrentIndex < len(sess.Paths) {
		current = media.Abs(sess.Paths[sess.CurrentIndex])
	}
	paths := lo.Filter(sess.Paths, func(p string, _ int) bool {
		_, err := os.Stat(p)
		return err == nil
	})
	if len(paths) == 0 {
		return nil
	}

	if err := svc.Dispatch(ctx, playback.DropFiles{Paths: paths}); err != nil {
		return err
	}
	_, idx, ok := lo.FindIndexOf(svc.Files(), func(f media.File) bool { return f.FullPath == current })
	if ok && idx != svc.CurrentIndex() {
		if err := svc.Dispatch(ctx, playback.SelectAbsolute{Index: idx}); err != nil {
			return err
		}
	}
	return svc.Dispatch(ctx, playback.SetPlayState{State: playback.StateStopped})
}
