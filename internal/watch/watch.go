// Package watch drops playlist files that disappear from disk while reel runs.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/llehouerou/reel/internal/media"
	"github.com/llehouerou/reel/internal/playback"
)

// Watcher follows the directories holding playlist files.
type Watcher struct {
	fs     *fsnotify.Watcher
	svc    playback.Service
	sub    *playback.Subscription
	logger *slog.Logger

	dirs map[string]bool
}

// New creates a watcher for svc's playlist. Call Run to start it.
func New(svc playback.Service, logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		fs:     fw,
		svc:    svc,
		sub:    svc.Subscribe(),
		logger: logger,
		dirs:   make(map[string]bool),
	}, nil
}

// Run watches until ctx is done or the service closes. It closes the
// underlying watcher on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	w.sync()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.sub.Done:
			return nil

		// Playlist changes move the set of watched directories
		case <-w.sub.PlaylistChanged:
			w.sync()
		case <-w.sub.Removed:
			w.sync()
		case <-w.sub.Renamed:
			w.sync()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	if !shouldRemove(event.Op) || !media.IsMediaFile(event.Name) {
		return
	}
	id := media.EncodeID(media.Abs(event.Name))
	w.logger.Info("playlist file gone", "path", event.Name, "op", event.Op.String())
	if err := w.svc.Dispatch(ctx, playback.Remove{IDs: []string{id}}); err != nil {
		w.logger.Warn("dropping vanished file failed", "path", event.Name, "error", err)
	}
}

// sync watches exactly the directories of the current playlist files.
func (w *Watcher) sync() {
	want := make(map[string]bool)
	for _, f := range w.svc.Files() {
		want[filepath.Dir(f.FullPath)] = true
	}

	for dir := range w.dirs {
		if !want[dir] {
			_ = w.fs.Remove(dir)
			delete(w.dirs, dir)
		}
	}
	for dir := range want {
		if w.dirs[dir] {
			continue
		}
		if err := w.fs.Add(dir); err != nil {
			w.logger.Warn("cannot watch directory", "dir", dir, "error", err)
			continue
		}
		w.dirs[dir] = true
	}
}

// Watched returns the number of watched directories.
func (w *Watcher) Watched() int {
	return len(w.fs.WatchList())
}

func shouldRemove(op fsnotify.Op) bool {
	return op&(fsnotify.Rename|fsnotify.Remove) != 0
}
