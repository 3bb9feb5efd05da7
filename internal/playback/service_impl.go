// internal/playback/service_impl.go
package playback

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/llehouerou/reel/internal/errmsg"
	"github.com/llehouerou/reel/internal/media"
	"github.com/llehouerou/reel/internal/playlist"
)

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

const defaultHistorySize = 50

type request struct {
	intent Intent
	reply  chan error
}

type serviceImpl struct {
	mu sync.RWMutex

	queue   *playlist.PlayingQueue
	history *playlist.QueueHistory
	state   State
	order   playlist.SortOrder
	logger  *slog.Logger
	persist Persister

	requests chan request

	subs   []*Subscription
	subsMu sync.RWMutex

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// Option configures the service.
type Option func(*serviceImpl)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *serviceImpl) { s.logger = l }
}

// WithSortOrder sets the sort order reported before any Sort intent.
func WithSortOrder(o playlist.SortOrder) Option {
	return func(s *serviceImpl) { s.order = o }
}

// WithPersister sets the hook receiving the session after each change.
func WithPersister(p Persister) Option {
	return func(s *serviceImpl) { s.persist = p }
}

// WithHistorySize sets how many playlist states undo can go back through.
func WithHistorySize(n int) Option {
	return func(s *serviceImpl) {
		if n > 0 {
			s.history = playlist.NewQueueHistory(n)
		}
	}
}

// New creates a playback service owning q and starts its dispatch loop.
func New(q *playlist.PlayingQueue, opts ...Option) Service {
	s := &serviceImpl{
		queue:    q,
		history:  playlist.NewQueueHistory(defaultHistorySize),
		logger:   slog.Default(),
		requests: make(chan request),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.history.Push(q.Snapshot())

	s.wg.Add(1)
	go s.run()
	return s
}

func (s *serviceImpl) run() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case req := <-s.requests:
			req.reply <- s.apply(req.intent)
		}
	}
}

// Dispatch implements Service.
func (s *serviceImpl) Dispatch(ctx context.Context, in Intent) error {
	if err := in.Validate(); err != nil {
		return err
	}

	req := request{intent: in, reply: make(chan error, 1)}
	select {
	case s.requests <- req:
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-req.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *serviceImpl) apply(in Intent) error {
	s.logger.Debug("applying intent", "intent", fmt.Sprintf("%T", in))

	switch in := in.(type) {
	case DropFiles:
		return s.drop(in)
	case Navigate:
		return s.navigate(in.Delta)
	case SelectAbsolute:
		return s.selectIndex(in.Index)
	case Reorder:
		return s.reorder(in)
	case Remove:
		return s.remove(in.IDs)
	case RemoveAll:
		return s.removeAll()
	case Sort:
		return s.sort(in.Order)
	case ToggleShuffle:
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.setShuffleLocked(!s.queue.Shuffle())
	case SetShuffle:
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.setShuffleLocked(in.Enabled)
	case Rename:
		return s.rename(in)
	case SetSelection:
		return s.setSelection(in.IDs)
	case Undo:
		return s.restore(s.history.Undo)
	case Redo:
		return s.restore(s.history.Redo)
	case SetPlayState:
		s.mu.Lock()
		defer s.mu.Unlock()
		s.setStateLocked(in.State)
		return nil
	case TogglePlay:
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.state == StatePlaying {
			s.setStateLocked(StatePaused)
		} else {
			s.setStateLocked(StatePlaying)
		}
		return nil
	default:
		return fmt.Errorf("%w: unsupported intent %T", ErrInvalidIntent, in)
	}
}

func (s *serviceImpl) drop(in DropFiles) error {
	paths, err := media.Collect(in.Paths)
	if err != nil {
		s.fail(errmsg.OpPlaylistLoad, pathOf(err), err)
		return err
	}
	if len(paths) == 0 && len(in.Paths) > 0 {
		err := ErrNoMediaFiles
		s.fail(errmsg.OpPlaylistLoad, "", err)
		return err
	}
	files, err := media.ToFiles(paths)
	if err != nil {
		s.fail(errmsg.OpPlaylistLoad, pathOf(err), err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !in.Append {
		s.queue.InitFiles(files)
		s.pushHistoryLocked()
		s.broadcast(func(sub *Subscription) {
			sub.sendPlaylist(PlaylistChange{Clear: true, Added: s.queue.Files()})
		})
		s.emitCurrentLocked(!s.queue.IsEmpty())
		return nil
	}

	added, reload := s.queue.AddFiles(files)
	if len(added) == 0 {
		return nil
	}
	s.pushHistoryLocked()
	s.broadcast(func(sub *Subscription) {
		sub.sendPlaylist(PlaylistChange{Added: added})
	})
	if reload {
		s.emitCurrentLocked(true)
	}
	s.logger.Info("files added", "count", len(added), "total", s.queue.Len())
	return nil
}

func (s *serviceImpl) navigate(delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.queue.ChangeIndex(delta) {
		return nil
	}
	s.emitCurrentLocked(true)
	s.persistLocked()
	return nil
}

func (s *serviceImpl) selectIndex(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.queue.SelectIndex(index); err != nil {
		return fmt.Errorf("select %d of %d: %w", index, s.queue.Len(), err)
	}
	s.emitCurrentLocked(true)
	s.persistLocked()
	return nil
}

func (s *serviceImpl) reorder(in Reorder) error {
	if in.Start == in.End {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.queue.Reorder(in.Start, in.End, in.NewCurrent); err != nil {
		return fmt.Errorf("move %d to %d: %w", in.Start, in.End, err)
	}
	s.pushHistoryLocked()
	change := OrderChange{IDs: s.queue.IDs(), Index: s.queue.CurrentIndex()}
	s.broadcast(func(sub *Subscription) { sub.sendOrder(change) })
	return nil
}

func (s *serviceImpl) remove(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(ids) == 0 {
		ids = s.queue.SelectedIDs()
	}
	if len(ids) == 0 {
		return nil
	}

	res := s.queue.RemoveByIDs(ids)
	if len(res.RemovedIDs) == 0 {
		return nil
	}
	s.pushHistoryLocked()

	removed := RemoveChange{IDs: res.RemovedIDs, Index: res.Index}
	selection := SelectionChange{IDs: s.queue.SelectedIDs()}
	s.broadcast(func(sub *Subscription) {
		sub.sendRemoved(removed)
		sub.sendSelection(selection)
	})
	if res.Reload {
		s.emitCurrentLocked(s.state == StatePlaying)
	}
	s.logger.Info("files removed", "count", len(res.RemovedIDs), "reload", res.Reload)
	return nil
}

func (s *serviceImpl) removeAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue.RemoveAll()
	s.pushHistoryLocked()
	s.broadcast(func(sub *Subscription) {
		sub.sendPlaylist(PlaylistChange{Clear: true})
	})
	s.emitCurrentLocked(false)
	return nil
}

func (s *serviceImpl) sort(order playlist.SortOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.queue.Sort(order)
	s.order = order
	s.pushHistoryLocked()

	change := OrderChange{IDs: ids, Index: s.queue.CurrentIndex(), Order: order}
	mode := ModeChange{Shuffle: s.queue.Shuffle(), Order: order}
	s.broadcast(func(sub *Subscription) {
		sub.sendOrder(change)
		sub.sendMode(mode)
	})
	return nil
}

func (s *serviceImpl) setShuffleLocked(enabled bool) error {
	s.queue.SetShuffle(enabled)
	mode := ModeChange{Shuffle: enabled, Order: s.order}
	s.broadcast(func(sub *Subscription) { sub.sendMode(mode) })
	return nil
}

func (s *serviceImpl) rename(in Rename) error {
	s.mu.RLock()
	old, ok := s.queue.Lookup(in.ID)
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("rename: %w", playlist.ErrNotFound)
	}

	renamed, err := renameOnDisk(old, in.NewName)
	if err != nil {
		s.renameFailed(old, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if renamed.ID != old.ID {
		if err := s.queue.Rename(old.ID, renamed); err != nil {
			s.renameFailed(old, err)
			return err
		}
		// Saved states still point at the old path
		s.history.Reset()
		s.pushHistoryLocked()
	}

	result := RenameResult{PreviousID: old.ID, File: renamed}
	s.broadcast(func(sub *Subscription) { sub.sendRenamed(result) })
	s.logger.Info("file renamed", "from", old.FullPath, "to", renamed.FullPath)
	return nil
}

func (s *serviceImpl) renameFailed(old media.File, err error) {
	result := RenameResult{PreviousID: old.ID, File: old, Err: err}
	s.broadcast(func(sub *Subscription) { sub.sendRenamed(result) })
	s.fail(errmsg.OpPlaylistRename, old.Name, err)
}

// renameOnDisk moves f to newName in the same directory. The original
// extension is kept when newName has none.
func renameOnDisk(f media.File, newName string) (media.File, error) {
	name := strings.TrimSpace(newName)
	if filepath.Ext(name) == "" {
		name += filepath.Ext(f.FullPath)
	}
	target := filepath.Join(filepath.Dir(f.FullPath), name)
	if target == f.FullPath {
		return f, nil
	}

	if _, err := os.Stat(target); err == nil {
		return f, fmt.Errorf("%s: %w", name, fs.ErrExist)
	}
	if err := os.Rename(f.FullPath, target); err != nil {
		return f, err
	}
	renamed, err := media.ToFile(target)
	if err != nil {
		return f, err
	}
	return renamed, nil
}

func (s *serviceImpl) setSelection(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue.ClearSelection()
	for _, id := range lo.Uniq(ids) {
		s.queue.Select(id)
	}
	change := SelectionChange{IDs: s.queue.SelectedIDs()}
	s.broadcast(func(sub *Subscription) { sub.sendSelection(change) })
	return nil
}

func (s *serviceImpl) restore(step func() (playlist.Snapshot, bool)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := step()
	if !ok {
		return nil
	}
	previous := s.queue.Current().ID
	s.queue.Restore(snap)

	s.broadcast(func(sub *Subscription) {
		sub.sendPlaylist(PlaylistChange{Clear: true, Added: s.queue.Files()})
	})
	if s.queue.Current().ID != previous {
		s.emitCurrentLocked(s.state == StatePlaying)
	}
	s.persistLocked()
	return nil
}

// emitCurrentLocked broadcasts the current file and updates the play state.
func (s *serviceImpl) emitCurrentLocked(autoplay bool) {
	f := s.queue.Current()
	change := CurrentChange{File: f, Index: s.queue.CurrentIndex(), Autoplay: autoplay && !f.IsEmpty()}
	s.broadcast(func(sub *Subscription) { sub.sendCurrent(change) })

	switch {
	case f.IsEmpty():
		s.setStateLocked(StateStopped)
	case change.Autoplay:
		s.setStateLocked(StatePlaying)
	}
}

func (s *serviceImpl) setStateLocked(next State) {
	if next != StateStopped && s.queue.Current().IsEmpty() {
		next = StateStopped
	}
	if next == s.state {
		return
	}
	change := StateChange{Previous: s.state, Current: next}
	s.state = next
	s.broadcast(func(sub *Subscription) { sub.sendState(change) })
}

func (s *serviceImpl) pushHistoryLocked() {
	s.history.Push(s.queue.Snapshot())
	s.persistLocked()
}

func (s *serviceImpl) persistLocked() {
	if s.persist == nil {
		return
	}
	files := s.queue.Files()
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.FullPath
	}
	s.persist(paths, s.queue.CurrentIndex())
}

func (s *serviceImpl) fail(op errmsg.Op, path string, err error) {
	e := ErrorEvent{Op: op, Path: path, Err: err}
	s.logger.Warn("operation failed", "op", string(op), "path", path, "error", err)
	s.broadcast(func(sub *Subscription) { sub.sendError(e) })
}

func (s *serviceImpl) broadcast(fn func(*Subscription)) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		fn(sub)
	}
}

func pathOf(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Path
	}
	return ""
}

// Snapshot returns a consistent view of the whole service state.
func (s *serviceImpl) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Files:    s.queue.Files(),
		Index:    s.queue.CurrentIndex(),
		Shuffle:  s.queue.Shuffle(),
		Order:    s.order,
		Selected: s.queue.SelectedIDs(),
		State:    s.state,
	}
}

// State returns the current play state.
func (s *serviceImpl) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Current returns the current file, or media.Empty.
func (s *serviceImpl) Current() media.File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.Current()
}

// CurrentIndex returns the current index (-1 if none).
func (s *serviceImpl) CurrentIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.CurrentIndex()
}

// Files returns a copy of the playlist.
func (s *serviceImpl) Files() []media.File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.Files()
}

// Len returns the number of files.
func (s *serviceImpl) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.Len()
}

// IsEmpty returns true if the playlist has no files.
func (s *serviceImpl) IsEmpty() bool {
	return s.Len() == 0
}

// Shuffle returns whether shuffle is enabled.
func (s *serviceImpl) Shuffle() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.Shuffle()
}

// SortOrder returns the last applied sort order.
func (s *serviceImpl) SortOrder() playlist.SortOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.order
}

// SelectedIDs returns the selection in playlist order.
func (s *serviceImpl) SelectedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.SelectedIDs()
}

// CanUndo reports whether Undo would change the playlist.
func (s *serviceImpl) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.CanUndo()
}

// CanRedo reports whether Redo would change the playlist.
func (s *serviceImpl) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.CanRedo()
}

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Close stops the dispatch loop and closes all subscriptions.
func (s *serviceImpl) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.wg.Wait()

		s.subsMu.Lock()
		for _, sub := range s.subs {
			sub.close()
		}
		s.subs = nil
		s.subsMu.Unlock()
	})
	return nil
}
