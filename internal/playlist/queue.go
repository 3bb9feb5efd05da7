package playlist

import (
	"math/rand/v2"
	"time"

	"golang.org/x/text/language"

	"github.com/llehouerou/reel/internal/media"
)

// PlayingQueue wraps a Playlist with the playback index, shuffle walk
// and selection. It is not safe for concurrent use; the playback service
// serializes access.
type PlayingQueue struct {
	playlist     *Playlist
	currentIndex int // -1 if nothing current
	selection    *Selection

	shuffle bool
	deck    *shuffleDeck // nil when the walk must be dealt again
	rng     *rand.Rand

	collation language.Tag
}

// Option configures a PlayingQueue.
type Option func(*PlayingQueue)

// WithRand sets the random source used for shuffle walks.
func WithRand(r *rand.Rand) Option {
	return func(q *PlayingQueue) { q.rng = r }
}

// WithCollation sets the language used to compare names when sorting.
func WithCollation(tag language.Tag) Option {
	return func(q *PlayingQueue) { q.collation = tag }
}

// NewQueue creates a new empty playing queue.
func NewQueue(opts ...Option) *PlayingQueue {
	now := uint64(time.Now().UnixNano())
	q := &PlayingQueue{
		playlist:     NewPlaylist(),
		currentIndex: -1,
		selection:    NewSelection(),
		rng:          rand.New(rand.NewPCG(now, now>>32)),
		collation:    language.Und,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// RemoveResult describes the outcome of RemoveByIDs.
type RemoveResult struct {
	RemovedIDs []string // in former playlist order
	Reload     bool     // the current file was removed
	Index      int      // current index after removal
}

// Current returns the current file, or media.Empty if none.
func (q *PlayingQueue) Current() media.File {
	f, ok := q.playlist.File(q.currentIndex)
	if !ok {
		return media.Empty
	}
	return f
}

// CurrentIndex returns the index of the current file (-1 if none).
func (q *PlayingQueue) CurrentIndex() int {
	return q.currentIndex
}

// InitFiles clears the queue and fills it with files in order.
func (q *PlayingQueue) InitFiles(files []media.File) {
	q.playlist.Clear()
	q.selection.Clear()
	q.deck = nil
	q.currentIndex = -1

	q.playlist.Add(files...)
	if q.playlist.Len() > 0 {
		q.currentIndex = 0
	}
}

// RemoveAll resets the queue to empty.
func (q *PlayingQueue) RemoveAll() {
	q.InitFiles(nil)
}

// AddFiles appends files not already present and returns those added.
// reload is true when the queue was empty, in which case the first added
// file becomes current.
func (q *PlayingQueue) AddFiles(files []media.File) (added []media.File, reload bool) {
	wasEmpty := q.playlist.Len() == 0
	added = q.playlist.Add(files...)
	if len(added) == 0 {
		return added, false
	}

	q.deck = nil
	if wasEmpty {
		q.currentIndex = 0
		return added, true
	}
	return added, false
}

// ChangeIndex moves the current index by delta, wrapping at both ends.
// With shuffle on, each step follows the shuffle walk instead.
// Returns false if the queue is empty.
func (q *PlayingQueue) ChangeIndex(delta int) bool {
	n := q.playlist.Len()
	if n == 0 {
		return false
	}

	if q.shuffle && delta != 0 {
		q.walk(delta)
		return true
	}

	idx := q.currentIndex + delta
	if idx < 0 {
		idx = n - 1
	} else if idx >= n {
		idx = 0
	}
	q.currentIndex = idx
	return true
}

func (q *PlayingQueue) walk(delta int) {
	n := q.playlist.Len()
	if q.currentIndex < 0 {
		q.currentIndex = 0
	}
	if q.deck == nil || q.deck.len() != n-1 {
		q.deck = deal(q.rng, n, q.currentIndex)
	}
	if q.deck.len() == 0 {
		return
	}

	for ; delta > 0; delta-- {
		q.currentIndex = q.deck.forward(q.currentIndex)
	}
	for ; delta < 0; delta++ {
		q.currentIndex = q.deck.backward(q.currentIndex)
	}
}

// SelectIndex jumps to an absolute index.
func (q *PlayingQueue) SelectIndex(index int) error {
	if index < 0 || index >= q.playlist.Len() {
		return ErrIndexOutOfRange
	}
	if q.deck != nil && index != q.currentIndex {
		q.deck.swap(index, q.currentIndex)
	}
	q.currentIndex = index
	return nil
}

// Reorder moves the file at start to end and sets the current index to
// newCurrent, as computed by the caller. A move onto itself is a no-op.
// newCurrent may only be -1 when no file was current before the move.
func (q *PlayingQueue) Reorder(start, end, newCurrent int) error {
	n := q.playlist.Len()
	if start < 0 || start >= n || end < 0 || end >= n {
		return ErrIndexOutOfRange
	}
	if start == end {
		return nil
	}
	if newCurrent < -1 || newCurrent >= n {
		return ErrIndexOutOfRange
	}
	if newCurrent == -1 && q.currentIndex >= 0 {
		return ErrIndexOutOfRange
	}

	q.playlist.Move(start, end)
	q.currentIndex = newCurrent
	q.deck = nil
	return nil
}

// RemoveByIDs removes every file whose id is in ids in a single pass and
// rebases the current index.
func (q *PlayingQueue) RemoveByIDs(ids []string) RemoveResult {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}

	order := q.playlist.IDs()
	positions := q.playlist.RemoveIDs(set)
	if len(positions) == 0 {
		return RemoveResult{Index: q.currentIndex}
	}

	removed := make([]string, len(positions))
	currentRemoved := false
	preceding := 0
	for i, pos := range positions {
		removed[i] = order[pos]
		if pos == q.currentIndex {
			currentRemoved = true
		}
		if pos < q.currentIndex {
			preceding++
		}
	}

	q.selection.Remove(removed...)
	q.deck = nil

	if currentRemoved {
		q.currentIndex = min(positions[0], q.playlist.Len()-1)
	} else {
		q.currentIndex -= preceding
	}

	return RemoveResult{
		RemovedIDs: removed,
		Reload:     currentRemoved,
		Index:      q.currentIndex,
	}
}

// Sort reorders the queue and returns the new id order. The current file
// stays current; only its index changes.
func (q *PlayingQueue) Sort(order SortOrder) []string {
	currentID := q.Current().ID

	q.playlist.Sort(order, q.collation)
	q.deck = nil
	if currentID != "" {
		q.currentIndex = q.playlist.IndexOf(currentID)
	}
	return q.playlist.IDs()
}

// Rename replaces the file identified by id with f, keeping its position.
func (q *PlayingQueue) Rename(id string, f media.File) error {
	if err := q.playlist.Replace(id, f); err != nil {
		return err
	}
	if q.selection.Has(id) {
		q.selection.Remove(id)
		q.selection.Add(f.ID)
	}
	return nil
}

// Shuffle returns whether shuffle is enabled.
func (q *PlayingQueue) Shuffle() bool {
	return q.shuffle
}

// SetShuffle enables or disables shuffle. Enabling always starts a fresh walk.
func (q *PlayingQueue) SetShuffle(enabled bool) {
	q.shuffle = enabled
	q.deck = nil
}

// ToggleShuffle flips shuffle and returns the new state.
func (q *PlayingQueue) ToggleShuffle() bool {
	q.SetShuffle(!q.shuffle)
	return q.shuffle
}

// Select adds id to the selection if it is in the queue.
func (q *PlayingQueue) Select(id string) {
	if q.playlist.Contains(id) {
		q.selection.Add(id)
	}
}

// ToggleSelected flips the selection state of id.
func (q *PlayingQueue) ToggleSelected(id string) bool {
	if !q.playlist.Contains(id) {
		return false
	}
	return q.selection.Toggle(id)
}

// SelectRange selects every file between from and to inclusive.
func (q *PlayingQueue) SelectRange(from, to int) {
	if from > to {
		from, to = to, from
	}
	for i := max(from, 0); i <= to && i < q.playlist.Len(); i++ {
		f, _ := q.playlist.File(i)
		q.selection.Add(f.ID)
	}
}

// IsSelected reports whether id is selected.
func (q *PlayingQueue) IsSelected(id string) bool {
	return q.selection.Has(id)
}

// ClearSelection deselects everything.
func (q *PlayingQueue) ClearSelection() {
	q.selection.Clear()
}

// SelectedIDs returns the selected ids in playlist order.
func (q *PlayingQueue) SelectedIDs() []string {
	return q.selection.Ordered(q.playlist.IDs())
}

// Snapshot captures files and current index for history.
func (q *PlayingQueue) Snapshot() Snapshot {
	return Snapshot{Files: q.playlist.Files(), Index: q.currentIndex}
}

// Restore replaces the queue contents with s.
func (q *PlayingQueue) Restore(s Snapshot) {
	q.playlist.Clear()
	q.playlist.Add(s.Files...)
	q.selection.Clear()
	q.deck = nil
	q.currentIndex = s.Index
	if q.currentIndex >= q.playlist.Len() || q.currentIndex < -1 {
		q.currentIndex = q.playlist.Len() - 1
	}
	if q.currentIndex < 0 && q.playlist.Len() > 0 {
		q.currentIndex = 0
	}
}

// Files returns all files in queue order.
func (q *PlayingQueue) Files() []media.File {
	return q.playlist.Files()
}

// IDs returns all ids in queue order.
func (q *PlayingQueue) IDs() []string {
	return q.playlist.IDs()
}

// Lookup returns the file with the given id.
func (q *PlayingQueue) Lookup(id string) (media.File, bool) {
	return q.playlist.Lookup(id)
}

// IndexOf returns the position of id, or -1.
func (q *PlayingQueue) IndexOf(id string) int {
	return q.playlist.IndexOf(id)
}

// Len returns the number of files in the queue.
func (q *PlayingQueue) Len() int {
	return q.playlist.Len()
}

// IsEmpty returns true if the queue has no files.
func (q *PlayingQueue) IsEmpty() bool {
	return q.playlist.Len() == 0
}
