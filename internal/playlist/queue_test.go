// internal/playlist/queue_test.go
//
//nolint:goconst // test file with repeated string literals
package playlist

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/reel/internal/media"
)

func seeded() Option {
	return WithRand(rand.New(rand.NewPCG(1, 2)))
}

func queueWith(n int, opts ...Option) (*PlayingQueue, []media.File) {
	files := make([]media.File, n)
	for i := range n {
		files[i] = file("/" + string(rune('a'+i)) + ".mp4")
	}
	q := NewQueue(opts...)
	q.InitFiles(files)
	return q, files
}

func TestNewQueue(t *testing.T) {
	q := NewQueue()

	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
	if q.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", q.CurrentIndex())
	}
	if !q.Current().IsEmpty() {
		t.Error("Current() should be empty for empty queue")
	}
}

func TestQueue_InitFiles(t *testing.T) {
	q, files := queueWith(3)
	q.Select(files[1].ID)

	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
	}

	q.InitFiles([]media.File{file("/x.mp4")})

	assert.Equal(t, 1, q.Len())
	assert.Equal(t, 0, q.CurrentIndex())
	assert.Empty(t, q.SelectedIDs())
}

func TestQueue_InitFiles_Empty(t *testing.T) {
	q, _ := queueWith(3)

	q.InitFiles(nil)

	assert.Equal(t, 0, q.Len())
	assert.Equal(t, -1, q.CurrentIndex())
}

func TestQueue_RemoveAll(t *testing.T) {
	q, _ := queueWith(3)

	q.RemoveAll()

	assert.True(t, q.IsEmpty())
	assert.Equal(t, -1, q.CurrentIndex())
}

func TestQueue_AddFiles(t *testing.T) {
	q, _ := queueWith(2)
	require.NoError(t, q.SelectIndex(1))

	added, reload := q.AddFiles([]media.File{file("/new.mp4")})

	assert.Len(t, added, 1)
	assert.False(t, reload, "non-empty queue should not reload")
	assert.Equal(t, 1, q.CurrentIndex())
	assert.Equal(t, 3, q.Len())
}

func TestQueue_AddFiles_ToEmpty(t *testing.T) {
	q := NewQueue()

	added, reload := q.AddFiles([]media.File{file("/a.mp4"), file("/b.mp4")})

	assert.Len(t, added, 2)
	assert.True(t, reload)
	assert.Equal(t, 0, q.CurrentIndex())
}

func TestQueue_AddFiles_SamePathTwice(t *testing.T) {
	q := NewQueue()

	q.AddFiles([]media.File{file("/a.mp4")})
	added, reload := q.AddFiles([]media.File{file("/a.mp4")})

	assert.Empty(t, added)
	assert.False(t, reload)
	assert.Equal(t, 1, q.Len())
}

func TestQueue_AddFiles_LockstepProperty(t *testing.T) {
	q := NewQueue()
	batches := [][]string{
		{"/a.mp4", "/b.mp4"},
		{"/b.mp4", "/c.mp4", "/c.mp4"},
		{"/a.mp4"},
		{"/d.mp4", "/a.mp4", "/e.mp4"},
	}
	for _, batch := range batches {
		files := make([]media.File, len(batch))
		for i, p := range batch {
			files[i] = file(p)
		}
		q.AddFiles(files)
		checkLockstep(t, q.playlist)
	}
	assert.Equal(t, 5, q.Len())
}

func TestQueue_ChangeIndex_Linear(t *testing.T) {
	tests := []struct {
		name  string
		start int
		delta int
		want  int
	}{
		{"next", 0, 1, 1},
		{"previous", 2, -1, 1},
		{"wrap backward", 0, -1, 2},
		{"wrap forward", 2, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, _ := queueWith(3)
			require.NoError(t, q.SelectIndex(tt.start))

			assert.True(t, q.ChangeIndex(tt.delta))
			assert.Equal(t, tt.want, q.CurrentIndex())
		})
	}
}

func TestQueue_ChangeIndex_Empty(t *testing.T) {
	q := NewQueue()

	assert.False(t, q.ChangeIndex(1))
	assert.Equal(t, -1, q.CurrentIndex())
}

func TestQueue_ChangeIndex_ShuffleVisitsEveryFile(t *testing.T) {
	q, _ := queueWith(6, seeded())
	q.SetShuffle(true)

	seen := map[int]bool{q.CurrentIndex(): true}
	for range 5 {
		q.ChangeIndex(1)
		seen[q.CurrentIndex()] = true
	}

	assert.Len(t, seen, 6, "a shuffle walk visits every file once before repeating")
}

func TestQueue_ChangeIndex_ShuffleRetracesHistory(t *testing.T) {
	q, _ := queueWith(4, seeded())
	require.NoError(t, q.SelectIndex(2))
	q.SetShuffle(true)

	var forward []int
	for range 3 {
		forward = append(forward, q.CurrentIndex())
		q.ChangeIndex(1)
	}
	for i := 2; i >= 0; i-- {
		q.ChangeIndex(-1)
		assert.Equal(t, forward[i], q.CurrentIndex(), "step back %d", 3-i)
	}
	assert.Equal(t, 2, q.CurrentIndex())
}

func TestQueue_ChangeIndex_ShuffleSingleFile(t *testing.T) {
	q, _ := queueWith(1, seeded())
	q.SetShuffle(true)

	q.ChangeIndex(1)
	assert.Equal(t, 0, q.CurrentIndex())
	q.ChangeIndex(-1)
	assert.Equal(t, 0, q.CurrentIndex())
}

func TestQueue_ShuffleDeckExcludesCurrent(t *testing.T) {
	q, _ := queueWith(5, seeded())
	q.SetShuffle(true)
	q.ChangeIndex(1)

	require.NotNil(t, q.deck)
	pending := q.deck.pending()
	assert.Len(t, pending, 4)
	assert.NotContains(t, pending, q.CurrentIndex())
}

func TestQueue_ShuffleRedealtAfterChange(t *testing.T) {
	q, _ := queueWith(4, seeded())
	q.SetShuffle(true)
	q.ChangeIndex(1)
	require.NotNil(t, q.deck)

	q.AddFiles([]media.File{file("/z.mp4")})
	assert.Nil(t, q.deck, "adding files invalidates the walk")

	q.ChangeIndex(1)
	assert.Equal(t, 4, q.deck.len())
}

func TestQueue_SelectIndex(t *testing.T) {
	q, files := queueWith(3)

	require.NoError(t, q.SelectIndex(2))
	assert.Equal(t, files[2].ID, q.Current().ID)
}

func TestQueue_SelectIndex_OutOfRange(t *testing.T) {
	q, _ := queueWith(3)
	require.NoError(t, q.SelectIndex(1))

	for _, idx := range []int{-1, 3, 99} {
		assert.ErrorIs(t, q.SelectIndex(idx), ErrIndexOutOfRange)
	}
	assert.Equal(t, 1, q.CurrentIndex(), "rejected jump leaves state untouched")
}

func TestQueue_SelectIndex_KeepsShuffleInvariant(t *testing.T) {
	q, _ := queueWith(5, seeded())
	q.SetShuffle(true)
	q.ChangeIndex(1)

	target := (q.CurrentIndex() + 2) % 5
	require.NoError(t, q.SelectIndex(target))

	pending := q.deck.pending()
	assert.Len(t, pending, 4)
	assert.NotContains(t, pending, target)
}

func TestQueue_Reorder(t *testing.T) {
	q, files := queueWith(4)
	require.NoError(t, q.SelectIndex(0))

	// Drag the current file (a) to the end; the UI reports its new index
	require.NoError(t, q.Reorder(0, 3, 3))

	ids := q.IDs()
	assert.Equal(t, []string{files[1].ID, files[2].ID, files[3].ID, files[0].ID}, ids)
	assert.Equal(t, 3, q.CurrentIndex())
	assert.Equal(t, files[0].ID, q.Current().ID)
}

func TestQueue_Reorder_SameIndex(t *testing.T) {
	q, _ := queueWith(4)
	before := q.IDs()

	require.NoError(t, q.Reorder(2, 2, 3))

	assert.Equal(t, before, q.IDs())
	assert.Equal(t, 0, q.CurrentIndex())
}

func TestQueue_Reorder_OutOfRange(t *testing.T) {
	q, _ := queueWith(3)

	assert.ErrorIs(t, q.Reorder(0, 3, 0), ErrIndexOutOfRange)
	assert.ErrorIs(t, q.Reorder(-1, 1, 0), ErrIndexOutOfRange)
	assert.ErrorIs(t, q.Reorder(0, 1, 5), ErrIndexOutOfRange)
	assert.ErrorIs(t, q.Reorder(0, 1, -1), ErrIndexOutOfRange, "a current file cannot be dropped by a move")
}

func TestQueue_RemoveByIDs_CurrentRemoved(t *testing.T) {
	q, files := queueWith(4) // A B C D
	require.NoError(t, q.SelectIndex(2))

	res := q.RemoveByIDs([]string{files[0].ID, files[2].ID})

	assert.Equal(t, []string{files[1].ID, files[3].ID}, q.IDs())
	assert.Equal(t, 0, q.CurrentIndex())
	assert.Equal(t, 0, res.Index)
	assert.True(t, res.Reload)
	assert.Equal(t, []string{files[0].ID, files[2].ID}, res.RemovedIDs)
	checkLockstep(t, q.playlist)
}

func TestQueue_RemoveByIDs_BeforeCurrent(t *testing.T) {
	q, files := queueWith(5)
	require.NoError(t, q.SelectIndex(3)) // D

	res := q.RemoveByIDs([]string{files[0].ID, files[1].ID, files[4].ID})

	assert.False(t, res.Reload)
	assert.Equal(t, 1, q.CurrentIndex())
	assert.Equal(t, files[3].ID, q.Current().ID)
}

func TestQueue_RemoveByIDs_AfterCurrent(t *testing.T) {
	q, files := queueWith(4)
	require.NoError(t, q.SelectIndex(1))

	res := q.RemoveByIDs([]string{files[3].ID})

	assert.False(t, res.Reload)
	assert.Equal(t, 1, q.CurrentIndex())
}

func TestQueue_RemoveByIDs_CurrentAtTail(t *testing.T) {
	q, files := queueWith(3)
	require.NoError(t, q.SelectIndex(2))

	res := q.RemoveByIDs([]string{files[2].ID})

	assert.True(t, res.Reload)
	assert.Equal(t, 1, q.CurrentIndex(), "clamped to the new last index")
}

func TestQueue_RemoveByIDs_Everything(t *testing.T) {
	q, files := queueWith(3)

	res := q.RemoveByIDs([]string{files[0].ID, files[1].ID, files[2].ID})

	assert.True(t, res.Reload)
	assert.Equal(t, -1, q.CurrentIndex())
	assert.True(t, q.Current().IsEmpty())
}

func TestQueue_RemoveByIDs_Unknown(t *testing.T) {
	q, _ := queueWith(3)
	require.NoError(t, q.SelectIndex(1))

	res := q.RemoveByIDs([]string{"nope"})

	assert.Empty(t, res.RemovedIDs)
	assert.False(t, res.Reload)
	assert.Equal(t, 1, q.CurrentIndex())
}

func TestQueue_RemoveByIDs_CurrentAlwaysValid(t *testing.T) {
	for n := 1; n <= 6; n++ {
		for cur := range n {
			for mask := 1; mask < 1<<n; mask++ {
				q, files := queueWith(n)
				require.NoError(t, q.SelectIndex(cur))
				var ids []string
				for i := range n {
					if mask&(1<<i) != 0 {
						ids = append(ids, files[i].ID)
					}
				}
				removedCurrent := mask&(1<<cur) != 0

				res := q.RemoveByIDs(ids)

				if q.Len() == 0 {
					require.Equal(t, -1, q.CurrentIndex())
				} else {
					require.GreaterOrEqual(t, q.CurrentIndex(), 0)
					require.Less(t, q.CurrentIndex(), q.Len())
				}
				require.Equal(t, removedCurrent, res.Reload)
				if !removedCurrent {
					require.Equal(t, files[cur].ID, q.Current().ID)
				}
				checkLockstep(t, q.playlist)
			}
		}
	}
}

func TestQueue_RemoveByIDs_PrunesSelection(t *testing.T) {
	q, files := queueWith(3)
	q.Select(files[0].ID)
	q.Select(files[2].ID)

	q.RemoveByIDs([]string{files[0].ID})

	assert.Equal(t, []string{files[2].ID}, q.SelectedIDs())
}

func TestQueue_Sort_KeepsCurrentFile(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	q := NewQueue()
	q.InitFiles([]media.File{
		dated("/c.mp4", base),
		dated("/a.mp4", base.Add(2*time.Hour)),
		dated("/b.mp4", base.Add(time.Hour)),
	})
	require.NoError(t, q.SelectIndex(0)) // c
	current := q.Current().ID

	for _, order := range SortOrders {
		ids := q.Sort(order)
		assert.Equal(t, current, q.Current().ID, "order %s", order)
		assert.Equal(t, q.IDs(), ids)
	}

	q.Sort(NameAsc)
	assert.Equal(t, 2, q.CurrentIndex())
}

func TestQueue_Sort_Empty(t *testing.T) {
	q := NewQueue()

	ids := q.Sort(NameAsc)

	assert.Empty(t, ids)
	assert.Equal(t, -1, q.CurrentIndex())
}

func TestQueue_Rename(t *testing.T) {
	q, files := queueWith(3)
	q.Select(files[1].ID)
	renamed := file("/renamed.mp4")

	require.NoError(t, q.Rename(files[1].ID, renamed))

	assert.Equal(t, 1, q.IndexOf(renamed.ID))
	assert.Equal(t, []string{renamed.ID}, q.SelectedIDs())
	assert.ErrorIs(t, q.Rename("missing", file("/x.mp4")), ErrNotFound)
}

func TestQueue_Selection(t *testing.T) {
	q, files := queueWith(5)

	q.SelectRange(3, 1)
	assert.Equal(t, []string{files[1].ID, files[2].ID, files[3].ID}, q.SelectedIDs())

	assert.False(t, q.ToggleSelected(files[2].ID))
	assert.True(t, q.ToggleSelected(files[4].ID))
	assert.False(t, q.ToggleSelected("unknown"))
	assert.Equal(t, []string{files[1].ID, files[3].ID, files[4].ID}, q.SelectedIDs())

	q.Select("unknown")
	assert.False(t, q.IsSelected("unknown"))

	q.ClearSelection()
	assert.Empty(t, q.SelectedIDs())
}

func TestQueue_SnapshotRestore(t *testing.T) {
	q, files := queueWith(3)
	require.NoError(t, q.SelectIndex(2))
	snap := q.Snapshot()

	q.RemoveByIDs([]string{files[0].ID})
	q.Restore(snap)

	assert.Equal(t, 3, q.Len())
	assert.Equal(t, 2, q.CurrentIndex())
	checkLockstep(t, q.playlist)
}

func TestQueue_ToggleShuffle(t *testing.T) {
	q := NewQueue()

	assert.True(t, q.ToggleShuffle())
	assert.True(t, q.Shuffle())
	assert.False(t, q.ToggleShuffle())
}
