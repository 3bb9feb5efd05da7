package playlist

import (
	"errors"

	"github.com/llehouerou/reel/internal/media"
)

var (
	// ErrIndexOutOfRange is returned when an index does not address a file.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNotFound is returned when an id is not in the playlist.
	ErrNotFound = errors.New("file not in playlist")
	// ErrDuplicate is returned when an id is already in the playlist.
	ErrDuplicate = errors.New("file already in playlist")
)

// Playlist holds an ordered collection of files and an id index over them.
// The two are kept in lockstep: every mutation updates both.
type Playlist struct {
	files []media.File
	byID  map[string]media.File
}

// NewPlaylist creates a new empty playlist.
func NewPlaylist() *Playlist {
	return &Playlist{
		files: make([]media.File, 0),
		byID:  make(map[string]media.File),
	}
}

// Add appends files whose id is not already present and returns the
// ones actually added. Duplicates within the batch are also dropped.
func (p *Playlist) Add(files ...media.File) []media.File {
	added := make([]media.File, 0, len(files))
	for _, f := range files {
		if _, ok := p.byID[f.ID]; ok {
			continue
		}
		p.byID[f.ID] = f
		p.files = append(p.files, f)
		added = append(added, f)
	}
	return added
}

// RemoveIDs deletes every file whose id is in ids, preserving the order
// of the survivors. Returns the removed positions in ascending order.
func (p *Playlist) RemoveIDs(ids map[string]bool) []int {
	var positions []int
	kept := p.files[:0]
	for i, f := range p.files {
		if ids[f.ID] {
			positions = append(positions, i)
			delete(p.byID, f.ID)
			continue
		}
		kept = append(kept, f)
	}
	// Clear the tail so removed entries are not retained by the backing array
	for i := len(kept); i < len(p.files); i++ {
		p.files[i] = media.File{}
	}
	p.files = kept
	return positions
}

// Clear removes all files from the playlist.
func (p *Playlist) Clear() {
	p.files = p.files[:0]
	p.byID = make(map[string]media.File)
}

// Files returns a copy of all files.
func (p *Playlist) Files() []media.File {
	result := make([]media.File, len(p.files))
	copy(result, p.files)
	return result
}

// IDs returns the ids in playlist order.
func (p *Playlist) IDs() []string {
	ids := make([]string, len(p.files))
	for i, f := range p.files {
		ids[i] = f.ID
	}
	return ids
}

// File returns the file at the given index.
func (p *Playlist) File(index int) (media.File, bool) {
	if index < 0 || index >= len(p.files) {
		return media.Empty, false
	}
	return p.files[index], true
}

// Lookup returns the file with the given id.
func (p *Playlist) Lookup(id string) (media.File, bool) {
	f, ok := p.byID[id]
	return f, ok
}

// Contains reports whether id is in the playlist.
func (p *Playlist) Contains(id string) bool {
	_, ok := p.byID[id]
	return ok
}

// IndexOf returns the position of id, or -1.
func (p *Playlist) IndexOf(id string) int {
	if !p.Contains(id) {
		return -1
	}
	for i, f := range p.files {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// Len returns the number of files.
func (p *Playlist) Len() int {
	return len(p.files)
}

// Move moves the file at fromIndex to toIndex.
// Returns false if either index is out of bounds.
func (p *Playlist) Move(fromIndex, toIndex int) bool {
	if fromIndex < 0 || fromIndex >= len(p.files) {
		return false
	}
	if toIndex < 0 || toIndex >= len(p.files) {
		return false
	}
	if fromIndex == toIndex {
		return true
	}

	f := p.files[fromIndex]
	p.files = append(p.files[:fromIndex], p.files[fromIndex+1:]...)
	p.files = append(p.files[:toIndex], append([]media.File{f}, p.files[toIndex:]...)...)
	return true
}

// IndexAfterMove returns where the entry at current ends up when the
// entry at start is moved to end.
func IndexAfterMove(current, start, end int) int {
	switch {
	case current < 0:
		return current
	case current == start:
		return end
	case start < current && end >= current:
		return current - 1
	case start > current && end <= current:
		return current + 1
	}
	return current
}

// Replace swaps the entry for id with f, keeping its position.
func (p *Playlist) Replace(id string, f media.File) error {
	idx := p.IndexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	if f.ID != id && p.Contains(f.ID) {
		return ErrDuplicate
	}
	delete(p.byID, id)
	p.byID[f.ID] = f
	p.files[idx] = f
	return nil
}
