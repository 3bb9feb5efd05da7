package playlist

import "math/rand/v2"

// shuffleDeck holds the pending positions of a shuffle walk.
// It always contains every position except the current one, so it
// doubles as history: stepping forward pops the front and pushes the
// previous position to the back, stepping backward does the reverse.
type shuffleDeck struct {
	indices []int
}

// deal builds a random permutation of [0, n) without exclude.
func deal(rng *rand.Rand, n, exclude int) *shuffleDeck {
	remaining := make([]int, 0, n)
	for i := range n {
		if i != exclude {
			remaining = append(remaining, i)
		}
	}

	// Pick uniformly among what is left until nothing is left
	indices := make([]int, 0, len(remaining))
	for len(remaining) > 0 {
		j := rng.IntN(len(remaining))
		indices = append(indices, remaining[j])
		remaining[j] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
	}
	return &shuffleDeck{indices: indices}
}

func (d *shuffleDeck) len() int {
	return len(d.indices)
}

// forward returns the next position and records prev as history.
func (d *shuffleDeck) forward(prev int) int {
	next := d.indices[0]
	d.indices = append(d.indices[1:], prev)
	return next
}

// backward returns the previous position and records prev as pending.
func (d *shuffleDeck) backward(prev int) int {
	last := len(d.indices) - 1
	next := d.indices[last]
	d.indices = append([]int{prev}, d.indices[:last]...)
	return next
}

// swap replaces position target with prev, used when the current
// position is changed by an absolute jump.
func (d *shuffleDeck) swap(target, prev int) {
	for i, idx := range d.indices {
		if idx == target {
			d.indices[i] = prev
			return
		}
	}
}

// pending returns a copy of the pending positions, front first.
func (d *shuffleDeck) pending() []int {
	out := make([]int, len(d.indices))
	copy(out, d.indices)
	return out
}
