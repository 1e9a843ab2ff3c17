// Package waveform holds the circular buffer of scaled pulse samples behind
// the scrolling waveform view.
package waveform

// Ring is a fixed-capacity circular buffer of scaled column heights with a
// write cursor. Pushes overwrite the oldest entry; traversal starts at the
// cursor and wraps, yielding entries oldest first. Rendering the entries
// left to right in that order produces the scrolling effect.
type Ring struct {
	values []int
	cursor int
}

// NewRing creates a ring of the given capacity, typically the panel width.
// All entries start at zero. Panics if capacity is not positive.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		panic("waveform: ring capacity must be positive")
	}
	return &Ring{values: make([]int, capacity)}
}

// Cap returns the fixed capacity.
func (r *Ring) Cap() int { return len(r.values) }

// Push appends v at the cursor, overwriting the oldest entry, and advances
// the cursor modulo capacity.
func (r *Ring) Push(v int) {
	r.values[r.cursor] = v
	r.cursor = (r.cursor + 1) % len(r.values)
}

// ForEachInOrder yields all stored values oldest first. i runs from 0 to
// Cap()-1 and is the rendering column.
func (r *Ring) ForEachInOrder(fn func(i, v int)) {
	for i := range r.values {
		fn(i, r.values[(r.cursor+i)%len(r.values)])
	}
}
