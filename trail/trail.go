// Package trail keeps a fixed-capacity history of recent ball positions with
// a per-entry fade weight.
package trail

import (
	"github.com/lixenwraith/beatball/vmath"
)

// Entry is one recorded position and its remaining opacity in [0,1]
type Entry struct {
	Pos   vmath.Vec3F
	Alpha float64
}

// Buffer is a circular trail history
// Overflow: the oldest entry is overwritten
// Not safe for concurrent use; owned by the traversal engine
type Buffer struct {
	entries []Entry
	cursor  int // next write slot
}

// New creates a buffer holding capacity entries, minimum 1
func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{entries: make([]Entry, capacity)}
}

// Cap returns the fixed capacity
func (b *Buffer) Cap() int {
	return len(b.entries)
}

// Reset fills every slot with pos at zero opacity and rewinds the cursor
func (b *Buffer) Reset(pos vmath.Vec3F) {
	for i := range b.entries {
		b.entries[i] = Entry{Pos: pos}
	}
	b.cursor = 0
}

// Push records pos at full opacity
func (b *Buffer) Push(pos vmath.Vec3F) {
	b.entries[b.cursor] = Entry{Pos: pos, Alpha: 1}
	b.cursor = (b.cursor + 1) % len(b.entries)
}

// Decay lowers every entry's opacity by amount, floored at zero
func (b *Buffer) Decay(amount float64) {
	if amount <= 0 {
		return
	}
	for i := range b.entries {
		a := b.entries[i].Alpha - amount
		if a < 0 {
			a = 0
		}
		b.entries[i].Alpha = a
	}
}

// Snapshot copies entries oldest-first into dst, reusing its storage
func (b *Buffer) Snapshot(dst []Entry) []Entry {
	dst = dst[:0]
	n := len(b.entries)
	for i := 0; i < n; i++ {
		dst = append(dst, b.entries[(b.cursor+i)%n])
	}
	return dst
}

// Newest returns the most recently pushed entry
func (b *Buffer) Newest() Entry {
	n := len(b.entries)
	return b.entries[(b.cursor+n-1)%n]
}
