package cursor

import (
	"sort"

	"github.com/dshills/holdshift/internal/engine/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// CursorSet manages multiple insertion points.
// Cursors are kept sorted by position and deduplicated.
// The first cursor is considered the "primary" cursor.
type CursorSet struct {
	offsets []ByteOffset
}

// NewCursorSet creates a cursor set with a single cursor at the given offset.
func NewCursorSet(offset ByteOffset) *CursorSet {
	if offset < 0 {
		offset = 0
	}
	return &CursorSet{offsets: []ByteOffset{offset}}
}

// NewCursorSetFromSlice creates a cursor set from a slice of offsets.
// The offsets are normalized (sorted and deduplicated).
func NewCursorSetFromSlice(offsets []ByteOffset) *CursorSet {
	if len(offsets) == 0 {
		return NewCursorSet(0)
	}
	cs := &CursorSet{offsets: make([]ByteOffset, len(offsets))}
	copy(cs.offsets, offsets)
	cs.normalize()
	return cs
}

// Primary returns the primary (first) cursor offset.
func (cs *CursorSet) Primary() ByteOffset {
	if len(cs.offsets) == 0 {
		return 0
	}
	return cs.offsets[0]
}

// All returns a copy of all cursor offsets.
// The returned slice is safe to modify without affecting the CursorSet.
func (cs *CursorSet) All() []ByteOffset {
	result := make([]ByteOffset, len(cs.offsets))
	copy(result, cs.offsets)
	return result
}

// Count returns the number of cursors.
func (cs *CursorSet) Count() int {
	return len(cs.offsets)
}

// IsMulti returns true if there are multiple cursors.
func (cs *CursorSet) IsMulti() bool {
	return len(cs.offsets) > 1
}

// Add adds a new cursor, merging duplicates.
func (cs *CursorSet) Add(offset ByteOffset) {
	cs.offsets = append(cs.offsets, offset)
	cs.normalize()
}

// Set replaces all cursors with a single cursor.
func (cs *CursorSet) Set(offset ByteOffset) {
	if offset < 0 {
		offset = 0
	}
	cs.offsets = []ByteOffset{offset}
}

// MoveBy shifts every cursor by delta, clamping at zero.
func (cs *CursorSet) MoveBy(delta ByteOffset) {
	for i := range cs.offsets {
		cs.offsets[i] += delta
		if cs.offsets[i] < 0 {
			cs.offsets[i] = 0
		}
	}
	cs.normalize()
}

// TransformAfterEdit adjusts cursors for an edit at pos that changed the
// buffer length by delta (positive for insertion, negative for deletion).
// Cursors before pos are unaffected; cursors at or after pos shift by
// delta, clamping at pos for deletions that span them.
func (cs *CursorSet) TransformAfterEdit(pos ByteOffset, delta ByteOffset) {
	for i := range cs.offsets {
		if cs.offsets[i] < pos {
			continue
		}
		cs.offsets[i] += delta
		if cs.offsets[i] < pos {
			cs.offsets[i] = pos
		}
	}
	cs.normalize()
}

// Clamp restricts every cursor to [0, maxOffset].
func (cs *CursorSet) Clamp(maxOffset ByteOffset) {
	for i := range cs.offsets {
		if cs.offsets[i] < 0 {
			cs.offsets[i] = 0
		}
		if cs.offsets[i] > maxOffset {
			cs.offsets[i] = maxOffset
		}
	}
	cs.normalize()
}

// normalize sorts the cursors and removes duplicates.
// There is always at least one cursor after normalization.
func (cs *CursorSet) normalize() {
	if len(cs.offsets) == 0 {
		cs.offsets = []ByteOffset{0}
		return
	}
	sort.Slice(cs.offsets, func(i, j int) bool {
		return cs.offsets[i] < cs.offsets[j]
	})
	dedup := cs.offsets[:1]
	for _, off := range cs.offsets[1:] {
		if off != dedup[len(dedup)-1] {
			dedup = append(dedup, off)
		}
	}
	cs.offsets = dedup
}
