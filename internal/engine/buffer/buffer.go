package buffer

import (
	"errors"
	"strings"
	"sync"

	"github.com/rivo/uniseg"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// ByteOffset represents a byte position in the buffer.
type ByteOffset = int64

// Buffer is a mutable text buffer addressed by byte offsets.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	text       string
	revisionID RevisionID
}

// NewBuffer creates a new empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{revisionID: NewRevisionID()}
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(text string) *Buffer {
	return &Buffer{text: text, revisionID: NewRevisionID()}
}

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// TextRange returns the text in [start, end). The range is clamped to the
// buffer bounds.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start, end = b.clampRange(start, end)
	return b.text[start:end]
}

// Len returns the buffer length in bytes.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(len(b.text))
}

// IsEmpty returns true if the buffer contains no text.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// Revision returns the current revision identifier. It changes on every
// successful mutation.
func (b *Buffer) Revision() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// Insert inserts text at the given offset.
func (b *Buffer) Insert(offset ByteOffset, text string) error {
	if text == "" {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if offset < 0 || offset > ByteOffset(len(b.text)) {
		return ErrOffsetOutOfRange
	}

	var sb strings.Builder
	sb.Grow(len(b.text) + len(text))
	sb.WriteString(b.text[:offset])
	sb.WriteString(text)
	sb.WriteString(b.text[offset:])
	b.text = sb.String()
	b.revisionID = NewRevisionID()
	return nil
}

// Delete removes the text in [start, end). Out-of-range offsets are
// clamped rather than rejected so trailing deletions fail softly at the
// start of the buffer.
func (b *Buffer) Delete(start, end ByteOffset) error {
	if start > end {
		return ErrRangeInvalid
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	start, end = b.clampRange(start, end)
	if start == end {
		return nil
	}
	b.text = b.text[:start] + b.text[end:]
	b.revisionID = NewRevisionID()
	return nil
}

// Replace substitutes the text in [start, end) with newText.
func (b *Buffer) Replace(start, end ByteOffset, newText string) error {
	if start > end {
		return ErrRangeInvalid
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	start, end = b.clampRange(start, end)
	var sb strings.Builder
	sb.Grow(int(start) + len(newText) + (len(b.text) - int(end)))
	sb.WriteString(b.text[:start])
	sb.WriteString(newText)
	sb.WriteString(b.text[end:])
	b.text = sb.String()
	b.revisionID = NewRevisionID()
	return nil
}

// TrailingBoundary returns the offset where the last n grapheme clusters
// before offset begin. If fewer than n clusters exist, it returns 0.
// Walking clusters rather than bytes keeps combining sequences intact.
func (b *Buffer) TrailingBoundary(offset ByteOffset, n int) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset > ByteOffset(len(b.text)) {
		offset = ByteOffset(len(b.text))
	}
	if offset < 0 || n <= 0 {
		return offset
	}

	boundaries := graphemeBoundaries(b.text[:offset])
	if n >= len(boundaries) {
		return 0
	}
	return boundaries[len(boundaries)-n]
}

// clampRange clamps a range to the buffer bounds. Caller must hold a lock.
func (b *Buffer) clampRange(start, end ByteOffset) (ByteOffset, ByteOffset) {
	if start < 0 {
		start = 0
	}
	if end > ByteOffset(len(b.text)) {
		end = ByteOffset(len(b.text))
	}
	if start > end {
		start = end
	}
	return start, end
}

// graphemeBoundaries returns the starting byte offset of every grapheme
// cluster in s.
func graphemeBoundaries(s string) []ByteOffset {
	var offsets []ByteOffset
	state := -1
	pos := 0
	remaining := s
	for len(remaining) > 0 {
		offsets = append(offsets, ByteOffset(pos))
		cluster, rest, _, newState := uniseg.FirstGraphemeClusterInString(remaining, state)
		pos += len(cluster)
		remaining = rest
		state = newState
	}
	return offsets
}
