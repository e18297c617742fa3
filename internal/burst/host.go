package burst

import (
	"github.com/dshills/holdshift/internal/engine/buffer"
	"github.com/dshills/holdshift/internal/engine/cursor"
)

// BufferHost implements the host editing primitives over an in-memory
// buffer and a cursor set. Every mutation applies at all cursors, from
// the highest offset down so earlier offsets stay valid during the pass.
type BufferHost struct {
	buf     *buffer.Buffer
	cursors *cursor.CursorSet
}

// NewBufferHost creates a host over the given buffer and cursors.
func NewBufferHost(buf *buffer.Buffer, cursors *cursor.CursorSet) *BufferHost {
	return &BufferHost{buf: buf, cursors: cursors}
}

// Buffer returns the underlying buffer.
func (h *BufferHost) Buffer() *buffer.Buffer { return h.buf }

// Cursors returns the cursor set.
func (h *BufferHost) Cursors() *cursor.CursorSet { return h.cursors }

// Insert inserts text at every cursor. Cursors end up after their own
// insertion.
func (h *BufferHost) Insert(text string) error {
	if text == "" {
		return nil
	}
	offs := h.cursors.All()
	delta := buffer.ByteOffset(len(text))
	for i := len(offs) - 1; i >= 0; i-- {
		if err := h.buf.Insert(offs[i], text); err != nil {
			return err
		}
		h.cursors.TransformAfterEdit(offs[i], delta)
	}
	return nil
}

// DeletePrevious removes the last n characters before every cursor,
// clamping softly at the start of the buffer. Character boundaries are
// grapheme clusters, so combining sequences are removed whole.
func (h *BufferHost) DeletePrevious(n int) error {
	if n <= 0 {
		return nil
	}
	// Positions are re-read after every deletion: removing a range can
	// merge nearby cursors, and a stale snapshot would delete the wrong
	// region. Each pass handles the highest cursor not yet covered.
	limit := buffer.ByteOffset(-1)
	for {
		var next buffer.ByteOffset = -1
		for _, off := range h.cursors.All() {
			if limit >= 0 && off >= limit {
				continue
			}
			if off > next {
				next = off
			}
		}
		if next < 0 {
			return nil
		}
		start := h.buf.TrailingBoundary(next, n)
		if start != next {
			if err := h.buf.Delete(start, next); err != nil {
				return err
			}
			h.cursors.TransformAfterEdit(start, start-next)
		}
		limit = start
	}
}

// Previous returns up to n characters immediately before the primary
// cursor.
func (h *BufferHost) Previous(n int) string {
	end := h.cursors.Primary()
	start := h.buf.TrailingBoundary(end, n)
	return h.buf.TextRange(start, end)
}
