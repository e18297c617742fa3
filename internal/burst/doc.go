// Package burst applies hold-detection verdicts to text.
//
// Editor is a thin adapter: it owns no buffer, only a host capability
// that can insert, delete backward, and report the text before the
// cursor. Every mutation applies uniformly at all active edit points.
// BufferHost is the in-repo host implementation backed by
// engine/buffer and engine/cursor.
package burst
