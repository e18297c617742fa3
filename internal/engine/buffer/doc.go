// Package buffer provides a thread-safe text buffer used as the reference
// implementation of the host editing primitives.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Byte-offset addressed insert and delete operations
//   - Grapheme-cluster-aware trailing boundaries, so deleting the "last N
//     characters" never splits a combining sequence or emoji
//   - Revision tracking for change management
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("hello")
//	buf.Insert(5, "!")        // "hello!"
//	buf.Delete(0, 1)          // "ello!"
//
// Position Type:
//
// ByteOffset is the only coordinate system. Callers that need character
// semantics use TrailingBoundary, which walks grapheme clusters backward
// from an offset.
package buffer
