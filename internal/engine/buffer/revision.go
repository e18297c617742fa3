package buffer

import "sync/atomic"

// RevisionID identifies a buffer revision. Each mutation produces a new,
// strictly increasing revision.
type RevisionID uint64

var revisionCounter uint64

// NewRevisionID returns a new unique revision ID.
func NewRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}
