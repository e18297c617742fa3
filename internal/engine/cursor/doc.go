// Package cursor manages edit points for simultaneous multi-cursor
// editing.
//
// A CursorSet holds one or more insertion points, kept sorted and
// deduplicated. The first cursor is the primary. After a buffer
// mutation, TransformAfterEdit shifts every cursor at or beyond the
// edit position so all edit points stay consistent.
package cursor
