// Package hold implements the key-hold detection state machine.
//
// A keyboard driver turns a held key into an auto-repeat stream of
// identical character insertions. The Detector consumes one event per
// inserted character and classifies it: Idle (new input, or still
// accumulating toward a full unit), Continuing (a full unit of repeats
// just completed and the trailing characters should collapse into one
// shifted character), or Trigger (the hold ran past its allotted size
// and the newest character should be cancelled).
//
// The detector holds a single State, mutated synchronously on every
// event. Events must be delivered in order and non-reentrantly; the
// package does no locking of its own. Timestamps are compared lazily
// against the previous event only, so no timers run.
package hold
