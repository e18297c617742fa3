package hold

import "time"

// State is the accumulated hold state. One instance lives for the life
// of its Detector; it is reset logically, never reallocated.
type State struct {
	// lastChar is the most recently processed character, 0 when idle.
	lastChar rune

	// lastTime is when the last event was processed.
	lastTime time.Time

	// repeatCount counts consecutive qualifying repeats, starting at 1.
	repeatCount uint32

	// cursorCount is the sticky maximum of simultaneous edit points seen
	// during the current hold. Never below 1.
	cursorCount uint32
}

// newState returns a State in its initial (idle) configuration.
func newState() State {
	return State{repeatCount: 1, cursorCount: 1}
}

// Reset returns the state to idle: no last character, counters at 1.
func (s *State) Reset() {
	s.lastChar = 0
	s.lastTime = time.Time{}
	s.repeatCount = 1
	s.cursorCount = 1
}

// ratchet raises cursorCount to reported if larger. The host's live
// count under-reports while new cursors spawn, so the stored value only
// ever goes up within a hold.
func (s *State) ratchet(reported uint32) {
	if reported > s.cursorCount {
		s.cursorCount = reported
	}
}

// record notes the character and time of the event just processed.
func (s *State) record(char rune, at time.Time) {
	s.lastChar = char
	s.lastTime = at
}

// LastChar returns the most recent character, or 0 when idle.
func (s *State) LastChar() rune { return s.lastChar }

// RepeatCount returns the current repeat counter.
func (s *State) RepeatCount() uint32 { return s.repeatCount }

// CursorCount returns the sticky-maximum cursor count for this hold.
func (s *State) CursorCount() uint32 { return s.cursorCount }
