package hold

import (
	"time"
	"unicode"
)

// Default thresholds. Delay and Interval mirror typical keyboard driver
// auto-repeat settings; TriggerCount is the number of repeats that makes
// one unit per cursor.
const (
	DefaultDelay        = 300 * time.Millisecond
	DefaultInterval     = 60 * time.Millisecond
	DefaultTriggerCount = 3
)

// Thresholds is the timing and counting configuration. It is read per
// event, so the host may change it between events but not during one.
type Thresholds struct {
	// Delay is the maximum gap before the first repeat of a hold.
	Delay time.Duration

	// Interval is the maximum gap between subsequent repeats.
	Interval time.Duration

	// TriggerCount is the number of repeats forming one unit per cursor.
	TriggerCount int
}

// DefaultThresholds returns the reference configuration.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Delay:        DefaultDelay,
		Interval:     DefaultInterval,
		TriggerCount: DefaultTriggerCount,
	}
}

// Event is one character insertion reported by the host, after the
// character is already in the buffer.
type Event struct {
	// Char is the character code just inserted.
	Char rune

	// Time is the monotonic timestamp of the insertion.
	Time time.Time

	// Cursors is the host's count of simultaneous edit points. Values
	// below 1 (including a missing query) are treated as 1. The count
	// may under-report while cursors spawn; the detector compensates.
	Cursors int
}

// SourceSet reports whether a rune is a source key of the active rule
// table. rules.Table satisfies it.
type SourceSet interface {
	HasSource(r rune) bool
}

// Detector classifies character-insertion events into hold verdicts.
// It is strictly sequential: one event is processed to completion before
// the next, and the single State instance is never shared.
type Detector struct {
	state State
}

// New creates a detector in the idle state.
func New() *Detector {
	return &Detector{state: newState()}
}

// State returns the detector's state for inspection.
func (d *Detector) State() *State {
	return &d.state
}

// Reset forces the detector back to idle.
func (d *Detector) Reset() {
	d.state.Reset()
}

// Eligible reports whether a character can accumulate toward a hold:
// lowercase letters and table source keys qualify, everything else
// (whitespace included) never does.
func Eligible(r rune, table SourceSet) bool {
	if unicode.IsLower(r) {
		return true
	}
	return table != nil && table.HasSource(r)
}

// Handle processes one event and returns the correction decision.
// table may be nil when no rule table is active.
func (d *Detector) Handle(ev Event, th Thresholds, table SourceSet) Decision {
	if th.TriggerCount < 1 {
		th.TriggerCount = DefaultTriggerCount
	}

	reported := uint32(1)
	if ev.Cursors > 1 {
		reported = uint32(ev.Cursors)
	}

	if !d.continues(ev, th, table, reported) {
		d.state.Reset()
		// A fresh hold may start with several cursors already active.
		d.state.ratchet(reported)
		d.state.record(ev.Char, ev.Time)
		return Decision{Verdict: VerdictIdle}
	}

	d.state.ratchet(reported)
	d.state.repeatCount++

	cntMax := d.state.cursorCount * uint32(th.TriggerCount)
	cntMin := cntMax - d.state.cursorCount

	var dec Decision
	switch {
	case d.state.repeatCount > cntMax:
		// The newest character pushed the burst past its allotted size.
		dec = Decision{Verdict: VerdictTrigger, SuppressNext: true}
	case d.state.repeatCount > cntMin:
		dec = Decision{Verdict: VerdictContinuing, CharsToDelete: th.TriggerCount - 1}
	default:
		dec = Decision{Verdict: VerdictIdle}
	}

	d.state.record(ev.Char, ev.Time)
	return dec
}

// continues is the continuation test: same eligible character, arriving
// fast enough. The first repeat of a hold must beat Delay; later repeats
// only need beat Interval. Comparing repeatCount against the cursor
// count generalizes "first repeat" to multi-cursor holds, where each
// physical repeat inserts one copy per cursor.
func (d *Detector) continues(ev Event, th Thresholds, table SourceSet, reported uint32) bool {
	if d.state.lastChar == 0 {
		return false
	}
	if ev.Char != d.state.lastChar {
		return false
	}
	if !Eligible(ev.Char, table) {
		return false
	}

	cursors := d.state.cursorCount
	if reported > cursors {
		cursors = reported
	}

	threshold := th.Delay
	if d.state.repeatCount > cursors {
		threshold = th.Interval
	}
	return ev.Time.Sub(d.state.lastTime) < threshold
}
