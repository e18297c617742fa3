package hold

// Verdict classifies a character-insertion event.
type Verdict uint8

const (
	// VerdictIdle means the event is new input or is still accumulating
	// toward a full repeat unit. No correction is needed.
	VerdictIdle Verdict = iota

	// VerdictContinuing means a full unit of repeats just completed: the
	// trailing literal characters collapse into one shifted character.
	VerdictContinuing

	// VerdictTrigger means the hold overran a completed unit: the newest
	// character is surplus and should be cancelled.
	VerdictTrigger
)

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case VerdictIdle:
		return "idle"
	case VerdictContinuing:
		return "continuing"
	case VerdictTrigger:
		return "trigger"
	default:
		return "unknown"
	}
}

// Decision is the detector's output for one event.
type Decision struct {
	// Verdict is the classification.
	Verdict Verdict

	// CharsToDelete is the number of trailing characters to remove
	// before substituting. Meaningful only for VerdictContinuing.
	CharsToDelete int

	// SuppressNext is armed on VerdictTrigger. Hosts that run a
	// follow-up action after insertions (auto-indent, for example) may
	// consult it to skip that action once. Purely advisory.
	SuppressNext bool
}
