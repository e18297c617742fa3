package burst

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dshills/holdshift/internal/hold"
	"github.com/dshills/holdshift/internal/rules"
)

// Editor performs the buffer corrections the detector asks for.
// The host has already inserted the literal character before any
// correction runs.
type Editor struct {
	host  rules.Applier
	table *rules.Table
	upper cases.Caser
}

// New creates an editor over the given host primitives and rule table.
// table may be nil; only lowercase conversion applies then.
func New(host rules.Applier, table *rules.Table) *Editor {
	return &Editor{
		host:  host,
		table: table,
		upper: cases.Upper(language.Und),
	}
}

// SetTable swaps the active rule table.
func (e *Editor) SetTable(table *rules.Table) {
	e.table = table
}

// Table returns the active rule table.
func (e *Editor) Table() *rules.Table {
	return e.table
}

// Apply maps a decision to its buffer mutation. Idle decisions do
// nothing.
func (e *Editor) Apply(dec hold.Decision) error {
	switch dec.Verdict {
	case hold.VerdictContinuing:
		if err := e.DeleteTrailing(dec.CharsToDelete); err != nil {
			return err
		}
		return e.ReplacePreviousChar()
	case hold.VerdictTrigger:
		return e.CancelLastInsert()
	default:
		return nil
	}
}

// DeleteTrailing removes the last n characters before every edit point.
// The host clamps at the start of the buffer.
func (e *Editor) DeleteTrailing(n int) error {
	if n <= 0 {
		return nil
	}
	return e.host.DeletePrevious(n)
}

// CancelLastInsert removes exactly one trailing character.
func (e *Editor) CancelLastInsert() error {
	return e.host.DeletePrevious(1)
}

// ReplacePreviousChar substitutes the character before the cursor: a
// rule-table entry applies its replacement, a lowercase letter becomes
// uppercase, anything else is left alone.
func (e *Editor) ReplacePreviousChar() error {
	prev := e.host.Previous(1)
	if prev == "" {
		return nil
	}
	r, _ := utf8.DecodeRuneInString(prev)

	if rep, ok := e.table.Lookup(r); ok {
		if err := e.host.DeletePrevious(1); err != nil {
			return err
		}
		return rep.Apply(e.host, r)
	}

	if unicode.IsLower(r) {
		if err := e.host.DeletePrevious(1); err != nil {
			return err
		}
		return e.host.Insert(e.upper.String(string(r)))
	}

	return nil
}
