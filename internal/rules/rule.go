package rules

import "errors"

// Errors returned by rule resolution.
var (
	ErrNoAction = errors.New("rule references an unknown action")
)

// Applier is the editing capability handed to action replacements.
// It operates at every active edit point.
type Applier interface {
	// Insert inserts text at the edit points.
	Insert(text string) error

	// DeletePrevious removes the last n characters before the edit points.
	DeletePrevious(n int) error

	// Previous returns up to n characters immediately before the primary
	// edit point.
	Previous(n int) string
}

// Action is a callable replacement. Invoke mutates the text through the
// Applier after the source character has already been removed.
type Action interface {
	// Name returns the action identifier used in rule tables.
	Name() string

	// Invoke applies the replacement. The removed source character is
	// passed so actions can branch on it.
	Invoke(ap Applier, source rune) error
}

// Replacement is what a source rune turns into. Exactly one of Text or
// Action is meaningful: Action wins when non-nil.
type Replacement struct {
	Text   string
	Action Action
}

// Literal creates a literal text replacement.
func Literal(text string) Replacement {
	return Replacement{Text: text}
}

// ActionRef creates a callable replacement.
func ActionRef(a Action) Replacement {
	return Replacement{Action: a}
}

// IsAction returns true if this replacement invokes an action.
func (r Replacement) IsAction() bool {
	return r.Action != nil
}

// Apply performs the replacement through the capability. The caller has
// already removed the source character.
func (r Replacement) Apply(ap Applier, source rune) error {
	if r.Action != nil {
		return r.Action.Invoke(ap, source)
	}
	return ap.Insert(r.Text)
}

// Rule maps a source rune to its replacement.
type Rule struct {
	Source      rune
	Replacement Replacement
}

// ActionFunc wraps a function as an Action.
type ActionFunc struct {
	name string
	fn   func(ap Applier, source rune) error
}

// NewActionFunc creates a named function action.
func NewActionFunc(name string, fn func(ap Applier, source rune) error) *ActionFunc {
	return &ActionFunc{name: name, fn: fn}
}

// Name implements Action.
func (a *ActionFunc) Name() string { return a.name }

// Invoke implements Action.
func (a *ActionFunc) Invoke(ap Applier, source rune) error {
	if a.fn == nil {
		return nil
	}
	return a.fn(ap, source)
}
