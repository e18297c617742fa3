package rules

import "fmt"

// Built-in layout names.
const (
	LayoutQwerty     = "qwerty"
	LayoutProgrammer = "programmer"
)

// Layout returns a built-in table by name.
func Layout(name string) (*Table, error) {
	switch name {
	case LayoutQwerty:
		return Qwerty(), nil
	case LayoutProgrammer:
		return Programmer(), nil
	default:
		return nil, fmt.Errorf("unknown layout %q", name)
	}
}

// LayoutNames returns the built-in layout names.
func LayoutNames() []string {
	return []string{LayoutQwerty, LayoutProgrammer}
}

// Qwerty returns the US shift-pair table: digit row plus punctuation.
func Qwerty() *Table {
	return NewTable(LayoutQwerty, []Rule{
		{'1', Literal("!")},
		{'2', Literal("@")},
		{'3', Literal("#")},
		{'4', Literal("$")},
		{'5', Literal("%")},
		{'6', Literal("^")},
		{'7', Literal("&")},
		{'8', Literal("*")},
		{'9', Literal("(")},
		{'0', Literal(")")},
		{'`', Literal("~")},
		{'-', Literal("_")},
		{'=', Literal("+")},
		{'[', Literal("{")},
		{']', Literal("}")},
		{'\\', Literal("|")},
		{';', Literal(":")},
		{'\'', Literal("\"")},
		{',', Literal("<")},
		{'.', Literal(">")},
		{'/', Literal("?")},
		// Second semicolon entry retained for compatibility with older
		// tables; unreachable because the first match wins.
		{';', Literal(";")},
	})
}

// Programmer returns an alternate table biased toward source-code
// symbols: the digit row produces the brackets and operators that are
// otherwise two-key chords.
func Programmer() *Table {
	return NewTable(LayoutProgrammer, []Rule{
		{'1', Literal("!")},
		{'2', Literal("(")},
		{'3', Literal(")")},
		{'4', Literal("[")},
		{'5', Literal("]")},
		{'6', Literal("{")},
		{'7', Literal("}")},
		{'8', Literal("*")},
		{'9', Literal("&")},
		{'0', Literal("=")},
		{'`', Literal("~")},
		{'-', Literal("_")},
		{'=', Literal("+")},
		{';', Literal(":")},
		{'\'', Literal("\"")},
		{',', Literal("<")},
		{'.', Literal(">")},
		{'/', Literal("?")},
	})
}
