package rules

// Table is an ordered shift substitution table.
// Lookup is first-match; later duplicate sources are unreachable.
type Table struct {
	name  string
	rules []Rule
}

// NewTable creates a table with the given name and rules.
// Rule order is preserved.
func NewTable(name string, rules []Rule) *Table {
	t := &Table{
		name:  name,
		rules: make([]Rule, len(rules)),
	}
	copy(t.rules, rules)
	return t
}

// Name returns the table identifier.
func (t *Table) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// Len returns the number of rules, unreachable duplicates included.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rules)
}

// Lookup returns the replacement for a source rune. The first matching
// rule wins.
func (t *Table) Lookup(source rune) (Replacement, bool) {
	if t == nil {
		return Replacement{}, false
	}
	for _, r := range t.rules {
		if r.Source == source {
			return r.Replacement, true
		}
	}
	return Replacement{}, false
}

// HasSource returns true if any rule uses the given source rune.
func (t *Table) HasSource(source rune) bool {
	_, ok := t.Lookup(source)
	return ok
}

// Rules returns a copy of the rule list in table order.
func (t *Table) Rules() []Rule {
	if t == nil {
		return nil
	}
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Duplicates returns the source runes that appear more than once.
// Such entries are a data-quality problem in the table, not a lookup
// concern: the first entry shadows the rest.
func (t *Table) Duplicates() []rune {
	if t == nil {
		return nil
	}
	seen := make(map[rune]int, len(t.rules))
	var dups []rune
	for _, r := range t.rules {
		seen[r.Source]++
		if seen[r.Source] == 2 {
			dups = append(dups, r.Source)
		}
	}
	return dups
}
