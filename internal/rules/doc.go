// Package rules defines shift substitution tables.
//
// A Table is an ordered list of rules mapping a source rune to a
// Replacement. Lookup is first-match by source rune, so earlier entries
// shadow later duplicates. A Replacement is either literal text or a
// named action; actions receive an Applier capability and mutate the
// text themselves, which allows replacements scripted in Lua.
//
// Two layouts are built in: "qwerty" covers the US shift pairs, and
// "programmer" favors the symbols that dominate source code. Custom
// tables load from TOML or YAML files.
package rules
