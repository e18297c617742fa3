package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Actions resolves action names referenced by rule tables.
type Actions interface {
	// Action returns the named action, if known.
	Action(name string) (Action, bool)
}

// tableFile is the on-disk table representation.
type tableFile struct {
	Name  string     `toml:"name" yaml:"name"`
	Rules []ruleSpec `toml:"rule" yaml:"rules"`
}

// ruleSpec is a single on-disk rule. Source must be exactly one rune.
// Either text or action is set; action wins when both are present.
type ruleSpec struct {
	Source string `toml:"source" yaml:"source"`
	Text   string `toml:"text" yaml:"text"`
	Action string `toml:"action" yaml:"action"`
}

// LoadFile reads a table from a TOML or YAML file, chosen by extension.
// Action references are resolved against actions; pass nil when the
// table uses only literal replacements.
func LoadFile(path string, actions Actions) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule table %s: %w", path, err)
	}

	var tf tableFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &tf); err != nil {
			return nil, fmt.Errorf("parsing rule table %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &tf); err != nil {
			return nil, fmt.Errorf("parsing rule table %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("rule table %s: unsupported format %q", path, filepath.Ext(path))
	}

	return buildTable(path, tf, actions)
}

// buildTable converts the on-disk form into a Table.
func buildTable(path string, tf tableFile, actions Actions) (*Table, error) {
	name := tf.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	rs := make([]Rule, 0, len(tf.Rules))
	for i, spec := range tf.Rules {
		source, size := utf8.DecodeRuneInString(spec.Source)
		if source == utf8.RuneError || size != len(spec.Source) {
			return nil, fmt.Errorf("rule table %s: rule %d: source must be a single character, got %q", path, i, spec.Source)
		}

		var rep Replacement
		switch {
		case spec.Action != "":
			if actions == nil {
				return nil, fmt.Errorf("rule table %s: rule %d (%q): %w", path, i, spec.Action, ErrNoAction)
			}
			a, ok := actions.Action(spec.Action)
			if !ok {
				return nil, fmt.Errorf("rule table %s: rule %d (%q): %w", path, i, spec.Action, ErrNoAction)
			}
			rep = ActionRef(a)
		default:
			rep = Literal(spec.Text)
		}

		rs = append(rs, Rule{Source: source, Replacement: rep})
	}

	return NewTable(name, rs), nil
}
