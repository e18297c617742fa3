package rules

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type staticActions map[string]Action

func (sa staticActions) Action(name string) (Action, bool) {
	a, ok := sa[name]
	return a, ok
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadFileTOML(t *testing.T) {
	path := writeFile(t, "custom.toml", `
name = "custom"

[[rule]]
source = ";"
text = ":"

[[rule]]
source = "1"
text = "!"
`)

	tbl, err := LoadFile(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tbl.Name() != "custom" {
		t.Errorf("expected name %q, got %q", "custom", tbl.Name())
	}
	rep, ok := tbl.Lookup(';')
	if !ok || rep.Text != ":" {
		t.Errorf("expected ';' -> %q, got %v %v", ":", rep, ok)
	}
}

func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, "custom.yaml", `
name: wide
rules:
  - source: ","
    text: "<"
  - source: "."
    text: ">"
`)

	tbl, err := LoadFile(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("expected 2 rules, got %d", tbl.Len())
	}
	rep, ok := tbl.Lookup('.')
	if !ok || rep.Text != ">" {
		t.Errorf("expected '.' -> %q, got %v %v", ">", rep, ok)
	}
}

func TestLoadFileActionResolution(t *testing.T) {
	path := writeFile(t, "scripted.toml", `
[[rule]]
source = "1"
action = "bang"
`)

	actions := staticActions{
		"bang": NewActionFunc("bang", func(ap Applier, source rune) error {
			return ap.Insert("!")
		}),
	}

	tbl, err := LoadFile(path, actions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rep, ok := tbl.Lookup('1')
	if !ok || !rep.IsAction() {
		t.Fatalf("expected action replacement, got %v %v", rep, ok)
	}

	ap := &recordingApplier{}
	if err := rep.Apply(ap, '1'); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.inserted != "!" {
		t.Errorf("expected %q inserted, got %q", "!", ap.inserted)
	}
}

func TestLoadFileUnknownAction(t *testing.T) {
	path := writeFile(t, "bad.toml", `
[[rule]]
source = "1"
action = "missing"
`)

	_, err := LoadFile(path, staticActions{})
	if !errors.Is(err, ErrNoAction) {
		t.Errorf("expected ErrNoAction, got %v", err)
	}

	_, err = LoadFile(path, nil)
	if !errors.Is(err, ErrNoAction) {
		t.Errorf("expected ErrNoAction with nil resolver, got %v", err)
	}
}

func TestLoadFileRejectsMultiRuneSource(t *testing.T) {
	path := writeFile(t, "bad.toml", `
[[rule]]
source = "ab"
text = "x"
`)

	if _, err := LoadFile(path, nil); err == nil {
		t.Error("expected error for multi-rune source")
	}
}

func TestLoadFileUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "table.json", `{}`)

	if _, err := LoadFile(path, nil); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestLoadFileNameDefaultsToFilename(t *testing.T) {
	path := writeFile(t, "mytable.toml", `
[[rule]]
source = "1"
text = "!"
`)

	tbl, err := LoadFile(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Name() != "mytable" {
		t.Errorf("expected name %q, got %q", "mytable", tbl.Name())
	}
}
