package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/holdshift/internal/config"
	"github.com/dshills/holdshift/internal/hold"
	"github.com/dshills/holdshift/internal/logging"
	"github.com/dshills/holdshift/internal/rules"
)

func newTestSession(t *testing.T, table *rules.Table) *Session {
	t.Helper()
	store := config.NewStore(config.Default(), "")
	return NewSession(store, table, logging.Discard())
}

// typeRunes feeds runes at a fixed 50ms cadence, well inside the
// default delay (300ms) and interval (60ms).
func typeRunes(t *testing.T, s *Session, text string) {
	t.Helper()
	now := time.Unix(100, 0)
	for _, r := range text {
		if err := s.HandleRune(r, now); err != nil {
			t.Fatalf("HandleRune(%q) error = %v", r, err)
		}
		now = now.Add(50 * time.Millisecond)
	}
}

func TestSessionConvertsHold(t *testing.T) {
	s := newTestSession(t, nil)

	typeRunes(t, s, "aaa")
	if got := s.Text(); got != "A" {
		t.Errorf("after three repeats text = %q, want %q", got, "A")
	}
	if s.LastVerdict().Verdict != hold.VerdictContinuing {
		t.Errorf("verdict = %v, want continuing", s.LastVerdict().Verdict)
	}
}

func TestSessionSwallowsOverflowRepeats(t *testing.T) {
	s := newTestSession(t, nil)

	typeRunes(t, s, "aaaaaaa")
	if got := s.Text(); got != "A" {
		t.Errorf("after a long hold text = %q, want %q", got, "A")
	}
	if s.LastVerdict().Verdict != hold.VerdictTrigger {
		t.Errorf("verdict = %v, want trigger", s.LastVerdict().Verdict)
	}
}

func TestSessionSuppressionClearedByOtherChar(t *testing.T) {
	s := newTestSession(t, nil)

	typeRunes(t, s, "aaaa")
	// Trigger just fired and armed suppression for 'a'. A different
	// character must land normally.
	typeRunes(t, s, "b")
	if got := s.Text(); got != "Ab" {
		t.Errorf("text = %q, want %q", got, "Ab")
	}
}

func TestSessionDistinctKeypressesUntouched(t *testing.T) {
	s := newTestSession(t, nil)

	now := time.Unix(100, 0)
	for _, r := range "aaa" {
		if err := s.HandleRune(r, now); err != nil {
			t.Fatalf("HandleRune error = %v", err)
		}
		now = now.Add(time.Second)
	}
	if got := s.Text(); got != "aaa" {
		t.Errorf("slow typing text = %q, want %q", got, "aaa")
	}
}

func TestSessionRuleTable(t *testing.T) {
	s := newTestSession(t, rules.Qwerty())

	typeRunes(t, s, "111")
	if got := s.Text(); got != "!" {
		t.Errorf("digit hold text = %q, want %q", got, "!")
	}
}

func TestSessionToggleDisables(t *testing.T) {
	s := newTestSession(t, nil)

	if enabled := s.Flip(); enabled {
		t.Fatal("Flip() = true, want disabled")
	}
	typeRunes(t, s, "aaa")
	if got := s.Text(); got != "aaa" {
		t.Errorf("disabled text = %q, want %q", got, "aaa")
	}

	if enabled := s.Flip(); !enabled {
		t.Fatal("Flip() = false, want enabled")
	}
	typeRunes(t, s, "bbb")
	if got := s.Text(); got != "aaaB" {
		t.Errorf("re-enabled text = %q, want %q", got, "aaaB")
	}
}

func TestSessionBackspaceBreaksHold(t *testing.T) {
	s := newTestSession(t, nil)

	typeRunes(t, s, "aa")
	s.Backspace()
	if got := s.Text(); got != "a" {
		t.Errorf("after backspace text = %q, want %q", got, "a")
	}
	if s.RepeatCount() != 1 {
		t.Errorf("RepeatCount() = %d, want 1 after backspace", s.RepeatCount())
	}

	// The hold chain restarts from scratch.
	typeRunes(t, s, "aaa")
	if got := s.Text(); got != "aA" {
		t.Errorf("text = %q, want %q", got, "aA")
	}
}

func TestSessionNewlineResets(t *testing.T) {
	s := newTestSession(t, nil)

	typeRunes(t, s, "aa\naa")
	if got := s.Text(); got != "aa\naa" {
		t.Errorf("text = %q, want %q", got, "aa\naa")
	}
	if s.RepeatCount() != 2 {
		t.Errorf("RepeatCount() = %d, want 2", s.RepeatCount())
	}
}

func TestSessionSetTable(t *testing.T) {
	s := newTestSession(t, nil)

	typeRunes(t, s, "11")
	if got := s.Text(); got != "11" {
		t.Fatalf("digits without a table text = %q, want %q", got, "11")
	}

	s.SetTable(rules.Programmer())
	if s.TableName() != rules.LayoutProgrammer {
		t.Errorf("TableName() = %q, want %q", s.TableName(), rules.LayoutProgrammer)
	}
}

func TestBuildRulesLayout(t *testing.T) {
	cfg := config.Default()
	cfg.Rules.Layout = rules.LayoutProgrammer

	table, script, err := buildRules(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("buildRules() error = %v", err)
	}
	if script != nil {
		t.Error("expected no script")
	}
	if table == nil || table.Name() != rules.LayoutProgrammer {
		t.Errorf("table = %v, want programmer layout", table)
	}
}

func TestBuildRulesNone(t *testing.T) {
	cfg := config.Default()
	cfg.Rules.Layout = ""

	table, script, err := buildRules(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("buildRules() error = %v", err)
	}
	if table != nil || script != nil {
		t.Errorf("expected lowercase-only mode, got table=%v script=%v", table, script)
	}
}

func TestBuildRulesTableFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.toml")
	doc := strings.Join([]string{
		`name = "custom"`,
		``,
		`[[rule]]`,
		`source = "1"`,
		`text = "!"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Rules.Table = path

	table, _, err := buildRules(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("buildRules() error = %v", err)
	}
	if table.Name() != "custom" {
		t.Errorf("table name = %q, want %q", table.Name(), "custom")
	}
}

func TestBuildRulesBadLayout(t *testing.T) {
	cfg := config.Default()
	cfg.Rules.Layout = "dvorak"

	if _, _, err := buildRules(cfg, logging.Discard()); err == nil {
		t.Fatal("expected an error for an unknown layout")
	}
}

func TestBuildRulesScriptError(t *testing.T) {
	cfg := config.Default()
	cfg.Rules.Script = filepath.Join(t.TempDir(), "missing.lua")

	if _, _, err := buildRules(cfg, logging.Discard()); err == nil {
		t.Fatal("expected an error for a missing script")
	}
}
