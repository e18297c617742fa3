package rules

import (
	"testing"
)

type recordingApplier struct {
	inserted string
	deleted  int
	previous string
}

func (r *recordingApplier) Insert(text string) error {
	r.inserted += text
	return nil
}

func (r *recordingApplier) DeletePrevious(n int) error {
	r.deleted += n
	return nil
}

func (r *recordingApplier) Previous(n int) string {
	if n >= len(r.previous) {
		return r.previous
	}
	return r.previous[len(r.previous)-n:]
}

func TestLookupFirstMatchWins(t *testing.T) {
	tbl := NewTable("test", []Rule{
		{';', Literal(":")},
		{';', Literal("!")},
	})

	rep, ok := tbl.Lookup(';')
	if !ok {
		t.Fatal("expected a match for ';'")
	}
	if rep.Text != ":" {
		t.Errorf("expected first entry to win, got %q", rep.Text)
	}
}

func TestLookupMiss(t *testing.T) {
	tbl := Qwerty()

	if _, ok := tbl.Lookup('a'); ok {
		t.Error("letters should not appear in the qwerty table")
	}
	if tbl.HasSource(' ') {
		t.Error("space should not appear in the qwerty table")
	}
}

func TestDuplicates(t *testing.T) {
	tbl := NewTable("test", []Rule{
		{'1', Literal("!")},
		{';', Literal(":")},
		{';', Literal(";")},
	})

	dups := tbl.Duplicates()
	if len(dups) != 1 || dups[0] != ';' {
		t.Errorf("expected duplicate [';'], got %v", dups)
	}
}

func TestQwertyShiftPairs(t *testing.T) {
	tbl := Qwerty()

	cases := map[rune]string{
		'1': "!", '2': "@", '9': "(", '0': ")",
		';': ":", '\'': "\"", '/': "?", '-': "_",
	}
	for source, want := range cases {
		rep, ok := tbl.Lookup(source)
		if !ok {
			t.Errorf("missing rule for %q", source)
			continue
		}
		if rep.Text != want {
			t.Errorf("%q: expected %q, got %q", source, want, rep.Text)
		}
	}
}

func TestQwertyCarriesKnownDuplicate(t *testing.T) {
	dups := Qwerty().Duplicates()
	if len(dups) != 1 || dups[0] != ';' {
		t.Errorf("expected the legacy ';' duplicate, got %v", dups)
	}
}

func TestProgrammerBrackets(t *testing.T) {
	tbl := Programmer()

	cases := map[rune]string{
		'2': "(", '3': ")", '4': "[", '5': "]", '6': "{", '7': "}",
	}
	for source, want := range cases {
		rep, ok := tbl.Lookup(source)
		if !ok {
			t.Errorf("missing rule for %q", source)
			continue
		}
		if rep.Text != want {
			t.Errorf("%q: expected %q, got %q", source, want, rep.Text)
		}
	}
}

func TestLayoutByName(t *testing.T) {
	tbl, err := Layout("programmer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Name() != LayoutProgrammer {
		t.Errorf("expected programmer table, got %q", tbl.Name())
	}

	if _, err := Layout("dvorak"); err == nil {
		t.Error("expected error for unknown layout")
	}
}

func TestReplacementApplyLiteral(t *testing.T) {
	ap := &recordingApplier{}

	if err := Literal("!").Apply(ap, '1'); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.inserted != "!" {
		t.Errorf("expected %q inserted, got %q", "!", ap.inserted)
	}
}

func TestReplacementApplyAction(t *testing.T) {
	var gotSource rune
	action := NewActionFunc("wrap", func(ap Applier, source rune) error {
		gotSource = source
		return ap.Insert("<" + string(source) + ">")
	})
	ap := &recordingApplier{}

	rep := ActionRef(action)
	if !rep.IsAction() {
		t.Fatal("expected action replacement")
	}
	if err := rep.Apply(ap, 'x'); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotSource != 'x' {
		t.Errorf("expected source 'x', got %q", gotSource)
	}
	if ap.inserted != "<x>" {
		t.Errorf("expected %q inserted, got %q", "<x>", ap.inserted)
	}
}

func TestNilTableLookup(t *testing.T) {
	var tbl *Table

	if _, ok := tbl.Lookup('a'); ok {
		t.Error("nil table should never match")
	}
	if tbl.Len() != 0 {
		t.Error("nil table should be empty")
	}
}
