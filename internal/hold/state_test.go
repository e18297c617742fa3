package hold

import (
	"testing"
	"time"
)

func TestNewStateInvariants(t *testing.T) {
	s := newState()

	if s.RepeatCount() != 1 {
		t.Errorf("repeat count must start at 1, got %d", s.RepeatCount())
	}
	if s.CursorCount() != 1 {
		t.Errorf("cursor count must start at 1, got %d", s.CursorCount())
	}
	if s.LastChar() != 0 {
		t.Errorf("last char must start unset, got %q", s.LastChar())
	}
}

func TestResetRestoresInitialValues(t *testing.T) {
	s := newState()
	s.record('a', time.Unix(1000, 0))
	s.repeatCount = 7
	s.ratchet(4)

	s.Reset()

	if s.LastChar() != 0 || s.RepeatCount() != 1 || s.CursorCount() != 1 {
		t.Errorf("reset left state dirty: char=%q repeats=%d cursors=%d",
			s.LastChar(), s.RepeatCount(), s.CursorCount())
	}
	if !s.lastTime.IsZero() {
		t.Error("reset should clear last time")
	}
}

func TestRatchetNeverDecreases(t *testing.T) {
	s := newState()

	s.ratchet(3)
	if s.CursorCount() != 3 {
		t.Fatalf("expected 3, got %d", s.CursorCount())
	}
	s.ratchet(2)
	if s.CursorCount() != 3 {
		t.Errorf("ratchet decreased: got %d", s.CursorCount())
	}
	s.ratchet(5)
	if s.CursorCount() != 5 {
		t.Errorf("expected 5, got %d", s.CursorCount())
	}
}
