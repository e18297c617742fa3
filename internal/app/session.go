package app

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/holdshift/internal/burst"
	"github.com/dshills/holdshift/internal/config"
	"github.com/dshills/holdshift/internal/engine/buffer"
	"github.com/dshills/holdshift/internal/engine/cursor"
	"github.com/dshills/holdshift/internal/event"
	"github.com/dshills/holdshift/internal/hold"
	"github.com/dshills/holdshift/internal/rules"
)

// Session wires one buffer, one detector, and one rule table into a
// typing pipeline. All methods run on the event loop's goroutine;
// nothing here locks.
type Session struct {
	logger   *slog.Logger
	store    *config.Store
	detector *hold.Detector
	editor   *burst.Editor
	host     *burst.BufferHost
	registry *event.Registry
	toggle   *event.Toggle

	// suppress holds the character whose next insertion is swallowed,
	// 0 when nothing is pending.
	suppress rune

	// holdID correlates log lines belonging to one hold.
	holdID string

	lastDec hold.Decision
}

// NewSession creates a session over a fresh empty buffer. table may be
// nil, which limits eligibility to lowercase letters.
func NewSession(store *config.Store, table *rules.Table, logger *slog.Logger) *Session {
	host := burst.NewBufferHost(buffer.NewBuffer(), cursor.NewCursorSet(0))
	s := &Session{
		logger:   logger,
		store:    store,
		detector: hold.New(),
		editor:   burst.New(host, table),
		host:     host,
		registry: event.NewRegistry(),
		holdID:   uuid.NewString(),
	}
	s.toggle = event.NewToggle(s.registry, s.onInsert)
	s.toggle.Enable()
	return s
}

// HandleRune processes one typed character: insert first, then publish
// so listeners observe a buffer that already contains the character.
// An armed suppression swallows the character instead.
func (s *Session) HandleRune(r rune, now time.Time) error {
	if s.consumeSuppression(r) {
		// A swallowed overflow repeat still advances the detector's
		// timing chain, or the hold would appear to stall and reset.
		s.observe(r, now)
		return nil
	}
	if err := s.host.Insert(string(r)); err != nil {
		return err
	}
	s.registry.Publish(event.Insert{
		Char:    r,
		Time:    now,
		Cursors: s.host.Cursors().Count(),
	})
	return nil
}

// Backspace deletes the grapheme before each cursor. A manual deletion
// breaks any hold in progress.
func (s *Session) Backspace() {
	if err := s.host.DeletePrevious(1); err != nil {
		s.logger.Warn("backspace failed", slog.Any("error", err))
	}
	s.detector.Reset()
	s.suppress = 0
	s.lastDec = hold.Decision{}
}

// Flip toggles hold detection and returns the new state.
func (s *Session) Flip() bool {
	enabled := s.toggle.Flip()
	if !enabled {
		s.suppress = 0
		s.detector.Reset()
	}
	return enabled
}

// Enabled reports whether hold detection is active.
func (s *Session) Enabled() bool {
	return s.toggle.Enabled()
}

// SetTable swaps the active rule table, for config reloads.
func (s *Session) SetTable(table *rules.Table) {
	s.editor.SetTable(table)
	s.detector.Reset()
	s.suppress = 0
}

// Text returns the current buffer contents.
func (s *Session) Text() string {
	return s.host.Buffer().Text()
}

// Cursors returns the session's cursor set.
func (s *Session) Cursors() *cursor.CursorSet {
	return s.host.Cursors()
}

// LastVerdict returns the most recent detector decision.
func (s *Session) LastVerdict() hold.Decision {
	return s.lastDec
}

// RepeatCount exposes the detector's live repeat counter.
func (s *Session) RepeatCount() uint32 {
	return s.detector.State().RepeatCount()
}

// TableName returns the active rule table's name, or "" when running
// lowercase-only.
func (s *Session) TableName() string {
	if t := s.editor.Table(); t != nil {
		return t.Name()
	}
	return ""
}

func (s *Session) consumeSuppression(r rune) bool {
	if s.suppress == 0 || !s.toggle.Enabled() {
		s.suppress = 0
		return false
	}
	matched := s.suppress == r
	s.suppress = 0
	return matched
}

// observe feeds the detector without touching the buffer. Used for
// swallowed repeats, which keep the chain alive and re-arm suppression
// while the key stays down.
func (s *Session) observe(r rune, now time.Time) {
	cfg := s.store.Current()
	dec := s.detector.Handle(hold.Event{
		Char:    r,
		Time:    now,
		Cursors: s.host.Cursors().Count(),
	}, cfg.Hold.Thresholds(), s.sourceSet())
	s.lastDec = dec
	if dec.SuppressNext {
		s.suppress = r
	}
}

// onInsert is the hold listener: classify the insertion and apply any
// correction the verdict calls for.
func (s *Session) onInsert(ev event.Insert) {
	cfg := s.store.Current()
	dec := s.detector.Handle(hold.Event{
		Char:    ev.Char,
		Time:    ev.Time,
		Cursors: ev.Cursors,
	}, cfg.Hold.Thresholds(), s.sourceSet())

	if s.detector.State().RepeatCount() == 1 {
		s.holdID = uuid.NewString()
	}
	s.lastDec = dec
	if dec.SuppressNext {
		s.suppress = ev.Char
	}

	if dec.Verdict == hold.VerdictIdle {
		return
	}
	if err := s.editor.Apply(dec); err != nil {
		s.logger.Warn("correction failed",
			slog.String("hold", s.holdID),
			slog.String("verdict", dec.Verdict.String()),
			slog.Any("error", err))
		return
	}
	s.logger.Debug("hold verdict",
		slog.String("hold", s.holdID),
		slog.String("verdict", dec.Verdict.String()),
		slog.String("char", string(ev.Char)),
		slog.Uint64("repeats", uint64(s.detector.State().RepeatCount())),
		slog.Uint64("cursors", uint64(s.detector.State().CursorCount())))
}

// sourceSet adapts the editor's table for the detector. A typed nil
// *Table must become an untyped nil interface or the detector would
// call methods on it.
func (s *Session) sourceSet() hold.SourceSet {
	if t := s.editor.Table(); t != nil {
		return t
	}
	return nil
}
