package config

import (
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Store holds the current configuration snapshot. Reads are a single
// atomic pointer load, which keeps the per-keystroke path cheap; a
// reload builds a whole new snapshot and swaps it in.
type Store struct {
	path    string
	current atomic.Pointer[Config]

	watcher *fsnotify.Watcher
	done    chan struct{}

	// onReload, when set, is called with each successfully applied
	// snapshot.
	onReload func(Config)
}

// NewStore creates a store seeded with cfg. path is the file a later
// Watch call monitors; it may be empty.
func NewStore(cfg Config, path string) *Store {
	s := &Store{path: path}
	s.current.Store(&cfg)
	return s
}

// Current returns the active snapshot.
func (s *Store) Current() Config {
	return *s.current.Load()
}

// Set replaces the active snapshot.
func (s *Store) Set(cfg Config) {
	s.current.Store(&cfg)
}

// OnReload registers a callback invoked after each successful reload.
func (s *Store) OnReload(fn func(Config)) {
	s.onReload = fn
}

// Reload re-reads the configuration file. On failure the previous
// snapshot stays active and the error is returned.
func (s *Store) Reload(logger *slog.Logger) error {
	cfg, warnings, err := Load(s.path)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logger.Warn("config reload", "warning", w)
	}
	s.current.Store(&cfg)
	if s.onReload != nil {
		s.onReload(cfg)
	}
	return nil
}

// Watch monitors the configuration file and reloads on changes. The
// watcher goroutine only swaps the snapshot pointer; readers on the
// event path never block on it.
func (s *Store) Watch(logger *slog.Logger) error {
	if s.path == "" || s.watcher != nil {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory: editors often replace the file on save,
	// which drops a watch on the file itself.
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		w.Close()
		return err
	}

	s.watcher = w
	s.done = make(chan struct{})

	go func() {
		abs, _ := filepath.Abs(s.path)
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				evAbs, _ := filepath.Abs(ev.Name)
				if evAbs != abs {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if err := s.Reload(logger); err != nil {
					logger.Warn("config reload failed, keeping previous", "error", err)
				} else {
					logger.Info("config reloaded", "path", s.path)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", "error", err)
			case <-s.done:
				return
			}
		}
	}()

	return nil
}

// Close stops the watcher, if running.
func (s *Store) Close() error {
	if s.watcher == nil {
		return nil
	}
	close(s.done)
	err := s.watcher.Close()
	s.watcher = nil
	return err
}
