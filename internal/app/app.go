// Package app wires configuration, rule tables, the hold detector, and
// the burst editor into an interactive terminal session.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/holdshift/internal/config"
	"github.com/dshills/holdshift/internal/logging"
	"github.com/dshills/holdshift/internal/rules"
)

// ErrQuit signals a user-requested exit from Run.
var ErrQuit = errors.New("quit")

// Options are the command-line knobs.
type Options struct {
	// ConfigPath points at a TOML config file. Empty means defaults
	// plus environment overrides.
	ConfigPath string

	// Layout overrides the configured built-in layout name.
	Layout string

	// LogLevel overrides the configured log level.
	LogLevel string

	// LogFile overrides the configured log destination. Strongly
	// recommended when running the screen, which owns the terminal.
	LogFile string

	// Debug forces debug-level logging.
	Debug bool
}

// App is the interactive playground application.
type App struct {
	opts    Options
	logger  *slog.Logger
	logFile io.Closer
	store   *config.Store
	session *Session
	script  *rules.Script

	mu     sync.Mutex
	screen tcell.Screen

	shutdownOnce sync.Once
}

// New loads configuration and builds the typing pipeline. The screen is
// not created until Run.
func New(opts Options) (*App, error) {
	cfg, warnings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Layout != "" {
		cfg.Rules.Layout = opts.Layout
		cfg.Rules.Table = ""
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.Debug {
		cfg.Logging.Level = "debug"
	}
	if opts.LogFile != "" {
		cfg.Logging.File = opts.LogFile
	}
	warnings = append(warnings, cfg.Validate()...)

	logger, logFile, err := logging.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.File)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		logger.Warn("config", slog.String("issue", w))
	}

	table, script, err := buildRules(cfg, logger)
	if err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return nil, err
	}

	store := config.NewStore(cfg, opts.ConfigPath)
	a := &App{
		opts:    opts,
		logger:  logger,
		logFile: logFile,
		store:   store,
		script:  script,
	}
	a.session = NewSession(store, table, logger)

	// The watcher goroutine only swaps the snapshot pointer; rule
	// rebuilding happens on the event loop via a posted interrupt.
	store.OnReload(func(config.Config) {
		a.postInterrupt()
	})
	return a, nil
}

// Session exposes the typing pipeline, mainly for tests.
func (a *App) Session() *Session {
	return a.session
}

// Run creates the terminal screen and drives the event loop until the
// user quits. The returned error wraps ErrQuit on a clean exit.
func (a *App) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	a.mu.Lock()
	a.screen = screen
	a.mu.Unlock()
	defer screen.Fini()

	if a.opts.ConfigPath != "" {
		if err := a.store.Watch(a.logger); err != nil {
			a.logger.Warn("config watch unavailable", slog.Any("error", err))
		}
	}

	for {
		a.draw(screen)

		ev := screen.PollEvent()
		if ev == nil {
			// Fini was called from Shutdown.
			return ErrQuit
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if done := a.handleKey(ev); done {
				return ErrQuit
			}
		case *tcell.EventInterrupt:
			a.reloadRules()
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}

// Shutdown releases the screen, the config watcher, the script VM, and
// the log file. Safe to call more than once and from any goroutine.
func (a *App) Shutdown() {
	a.shutdownOnce.Do(func() {
		a.mu.Lock()
		screen := a.screen
		a.mu.Unlock()
		if screen != nil {
			screen.Fini()
		}
		if a.store != nil {
			a.store.Close()
		}
		if a.script != nil {
			a.script.Close()
		}
		if a.logFile != nil {
			a.logFile.Close()
		}
	})
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyCtrlT:
		enabled := a.session.Flip()
		a.logger.Info("hold detection toggled", slog.Bool("enabled", enabled))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.session.Backspace()
	case tcell.KeyEnter:
		a.typeRune('\n')
	case tcell.KeyTab:
		a.typeRune('\t')
	case tcell.KeyRune:
		a.typeRune(ev.Rune())
	}
	return false
}

func (a *App) typeRune(r rune) {
	if err := a.session.HandleRune(r, time.Now()); err != nil {
		a.logger.Warn("insert failed", slog.String("char", string(r)), slog.Any("error", err))
	}
}

// reloadRules rebuilds the rule table from the current config snapshot.
// On failure the previous table stays active.
func (a *App) reloadRules() {
	table, script, err := buildRules(a.store.Current(), a.logger)
	if err != nil {
		a.logger.Warn("keeping previous rule table", slog.Any("error", err))
		return
	}
	if a.script != nil {
		a.script.Close()
	}
	a.script = script
	a.session.SetTable(table)
	a.logger.Info("rule table reloaded", slog.String("table", a.session.TableName()))
}

func (a *App) postInterrupt() {
	a.mu.Lock()
	screen := a.screen
	a.mu.Unlock()
	if screen != nil {
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
}
