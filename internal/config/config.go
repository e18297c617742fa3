package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/dshills/holdshift/internal/hold"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "HOLDSHIFT_"

// Config is the full configuration snapshot.
type Config struct {
	Hold    HoldConfig    `toml:"hold"`
	Rules   RulesConfig   `toml:"rules"`
	Logging LoggingConfig `toml:"logging"`
}

// HoldConfig is the detector timing and counting configuration.
// Delay and Interval are in seconds.
type HoldConfig struct {
	Delay        float64 `toml:"delay"`
	Interval     float64 `toml:"interval"`
	TriggerCount int     `toml:"trigger_count"`
}

// Thresholds converts the configured values to detector thresholds.
func (h HoldConfig) Thresholds() hold.Thresholds {
	return hold.Thresholds{
		Delay:        time.Duration(h.Delay * float64(time.Second)),
		Interval:     time.Duration(h.Interval * float64(time.Second)),
		TriggerCount: h.TriggerCount,
	}
}

// RulesConfig selects the active substitution table.
type RulesConfig struct {
	// Layout names a built-in table ("qwerty" or "programmer").
	Layout string `toml:"layout"`

	// Table optionally points at a custom TOML/YAML table file, which
	// takes precedence over Layout.
	Table string `toml:"table"`

	// Script optionally points at a Lua file defining the actions the
	// custom table references.
	Script string `toml:"script"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Hold: HoldConfig{
			Delay:        hold.DefaultDelay.Seconds(),
			Interval:     hold.DefaultInterval.Seconds(),
			TriggerCount: hold.DefaultTriggerCount,
		},
		Rules: RulesConfig{
			Layout: "qwerty",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds a configuration from defaults, the TOML file at path (a
// missing file is not an error), and environment overrides, then
// validates it. The returned warnings describe clamped values.
func Load(path string) (Config, []string, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// No file, defaults apply.
		case err != nil:
			return cfg, nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	warnings := cfg.Validate()
	return cfg, warnings, nil
}

// applyEnv overlays HOLDSHIFT_* environment variables. Unparseable
// values are ignored.
func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvPrefix + "DELAY"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Hold.Delay = f
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "INTERVAL"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Hold.Interval = f
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "TRIGGER_COUNT"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.Hold.TriggerCount = n
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LAYOUT"); ok {
		c.Rules.Layout = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
}

// Validate clamps out-of-range values back to defaults and returns a
// warning per correction.
func (c *Config) Validate() []string {
	var warnings []string
	def := Default()

	if c.Hold.Delay <= 0 {
		warnings = append(warnings, fmt.Sprintf("hold.delay %v out of range, using %v", c.Hold.Delay, def.Hold.Delay))
		c.Hold.Delay = def.Hold.Delay
	}
	if c.Hold.Interval <= 0 {
		warnings = append(warnings, fmt.Sprintf("hold.interval %v out of range, using %v", c.Hold.Interval, def.Hold.Interval))
		c.Hold.Interval = def.Hold.Interval
	}
	if c.Hold.TriggerCount < 2 {
		warnings = append(warnings, fmt.Sprintf("hold.trigger_count %d out of range, using %d", c.Hold.TriggerCount, def.Hold.TriggerCount))
		c.Hold.TriggerCount = def.Hold.TriggerCount
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		warnings = append(warnings, fmt.Sprintf("logging.level %q unknown, using %q", c.Logging.Level, def.Logging.Level))
		c.Logging.Level = def.Logging.Level
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		warnings = append(warnings, fmt.Sprintf("logging.format %q unknown, using %q", c.Logging.Format, def.Logging.Format))
		c.Logging.Format = def.Logging.Format
	}
	return warnings
}
