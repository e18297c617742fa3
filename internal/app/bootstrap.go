package app

import (
	"fmt"
	"log/slog"

	"github.com/dshills/holdshift/internal/config"
	"github.com/dshills/holdshift/internal/rules"
)

// buildRules resolves the active rule table and optional action script
// from configuration. Precedence: an explicit table file wins over a
// built-in layout; neither configured means lowercase-only mode (nil
// table). The caller owns the returned script.
func buildRules(cfg config.Config, logger *slog.Logger) (*rules.Table, *rules.Script, error) {
	var script *rules.Script
	var actions rules.Actions
	if cfg.Rules.Script != "" {
		sc, err := rules.LoadScript(cfg.Rules.Script)
		if err != nil {
			return nil, nil, fmt.Errorf("loading rule script: %w", err)
		}
		script = sc
		actions = sc
	}

	var table *rules.Table
	var err error
	switch {
	case cfg.Rules.Table != "":
		table, err = rules.LoadFile(cfg.Rules.Table, actions)
	case cfg.Rules.Layout != "":
		table, err = rules.Layout(cfg.Rules.Layout)
	}
	if err != nil {
		if script != nil {
			script.Close()
		}
		return nil, nil, err
	}

	if table != nil {
		if dups := table.Duplicates(); len(dups) > 0 {
			logger.Warn("rule table has shadowed duplicate sources",
				slog.String("table", table.Name()),
				slog.String("sources", string(dups)))
		}
	}
	return table, script, nil
}
