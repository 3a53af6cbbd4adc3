package vulnticket

import (
	"errors"
	"os"
	"sort"
	"strings"

	"github.com/vulnticket/vulnticket/internal/config"
	"github.com/vulnticket/vulnticket/internal/engine"
	"github.com/vulnticket/vulnticket/internal/report"
	"github.com/vulnticket/vulnticket/internal/types"
	"golang.org/x/term"
)

// loadConfig returns the effective file config. An explicit --config file is
// loaded alone and must exist; otherwise the local config is layered over the
// global one. Either may be absent, but a file that exists must load.
func loadConfig(dir string) (config.FileConfig, error) {
	if flagConfig != "" {
		return config.LoadFile(flagConfig)
	}
	gcfg, err := config.LoadGlobal()
	switch {
	case err == nil:
		debugf("loaded global config %s", config.GlobalPath())
	case !errors.Is(err, config.ErrNoConfig):
		return config.FileConfig{}, err
	}
	lcfg, err := config.LoadLocal(dir)
	switch {
	case err == nil:
		debugf("loaded local config from %s", dir)
	case !errors.Is(err, config.ErrNoConfig):
		return config.FileConfig{}, err
	}
	return config.Merge(gcfg, lcfg), nil
}

// buildEngineConfig turns the file config and the selection into an engine config.
func buildEngineConfig(fc config.FileConfig, envs, sevs []string) (engine.Config, error) {
	cfg := engine.DefaultConfig()
	cols, err := cfg.Columns.Override(fc.Columns)
	if err != nil {
		return cfg, err
	}
	cfg.Columns = cols
	cfg.RequiredColumns = fc.RequiredColumns
	cfg.GroupKey = pickString("", fc.GroupKey, nil)
	cfg.Environments = fc.EnvironmentMap()
	cfg.Hosts = fc.Hosts
	cfg.Applications = fc.Applications
	if len(fc.SeverityOrder) > 0 {
		cfg.SeverityOrder = types.NewSeverityOrder(fc.SeverityOrder)
	}
	cfg.Format = report.FormatOptions{CodeBlock: pickBoolDefault(true, fc.CodeBlock)}
	cfg.SelectedEnvironments = envs
	cfg.SelectedSeverities = sevs
	return cfg, nil
}

// useColor reports whether console output may carry ANSI colours.
func useColor(fc config.FileConfig) bool {
	if flagNoColor || pickBool(false, fc.NoColor, nil) || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// isInteractive reports whether stdin and stdout are a terminal.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// environmentChoices lists env codes ordered by their display name.
func environmentChoices(envMap map[string]string) []string {
	codes := make([]string, 0, len(envMap))
	for c := range envMap {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool {
		if envMap[codes[i]] != envMap[codes[j]] {
			return envMap[codes[i]] < envMap[codes[j]]
		}
		return codes[i] < codes[j]
	})
	return codes
}

// cleanList trims entries, splits any remaining commas and drops blanks.
func cleanList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickList(cli, fromConfig []string) []string {
	if l := cleanList(cli); len(l) > 0 {
		return l
	}
	return cleanList(fromConfig)
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}

func pickBoolDefault(def bool, v *bool) bool {
	if v != nil {
		return *v
	}
	return def
}
