package vulnticket

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vulnticket/vulnticket/internal/config"
	"github.com/vulnticket/vulnticket/internal/engine"
	"github.com/vulnticket/vulnticket/internal/files"
	"github.com/vulnticket/vulnticket/internal/sheet"
	"github.com/vulnticket/vulnticket/internal/tui"
	"github.com/vulnticket/vulnticket/internal/types"
	"github.com/vulnticket/vulnticket/internal/validate"
)

// pickSelection runs the interactive picker; tests replace it.
var pickSelection = tui.RunPicker

// runRequest is the input side shared by export, preview and baseline update.
type runRequest struct {
	Dir         string // where spreadsheets are discovered
	Input       string
	Sheet       string
	Envs        []string
	Sevs        []string
	Interactive bool
}

func (r *runRequest) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&r.Input, "input", "i", "", "scan export (.xlsx/.csv) or a glob matching exactly one")
	cmd.Flags().StringVar(&r.Sheet, "sheet", "", "worksheet name (default: first sheet)")
	cmd.Flags().StringSliceVar(&r.Envs, "env", nil, "environment codes to include (repeatable or comma-separated)")
	cmd.Flags().StringSliceVar(&r.Sevs, "severity", nil, "severities to include (default: all)")
	cmd.Flags().BoolVar(&r.Interactive, "interactive", false, "choose file, environments and severities in a terminal UI")
}

type runOutcome struct {
	Input  string
	Envs   []string
	Sevs   []string
	Order  types.SeverityOrder
	Result engine.Result
}

func runPipeline(fc config.FileConfig, req runRequest) (runOutcome, error) {
	var out runOutcome
	out.Envs = pickList(req.Envs, fc.DefaultEnvironments)
	out.Sevs = pickList(req.Sevs, fc.DefaultSeverities)

	input, candidates, err := resolveInput(req)
	if err != nil {
		return out, err
	}

	if req.Interactive {
		sel, err := pickInteractive(fc, input, candidates, out.Envs, out.Sevs)
		if err != nil {
			return out, err
		}
		input, out.Envs, out.Sevs = sel.File, sel.Environments, sel.Severities
	}
	out.Input = input

	if err := validate.NonEmpty("environment (--env or default_environments)", out.Envs); err != nil {
		return out, err
	}

	cfg, err := buildEngineConfig(fc, out.Envs, out.Sevs)
	if err != nil {
		return out, err
	}
	out.Order = cfg.SeverityOrder

	debugf("reading %s", input)
	t, err := sheet.ReadFile(input, sheet.Options{Sheet: pickString(req.Sheet, fc.Sheet, nil)})
	if err != nil {
		return out, err
	}
	debugf("read %d rows, %d columns", t.Len(), len(t.Columns))

	res, err := engine.Run(cfg, t)
	if err != nil {
		return out, err
	}
	debugf("%d of %d rows matched, %d tickets in %s", res.Stats.MatchedRows, res.Stats.InputRows, res.Stats.Tickets, res.Duration)
	out.Result = res
	return out, nil
}

// resolveInput returns the input path, or, in interactive mode without an
// explicit input, the candidates for the picker.
func resolveInput(req runRequest) (string, []string, error) {
	if req.Input != "" {
		p, err := files.ResolveInput(req.Input)
		return p, nil, err
	}
	dir := req.Dir
	if dir == "" {
		dir = "."
	}
	found, err := files.Discover(dir)
	if err != nil {
		return "", nil, err
	}
	if req.Interactive {
		return "", found, nil
	}
	switch len(found) {
	case 0:
		return "", nil, fmt.Errorf("%w in %s; pass --input", files.ErrNoInputs, dir)
	case 1:
		logf("Using %s", found[0])
		return found[0], nil, nil
	}
	return "", nil, fmt.Errorf("found %d spreadsheets in %s (%s); pass --input or --interactive",
		len(found), dir, strings.Join(found, ", "))
}

func pickInteractive(fc config.FileConfig, input string, candidates, envs, sevs []string) (tui.Selection, error) {
	if !isInteractive() {
		return tui.Selection{}, errors.New("--interactive needs a terminal")
	}
	envMap := fc.EnvironmentMap()
	var choices []tui.Choice
	for _, code := range environmentChoices(envMap) {
		choices = append(choices, tui.Choice{Value: code, Label: envMap[code]})
	}
	order := types.DefaultSeverityLabels()
	if len(fc.SeverityOrder) > 0 {
		order = fc.SeverityOrder
	}
	if len(envs) == 0 && len(sevs) == 0 {
		prefs := tui.LoadPrefs()
		envs, sevs = prefs.Environments, prefs.Severities
	}
	sel, err := pickSelection(tui.PickerOptions{
		Files:                candidates,
		File:                 input,
		Environments:         choices,
		Severities:           order,
		SelectedEnvironments: envs,
		SelectedSeverities:   sevs,
	})
	if err != nil {
		return sel, err
	}
	if err := tui.Remember(sel); err != nil {
		debugf("could not save picker preferences: %v", err)
	}
	return sel, nil
}
