package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	semver "github.com/blang/semver/v4"
	"gopkg.in/yaml.v3"
)

// SupportedMajor is the config schema major version this build understands.
const SupportedMajor = 1

// FileConfig is the on-disk YAML configuration shape for vulnticket.
type FileConfig struct {
	Version *string `yaml:"version,omitempty"`

	// Static lookup tables.
	Environments map[string]string `yaml:"environments,omitempty"` // code -> display name
	Hosts        map[string]string `yaml:"hosts,omitempty"`        // hostname -> application
	Applications map[string]string `yaml:"applications,omitempty"` // application -> display name

	SeverityOrder   []string          `yaml:"severity_order,omitempty"`
	RequiredColumns []string          `yaml:"required_columns,omitempty"`
	Columns         map[string]string `yaml:"columns,omitempty"`
	GroupKey        *string           `yaml:"group_key,omitempty"`

	// Default selections when no --env / --severity flag is given.
	DefaultEnvironments []string `yaml:"default_environments,omitempty"`
	DefaultSeverities   []string `yaml:"default_severities,omitempty"`

	Format    *string `yaml:"format,omitempty"`
	Sheet     *string `yaml:"sheet,omitempty"`
	CodeBlock *bool   `yaml:"code_block,omitempty"`
	NoColor   *bool   `yaml:"no_color,omitempty"`

	Jira *JiraConfig `yaml:"jira,omitempty"`
}

// JiraConfig holds options for the Jira CSV importer format.
type JiraConfig struct {
	Project    *string           `yaml:"project,omitempty"`
	IssueType  *string           `yaml:"issue_type,omitempty"`
	Priorities map[string]string `yaml:"priorities,omitempty"` // severity -> Jira priority
	Labels     []string          `yaml:"labels,omitempty"`
}

// DefaultEnvironments is the built-in environment code table.
func DefaultEnvironments() map[string]string {
	return map[string]string{
		"Dev": "4. Development",
		"TST": "3. Test",
		"ACP": "2. Acceptance",
		"PRD": "1. Production",
	}
}

// LoadFile reads a YAML config file from the provided path and checks its version.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := CheckVersion(cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// CheckVersion rejects configs written for an incompatible schema. A missing
// version is accepted.
func CheckVersion(cfg FileConfig) error {
	if cfg.Version == nil || *cfg.Version == "" {
		return nil
	}
	v, err := semver.ParseTolerant(*cfg.Version)
	if err != nil {
		return fmt.Errorf("invalid config version %q: %w", *cfg.Version, err)
	}
	if v.Major != SupportedMajor {
		return fmt.Errorf("unsupported config version %s (want %d.x)", v, SupportedMajor)
	}
	return nil
}

// ErrNoConfig is returned by LoadLocal and LoadGlobal when no config file exists.
var ErrNoConfig = errors.New("no config file")

// LoadLocal searches for a project-local config file in the given directory.
// It supports .vulnticket.yml/.yaml and vulnticket.yml/.yaml. A file that
// exists but fails to parse or has an unsupported version is an error.
func LoadLocal(dir string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".vulnticket.yml", ".vulnticket.yaml", "vulnticket.yml", "vulnticket.yaml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, ErrNoConfig
}

// GlobalPath returns the global config location, or "" when no config dir exists.
func GlobalPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return ""
	}
	return filepath.Join(base, "vulnticket", "config.yml")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	p := GlobalPath()
	if p == "" {
		return cfg, ErrNoConfig
	}
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, ErrNoConfig
}

// Merge layers local over global. Scalars and lists from local win when set;
// lookup maps are merged key by key with local entries taking precedence.
func Merge(global, local FileConfig) FileConfig {
	out := global
	if local.Version != nil {
		out.Version = local.Version
	}
	out.Environments = mergeMap(global.Environments, local.Environments)
	out.Hosts = mergeMap(global.Hosts, local.Hosts)
	out.Applications = mergeMap(global.Applications, local.Applications)
	out.Columns = mergeMap(global.Columns, local.Columns)
	if len(local.SeverityOrder) > 0 {
		out.SeverityOrder = local.SeverityOrder
	}
	if len(local.RequiredColumns) > 0 {
		out.RequiredColumns = local.RequiredColumns
	}
	if len(local.DefaultEnvironments) > 0 {
		out.DefaultEnvironments = local.DefaultEnvironments
	}
	if len(local.DefaultSeverities) > 0 {
		out.DefaultSeverities = local.DefaultSeverities
	}
	if local.GroupKey != nil {
		out.GroupKey = local.GroupKey
	}
	if local.Format != nil {
		out.Format = local.Format
	}
	if local.Sheet != nil {
		out.Sheet = local.Sheet
	}
	if local.CodeBlock != nil {
		out.CodeBlock = local.CodeBlock
	}
	if local.NoColor != nil {
		out.NoColor = local.NoColor
	}
	out.Jira = mergeJira(global.Jira, local.Jira)
	return out
}

func mergeJira(global, local *JiraConfig) *JiraConfig {
	if global == nil && local == nil {
		return nil
	}
	var out JiraConfig
	if global != nil {
		out = *global
	}
	if local == nil {
		return &out
	}
	if local.Project != nil {
		out.Project = local.Project
	}
	if local.IssueType != nil {
		out.IssueType = local.IssueType
	}
	if len(local.Labels) > 0 {
		out.Labels = local.Labels
	}
	var gp map[string]string
	if global != nil {
		gp = global.Priorities
	}
	out.Priorities = mergeMap(gp, local.Priorities)
	return &out
}

func mergeMap(global, local map[string]string) map[string]string {
	if len(global) == 0 && len(local) == 0 {
		return nil
	}
	out := make(map[string]string, len(global)+len(local))
	for k, v := range global {
		out[k] = v
	}
	for k, v := range local {
		out[k] = v
	}
	return out
}

// EnvironmentMap returns the configured environment table, or the built-in one.
func (fc FileConfig) EnvironmentMap() map[string]string {
	if len(fc.Environments) == 0 {
		return DefaultEnvironments()
	}
	return fc.Environments
}

// GetJira returns the Jira section, never nil.
func (fc FileConfig) GetJira() JiraConfig {
	if fc.Jira == nil {
		return JiraConfig{}
	}
	return *fc.Jira
}

// GetProject returns the configured project key or empty string.
func (jc JiraConfig) GetProject() string {
	if jc.Project == nil {
		return ""
	}
	return *jc.Project
}

// GetIssueType returns the configured issue type or empty string.
func (jc JiraConfig) GetIssueType() string {
	if jc.IssueType == nil {
		return ""
	}
	return *jc.IssueType
}
