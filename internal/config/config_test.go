package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "vulnticket.yaml", `version: "1.2"
environments:
  PRD: "1. Production"
hosts:
  SVNIBCSQLP027: OneSumX
severity_order: [Critical, High]
columns:
  remediation: "Remediation (Solution)"
code_block: false
jira:
  project: SEC
  priorities:
    Critical: Highest
`)
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Environments["PRD"] != "1. Production" {
		t.Fatalf("expected PRD mapping, got %#v", cfg.Environments)
	}
	if cfg.Hosts["SVNIBCSQLP027"] != "OneSumX" {
		t.Fatalf("expected host mapping, got %#v", cfg.Hosts)
	}
	if len(cfg.SeverityOrder) != 2 || cfg.SeverityOrder[1] != "High" {
		t.Fatalf("unexpected severity order %#v", cfg.SeverityOrder)
	}
	if cfg.Columns["remediation"] != "Remediation (Solution)" {
		t.Fatalf("unexpected columns %#v", cfg.Columns)
	}
	if cfg.CodeBlock == nil || *cfg.CodeBlock {
		t.Fatalf("expected code_block=false")
	}
	if cfg.GetJira().GetProject() != "SEC" || cfg.GetJira().Priorities["Critical"] != "Highest" {
		t.Fatalf("unexpected jira config %#v", cfg.Jira)
	}
}

func TestLoadFile_RejectsIncompatibleVersion(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "vulnticket.yml", "version: 2.0.0\n")
	if _, err := LoadFile(p); err == nil {
		t.Fatal("expected error for version 2.0.0")
	}
	p = writeTemp(t, dir, "bad.yml", "version: banana\n")
	if _, err := LoadFile(p); err == nil {
		t.Fatal("expected error for unparsable version")
	}
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "vulnticket.yaml", "group_key: Vulnerability\n")
	writeTemp(t, dir, ".vulnticket.yaml", "group_key: Plugin Name\n")
	cfg, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("LoadLocal: %v", err)
	}
	if cfg.GroupKey == nil || *cfg.GroupKey != "Plugin Name" {
		t.Fatalf("expected group_key from .vulnticket.yaml, got %#v", cfg.GroupKey)
	}
}

func TestLoadLocal_NoConfig(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadLocal(dir); !errors.Is(err, ErrNoConfig) {
		t.Fatalf("expected ErrNoConfig when no local config exists, got %v", err)
	}
}

func TestLoadGlobal_XDG_Config(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "vulnticket")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeTemp(t, cfgDir, "config.yml", "default_environments: [PRD, ACP]\n")
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if len(cfg.DefaultEnvironments) != 2 || cfg.DefaultEnvironments[0] != "PRD" {
		t.Fatalf("expected default environments from global config, got %#v", cfg.DefaultEnvironments)
	}
}

func TestLoadGlobal_NoConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "")
	if _, err := LoadGlobal(); !errors.Is(err, ErrNoConfig) {
		t.Fatalf("expected ErrNoConfig when no global config dir exists, got %v", err)
	}
}

func TestMerge_LocalWins(t *testing.T) {
	gk := "Synopsis"
	lk := "Vulnerability"
	proj := "OPS"
	global := FileConfig{
		Hosts:         map[string]string{"a": "App1", "b": "App2"},
		SeverityOrder: []string{"Critical", "High"},
		GroupKey:      &gk,
		Jira:          &JiraConfig{Project: &proj, Priorities: map[string]string{"High": "High"}},
	}
	local := FileConfig{
		Hosts:    map[string]string{"b": "App3"},
		GroupKey: &lk,
		Jira:     &JiraConfig{Priorities: map[string]string{"Critical": "Highest"}},
	}
	m := Merge(global, local)
	if m.Hosts["a"] != "App1" || m.Hosts["b"] != "App3" {
		t.Fatalf("unexpected merged hosts %#v", m.Hosts)
	}
	if *m.GroupKey != "Vulnerability" {
		t.Fatalf("expected local group key")
	}
	if len(m.SeverityOrder) != 2 {
		t.Fatalf("expected global severity order kept")
	}
	j := m.GetJira()
	if j.GetProject() != "OPS" || j.Priorities["High"] != "High" || j.Priorities["Critical"] != "Highest" {
		t.Fatalf("unexpected merged jira %#v", j)
	}
}

func TestEnvironmentMap_Default(t *testing.T) {
	var fc FileConfig
	if fc.EnvironmentMap()["PRD"] != "1. Production" {
		t.Fatalf("expected built-in environment table")
	}
}

func TestLoadLocal_BadFileIsNotErrNoConfig(t *testing.T) {
	for name, body := range map[string]string{
		"unsupported version": "version: \"2.0\"\nhosts: {H1: OneSumX}\n",
		"malformed yaml":      "hosts: [unclosed\n",
	} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeTemp(t, dir, ".vulnticket.yml", body)
			_, err := LoadLocal(dir)
			if err == nil || errors.Is(err, ErrNoConfig) {
				t.Fatalf("expected a load error, got %v", err)
			}
		})
	}
}
