package tui

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

const prefsDir, prefsFile = ".vulnticket", "tui_prefs.json"

// Prefs is the last confirmed picker selection. The input file is not kept
// because exports are usually a new file each time.
type Prefs struct {
	Environments []string `json:"environments,omitempty"`
	Severities   []string `json:"severities,omitempty"`
}

func prefsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if home == "" {
		return "", errors.New("no home directory")
	}
	return filepath.Join(home, prefsDir, prefsFile), nil
}

// LoadPrefs returns the saved selection. A missing or unreadable file yields
// zero Prefs so the picker starts empty.
func LoadPrefs() Prefs {
	p, err := prefsPath()
	if err != nil {
		return Prefs{}
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return Prefs{}
	}
	var prefs Prefs
	if json.Unmarshal(b, &prefs) != nil {
		return Prefs{}
	}
	return prefs
}

// SavePrefs writes prefs under the user's home directory, readable by the
// owner only.
func SavePrefs(prefs Prefs) error {
	p, err := prefsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

// Remember stores the environments and severities of sel for the next session.
func Remember(sel Selection) error {
	return SavePrefs(Prefs{Environments: sel.Environments, Severities: sel.Severities})
}
