package core

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var header = []string{
	"Hostname", "Vulnerability", "Remediation", "Role", "Environment",
	"Synopsis", "Plugin Text", "VPR", "VPR Score", "First Discovered", "CVE",
}

func TestTransform_Smoke(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SelectedEnvironments = []string{"PRD"}
	tbl := NewTable(header, [][]string{
		{"H1", "OpenSSL Bug", "Upgrade", "Web", "PRD", "OpenSSL Bug", "<plugin_output>1.0.2</plugin_output>", "Critical", "9.1", "2024-01-01", "CVE-2024-1"},
		{"H2", "OpenSSL Bug", "Upgrade", "DB", "TST", "OpenSSL Bug", "", "Critical", "9.1", "2024-01-01", ""},
	})
	res, err := Transform(cfg, tbl)
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	if len(res.Tickets) != 1 {
		t.Fatalf("expected 1 ticket, got %d", len(res.Tickets))
	}
	if res.Tickets[0].Title != "N/A - Critical - OpenSSL Bug" {
		t.Fatalf("unexpected title %q", res.Tickets[0].Title)
	}

	var buf bytes.Buffer
	if err := MarshalTickets(&buf, res.Tickets); err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := UnmarshalTickets(&buf)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back) != 1 || back[0].Description != res.Tickets[0].Description {
		t.Fatalf("round trip mismatch: %#v", back)
	}
}

func TestTransformFile_CSV(t *testing.T) {
	p := filepath.Join(t.TempDir(), "scan.csv")
	body := "Hostname,Vulnerability,Remediation,Role,Environment,Synopsis,Plugin Text,VPR,VPR Score,First Discovered,CVE\n" +
		"H1,Weak TLS,Disable,Web,ACP,Weak TLS,,Low,2.0,,\n"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.SelectedEnvironments = []string{"PRD"}
	_, err := TransformFile(cfg, p, "")
	var empty *EmptyResultError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptyResultError, got %v", err)
	}

	cfg.SelectedEnvironments = []string{"ACP"}
	res, err := TransformFile(cfg, p, "")
	if err != nil {
		t.Fatalf("TransformFile: %v", err)
	}
	if res.Stats.Tickets != 1 {
		t.Fatalf("expected 1 ticket, got %d", res.Stats.Tickets)
	}
}

func TestMarshalTickets_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := MarshalTickets(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "[]\n" {
		t.Fatalf("expected empty array, got %q", buf.String())
	}
}

func TestTransform_TypedErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SelectedEnvironments = []string{"PRD"}

	_, err := Transform(cfg, NewTable(header[:len(header)-1], [][]string{
		{"H1", "X", "Fix", "Web", "PRD", "X", "", "High", "7.0", "2024-01-01"},
	}))
	var mf *MissingFieldsError
	if !errors.As(err, &mf) {
		t.Fatalf("expected *MissingFieldsError, got %v", err)
	}
	if len(mf.Missing) != 1 || mf.Missing[0] != "CVE" {
		t.Fatalf("unexpected missing columns %v", mf.Missing)
	}

	cfg.SelectedEnvironments = []string{"ACP"}
	_, err = Transform(cfg, NewTable(header, [][]string{
		{"H1", "X", "Fix", "Web", "PRD", "X", "", "High", "7.0", "2024-01-01", ""},
	}))
	var empty *EmptyResultError
	if !errors.As(err, &empty) {
		t.Fatalf("expected *EmptyResultError, got %v", err)
	}
}
