// Package core provides a small, stable facade over vulnticket's internal
// engine for programs that want tickets without going through the CLI.
//
// Example:
//
//	cfg := core.DefaultConfig()
//	cfg.SelectedEnvironments = []string{"PRD"}
//	res, err := core.TransformFile(cfg, "scan.xlsx", "")
//	if err != nil { /* handle */ }
//	_ = core.MarshalTickets(os.Stdout, res.Tickets)
package core
