// Package engine contains the core transformation of vulnticket. It validates
// an input table, filters rows by environment and severity, enriches them with
// display names, groups them by (finding, severity) and formats one ticket per
// group. This package is internal; external consumers should use the stable
// facade in pkg/core.
package engine
