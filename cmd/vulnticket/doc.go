// Package vulnticket provides the command-line interface for vulnticket. It
// configures subcommands (export, preview, baseline, history, etc.), parses
// flags and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/vulnticket/vulnticket/cmd/vulnticket"
//	func main() { vulnticket.Execute() }
package vulnticket
