// Package config loads vulnticket configuration from local and global YAML files
// with precedence rules. It holds the static lookup tables (environment codes,
// host to application mapping) that the CLI passes into the engine.
package config
