// Package commands provides the command-line interface for the jotter tool.
//
// It implements commands for:
//   - sealing and opening whole stores (enc, dec)
//   - working with single entries (list, show, put, rm, mv)
//   - checking files (verify, info)
//   - passwords and settings (gen, cfg)
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands
