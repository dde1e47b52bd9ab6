// Package cmd implements the truth CLI commands using Cobra.
//
// Available commands:
//   - convert: Rewrite testify assertions in _test.go files
//   - init: Write a default .truthconv.yaml
//   - version: Show truth version information
//   - completion: Generate shell completion scripts
package cmd
