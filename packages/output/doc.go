// Package output provides formatters for reporting conversion results.
//
// Supported output formats:
//   - Console: Human-readable colored terminal output
//   - JSON: Machine-readable JSON output
//
// Both formatters accumulate totals and write a summary on Flush.
package output
