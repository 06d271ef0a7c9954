// Package output provides formatters for displaying captures and verification results.
//
// Supported output formats:
//   - Console: Human-readable colored terminal output
//   - JSON: Machine-readable JSON output
//
// Both formatters implement the Formatter interface and write each result
// as soon as it is formatted.
package output
