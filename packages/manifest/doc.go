// Package manifest reads and writes saved oracle definitions.
//
// A manifest is a YAML document holding a name, the request config and the
// selected path, optionally with the value seen at the last verification.
// Documents are checked against an embedded JSON Schema before they are
// decoded, so malformed files are reported with every offending field.
package manifest
