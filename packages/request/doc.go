// Package request holds the user-described outbound HTTP request.
//
// A Config is the single piece of configuration state for a pathpick
// session. It provides:
//   - Field mutation for method, URL and body
//   - An ordered header list that tolerates blanks and duplicates while editing
//   - Validation with per-field messages
//   - The header/body filtering applied when the request is actually sent
package request
