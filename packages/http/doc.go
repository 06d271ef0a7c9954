// Package http executes a request.Config and captures the response.
//
// It wraps the standard library's http package with:
//   - Configurable timeouts, redirects, TLS verification and proxy
//   - Header filtering and body attachment rules from the request package
//   - Placeholder resolution for URL, header values and body
//   - A Capture of status, headers and raw text, classified as JSON or text
package http
