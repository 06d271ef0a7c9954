// Package oracle runs a deployed oracle's task once: fetch, extract, report.
//
// The task definition is a request config plus selected path, either built
// directly or read from the environment variables an operator passes to the
// task (HTTP_METHOD, REQUEST_URL, JSON_PATH, REQUEST_BODY, REQUEST_HEADERS).
package oracle
