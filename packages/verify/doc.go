// Package verify re-checks a selected response path against a fresh call.
//
// VerifyPath never reuses a previously captured response: it executes the
// request again, parses the body and extracts the selected path, reporting
// the outcome as a TestResult. Failures are values, not errors.
//
// Sample repeats the check at a fixed rate and reports latency percentiles
// and whether every successful sample returned the same value.
package verify
