package verify

import (
	"encoding/json"
	"time"
)

// FailureKind classifies an unsuccessful verification.
type FailureKind string

const (
	FailureNone        FailureKind = ""
	FailureNetwork     FailureKind = "network"
	FailureMalformed   FailureKind = "malformed_response"
	FailurePathMissing FailureKind = "path_not_found"
	FailureNoSelection FailureKind = "missing_path"
)

// TestResult is the immutable outcome of one verification.
type TestResult struct {
	Success bool        `json:"success"`
	Value   any         `json:"value"`
	Error   string      `json:"error,omitempty"`
	Kind    FailureKind `json:"kind,omitempty"`

	Path      string        `json:"path"`
	Status    int           `json:"status,omitempty"`
	Duration  time.Duration `json:"duration"`
	CheckedAt time.Time     `json:"checkedAt"`
}

// ValueJSON returns the JSON text of the extracted value, or "" for failures.
func (r *TestResult) ValueJSON() string {
	if r == nil || !r.Success {
		return ""
	}
	b, err := json.Marshal(r.Value)
	if err != nil {
		return ""
	}
	return string(b)
}
