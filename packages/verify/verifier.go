package verify

import (
	"context"
	"fmt"
	"time"

	"github.com/abdul-hamid-achik/pathpick/packages/http"
	"github.com/abdul-hamid-achik/pathpick/packages/jsonpath"
	"github.com/abdul-hamid-achik/pathpick/packages/logger"
	"github.com/abdul-hamid-achik/pathpick/packages/request"
)

// Executor performs one HTTP call for a request config.
type Executor interface {
	Execute(ctx context.Context, cfg *request.Config) (*http.Capture, error)
}

var _ Executor = (*http.Client)(nil)

type Verifier struct {
	exec Executor
	log  logger.Logger
	now  func() time.Time
}

type Option func(*Verifier)

func WithLogger(l logger.Logger) Option {
	return func(v *Verifier) {
		if l != nil {
			v.log = l
		}
	}
}

// WithClock overrides the time source used for CheckedAt.
func WithClock(now func() time.Time) Option {
	return func(v *Verifier) {
		if now != nil {
			v.now = now
		}
	}
}

func NewVerifier(exec Executor, opts ...Option) *Verifier {
	v := &Verifier{
		exec: exec,
		log:  logger.Nop(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// VerifyPath executes cfg once and extracts cfg.SelectedPath from the fresh
// response. An empty selection fails without a network call.
func (v *Verifier) VerifyPath(ctx context.Context, cfg *request.Config) *TestResult {
	result := &TestResult{CheckedAt: v.now()}
	if cfg == nil || cfg.SelectedPath == "" {
		result.Kind = FailureNoSelection
		result.Error = "no path selected"
		return result
	}
	result.Path = cfg.SelectedPath

	capture, err := v.exec.Execute(ctx, cfg)
	if err != nil {
		result.Kind = FailureNetwork
		result.Error = err.Error()
		v.log.Warn("verification request failed", "path", cfg.SelectedPath, "error", err)
		return result
	}
	result.Status = capture.Status
	result.Duration = capture.Duration

	return v.check(result, capture)
}

// Check applies the selected path to an existing capture. It is used where a
// caller already performed the call itself.
func (v *Verifier) Check(capture *http.Capture, path string) *TestResult {
	result := &TestResult{CheckedAt: v.now(), Path: path}
	if path == "" {
		result.Kind = FailureNoSelection
		result.Error = "no path selected"
		return result
	}
	if capture == nil {
		result.Kind = FailureNetwork
		result.Error = "no response captured"
		return result
	}
	result.Status = capture.Status
	result.Duration = capture.Duration
	return v.check(result, capture)
}

func (v *Verifier) check(result *TestResult, capture *http.Capture) *TestResult {
	if !capture.IsJSONValid {
		result.Kind = FailureMalformed
		result.Error = fmt.Sprintf("response is not valid JSON (status %d)", capture.Status)
		if capture.Truncated {
			result.Error += "; body was truncated at the size limit"
		}
		v.log.Info("verification got non-JSON body", "path", result.Path, "status", capture.Status)
		return result
	}

	value, err := jsonpath.Lookup(capture.ParsedJSON, result.Path)
	if err != nil {
		result.Kind = FailurePathMissing
		result.Error = err.Error()
		v.log.Info("selected path not found", "path", result.Path, "status", capture.Status)
		return result
	}

	result.Success = true
	result.Value = value
	v.log.Debug("path verified", "path", result.Path, "value", value)
	return result
}
