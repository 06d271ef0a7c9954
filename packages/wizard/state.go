package wizard

import (
	"errors"

	"github.com/abdul-hamid-achik/pathpick/packages/http"
	"github.com/abdul-hamid-achik/pathpick/packages/request"
	"github.com/abdul-hamid-achik/pathpick/packages/verify"
)

// Step is a wizard phase.
type Step int

const (
	StepConfiguring Step = iota
	StepInspecting
	StepSummarizing
)

func (s Step) String() string {
	switch s {
	case StepConfiguring:
		return "configure"
	case StepInspecting:
		return "inspect"
	case StepSummarizing:
		return "summarize"
	default:
		return "unknown"
	}
}

var (
	ErrBusy          = errors.New("another request is in progress")
	ErrConfigLocked  = errors.New("request config can only be changed in the configure step")
	ErrDeploying     = errors.New("wizard is deploying")
	ErrNoSelection   = errors.New("select a value before continuing")
	ErrLastStep      = errors.New("already at the last step")
	ErrNoDeployer    = errors.New("no deployer configured")
	ErrSelectionOff  = errors.New("response is not valid JSON; nothing can be selected")
	ErrNotLeaf       = errors.New("only leaf values can be selected")
	ErrRootPath      = errors.New("the response root cannot be selected")
	ErrUnknownPath   = errors.New("path does not exist in the current response")
	// ErrAmbiguousPath rejects leaves whose dotted encoding resolves to a
	// different location, such as keys containing "." or empty keys.
	ErrAmbiguousPath = errors.New("path cannot be encoded unambiguously; pick another value")
	ErrWrongStep     = errors.New("command not available in the current step")
)

// State is an immutable view of the wizard.
type State struct {
	Step      Step
	Deploying bool
	Busy      bool

	// Config is a copy; changing it does not affect the wizard.
	Config     *request.Config
	Validation request.Validation
	Capture    *http.Capture
	Result     *verify.TestResult

	// LastErr is the error of the most recent failed command, if any.
	LastErr   error
	DeployErr error

	// Valid holds the forward gate of each step.
	Valid [3]bool
}

// SelectionEnabled reports whether leaves of the capture can be selected.
func (s State) SelectionEnabled() bool {
	return s.Step == StepInspecting && s.Capture != nil && s.Capture.IsJSONValid
}

func (s State) CanNext() bool {
	return !s.Deploying && !s.Busy && s.Step < StepSummarizing && s.Valid[s.Step]
}

func (s State) CanBack() bool {
	return !s.Deploying && s.Step > StepConfiguring
}
