package tui

import (
	"context"

	"github.com/abdul-hamid-achik/pathpick/packages/verify"
	"github.com/abdul-hamid-achik/pathpick/packages/wizard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the Bubble Tea model for the wizard. All request state lives in
// the wizard; the model only holds presentation state.
type Model struct {
	ctx    context.Context
	wizard *wizard.Wizard

	form     form
	tree     tree
	name     textinput.Model
	spinner  spinner.Model
	viewport viewport.Model

	// inflight is set while a wizard command runs; keys other than quit
	// are ignored until its message arrives.
	inflight string
	notice   string
	err      error
	copy     func(string) error

	width  int
	height int
	ready  bool
}

// executedMsg is sent when the configure step's request returns.
type executedMsg struct {
	err error
}

// verifiedMsg carries a verification result.
type verifiedMsg struct {
	result *verify.TestResult
	err    error
}

// deployedMsg is sent when the deployer returns.
type deployedMsg struct {
	err error
}

func nextCmd(ctx context.Context, w *wizard.Wizard) tea.Cmd {
	return func() tea.Msg {
		return executedMsg{err: w.Next(ctx)}
	}
}

func verifyCmd(ctx context.Context, w *wizard.Wizard) tea.Cmd {
	return func() tea.Msg {
		result, err := w.VerifyPath(ctx)
		return verifiedMsg{result: result, err: err}
	}
}

func deployCmd(ctx context.Context, w *wizard.Wizard, name string) tea.Cmd {
	return func() tea.Msg {
		return deployedMsg{err: w.Deploy(ctx, name)}
	}
}
