package tui

import (
	"context"

	"github.com/abdul-hamid-achik/pathpick/packages/wizard"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Option configures a Model.
type Option func(*Model)

// WithDeployName pre-fills the deployment name in the summary step.
func WithDeployName(name string) Option {
	return func(m *Model) {
		m.name.SetValue(name)
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(fn func(string) error) Option {
	return func(m *Model) {
		m.copy = fn
	}
}

// NewModel builds the wizard model for w.
func NewModel(ctx context.Context, w *wizard.Wizard, opts ...Option) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = CursorStyle

	name := textinput.New()
	name.Placeholder = "btc-usd"
	name.Prompt = ""
	name.CharLimit = 63

	m := Model{
		ctx:      ctx,
		wizard:   w,
		form:     newForm(w.Snapshot().Config),
		name:     name,
		spinner:  sp,
		viewport: viewport.New(80, 10),
		copy:     clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Run starts the interactive wizard and blocks until the user quits.
func Run(ctx context.Context, w *wizard.Wizard, opts ...Option) error {
	m := NewModel(ctx, w, opts...)
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := prog.Run()
	return err
}
