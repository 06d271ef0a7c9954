package tui

import (
	"fmt"

	"github.com/abdul-hamid-achik/pathpick/packages/wizard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles all messages. Wizard commands run as tea.Cmds and report
// back through executedMsg, verifiedMsg and deployedMsg.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg), nil

	case executedMsg:
		return m.handleExecuted(msg), nil

	case verifiedMsg:
		return m.handleVerified(msg), nil

	case deployedMsg:
		return m.handleDeployed(msg), nil

	case spinner.TickMsg:
		if m.inflight == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blinks and other input-level messages.
	var cmd tea.Cmd
	switch m.wizard.Snapshot().Step {
	case wizard.StepConfiguring:
		m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	case wizard.StepSummarizing:
		m.name, cmd = m.name.Update(msg)
	}
	return m, cmd
}

func (m Model) handleWindowResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	m.viewport.Width = max(m.width-4, 20)
	m.viewport.Height = max(m.height-10, 5)
	for i := range m.form.inputs {
		m.form.inputs[i].Width = max(m.width-16, 20)
	}
	m.name.Width = max(m.width-16, 20)
	return m
}

func (m Model) start(label string, cmd tea.Cmd) (Model, tea.Cmd) {
	m.inflight = label
	m.err = nil
	m.notice = ""
	return m, tea.Batch(m.spinner.Tick, cmd)
}

func (m Model) handleExecuted(msg executedMsg) Model {
	m.inflight = ""
	if msg.err != nil {
		m.err = msg.err
		return m
	}

	s := m.wizard.Snapshot()
	if s.Capture == nil {
		return m
	}
	m.tree = newTree(s.Capture.RawText)
	m.viewport.SetContent(s.Capture.RawText)
	m.viewport.GotoTop()

	if s.Capture.IsJSONValid {
		if s.Config.SelectedPath != "" {
			m.tree.focus(s.Config.SelectedPath)
		} else if n, ok := m.tree.current(); ok && !n.IsLeaf() {
			m.tree.moveToLeaf(1)
		}
		m.notice = fmt.Sprintf("%d %s", s.Capture.Status, s.Capture.StatusText)
	} else {
		m.notice = "response is not valid JSON; selection is disabled"
	}
	return m
}

func (m Model) handleVerified(msg verifiedMsg) Model {
	m.inflight = ""
	if msg.err != nil {
		m.err = msg.err
		return m
	}
	if msg.result.Success {
		m.notice = fmt.Sprintf("verified %s = %s", msg.result.Path, msg.result.ValueJSON())
	} else {
		m.err = fmt.Errorf("verification failed: %s", msg.result.Error)
	}
	return m
}

func (m Model) handleDeployed(msg deployedMsg) Model {
	m.inflight = ""
	if msg.err != nil {
		m.err = msg.err
		return m
	}
	m.notice = fmt.Sprintf("deployed %q", m.name.Value())
	return m
}
