package tui

import (
	"errors"
	"strings"

	"github.com/abdul-hamid-achik/pathpick/packages/wizard"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg routes keys to the handler for the current step. While a
// wizard command is in flight only quitting is possible.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.inflight != "" {
		return m, nil
	}

	s := m.wizard.Snapshot()
	if s.Deploying {
		return m.handleDeployingKey(msg)
	}
	switch s.Step {
	case wizard.StepConfiguring:
		return m.handleConfigureKey(msg)
	case wizard.StepInspecting:
		return m.handleInspectKey(msg, s)
	default:
		return m.handleSummaryKey(msg)
	}
}

func (m Model) handleConfigureKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit

	case "tab", "down":
		m.form.setFocus(m.form.focus + 1)
		return m, nil

	case "shift+tab", "up":
		m.form.setFocus(m.form.focus - 1)
		return m, nil

	case "ctrl+n":
		m.err = m.form.addHeader(m.wizard)
		return m, nil

	case "ctrl+d":
		m.err = m.form.removeHeader(m.wizard)
		return m, nil

	case "enter", "ctrl+s":
		if err := m.wizard.Snapshot().Validation.Err(); err != nil {
			m.err = err
			return m, nil
		}
		return m.start("fetching response", nextCmd(m.ctx, m.wizard))
	}

	cmd, err := m.form.update(msg, m.wizard)
	m.err = err
	return m, cmd
}

func (m Model) handleInspectKey(msg tea.KeyMsg, s wizard.State) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "left", "b":
		m.wizard.Back()
		m.err, m.notice = nil, ""
		return m, nil

	case "up", "k":
		m.tree.move(-1)
		return m, nil

	case "down", "j":
		m.tree.move(1)
		return m, nil

	case "pgup":
		m.tree.move(-10)
		return m, nil

	case "pgdown":
		m.tree.move(10)
		return m, nil

	case "shift+up", "K":
		m.tree.moveToLeaf(-1)
		return m, nil

	case "shift+down", "J":
		m.tree.moveToLeaf(1)
		return m, nil

	case "enter", " ":
		if !s.SelectionEnabled() {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m.selectCurrent(), nil

	case "v", "ctrl+r":
		return m.start("verifying path", verifyCmd(m.ctx, m.wizard))

	case "y":
		return m.copySelected(s), nil

	case "n", "right", "tab":
		m.err = m.wizard.Next(m.ctx)
		if m.err == nil {
			m.notice = ""
			m.name.Focus()
		}
		return m, nil
	}

	if !s.SelectionEnabled() {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) selectCurrent() Model {
	node, ok := m.tree.current()
	if !ok {
		return m
	}
	err := m.wizard.SelectNode(node.Path)
	switch {
	case errors.Is(err, wizard.ErrNotLeaf):
		m.err = errors.New("only leaf values can be selected; move to a value")
	case err != nil:
		m.err = err
	default:
		m.err = nil
		m.notice = "selected " + node.Path.String()
	}
	return m
}

func (m Model) copySelected(s wizard.State) Model {
	if s.Config.SelectedPath == "" {
		m.err = wizard.ErrNoSelection
		return m
	}
	if err := m.copy(s.Config.SelectedPath); err != nil {
		m.err = err
		return m
	}
	m.notice = "copied " + s.Config.SelectedPath
	return m
}

func (m Model) handleSummaryKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.wizard.Back()
		m.name.Blur()
		m.err, m.notice = nil, ""
		return m, nil

	case "ctrl+r":
		return m.start("verifying path", verifyCmd(m.ctx, m.wizard))

	case "enter":
		name := strings.TrimSpace(m.name.Value())
		m.name.SetValue(name)
		return m.start("deploying", deployCmd(m.ctx, m.wizard, name))
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

func (m Model) handleDeployingKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "enter":
		return m, tea.Quit
	}
	return m, nil
}
