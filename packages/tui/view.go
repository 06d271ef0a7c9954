package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abdul-hamid-achik/pathpick/packages/request"
	"github.com/abdul-hamid-achik/pathpick/packages/wizard"
)

var stepTitles = []string{"Configure", "Inspect", "Summarize"}

// View renders the current step.
func (m Model) View() string {
	s := m.wizard.Snapshot()

	var b strings.Builder
	b.WriteString(m.renderHeader(s))
	b.WriteString("\n\n")

	switch {
	case s.Deploying:
		b.WriteString(m.renderDeploying(s))
	case s.Step == wizard.StepConfiguring:
		b.WriteString(m.renderConfigure(s))
	case s.Step == wizard.StepInspecting:
		b.WriteString(m.renderInspect(s))
	default:
		b.WriteString(m.renderSummary(s))
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(m.help(s)))
	return b.String()
}

func (m Model) renderHeader(s wizard.State) string {
	parts := make([]string, len(stepTitles))
	for i, title := range stepTitles {
		label := fmt.Sprintf("%d %s", i+1, title)
		switch {
		case wizard.Step(i) == s.Step && !s.Deploying:
			parts[i] = StepActiveStyle.Render(label)
		case wizard.Step(i) < s.Step || s.Deploying:
			parts[i] = StepDoneStyle.Render(label)
		default:
			parts[i] = StepPendingStyle.Render(label)
		}
	}
	return TitleStyle.Render("pathpick") + "  " + strings.Join(parts, HelpStyle.Render(" › "))
}

func (m Model) renderConfigure(s wizard.State) string {
	var b strings.Builder
	for i, input := range m.form.inputs {
		label := LabelStyle.Render(m.form.label(i))
		if i == m.form.focus {
			label = FocusedLabelStyle.Render(m.form.label(i))
		}
		b.WriteString(label + input.View() + "\n")

		if msg := fieldError(s.Validation, i); msg != "" && strings.TrimSpace(input.Value()) != "" {
			b.WriteString(strings.Repeat(" ", 9) + ErrorStyle.Render(msg) + "\n")
		}
		if i == inputBody && !s.Config.Method.AllowsBody() && input.Value() != "" {
			b.WriteString(strings.Repeat(" ", 9) + WarnStyle.Render("not sent with "+string(s.Config.Method)) + "\n")
		}
	}
	return b.String()
}

func fieldError(v request.Validation, input int) string {
	switch input {
	case inputMethod:
		return v.FieldErrors[request.FieldMethod]
	case inputURL:
		return v.FieldErrors[request.FieldURL]
	}
	return ""
}

func (m Model) renderInspect(s wizard.State) string {
	if !s.SelectionEnabled() {
		return WarnStyle.Render("Response is not valid JSON. Go back and adjust the request.") + "\n" +
			PanelStyle.Render(m.viewport.View()) + "\n"
	}

	height := m.height - 8
	if !m.ready {
		height = 20
	}
	start, end := m.tree.window(height)

	var b strings.Builder
	for i := start; i < end; i++ {
		node := m.tree.rows[i]
		line := m.tree.rowLabel(node)

		switch {
		case node.IsLeaf():
			line = LeafValueStyle.Render(line)
		default:
			line = ContainerStyle.Render(line)
		}
		if node.Path.String() == s.Config.SelectedPath {
			line = SelectedStyle.Render(m.tree.rowLabel(node)) + SelectedStyle.Render(selectedMarker)
		}

		prefix := "  "
		if i == m.tree.cursor {
			prefix = CursorStyle.Render(cursorPrefix)
		}
		b.WriteString(prefix + line + "\n")
	}
	return b.String()
}

func (m Model) renderSummary(s wizard.State) string {
	var b strings.Builder
	cfg := s.Config

	row := func(label, value string) {
		b.WriteString(LabelStyle.Render(label) + value + "\n")
	}
	row("Method", string(cfg.Method))
	row("URL", cfg.URL)
	if cfg.SendsBody() {
		row("Body", cfg.Body)
	}
	headers := cfg.OutgoingHeaders()
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		row("Header", k+": "+headers.Get(k))
	}
	row("Path", SelectedStyle.Render(cfg.SelectedPath))

	switch {
	case s.Result == nil:
		row("Verified", HelpStyle.Render("not yet"))
	case s.Result.Success:
		row("Verified", SuccessStyle.Render(s.Result.ValueJSON()))
	default:
		row("Verified", ErrorStyle.Render(s.Result.Error))
	}

	b.WriteString("\n" + FocusedLabelStyle.Render("Name") + m.name.View() + "\n")
	return PanelStyle.Render(strings.TrimRight(b.String(), "\n")) + "\n"
}

func (m Model) renderDeploying(s wizard.State) string {
	switch {
	case m.inflight != "":
		return fmt.Sprintf("Handing %q to the deployer...\n", m.name.Value())
	case s.DeployErr != nil:
		return ErrorStyle.Render("Deployment failed: "+s.DeployErr.Error()) + "\n"
	default:
		return SuccessStyle.Render(fmt.Sprintf("Deployed %q watching %s", m.name.Value(), s.Config.SelectedPath)) + "\n"
	}
}

func (m Model) renderStatus() string {
	switch {
	case m.inflight != "":
		return m.spinner.View() + " " + m.inflight + "..."
	case m.err != nil:
		return ErrorStyle.Render("Error: " + m.err.Error())
	case m.notice != "":
		return SuccessStyle.Render(m.notice)
	default:
		return ""
	}
}

func (m Model) help(s wizard.State) string {
	if m.inflight != "" {
		return "ctrl+c quit"
	}
	switch {
	case s.Deploying:
		return "enter/q quit"
	case s.Step == wizard.StepConfiguring:
		return "tab/↑↓ move • ctrl+n add header • ctrl+d remove header • enter send • esc quit"
	case s.Step == wizard.StepInspecting && s.SelectionEnabled():
		return "↑↓ move • J/K next leaf • enter select • v verify • y copy path • n next • esc back"
	case s.Step == wizard.StepInspecting:
		return "↑↓ scroll • esc back"
	default:
		return "enter deploy • ctrl+r verify • esc back"
	}
}
