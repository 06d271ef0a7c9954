package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Minimal color palette
var (
	DimColor     = lipgloss.Color("#6c6c6c")
	TextColor    = lipgloss.Color("#e0e0e0")
	AccentColor  = lipgloss.Color("#7aa2f7")
	ErrorColor   = lipgloss.Color("#f7768e")
	SuccessColor = lipgloss.Color("#9ece6a")
	WarnColor    = lipgloss.Color("#e0af68")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)

	StepActiveStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)

	StepDoneStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	StepPendingStyle = lipgloss.NewStyle().
				Foreground(DimColor)

	LabelStyle = lipgloss.NewStyle().
			Foreground(DimColor).
			Width(9)

	FocusedLabelStyle = lipgloss.NewStyle().
				Foreground(AccentColor).
				Width(9)

	CursorStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	LeafValueStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	ContainerStyle = lipgloss.NewStyle().
			Foreground(DimColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	WarnStyle = lipgloss.NewStyle().
			Foreground(WarnColor)

	HelpStyle = lipgloss.NewStyle().
			Foreground(DimColor)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimColor).
			Padding(0, 1)
)

const (
	cursorPrefix   = "› "
	selectedMarker = " ●"
)
