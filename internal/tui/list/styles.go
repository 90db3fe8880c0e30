package listview

import "github.com/charmbracelet/lipgloss"

// Styles used to draw the picker.
//
//nolint:gochecknoglobals // Styles are read-only after init.
var (
	MarkedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(true)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	DisabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	GroupStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	ChipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("238")).
			Padding(0, 1)

	NoticeStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("244"))

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

const (
	checkedMark   = "[x] "
	uncheckedMark = "[ ] "
	singleMark    = "• "
	childIndent   = "  "
)
