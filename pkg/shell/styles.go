package shell

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	failureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))
)

// theme renders text through the styles above only when colour is on, so
// piped output stays plain.
type theme struct {
	color bool
}

func (t theme) render(style lipgloss.Style, text string) string {
	if !t.color {
		return text
	}

	return style.Render(text)
}
