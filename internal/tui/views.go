package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-voicefx/internal/cli"
)

var (
	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFA500"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4"))
)

const barWidth = 30

// View implements tea.Model.
func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(cli.TitleStyle.Render("voicefx - live preview"))
	b.WriteString("\n")

	for i, d := range m.effects {
		line := fmt.Sprintf("%-12s %s", d.Name, dimStyle.Render(d.Description))
		if i == m.Cursor {
			b.WriteString(cursorStyle.Render("> ") + cursorStyle.Render(line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderIntensity(int(m.Intensity)))
	b.WriteString("\n\n")

	b.WriteString(cli.KeyStyle.Render("Status: "))
	b.WriteString(cli.ValueStyle.Render(m.Status))
	b.WriteString("\n")

	if m.Err != nil {
		b.WriteString(cli.ErrorStyle.Render("Error: "))
		b.WriteString(m.Err.Error())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("up/down effect  left/right intensity  space preview  r record  q quit"))
	b.WriteString("\n")

	return b.String()
}

func renderIntensity(v int) string {
	filled := v * barWidth / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return fmt.Sprintf("%s %s %3d%%", cli.KeyStyle.Render("Intensity"), barStyle.Render(bar), v)
}
