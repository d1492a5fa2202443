// Package cli holds the terminal styling shared by the voicefx commands.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-voicefx/dsp/voicefx"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#7D56F4")
	accentColor  = lipgloss.Color("#FFA500")
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
	errorColor   = lipgloss.Color("#D7263D")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	IDStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(accentColor).
		Width(12)
)

// PrintVersion prints version information.
func PrintVersion(w io.Writer, version string) {
	fmt.Fprintln(w, TitleStyle.Render("voicefx"))
	fmt.Fprintf(w, "%s %s\n\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
}

// PrintError prints an error message.
func PrintError(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintKeyValue prints one labelled value.
func PrintKeyValue(w io.Writer, key string, value any) {
	fmt.Fprintf(w, "%s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(fmt.Sprint(value)))
}

// PrintEffects prints the catalog, one effect per line.
func PrintEffects(w io.Writer, effects []voicefx.Descriptor) {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("Effects"))
	sb.WriteString("\n")
	for _, d := range effects {
		sb.WriteString("  ")
		sb.WriteString(IDStyle.Render(string(d.ID)))
		sb.WriteString(ValueStyle.Render(d.Name))
		sb.WriteString("  ")
		sb.WriteString(KeyStyle.Render(d.Description))
		sb.WriteString("\n")
	}
	fmt.Fprint(w, sb.String())
}
