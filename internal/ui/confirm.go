package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfirmPhrase is what the user must type to accept a warning
const ConfirmPhrase = "I AGREE"

// Confirmation describes a warning the user must accept before continuing
type Confirmation struct {
	Title      string
	Warnings   []string
	Disclaimer string
	Width      int
}

// Render returns the styled warning box
func (c Confirmation) Render() string {
	width := c.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	lines := []string{
		"",
		WarningTitleStyle.Render(fmt.Sprintf("   %s  WARNING  ─  %s", WarningMarker, c.Title)),
		"",
	}

	bulletStyle := lipgloss.NewStyle().Foreground(TextColor)
	for _, warning := range c.Warnings {
		lines = append(lines, bulletStyle.Render("   • "+warning))
	}
	lines = append(lines, "")

	if c.Disclaimer != "" {
		disclaimerStyle := NoteStyle.
			Width(width - 12).
			PaddingLeft(3)
		lines = append(lines, disclaimerStyle.Render(c.Disclaimer), "")
	}

	return WarningBoxStyle(width).Render(strings.Join(lines, "\n"))
}

// Ask prints the warning to out and reads one line from in.
// It returns true only if the line is ConfirmPhrase.
func (c Confirmation) Ask(in io.Reader, out io.Writer) bool {
	_, _ = fmt.Fprintln(out, c.Render())
	_, _ = fmt.Fprintln(out)

	promptStyle := lipgloss.NewStyle().
		Foreground(WarningColor).
		Bold(true)
	_, _ = fmt.Fprint(out, promptStyle.Render(fmt.Sprintf("To proceed, type %q and press Enter: ", ConfirmPhrase)))

	// A final line without a newline still counts.
	input, _ := bufio.NewReader(in).ReadString('\n')
	_, _ = fmt.Fprintln(out)

	if strings.TrimSpace(input) == ConfirmPhrase {
		return true
	}

	_, _ = fmt.Fprintln(out, lipgloss.NewStyle().Foreground(MutedColor).Render("  Operation cancelled."))
	_, _ = fmt.Fprintln(out)
	return false
}

// StrobeWarning is the photosensitivity warning shown before strobing
func StrobeWarning(frequency float64) Confirmation {
	return Confirmation{
		Title: "FLASHING LIGHTS",
		Warnings: []string{
			fmt.Sprintf("The fixture will flash at %.4g Hz", frequency),
			"Flashing between 3 and 60 Hz can trigger seizures in people with photosensitive epilepsy",
			"Make sure nobody nearby is at risk before you continue",
			"Press q or Ctrl+C at any time to stop; the fixture is switched off on exit",
		},
		Width: GetTerminalWidth(),
		Disclaimer: "DISCLAIMER: This software is provided as-is, without warranty of any kind. " +
			"By proceeding, you accept responsibility for operating the lighting safely.",
	}
}
