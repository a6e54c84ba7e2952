package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Palette
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // borders, dividers
	SuccessColor = lipgloss.Color("#43BF6D")
	ErrorColor   = lipgloss.Color("#FF5555")
	WarningColor = lipgloss.Color("#FFA500") // warnings, photosensitivity prompt
	MutedColor   = lipgloss.Color("#626262") // keys, notes
	TextColor    = lipgloss.Color("#FFFFFF")
	FlashColor   = lipgloss.Color("#FFF6C2") // ON phase lamp
)

// Width bounds for every box
const (
	MinTerminalWidth = 60
	MaxContentWidth  = 100
)

// Markers
const (
	SuccessMarker = "✓"
	FailureMarker = "✗"
	WarningMarker = "⚠"
	LampOn        = "●"
	LampOff       = "○"
)

var (
	// Header box: title, command line, then "Key: value" params
	HeaderTitleStyle      = lipgloss.NewStyle().Foreground(TextColor).Bold(true).PaddingLeft(2)
	HeaderCommandStyle    = lipgloss.NewStyle().Foreground(MutedColor).PaddingLeft(2)
	HeaderParamKeyStyle   = lipgloss.NewStyle().Foreground(MutedColor).PaddingLeft(2)
	HeaderParamValueStyle = lipgloss.NewStyle().Foreground(TextColor)

	// Result boxes
	SuccessTitleStyle = lipgloss.NewStyle().Foreground(SuccessColor).Bold(true)
	ErrorTitleStyle   = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
	WarningTitleStyle = lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
	ErrorMessageStyle = lipgloss.NewStyle().Foreground(ErrorColor)
	ResultKeyStyle    = lipgloss.NewStyle().Foreground(MutedColor).Width(15)
	ResultValueStyle  = lipgloss.NewStyle().Foreground(TextColor)

	TroubleshootingTitleStyle = lipgloss.NewStyle().Foreground(MutedColor).Bold(true)
	TroubleshootingItemStyle  = lipgloss.NewStyle().Foreground(MutedColor)

	// Live strobe display
	ProgressLabelStyle = lipgloss.NewStyle().Foreground(TextColor).PaddingLeft(2)
	LampOnStyle        = lipgloss.NewStyle().Foreground(FlashColor).Bold(true)
	LampOffStyle       = lipgloss.NewStyle().Foreground(MutedColor)

	// Listings and hints
	TableHeaderStyle = lipgloss.NewStyle().Foreground(MutedColor).Bold(true)
	NoteStyle        = lipgloss.NewStyle().Foreground(MutedColor).Italic(true)
)

// IsTerminal reports whether f is an interactive terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// GetTerminalWidth returns the stdout width clamped to
// [MinTerminalWidth, MaxContentWidth]; MinTerminalWidth when not a terminal.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth
	}
	return clampWidth(width)
}

func clampWidth(w int) int {
	return min(max(w, MinTerminalWidth), MaxContentWidth)
}

// HeaderBorderStyle returns the rounded border used for command headers
func HeaderBorderStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2) // border characters
}

// SuccessBoxStyle, ErrorBoxStyle and WarningBoxStyle return double-bordered
// result boxes in the matching colour.
func SuccessBoxStyle(width int) lipgloss.Style { return resultBoxStyle(width, SuccessColor) }
func ErrorBoxStyle(width int) lipgloss.Style   { return resultBoxStyle(width, ErrorColor) }
func WarningBoxStyle(width int) lipgloss.Style { return resultBoxStyle(width, WarningColor) }

func resultBoxStyle(width int, color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(color).
		Width(width-2).
		Padding(0, 2)
}

// TroubleshootingBoxStyle returns the inner box for tips, indented inside a
// failure box.
func TroubleshootingBoxStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Width(max(width-12, 40)).
		Padding(0, 1).
		MarginLeft(3)
}

// RenderHorizontalDivider returns a line of char repeated width times
func RenderHorizontalDivider(width int, char string) string {
	return lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Render(strings.Repeat(char, width))
}
