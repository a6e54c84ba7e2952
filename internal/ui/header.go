package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Header is the banner printed before a command touches the adapter:
// title, the command line, then the resolved parameters.
type Header struct {
	Title   string            // e.g., "STROBE"
	Command string            // e.g., "dmxstrobe strobe"
	Params  map[string]string // e.g., {"Port": "/dev/ttyUSB0", "Frequency": "8 Hz"}
	Width   int
}

// NewHeader creates a header sized to the terminal
func NewHeader(title, command string, params map[string]string) *Header {
	return &Header{Title: title, Command: command, Params: params, Width: GetTerminalWidth()}
}

// SetWidth overrides the detected terminal width
func (h *Header) SetWidth(width int) *Header {
	h.Width = width
	return h
}

// Render returns the styled header
func (h *Header) Render() string {
	width := max(h.Width, MinTerminalWidth)

	sections := []string{
		HeaderTitleStyle.Render(strings.ToUpper(h.Title)),
		HeaderCommandStyle.Render(h.Command),
	}
	if len(h.Params) > 0 {
		sections = append(sections,
			RenderHorizontalDivider(max(width-6, 10), "─"), // border and padding
			renderPairs(h.Params, HeaderParamKeyStyle, HeaderParamValueStyle, ""))
	}

	return HeaderBorderStyle(width).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// String implements fmt.Stringer
func (h *Header) String() string {
	return h.Render()
}

// renderPairs renders "key: value" lines sorted by key
func renderPairs(pairs map[string]string, keyStyle, valueStyle lipgloss.Style, indent string) string {
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = keyStyle.Render(indent+k+":") + " " + valueStyle.Render(pairs[k])
	}
	return strings.Join(lines, "\n")
}
