package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ResultKind selects the look of a result box
type ResultKind int

const (
	KindSuccess ResultKind = iota
	KindFailure
	KindWarning
)

type kindStyle struct {
	marker string
	label  string
	title  lipgloss.Style
	box    func(width int) lipgloss.Style
}

var kindStyles = map[ResultKind]kindStyle{
	KindSuccess: {SuccessMarker, "SUCCESS", SuccessTitleStyle, SuccessBoxStyle},
	KindFailure: {FailureMarker, "FAILED", ErrorTitleStyle, ErrorBoxStyle},
	KindWarning: {WarningMarker, "WARNING", WarningTitleStyle, WarningBoxStyle},
}

// Result is the box printed when a command finishes
type Result struct {
	Kind            ResultKind
	Title           string            // e.g., "Strobe complete"
	Details         map[string]string // Rendered sorted by key
	Err             error             // Failure only
	Troubleshooting []string          // Failure only
	Width           int
}

// NewSuccessResult creates a success box
func NewSuccessResult(title string, details map[string]string) *Result {
	return &Result{Kind: KindSuccess, Title: title, Details: details, Width: GetTerminalWidth()}
}

// NewFailureResult creates a failure box with an error and optional tips
func NewFailureResult(title string, err error, troubleshooting []string) *Result {
	return &Result{Kind: KindFailure, Title: title, Err: err, Troubleshooting: troubleshooting, Width: GetTerminalWidth()}
}

// NewWarningResult creates a warning box
func NewWarningResult(title string, details map[string]string) *Result {
	return &Result{Kind: KindWarning, Title: title, Details: details, Width: GetTerminalWidth()}
}

// SetWidth overrides the detected terminal width
func (r *Result) SetWidth(width int) *Result {
	r.Width = width
	return r
}

// AddDetail sets one detail line
func (r *Result) AddDetail(key, value string) *Result {
	if r.Details == nil {
		r.Details = map[string]string{}
	}
	r.Details[key] = value
	return r
}

// Render returns the styled box
func (r *Result) Render() string {
	width := max(r.Width, MinTerminalWidth)
	ks := kindStyles[r.Kind]

	body := []string{
		"",
		ks.title.Render(fmt.Sprintf("   %s  %s  ─  %s", ks.marker, ks.label, r.Title)),
		"",
	}
	if len(r.Details) > 0 {
		body = append(body, renderPairs(r.Details, ResultKeyStyle, ResultValueStyle, "   "), "")
	}
	if r.Err != nil {
		body = append(body, ErrorMessageStyle.Render("   Error: "+r.Err.Error()), "")
	}
	if len(r.Troubleshooting) > 0 {
		tips := []string{TroubleshootingTitleStyle.Render("Troubleshooting:"), ""}
		for _, tip := range r.Troubleshooting {
			tips = append(tips, TroubleshootingItemStyle.Render("  • "+tip))
		}
		body = append(body, TroubleshootingBoxStyle(width).Render(strings.Join(tips, "\n")), "")
	}

	return ks.box(width).Render(strings.Join(body, "\n"))
}

// String implements fmt.Stringer
func (r *Result) String() string {
	return r.Render()
}
