package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/dmxstrobe/internal/strobe"
)

// Progress renders the state of a running strobe session: a bar for
// elapsed time, the frame count and a lamp showing the current phase.
type Progress struct {
	Label    string        // e.g., "Strobing par..."
	Elapsed  time.Duration // Time since the first frame
	Duration time.Duration // Requested strobe duration
	Frames   uint64        // Frames sent so far
	Phase    strobe.Phase  // Phase of the last frame sent
	Width    int           // Terminal width
	bar      progress.Model
}

// NewProgress creates a new progress display for a strobe of the given duration
func NewProgress(label string, duration time.Duration) *Progress {
	p := &Progress{
		Label:    label,
		Duration: duration,
		Phase:    strobe.PhaseOff,
	}
	return p.SetWidth(GetTerminalWidth())
}

// SetWidth sets the terminal width for responsive rendering
func (p *Progress) SetWidth(width int) *Progress {
	p.Width = width
	barWidth := width - 36 // Leave room for percentage, frames and lamp
	if barWidth < 20 {
		barWidth = 20
	}
	if barWidth > 50 {
		barWidth = 50
	}
	p.bar = progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	return p
}

// Update applies a session event
func (p *Progress) Update(ev strobe.Event) {
	p.Elapsed = ev.Elapsed
	p.Frames = ev.Frame
	p.Phase = ev.Phase
	if ev.Duration > 0 {
		p.Duration = ev.Duration
	}
}

// Percent returns elapsed time as a fraction of the duration (0.0 - 1.0)
func (p *Progress) Percent() float64 {
	if p.Duration <= 0 {
		return 1
	}
	pct := float64(p.Elapsed) / float64(p.Duration)
	if pct > 1 {
		return 1
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// Render returns the styled progress display as a string
func (p *Progress) Render() string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(ProgressLabelStyle.Render(p.Label))
		b.WriteString("\n\n")
	}

	pct := p.Percent()
	line := fmt.Sprintf("%s  %3.0f%%  %s  %s",
		p.bar.ViewAs(pct), pct*100, p.renderLamp(), p.renderCounters())
	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(line))
	return b.String()
}

// renderLamp renders the phase indicator
func (p *Progress) renderLamp() string {
	if p.Phase == strobe.PhaseOn {
		return LampOnStyle.Render(LampOn)
	}
	return LampOffStyle.Render(LampOff)
}

// renderCounters renders "frames 12  1.5s/10s"
func (p *Progress) renderCounters() string {
	return NoteStyle.Render(fmt.Sprintf("frames %d  %s/%s",
		p.Frames, p.Elapsed.Round(100*time.Millisecond), p.Duration))
}

// String implements fmt.Stringer
func (p *Progress) String() string {
	return p.Render()
}
