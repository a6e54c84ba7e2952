package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/dmxstrobe/internal/discovery"
	"github.com/muurk/dmxstrobe/internal/logging"
	"github.com/muurk/dmxstrobe/internal/strobe"
	"github.com/muurk/dmxstrobe/internal/transport"
)

// Printer provides methods for printing UI components to a writer.
// This is the primary way commands output styled content.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// SetWidth overrides the detected terminal width
func (p *Printer) SetWidth(width int) *Printer {
	p.width = width
	return p
}

// Width returns the current terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// Print writes content to the output
func (p *Printer) Print(content string) {
	_, _ = fmt.Fprint(p.out, content)
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints a command header box
func (p *Printer) PrintHeader(title, command string, params map[string]string) {
	p.Println(NewHeader(title, command, params).SetWidth(p.width).Render())
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details map[string]string) {
	p.Println(NewSuccessResult(title, details).SetWidth(p.width).Render())
}

// PrintWarning prints a warning result box
func (p *Printer) PrintWarning(title string, details map[string]string) {
	p.Println(NewWarningResult(title, details).SetWidth(p.width).Render())
}

// PrintError prints an error result box with troubleshooting tips
func (p *Printer) PrintError(title string, err error, troubleshooting []string) {
	p.Println(NewFailureResult(title, err, troubleshooting).SetWidth(p.width).Render())
}

// PrintPorts prints a table of serial ports
func (p *Printer) PrintPorts(devices []*discovery.Device) {
	if len(devices) == 0 {
		p.Println(NoteStyle.Render("  No serial ports found."))
		return
	}

	p.Println(TableHeaderStyle.Render(fmt.Sprintf("  %-3s %-22s %-10s %s", "", "PORT", "USB ID", "PRODUCT")))
	for _, d := range devices {
		marker := " "
		if d.Adapter {
			marker = SuccessMarker
		}
		product := d.Product
		if d.SerialNumber != "" {
			product = strings.TrimSpace(product + " (" + d.SerialNumber + ")")
		}
		p.Println(fmt.Sprintf("  %-3s %-22s %-10s %s", marker, d.Port, d.USBID(), product))
	}
}

// PrintIdentity prints what an adapter reported about itself, or why it
// did not answer
func (p *Printer) PrintIdentity(port string, id *transport.Identity, err error) {
	if err != nil {
		p.Println(fmt.Sprintf("  %-3s %-22s %s", FailureMarker, port, ErrorMessageStyle.Render(err.Error())))
		return
	}
	p.Println(fmt.Sprintf("  %-3s %-22s serial %s, firmware %s, %d packets/s, break %s, MAB %s",
		SuccessMarker, port, id.SerialNumber, id.Params.FirmwareVersion(), id.Params.RefreshRate,
		id.Params.BreakTime.Round(time.Microsecond), id.Params.MarkAfterBreak.Round(time.Microsecond)))
}

// PrintStrobeResult prints the outcome of a strobe session
func (p *Printer) PrintStrobeResult(res *strobe.Result, err error) {
	details := map[string]string{}
	if res != nil {
		details["Session"] = res.ID
		details["State"] = res.State.String()
		details["Frames"] = fmt.Sprintf("%d", res.Frames)
		details["Elapsed"] = res.Elapsed.Round(time.Millisecond).String()
		details["Lights off"] = yesNo(res.SafeSent)
	}

	switch {
	case err != nil:
		p.PrintError("Strobe failed", err, []string{
			"Check the adapter is still plugged in",
			"Run 'dmxstrobe ports' to list available adapters",
			"Run 'dmxstrobe blackout' to make sure the fixture is dark",
		})
	case res != nil && res.State == strobe.Stopped:
		p.PrintWarning("Strobe stopped", details)
	default:
		p.PrintSuccess("Strobe complete", details)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// EventMsg carries a frame event from the session into the program
type EventMsg strobe.Event

// DoneMsg reports that the session has finished
type DoneMsg struct {
	Result *strobe.Result
	Err    error
}

// StrobeModel is a Bubble Tea model that follows a running strobe session.
// Pressing q, esc or ctrl+c cancels the session; the program exits once the
// session reports DoneMsg, which is after the lights-off frame was sent.
type StrobeModel struct {
	progress *Progress
	cancel   context.CancelFunc
	stopping bool
	done     bool
	result   *strobe.Result
	err      error
}

// NewStrobeModel creates a model for a session of the given duration
func NewStrobeModel(label string, duration time.Duration, cancel context.CancelFunc) StrobeModel {
	return StrobeModel{
		progress: NewProgress(label, duration),
		cancel:   cancel,
	}
}

// Init implements tea.Model
func (m StrobeModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m StrobeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			if !m.stopping {
				m.stopping = true
				if m.cancel != nil {
					m.cancel()
				}
			}
		}
	case tea.WindowSizeMsg:
		m.progress.SetWidth(clampWidth(msg.Width))
	case EventMsg:
		m.progress.Update(strobe.Event(msg))
	case DoneMsg:
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model
func (m StrobeModel) View() string {
	view := m.progress.Render()
	switch {
	case m.done:
		return view + "\n"
	case m.stopping:
		return view + "\n\n" + NoteStyle.Render("  Stopping, sending lights off...") + "\n"
	default:
		return view + "\n\n" + NoteStyle.Render("  Press q to stop") + "\n"
	}
}

// Stopping reports whether the user asked to stop
func (m StrobeModel) Stopping() bool {
	return m.stopping
}

// Done reports whether the session has finished
func (m StrobeModel) Done() bool {
	return m.done
}

// StrobeRunFunc runs a session, reporting every frame to observe
type StrobeRunFunc func(ctx context.Context, observe func(strobe.Event)) (*strobe.Result, error)

// RunStrobe runs a session under a live progress display written to out.
// It always waits for run to return, so the lights-off frame has been sent
// by the time RunStrobe returns. Extra options are passed to the program.
func RunStrobe(ctx context.Context, label string, duration time.Duration, out io.Writer, run StrobeRunFunc, opts ...tea.ProgramOption) (*strobe.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts = append([]tea.ProgramOption{tea.WithOutput(out)}, opts...)
	p := tea.NewProgram(NewStrobeModel(label, duration, cancel), opts...)

	doneCh := make(chan DoneMsg, 1)
	go func() {
		res, err := run(ctx, func(ev strobe.Event) { p.Send(EventMsg(ev)) })
		msg := DoneMsg{Result: res, Err: err}
		doneCh <- msg
		p.Send(msg)
	}()

	final, err := p.Run()
	if err != nil {
		// The display is gone; stop the session and report its outcome.
		logging.Warn("progress display exited", zap.Error(err))
		cancel()
	} else if m, ok := final.(StrobeModel); ok && m.Stopping() {
		logging.Info("strobe stopped from keyboard")
	}

	done := <-doneCh
	return done.Result, done.Err
}
