package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/dmxstrobe/internal/fixture"
	"github.com/muurk/dmxstrobe/internal/logging"
	"github.com/muurk/dmxstrobe/internal/strobe"
	"github.com/muurk/dmxstrobe/internal/ui"
)

// Strobe command flags
var (
	strobeFrequency float64
	strobeDuration  time.Duration
	strobeColor     string
	strobeOffFirst  bool
	assumeYes       bool
)

// Set command flags
var (
	setDimmer   int
	setColor    string
	setStrobe   int
	setProgram  int
	setChannels []string
)

// errNotConfirmed is returned when the photosensitivity warning is declined
var errNotConfirmed = errors.New("strobe not confirmed")

func init() {
	rootCmd.AddCommand(strobeCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(blackoutCmd)
}

// strobeCmd flashes a fixture between a look and blackout
var strobeCmd = &cobra.Command{
	Use:   "strobe",
	Short: "Strobe a fixture",
	Long: `Flash a fixture between full colour and blackout at a fixed frequency.

Each half period one frame is sent: 8 Hz means 16 frames per second. The
run ends after --duration, on Ctrl+C or SIGTERM; on every exit path a final
all-off frame is sent before the port is closed.

Frequencies above 22 Hz exceed what a 512-channel DMX line can refresh and
are logged as a warning.`,
	Example: `  # 8 Hz white strobe for 10 seconds on a par at address 1
  dmxstrobe strobe

  # Red strobe at 4 Hz for one minute on a patched fixture
  dmxstrobe strobe --fixture stage-left --color red --frequency 4 --duration 1m

  # Non-interactive use (skips the photosensitivity prompt)
  dmxstrobe strobe --yes --duration 5s --port /dev/ttyUSB0`,
	RunE: runStrobe,
}

func init() {
	addFixtureFlags(strobeCmd)
	strobeCmd.Flags().Float64VarP(&strobeFrequency, "frequency", "f", 8, "Strobe frequency in Hz (full on/off cycles per second)")
	strobeCmd.Flags().DurationVarP(&strobeDuration, "duration", "d", 10*time.Second, "How long to strobe")
	strobeCmd.Flags().StringVar(&strobeColor, "color", "", "Colour name or hex (#rrggbb); default from the fixture or white")
	strobeCmd.Flags().BoolVar(&strobeOffFirst, "off-first", false, "Start with the dark phase")
	strobeCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the photosensitivity warning")
}

func runStrobe(cmd *cobra.Command, args []string) error {
	t, err := resolveTarget(cmd)
	if err != nil {
		return err
	}

	t.settings.MergePrefs(t.registry.Strobe)
	frequency := t.settings.Frequency
	if cmd.Flags().Changed("frequency") {
		frequency = strobeFrequency
	}
	duration := t.settings.Duration
	if cmd.Flags().Changed("duration") {
		duration = strobeDuration
	}

	color, colorName, err := parseColorFlag(strobeColor, t.fixtureColor())
	if err != nil {
		return err
	}

	cfg, err := strobe.ColorStrobe(t.patch, color, frequency, duration)
	if err != nil {
		return err
	}
	if strobeOffFirst {
		cfg.StartPhase = strobe.PhaseOff
	}

	printer := ui.NewPrinter(cmd.OutOrStdout())
	printer.PrintHeader("Strobe", "dmxstrobe strobe", map[string]string{
		"Port":      t.port,
		"Fixture":   t.patch.String(),
		"Color":     colorName,
		"Frequency": fmt.Sprintf("%g Hz", frequency),
		"Duration":  duration.String(),
	})

	if !assumeYes {
		if !ui.IsTerminal(os.Stdin) {
			return fmt.Errorf("%w: stdin is not a terminal, pass --yes to strobe unattended", errNotConfirmed)
		}
		if !ui.StrobeWarning(frequency).Ask(os.Stdin, cmd.OutOrStdout()) {
			return errNotConfirmed
		}
	}

	buf, err := t.openBuffer()
	if err != nil {
		printer.PrintError("Failed to open adapter", err, portTroubleshooting)
		return err
	}
	defer func() {
		if cerr := buf.Close(); cerr != nil {
			logging.Warn("Failed to close adapter", zap.Error(cerr))
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := func(ctx context.Context, observe func(strobe.Event)) (*strobe.Result, error) {
		var opts []strobe.Option
		if observe != nil {
			opts = append(opts, strobe.WithObserver(observe))
		}
		sess, err := strobe.NewSession(buf, cfg, opts...)
		if err != nil {
			return nil, err
		}
		logging.LogSession(sess.ID(), "starting",
			zap.String("port", t.port),
			zap.Stringer("fixture", t.patch),
			zap.String("color", colorName))
		return sess.Run(ctx)
	}

	var res *strobe.Result
	if ui.IsTerminal(os.Stdout) {
		res, err = ui.RunStrobe(ctx, "Strobing "+t.patch.Name+"...", duration, cmd.OutOrStdout(), run)
	} else {
		res, err = run(ctx, nil)
	}

	printer.PrintStrobeResult(res, err)
	return err
}

// setCmd sends one frame with the given controls and leaves it on
var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Set fixture controls and leave them on",
	Long: `Send a single frame built from the given controls.

Channels not named are sent as 0. With --color and no --dimmer the dimmer
is set to full. The adapter repeats the last frame it received, so the
look stays on after the command exits; use 'dmxstrobe blackout' to clear it.`,
	Example: `  # Amber at half brightness
  dmxstrobe set --color amber --dimmer 128

  # Raw channel values
  dmxstrobe set --channel 1=255 --channel 2=255`,
	RunE: runSet,
}

func init() {
	addFixtureFlags(setCmd)
	setCmd.Flags().IntVar(&setDimmer, "dimmer", 0, "Dimmer value (0-255)")
	setCmd.Flags().StringVar(&setColor, "color", "", "Colour name or hex (#rrggbb)")
	setCmd.Flags().IntVar(&setStrobe, "strobe", 0, "Fixture strobe-rate channel value (0-255)")
	setCmd.Flags().IntVar(&setProgram, "program", 0, "Fixture program channel value (0-255)")
	setCmd.Flags().StringArrayVar(&setChannels, "channel", nil, "Raw channel assignment N=V (repeatable)")
}

func runSet(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if !flags.Changed("dimmer") && !flags.Changed("color") && !flags.Changed("strobe") &&
		!flags.Changed("program") && len(setChannels) == 0 {
		return errors.New("nothing to set: pass --color, --dimmer, --strobe, --program or --channel")
	}

	assignments := make([]channelAssignment, 0, len(setChannels))
	for _, s := range setChannels {
		a, err := parseChannelAssignment(s)
		if err != nil {
			return err
		}
		assignments = append(assignments, a)
	}

	t, err := resolveTarget(cmd)
	if err != nil {
		return err
	}

	buf, err := t.openBuffer()
	if err != nil {
		ui.NewPrinter(cmd.OutOrStdout()).PrintError("Failed to open adapter", err, portTroubleshooting)
		return err
	}
	defer func() {
		if cerr := buf.Close(); cerr != nil {
			logging.Warn("Failed to close adapter", zap.Error(cerr))
		}
	}()

	details := map[string]string{
		"Port":    t.port,
		"Fixture": t.patch.String(),
	}

	if flags.Changed("color") {
		c, name, err := parseColorFlag(setColor, "")
		if err != nil {
			return err
		}
		dimmer := 255
		if flags.Changed("dimmer") {
			dimmer = setDimmer
		}
		if err := t.patch.Look(buf, dimmer, c); err != nil {
			return err
		}
		details["Color"] = name
		details["Dimmer"] = fmt.Sprintf("%d", dimmer)
	} else if flags.Changed("dimmer") {
		if err := t.patch.SetDimmer(buf, setDimmer); err != nil {
			return err
		}
		details["Dimmer"] = fmt.Sprintf("%d", setDimmer)
	}

	if flags.Changed("strobe") {
		if err := t.patch.Set(buf, fixture.StrobeRate, setStrobe); err != nil {
			return err
		}
		details["Strobe"] = fmt.Sprintf("%d", setStrobe)
	}
	if flags.Changed("program") {
		if err := t.patch.Set(buf, fixture.Program, setProgram); err != nil {
			return err
		}
		details["Program"] = fmt.Sprintf("%d", setProgram)
	}

	for _, a := range assignments {
		if err := buf.SetChannel(a.Channel, a.Value); err != nil {
			return err
		}
		details[fmt.Sprintf("Channel %d", a.Channel)] = fmt.Sprintf("%d", a.Value)
	}

	if err := buf.Transmit(); err != nil {
		ui.NewPrinter(cmd.OutOrStdout()).PrintError("Failed to send frame", err, portTroubleshooting)
		return err
	}

	ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Frame sent", details)
	return nil
}

// blackoutCmd sends an all-zero frame
var blackoutCmd = &cobra.Command{
	Use:   "blackout",
	Short: "Send an all-off frame",
	Long:  `Set all 512 channels to 0, send one frame and close the adapter.`,
	RunE:  runBlackout,
}

func runBlackout(cmd *cobra.Command, args []string) error {
	settings, registry, err := loadEnvironment()
	if err != nil {
		return err
	}
	port, err := resolvePort(settings, registry)
	if err != nil {
		return err
	}

	t := &target{settings: settings, registry: registry, port: port}
	buf, err := t.openBuffer()
	if err != nil {
		ui.NewPrinter(cmd.OutOrStdout()).PrintError("Failed to open adapter", err, portTroubleshooting)
		return err
	}

	if err := buf.ShutdownAndClose(); err != nil {
		ui.NewPrinter(cmd.OutOrStdout()).PrintError("Blackout failed", err, portTroubleshooting)
		return err
	}

	ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Blackout sent", map[string]string{"Port": port})
	return nil
}

var portTroubleshooting = []string{
	"Run 'dmxstrobe ports' to list serial ports",
	"Check no other program (e.g. a lighting console) has the port open",
	"On Linux, make sure your user is in the dialout group",
}
