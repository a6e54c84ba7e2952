// Dmxstrobe drives a DMX512 fixture through an Enttec DMX USB Pro compatible
// adapter.
//
// It strobes a fixture between two looks at a fixed frequency, sets channel
// values directly, blacks the universe out and lists connected adapters.
// Every command that opens the adapter leaves the fixture dark on exit,
// except `set`, whose purpose is to leave a look on.
//
// Usage:
//
//	dmxstrobe [command] [flags]
//
// See 'dmxstrobe --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/dmxstrobe/internal/logging"
	"github.com/muurk/dmxstrobe/internal/version"
)

// Global flags
var (
	portName string
	logLevel string
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dmxstrobe",
	Short: "DMX512 strobe controller for Enttec DMX USB Pro adapters",
	Long: `Drive a DMX512 fixture through an Enttec DMX USB Pro compatible adapter.

The adapter is found automatically unless --port or DMXSTROBE_PORT names it.
Fixtures are patched in the config file (see 'dmxstrobe config init'), or
addressed directly with --address as a 6-channel par.

Logging is silent unless --log-level or DMXSTROBE_LOG_LEVEL is set.`,
	Version:       version.Full(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Initialize(logLevel); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&portName, "port", "", "Serial port of the adapter (default: auto-discover)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides "+logging.LogLevelEnvVar)

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "dmxstrobe %s\n", version.Full())
	},
}
