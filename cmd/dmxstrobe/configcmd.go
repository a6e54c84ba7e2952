package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muurk/dmxstrobe/internal/config"
	"github.com/muurk/dmxstrobe/internal/ui"
)

// Config command flags
var (
	configForce       bool
	configFixtureAddr int
	configLayout      string
	configColor       string
	configDescription string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetFixtureCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")

	configSetFixtureCmd.Flags().IntVar(&configFixtureAddr, "address", 1, "DMX start address (1-512)")
	configSetFixtureCmd.Flags().StringVar(&configLayout, "layout", "", "Layout name (default par6)")
	configSetFixtureCmd.Flags().StringVar(&configColor, "color", "", "Default strobe colour")
	configSetFixtureCmd.Flags().StringVar(&configDescription, "description", "", "Free text description")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the fixture configuration file",
	Long: `Manage the YAML configuration file that patches fixtures.

The file lives in the user config directory (dmxstrobe/config.yaml), or at
the path in DMXSTROBE_CONFIG.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the config file",
	RunE:  runConfigShow,
}

var configSetFixtureCmd = &cobra.Command{
	Use:   "set-fixture <name>",
	Short: "Add or update a patched fixture",
	Example: `  # Patch a par at address 7
  dmxstrobe config set-fixture stage-left --address 7 --color amber`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigSetFixture,
}

// configPath returns DMXSTROBE_CONFIG or the default path
func configPath() (string, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return "", err
	}
	if settings.ConfigPath != "" {
		return settings.ConfigPath, nil
	}
	return config.GetConfigPath()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	if err := config.DefaultRegistry().SaveTo(path); err != nil {
		return err
	}

	ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Config written", map[string]string{"Path": path})
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	registry, err := config.LoadRegistryFile(path)
	if err != nil {
		return err
	}

	printer := ui.NewPrinter(cmd.OutOrStdout())
	printer.PrintHeader("Config", "dmxstrobe config show", map[string]string{"Path": path})

	for _, name := range registry.FixtureNames() {
		patch, err := registry.Patch(name)
		if err != nil {
			return err
		}
		printer.Println("  " + patch.String())
	}

	data, err := yaml.Marshal(registry)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	printer.Newline()
	printer.Print(string(data))
	return nil
}

func runConfigSetFixture(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	registry, err := config.LoadRegistryFile(path)
	if err != nil {
		return err
	}

	name := args[0]
	f := registry.SetFixture(name, configFixtureAddr, configLayout)
	f.Color = configColor
	f.Description = configDescription

	if err := registry.Validate(); err != nil {
		return err
	}
	patch, err := registry.Patch(name)
	if err != nil {
		return err
	}
	if err := registry.Save(); err != nil {
		return err
	}

	ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Fixture saved", map[string]string{
		"Fixture": patch.String(),
		"Path":    registry.Path(),
	})
	return nil
}
