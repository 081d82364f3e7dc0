package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shatter/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Loads the configuration the way "play" does and prints it as YAML.
The source is printed as a comment on the first line.

Search order:
  1. --config <path>
  2. ~/.shatter/configs/shatter.{yaml,yml,toml}
  3. ./configs/shatter.{yaml,yml,toml}
  4. built-in defaults

Examples:
  shatter config
  shatter config --preset dense > ~/.shatter/configs/shatter.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	addGameFlags(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) {
	preset := parsePreset()

	cfg, source, err := config.LoadShatter(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if preset != "" {
		config.ApplyShatterPreset(&cfg, preset)
	}

	if err := writeConfig(os.Stdout, cfg, source, preset); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// writeConfig prints cfg as YAML preceded by comments naming its source
// and preset.
func writeConfig(w io.Writer, cfg config.ShatterConfig, source string, preset config.Preset) error {
	out, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	if source == "" {
		source = "built-in defaults"
	}
	if _, err := fmt.Fprintf(w, "# source: %s\n", source); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if preset != "" {
		if _, err := fmt.Fprintf(w, "# preset: %s\n", preset); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
