package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/config"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "echo",
	Short: "Echo PDK - prompt development kit for the EPL templating language",
	Long: `Echo PDK compiles EPL prompt templates: parse, evaluate, and render
documents that mix literal text, variable interpolation, sections,
imports/includes, and conditionals backed by AI-judged predicates and
externally stored context assets.

Core workflow:
  - Lint templates and report every diagnostic in one pass
  - Render templates against variable bindings
  - Send rendered prompts through configured LLM providers
  - Maintain the context asset store (local, remote, or git-synced)`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the configuration file, falling back to defaults when the
// default config path does not exist. An explicitly passed --config that
// cannot be read is an error.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
		if !rootCmd.PersistentFlags().Changed("config") {
			cfg := config.NewDefault()
			applyVerbosity(cfg)
			return cfg, setupLogging(cfg)
		}
		return nil, fmt.Errorf("config file %q not found", cfgFile)
	}

	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, err
	}
	applyVerbosity(cfg)
	return cfg, setupLogging(cfg)
}

func applyVerbosity(cfg *config.Config) {
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
		cfg.Telemetry.Logging.Format = "text"
	}
}

func setupLogging(cfg *config.Config) error {
	_, err := logging.Setup(cfg.Telemetry.Logging, os.Stderr)
	return err
}
