// Package cli implements the Cobra command-line interface for scheckbl.
package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/scheckbl/scheckbl-cli/internal/config"
	"github.com/scheckbl/scheckbl-cli/internal/dataset"
	"github.com/scheckbl/scheckbl-cli/internal/output"
)

// Version information set by goreleaser
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flag values
var (
	flagConfig  string
	flagFormat  string
	flagJSON    bool
	flagVerbose bool
	flagDataDir string
)

var rootCmd = &cobra.Command{
	Use:   "scheckbl",
	Short: "Search & filter tool for SCheck Blocklist datasets",
	Long: `scheckbl searches the SCheck Blocklist datasets from the command line.

Datasets are addressed by type and category (e.g. phrases/vulgarisms,
urls/nsfw) and hold one blocklist entry per line.

Commands:
  check    - check if a keyword exists in a blocklist
  find     - find blocklist hits in free text
  get      - retrieve a full list, optionally regex-filtered
  similar  - rank entries similar to a phrase
  list     - show available types and categories

https://scheck-blocklist.vercel.app`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		// When no subcommand given, show quick reference card
		showQuickReference()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := map[string]any{
			"version":     version,
			"commit":      commit,
			"build_date":  date,
			"go_version":  runtime.Version(),
			"config_path": configPath(),
		}

		switch GetFormat() {
		case output.FormatJSON, output.FormatYAML:
			out := output.New(GetFormat())
			return out.Write(payload)
		default:
			fmt.Printf("scheckbl %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
			fmt.Printf("  go:     %s\n", runtime.Version())
			fmt.Printf("  config: %s\n", configPath())
			return nil
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// GetFormat returns the output format from flags and environment alone.
// Precedence: --json > --format > SCHECKBL_OUTPUT_FORMAT env > default.
func GetFormat() output.Format {
	if flagJSON {
		return output.FormatJSON
	}
	if rootCmd.PersistentFlags().Changed("format") {
		if f, err := output.ParseFormat(flagFormat); err == nil {
			return f
		}
	}
	if env := os.Getenv("SCHECKBL_OUTPUT_FORMAT"); env != "" {
		if f, err := output.ParseFormat(env); err == nil {
			return f
		}
	}
	if f, err := output.ParseFormat(flagFormat); err == nil {
		return f
	}
	return output.FormatText
}

// formatFor resolves the effective format once config is loaded: flags and
// environment win, then the config file's output.format.
func formatFor(cfg config.Config) output.Format {
	if flagJSON || rootCmd.PersistentFlags().Changed("format") {
		return GetFormat()
	}
	if env := os.Getenv("SCHECKBL_OUTPUT_FORMAT"); env != "" {
		if f, err := output.ParseFormat(env); err == nil {
			return f
		}
	}
	if f, err := output.ParseFormat(cfg.Output.Format); err == nil {
		return f
	}
	return output.FormatText
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.UserConfigPath()
}

// loadConfig loads the effective configuration, applying flag overrides.
func loadConfig() (config.Config, error) {
	overrides := map[string]any{}
	if rootCmd.PersistentFlags().Changed("format") {
		overrides["output.format"] = flagFormat
	}
	if flagJSON {
		overrides["output.format"] = "json"
	}
	if rootCmd.PersistentFlags().Changed("data-dir") {
		overrides["data.dir"] = flagDataDir
	}
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile:    flagConfig,
		FlagOverrides: overrides,
	})
	if err != nil {
		return cfg, err
	}
	output.SetColorMode(cfg.Output.Color)
	return cfg, nil
}

// newLogger builds the CLI logger. Debug level with --verbose, warnings
// otherwise, always on stderr.
func newLogger() *log.Logger {
	level := log.WarnLevel
	if flagVerbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:  level,
		Prefix: "scheckbl",
	})
}

// openStore returns the dataset store, backed by data.dir when configured
// and the bundled datasets otherwise.
func openStore(cfg config.Config) *dataset.Store {
	logger := newLogger()
	if cfg.Data.Dir != "" {
		logger.Debug("using dataset directory", "dir", cfg.Data.Dir)
		return dataset.NewStore(os.DirFS(cfg.Data.Dir), dataset.WithLogger(logger))
	}
	return dataset.NewStore(dataset.Bundled(), dataset.WithLogger(logger))
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format: text, json, yaml (env: SCHECKBL_OUTPUT_FORMAT)")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "shorthand for --format=json")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "load datasets from a directory instead of the bundled data")

	rootCmd.AddCommand(versionCmd)
}
