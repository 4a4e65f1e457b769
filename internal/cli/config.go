package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scheckbl/scheckbl-cli/internal/config"
	"github.com/scheckbl/scheckbl-cli/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and modify scheckbl configuration",
	Long: `Inspect and modify the scheckbl configuration.

Settings live in ~/.scheckbl/config.toml and can be overridden per
invocation with SCHECKBL_* environment variables or flags.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(configPath())
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show effective configuration values",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if len(args) == 1 {
			val, ok := config.GetValue(cfg, args[0])
			if !ok {
				return fmt.Errorf("unknown config key: %s", args[0])
			}
			format := formatFor(cfg)
			if format != output.FormatText {
				return output.New(format).Write(map[string]any{args[0]: val})
			}
			fmt.Printf("%v\n", val)
			return nil
		}

		format := formatFor(cfg)
		if format != output.FormatText {
			return output.New(format).Write(cfg)
		}
		for _, key := range config.Keys() {
			val, _ := config.GetValue(cfg, key)
			fmt.Printf("%s = %v\n", key, val)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a configuration value",
	Long: `Write a configuration value to the user config file.

Examples:
  scheckbl config set similar.threshold 0.7
  scheckbl config set output.format json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, raw := args[0], args[1]

		val, err := config.ParseValue(key, raw)
		if err != nil {
			return err
		}

		path := configPath()
		if err := config.WriteValue(path, key, val); err != nil {
			return err
		}

		// Reload so invalid values are reported right away.
		if _, err := config.Load(config.LoadOptions{ConfigFile: path}); err != nil {
			return fmt.Errorf("value written but config is now invalid: %w", err)
		}

		output.New(GetFormat()).Success(fmt.Sprintf("%s = %v", key, val))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)

	rootCmd.AddCommand(configCmd)
}
