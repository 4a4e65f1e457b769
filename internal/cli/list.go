package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scheckbl/scheckbl-cli/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list [type_name]",
	Short: "Show available dataset types and categories",
	Long: `List the available blocklist dataset types and their categories.

With a type name argument, only that type's categories are shown.

Examples:
  scheckbl list
  scheckbl list phrases`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store := openStore(cfg)

		var types []string
		if len(args) == 1 {
			types = []string{args[0]}
		} else {
			types, err = store.Types()
			if err != nil {
				return err
			}
		}

		catalog := make(map[string][]string, len(types))
		for _, t := range types {
			cats, err := store.Categories(t)
			if err != nil {
				return err
			}
			catalog[t] = cats
		}

		format := formatFor(cfg)
		if format != output.FormatText {
			return output.New(format).Write(catalog)
		}

		for _, t := range types {
			fmt.Println(output.Heading(t))
			for _, c := range catalog[t] {
				fmt.Printf("  %s\n", c)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
