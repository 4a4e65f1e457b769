package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scheckbl/scheckbl-cli/internal/match"
	"github.com/scheckbl/scheckbl-cli/internal/output"
)

var checkCmd = &cobra.Command{
	Use:   "check <type_name> <category> <keyword>",
	Short: "Check if a keyword exists in a blocklist",
	Long: `Check if a given keyword exists in a blocklist.

Matching is case-insensitive and ignores surrounding whitespace.

Exit code is 0 when the keyword is found and 1 when it is not.

Example:
  scheckbl check phrases vulgarisms "idiot"`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		typeName, category, keyword := args[0], args[1], args[2]

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ds, err := openStore(cfg).Load(typeName, category)
		if err != nil {
			return err
		}

		found := match.Exists(ds, keyword)

		format := formatFor(cfg)
		if format == output.FormatText {
			fmt.Println(output.FoundLabel(found))
			fmt.Printf("Result: %v\n", found)
		} else {
			out := output.New(format)
			if err := out.Write(map[string]any{
				"type":     typeName,
				"category": category,
				"keyword":  keyword,
				"found":    found,
			}); err != nil {
				return err
			}
		}

		if !found {
			os.Stdout.Sync()
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
