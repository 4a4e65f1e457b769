package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scheckbl/scheckbl-cli/internal/match"
	"github.com/scheckbl/scheckbl-cli/internal/output"
)

var findCmd = &cobra.Command{
	Use:   "find <type_name> <category> <text>",
	Short: "Find blocklist hits in free text",
	Long: `Scan a text for occurrences of any blocklisted entry.

Entries only match at word boundaries, so "cat" in a blocklist does not
flag the word "category". Matching is case-insensitive.

Exit code is 0 when at least one hit is found and 1 when the text is clean.

Example:
  scheckbl find phrases vulgarisms "you are an idiot"`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		typeName, category, text := args[0], args[1], args[2]

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ds, err := openStore(cfg).Load(typeName, category)
		if err != nil {
			return err
		}

		res := match.Find(ds, text)

		format := formatFor(cfg)
		if format == output.FormatText {
			fmt.Println(output.FoundLabel(res.Found))
			if res.Found {
				for _, entry := range res.Entries() {
					fmt.Printf("  %s\n", entry)
				}
			} else {
				fmt.Println("no hits")
			}
		} else {
			out := output.New(format)
			if err := out.Write(map[string]any{
				"type":     typeName,
				"category": category,
				"found":    res.Found,
				"hits":     res.Hits,
			}); err != nil {
				return err
			}
		}

		if !res.Found {
			os.Stdout.Sync()
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
}
